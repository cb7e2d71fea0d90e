package polyhedral_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/persist"
	"github.com/KirkDiggler/talis/internal/rollers/polyhedral"
	"github.com/KirkDiggler/talis/internal/rollers/rollerstest"
)

type StoreTestSuite struct {
	suite.Suite
	ctx     context.Context
	fixture *rollerstest.Fixture
	store   *polyhedral.Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.fixture = rollerstest.NewFixture()
}

func (s *StoreTestSuite) load() {
	store, err := polyhedral.New(s.ctx, s.fixture.Deps)
	s.Require().NoError(err)
	s.store = store
}

func (s *StoreTestSuite) TestRollRemembersSelection() {
	s.load()
	s.fixture.Roller.Push(3, 8)

	r, err := s.store.Roll(s.ctx, 8, 2)
	s.Require().NoError(err)
	s.Equal(8, r.DiceType)
	s.Equal(11, r.Total)

	st := s.store.State()
	s.Equal(8, st.SelectedDiceType)
	s.Equal(2, st.Quantity())

	s.load()
	s.Equal(8, s.store.State().SelectedDiceType)
	s.Equal(2, s.store.State().Quantity())
	s.Empty(s.store.History())
}

func (s *StoreTestSuite) TestRollBounds() {
	s.load()

	_, err := s.store.Roll(s.ctx, 20, 21)
	s.True(errors.IsOutOfRange(err))
	_, err = s.store.Roll(s.ctx, 20, 0)
	s.True(errors.IsOutOfRange(err))
	_, err = s.store.Roll(s.ctx, 7, 1)
	s.True(errors.IsInvalidArgument(err))
	s.False(s.store.CanRoll(7, 1))
	s.True(s.store.CanRoll(100, 20))
}

func (s *StoreTestSuite) TestRollSelected() {
	s.load()
	s.Require().NoError(s.store.SelectDiceType(s.ctx, 100))
	s.Require().NoError(s.store.SetQuantity(s.ctx, 100, 3))
	s.fixture.Roller.Push(100, 1, 50)

	r, err := s.store.RollSelected(s.ctx)
	s.Require().NoError(err)
	s.Equal(151, r.Total)
	s.Equal(100, r.DiceType)
}

func (s *StoreTestSuite) TestUpdateConfigMergesPerType() {
	s.load()
	s.Require().NoError(s.store.SetQuantity(s.ctx, 6, 15))

	err := s.store.PatchConfig(s.ctx, map[string]any{
		"maxQuantity": map[string]any{"6": 10, "20": 50},
	})
	s.Require().NoError(err)

	st := s.store.State()
	s.Equal(10, st.Config.MaxQuantity[6])
	s.Equal(50, st.Config.MaxQuantity[20])
	s.Equal(polyhedral.DefaultMax, st.Config.MaxQuantity[4])
	s.Equal(10, st.Quantities[6])
}

func (s *StoreTestSuite) TestUpdateConfigRejectsUnknownType() {
	s.load()
	_, err := s.store.UpdateConfig(s.ctx, polyhedral.Patch{MaxQuantity: map[int]int{7: 3}})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.NotContains(s.store.State().Config.MaxQuantity, 7)
}

func (s *StoreTestSuite) TestMigratesV1Payload() {
	stored := `{"state":{"config":{"newResultsOnTop":true,"sortDice":true,"showDiceSum":false,"maxDice":12},` +
		`"selectedDiceType":10,"quantity":4},"version":1}`
	s.Require().NoError(s.fixture.Storage.SetItem(s.ctx, "polyhedral-storage", stored))

	s.load()

	st := s.store.State()
	s.Equal(12, st.Config.MaxQuantity[100])
	s.Equal(4, st.Quantities[10])
	s.Equal(1, st.Quantities[20])
	s.True(st.Config.SortDice)
	s.Empty(s.fixture.Notices.Drain())
}

func (s *StoreTestSuite) TestSchemaRoundTrip() {
	want := polyhedral.Persisted{
		Config:           polyhedral.Defaults(),
		SelectedDiceType: 12,
		Quantities:       polyhedral.DefaultQuantities(),
	}
	raw, err := persist.ToMap(want)
	s.Require().NoError(err)

	got, err := polyhedral.Schema().Decode(raw)
	s.Require().NoError(err)
	s.Empty(cmp.Diff(want, got))
}

func (s *StoreTestSuite) TestSchemaRequiresEveryType() {
	raw, err := persist.ToMap(polyhedral.Persisted{
		Config:           polyhedral.Defaults(),
		SelectedDiceType: 12,
		Quantities:       map[int]int{12: 1},
	})
	s.Require().NoError(err)

	_, err = polyhedral.Schema().Decode(raw)
	s.True(errors.IsInvalidArgument(err))
}
