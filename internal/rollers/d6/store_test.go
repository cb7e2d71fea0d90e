package d6_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/rollers/d6"
	"github.com/KirkDiggler/talis/internal/rollers/rollerstest"
)

type StoreTestSuite struct {
	suite.Suite
	ctx     context.Context
	fixture *rollerstest.Fixture
	store   *d6.Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.fixture = rollerstest.NewFixture()
}

func (s *StoreTestSuite) load() {
	store, err := d6.New(s.ctx, s.fixture.Deps)
	s.Require().NoError(err)
	s.store = store
}

func (s *StoreTestSuite) TestRollTotals() {
	s.load()
	s.fixture.Roller.Push(2, 5, 6)

	r, err := s.store.Roll(s.ctx, 3)
	s.Require().NoError(err)
	s.Equal(13, r.Total)
	s.Equal([]int{2, 5, 6}, r.Results)
}

func (s *StoreTestSuite) TestDefaults() {
	s.load()
	cfg := s.store.State().Config
	s.Equal(d6.Defaults(), cfg)
	s.Equal(1, s.store.State().DiceCount)
}

func (s *StoreTestSuite) TestMigratesV1Payload() {
	stored := `{"state":{"config":{"newResultsOnTop":false,"sortDice":true,"showDiceSum":true,` +
		`"freeInputEnabled":true,"showQuickButtons":true,"maxDice":10,` +
		`"quickButtons":[{"id":"two","amount":2}]}},"version":1}`
	s.Require().NoError(s.fixture.Storage.SetItem(s.ctx, "d6-storage", stored))

	s.load()

	cfg := s.store.State().Config
	s.True(cfg.QuickButtonsEnabled)
	s.Equal([]entities.QuickButton{{ID: "two", Amount: 2, Type: entities.QuickButtonInstantRoll}}, cfg.QuickButtons)
	s.Empty(s.fixture.Notices.Drain())
}

func (s *StoreTestSuite) TestBareObjectIsVersionZero() {
	stored := `{"config":{"newResultsOnTop":true,"sortDice":true,"showDiceSum":true,` +
		`"freeInputEnabled":true,"showQuickButtons":false,"maxDice":8,"quickButtons":[]}}`
	s.Require().NoError(s.fixture.Storage.SetItem(s.ctx, "d6-storage", stored))

	s.load()

	s.Equal(8, s.store.State().Config.MaxDice)
	s.False(s.store.State().Config.QuickButtonsEnabled)
}
