package coin_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/rollers/coin"
	"github.com/KirkDiggler/talis/internal/rollers/rollerstest"
)

type StoreTestSuite struct {
	suite.Suite
	ctx     context.Context
	fixture *rollerstest.Fixture
	store   *coin.Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.fixture = rollerstest.NewFixture()
	s.load()
}

func (s *StoreTestSuite) load() {
	store, err := coin.New(s.ctx, s.fixture.Deps)
	s.Require().NoError(err)
	s.store = store
}

func (s *StoreTestSuite) TestFlipDefaultCoin() {
	s.fixture.Roller.Push(1, 2)

	r, err := s.store.Flip(s.ctx)
	s.Require().NoError(err)
	s.Equal(coin.FaceHeads, r.Result)
	s.Equal(coin.DefaultCoinTypeID, r.CoinTypeID)
	s.Equal(coin.KeyDefaultHeads, r.Label)

	r, err = s.store.Flip(s.ctx)
	s.Require().NoError(err)
	s.Equal(coin.FaceTails, r.Result)
	s.Len(s.store.History(), 2)
}

func (s *StoreTestSuite) TestCustomCoinLifecycle() {
	ct, err := s.store.AddCoinType(s.ctx, "Fate", "Yes", "No")
	s.Require().NoError(err)
	s.Require().NoError(s.store.SelectCoinType(s.ctx, ct.ID))

	s.fixture.Roller.Push(2)
	r, err := s.store.Flip(s.ctx)
	s.Require().NoError(err)
	s.Equal("No", r.Label)
	s.Equal(ct.ID, r.CoinTypeID)

	s.load()
	s.Equal(ct.ID, s.store.State().SelectedCoinTypeID)
	s.Len(s.store.CoinTypes(), 2)

	s.Require().NoError(s.store.RemoveCoinType(s.ctx, ct.ID))
	s.Equal(coin.DefaultCoinTypeID, s.store.State().SelectedCoinTypeID)
	s.True(errors.IsNotFound(s.store.RemoveCoinType(s.ctx, ct.ID)))
}

func (s *StoreTestSuite) TestDefaultCannotBeRemoved() {
	err := s.store.RemoveCoinType(s.ctx, coin.DefaultCoinTypeID)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *StoreTestSuite) TestAddCoinTypeValidation() {
	_, err := s.store.AddCoinType(s.ctx, strings.Repeat("x", coin.MaxNameLength+1), "H", "T")
	s.True(errors.IsInvalidArgument(err))
	_, err = s.store.AddCoinType(s.ctx, "Blank", "", "T")
	s.True(errors.IsInvalidArgument(err))
	s.Empty(s.store.State().Config.CoinTypes)
}

func (s *StoreTestSuite) TestSelectUnknownCoin() {
	s.True(errors.IsNotFound(s.store.SelectCoinType(s.ctx, "nope")))
}

func (s *StoreTestSuite) TestMigratesV1Payload() {
	stored := `{"state":{"config":{"newResultsOnTop":false,"customCoins":` +
		`[{"id":"c1","label":"Fate","headsLabel":"Yes","tailsLabel":"No"}]},"selectedCoin":"c1"},"version":1}`
	s.Require().NoError(s.fixture.Storage.SetItem(s.ctx, "coin-storage", stored))

	s.load()

	st := s.store.State()
	s.Equal("c1", st.SelectedCoinTypeID)
	s.Require().Len(st.Config.CoinTypes, 1)
	s.Equal(coin.CoinType{ID: "c1", Name: "Fate", Heads: "Yes", Tails: "No"}, st.Config.CoinTypes[0])
	s.Empty(s.fixture.Notices.Drain())
}

func (s *StoreTestSuite) TestSelectionOfMissingCoinIsCorrupt() {
	stored := `{"state":{"config":{"newResultsOnTop":true,"coinTypes":[]},"selectedCoinTypeID":"gone"},"version":2}`
	s.Require().NoError(s.fixture.Storage.SetItem(s.ctx, "coin-storage", stored))

	s.load()

	s.Equal(coin.DefaultCoinTypeID, s.store.State().SelectedCoinTypeID)
	s.Len(s.fixture.Notices.Drain(), 1)
}
