package shadowrun_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/talis/internal/rollers/rollerstest"
	"github.com/KirkDiggler/talis/internal/rollers/shadowrun"
)

type StoreTestSuite struct {
	suite.Suite
	ctx     context.Context
	fixture *rollerstest.Fixture
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.fixture = rollerstest.NewFixture()
}

func (s *StoreTestSuite) TestRollDerivesGlitch() {
	store, err := shadowrun.New(s.ctx, s.fixture.Deps)
	s.Require().NoError(err)
	s.fixture.Roller.Push(1, 1, 1, 2, 6)

	r, err := store.Roll(s.ctx, 5)
	s.Require().NoError(err)

	s.Equal(1, r.Hits)
	s.True(r.IsGlitch)
	s.False(r.IsCriticalGlitch)
	s.Equal("shadowrun", r.GetType())
}

func (s *StoreTestSuite) TestResultJSONIsFlat() {
	store, err := shadowrun.New(s.ctx, s.fixture.Deps)
	s.Require().NoError(err)
	s.fixture.Roller.Push(1, 1, 1, 1)

	r, err := store.Roll(s.ctx, 4)
	s.Require().NoError(err)

	data, err := json.Marshal(r)
	s.Require().NoError(err)
	var out map[string]any
	s.Require().NoError(json.Unmarshal(data, &out))
	s.Equal(true, out["isCriticalGlitch"])
	s.Equal([]any{1.0, 1.0, 1.0, 1.0}, out["results"])
	s.Equal("shadowrun", out["type"])
}

func (s *StoreTestSuite) TestLoadsV2Payload() {
	stored := `{"state":{"config":{"newResultsOnTop":true,"sortDice":false,"showDiceSum":false,` +
		`"freeInputEnabled":true,"quickButtonsEnabled":false,"maxDice":12,` +
		`"quickButtons":[{"id":"q","count":3,"instant":true}]}},"version":2}`
	s.Require().NoError(s.fixture.Storage.SetItem(s.ctx, "shadowrun-storage", stored))

	store, err := shadowrun.New(s.ctx, s.fixture.Deps)
	s.Require().NoError(err)

	cfg := store.State().Config
	s.Equal(12, cfg.MaxDice)
	s.False(cfg.QuickButtonsEnabled)
	s.Require().Len(cfg.QuickButtons, 1)
	s.Equal(3, cfg.QuickButtons[0].Amount)
	s.Empty(s.fixture.Notices.Drain())
}

func (s *StoreTestSuite) TestCorruptedPayloadFallsBackToDefaults() {
	stored := `{"state":{"config":{"maxDice":"lots"}},"version":3}`
	s.Require().NoError(s.fixture.Storage.SetItem(s.ctx, "shadowrun-storage", stored))

	store, err := shadowrun.New(s.ctx, s.fixture.Deps)
	s.Require().NoError(err)

	s.Equal(shadowrun.Defaults().MaxDice, store.State().Config.MaxDice)
	_, ok, err := s.fixture.Storage.GetItem(s.ctx, "shadowrun-storage")
	s.Require().NoError(err)
	s.False(ok)

	notices := s.fixture.Notices.Drain()
	s.Require().Len(notices, 1)
	s.Equal("storage.corrupted.title", notices[0].Message)
	s.Equal("storage.corrupted.description[roller.shadowrun.name]", notices[0].Description)
}
