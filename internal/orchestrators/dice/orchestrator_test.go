package dice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/orchestrators/dice"
	"github.com/KirkDiggler/talis/internal/preferences"
	"github.com/KirkDiggler/talis/internal/rollers/coin"
	"github.com/KirkDiggler/talis/internal/rollers/daggerheart"
	"github.com/KirkDiggler/talis/internal/rollers/polyhedral"
	"github.com/KirkDiggler/talis/internal/rollers/rollerstest"
	"github.com/KirkDiggler/talis/internal/rollers/shadowrun"
	"github.com/KirkDiggler/talis/internal/storage"
)

type recordingLanguage struct {
	lang string
}

func (r *recordingLanguage) SetLanguage(lang string) error {
	r.lang = lang
	return nil
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctx      context.Context
	fixture  *rollerstest.Fixture
	ns       *storage.Namespaced
	language *recordingLanguage
	rollers  *dice.Rollers
	svc      dice.Service
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.fixture = rollerstest.NewFixture()
	s.ns = storage.NewNamespaced(s.fixture.Storage, storage.DefaultNamespace)
	s.fixture.Deps.Storage = s.ns
	s.language = &recordingLanguage{}

	rollers, err := dice.NewRollers(s.ctx, s.fixture.Deps)
	s.Require().NoError(err)
	s.rollers = rollers

	prefs, err := preferences.New(&preferences.Config{
		Storage:   s.fixture.Storage,
		Languages: []string{"en", "de"},
	})
	s.Require().NoError(err)

	svc, err := dice.NewOrchestrator(&dice.Config{
		Rollers:     rollers,
		Preferences: prefs,
		Storage:     s.ns,
		Registry:    s.fixture.Registry,
		Language:    s.language,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidates() {
	_, err := dice.NewOrchestrator(&dice.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestRollShadowrun() {
	s.fixture.Roller.Push(1, 1, 1, 2, 6)

	out, err := s.svc.Roll(s.ctx, &dice.RollInput{Roller: "shadowrun", Count: 5})
	s.Require().NoError(err)

	r, ok := out.Result.(shadowrun.Result)
	s.Require().True(ok)
	s.True(r.IsGlitch)
	s.Equal("shadowrun", out.Roller)
}

func (s *OrchestratorTestSuite) TestRollOutOfRange() {
	_, err := s.svc.Roll(s.ctx, &dice.RollInput{Roller: "d6", Count: 500})
	s.True(errors.IsOutOfRange(err))
}

func (s *OrchestratorTestSuite) TestRollUnknownRoller() {
	_, err := s.svc.Roll(s.ctx, &dice.RollInput{Roller: "tarot"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestRollSingleDieRollers() {
	s.fixture.Roller.Push(4, 9, 1)

	out, err := s.svc.Roll(s.ctx, &dice.RollInput{Roller: "daggerheart"})
	s.Require().NoError(err)
	s.Equal(daggerheart.HighlightFear, out.Result.(daggerheart.Result).Highlight)

	out, err = s.svc.Roll(s.ctx, &dice.RollInput{Roller: "coin"})
	s.Require().NoError(err)
	s.Equal(coin.FaceHeads, out.Result.(coin.Result).Result)

	_, err = s.svc.Roll(s.ctx, &dice.RollInput{Roller: "coin", Count: 3})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestRollSingleDieRollersRejectCounts() {
	for _, roller := range []string{"daggerheart", "coin"} {
		for _, count := range []int{-1, 2} {
			_, err := s.svc.Roll(s.ctx, &dice.RollInput{Roller: roller, Count: count})
			s.True(errors.IsInvalidArgument(err), "%s count %d", roller, count)
		}
	}
	s.Empty(s.rollers.Daggerheart.History())
	s.Empty(s.rollers.Coin.History())

	s.fixture.Roller.Push(2)
	_, err := s.svc.Roll(s.ctx, &dice.RollInput{Roller: "coin", Count: 1})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestRollPolyhedralUsesSelection() {
	_, err := s.svc.SelectDiceType(s.ctx, &dice.SelectDiceTypeInput{DiceType: 4, Quantity: 2})
	s.Require().NoError(err)
	s.fixture.Roller.Push(4, 3)

	out, err := s.svc.Roll(s.ctx, &dice.RollInput{Roller: "polyhedral"})
	s.Require().NoError(err)
	r := out.Result.(polyhedral.Result)
	s.Equal(4, r.DiceType)
	s.Equal(7, r.Total)
}

func (s *OrchestratorTestSuite) TestQuickButtonFlow() {
	added, err := s.svc.AddQuickButton(s.ctx, &dice.AddQuickButtonInput{
		Roller: "d6",
		Amount: 2,
		Type:   entities.QuickButtonSetAmount,
	})
	s.Require().NoError(err)

	out, err := s.svc.Roll(s.ctx, &dice.RollInput{Roller: "d6", QuickButtonID: added.Button.ID})
	s.Require().NoError(err)
	s.Nil(out.Result)
	s.Equal(2, s.rollers.D6.State().DiceCount)

	removed, err := s.svc.RemoveQuickButton(s.ctx, &dice.RemoveQuickButtonInput{Roller: "d6", ID: added.Button.ID})
	s.Require().NoError(err)
	for _, b := range removed.Buttons {
		s.NotEqual(added.Button.ID, b.ID)
	}

	_, err = s.svc.AddQuickButton(s.ctx, &dice.AddQuickButtonInput{Roller: "coin", Amount: 1, Type: entities.QuickButtonSetAmount})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestUpdateConfig() {
	out, err := s.svc.UpdateConfig(s.ctx, &dice.UpdateConfigInput{
		Roller: "daggerheart",
		Patch:  map[string]any{"modifier": 3, "showModifier": true},
	})
	s.Require().NoError(err)
	s.Equal(3, out.State.(daggerheart.State).Config.Modifier)

	_, err = s.svc.UpdateConfig(s.ctx, &dice.UpdateConfigInput{
		Roller: "daggerheart",
		Patch:  map[string]any{"modifier": 99},
	})
	s.True(errors.IsInvalidArgument(err))
	s.Equal(3, s.rollers.Daggerheart.State().Config.Modifier)
}

func (s *OrchestratorTestSuite) TestClearHistoryAll() {
	s.fixture.Roller.Push(3, 2, 5)
	_, err := s.svc.Roll(s.ctx, &dice.RollInput{Roller: "d6", Count: 1})
	s.Require().NoError(err)
	_, err = s.svc.Roll(s.ctx, &dice.RollInput{Roller: "daggerheart"})
	s.Require().NoError(err)

	out, err := s.svc.ClearHistory(s.ctx, &dice.ClearHistoryInput{})
	s.Require().NoError(err)
	s.Equal(2, out.RollsCleared)
}

func (s *OrchestratorTestSuite) TestClearAllStorage() {
	_, err := s.svc.AddCoinType(s.ctx, &dice.AddCoinTypeInput{Name: "Fate", Heads: "Yes", Tails: "No"})
	s.Require().NoError(err)
	dark := preferences.ThemeDark
	_, err = s.svc.SetPreferences(s.ctx, &dice.SetPreferencesInput{Patch: preferences.Patch{Theme: &dark}})
	s.Require().NoError(err)
	s.Require().NoError(s.fixture.Storage.SetItem(s.ctx, "talis:legacy-storage", "{}"))

	_, err = s.svc.ClearAllStorage(s.ctx, &dice.ClearAllStorageInput{})
	s.True(errors.IsFailedPrecondition(err))

	out, err := s.svc.ClearAllStorage(s.ctx, &dice.ClearAllStorageInput{Confirm: true})
	s.Require().NoError(err)
	s.Contains(out.KeysRemoved, "coin-storage")
	s.Contains(out.KeysRemoved, "legacy-storage")

	remaining, err := s.fixture.Storage.Keys(s.ctx, "")
	s.Require().NoError(err)
	s.Equal([]string{"theme"}, remaining)
	s.Empty(s.rollers.Coin.State().Config.CoinTypes)

	prefs, err := s.svc.GetPreferences(s.ctx, &dice.GetPreferencesInput{})
	s.Require().NoError(err)
	s.Equal(preferences.ThemeDark, prefs.Preferences.Theme)

	s.fixture.Roller.Push(1)
	_, err = s.svc.Roll(s.ctx, &dice.RollInput{Roller: "coin"})
	s.Require().NoError(err)
	remaining, err = s.fixture.Storage.Keys(s.ctx, "")
	s.Require().NoError(err)
	s.Equal([]string{"theme"}, remaining)
}

func (s *OrchestratorTestSuite) TestCheckStorage() {
	_, err := s.svc.UpdateConfig(s.ctx, &dice.UpdateConfigInput{
		Roller: "d6",
		Patch:  map[string]any{"maxDice": 12},
	})
	s.Require().NoError(err)
	s.Require().NoError(s.fixture.Storage.SetItem(s.ctx, "talis:coin-storage", `{"state":{"config":7},"version":2}`))

	out, err := s.svc.CheckStorage(s.ctx, &dice.CheckStorageInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Reports, 5)

	byRoller := make(map[string]dice.StorageReport)
	for _, r := range out.Reports {
		byRoller[r.Roller] = r
	}
	s.Equal(dice.StorageAbsent, byRoller["shadowrun"].Status)
	s.Equal(dice.StorageOK, byRoller["d6"].Status)
	s.Equal(dice.StorageCorrupted, byRoller["coin"].Status)
	s.NotEmpty(byRoller["coin"].Error)
	s.False(byRoller["coin"].Removed)
	s.Empty(s.fixture.Notices.Drain())

	_, ok, err := s.fixture.Storage.GetItem(s.ctx, "talis:coin-storage")
	s.Require().NoError(err)
	s.True(ok)

	out, err = s.svc.CheckStorage(s.ctx, &dice.CheckStorageInput{Fix: true})
	s.Require().NoError(err)
	for _, r := range out.Reports {
		if r.Roller == "coin" {
			s.True(r.Removed)
		}
	}
	_, ok, err = s.fixture.Storage.GetItem(s.ctx, "talis:coin-storage")
	s.Require().NoError(err)
	s.False(ok)

	_, ok, err = s.fixture.Storage.GetItem(s.ctx, "talis:d6-storage")
	s.Require().NoError(err)
	s.True(ok)
}

func (s *OrchestratorTestSuite) TestSetPreferencesSwitchesLanguage() {
	lang := "de"
	out, err := s.svc.SetPreferences(s.ctx, &dice.SetPreferencesInput{Patch: preferences.Patch{Language: &lang}})
	s.Require().NoError(err)
	s.Equal("de", out.Preferences.Language)
	s.Equal("de", s.language.lang)
}

func (s *OrchestratorTestSuite) TestGetStateAll() {
	out, err := s.svc.GetState(s.ctx, &dice.GetStateInput{})
	s.Require().NoError(err)
	s.Require().Len(out.States, 5)
	s.Equal("shadowrun", out.States[0].Roller)
	s.Equal("ready", out.States[0].Status)
}

func (s *OrchestratorTestSuite) TestSelectCoinType() {
	added, err := s.svc.AddCoinType(s.ctx, &dice.AddCoinTypeInput{Name: "Fate", Heads: "Yes", Tails: "No"})
	s.Require().NoError(err)

	out, err := s.svc.SelectCoinType(s.ctx, &dice.SelectCoinTypeInput{ID: added.CoinType.ID})
	s.Require().NoError(err)
	s.Equal("Fate", out.CoinType.Name)

	removed, err := s.svc.RemoveCoinType(s.ctx, &dice.RemoveCoinTypeInput{ID: added.CoinType.ID})
	s.Require().NoError(err)
	s.Equal(coin.DefaultCoinTypeID, removed.SelectedCoinTypeID)
}
