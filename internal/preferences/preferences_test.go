package preferences_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/preferences"
	"github.com/KirkDiggler/talis/internal/storage"
	storagemock "github.com/KirkDiggler/talis/internal/storage/mock"
)

type PreferencesTestSuite struct {
	suite.Suite
	ctx   context.Context
	kv    *storage.Memory
	store *preferences.Store
}

func TestPreferencesSuite(t *testing.T) {
	suite.Run(t, new(PreferencesTestSuite))
}

func (s *PreferencesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.kv = storage.NewMemory()

	store, err := preferences.New(&preferences.Config{
		Storage:   s.kv,
		Languages: []string{"en", "de", "es"},
	})
	s.Require().NoError(err)
	s.store = store
}

func (s *PreferencesTestSuite) TestDefaults() {
	s.Equal(preferences.Preferences{
		Theme:    preferences.ThemeSystem,
		Mode:     preferences.ModeDefault,
		Language: "en",
	}, s.store.Load(s.ctx))
}

func (s *PreferencesTestSuite) TestSetWritesUnprefixedKeys() {
	dark := preferences.ThemeDark
	lang := "de"
	p, err := s.store.Set(s.ctx, preferences.Patch{Theme: &dark, Language: &lang})
	s.Require().NoError(err)
	s.Equal(preferences.ThemeDark, p.Theme)
	s.Equal("de", p.Language)

	v, ok, err := s.kv.GetItem(s.ctx, "theme")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("dark", v)

	_, ok, err = s.kv.GetItem(s.ctx, "mode")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *PreferencesTestSuite) TestSetRejectsUnknownValues() {
	bogus := preferences.Theme("neon")
	fr := "fr"
	_, err := s.store.Set(s.ctx, preferences.Patch{Theme: &bogus, Language: &fr})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	keys, err := s.kv.Keys(s.ctx, "")
	s.Require().NoError(err)
	s.Empty(keys)
}

func (s *PreferencesTestSuite) TestInvalidStoredValueFallsBack() {
	s.Require().NoError(s.kv.SetItem(s.ctx, "mode", "tiny"))
	s.Equal(preferences.ModeDefault, s.store.Load(s.ctx).Mode)
}

func (s *PreferencesTestSuite) TestReadErrorFallsBack() {
	ctrl := gomock.NewController(s.T())
	kv := storagemock.NewMockKeyValue(ctrl)
	kv.EXPECT().GetItem(gomock.Any(), gomock.Any()).
		Return("", false, errors.Unavailable("redis down")).Times(3)

	store, err := preferences.New(&preferences.Config{Storage: kv, Languages: []string{"en"}})
	s.Require().NoError(err)
	s.Equal(store.Defaults(), store.Load(s.ctx))
}
