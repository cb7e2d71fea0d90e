package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/i18n"
)

func TestEmbeddedCatalogsAreComplete(t *testing.T) {
	bundle, err := i18n.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"de", "en", "es"}, bundle.Languages())

	base := bundle.Keys(i18n.BaseLocale)
	require.NotEmpty(t, base)
	for _, lang := range bundle.Languages() {
		assert.Equal(t, base, bundle.Keys(lang), "locale %s is missing keys", lang)
	}
}

func TestLocalizer(t *testing.T) {
	bundle, err := i18n.Load()
	require.NoError(t, err)

	l, err := i18n.NewLocalizer(bundle, "en")
	require.NoError(t, err)
	assert.Equal(t, "3 hits", l.T("roll.shadowrun.hits", 3))

	require.NoError(t, l.SetLanguage("de-AT"))
	assert.Equal(t, "de", l.Language())
	assert.Equal(t, "3 Erfolge", l.T("roll.shadowrun.hits", 3))
	assert.Equal(t, "Kopf", l.T("coin.default.heads"))
}

func TestLocalizerUnknownKeyEchoes(t *testing.T) {
	bundle, err := i18n.Load()
	require.NoError(t, err)

	l, err := i18n.NewLocalizer(bundle, "es")
	require.NoError(t, err)
	assert.Equal(t, "no.such.key", l.T("no.such.key"))
}

func TestLocalizerRejectsUnsupportedLanguage(t *testing.T) {
	bundle, err := i18n.Load()
	require.NoError(t, err)

	_, err = i18n.NewLocalizer(bundle, "ja")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = i18n.NewLocalizer(bundle, "not a tag!")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestLoadFSRequiresBaseLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/de.yaml": {Data: []byte("locale: de\nmessages:\n  a: \"b\"\n")},
	}
	_, err := i18n.LoadFS(fsys)
	assert.ErrorContains(t, err, "base locale en")
}

func TestLoadFSRejectsMalformedCatalogs(t *testing.T) {
	tests := []struct {
		name     string
		catalogs fstest.MapFS
		contains string
	}{
		{
			name: "duplicate locale",
			catalogs: fstest.MapFS{
				"locales/en.yaml":  {Data: []byte("locale: en\nmessages:\n  a: \"b\"\n")},
				"locales/en2.yaml": {Data: []byte("locale: en\nmessages:\n  a: \"c\"\n")},
			},
			contains: "defined twice",
		},
		{
			name: "missing locale",
			catalogs: fstest.MapFS{
				"locales/en.yaml": {Data: []byte("messages:\n  a: \"b\"\n")},
			},
			contains: "locale is required",
		},
		{
			name: "not yaml",
			catalogs: fstest.MapFS{
				"locales/en.yaml": {Data: []byte("locale: [en\n")},
			},
			contains: "failed to parse catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := i18n.LoadFS(tt.catalogs)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.ErrorContains(t, err, tt.contains)
		})
	}
}

func TestLoadFSMissingBaseLocaleIsFailedPrecondition(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/es.yaml": {Data: []byte("locale: es\nmessages:\n  a: \"b\"\n")},
	}
	_, err := i18n.LoadFS(fsys)
	assert.True(t, errors.IsFailedPrecondition(err))
}
