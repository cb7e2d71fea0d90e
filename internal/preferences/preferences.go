// Package preferences stores app-wide display settings. They live under
// their own unprefixed keys so clearing roller data never touches them.
package preferences

import (
	"context"
	"log/slog"
	"slices"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/storage"
)

// Storage keys
const (
	KeyTheme    = "theme"
	KeyMode     = "mode"
	KeyLanguage = "language"
)

// Theme is the color scheme
type Theme string

// Themes
const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Themes lists valid themes
func Themes() []Theme {
	return []Theme{ThemeLight, ThemeDark, ThemeSystem}
}

// Mode is the layout density
type Mode string

// Modes
const (
	ModeDefault Mode = "default"
	ModeCompact Mode = "compact"
)

// Modes lists valid modes
func Modes() []Mode {
	return []Mode{ModeDefault, ModeCompact}
}

// Preferences are the app-wide settings
type Preferences struct {
	Theme    Theme  `json:"theme" yaml:"theme"`
	Mode     Mode   `json:"mode" yaml:"mode"`
	Language string `json:"language" yaml:"language"`
}

// Patch holds optional preference changes
type Patch struct {
	Theme    *Theme  `json:"theme,omitempty"`
	Mode     *Mode   `json:"mode,omitempty"`
	Language *string `json:"language,omitempty"`
}

// Config holds the dependencies for a Store
type Config struct {
	// Storage must not be namespaced
	Storage storage.KeyValue
	// Languages are the selectable locales; the first is the default
	Languages []string
	Logger    *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Storage == nil {
		vb.RequiredField("Storage")
	}
	if len(c.Languages) == 0 {
		vb.RequiredField("Languages")
	}

	return vb.Build()
}

// Store reads and writes preferences
type Store struct {
	storage   storage.KeyValue
	languages []string
	logger    *slog.Logger
}

// New creates a preferences store
func New(cfg *Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		storage:   cfg.Storage,
		languages: slices.Clone(cfg.Languages),
		logger:    logger,
	}, nil
}

// Defaults returns the preferences of a fresh install
func (s *Store) Defaults() Preferences {
	return Preferences{
		Theme:    ThemeSystem,
		Mode:     ModeDefault,
		Language: s.languages[0],
	}
}

// Load reads the stored preferences. Missing, unreadable or invalid values
// fall back to defaults.
func (s *Store) Load(ctx context.Context) Preferences {
	p := s.Defaults()
	if v, ok := s.read(ctx, KeyTheme); ok && slices.Contains(Themes(), Theme(v)) {
		p.Theme = Theme(v)
	}
	if v, ok := s.read(ctx, KeyMode); ok && slices.Contains(Modes(), Mode(v)) {
		p.Mode = Mode(v)
	}
	if v, ok := s.read(ctx, KeyLanguage); ok && slices.Contains(s.languages, v) {
		p.Language = v
	}
	return p
}

func (s *Store) read(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.storage.GetItem(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read preference",
			"key", key,
			"error", err,
		)
		return "", false
	}
	return v, ok
}

// Set validates and writes the changed preferences
func (s *Store) Set(ctx context.Context, patch Patch) (Preferences, error) {
	vb := errors.NewValidationBuilder()
	if patch.Theme != nil {
		errors.ValidateEnum(KeyTheme, *patch.Theme, Themes(), vb)
	}
	if patch.Mode != nil {
		errors.ValidateEnum(KeyMode, *patch.Mode, Modes(), vb)
	}
	if patch.Language != nil {
		errors.ValidateEnum(KeyLanguage, *patch.Language, s.languages, vb)
	}
	if err := vb.Build(); err != nil {
		return s.Load(ctx), err
	}

	writes := make(map[string]string, 3)
	if patch.Theme != nil {
		writes[KeyTheme] = string(*patch.Theme)
	}
	if patch.Mode != nil {
		writes[KeyMode] = string(*patch.Mode)
	}
	if patch.Language != nil {
		writes[KeyLanguage] = *patch.Language
	}
	for key, value := range writes {
		if err := s.storage.SetItem(ctx, key, value); err != nil {
			return s.Load(ctx), errors.Wrapf(err, "failed to save %s", key)
		}
	}

	p := s.Load(ctx)
	s.logger.InfoContext(ctx, "Preferences updated",
		"theme", p.Theme,
		"mode", p.Mode,
		"language", p.Language,
	)
	return p, nil
}
