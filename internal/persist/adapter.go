package persist

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/notify"
	"github.com/KirkDiggler/talis/internal/storage"
)

// Translation keys used for the corruption notice
const (
	KeyCorruptedTitle       = "storage.corrupted.title"
	KeyCorruptedDescription = "storage.corrupted.description"
)

// Schema decodes an untyped, already migrated payload into P. Decoding is
// all-or-nothing.
type Schema[P any] interface {
	Decode(raw map[string]any) (P, error)
}

// SchemaFunc adapts a function to Schema
type SchemaFunc[P any] func(raw map[string]any) (P, error)

// Decode calls f
func (f SchemaFunc[P]) Decode(raw map[string]any) (P, error) {
	return f(raw)
}

// Translator resolves display strings by key
type Translator interface {
	T(key string, args ...any) string
}

type envelope[P any] struct {
	State   P   `json:"state"`
	Version int `json:"version"`
}

// AdapterConfig holds the dependencies for an Adapter
type AdapterConfig[P any] struct {
	Storage    storage.KeyValue
	Schema     Schema[P]
	Version    int
	Migrations []Migration
	Notifier   notify.Notifier
	Translator Translator
	// Label is the translation key naming the owner in notices
	Label  string
	Logger *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *AdapterConfig[P]) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Storage == nil {
		vb.RequiredField("Storage")
	}
	if c.Schema == nil {
		vb.RequiredField("Schema")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}
	if c.Translator == nil {
		vb.RequiredField("Translator")
	}
	if c.Version < 0 {
		vb.InvalidField("Version", "must not be negative")
	}
	for _, m := range c.Migrations {
		if m.Transform == nil {
			vb.Fieldf("Migrations", "version %d has no transform", m.TargetVersion)
		}
	}

	return vb.Build()
}

// Adapter is the validated storage adapter for one persisted type
type Adapter[P any] struct {
	storage    storage.KeyValue
	schema     Schema[P]
	version    int
	migrations []Migration
	notifier   notify.Notifier
	translator Translator
	label      string
	logger     *slog.Logger
}

// NewAdapter creates an adapter with the provided dependencies
func NewAdapter[P any](cfg *AdapterConfig[P]) (*Adapter[P], error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Adapter[P]{
		storage:    cfg.Storage,
		schema:     cfg.Schema,
		version:    cfg.Version,
		migrations: cfg.Migrations,
		notifier:   cfg.Notifier,
		translator: cfg.Translator,
		label:      cfg.Label,
		logger:     logger,
	}, nil
}

// Version returns the schema version written by Save
func (a *Adapter[P]) Version() int {
	return a.version
}

// Load reads key and returns the decoded value. It reports false when the
// key is absent, unreadable or corrupted; corrupted keys are deleted and a
// notice is raised.
func (a *Adapter[P]) Load(ctx context.Context, key string) (P, bool) {
	var zero P

	raw, ok, err := a.storage.GetItem(ctx, key)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to read persisted state",
			"key", key,
			"error", err,
		)
		return zero, false
	}
	if !ok {
		return zero, false
	}

	value, err := a.decode(raw)
	if err != nil {
		a.discard(ctx, key, err)
		return zero, false
	}
	return value, true
}

// Check reads key the way Load does but leaves it in place and raises no
// notice. It reports whether a value is stored and, if so, why it would be
// discarded. Read failures carry CodeUnavailable.
func (a *Adapter[P]) Check(ctx context.Context, key string) (bool, error) {
	raw, ok, err := a.storage.GetItem(ctx, key)
	if err != nil {
		return false, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read persisted state")
	}
	if !ok {
		return false, nil
	}
	if _, err := a.decode(raw); err != nil {
		return true, err
	}
	return true, nil
}

func (a *Adapter[P]) decode(raw string) (P, error) {
	var zero P

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return zero, errors.WrapWithCode(err, errors.CodeDataLoss, "stored payload is not valid JSON")
	}

	state, version, err := unwrap(parsed)
	if err != nil {
		return zero, err
	}

	migrated, err := Migrate(state, version, a.version, a.migrations)
	if err != nil {
		return zero, err
	}

	value, err := a.schema.Decode(migrated)
	if err != nil {
		return zero, errors.WrapWithCode(err, errors.CodeDataLoss, "stored payload failed validation")
	}
	return value, nil
}

// unwrap extracts the inner state of a {state, version} envelope. A bare
// object is taken as version 0 state.
func unwrap(parsed any) (map[string]any, int, error) {
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, 0, errors.DataLoss("stored payload is not an object")
	}

	inner, hasState := obj["state"]
	rawVersion, hasVersion := obj["version"]
	if !hasState || !hasVersion {
		return obj, 0, nil
	}

	state, ok := inner.(map[string]any)
	if !ok {
		return nil, 0, errors.DataLoss("stored state is not an object")
	}
	version, ok := AsInt(rawVersion)
	if !ok || version < 0 {
		return nil, 0, errors.DataLossf("stored version %v is not a valid version", rawVersion)
	}
	return state, version, nil
}

func (a *Adapter[P]) discard(ctx context.Context, key string, cause error) {
	a.logger.WarnContext(ctx, "Discarding corrupted persisted state",
		"key", key,
		"error", cause,
	)
	a.Remove(ctx, key)

	label := key
	if a.label != "" {
		label = a.translator.T(a.label)
	}
	a.notifier.Error(ctx, a.translator.T(KeyCorruptedTitle), notify.Options{
		Description: a.translator.T(KeyCorruptedDescription, label),
	})
}

// Save writes value under key. Failures are logged and otherwise ignored;
// the caller's in-memory state stays authoritative.
func (a *Adapter[P]) Save(ctx context.Context, key string, value P) {
	data, err := json.Marshal(envelope[P]{State: value, Version: a.version})
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to serialize persisted state",
			"key", key,
			"error", err,
		)
		return
	}

	if err := a.storage.SetItem(ctx, key, string(data)); err != nil {
		a.logger.ErrorContext(ctx, "Failed to write persisted state",
			"key", key,
			"error", err,
		)
	}
}

// Remove deletes key. Failures are logged.
func (a *Adapter[P]) Remove(ctx context.Context, key string) {
	if err := a.storage.RemoveItem(ctx, key); err != nil {
		a.logger.ErrorContext(ctx, "Failed to remove persisted state",
			"key", key,
			"error", err,
		)
	}
}
