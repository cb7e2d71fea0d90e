// Package rollers holds what every dice roller shares: its dependencies and
// the helpers that turn random draws into roll results.
package rollers

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/notify"
	"github.com/KirkDiggler/talis/internal/persist"
	"github.com/KirkDiggler/talis/internal/pkg/clock"
	"github.com/KirkDiggler/talis/internal/pkg/idgen"
	"github.com/KirkDiggler/talis/internal/registry"
	"github.com/KirkDiggler/talis/internal/storage"
	"github.com/KirkDiggler/talis/internal/store"
)

// Kind names a roller
type Kind string

// Known rollers
const (
	KindShadowrun   Kind = "shadowrun"
	KindD6          Kind = "d6"
	KindDaggerheart Kind = "daggerheart"
	KindPolyhedral  Kind = "polyhedral"
	KindCoin        Kind = "coin"
)

// Kinds lists every roller in display order
func Kinds() []Kind {
	return []Kind{KindShadowrun, KindD6, KindDaggerheart, KindPolyhedral, KindCoin}
}

// StorageKey returns the persistence key of a roller
func (k Kind) StorageKey() string {
	return string(k) + "-storage"
}

// Label returns the translation key of the roller's display name
func (k Kind) Label() string {
	return "roller." + string(k) + ".name"
}

// ParseKind validates a roller name
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == name {
			return k, nil
		}
	}
	return "", errors.InvalidArgumentf("unknown roller %q", name)
}

// Deps holds the dependencies shared by every roller store
type Deps struct {
	Storage     storage.KeyValue
	Registry    *registry.Registry
	Notifier    notify.Notifier
	Translator  persist.Translator
	Roller      dice.Roller
	Clock       clock.Clock
	IDGenerator idgen.Generator
	Inspector   store.Inspector
	Logger      *slog.Logger
}

// Validate ensures all required dependencies are provided
func (d *Deps) Validate() error {
	vb := errors.NewValidationBuilder()

	if d.Storage == nil {
		vb.RequiredField("Storage")
	}
	if d.Registry == nil {
		vb.RequiredField("Registry")
	}
	if d.Notifier == nil {
		vb.RequiredField("Notifier")
	}
	if d.Translator == nil {
		vb.RequiredField("Translator")
	}
	if d.Roller == nil {
		vb.RequiredField("Roller")
	}
	if d.Clock == nil {
		vb.RequiredField("Clock")
	}
	if d.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// StoreConfig fills a store config with the shared dependencies
func StoreConfig[S, P any](d *Deps, kind Kind, initial S, p *store.PersistConfig[S, P]) *store.Config[S, P] {
	return &store.Config[S, P]{
		Name:       string(kind),
		Initial:    initial,
		Persist:    p,
		Storage:    d.Storage,
		Registry:   d.Registry,
		Notifier:   d.Notifier,
		Translator: d.Translator,
		Inspector:  d.Inspector,
		Logger:     d.Logger,
	}
}

// Draw rolls count independent dice with faces 1..size
func (d *Deps) Draw(count, size int) ([]int, error) {
	if count <= 0 {
		return nil, errors.OutOfRangef("dice count must be positive, got %d", count)
	}
	faces, err := d.Roller.RollN(count, size)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %dd%d", count, size)
	}
	if len(faces) != count {
		return nil, errors.Internalf("roller returned %d dice, expected %d", len(faces), count)
	}
	return faces, nil
}

// Stamp wraps faces into a RollResult with a fresh id and the current time
func (d *Deps) Stamp(kind Kind, faces []int) entities.RollResult {
	return entities.RollResult{
		ID:        d.IDGenerator.Generate(),
		Type:      string(kind),
		Results:   faces,
		Timestamp: d.Clock.Now().UnixMilli(),
	}
}

// LogRoll records a completed roll
func (d *Deps) LogRoll(kind Kind, r entities.RollResult, attrs ...any) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	args := append([]any{
		"roller", kind,
		"roll_id", r.ID,
		"dice", len(r.Results),
	}, attrs...)
	logger.Info("Dice rolled successfully", args...)
}

// SetIf copies *v into *dst when v is set. Config patches use it to apply
// optional fields.
func SetIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Controller is the part of every roller store that the application root
// drives without knowing the roller type.
type Controller interface {
	Kind() Kind
	Status() store.Status
	// PatchConfig decodes an untyped config patch and applies it
	PatchConfig(ctx context.Context, raw map[string]any) error
	// ClearHistory empties the roll history and returns how many rolls it held
	ClearHistory(ctx context.Context) int
	// Reset restores defaults without writing to storage
	Reset(ctx context.Context)
	// Snapshot returns the current state for display
	Snapshot() any
	// Verify reports whether persisted data exists and why it would be
	// rejected on the next load
	Verify(ctx context.Context) (bool, error)
}
