package pool

import (
	"context"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/persist"
	"github.com/KirkDiggler/talis/internal/rollers"
	"github.com/KirkDiggler/talis/internal/store"
)

// State is the in-memory state of a pool roller with results of type R
type State[R any] struct {
	Config    Config `json:"config" yaml:"config"`
	DiceCount int    `json:"diceCount" yaml:"diceCount"`
	History   []R    `json:"history" yaml:"history"`
}

// Definition describes one pool roller
type Definition[R any] struct {
	Kind       rollers.Kind
	Version    int
	Migrations []persist.Migration
	Defaults   Config
	// Derive adds the roller's derived fields to a fresh roll
	Derive func(base entities.RollResult) R
	// Describe returns extra log attributes for a roll; optional
	Describe func(R) []any
}

// Store is a pool roller
type Store[R any] struct {
	def   Definition[R]
	deps  *rollers.Deps
	state *store.Store[State[R]]
}

var _ rollers.Controller = (*Store[entities.RollResult])(nil)

// New creates a pool roller store and rehydrates its config
func New[R any](ctx context.Context, deps *rollers.Deps, def Definition[R]) (*Store[R], error) {
	if err := deps.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid dependencies")
	}
	if def.Derive == nil {
		return nil, errors.InvalidArgument("definition requires Derive")
	}

	initial := State[R]{
		Config:    def.Defaults.normalized(),
		DiceCount: MinDice,
		History:   []R{},
	}
	st, err := store.New(ctx, rollers.StoreConfig(deps, def.Kind, initial, &store.PersistConfig[State[R], Persisted]{
		Name:       def.Kind.StorageKey(),
		Version:    def.Version,
		Migrations: def.Migrations,
		Schema:     Schema(),
		Label:      def.Kind.Label(),
		Partialize: func(s State[R]) Persisted {
			return Persisted{Config: s.Config.normalized()}
		},
		Merge: func(s State[R], p Persisted) State[R] {
			s.Config = p.Config.normalized()
			s.DiceCount = clampCount(s.DiceCount, s.Config.MaxDice)
			return s
		},
	}))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s store", def.Kind)
	}

	return &Store[R]{def: def, deps: deps, state: st}, nil
}

func clampCount(count, maxDice int) int {
	return min(max(count, MinDice), maxDice)
}

// Kind returns the roller kind
func (s *Store[R]) Kind() rollers.Kind {
	return s.def.Kind
}

// Status returns the store lifecycle state
func (s *Store[R]) Status() store.Status {
	return s.state.Status()
}

// State returns the current state
func (s *Store[R]) State() State[R] {
	return s.state.State()
}

// Snapshot returns the current state for display
func (s *Store[R]) Snapshot() any {
	st := s.State()
	st.History = entities.Ordered(st.History, st.Config.NewResultsOnTop)
	return st
}

// History returns the rolls in display order
func (s *Store[R]) History() []R {
	st := s.state.State()
	return entities.Ordered(st.History, st.Config.NewResultsOnTop)
}

// Subscribe registers fn to run after every state change
func (s *Store[R]) Subscribe(fn func(State[R])) func() {
	return s.state.Subscribe(fn)
}

// CanRoll reports whether count dice may be rolled
func (s *Store[R]) CanRoll(count int) bool {
	return s.state.State().Config.CanRoll(count)
}

// Roll rolls count dice and appends the result to history
func (s *Store[R]) Roll(ctx context.Context, count int) (R, error) {
	return s.roll(ctx, func(State[R]) int { return count })
}

// RollPending rolls the pending dice count
func (s *Store[R]) RollPending(ctx context.Context) (R, error) {
	return s.roll(ctx, func(st State[R]) int { return st.DiceCount })
}

func (s *Store[R]) roll(ctx context.Context, pick func(State[R]) int) (R, error) {
	var (
		result R
		base   entities.RollResult
	)
	_, err := s.state.Update(ctx, "roll", func(st State[R]) (State[R], error) {
		count := pick(st)
		if !st.Config.CanRoll(count) {
			return st, errors.OutOfRangef("cannot roll %d dice, allowed range is %d-%d", count, MinDice, st.Config.MaxDice).
				WithMeta("max_dice", st.Config.MaxDice)
		}
		faces, err := s.deps.Draw(count, Sides)
		if err != nil {
			return st, err
		}
		base = s.deps.Stamp(s.def.Kind, faces)
		result = s.def.Derive(base)
		st.History = entities.Append(st.History, result)
		return st, nil
	})
	if err != nil {
		var zero R
		return zero, err
	}

	var attrs []any
	if s.def.Describe != nil {
		attrs = s.def.Describe(result)
	}
	s.deps.LogRoll(s.def.Kind, base, attrs...)
	return result, nil
}

// SetDiceCount sets the pending dice count
func (s *Store[R]) SetDiceCount(ctx context.Context, count int) error {
	_, err := s.state.Update(ctx, "setDiceCount", func(st State[R]) (State[R], error) {
		if !st.Config.CanRoll(count) {
			return st, errors.OutOfRangef("dice count %d outside %d-%d", count, MinDice, st.Config.MaxDice)
		}
		st.DiceCount = count
		return st, nil
	})
	return err
}

// PressQuickButton runs the quick button id. An instant-roll button returns
// its roll; a set-amount button changes the pending count and returns nil.
func (s *Store[R]) PressQuickButton(ctx context.Context, id string) (*R, error) {
	cfg := s.state.State().Config
	if !cfg.QuickButtonsEnabled {
		return nil, errors.FailedPrecondition("quick buttons are disabled")
	}
	b, ok := entities.FindQuickButton(cfg.QuickButtons, id)
	if !ok {
		return nil, errors.NotFoundf("quick button %s not found", id)
	}

	switch b.Type {
	case entities.QuickButtonInstantRoll:
		r, err := s.Roll(ctx, b.Amount)
		if err != nil {
			return nil, err
		}
		return &r, nil
	case entities.QuickButtonSetAmount:
		return nil, s.SetDiceCount(ctx, b.Amount)
	default:
		return nil, errors.Internalf("unknown quick button type %q", b.Type)
	}
}

// ClearHistory empties the roll history. Config is untouched.
func (s *Store[R]) ClearHistory(ctx context.Context) int {
	cleared := 0
	s.state.Set(ctx, "clearHistory", func(st State[R]) State[R] {
		cleared = len(st.History)
		st.History = []R{}
		return st
	})
	return cleared
}

// UpdateConfig applies a config patch. The pending count is clamped to a
// lowered maximum.
func (s *Store[R]) UpdateConfig(ctx context.Context, patch Patch) (Config, error) {
	st, err := s.state.Update(ctx, "updateConfig", func(st State[R]) (State[R], error) {
		cfg, err := st.Config.Apply(patch)
		if err != nil {
			return st, err
		}
		st.Config = cfg
		st.DiceCount = clampCount(st.DiceCount, cfg.MaxDice)
		return st, nil
	})
	return st.Config, err
}

// PatchConfig decodes raw into a Patch and applies it
func (s *Store[R]) PatchConfig(ctx context.Context, raw map[string]any) error {
	var p Patch
	if err := persist.DecodePatch(raw, &p); err != nil {
		return err
	}
	_, err := s.UpdateConfig(ctx, p)
	return err
}

// AddQuickButton adds a button with a fresh id
func (s *Store[R]) AddQuickButton(ctx context.Context, amount int, typ entities.QuickButtonType) (entities.QuickButton, error) {
	b := entities.QuickButton{
		ID:     s.deps.IDGenerator.Generate(),
		Amount: amount,
		Type:   typ,
	}
	err := s.editButtons(ctx, "addQuickButton", func(buttons []entities.QuickButton) ([]entities.QuickButton, error) {
		return entities.AddQuickButton(buttons, b)
	})
	if err != nil {
		return entities.QuickButton{}, err
	}
	return b, nil
}

// UpdateQuickButton patches the button id
func (s *Store[R]) UpdateQuickButton(ctx context.Context, id string, patch entities.QuickButtonPatch) error {
	return s.editButtons(ctx, "updateQuickButton", func(buttons []entities.QuickButton) ([]entities.QuickButton, error) {
		return entities.UpdateQuickButton(buttons, id, patch)
	})
}

// RemoveQuickButton deletes the button id
func (s *Store[R]) RemoveQuickButton(ctx context.Context, id string) error {
	return s.editButtons(ctx, "removeQuickButton", func(buttons []entities.QuickButton) ([]entities.QuickButton, error) {
		return entities.RemoveQuickButton(buttons, id)
	})
}

func (s *Store[R]) editButtons(ctx context.Context, action string, fn func([]entities.QuickButton) ([]entities.QuickButton, error)) error {
	_, err := s.state.Update(ctx, action, func(st State[R]) (State[R], error) {
		buttons, err := fn(st.Config.QuickButtons)
		if err != nil {
			return st, err
		}
		cfg := st.Config
		cfg.QuickButtons = buttons
		if err := cfg.check(); err != nil {
			return st, err
		}
		st.Config = cfg.normalized()
		return st, nil
	})
	return err
}

// Reset restores defaults without writing to storage
func (s *Store[R]) Reset(ctx context.Context) {
	s.state.Reset(ctx)
}

// Verify checks the persisted state without loading it
func (s *Store[R]) Verify(ctx context.Context) (bool, error) {
	return s.state.Verify(ctx)
}
