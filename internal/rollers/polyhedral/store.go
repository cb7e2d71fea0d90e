package polyhedral

import (
	"context"
	"maps"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/persist"
	"github.com/KirkDiggler/talis/internal/rollers"
	"github.com/KirkDiggler/talis/internal/store"
)

// State is the in-memory state of the roller
type State struct {
	Config           Config      `json:"config" yaml:"config"`
	SelectedDiceType int         `json:"selectedDiceType" yaml:"selectedDiceType"`
	Quantities       map[int]int `json:"quantities" yaml:"quantities"`
	History          []Result    `json:"history" yaml:"history"`
}

// Quantity returns the remembered quantity of the selected dice type
func (s State) Quantity() int {
	return s.Quantities[s.SelectedDiceType]
}

// Store is the polyhedral roller store
type Store struct {
	deps  *rollers.Deps
	state *store.Store[State]
}

var _ rollers.Controller = (*Store)(nil)

// New creates the store and rehydrates its config and selection
func New(ctx context.Context, deps *rollers.Deps) (*Store, error) {
	if err := deps.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid dependencies")
	}

	kind := rollers.KindPolyhedral
	initial := State{
		Config:           Defaults(),
		SelectedDiceType: DefaultDiceType,
		Quantities:       DefaultQuantities(),
		History:          []Result{},
	}
	st, err := store.New(ctx, rollers.StoreConfig(deps, kind, initial, &store.PersistConfig[State, Persisted]{
		Name:       kind.StorageKey(),
		Version:    Version,
		Migrations: Migrations(),
		Schema:     Schema(),
		Label:      kind.Label(),
		Partialize: func(s State) Persisted {
			return Persisted{
				Config:           s.Config,
				SelectedDiceType: s.SelectedDiceType,
				Quantities:       s.Quantities,
			}
		},
		Merge: func(s State, p Persisted) State {
			s.Config = p.Config
			s.SelectedDiceType = p.SelectedDiceType
			s.Quantities = p.Quantities
			return s
		},
	}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create polyhedral store")
	}

	return &Store{deps: deps, state: st}, nil
}

// Kind returns the roller kind
func (s *Store) Kind() rollers.Kind {
	return rollers.KindPolyhedral
}

// Status returns the store lifecycle state
func (s *Store) Status() store.Status {
	return s.state.Status()
}

// State returns the current state
func (s *Store) State() State {
	return s.state.State()
}

// Snapshot returns the state with history in display order
func (s *Store) Snapshot() any {
	st := s.State()
	st.History = entities.Ordered(st.History, st.Config.NewResultsOnTop)
	return st
}

// History returns the rolls in display order
func (s *Store) History() []Result {
	return s.Snapshot().(State).History
}

// CanRoll reports whether count dice of sides may be rolled
func (s *Store) CanRoll(sides, count int) bool {
	return s.State().Config.CanRoll(sides, count)
}

// Roll rolls count dice of sides. The dice type becomes the selection and
// count its remembered quantity.
func (s *Store) Roll(ctx context.Context, sides, count int) (Result, error) {
	return s.roll(ctx, func(State) (int, int) { return sides, count })
}

// RollSelected rolls the remembered quantity of the selected dice type
func (s *Store) RollSelected(ctx context.Context) (Result, error) {
	return s.roll(ctx, func(st State) (int, int) { return st.SelectedDiceType, st.Quantity() })
}

func (s *Store) roll(ctx context.Context, pick func(State) (int, int)) (Result, error) {
	var result Result
	_, err := s.state.Update(ctx, "roll", func(st State) (State, error) {
		sides, count := pick(st)
		if !IsDiceType(sides) {
			return st, errors.InvalidArgumentf("unsupported dice type d%d", sides)
		}
		if !st.Config.CanRoll(sides, count) {
			return st, errors.OutOfRangef("cannot roll %d d%d, allowed range is %d-%d",
				count, sides, MinQuantity, st.Config.MaxQuantity[sides])
		}
		faces, err := s.deps.Draw(count, sides)
		if err != nil {
			return st, err
		}
		base := s.deps.Stamp(rollers.KindPolyhedral, faces)
		result = Result{RollResult: base, DiceType: sides, Total: base.Sum()}

		st.History = entities.Append(st.History, result)
		st.SelectedDiceType = sides
		st.Quantities = withQuantity(st.Quantities, sides, count)
		return st, nil
	})
	if err != nil {
		return Result{}, err
	}

	s.deps.LogRoll(rollers.KindPolyhedral, result.RollResult,
		"dice_type", result.DiceType,
		"total", result.Total,
	)
	return result, nil
}

func withQuantity(q map[int]int, sides, count int) map[int]int {
	out := maps.Clone(q)
	if out == nil {
		out = make(map[int]int)
	}
	out[sides] = count
	return out
}

// SelectDiceType changes the selected dice type
func (s *Store) SelectDiceType(ctx context.Context, sides int) error {
	_, err := s.state.Update(ctx, "selectDiceType", func(st State) (State, error) {
		if !IsDiceType(sides) {
			return st, errors.InvalidArgumentf("unsupported dice type d%d", sides)
		}
		st.SelectedDiceType = sides
		return st, nil
	})
	return err
}

// SetQuantity remembers count for the dice type sides
func (s *Store) SetQuantity(ctx context.Context, sides, count int) error {
	_, err := s.state.Update(ctx, "setQuantity", func(st State) (State, error) {
		if !IsDiceType(sides) {
			return st, errors.InvalidArgumentf("unsupported dice type d%d", sides)
		}
		if !st.Config.CanRoll(sides, count) {
			return st, errors.OutOfRangef("quantity %d outside %d-%d", count, MinQuantity, st.Config.MaxQuantity[sides])
		}
		st.Quantities = withQuantity(st.Quantities, sides, count)
		return st, nil
	})
	return err
}

// ClearHistory empties the roll history. Config and selection are untouched.
func (s *Store) ClearHistory(ctx context.Context) int {
	cleared := 0
	s.state.Set(ctx, "clearHistory", func(st State) State {
		cleared = len(st.History)
		st.History = []Result{}
		return st
	})
	return cleared
}

// UpdateConfig applies a config patch. Remembered quantities above a lowered
// maximum are clamped.
func (s *Store) UpdateConfig(ctx context.Context, patch Patch) (Config, error) {
	st, err := s.state.Update(ctx, "updateConfig", func(st State) (State, error) {
		cfg, err := st.Config.Apply(patch)
		if err != nil {
			return st, err
		}
		st.Config = cfg
		quantities := maps.Clone(st.Quantities)
		for sides, n := range quantities {
			if maxQty, ok := cfg.MaxQuantity[sides]; ok && n > maxQty {
				quantities[sides] = maxQty
			}
		}
		st.Quantities = quantities
		return st, nil
	})
	return st.Config, err
}

// PatchConfig decodes raw into a Patch and applies it
func (s *Store) PatchConfig(ctx context.Context, raw map[string]any) error {
	var p Patch
	if err := persist.DecodePatch(raw, &p); err != nil {
		return err
	}
	_, err := s.UpdateConfig(ctx, p)
	return err
}

// Subscribe registers fn to run after every state change
func (s *Store) Subscribe(fn func(State)) func() {
	return s.state.Subscribe(fn)
}

// Reset restores defaults without writing to storage
func (s *Store) Reset(ctx context.Context) {
	s.state.Reset(ctx)
}

// Verify checks the persisted state without loading it
func (s *Store) Verify(ctx context.Context) (bool, error) {
	return s.state.Verify(ctx)
}
