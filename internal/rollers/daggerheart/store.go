package daggerheart

import (
	"context"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/persist"
	"github.com/KirkDiggler/talis/internal/rollers"
	"github.com/KirkDiggler/talis/internal/store"
)

// State is the in-memory state of the roller
type State struct {
	Config  Config   `json:"config" yaml:"config"`
	History []Result `json:"history" yaml:"history"`
}

// Store is the Daggerheart roller store
type Store struct {
	deps  *rollers.Deps
	state *store.Store[State]
}

var _ rollers.Controller = (*Store)(nil)

// New creates the store and rehydrates its config
func New(ctx context.Context, deps *rollers.Deps) (*Store, error) {
	if err := deps.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid dependencies")
	}

	kind := rollers.KindDaggerheart
	initial := State{Config: Defaults(), History: []Result{}}
	st, err := store.New(ctx, rollers.StoreConfig(deps, kind, initial, &store.PersistConfig[State, Persisted]{
		Name:       kind.StorageKey(),
		Version:    Version,
		Migrations: Migrations(),
		Schema:     Schema(),
		Label:      kind.Label(),
		Partialize: func(s State) Persisted { return Persisted{Config: s.Config} },
		Merge: func(s State, p Persisted) State {
			s.Config = p.Config
			return s
		},
	}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create daggerheart store")
	}

	return &Store{deps: deps, state: st}, nil
}

// Kind returns the roller kind
func (s *Store) Kind() rollers.Kind {
	return rollers.KindDaggerheart
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

// CanRoll reports whether a roll is possible. A duality roll has no count.
func (s *Store) CanRoll() bool {
	return s.Status() == store.StatusReady
}

// Roll rolls hope and fear
func (s *Store) Roll(ctx context.Context) (Result, error) {
	var result Result
	_, err := s.state.Update(ctx, "roll", func(st State) (State, error) {
		faces, err := s.deps.Draw(2, Sides)
		if err != nil {
			return st, err
		}
		base := s.deps.Stamp(rollers.KindDaggerheart, faces)
		result = derive(base, st.Config.ActiveModifier())
		st.History = entities.Append(st.History, result)
		return st, nil
	})
	if err != nil {
		return Result{}, err
	}

	s.deps.LogRoll(rollers.KindDaggerheart, result.RollResult,
		"hope", result.Hope,
		"fear", result.Fear,
		"highlight", result.Highlight,
		"total", result.Total,
	)
	return result, nil
}

// ClearHistory empties the roll history. Config is untouched.
func (s *Store) ClearHistory(ctx context.Context) int {
	cleared := 0
	s.state.Set(ctx, "clearHistory", func(st State) State {
		cleared = len(st.History)
		st.History = []Result{}
		return st
	})
	return cleared
}

// UpdateConfig applies a config patch
func (s *Store) UpdateConfig(ctx context.Context, patch Patch) (Config, error) {
	st, err := s.state.Update(ctx, "updateConfig", func(st State) (State, error) {
		cfg, err := st.Config.Apply(patch)
		if err != nil {
			return st, err
		}
		st.Config = cfg
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
