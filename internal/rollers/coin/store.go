package coin

import (
	"context"
	"slices"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/persist"
	"github.com/KirkDiggler/talis/internal/rollers"
	"github.com/KirkDiggler/talis/internal/store"
)

// Sides of the virtual die behind a flip
const Sides = 2

// State is the in-memory state of the roller
type State struct {
	Config             Config   `json:"config" yaml:"config"`
	SelectedCoinTypeID string   `json:"selectedCoinTypeID" yaml:"selectedCoinTypeID"`
	History            []Result `json:"history" yaml:"history"`
}

// Store is the coin roller store
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

	kind := rollers.KindCoin
	initial := State{
		Config:             Defaults(),
		SelectedCoinTypeID: DefaultCoinTypeID,
		History:            []Result{},
	}
	st, err := store.New(ctx, rollers.StoreConfig(deps, kind, initial, &store.PersistConfig[State, Persisted]{
		Name:       kind.StorageKey(),
		Version:    Version,
		Migrations: Migrations(),
		Schema:     Schema(),
		Label:      kind.Label(),
		Partialize: func(s State) Persisted {
			return Persisted{Config: s.Config, SelectedCoinTypeID: s.SelectedCoinTypeID}
		},
		Merge: func(s State, p Persisted) State {
			s.Config = p.Config
			s.SelectedCoinTypeID = p.SelectedCoinTypeID
			return s
		},
	}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create coin store")
	}

	return &Store{deps: deps, state: st}, nil
}

// Kind returns the roller kind
func (s *Store) Kind() rollers.Kind {
	return rollers.KindCoin
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

// History returns the flips in display order
func (s *Store) History() []Result {
	return s.Snapshot().(State).History
}

// DefaultCoinType returns the built-in coin in the current language
func (s *Store) DefaultCoinType() CoinType {
	t := s.deps.Translator
	return CoinType{
		ID:    DefaultCoinTypeID,
		Name:  t.T(KeyDefaultName),
		Heads: t.T(KeyDefaultHeads),
		Tails: t.T(KeyDefaultTails),
	}
}

// CoinTypes returns the default coin followed by the configured ones
func (s *Store) CoinTypes() []CoinType {
	return append([]CoinType{s.DefaultCoinType()}, s.State().Config.CoinTypes...)
}

func (s *Store) coinType(cfg Config, id string) (CoinType, bool) {
	if id == DefaultCoinTypeID {
		return s.DefaultCoinType(), true
	}
	i := slices.IndexFunc(cfg.CoinTypes, func(ct CoinType) bool { return ct.ID == id })
	if i < 0 {
		return CoinType{}, false
	}
	return cfg.CoinTypes[i], true
}

// CanRoll reports whether a flip is possible
func (s *Store) CanRoll() bool {
	return s.Status() == store.StatusReady
}

// Flip flips the selected coin
func (s *Store) Flip(ctx context.Context) (Result, error) {
	var result Result
	_, err := s.state.Update(ctx, "flip", func(st State) (State, error) {
		ct, ok := s.coinType(st.Config, st.SelectedCoinTypeID)
		if !ok {
			return st, errors.FailedPrecondition("selected coin type no longer exists")
		}
		faces, err := s.deps.Draw(1, Sides)
		if err != nil {
			return st, err
		}
		face := FaceOf(faces[0])
		result = Result{
			RollResult: s.deps.Stamp(rollers.KindCoin, faces),
			CoinTypeID: ct.ID,
			Result:     face,
			Label:      ct.FaceName(face),
		}
		st.History = entities.Append(st.History, result)
		return st, nil
	})
	if err != nil {
		return Result{}, err
	}

	s.deps.LogRoll(rollers.KindCoin, result.RollResult,
		"coin_type", result.CoinTypeID,
		"result", result.Result,
	)
	return result, nil
}

// SelectCoinType changes the coin used by Flip
func (s *Store) SelectCoinType(ctx context.Context, id string) error {
	_, err := s.state.Update(ctx, "selectCoinType", func(st State) (State, error) {
		if !st.Config.HasCoinType(id) {
			return st, errors.NotFoundf("coin type %s not found", id)
		}
		st.SelectedCoinTypeID = id
		return st, nil
	})
	return err
}

// AddCoinType adds a user-defined coin with a fresh id
func (s *Store) AddCoinType(ctx context.Context, name, heads, tails string) (CoinType, error) {
	ct := CoinType{
		ID:    s.deps.IDGenerator.Generate(),
		Name:  name,
		Heads: heads,
		Tails: tails,
	}
	_, err := s.state.Update(ctx, "addCoinType", func(st State) (State, error) {
		cfg := st.Config
		cfg.CoinTypes = entities.Append(cfg.CoinTypes, ct)

		vb := errors.NewValidationBuilder()
		cfg.Validate("config", vb)
		if err := vb.Build(); err != nil {
			return st, err
		}
		st.Config = cfg
		return st, nil
	})
	if err != nil {
		return CoinType{}, err
	}
	return ct, nil
}

// RemoveCoinType deletes a user-defined coin. Removing the selected coin
// selects the default.
func (s *Store) RemoveCoinType(ctx context.Context, id string) error {
	if id == DefaultCoinTypeID {
		return errors.FailedPrecondition("the default coin type cannot be removed")
	}
	_, err := s.state.Update(ctx, "removeCoinType", func(st State) (State, error) {
		i := slices.IndexFunc(st.Config.CoinTypes, func(ct CoinType) bool { return ct.ID == id })
		if i < 0 {
			return st, errors.NotFoundf("coin type %s not found", id)
		}
		st.Config.CoinTypes = slices.Delete(slices.Clone(st.Config.CoinTypes), i, i+1)
		if st.SelectedCoinTypeID == id {
			st.SelectedCoinTypeID = DefaultCoinTypeID
		}
		return st, nil
	})
	return err
}

// ClearHistory empties the flip history. Config and selection are untouched.
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
