package d6

import (
	"context"

	"github.com/KirkDiggler/talis/internal/rollers"
	"github.com/KirkDiggler/talis/internal/rollers/pool"
)

// Store is the d6 roller store
type Store = pool.Store[Result]

// State is the d6 roller state
type State = pool.State[Result]

// Definition describes the d6 roller
func Definition() pool.Definition[Result] {
	return pool.Definition[Result]{
		Kind:       rollers.KindD6,
		Version:    Version,
		Migrations: Migrations(),
		Defaults:   Defaults(),
		Derive:     derive,
		Describe:   describe,
	}
}

// New creates the d6 store and rehydrates its config
func New(ctx context.Context, deps *rollers.Deps) (*Store, error) {
	return pool.New(ctx, deps, Definition())
}
