package shadowrun

import (
	"context"

	"github.com/KirkDiggler/talis/internal/rollers"
	"github.com/KirkDiggler/talis/internal/rollers/pool"
)

// Store is the Shadowrun roller store
type Store = pool.Store[Result]

// State is the Shadowrun roller state
type State = pool.State[Result]

// Definition describes the Shadowrun roller
func Definition() pool.Definition[Result] {
	return pool.Definition[Result]{
		Kind:       rollers.KindShadowrun,
		Version:    Version,
		Migrations: Migrations(),
		Defaults:   Defaults(),
		Derive:     derive,
		Describe:   describe,
	}
}

// New creates the Shadowrun store and rehydrates its config
func New(ctx context.Context, deps *rollers.Deps) (*Store, error) {
	return pool.New(ctx, deps, Definition())
}
