package dice

import (
	"context"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/rollers"
	"github.com/KirkDiggler/talis/internal/rollers/coin"
	"github.com/KirkDiggler/talis/internal/rollers/d6"
	"github.com/KirkDiggler/talis/internal/rollers/daggerheart"
	"github.com/KirkDiggler/talis/internal/rollers/polyhedral"
	"github.com/KirkDiggler/talis/internal/rollers/shadowrun"
)

// Rollers holds one store per roller
type Rollers struct {
	Shadowrun   *shadowrun.Store
	D6          *d6.Store
	Daggerheart *daggerheart.Store
	Polyhedral  *polyhedral.Store
	Coin        *coin.Store
}

// NewRollers creates and rehydrates every roller store
func NewRollers(ctx context.Context, deps *rollers.Deps) (*Rollers, error) {
	var (
		r   Rollers
		err error
	)
	if r.Shadowrun, err = shadowrun.New(ctx, deps); err != nil {
		return nil, err
	}
	if r.D6, err = d6.New(ctx, deps); err != nil {
		return nil, err
	}
	if r.Daggerheart, err = daggerheart.New(ctx, deps); err != nil {
		return nil, err
	}
	if r.Polyhedral, err = polyhedral.New(ctx, deps); err != nil {
		return nil, err
	}
	if r.Coin, err = coin.New(ctx, deps); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate ensures every store is present
func (r *Rollers) Validate() error {
	vb := errors.NewValidationBuilder()

	if r.Shadowrun == nil {
		vb.RequiredField("Rollers.Shadowrun")
	}
	if r.D6 == nil {
		vb.RequiredField("Rollers.D6")
	}
	if r.Daggerheart == nil {
		vb.RequiredField("Rollers.Daggerheart")
	}
	if r.Polyhedral == nil {
		vb.RequiredField("Rollers.Polyhedral")
	}
	if r.Coin == nil {
		vb.RequiredField("Rollers.Coin")
	}

	return vb.Build()
}

// Controllers returns the stores in display order
func (r *Rollers) Controllers() []rollers.Controller {
	return []rollers.Controller{r.Shadowrun, r.D6, r.Daggerheart, r.Polyhedral, r.Coin}
}

// Controller returns the store of kind
func (r *Rollers) Controller(kind rollers.Kind) rollers.Controller {
	switch kind {
	case rollers.KindShadowrun:
		return r.Shadowrun
	case rollers.KindD6:
		return r.D6
	case rollers.KindDaggerheart:
		return r.Daggerheart
	case rollers.KindPolyhedral:
		return r.Polyhedral
	case rollers.KindCoin:
		return r.Coin
	default:
		return nil
	}
}
