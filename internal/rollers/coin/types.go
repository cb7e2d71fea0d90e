// Package coin flips coins with default or user-defined face names
package coin

import (
	"slices"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/persist"
	"github.com/KirkDiggler/talis/internal/rollers"
)

// DefaultCoinTypeID is the built-in coin. It is not stored in config and
// cannot be removed.
const DefaultCoinTypeID = "default"

// Limits on user-defined coins
const (
	MaxNameLength = 40
	MaxCoinTypes  = 20
)

// Translation keys of the default coin
const (
	KeyDefaultName  = "coin.default.name"
	KeyDefaultHeads = "coin.default.heads"
	KeyDefaultTails = "coin.default.tails"
)

// Face is the side a coin landed on
type Face string

// Faces
const (
	FaceHeads Face = "heads"
	FaceTails Face = "tails"
)

// CoinType names a coin and its faces
type CoinType struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Heads string `json:"heads" yaml:"heads"`
	Tails string `json:"tails" yaml:"tails"`
}

// Validate checks the coin's fields, reporting under path
func (c CoinType) Validate(path string, vb *errors.ValidationBuilder) {
	errors.ValidateRequired(path+".id", c.ID, vb)
	if c.ID == DefaultCoinTypeID {
		vb.Fieldf(path+".id", "%s is reserved", DefaultCoinTypeID)
	}
	for field, value := range map[string]string{"name": c.Name, "heads": c.Heads, "tails": c.Tails} {
		errors.ValidateRequired(path+"."+field, value, vb)
		errors.ValidateMaxLength(path+"."+field, value, MaxNameLength, vb)
	}
}

// FaceName returns the display name of f
func (c CoinType) FaceName(f Face) string {
	if f == FaceHeads {
		return c.Heads
	}
	return c.Tails
}

// Config is the persisted configuration
type Config struct {
	NewResultsOnTop bool       `json:"newResultsOnTop" yaml:"newResultsOnTop"`
	CoinTypes       []CoinType `json:"coinTypes" yaml:"coinTypes"`
}

// Persisted is the part of the state that survives restarts
type Persisted struct {
	Config             Config `json:"config" yaml:"config"`
	SelectedCoinTypeID string `json:"selectedCoinTypeID" yaml:"selectedCoinTypeID"`
}

// Validate checks coin types and the selection
func (p Persisted) Validate(vb *errors.ValidationBuilder) {
	p.Config.Validate("config", vb)
	if !p.Config.HasCoinType(p.SelectedCoinTypeID) {
		vb.Fieldf("selectedCoinTypeID", "unknown coin type %s", p.SelectedCoinTypeID)
	}
}

// Validate records field errors under path
func (c Config) Validate(path string, vb *errors.ValidationBuilder) {
	list := persist.Path(path, "coinTypes")
	if len(c.CoinTypes) > MaxCoinTypes {
		vb.Fieldf(list, "must have at most %d entries", MaxCoinTypes)
	}
	seen := make(map[string]bool, len(c.CoinTypes))
	for i, ct := range c.CoinTypes {
		ip := persist.Index(list, i)
		ct.Validate(ip, vb)
		if seen[ct.ID] {
			vb.Fieldf(ip+".id", "duplicate coin type id %s", ct.ID)
		}
		seen[ct.ID] = true
	}
}

// HasCoinType reports whether id names the default or a configured coin
func (c Config) HasCoinType(id string) bool {
	if id == DefaultCoinTypeID {
		return true
	}
	return slices.ContainsFunc(c.CoinTypes, func(ct CoinType) bool { return ct.ID == id })
}

// Patch holds optional config changes. Coin types change through their own
// actions.
type Patch struct {
	NewResultsOnTop *bool `json:"newResultsOnTop,omitempty"`
}

// Apply merges p over c
func (c Config) Apply(p Patch) (Config, error) {
	next := c
	rollers.SetIf(&next.NewResultsOnTop, p.NewResultsOnTop)
	return next, nil
}

// Result is a coin flip. Results holds the raw d2 draw, one for heads.
type Result struct {
	entities.RollResult `yaml:",inline"`
	CoinTypeID          string `json:"coinTypeId" yaml:"coinTypeId"`
	Result              Face   `json:"result" yaml:"result"`
	// Label is the face name at flip time
	Label string `json:"label" yaml:"label"`
}

// FaceOf maps a d2 draw to a face
func FaceOf(draw int) Face {
	if draw == 1 {
		return FaceHeads
	}
	return FaceTails
}

// Defaults is the config of a fresh install
func Defaults() Config {
	return Config{NewResultsOnTop: true, CoinTypes: []CoinType{}}
}
