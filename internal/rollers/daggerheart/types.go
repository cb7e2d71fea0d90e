// Package daggerheart is the Daggerheart duality dice roller: one hope d12
// and one fear d12.
package daggerheart

import (
	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/persist"
	"github.com/KirkDiggler/talis/internal/rollers"
)

// Sides of each duality die
const Sides = 12

// Modifier bounds
const (
	MinModifier = -20
	MaxModifier = 20
)

// Highlight names the die that decides a roll
type Highlight string

// Highlights
const (
	HighlightHope     Highlight = "hope"
	HighlightFear     Highlight = "fear"
	HighlightCritical Highlight = "critical"
)

// Config is the persisted configuration
type Config struct {
	NewResultsOnTop bool `json:"newResultsOnTop" yaml:"newResultsOnTop"`
	ShowModifier    bool `json:"showModifier" yaml:"showModifier"`
	Modifier        int  `json:"modifier" yaml:"modifier"`
}

// Persisted is the part of the state that survives restarts
type Persisted struct {
	Config Config `json:"config" yaml:"config"`
}

// Validate records range errors under path
func (c Config) Validate(path string, vb *errors.ValidationBuilder) {
	errors.ValidateIntRange(persist.Path(path, "modifier"), c.Modifier, MinModifier, MaxModifier, vb)
}

// ActiveModifier is the modifier added to totals. A hidden modifier is not
// applied.
func (c Config) ActiveModifier() int {
	if !c.ShowModifier {
		return 0
	}
	return c.Modifier
}

// Patch holds optional config changes
type Patch struct {
	NewResultsOnTop *bool `json:"newResultsOnTop,omitempty"`
	ShowModifier    *bool `json:"showModifier,omitempty"`
	Modifier        *int  `json:"modifier,omitempty"`
}

// Apply merges p over c and validates the result. On error c is returned
// unchanged.
func (c Config) Apply(p Patch) (Config, error) {
	next := c
	rollers.SetIf(&next.NewResultsOnTop, p.NewResultsOnTop)
	rollers.SetIf(&next.ShowModifier, p.ShowModifier)
	rollers.SetIf(&next.Modifier, p.Modifier)

	raw, err := persist.ToMap(Persisted{Config: next})
	if err != nil {
		return c, err
	}
	if _, err := decodePersisted(raw); err != nil {
		return c, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid config")
	}
	return next, nil
}

// Result is a duality roll. Results holds hope then fear.
type Result struct {
	entities.RollResult `yaml:",inline"`
	Hope                int       `json:"hope" yaml:"hope"`
	Fear                int       `json:"fear" yaml:"fear"`
	Modifier            int       `json:"modifier" yaml:"modifier"`
	Total               int       `json:"total" yaml:"total"`
	Critical            bool      `json:"critical" yaml:"critical"`
	Highlight           Highlight `json:"highlight" yaml:"highlight"`
}

// Judge returns which die decides a hope/fear pair. Equal dice are a
// critical.
func Judge(hope, fear int) Highlight {
	switch {
	case hope == fear:
		return HighlightCritical
	case hope > fear:
		return HighlightHope
	default:
		return HighlightFear
	}
}

func derive(base entities.RollResult, modifier int) Result {
	hope, fear := base.Results[0], base.Results[1]
	h := Judge(hope, fear)
	return Result{
		RollResult: base,
		Hope:       hope,
		Fear:       fear,
		Modifier:   modifier,
		Total:      hope + fear + modifier,
		Critical:   h == HighlightCritical,
		Highlight:  h,
	}
}

// Defaults is the config of a fresh install
func Defaults() Config {
	return Config{NewResultsOnTop: true}
}
