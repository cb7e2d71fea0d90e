// Package shadowrun is the Shadowrun d6 pool roller. Faces of five or six
// are hits; too many ones are a glitch.
package shadowrun

import (
	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/rollers/pool"
)

// HitThreshold is the lowest face that counts as a hit
const HitThreshold = 5

// Result is a Shadowrun roll
type Result struct {
	entities.RollResult `yaml:",inline"`
	Hits                int  `json:"hits" yaml:"hits"`
	IsGlitch            bool `json:"isGlitch" yaml:"isGlitch"`
	IsCriticalGlitch    bool `json:"isCriticalGlitch" yaml:"isCriticalGlitch"`
}

// Outcome holds the derived fields of a roll
type Outcome struct {
	Hits             int
	Ones             int
	IsGlitch         bool
	IsCriticalGlitch bool
}

// Evaluate derives hits and glitches from faces. A glitch is half or more
// of the dice showing one; a critical glitch is a glitch without hits.
func Evaluate(faces []int) Outcome {
	var o Outcome
	for _, f := range faces {
		switch {
		case f >= HitThreshold:
			o.Hits++
		case f == 1:
			o.Ones++
		}
	}
	o.IsGlitch = len(faces) > 0 && o.Ones*2 >= len(faces)
	o.IsCriticalGlitch = o.IsGlitch && o.Hits == 0
	return o
}

func derive(base entities.RollResult) Result {
	o := Evaluate(base.Results)
	return Result{
		RollResult:       base,
		Hits:             o.Hits,
		IsGlitch:         o.IsGlitch,
		IsCriticalGlitch: o.IsCriticalGlitch,
	}
}

func describe(r Result) []any {
	return []any{
		"hits", r.Hits,
		"glitch", r.IsGlitch,
		"critical_glitch", r.IsCriticalGlitch,
	}
}

// Defaults is the config of a fresh install
func Defaults() pool.Config {
	return pool.Config{
		NewResultsOnTop:     true,
		SortDice:            true,
		ShowDiceSum:         false,
		FreeInputEnabled:    true,
		QuickButtonsEnabled: true,
		MaxDice:             50,
		QuickButtons: []entities.QuickButton{
			{ID: "sr-4", Amount: 4, Type: entities.QuickButtonInstantRoll},
			{ID: "sr-8", Amount: 8, Type: entities.QuickButtonInstantRoll},
			{ID: "sr-12", Amount: 12, Type: entities.QuickButtonInstantRoll},
		},
	}
}
