// Package d6 is the plain d6 pool roller
package d6

import (
	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/rollers/pool"
)

// Result is a d6 roll with its sum
type Result struct {
	entities.RollResult `yaml:",inline"`
	Total               int `json:"total" yaml:"total"`
}

func derive(base entities.RollResult) Result {
	return Result{RollResult: base, Total: base.Sum()}
}

func describe(r Result) []any {
	return []any{"total", r.Total}
}

// Defaults is the config of a fresh install
func Defaults() pool.Config {
	return pool.Config{
		NewResultsOnTop:     true,
		SortDice:            false,
		ShowDiceSum:         true,
		FreeInputEnabled:    true,
		QuickButtonsEnabled: true,
		MaxDice:             20,
		QuickButtons: []entities.QuickButton{
			{ID: "d6-1", Amount: 1, Type: entities.QuickButtonInstantRoll},
			{ID: "d6-2", Amount: 2, Type: entities.QuickButtonInstantRoll},
			{ID: "d6-3", Amount: 3, Type: entities.QuickButtonInstantRoll},
		},
	}
}
