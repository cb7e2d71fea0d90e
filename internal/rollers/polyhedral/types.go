// Package polyhedral rolls any number of one standard die type
package polyhedral

import (
	"maps"
	"slices"
	"strconv"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/persist"
	"github.com/KirkDiggler/talis/internal/rollers"
)

// DiceTypes lists the supported die sizes
func DiceTypes() []int {
	return []int{4, 6, 8, 10, 12, 20, 100}
}

// IsDiceType reports whether sides is a supported die size
func IsDiceType(sides int) bool {
	return slices.Contains(DiceTypes(), sides)
}

// Quantity bounds
const (
	MinQuantity      = 1
	MaxQuantityLimit = 100
	DefaultMax       = 20
	DefaultDiceType  = 20
)

// Config is the persisted configuration. MaxQuantity has one entry per
// dice type.
type Config struct {
	NewResultsOnTop bool        `json:"newResultsOnTop" yaml:"newResultsOnTop"`
	SortDice        bool        `json:"sortDice" yaml:"sortDice"`
	ShowDiceSum     bool        `json:"showDiceSum" yaml:"showDiceSum"`
	MaxQuantity     map[int]int `json:"maxQuantity" yaml:"maxQuantity"`
}

// Persisted is the part of the state that survives restarts
type Persisted struct {
	Config           Config      `json:"config" yaml:"config"`
	SelectedDiceType int         `json:"selectedDiceType" yaml:"selectedDiceType"`
	Quantities       map[int]int `json:"quantities" yaml:"quantities"`
}

// CanRoll reports whether count dice of sides may be rolled
func (c Config) CanRoll(sides, count int) bool {
	maxQty, ok := c.MaxQuantity[sides]
	return ok && count >= MinQuantity && count <= maxQty
}

// Validate records range errors under path
func (c Config) Validate(path string, vb *errors.ValidationBuilder) {
	validateTypeMap(persist.Path(path, "maxQuantity"), c.MaxQuantity, vb, func(field string, _ int, v int) {
		errors.ValidateIntRange(field, v, MinQuantity, MaxQuantityLimit, vb)
	})
}

// Validate checks the selection against the config
func (p Persisted) Validate(vb *errors.ValidationBuilder) {
	p.Config.Validate("config", vb)
	if !IsDiceType(p.SelectedDiceType) {
		vb.Fieldf("selectedDiceType", "must be one of %v", DiceTypes())
	}
	validateTypeMap("quantities", p.Quantities, vb, func(field string, sides, v int) {
		maxQty, ok := p.Config.MaxQuantity[sides]
		if !ok {
			maxQty = MaxQuantityLimit
		}
		errors.ValidateIntRange(field, v, MinQuantity, maxQty, vb)
	})
}

// validateTypeMap requires exactly one entry per dice type
func validateTypeMap(path string, m map[int]int, vb *errors.ValidationBuilder, check func(field string, sides, v int)) {
	for _, sides := range DiceTypes() {
		field := persist.Path(path, strconv.Itoa(sides))
		v, ok := m[sides]
		if !ok {
			vb.RequiredField(field)
			continue
		}
		check(field, sides, v)
	}
	for _, sides := range slices.Sorted(maps.Keys(m)) {
		if !IsDiceType(sides) {
			vb.Fieldf(persist.Path(path, strconv.Itoa(sides)), "is not a supported dice type")
		}
	}
}

// Patch holds optional config changes. MaxQuantity entries are merged per
// dice type.
type Patch struct {
	NewResultsOnTop *bool       `json:"newResultsOnTop,omitempty"`
	SortDice        *bool       `json:"sortDice,omitempty"`
	ShowDiceSum     *bool       `json:"showDiceSum,omitempty"`
	MaxQuantity     map[int]int `json:"maxQuantity,omitempty"`
}

// Apply merges p over c and validates the result. On error c is returned
// unchanged.
func (c Config) Apply(p Patch) (Config, error) {
	next := c
	next.MaxQuantity = maps.Clone(c.MaxQuantity)
	rollers.SetIf(&next.NewResultsOnTop, p.NewResultsOnTop)
	rollers.SetIf(&next.SortDice, p.SortDice)
	rollers.SetIf(&next.ShowDiceSum, p.ShowDiceSum)
	if len(p.MaxQuantity) > 0 && next.MaxQuantity == nil {
		next.MaxQuantity = make(map[int]int, len(p.MaxQuantity))
	}
	maps.Copy(next.MaxQuantity, p.MaxQuantity)

	vb := errors.NewValidationBuilder()
	next.Validate("config", vb)
	if err := vb.Build(); err != nil {
		return c, err
	}
	return next, nil
}

// Result is a polyhedral roll
type Result struct {
	entities.RollResult `yaml:",inline"`
	DiceType            int `json:"diceType" yaml:"diceType"`
	Total               int `json:"total" yaml:"total"`
}

// Defaults is the config of a fresh install
func Defaults() Config {
	return Config{
		NewResultsOnTop: true,
		SortDice:        false,
		ShowDiceSum:     true,
		MaxQuantity:     perType(DefaultMax),
	}
}

// DefaultQuantities sets every dice type to one die
func DefaultQuantities() map[int]int {
	return perType(MinQuantity)
}

func perType(n int) map[int]int {
	out := make(map[int]int, len(DiceTypes()))
	for _, sides := range DiceTypes() {
		out[sides] = n
	}
	return out
}
