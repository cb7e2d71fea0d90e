// Package pool implements the d6 dice pool shared by the Shadowrun and D6
// rollers: a pending dice count, quick buttons and a bounded maximum.
package pool

import (
	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/persist"
	"github.com/KirkDiggler/talis/internal/rollers"
)

// Sides is the die size of every pool roll
const Sides = 6

// Bounds of the configurable maximum dice count
const (
	MinDice      = 1
	MaxDiceLimit = 100
)

// Config is the persisted configuration of a pool roller
type Config struct {
	NewResultsOnTop     bool                   `json:"newResultsOnTop" yaml:"newResultsOnTop"`
	SortDice            bool                   `json:"sortDice" yaml:"sortDice"`
	ShowDiceSum         bool                   `json:"showDiceSum" yaml:"showDiceSum"`
	FreeInputEnabled    bool                   `json:"freeInputEnabled" yaml:"freeInputEnabled"`
	QuickButtonsEnabled bool                   `json:"quickButtonsEnabled" yaml:"quickButtonsEnabled"`
	MaxDice             int                    `json:"maxDice" yaml:"maxDice"`
	QuickButtons        []entities.QuickButton `json:"quickButtons" yaml:"quickButtons"`
}

// Persisted is the part of a pool roller's state that survives restarts
type Persisted struct {
	Config Config `json:"config" yaml:"config"`
}

// CanRoll reports whether count dice may be rolled under this config
func (c Config) CanRoll(count int) bool {
	return count >= MinDice && count <= c.MaxDice
}

// Validate records range, enum and uniqueness errors under path
func (c Config) Validate(path string, vb *errors.ValidationBuilder) {
	errors.ValidateIntRange(persist.Path(path, "maxDice"), c.MaxDice, MinDice, MaxDiceLimit, vb)

	seen := make(map[string]bool, len(c.QuickButtons))
	qpath := persist.Path(path, "quickButtons")
	for i, b := range c.QuickButtons {
		ip := persist.Index(qpath, i)
		b.Validate(ip, vb)
		if seen[b.ID] {
			vb.Fieldf(ip+".id", "duplicate quick button id %s", b.ID)
		}
		seen[b.ID] = true
	}
}

// Schema returns the validator for the current persisted shape
func Schema() persist.Schema[Persisted] {
	return persist.SchemaFunc[Persisted](decodePersisted)
}

func decodePersisted(raw map[string]any) (Persisted, error) {
	r := persist.NewReader()
	obj := r.Object(raw, "", "config")
	if obj == nil {
		return Persisted{}, r.Err()
	}
	cfg := decodeConfig(r, obj, "config")
	if err := r.Err(); err != nil {
		return Persisted{}, err
	}
	return Persisted{Config: cfg}, nil
}

func decodeConfig(r *persist.Reader, obj map[string]any, path string) Config {
	c := Config{
		NewResultsOnTop:     r.Bool(obj, path, "newResultsOnTop"),
		SortDice:            r.Bool(obj, path, "sortDice"),
		ShowDiceSum:         r.Bool(obj, path, "showDiceSum"),
		FreeInputEnabled:    r.Bool(obj, path, "freeInputEnabled"),
		QuickButtonsEnabled: r.Bool(obj, path, "quickButtonsEnabled"),
		MaxDice:             r.Int(obj, path, "maxDice"),
	}

	qpath := persist.Path(path, "quickButtons")
	items := r.Array(obj, path, "quickButtons")
	c.QuickButtons = make([]entities.QuickButton, 0, len(items))
	for i, item := range items {
		ip := persist.Index(qpath, i)
		m, ok := item.(map[string]any)
		if !ok {
			r.Builder().Field(ip, "must be an object")
			continue
		}
		c.QuickButtons = append(c.QuickButtons, entities.QuickButton{
			ID:     r.String(m, ip, "id"),
			Amount: r.Int(m, ip, "amount"),
			Type:   entities.QuickButtonType(r.String(m, ip, "type")),
		})
	}

	if !r.Builder().HasErrors() {
		c.Validate(path, r.Builder())
	}
	return c
}

// check runs c through the persistence schema
func (c Config) check() error {
	raw, err := persist.ToMap(Persisted{Config: c.normalized()})
	if err != nil {
		return err
	}
	if _, err := decodePersisted(raw); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid config")
	}
	return nil
}

func (c Config) normalized() Config {
	if c.QuickButtons == nil {
		c.QuickButtons = []entities.QuickButton{}
	}
	return c
}

// Patch holds optional config changes. Nil fields are left alone.
type Patch struct {
	NewResultsOnTop     *bool `json:"newResultsOnTop,omitempty"`
	SortDice            *bool `json:"sortDice,omitempty"`
	ShowDiceSum         *bool `json:"showDiceSum,omitempty"`
	FreeInputEnabled    *bool `json:"freeInputEnabled,omitempty"`
	QuickButtonsEnabled *bool `json:"quickButtonsEnabled,omitempty"`
	MaxDice             *int  `json:"maxDice,omitempty"`
}

// Apply merges p over c and validates the result. On error c is returned
// unchanged.
func (c Config) Apply(p Patch) (Config, error) {
	next := c
	rollers.SetIf(&next.NewResultsOnTop, p.NewResultsOnTop)
	rollers.SetIf(&next.SortDice, p.SortDice)
	rollers.SetIf(&next.ShowDiceSum, p.ShowDiceSum)
	rollers.SetIf(&next.FreeInputEnabled, p.FreeInputEnabled)
	rollers.SetIf(&next.QuickButtonsEnabled, p.QuickButtonsEnabled)
	rollers.SetIf(&next.MaxDice, p.MaxDice)

	if err := next.check(); err != nil {
		return c, err
	}
	return next.normalized(), nil
}
