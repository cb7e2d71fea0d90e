package polyhedral

import (
	"strconv"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/persist"
)

// Version is the current persisted schema version
const Version = 2

// Migrations upgrades older payloads.
//
//	v2: config.maxDice became per type config.maxQuantity and the single
//	    quantity became per type quantities
func Migrations() []persist.Migration {
	return []persist.Migration{
		{TargetVersion: 2, Transform: perTypeQuantities},
	}
}

func perTypeQuantities(state map[string]any) (map[string]any, error) {
	out, err := persist.EditObject(state, "config", func(cfg map[string]any) error {
		raw, ok := cfg["maxDice"]
		if !ok {
			return nil
		}
		maxDice, ok := persist.AsInt(raw)
		if !ok {
			return errors.DataLossf("config.maxDice %v is not an integer", raw)
		}
		delete(cfg, "maxDice")
		cfg["maxQuantity"] = typeMap(func(int) any { return maxDice })
		return nil
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out["quantity"]
	if !ok {
		return out, nil
	}
	qty, ok := persist.AsInt(raw)
	if !ok {
		return nil, errors.DataLossf("quantity %v is not an integer", raw)
	}
	selected, _ := persist.AsInt(out["selectedDiceType"])
	delete(out, "quantity")
	out["quantities"] = typeMap(func(sides int) any {
		if sides == selected {
			return qty
		}
		return MinQuantity
	})
	return out, nil
}

func typeMap(value func(sides int) any) map[string]any {
	out := make(map[string]any, len(DiceTypes()))
	for _, sides := range DiceTypes() {
		out[strconv.Itoa(sides)] = value(sides)
	}
	return out
}

// Schema returns the validator for the current persisted shape
func Schema() persist.Schema[Persisted] {
	return persist.SchemaFunc[Persisted](decodePersisted)
}

func decodePersisted(raw map[string]any) (Persisted, error) {
	r := persist.NewReader()

	var p Persisted
	if obj := r.Object(raw, "", "config"); obj != nil {
		p.Config = Config{
			NewResultsOnTop: r.Bool(obj, "config", "newResultsOnTop"),
			SortDice:        r.Bool(obj, "config", "sortDice"),
			ShowDiceSum:     r.Bool(obj, "config", "showDiceSum"),
			MaxQuantity:     readTypeMap(r, obj, "config", "maxQuantity"),
		}
	}
	p.SelectedDiceType = r.Int(raw, "", "selectedDiceType")
	p.Quantities = readTypeMap(r, raw, "", "quantities")

	if !r.Builder().HasErrors() {
		p.Validate(r.Builder())
	}
	if err := r.Err(); err != nil {
		return Persisted{}, err
	}
	return p, nil
}

// readTypeMap reads an object keyed by dice type
func readTypeMap(r *persist.Reader, obj map[string]any, parent, key string) map[int]int {
	m := r.Object(obj, parent, key)
	if m == nil {
		return nil
	}
	path := persist.Path(parent, key)
	out := make(map[int]int, len(m))
	for k, v := range m {
		field := persist.Path(path, k)
		sides, err := strconv.Atoi(k)
		if err != nil {
			r.Builder().Field(field, "is not a dice type")
			continue
		}
		n, ok := persist.AsInt(v)
		if !ok {
			r.Builder().Field(field, "must be an integer")
			continue
		}
		out[sides] = n
	}
	return out
}
