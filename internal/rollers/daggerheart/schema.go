package daggerheart

import (
	"github.com/KirkDiggler/talis/internal/persist"
)

// Version is the current persisted schema version
const Version = 2

// Migrations upgrades older payloads.
//
//	v2: config.showModifier added; it is on when a modifier was set
func Migrations() []persist.Migration {
	return []persist.Migration{
		{TargetVersion: 2, Transform: addShowModifier},
	}
}

func addShowModifier(state map[string]any) (map[string]any, error) {
	return persist.EditObject(state, "config", func(cfg map[string]any) error {
		if _, ok := cfg["showModifier"]; ok {
			return nil
		}
		n, _ := persist.AsInt(cfg["modifier"])
		cfg["showModifier"] = n != 0
		return nil
	})
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
	cfg := Config{
		NewResultsOnTop: r.Bool(obj, "config", "newResultsOnTop"),
		ShowModifier:    r.Bool(obj, "config", "showModifier"),
		Modifier:        r.Int(obj, "config", "modifier"),
	}
	if !r.Builder().HasErrors() {
		cfg.Validate("config", r.Builder())
	}
	if err := r.Err(); err != nil {
		return Persisted{}, err
	}
	return Persisted{Config: cfg}, nil
}
