package d6

import (
	"maps"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/persist"
)

// Version is the current persisted schema version
const Version = 2

// Migrations upgrades older payloads.
//
//	v2: config.showQuickButtons became config.quickButtonsEnabled and
//	    quick buttons gained a type, defaulting to instant rolls
func Migrations() []persist.Migration {
	return []persist.Migration{
		{TargetVersion: 2, Transform: migrateV2},
	}
}

func migrateV2(state map[string]any) (map[string]any, error) {
	return persist.EditObject(state, "config", func(cfg map[string]any) error {
		persist.Rename(cfg, "showQuickButtons", "quickButtonsEnabled")

		items, ok := cfg["quickButtons"].([]any)
		if !ok {
			return nil
		}
		out := make([]any, len(items))
		for i, item := range items {
			b, ok := item.(map[string]any)
			if !ok {
				out[i] = item
				continue
			}
			if _, hasType := b["type"]; !hasType {
				b = maps.Clone(b)
				b["type"] = string(entities.QuickButtonInstantRoll)
			}
			out[i] = b
		}
		cfg["quickButtons"] = out
		return nil
	})
}

