package shadowrun

import (
	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/persist"
)

// Version is the current persisted schema version
const Version = 3

// Migrations upgrades older payloads.
//
//	v2: config.showQuickButtons became config.quickButtonsEnabled
//	v3: quick buttons {id, count, instant} became {id, amount, type}
func Migrations() []persist.Migration {
	return []persist.Migration{
		{TargetVersion: 2, Transform: renameQuickButtonsFlag},
		{TargetVersion: 3, Transform: reshapeQuickButtons},
	}
}

func renameQuickButtonsFlag(state map[string]any) (map[string]any, error) {
	return persist.EditObject(state, "config", func(cfg map[string]any) error {
		persist.Rename(cfg, "showQuickButtons", "quickButtonsEnabled")
		return nil
	})
}

func reshapeQuickButtons(state map[string]any) (map[string]any, error) {
	return persist.EditObject(state, "config", func(cfg map[string]any) error {
		raw, ok := cfg["quickButtons"]
		if !ok {
			return nil
		}
		items, ok := raw.([]any)
		if !ok {
			return errors.DataLoss("config.quickButtons is not an array")
		}

		out := make([]any, 0, len(items))
		for i, item := range items {
			b, ok := item.(map[string]any)
			if !ok {
				return errors.DataLossf("config.quickButtons[%d] is not an object", i)
			}
			out = append(out, legacyButton(b))
		}
		cfg["quickButtons"] = out
		return nil
	})
}

// legacyButton converts a v2 button; current buttons pass through
func legacyButton(b map[string]any) map[string]any {
	count, hasCount := b["count"]
	if !hasCount {
		return b
	}
	typ := entities.QuickButtonSetAmount
	if instant, _ := b["instant"].(bool); instant {
		typ = entities.QuickButtonInstantRoll
	}
	return map[string]any{
		"id":     b["id"],
		"amount": count,
		"type":   string(typ),
	}
}
