package shadowrun_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/persist"
	"github.com/KirkDiggler/talis/internal/rollers/pool"
	"github.com/KirkDiggler/talis/internal/rollers/shadowrun"
)

func v1Payload() map[string]any {
	return map[string]any{
		"config": map[string]any{
			"newResultsOnTop":  false,
			"sortDice":         true,
			"showDiceSum":      true,
			"freeInputEnabled": false,
			"showQuickButtons": true,
			"maxDice":          float64(24),
			"quickButtons": []any{
				map[string]any{"id": "x", "count": float64(6), "instant": true},
				map[string]any{"id": "y", "count": float64(10), "instant": false},
			},
		},
	}
}

func TestMigrateFromV1(t *testing.T) {
	migrated, err := persist.Migrate(v1Payload(), 1, shadowrun.Version, shadowrun.Migrations())
	require.NoError(t, err)

	got, err := pool.Schema().Decode(migrated)
	require.NoError(t, err)

	want := pool.Config{
		SortDice:            true,
		ShowDiceSum:         true,
		QuickButtonsEnabled: true,
		MaxDice:             24,
		QuickButtons: []entities.QuickButton{
			{ID: "x", Amount: 6, Type: entities.QuickButtonInstantRoll},
			{ID: "y", Amount: 10, Type: entities.QuickButtonSetAmount},
		},
	}
	if diff := cmp.Diff(want, got.Config); diff != "" {
		t.Errorf("migrated config mismatch (-want +got):\n%s", diff)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	once, err := persist.Migrate(v1Payload(), 1, shadowrun.Version, shadowrun.Migrations())
	require.NoError(t, err)

	twice, err := persist.Migrate(once, shadowrun.Version, shadowrun.Version, shadowrun.Migrations())
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(once, twice))
}

func TestReshapeRejectsNonObjectButton(t *testing.T) {
	payload := map[string]any{
		"config": map[string]any{"quickButtons": []any{"six"}},
	}
	_, err := persist.Migrate(payload, 2, shadowrun.Version, shadowrun.Migrations())
	require.Error(t, err)
}
