package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
)

func TestQuickButtonLifecycle(t *testing.T) {
	original := []entities.QuickButton{
		{ID: "a", Amount: 4, Type: entities.QuickButtonSetAmount},
	}

	added, err := entities.AddQuickButton(original, entities.QuickButton{ID: "b", Amount: 8, Type: entities.QuickButtonInstantRoll})
	require.NoError(t, err)
	assert.Len(t, added, 2)
	assert.Len(t, original, 1)

	_, err = entities.AddQuickButton(added, entities.QuickButton{ID: "b", Amount: 1, Type: entities.QuickButtonInstantRoll})
	assert.True(t, errors.IsInvalidArgument(err))

	amount := 12
	updated, err := entities.UpdateQuickButton(added, "b", entities.QuickButtonPatch{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 12, updated[1].Amount)
	assert.Equal(t, entities.QuickButtonInstantRoll, updated[1].Type)
	assert.Equal(t, 8, added[1].Amount, "input list must not change")

	removed, err := entities.RemoveQuickButton(updated, "a")
	require.NoError(t, err)
	assert.Equal(t, []entities.QuickButton{{ID: "b", Amount: 12, Type: entities.QuickButtonInstantRoll}}, removed)
	assert.Len(t, updated, 2)

	_, err = entities.RemoveQuickButton(removed, "a")
	assert.True(t, errors.IsNotFound(err))
	_, err = entities.UpdateQuickButton(removed, "zzz", entities.QuickButtonPatch{})
	assert.True(t, errors.IsNotFound(err))
}

func TestQuickButtonValidate(t *testing.T) {
	vb := errors.NewValidationBuilder()
	entities.QuickButton{ID: "", Amount: 0, Type: "explode"}.Validate("config.quickButtons[0]", vb)

	err := vb.Build()
	require.Error(t, err)
	fields := errors.GetMeta(err)[errors.MetaValidationErrors].(map[string][]string)
	assert.Contains(t, fields, "config.quickButtons[0].id")
	assert.Contains(t, fields, "config.quickButtons[0].amount")
	assert.Contains(t, fields, "config.quickButtons[0].type")
}

func TestHistoryHelpers(t *testing.T) {
	base := make([]int, 2, 10)
	base[0], base[1] = 1, 2

	next := entities.Append(base, 3)
	other := entities.Append(base, 4)
	assert.Equal(t, []int{1, 2, 3}, next)
	assert.Equal(t, []int{1, 2, 4}, other)

	assert.Equal(t, []int{3, 2, 1}, entities.Ordered(next, true))
	assert.Equal(t, []int{1, 2, 3}, entities.Ordered(next, false))
}

func TestRollResult(t *testing.T) {
	r := entities.RollResult{ID: "roll_1", Type: "d6", Results: []int{5, 1, 3}}
	assert.Equal(t, "roll_1", r.GetID())
	assert.Equal(t, "d6", r.GetType())
	assert.Equal(t, 9, r.Sum())
	assert.Equal(t, []int{1, 3, 5}, r.SortedFaces())
	assert.Equal(t, []int{5, 1, 3}, r.Results)
}
