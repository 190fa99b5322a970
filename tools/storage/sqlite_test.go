package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macromentor/nutrition"
)

func TestSQLiteCatalogState(t *testing.T) {
	ctx := context.Background()
	state, err := OpenSQLiteCatalogState(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer state.Close()

	t.Run("empty table renders empty array", func(t *testing.T) {
		data, err := state.Load(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("seeded foods keep insertion order", func(t *testing.T) {
		require.NoError(t, state.Seed(ctx, []nutrition.Food{
			{Name: "Tofu (100g)", Calories: 76, Protein: 8, Diet: nutrition.Vegetarian},
			{Name: "Egg (1 large)", Calories: 78, Protein: 6, Diet: nutrition.NonVegetarian},
		}))

		data, err := state.Load(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{"food": "Tofu (100g)", "calories": 76, "protein": 8, "type": "vegetarian"},
			{"food": "Egg (1 large)", "calories": 78, "protein": 6, "type": "non-vegetarian"}
		]`, string(data))
	})

	t.Run("reseeding updates in place", func(t *testing.T) {
		require.NoError(t, state.Seed(ctx, []nutrition.Food{
			{Name: "Tofu (100g)", Calories: 80, Protein: 9, Diet: nutrition.Vegetarian},
		}))

		data, err := state.Load(ctx)
		require.NoError(t, err)

		var rows []foodRow
		require.NoError(t, json.Unmarshal(data, &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, foodRow{Food: "Tofu (100g)", Calories: 80, Protein: 9, Type: "vegetarian"}, rows[0])
	})
}
