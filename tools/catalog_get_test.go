package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macromentor/tools/storage"
)

func TestCatalogGet_Run(t *testing.T) {
	catalogJSON := []byte(`[
		{"food": "Chicken Breast (100g)", "calories": 165, "protein": 31, "type": "non-vegetarian"},
		{"food": "Tofu (100g)", "calories": 76, "protein": 8, "type": "vegetarian"}
	]`)

	tests := []struct {
		name           string
		input          map[string]any
		expectedResult map[string]any
	}{
		{
			name:  "all foods",
			input: map[string]any{},
			expectedResult: map[string]any{
				"foods": []any{
					map[string]any{"food": "Chicken Breast (100g)", "calories": 165.0, "protein": 31.0, "type": "non-vegetarian"},
					map[string]any{"food": "Tofu (100g)", "calories": 76.0, "protein": 8.0, "type": "vegetarian"},
				},
			},
		},
		{
			name:  "vegetarian only",
			input: map[string]any{"diet": "vegetarian"},
			expectedResult: map[string]any{
				"foods": []any{
					map[string]any{"food": "Tofu (100g)", "calories": 76.0, "protein": 8.0, "type": "vegetarian"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := NewCatalogGet(NewCatalog(storage.NewTestCatalogState(catalogJSON)))
			result, err := tool.Run(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestCatalogGet_EmptyCatalogIsEmptyArray(t *testing.T) {
	tool := NewCatalogGet(NewCatalog(storage.NewTestCatalogState([]byte(`[]`))))
	result, err := tool.Run(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"foods": []any{}}, result)
}

func TestCatalogGet_LoadError(t *testing.T) {
	tool := NewCatalogGet(NewCatalog(storage.NewTestCatalogStateWithError()))
	_, err := tool.Run(context.Background(), map[string]any{})
	assert.EqualError(t, err, "read catalog: not found")
}
