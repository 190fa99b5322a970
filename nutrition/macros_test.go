package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitMacros(t *testing.T) {
	tests := []struct {
		name          string
		totalCalories int
		protein       float64
		expected      Macros
	}{
		{
			name:          "no clamp",
			totalCalories: 1532,
			protein:       112,
			expected:      Macros{ProteinGrams: 112, CarbGrams: 149, FatGrams: 54},
		},
		{
			name:          "zero protein",
			totalCalories: 2000,
			protein:       0,
			expected:      Macros{ProteinGrams: 0, CarbGrams: 275, FatGrams: 100},
		},
		{
			name:          "protein exceeding budget is clamped",
			totalCalories: 1500,
			protein:       400,
			expected:      Macros{ProteinGrams: 325, CarbGrams: 28, FatGrams: 10},
		},
		{
			name:          "protein exactly equal to budget is clamped",
			totalCalories: 1200,
			protein:       300,
			expected:      Macros{ProteinGrams: 250, CarbGrams: 28, FatGrams: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitMacros(tt.totalCalories, tt.protein))
		})
	}
}

func TestSplitMacros_ClampReservesCalories(t *testing.T) {
	for _, total := range []int{150, 200, 1200, 1532, 3000} {
		for _, protein := range []float64{float64(total) / 4, float64(total), 1e6} {
			m := SplitMacros(total, protein)
			assert.LessOrEqual(t, 4*m.ProteinGrams, max(0, total-200)+2, "total=%d protein=%v", total, protein)
			assert.GreaterOrEqual(t, m.ProteinGrams, 0)
			assert.GreaterOrEqual(t, m.CarbGrams, 0)
			assert.GreaterOrEqual(t, m.FatGrams, 0)
		}
	}
}

func TestSplitMacros_TinyBudget(t *testing.T) {
	m := SplitMacros(150, 100)
	assert.Equal(t, 0, m.ProteinGrams)
	assert.Equal(t, 21, m.CarbGrams)
}

func TestMacros_Calories(t *testing.T) {
	m := SplitMacros(1532, 112)
	assert.InDelta(t, 1532, m.Calories(), 10)
}
