package nutrition

import "math"

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9

	// proteinReserveKcal is kept for carbs and fat when protein alone would
	// consume the whole budget.
	proteinReserveKcal = 200

	carbShare = 0.55
	fatShare  = 0.45
)

// Macros is a daily macro breakdown in whole grams.
type Macros struct {
	ProteinGrams int `json:"protein_g"`
	CarbGrams    int `json:"carbs_g"`
	FatGrams     int `json:"fats_g"`
}

// Calories returns the energy the rounded grams represent. It can differ
// from the target by a few kcal since each macro is rounded on its own.
func (m Macros) Calories() int {
	return m.ProteinGrams*kcalPerGramProtein + m.CarbGrams*kcalPerGramCarbs + m.FatGrams*kcalPerGramFat
}

// SplitMacros turns a calorie target and a protein target into a full
// breakdown. When protein would use the entire budget it is clamped so that
// at least 200 kcal remain for carbs and fat. What is left after protein is
// split 55/45 between carbs and fat. Grams are rounded half to even.
func SplitMacros(totalCalories int, proteinGrams float64) Macros {
	total := float64(totalCalories)
	proteinKcal := proteinGrams * kcalPerGramProtein
	if proteinKcal >= total {
		allowed := math.Max(0, total-proteinReserveKcal)
		proteinGrams = allowed / kcalPerGramProtein
		proteinKcal = proteinGrams * kcalPerGramProtein
	}

	remaining := total - proteinKcal
	return Macros{
		ProteinGrams: int(math.RoundToEven(proteinGrams)),
		CarbGrams:    int(math.RoundToEven(remaining * carbShare / kcalPerGramCarbs)),
		FatGrams:     int(math.RoundToEven(remaining * fatShare / kcalPerGramFat)),
	}
}
