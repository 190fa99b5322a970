package nutrition

import "strings"

type Diet string

const (
	Vegetarian    Diet = "vegetarian"
	NonVegetarian Diet = "non-vegetarian"
)

// ParseDiet maps a catalog diet class. Anything besides "vegetarian" is
// treated as non-vegetarian.
func ParseDiet(s string) Diet {
	if strings.EqualFold(strings.TrimSpace(s), string(Vegetarian)) {
		return Vegetarian
	}
	return NonVegetarian
}

// Food is one catalog entry, with nutrients given per serving.
type Food struct {
	Name     string  `json:"food"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Diet     Diet    `json:"type"`
}

// ProteinDensity is grams of protein per kcal. Callers must ensure
// Calories > 0.
func (f Food) ProteinDensity() float64 {
	return f.Protein / f.Calories
}

// DietPreference restricts which catalog entries a plan may use.
type DietPreference string

const (
	AnyDiet        DietPreference = "any"
	VegetarianOnly DietPreference = "vegetarian"
)

// FilterDiet returns the foods allowed by pref. The result never aliases
// the input slice.
func FilterDiet(foods []Food, pref DietPreference) []Food {
	vegOnly := strings.EqualFold(strings.TrimSpace(string(pref)), string(VegetarianOnly))
	out := make([]Food, 0, len(foods))
	for _, f := range foods {
		if vegOnly && f.Diet != Vegetarian {
			continue
		}
		out = append(out, f)
	}
	return out
}
