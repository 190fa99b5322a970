package nutrition

import (
	"log/slog"
	"math"
	"sort"
)

const (
	// MaxSteps bounds the number of allocation iterations.
	MaxSteps = 500
	// MaxLineItems bounds the number of distinct foods in a plan.
	MaxLineItems = 25

	softTarget = 0.98
	noteTarget = 0.90

	minStepServings      = 0.1
	maxStepServings      = 2.0
	fallbackStepServings = 0.25

	// zeroProteinServings stands in for the protein-limited serving count
	// when a food has no protein at all.
	zeroProteinServings = 2.0
)

const (
	NoteNoFoods     = "No foods available."
	NoteNoUsable    = "Food catalog has no usable foods."
	NoteNotConverge = "Targets not fully met; expand the food catalog or allow larger servings."
)

// Step describes a single allocator iteration. Totals are running values
// after the step was applied.
type Step struct {
	Index         int     `json:"step"`
	Food          string  `json:"food"`
	Servings      float64 `json:"servings"`
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein_g"`
	LineItems     int     `json:"line_items"`
}

// StepObserver is notified after every allocation step.
type StepObserver interface {
	ObserveStep(step Step) error
}

// Allocator distributes calorie and protein targets over a catalog using a
// greedy fractional-serving heuristic. The zero value is ready to use.
type Allocator struct {
	Observer StepObserver
}

// GeneratePlan runs an Allocator without an observer.
func GeneratePlan(foods []Food, totalCalories, proteinGrams float64) Plan {
	return Allocator{}.GeneratePlan(foods, totalCalories, proteinGrams)
}

// GeneratePlan allocates servings until both targets reach 98% or a bound
// is hit. Foods are ranked once by protein density and the top-ranked food
// is the candidate on every step; there is no re-ranking as targets fill.
// Inputs are assumed validated by the caller.
func (a Allocator) GeneratePlan(foods []Food, totalCalories, proteinGrams float64) Plan {
	if len(foods) == 0 {
		return Plan{Items: []LineItem{}, Note: NoteNoFoods}
	}

	ranked := make([]Food, 0, len(foods))
	for _, f := range foods {
		if f.Calories > 0 {
			ranked = append(ranked, f)
		}
	}
	if len(ranked) == 0 {
		return Plan{Items: []LineItem{}, Note: NoteNoUsable}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ProteinDensity() > ranked[j].ProteinDensity()
	})

	var (
		items    = newLineItems()
		totalCal float64
		totalPro float64
		steps    int
	)
	for (totalCal < totalCalories*softTarget || totalPro < proteinGrams*softTarget) && steps < MaxSteps {
		steps++
		chosen := ranked[0]

		remPro := math.Max(0, proteinGrams-totalPro)
		remCal := math.Max(0, totalCalories-totalCal)

		byProtein := zeroProteinServings
		if chosen.Protein > 0 {
			byProtein = remPro / chosen.Protein
		}
		byCalories := remCal / chosen.Calories

		servings := clamp(math.Min(byProtein, byCalories), minStepServings, maxStepServings)
		if servings <= 0 {
			servings = fallbackStepServings
		}

		addCal := chosen.Calories * servings
		addPro := chosen.Protein * servings
		totalCal += addCal
		totalPro += addPro
		items.add(chosen.Name, servings, addCal, addPro)

		a.observe(Step{
			Index:         steps,
			Food:          chosen.Name,
			Servings:      servings,
			TotalCalories: totalCal,
			TotalProtein:  totalPro,
			LineItems:     items.len(),
		})

		if items.len() > MaxLineItems {
			break
		}
	}

	plan := Plan{
		Items:         items.list(),
		TotalCalories: int(math.RoundToEven(totalCal)),
		TotalProtein:  int(math.RoundToEven(totalPro)),
		Steps:         steps,
	}
	if totalCal < totalCalories*noteTarget || totalPro < proteinGrams*noteTarget {
		plan.Note = NoteNotConverge
	}
	return plan
}

func (a Allocator) observe(step Step) {
	if a.Observer == nil {
		return
	}
	if err := a.Observer.ObserveStep(step); err != nil {
		slog.Error("ALLOCATOR: Failed to record step", "error", err, "step", step.Index)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
