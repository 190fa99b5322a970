package nutrition

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = []Food{
	{Name: "Chicken Breast (100g)", Calories: 165, Protein: 31, Diet: NonVegetarian},
	{Name: "Brown Rice (1 cup cooked)", Calories: 215, Protein: 5, Diet: Vegetarian},
	{Name: "Oats (1/2 cup dry)", Calories: 150, Protein: 5, Diet: Vegetarian},
	{Name: "Greek Yogurt (1 cup)", Calories: 100, Protein: 17, Diet: Vegetarian},
	{Name: "Whey Protein (1 scoop)", Calories: 120, Protein: 24, Diet: Vegetarian},
	{Name: "Lentils (1 cup cooked)", Calories: 230, Protein: 18, Diet: Vegetarian},
}

type recordingObserver struct {
	steps []Step
	err   error
}

func (r *recordingObserver) ObserveStep(step Step) error {
	r.steps = append(r.steps, step)
	return r.err
}

func TestGeneratePlan_DegenerateCatalogs(t *testing.T) {
	tests := []struct {
		name  string
		foods []Food
		note  string
	}{
		{name: "nil catalog", foods: nil, note: NoteNoFoods},
		{name: "empty catalog", foods: []Food{}, note: NoteNoFoods},
		{
			name: "no positive calories",
			foods: []Food{
				{Name: "Water", Calories: 0, Protein: 0},
				{Name: "Broken", Calories: -10, Protein: 5},
			},
			note: NoteNoUsable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := GeneratePlan(tt.foods, 2000, 120)
			require.NotNil(t, plan.Items)
			assert.Empty(t, plan.Items)
			assert.Zero(t, plan.TotalCalories)
			assert.Zero(t, plan.TotalProtein)
			assert.Equal(t, tt.note, plan.Note)
			assert.NotEmpty(t, plan.Note)
			assert.False(t, plan.Converged())
		})
	}
}

func TestGeneratePlan_PicksHighestDensity(t *testing.T) {
	plan := GeneratePlan(testCatalog, 1508, 112)

	require.Len(t, plan.Items, 1)
	assert.Equal(t, "Whey Protein (1 scoop)", plan.Items[0].Food)
	assert.Equal(t, 80, plan.Steps)
	assert.Equal(t, 1484, plan.TotalCalories)
	assert.Equal(t, 297, plan.TotalProtein)
	assert.InDelta(t, 12.3667, plan.Items[0].Servings, 1e-3)
	assert.Empty(t, plan.Note)
}

func TestGeneratePlan_StableOrderOnEqualDensity(t *testing.T) {
	foods := []Food{
		{Name: "first", Calories: 100, Protein: 10},
		{Name: "second", Calories: 200, Protein: 20},
	}
	plan := GeneratePlan(foods, 500, 50)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, "first", plan.Items[0].Food)
}

func TestGeneratePlan_SingleFoodAccumulates(t *testing.T) {
	oats := Food{Name: "Oats (1/2 cup dry)", Calories: 150, Protein: 5, Diet: Vegetarian}
	plan := GeneratePlan([]Food{oats}, 1000, 50)

	require.Len(t, plan.Items, 1)
	item := plan.Items[0]
	assert.Equal(t, oats.Name, item.Food)
	assert.InDelta(t, item.Calories/oats.Calories, item.Servings, 1e-9)
	assert.InDelta(t, item.Protein/oats.Protein, item.Servings, 1e-9)
	assert.Equal(t, 36, plan.Steps)
	assert.Equal(t, 1480, plan.TotalCalories)
	assert.Empty(t, plan.Note)
}

func TestGeneratePlan_TerminatesOnExtremeTargets(t *testing.T) {
	foods := make([]Food, 0, 40)
	for i := range 40 {
		foods = append(foods, Food{Name: fmt.Sprintf("food-%02d", i), Calories: float64(100 + i), Protein: float64(i % 7)})
	}

	plan := GeneratePlan(foods, 1e9, 1e9)
	assert.Equal(t, MaxSteps, plan.Steps)
	assert.LessOrEqual(t, len(plan.Items), MaxLineItems)
	assert.Equal(t, NoteNotConverge, plan.Note)
}

func TestGeneratePlan_ZeroProteinFood(t *testing.T) {
	apple := Food{Name: "Apple", Calories: 95, Protein: 0, Diet: Vegetarian}

	t.Run("no protein target converges on calories", func(t *testing.T) {
		plan := GeneratePlan([]Food{apple}, 500, 0)
		assert.Equal(t, 3, plan.Steps)
		assert.Equal(t, 500, plan.TotalCalories)
		assert.Zero(t, plan.TotalProtein)
		assert.Empty(t, plan.Note)
	})

	t.Run("unreachable protein runs to the step bound", func(t *testing.T) {
		plan := GeneratePlan([]Food{apple}, 500, 10)
		assert.Equal(t, MaxSteps, plan.Steps)
		assert.Zero(t, plan.TotalProtein)
		assert.Equal(t, NoteNotConverge, plan.Note)
	})
}

func TestGeneratePlan_StepBounds(t *testing.T) {
	obs := &recordingObserver{}
	plan := Allocator{Observer: obs}.GeneratePlan(testCatalog, 1508, 112)

	require.Len(t, obs.steps, plan.Steps)
	for i, s := range obs.steps {
		assert.Equal(t, i+1, s.Index)
		assert.GreaterOrEqual(t, s.Servings, minStepServings)
		assert.LessOrEqual(t, s.Servings, maxStepServings)
	}
	assert.Equal(t, 2.0, obs.steps[0].Servings)
	last := obs.steps[len(obs.steps)-1]
	assert.Equal(t, plan.TotalCalories, int(last.TotalCalories+0.5))
}

func TestGeneratePlan_ObserverErrorDoesNotStopRun(t *testing.T) {
	obs := &recordingObserver{err: errors.New("disk full")}
	withObserver := Allocator{Observer: obs}.GeneratePlan(testCatalog, 2000, 150)
	without := GeneratePlan(testCatalog, 2000, 150)
	assert.Equal(t, without, withObserver)
	assert.Len(t, obs.steps, without.Steps)
}

func TestGeneratePlan_DoesNotMutateCatalog(t *testing.T) {
	foods := append([]Food(nil), testCatalog...)
	GeneratePlan(foods, 2000, 150)
	assert.Equal(t, testCatalog, foods)
}

func TestLineItems_PreservesInsertionOrder(t *testing.T) {
	l := newLineItems()
	l.add("b", 1, 100, 10)
	l.add("a", 1, 50, 5)
	l.add("b", 0.5, 50, 5)

	items := l.list()
	require.Len(t, items, 2)
	assert.Equal(t, LineItem{Food: "b", Servings: 1.5, Calories: 150, Protein: 15}, items[0])
	assert.Equal(t, LineItem{Food: "a", Servings: 1, Calories: 50, Protein: 5}, items[1])
}
