package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"macromentor/nutrition"
)

// Planner computes a result for a validated profile.
type Planner interface {
	Compute(ctx context.Context, p nutrition.Profile, foods []nutrition.Food) nutrition.Result
}

// PlainPlanner adapts nutrition.Planner to Planner without instrumentation.
type PlainPlanner struct{ nutrition.Planner }

func (p PlainPlanner) Compute(_ context.Context, profile nutrition.Profile, foods []nutrition.Food) nutrition.Result {
	return p.Planner.Compute(profile, foods)
}

type PlanGenerate struct {
	catalog *Catalog
	planner Planner
}

func NewPlanGenerate(catalog *Catalog, planner Planner) *PlanGenerate {
	return &PlanGenerate{catalog: catalog, planner: planner}
}

func (t *PlanGenerate) Name() string  { return "plan_generate" }
func (t *PlanGenerate) Title() string { return "Generate Nutrition Plan" }
func (t *PlanGenerate) Description() string {
	return "Computes daily calorie and macro targets from body metrics and allocates them across the food catalog."
}

func (t *PlanGenerate) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"weight":          {Type: "number", Description: "Body weight in kg"},
			"height":          {Type: "number", Description: "Height in cm"},
			"age":             {Type: "integer", Description: "Age in years"},
			"gender":          {Type: "string", Enum: []any{"male", "female", "other"}},
			"activity":        {Type: "string", Enum: []any{"sedentary", "lightly active", "moderately active", "very active", "athlete"}},
			"goal":            {Type: "string", Enum: []any{"fat loss", "maintenance", "muscle gain"}},
			"prot_multiplier": {Type: "number", Description: "Grams of protein per kg of body weight"},
			"diet":            {Type: "string", Enum: []any{"any", "vegetarian", "non-vegetarian"}},
		},
	}
}

func (t *PlanGenerate) OutputSchema() *jsonschema.Schema {
	minZero := 0.0
	lineItem := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"food":     {Type: "string"},
			"servings": {Type: "number", Minimum: &minZero},
			"calories": {Type: "number", Minimum: &minZero},
			"protein":  {Type: "number", Minimum: &minZero},
		},
		Required: []string{"food", "servings", "calories", "protein"},
	}
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"inputs":         {Type: "object"},
			"bmr":            {Type: "number"},
			"daily_calories": {Type: "integer", Minimum: &minZero},
			"macros": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"protein_g": {Type: "integer", Minimum: &minZero},
					"carbs_g":   {Type: "integer", Minimum: &minZero},
					"fats_g":    {Type: "integer", Minimum: &minZero},
				},
			},
			"plan": {Type: "array", Items: lineItem},
			"totals": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"cal":  {Type: "integer"},
					"prot": {Type: "integer"},
				},
			},
			"note":     {Type: "string"},
			"insights": {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
		Required: []string{"daily_calories", "macros", "plan", "totals", "note"},
	}
}

// PlanResponse is the wire shape of a computed plan.
type PlanResponse struct {
	Inputs        nutrition.Profile    `json:"inputs"`
	BMR           float64              `json:"bmr"`
	DailyCalories int                  `json:"daily_calories"`
	ProteinTarget float64              `json:"protein_target_g"`
	Macros        nutrition.Macros     `json:"macros"`
	Plan          []nutrition.LineItem `json:"plan"`
	Totals        Totals               `json:"totals"`
	Note          string               `json:"note"`
	Insights      []string             `json:"insights"`
}

type Totals struct {
	Calories int `json:"cal"`
	Protein  int `json:"prot"`
}

// NewPlanResponse pairs a result with the profile that produced it.
func NewPlanResponse(p nutrition.Profile, res nutrition.Result) PlanResponse {
	return PlanResponse{
		Inputs:        p,
		BMR:           res.BMR,
		DailyCalories: res.DailyCalories,
		ProteinTarget: res.ProteinTarget,
		Macros:        res.Macros,
		Plan:          res.Plan.Items,
		Totals:        Totals{Calories: res.Plan.TotalCalories, Protein: res.Plan.TotalProtein},
		Note:          res.Plan.Note,
		Insights:      res.Insights,
	}
}

func (t *PlanGenerate) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	profile, err := ProfileFromInput(input)
	if err != nil {
		return nil, err
	}
	foods, err := t.catalog.Foods(ctx)
	if err != nil {
		return nil, err
	}
	return toMap(NewPlanResponse(profile, t.planner.Compute(ctx, profile, foods)))
}
