package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"macromentor/nutrition"
)

type CatalogGet struct{ catalog *Catalog }

func NewCatalogGet(catalog *Catalog) *CatalogGet { return &CatalogGet{catalog: catalog} }

func (t *CatalogGet) Name() string  { return "catalog_get" }
func (t *CatalogGet) Title() string { return "Get Food Catalog" }
func (t *CatalogGet) Description() string {
	return "Returns the food catalog with calories and protein per serving, optionally restricted to vegetarian foods."
}

func (t *CatalogGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"diet": {
				Type: "string",
				Enum: []any{"any", "vegetarian", "non-vegetarian"},
			},
		},
	}
}

func (t *CatalogGet) OutputSchema() *jsonschema.Schema {
	minZero := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"foods": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"food":     {Type: "string"},
						"calories": {Type: "number", Minimum: &minZero},
						"protein":  {Type: "number", Minimum: &minZero},
						"type":     {Type: "string", Enum: []any{"vegetarian", "non-vegetarian"}},
					},
					Required: []string{"food", "calories", "protein", "type"},
				},
			},
		},
		Required: []string{"foods"},
	}
}

func (t *CatalogGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	foods, err := t.catalog.Foods(ctx)
	if err != nil {
		return nil, err
	}
	if diet, _ := input["diet"].(string); diet != "" {
		foods = nutrition.FilterDiet(foods, nutrition.DietPreference(diet))
	}
	return toMap(struct {
		Foods []nutrition.Food `json:"foods"`
	}{Foods: foods})
}
