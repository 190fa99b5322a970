package tools

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"macromentor/nutrition"
	"macromentor/tools/storage"
)

var ErrEmptyCatalog = errors.New("catalog document is empty")

// DefaultCatalog is the built-in sample catalog, nutrients per serving.
func DefaultCatalog() []nutrition.Food {
	return []nutrition.Food{
		{Name: "Chicken Breast (100g)", Calories: 165, Protein: 31, Diet: nutrition.NonVegetarian},
		{Name: "Brown Rice (1 cup cooked)", Calories: 215, Protein: 5, Diet: nutrition.Vegetarian},
		{Name: "Oats (1/2 cup dry)", Calories: 150, Protein: 5, Diet: nutrition.Vegetarian},
		{Name: "Milk (1 cup)", Calories: 103, Protein: 8, Diet: nutrition.Vegetarian},
		{Name: "Almonds (1/4 cup)", Calories: 207, Protein: 7, Diet: nutrition.Vegetarian},
		{Name: "Broccoli (1 cup)", Calories: 55, Protein: 3.7, Diet: nutrition.Vegetarian},
		{Name: "Salmon (100g)", Calories: 208, Protein: 20, Diet: nutrition.NonVegetarian},
		{Name: "Egg (1 large)", Calories: 78, Protein: 6, Diet: nutrition.NonVegetarian},
		{Name: "Greek Yogurt (1 cup)", Calories: 100, Protein: 17, Diet: nutrition.Vegetarian},
		{Name: "Whey Protein (1 scoop)", Calories: 120, Protein: 24, Diet: nutrition.Vegetarian},
		{Name: "Tofu (100g)", Calories: 76, Protein: 8, Diet: nutrition.Vegetarian},
		{Name: "Lentils (1 cup cooked)", Calories: 230, Protein: 18, Diet: nutrition.Vegetarian},
		{Name: "Paneer (100g)", Calories: 265, Protein: 18, Diet: nutrition.Vegetarian},
	}
}

// Catalog decodes foods from a CatalogState. A nil state serves
// DefaultCatalog.
type Catalog struct{ state storage.CatalogState }

func NewCatalog(state storage.CatalogState) *Catalog { return &Catalog{state: state} }

func (c *Catalog) Foods(ctx context.Context) ([]nutrition.Food, error) {
	if c == nil || c.state == nil {
		return DefaultCatalog(), nil
	}
	b, err := c.state.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	foods, err := DecodeCatalog(b)
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return foods, nil
}

// DecodeCatalog parses a JSON or CSV catalog document. JSON may be a bare
// array or an object with a "foods" array. CSV needs the columns food,
// calories, protein and type in any order. Non-numeric calories or protein
// become 0.
func DecodeCatalog(data []byte) ([]nutrition.Food, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyCatalog
	}
	switch trimmed[0] {
	case '[', '{':
		return decodeJSONCatalog(trimmed)
	}
	return decodeCSVCatalog(data)
}

type catalogRecord struct {
	Food     string       `json:"food"`
	Name     string       `json:"name"`
	Calories coercedFloat `json:"calories"`
	Protein  coercedFloat `json:"protein"`
	Type     string       `json:"type"`
}

func (r catalogRecord) food() nutrition.Food {
	name := r.Food
	if name == "" {
		name = r.Name
	}
	return nutrition.Food{
		Name:     name,
		Calories: float64(r.Calories),
		Protein:  float64(r.Protein),
		Diet:     nutrition.ParseDiet(r.Type),
	}
}

func decodeJSONCatalog(data []byte) ([]nutrition.Food, error) {
	var records []catalogRecord
	if data[0] == '{' {
		var doc struct {
			Foods []catalogRecord `json:"foods"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		records = doc.Foods
	} else if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	foods := make([]nutrition.Food, 0, len(records))
	for _, r := range records {
		foods = append(foods, r.food())
	}
	return foods, nil
}

var csvColumns = []string{"food", "calories", "protein", "type"}

func decodeCSVCatalog(data []byte) ([]nutrition.Food, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, c := range csvColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("csv missing columns: %s", strings.Join(missing, ", "))
	}

	foods := make([]nutrition.Food, 0)
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		foods = append(foods, nutrition.Food{
			Name:     rec[cols["food"]],
			Calories: coerce(rec[cols["calories"]]),
			Protein:  coerce(rec[cols["protein"]]),
			Diet:     nutrition.ParseDiet(rec[cols["type"]]),
		})
	}
	return foods, nil
}

// coercedFloat accepts a JSON number or numeric string; anything else is 0.
type coercedFloat float64

func (c *coercedFloat) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*c = coercedFloat(t)
	case string:
		*c = coercedFloat(coerce(t))
	default:
		*c = 0
	}
	return nil
}

func coerce(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
