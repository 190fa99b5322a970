package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"macromentor/nutrition"
)

// DefaultProfile holds the values used for fields missing from a request.
var DefaultProfile = nutrition.Profile{
	WeightKg:          70,
	HeightCm:          170,
	AgeYears:          25,
	Sex:               nutrition.SexOther,
	Diet:              nutrition.DietPreference(nutrition.NonVegetarian),
	Activity:          nutrition.ModeratelyActive,
	Goal:              nutrition.Maintenance,
	ProteinMultiplier: 1.8,
}

// ProfileFromInput builds a profile from loosely typed request fields.
// Numbers may be JSON numbers or numeric strings. Missing fields take their
// DefaultProfile value. The result is validated.
func ProfileFromInput(input map[string]any) (nutrition.Profile, error) {
	p := DefaultProfile
	var errs []error

	num := func(key string, dst *float64) {
		v, ok := input[key]
		if !ok || v == nil {
			return
		}
		f, err := toFloat(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = f
	}
	str := func(key string) (string, bool) {
		v, ok := input[key].(string)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	num("weight", &p.WeightKg)
	num("height", &p.HeightCm)
	num("prot_multiplier", &p.ProteinMultiplier)

	age := float64(p.AgeYears)
	num("age", &age)
	if age != math.Trunc(age) {
		errs = append(errs, fmt.Errorf("age: %v is not a whole number", age))
	} else {
		p.AgeYears = int(age)
	}

	if s, ok := str("gender"); ok {
		p.Sex = nutrition.Sex(s)
	}
	if s, ok := str("activity"); ok {
		p.Activity = nutrition.ActivityLevel(s)
	}
	if s, ok := str("goal"); ok {
		p.Goal = nutrition.Goal(s)
	}
	if s, ok := str("diet"); ok {
		p.Diet = nutrition.DietPreference(s)
	}

	if len(errs) > 0 {
		return p, fmt.Errorf("%w: %w", nutrition.ErrInvalidProfile, errors.Join(errs...))
	}
	return p, p.Validate()
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", t)
		}
		return f, nil
	}
	return 0, fmt.Errorf("unsupported type %T", v)
}
