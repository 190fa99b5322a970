package nutrition

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidProfile wraps every validation failure returned by
// Profile.Validate.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile holds the body metrics and preferences a plan is computed from.
type Profile struct {
	WeightKg          float64        `json:"weight"`
	HeightCm          float64        `json:"height"`
	AgeYears          int            `json:"age"`
	Sex               Sex            `json:"gender"`
	Diet              DietPreference `json:"diet"`
	Activity          ActivityLevel  `json:"activity"`
	Goal              Goal           `json:"goal"`
	ProteinMultiplier float64        `json:"prot_multiplier"`
}

// Validate checks the profile at the input boundary. The calculation
// functions in this package do not call it and assume it has passed.
func (p Profile) Validate() error {
	var errs []error
	if !positive(p.WeightKg) {
		errs = append(errs, errors.New("weight must be a positive number of kg"))
	}
	if !positive(p.HeightCm) {
		errs = append(errs, errors.New("height must be a positive number of cm"))
	}
	if p.AgeYears <= 0 {
		errs = append(errs, errors.New("age must be a positive number of years"))
	}
	if !positive(p.ProteinMultiplier) {
		errs = append(errs, errors.New("protein multiplier must be a positive number (e.g. 1.6)"))
	}
	if !p.Activity.Valid() {
		errs = append(errs, fmt.Errorf("unknown activity level %q", p.Activity))
	}
	if !p.Goal.Valid() {
		errs = append(errs, fmt.Errorf("unknown goal %q", p.Goal))
	}
	switch strings.ToLower(string(p.Diet)) {
	case "", string(AnyDiet), string(VegetarianOnly), string(NonVegetarian):
	default:
		errs = append(errs, fmt.Errorf("unknown diet %q", p.Diet))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidProfile, errors.Join(errs...))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ProteinTarget is the daily protein goal in grams. It is not rounded;
// SplitMacros rounds it.
func ProteinTarget(p Profile) float64 {
	return p.ProteinMultiplier * p.WeightKg
}

// Result bundles every figure derived for a profile.
type Result struct {
	BMR           float64  `json:"bmr"`
	DailyCalories int      `json:"daily_calories"`
	ProteinTarget float64  `json:"protein_target_g"`
	Macros        Macros   `json:"macros"`
	Plan          Plan     `json:"plan"`
	Insights      []string `json:"insights"`
}

// Planner chains the energy model, macro split and allocator.
type Planner struct {
	Allocator Allocator
}

// Compute runs a Planner with a default Allocator.
func Compute(p Profile, foods []Food) Result {
	return Planner{}.Compute(p, foods)
}

// Compute derives targets for p and allocates them over foods after diet
// filtering. The allocator aims for the protein grams of the macro split,
// which may be lower than ProteinTarget when protein was clamped.
func (pl Planner) Compute(p Profile, foods []Food) Result {
	bmr := BMR(p.WeightKg, p.HeightCm, p.AgeYears, p.Sex)
	daily := DailyCalories(bmr, p.Activity, p.Goal)
	target := ProteinTarget(p)
	macros := SplitMacros(daily, target)

	plan := pl.Allocator.GeneratePlan(FilterDiet(foods, p.Diet), float64(daily), float64(macros.ProteinGrams))

	return Result{
		BMR:           bmr,
		DailyCalories: daily,
		ProteinTarget: target,
		Macros:        macros,
		Plan:          plan,
		Insights:      Insights(plan, daily, macros.ProteinGrams),
	}
}
