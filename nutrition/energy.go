package nutrition

import (
	"math"
	"strings"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// ParseSex normalizes a sex category. Anything unrecognized is SexOther.
func ParseSex(s string) Sex {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale
	case SexFemale:
		return SexFemale
	}
	return SexOther
}

type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly active"
	ModeratelyActive ActivityLevel = "moderately active"
	VeryActive       ActivityLevel = "very active"
	Athlete          ActivityLevel = "athlete"
)

var activityFactors = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
	Athlete:          1.9,
}

// Factor returns the TDEE multiplier for the level, falling back to the
// sedentary factor for unknown levels.
func (a ActivityLevel) Factor() float64 {
	if f, ok := activityFactors[a.normalize()]; ok {
		return f
	}
	return activityFactors[Sedentary]
}

// Valid reports whether a is one of the five known levels.
func (a ActivityLevel) Valid() bool {
	_, ok := activityFactors[a.normalize()]
	return ok
}

// normalize accepts "Lightly Active", "lightly-active" and "lightly_active".
func (a ActivityLevel) normalize() ActivityLevel {
	s := strings.ToLower(strings.TrimSpace(string(a)))
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return ActivityLevel(s)
}

type Goal string

const (
	FatLoss     Goal = "fat loss"
	Maintenance Goal = "maintenance"
	MuscleGain  Goal = "muscle gain"
)

var goalAdjustments = map[Goal]float64{
	FatLoss:     -500,
	Maintenance: 0,
	MuscleGain:  300,
}

// Adjustment returns the flat kcal adjustment for the goal. Unknown goals
// adjust by zero.
func (g Goal) Adjustment() float64 {
	return goalAdjustments[g.normalize()]
}

func (g Goal) Valid() bool {
	_, ok := goalAdjustments[g.normalize()]
	return ok
}

func (g Goal) normalize() Goal {
	s := strings.ToLower(strings.TrimSpace(string(g)))
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return Goal(s)
}

// MinDailyCalories is the safety floor applied to every daily target.
const MinDailyCalories = 1200

// BMR estimates basal metabolic rate with the Mifflin-St Jeor equation.
// The offset for SexOther (-78) is the midpoint of the male and female
// constants, not a clinical value.
func BMR(weightKg, heightCm float64, ageYears int, sex Sex) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	switch ParseSex(string(sex)) {
	case SexMale:
		return base + 5
	case SexFemale:
		return base - 161
	}
	return base - 78
}

// DailyCalories scales bmr by the activity factor, applies the goal
// adjustment, rounds half to even, and floors the result at
// MinDailyCalories. Inputs are not checked for plausibility.
func DailyCalories(bmr float64, activity ActivityLevel, goal Goal) int {
	need := int(math.RoundToEven(bmr*activity.Factor() + goal.Adjustment()))
	return max(MinDailyCalories, need)
}
