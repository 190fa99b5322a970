package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBMR(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		height   float64
		age      int
		sex      Sex
		expected float64
	}{
		{name: "male", weight: 70, height: 175, age: 25, sex: SexMale, expected: 1673.75},
		{name: "female", weight: 60, height: 165, age: 30, sex: SexFemale, expected: 1320.25},
		{name: "other uses midpoint offset", weight: 70, height: 175, age: 25, sex: SexOther, expected: 1590.75},
		{name: "unknown sex is other", weight: 70, height: 175, age: 25, sex: "prefer not to say", expected: 1590.75},
		{name: "sex is case insensitive", weight: 70, height: 175, age: 25, sex: "MALE", expected: 1673.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, BMR(tt.weight, tt.height, tt.age, tt.sex), 1e-9)
		})
	}
}

func TestBMR_Linear(t *testing.T) {
	base := BMR(70, 175, 25, SexMale)
	assert.InDelta(t, base+10, BMR(71, 175, 25, SexMale), 1e-9)
	assert.InDelta(t, base+6.25, BMR(70, 176, 25, SexMale), 1e-9)
	assert.InDelta(t, base-5, BMR(70, 175, 26, SexMale), 1e-9)
}

func TestDailyCalories(t *testing.T) {
	tests := []struct {
		name     string
		bmr      float64
		activity ActivityLevel
		goal     Goal
		expected int
	}{
		{name: "sedentary fat loss", bmr: 1693.75, activity: Sedentary, goal: FatLoss, expected: 1532},
		{name: "male fixture sedentary fat loss", bmr: 1673.75, activity: Sedentary, goal: FatLoss, expected: 1508},
		{name: "moderately active maintenance", bmr: 1600, activity: ModeratelyActive, goal: Maintenance, expected: 2480},
		{name: "athlete muscle gain", bmr: 2000, activity: Athlete, goal: MuscleGain, expected: 4100},
		{name: "lightly active", bmr: 1600, activity: LightlyActive, goal: Maintenance, expected: 2200},
		{name: "very active", bmr: 1600, activity: VeryActive, goal: Maintenance, expected: 2760},
		{name: "unknown activity defaults to sedentary", bmr: 1600, activity: "couch", goal: Maintenance, expected: 1920},
		{name: "unknown goal adjusts by zero", bmr: 1600, activity: Sedentary, goal: "bulk", expected: 1920},
		{name: "hyphenated activity", bmr: 1600, activity: "Very-Active", goal: "Muscle_Gain", expected: 3060},
		{name: "floored at minimum", bmr: 900, activity: Sedentary, goal: FatLoss, expected: MinDailyCalories},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DailyCalories(tt.bmr, tt.activity, tt.goal))
		})
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, Sedentary.Valid())
	assert.True(t, ActivityLevel("lightly_active").Valid())
	assert.False(t, ActivityLevel("lazy").Valid())
	assert.True(t, Goal("Fat Loss").Valid())
	assert.False(t, Goal("").Valid())
	assert.Equal(t, SexFemale, ParseSex(" Female "))
}
