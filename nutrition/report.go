package nutrition

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

const (
	InsightLowCalories = "Generated calories are lower than target; increase servings or add foods."
	InsightLowProtein  = "Protein target not fully met; consider adding high-protein options (whey, chicken, lentils)."
	InsightOnTarget    = "Good, plan closely matches calorie target."
	InsightReview      = "Plan generated; review servings and adjust to taste."
)

// Insights returns short advice lines comparing plan totals to targets.
// There is always at least one line.
func Insights(plan Plan, targetCalories, targetProtein int) []string {
	var out []string
	cal, tc := float64(plan.TotalCalories), float64(targetCalories)
	if cal < tc*0.95 {
		out = append(out, InsightLowCalories)
	}
	if float64(plan.TotalProtein) < float64(targetProtein)*0.95 {
		out = append(out, InsightLowProtein)
	}
	if tc > 0 && math.Abs(cal-tc)/tc < 0.08 {
		out = append(out, InsightOnTarget)
	}
	if len(out) == 0 {
		out = append(out, InsightReview)
	}
	return out
}

// CSVHeader is the first row written by WriteCSV.
var CSVHeader = []string{"food", "servings", "calories", "protein_g"}

// CSVRecord formats a line item as an export row.
func CSVRecord(item LineItem) []string {
	return []string{
		item.Food,
		strconv.FormatFloat(item.Servings, 'f', 2, 64),
		strconv.Itoa(int(math.Round(item.Calories))),
		strconv.FormatFloat(item.Protein, 'f', 1, 64),
	}
}

// WriteCSV exports the line items of plan. Fields holding commas, quotes or
// newlines are quoted with inner quotes doubled.
func WriteCSV(w io.Writer, plan Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, item := range plan.Items {
		if err := cw.Write(CSVRecord(item)); err != nil {
			return fmt.Errorf("write csv row %q: %w", item.Food, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
