package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"macromentor"
	"macromentor/nutrition"
	"macromentor/slack"
	"macromentor/tools"
	"macromentor/tools/storage"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("SETUP: Failed to load .env", "error", err)
	}

	var cfg macromentor.PlannerConfig
	if err := envdecode.Decode(&cfg); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	profile := nutrition.Profile{}
	var sex, diet, activity, goal string
	flag.Float64Var(&profile.WeightKg, "weight", 70, "body weight in kg")
	flag.Float64Var(&profile.HeightCm, "height", 170, "height in cm")
	flag.IntVar(&profile.AgeYears, "age", 25, "age in years")
	flag.StringVar(&sex, "gender", "other", "male, female or other")
	flag.StringVar(&activity, "activity", string(nutrition.ModeratelyActive), "sedentary, lightly active, moderately active, very active or athlete")
	flag.StringVar(&goal, "goal", string(nutrition.Maintenance), "fat loss, maintenance or muscle gain")
	flag.Float64Var(&profile.ProteinMultiplier, "protein", 1.8, "grams of protein per kg of body weight")
	flag.StringVar(&diet, "diet", string(nutrition.AnyDiet), "any or vegetarian")
	catalogPath := flag.String("catalog", cfg.CatalogPath, "catalog file (JSON or CSV); built-in catalog when missing")
	out := flag.String("out", cfg.ExportPath, "CSV export path, - for stdout, empty to skip")
	dump := flag.Bool("dump", false, "dump the full result to stderr")
	flag.Parse()

	profile.Sex = nutrition.Sex(sex)
	profile.Diet = nutrition.DietPreference(diet)
	profile.Activity = nutrition.ActivityLevel(activity)
	profile.Goal = nutrition.Goal(goal)
	if err := profile.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	runID := uuid.NewString()

	catalog := tools.NewCatalog(nil)
	if _, err := os.Stat(*catalogPath); err == nil {
		catalog = tools.NewCatalog(storage.NewFileCatalogState(*catalogPath))
		slog.Info("SETUP: Using catalog file", "path", *catalogPath)
	} else {
		slog.Info("SETUP: Catalog file not found, using built-in catalog", "path", *catalogPath)
	}
	foods, err := catalog.Foods(ctx)
	if err != nil {
		slog.Error("SETUP: Failed to load catalog", "error", err)
		os.Exit(1)
	}

	stepLogger, cleanup, err := newAllocationLogger(cfg.StepLog, runID)
	if err != nil {
		slog.Error("SETUP: Failed to create allocation logger", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("SETUP: Failed to flush allocation log", "error", err)
		}
	}()

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		_, _, otelShutdown, err := macromentor.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()
	}

	planner := nutrition.NewInstrumentedPlanner(
		nutrition.Planner{Allocator: nutrition.Allocator{Observer: stepLogger}},
		otel.Tracer(macromentor.TracerNamePlanner),
		otel.Meter(macromentor.TracerNamePlanner),
	)
	res := planner.Compute(ctx, profile, foods)
	slog.Info("RESULT: Plan computed", "run_id", runID, "converged", res.Plan.Converged())

	printResult(os.Stdout, res)
	if *dump {
		macromentor.Dump(os.Stderr, res)
	}

	if err := export(*out, res.Plan); err != nil {
		slog.Error("RESULT: Failed to export plan", "error", err)
	}

	if cfg.SlackWebhookURL != "" {
		notify(ctx, slack.NewClient(cfg.SlackWebhookURL, http.DefaultClient), cfg.SlackChannel, res)
	}
}

func printResult(w io.Writer, res nutrition.Result) {
	fmt.Fprintf(w, "Calorie target: %d kcal\n", res.DailyCalories)
	fmt.Fprintf(w, "Protein target: %d g\n", res.Macros.ProteinGrams)
	fmt.Fprintf(w, "Carbs / fats:   %d g / %d g\n\n", res.Macros.CarbGrams, res.Macros.FatGrams)

	if len(res.Plan.Items) == 0 {
		fmt.Fprintln(w, "No plan could be generated with current foods.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FOOD\tSERVINGS\tKCAL\tPROTEIN (g)")
		for _, item := range res.Plan.Items {
			fmt.Fprintf(tw, "%s\t%.2f\t%.0f\t%.1f\n", item.Food, item.Servings, item.Calories, item.Protein)
		}
		tw.Flush()
	}

	fmt.Fprintf(w, "\nTotals: %d kcal · %d g protein\n", res.Plan.TotalCalories, res.Plan.TotalProtein)
	if res.Plan.Note != "" {
		fmt.Fprintf(w, "Note: %s\n", res.Plan.Note)
	}
	for _, insight := range res.Insights {
		fmt.Fprintf(w, "- %s\n", insight)
	}
}

func export(path string, plan nutrition.Plan) error {
	switch path {
	case "":
		return nil
	case "-":
		return nutrition.WriteCSV(os.Stdout, plan)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := nutrition.WriteCSV(f, plan); err != nil {
		f.Close()
		return err
	}
	slog.Info("RESULT: Plan exported", "path", path)
	return f.Close()
}

func notify(ctx context.Context, client macromentor.SlackClient, channel string, res nutrition.Result) {
	if err := client.PostMessage(ctx, channel, slack.FormatPlan(res)); err != nil {
		slog.Error("RESULT: Failed to post plan to Slack", "error", err)
		return
	}
	slog.Info("RESULT: Plan posted to Slack", "channel", channel)
}

func newAllocationLogger(enabled bool, runID string) (macromentor.AllocationLogger, func() error, error) {
	if !enabled {
		return macromentor.NewNoOpAllocationLogger(), func() error { return nil }, nil
	}

	if err := os.MkdirAll("./logs", 0o755); err != nil {
		return nil, func() error { return err }, fmt.Errorf("failed to create log dir: %w", err)
	}
	logFile, err := os.OpenFile(macromentor.NewAllocationLogFilePath("./logs", runID), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, func() error { return err }, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := macromentor.NewFileAllocationLogger(runID, logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}
