package nutrition

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedPlanner wraps a Planner with tracing and metrics.
type InstrumentedPlanner struct {
	planner Planner
	tracer  trace.Tracer

	plansCounter       metric.Int64Counter
	unconvergedCounter metric.Int64Counter
	stepsHist          metric.Int64Histogram
	lineItemsHist      metric.Int64Histogram
	durationHist       metric.Float64Histogram
}

// NewInstrumentedPlanner initializes the instruments on meter up front.
// Instrument creation errors are logged and otherwise ignored.
func NewInstrumentedPlanner(planner Planner, tracer trace.Tracer, meter metric.Meter) *InstrumentedPlanner {
	ip := &InstrumentedPlanner{planner: planner, tracer: tracer}

	var err error
	if ip.plansCounter, err = meter.Int64Counter("plans_generated_total",
		metric.WithDescription("Total number of plans generated")); err != nil {
		slog.Warn("PLANNER: Failed to create instrument", "name", "plans_generated_total", "error", err)
	}
	if ip.unconvergedCounter, err = meter.Int64Counter("plans_unconverged_total",
		metric.WithDescription("Total number of plans that fell short of a target")); err != nil {
		slog.Warn("PLANNER: Failed to create instrument", "name", "plans_unconverged_total", "error", err)
	}
	if ip.stepsHist, err = meter.Int64Histogram("plan_steps",
		metric.WithDescription("Allocator iterations per plan")); err != nil {
		slog.Warn("PLANNER: Failed to create instrument", "name", "plan_steps", "error", err)
	}
	if ip.lineItemsHist, err = meter.Int64Histogram("plan_line_items",
		metric.WithDescription("Distinct foods per plan")); err != nil {
		slog.Warn("PLANNER: Failed to create instrument", "name", "plan_line_items", "error", err)
	}
	if ip.durationHist, err = meter.Float64Histogram("plan_duration_seconds",
		metric.WithDescription("Time taken to compute a plan in seconds"),
		metric.WithUnit("s")); err != nil {
		slog.Warn("PLANNER: Failed to create instrument", "name", "plan_duration_seconds", "error", err)
	}
	return ip
}

// Compute runs the wrapped planner inside a span.
func (ip *InstrumentedPlanner) Compute(ctx context.Context, p Profile, foods []Food) Result {
	ctx, span := ip.tracer.Start(ctx, "InstrumentedPlanner.Compute", trace.WithAttributes(
		attribute.String("profile.activity", string(p.Activity)),
		attribute.String("profile.goal", string(p.Goal)),
		attribute.String("profile.diet", string(p.Diet)),
		attribute.Int("catalog.size", len(foods)),
	))
	defer span.End()

	start := time.Now()
	res := ip.planner.Compute(p, foods)
	elapsed := time.Since(start).Seconds()

	attrs := metric.WithAttributes(
		attribute.String("goal", string(p.Goal)),
		attribute.Bool("converged", res.Plan.Converged()),
	)
	ip.plansCounter.Add(ctx, 1, attrs)
	ip.stepsHist.Record(ctx, int64(res.Plan.Steps), attrs)
	ip.lineItemsHist.Record(ctx, int64(len(res.Plan.Items)), attrs)
	ip.durationHist.Record(ctx, elapsed, attrs)

	span.SetAttributes(
		attribute.Int("plan.daily_calories", res.DailyCalories),
		attribute.Int("plan.protein_target_g", res.Macros.ProteinGrams),
		attribute.Int("plan.total_calories", res.Plan.TotalCalories),
		attribute.Int("plan.total_protein_g", res.Plan.TotalProtein),
		attribute.Int("plan.steps", res.Plan.Steps),
		attribute.Int("plan.line_items", len(res.Plan.Items)),
	)
	if !res.Plan.Converged() {
		ip.unconvergedCounter.Add(ctx, 1, attrs)
		span.AddEvent("plan.unconverged", trace.WithAttributes(attribute.String("note", res.Plan.Note)))
	} else {
		span.SetStatus(codes.Ok, "plan converged")
	}

	slog.Info("PLANNER: Plan computed",
		"daily_calories", res.DailyCalories,
		"total_calories", res.Plan.TotalCalories,
		"total_protein_g", res.Plan.TotalProtein,
		"steps", res.Plan.Steps,
		"line_items", len(res.Plan.Items),
		"duration_seconds", elapsed,
	)
	return res
}
