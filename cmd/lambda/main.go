package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/joeshaw/envdecode"

	"macromentor"
	"macromentor/nutrition"
	"macromentor/tools"
	"macromentor/tools/storage"
)

// Params names a registry tool to run, e.g.
// {"tool": "plan_generate", "input": {"weight": 70}}.
type Params struct {
	Tool  string         `json:"tool"`
	Input map[string]any `json:"input"`
}

type Results struct {
	RunID  string         `json:"run_id"`
	Output map[string]any `json:"output"`
}

func main() {
	var s3Config macromentor.CatalogS3Config
	if err := envdecode.Decode(&s3Config); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	fn := func(ctx context.Context, params Params) (Results, error) {
		runID := uuid.NewString()

		awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMaxAttempts(5))
		if err != nil {
			return Results{}, fmt.Errorf("failed to load AWS config: %w", err)
		}
		catalog := tools.NewCatalog(storage.NewS3CatalogState(s3.NewFromConfig(awsCfg), s3Config.Bucket, s3Config.Key))
		slog.Info("SETUP: S3 catalog state initialized", "bucket", s3Config.Bucket, "key", s3Config.Key)

		tracerProvider, meterProvider, otelShutdown, err := macromentor.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return Results{}, err
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		planner := nutrition.NewInstrumentedPlanner(
			nutrition.Planner{Allocator: nutrition.Allocator{Observer: macromentor.NewStdoutAllocationLogger(runID)}},
			tracerProvider.Tracer(macromentor.TracerNameLambda),
			meterProvider.Meter(macromentor.TracerNameLambda),
		)

		registry, err := tools.NewRegistry(catalog, planner)
		if err != nil {
			slog.Error("SETUP: Failed to create tool registry", "error", err)
			return Results{}, err
		}
		slog.Info("SETUP: Tool registry ready", "tools", toolNames(registry))

		output, err := run(ctx, registry, params)
		if err != nil {
			slog.Error("RESULT: Error handling request", "run_id", runID, "tool", params.Tool, "error", err)
			return Results{}, err
		}
		slog.Info("RESULT: Request handled", "run_id", runID, "tool", params.Tool)

		return Results{RunID: runID, Output: output}, nil
	}

	lambda.Start(fn)
}

func run(ctx context.Context, registry *tools.Registry, params Params) (map[string]any, error) {
	name := params.Tool
	if name == "" {
		name = "plan_generate"
	}
	return registry.Run(ctx, tools.Call{Name: name, Input: params.Input})
}

func toolNames(provider macromentor.ToolProvider) []string {
	var names []string
	for _, tool := range provider.GetTools() {
		names = append(names, tool.Name())
	}
	return names
}
