package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"macromentor"
	"macromentor/api"
	"macromentor/nutrition"
	"macromentor/tools"
	"macromentor/tools/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("SETUP: Failed to load .env", "error", err)
	}

	var cfg macromentor.ServerConfig
	if err := envdecode.Decode(&cfg); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	seed := flag.Bool("seed", false, "seed CATALOG_DB with the built-in catalog before serving")
	flag.Parse()

	catalogState, closeCatalog, err := newCatalogState(ctx, cfg, *seed)
	if err != nil {
		slog.Error("SETUP: Failed to open catalog", "error", err)
		os.Exit(1)
	}
	defer closeCatalog()

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		_, _, otelShutdown, err := macromentor.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := otelShutdown(context.Background()); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()
	}

	planner := nutrition.NewInstrumentedPlanner(
		nutrition.Planner{},
		otel.Tracer(macromentor.TracerNameServer),
		otel.Meter(macromentor.TracerNameServer),
	)

	srv := api.NewServer(tools.NewCatalog(catalogState), planner)
	if err := srv.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		slog.Error("SERVER: Stopped with error", "error", err)
		os.Exit(1)
	}
}

// newCatalogState prefers the SQLite catalog, then the catalog file. A nil
// state means the built-in catalog.
func newCatalogState(ctx context.Context, cfg macromentor.ServerConfig, seed bool) (storage.CatalogState, func(), error) {
	if cfg.CatalogDB != "" {
		db, err := storage.OpenSQLiteCatalogState(cfg.CatalogDB)
		if err != nil {
			return nil, func() {}, err
		}
		if seed {
			if err := db.Seed(ctx, tools.DefaultCatalog()); err != nil {
				db.Close()
				return nil, func() {}, err
			}
			slog.Info("SETUP: Seeded catalog database", "path", cfg.CatalogDB)
		}
		slog.Info("SETUP: Using catalog database", "path", cfg.CatalogDB)
		return db, func() {
			if err := db.Close(); err != nil {
				slog.Error("SETUP: Failed to close catalog database", "error", err)
			}
		}, nil
	}

	if _, err := os.Stat(cfg.CatalogPath); err == nil {
		slog.Info("SETUP: Using catalog file", "path", cfg.CatalogPath)
		return storage.NewFileCatalogState(cfg.CatalogPath), func() {}, nil
	}

	slog.Info("SETUP: Using built-in catalog")
	return nil, func() {}, nil
}
