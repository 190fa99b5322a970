// Package api serves the planner over HTTP: GET /api/foods,
// POST /api/generate and POST /api/export_csv.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"macromentor"
	"macromentor/nutrition"
	"macromentor/tools"
)

const maxBodyBytes = 1 << 20

// Server serves the catalog and plan endpoints.
type Server struct {
	catalog macromentor.CatalogSource
	planner macromentor.PlanComputer
}

func NewServer(catalog macromentor.CatalogSource, planner macromentor.PlanComputer) *Server {
	return &Server{catalog: catalog, planner: planner}
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/foods", s.handleFoods)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/export_csv", s.handleExportCSV)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return withCORS(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("SERVER: Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("SERVER: Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := s.catalog.Foods(r.Context())
	if err != nil {
		slog.Error("SERVER: Failed to load catalog", "error", err)
		writeError(w, http.StatusInternalServerError, "Catalog unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "foods": foods})
}

type generateResponse struct {
	Status string `json:"status"`
	RunID  string `json:"run_id"`
	tools.PlanResponse
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	input := map[string]any{}
	if err := decodeBody(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}

	profile, err := tools.ProfileFromInput(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid inputs", err)
		return
	}

	foods, err := s.catalog.Foods(r.Context())
	if err != nil {
		slog.Error("SERVER: Failed to load catalog", "error", err)
		writeError(w, http.StatusInternalServerError, "Catalog unavailable", err)
		return
	}

	runID := uuid.NewString()
	res := s.planner.Compute(r.Context(), profile, foods)
	slog.Info("SERVER: Plan generated",
		"run_id", runID,
		"daily_calories", res.DailyCalories,
		"line_items", len(res.Plan.Items),
		"converged", res.Plan.Converged(),
	)

	writeJSON(w, http.StatusOK, generateResponse{
		Status:       "ok",
		RunID:        runID,
		PlanResponse: tools.NewPlanResponse(profile, res),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Plan []nutrition.LineItem `json:"plan"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if len(body.Plan) == 0 {
		writeError(w, http.StatusBadRequest, "No plan to export", nil)
		return
	}

	var buf bytes.Buffer
	if err := nutrition.WriteCSV(&buf, nutrition.Plan{Items: body.Plan}); err != nil {
		writeError(w, http.StatusInternalServerError, "Export failed", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="meal_plan.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) // nolint: errcheck
}

// decodeBody decodes a JSON body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("SERVER: Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"status": "error", "message": message}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
