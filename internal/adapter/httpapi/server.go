package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/disasterwatch/alert-aggregation-service/internal/aggregator"
	"github.com/disasterwatch/alert-aggregation-service/internal/domain"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SnapshotProvider exposes the latest aggregation pass.
type SnapshotProvider interface {
	Snapshot() aggregator.Snapshot
}

// Server exposes the alert API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	snapshots  SnapshotProvider
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the alert routes and the standard
// /healthz, /readyz, and /metrics routes.
func NewServer(addr string, snapshots SnapshotProvider, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		snapshots: snapshots,
		logger:    logger,
	}

	mux.HandleFunc("GET /api/alerts", s.handleAlerts)
	mux.HandleFunc("GET /api/alerts/grouped", s.handleGroupedAlerts)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type alertsResponse struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Count       int            `json:"count"`
	Alerts      []domain.Alert `json:"alerts"`
}

// handleAlerts serves the latest alert list, narrowed by the optional
// q= substring filter.
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshots.Snapshot()

	alerts := snap.Alerts
	if query := r.URL.Query().Get("q"); query != "" {
		alerts = domain.FilterAlerts(alerts, query)
	}
	if alerts == nil {
		alerts = []domain.Alert{}
	}

	writeJSON(w, http.StatusOK, alertsResponse{
		RunID:       snap.RunID,
		GeneratedAt: snap.GeneratedAt,
		Count:       len(alerts),
		Alerts:      alerts,
	})
}

type groupedResponse struct {
	RunID       string                       `json:"run_id"`
	GeneratedAt time.Time                    `json:"generated_at"`
	Groups      map[string]domain.AlertGroup `json:"groups"`
}

// handleGroupedAlerts serves the latest alerts bucketed by coordinate.
func (s *Server) handleGroupedAlerts(w http.ResponseWriter, _ *http.Request) {
	snap := s.snapshots.Snapshot()

	writeJSON(w, http.StatusOK, groupedResponse{
		RunID:       snap.RunID,
		GeneratedAt: snap.GeneratedAt,
		Groups:      domain.GroupAlerts(snap.Alerts),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
