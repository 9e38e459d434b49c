// Package web exposes the map page, the map view-model API, and the
// health, readiness, and metrics HTTP endpoints.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kooroshkz/CrashScope/internal/config"
	"github.com/kooroshkz/CrashScope/internal/layer"
	"github.com/kooroshkz/CrashScope/internal/pipeline"
	"github.com/kooroshkz/CrashScope/internal/report"
)

// PipelineView exposes the pipeline outcome to request handlers.
type PipelineView interface {
	Snapshot() pipeline.Snapshot
	CheckReadiness(ctx context.Context) error
}

// Server serves the embedded map page and the pipeline snapshot.
type Server struct {
	httpServer *http.Server
	pipe       PipelineView
	mapCfg     config.MapConfig
	assets     *Assets
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the page, API, and operational routes.
func NewServer(addr string, pipe PipelineView, mapCfg config.MapConfig, assets *Assets, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		pipe:   pipe,
		mapCfg: mapCfg,
		assets: assets,
		logger: logger,
	}

	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /api/map", s.handleMap)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
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

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.assets.IndexHTML))
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.assets.IndexHTML)
}

// mapResponse is the view model the browser widget renders from.
type mapResponse struct {
	State    string              `json:"state"`
	Map      config.MapConfig    `json:"map"`
	Layer    *layer.ClusterGroup `json:"layer,omitempty"`
	Bounds   *layer.Bounds       `json:"bounds,omitempty"`
	Notice   *report.Notice      `json:"notice,omitempty"`
	LoadedAt *time.Time          `json:"loaded_at,omitempty"`
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	snap := s.pipe.Snapshot()

	resp := mapResponse{
		State:  string(snap.State),
		Map:    s.mapCfg,
		Layer:  snap.Layer,
		Bounds: snap.Bounds,
		Notice: snap.Notice,
	}
	if !snap.LoadedAt.IsZero() {
		resp.LoadedAt = &snap.LoadedAt
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.pipe.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
