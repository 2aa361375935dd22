// Package http exposes the operational HTTP surface: health, metrics and an
// offline render endpoint for structured blocks.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/animefmt"
	"github.com/aretw0/animefmt/internal/logging"
	"github.com/aretw0/animefmt/pkg/format"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxRenderBody bounds the POST /v1/render payload.
const MaxRenderBody = 64 << 10

// ShutdownTimeout is how long Serve waits for outstanding requests.
const ShutdownTimeout = 5 * time.Second

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Text string `json:"text"`
}

// RenderResponse is the reply of POST /v1/render.
// Markup is empty when the text is not a valid structured block.
type RenderResponse struct {
	Matched bool   `json:"matched"`
	Markup  string `json:"markup"`
}

// Server holds the handlers' dependencies.
type Server struct {
	renderer *format.Renderer
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithGatherer sets the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler builds the router.
func NewHandler(renderer *format.Renderer, opts ...Option) http.Handler {
	s := &Server{
		renderer: renderer,
		gatherer: prometheus.DefaultGatherer,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Post("/v1/render", s.Render)
	return r
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"app":     "animefmt",
		"version": animefmt.Version,
	})
}

// Render handles the POST /v1/render request.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	var body RenderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRenderBody)).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Render: Invalid request body", "err", err)
		return
	}

	record, ok := format.Parse(body.Text)
	if !ok {
		writeJSON(w, s.logger, http.StatusOK, RenderResponse{Matched: false})
		return
	}
	card := s.renderer.Render(record, "")
	writeJSON(w, s.logger, http.StatusOK, RenderResponse{Matched: true, Markup: card.Text})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}

// Serve runs handler on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("ops http server listening", "addr", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("closing http server: %w", err)
			}
		}
		logger.Info("ops http server stopped")
		return nil
	}
}
