// ABOUTME: HTTP host for the showcase page: routes, lifecycle and shared helpers
// ABOUTME: Applies computed settings, clock frames and calendar grids to the page

package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/2389/showcase/internal/clock"
	"github.com/2389/showcase/internal/store"
)

// Options configures a Server. Zero values get sensible defaults.
type Options struct {
	// Locale is used when a request's Accept-Language matches nothing supported.
	Locale clock.Locale

	// Location is the time zone the clock and calendar display.
	Location *time.Location

	// TickInterval is the live clock refresh period.
	TickInterval time.Duration

	// Now overrides the instant source (tests).
	Now func() time.Time

	Logger *slog.Logger
}

// Server serves the page and its JSON API.
type Server struct {
	kv         store.KV
	locale     clock.Locale
	now        func() time.Time
	clocks     *clockHub
	templates  *template.Template
	logger     *slog.Logger
	httpServer *http.Server
}

// New creates a Server backed by kv.
func New(kv store.KV, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Locale.DateLayout == "" {
		opts.Locale = clock.EnUS
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = clock.DefaultInterval
	}
	now := opts.Now
	if now == nil {
		loc := opts.Location
		now = func() time.Time { return time.Now().In(loc) }
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	logger := opts.Logger.With("component", "web")
	return &Server{
		kv:        kv,
		locale:    opts.Locale,
		now:       now,
		clocks:    newClockHub(opts.Locale, now, opts.TickInterval, logger),
		templates: tmpl,
		logger:    logger,
	}, nil
}

// RegisterRoutes registers all page and API routes on the given mux
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /help", s.handleHelp)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Settings
	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings/{field}", s.handleSetSetting)
	mux.HandleFunc("POST /api/settings/reset", s.handleResetSettings)

	// Clock
	mux.HandleFunc("GET /api/clock", s.handleGetClock)
	mux.HandleFunc("POST /api/clock/mode", s.handleSetClockMode)
	mux.HandleFunc("GET /api/clock/stream", s.handleClockStream)

	// Calendar and mood tracker
	mux.HandleFunc("GET /api/calendar", s.handleCalendar)
	mux.HandleFunc("POST /api/mood", s.handleMood)

	s.logger.Info("routes registered")
}

// Handler returns the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return mux
}

// Run listens on addr and serves until ctx is cancelled or the server fails,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		s.logger.Error("server error", "error", serverErr)
	}

	// The original context is already canceled; shut down with a fresh one.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdownErr := s.Shutdown(shutdownCtx)

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// Shutdown stops the HTTP server (if running) and all live clocks.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	s.clocks.Close()
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP shutdown: %w", err)
	}
	return nil
}

// handleHealth returns 200 OK if the server is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// localeFor picks the readout locale for a request.
func (s *Server) localeFor(r *http.Request) clock.Locale {
	return clock.MatchAcceptLanguage(r.Header.Get("Accept-Language"), s.locale)
}

// sendJSON writes v as a JSON response with the given status.
func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// sendJSONError writes a JSON error response.
func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, map[string]string{"error": message})
}
