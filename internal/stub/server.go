// Package stub runs a local development server that replays canned
// Waveform API responses, so the TUI can be exercised without a real
// backend. It serves the same envelope contract the client consumes
// and exports request metrics for poking at with curl.
package stub

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/wavefeed/wavefeed/internal/uilog"
)

// Config holds stub server settings.
type Config struct {
	Host         string
	Port         int
	FixturesPath string // optional JSON file; empty = generated demo data
}

// DefaultConfig returns the default stub configuration, matching the
// client's default server URL.
func DefaultConfig() Config {
	return Config{Host: "localhost", Port: 8085}
}

// Server is the stub HTTP server.
type Server struct {
	fixtures *Fixtures
	router   chi.Router
	config   Config
}

// NewServer creates a stub server. When cfg.FixturesPath is set the
// file is loaded up front; otherwise generated demo data is used.
func NewServer(cfg Config) (*Server, error) {
	s := &Server{
		fixtures: NewFixtures(),
		config:   cfg,
	}
	if cfg.FixturesPath != "" {
		if err := s.fixtures.LoadFile(cfg.FixturesPath); err != nil {
			return nil, err
		}
	}
	s.router = s.setupRouter()
	return s, nil
}

func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/user-activity", s.instrument("user-activity", s.handleUserActivity))
	r.Get("/api/templates/{templateID}", s.instrument("template", s.handleTemplate))
	r.Post("/api/admin/reset-password", s.instrument("reset-password", s.handleResetPassword))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>wavefeed stub</title></head>
<body>
<h1>wavefeed stub server</h1>
<p>Activity API at <a href="/api/user-activity?page=1&limit=20">/api/user-activity</a></p>
</body>
</html>`)
	})

	return r
}

// Router exposes the router for tests.
func (s *Server) Router() chi.Router { return s.router }

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Run serves HTTP and, when a fixtures file is configured, watches it
// for changes. Blocks until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.listenAndServe(ctx) })
	if s.config.FixturesPath != "" {
		g.Go(func() error { return s.fixtures.Watch(ctx, s.config.FixturesPath) })
	}

	return g.Wait()
}

func (s *Server) listenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Addr(),
		Handler: s.router,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("stub server running at http://%s\n", s.Addr())
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// instrument wraps a handler with request metrics.
func (s *Server) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		h(ww, r)
		requestsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		requestDurationSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleUserActivity(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "page must be a positive integer",
		})
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 100 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "limit must be between 1 and 100",
		})
		return
	}

	items := s.fixtures.ActivityPage(page, limit)
	activitiesServed.Add(float64(len(items)))
	uilog.Log.Debug("activity page served", "page", page, "count", len(items))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"activities": items,
	})
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "templateID")
	tpl, ok := s.fixtures.TemplateByID(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "template not found",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"template": tpl,
	})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "user_id is required",
		})
		return
	}
	uilog.Log.Info("password reset issued", "user", req.UserID)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
