// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api provides the HTTP page server for dagskra.
package api

import (
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/dagskra/internal/api/middleware"
	"github.com/ManuGH/dagskra/internal/health"
)

// Server represents the HTTP page server.
type Server struct {
	cfg       ConfigSource
	templates *template.Template
	health    *health.Manager
	observer  FetchObserver
	now       func() time.Time

	mu      sync.RWMutex
	fetcher ScheduleFetcher
}

// ServerOption allows functional configuration of the Server.
type ServerOption func(*Server)

// WithHealthManager serves /healthz and /readyz from m.
func WithHealthManager(m *health.Manager) ServerOption {
	return func(s *Server) { s.health = m }
}

// WithFetchObserver reports every fetch outcome to o.
func WithFetchObserver(o FetchObserver) ServerOption {
	return func(s *Server) { s.observer = o }
}

// WithClock overrides the clock used for the date heading of an empty schedule.
func WithClock(now func() time.Time) ServerOption {
	return func(s *Server) { s.now = now }
}

// WithTemplates replaces the embedded page templates.
func WithTemplates(t *template.Template) ServerOption {
	return func(s *Server) { s.templates = t }
}

// NewServer creates a page server reading configuration from cfg and
// schedules from fetcher.
func NewServer(cfg ConfigSource, fetcher ScheduleFetcher, opts ...ServerOption) *Server {
	s := &Server{
		cfg:       cfg,
		fetcher:   fetcher,
		templates: pageTemplates,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.health == nil {
		s.health = health.NewManager(cfg.Get().Version)
	}
	return s
}

// SetFetcher swaps the schedule source, e.g. after the upstream settings
// were reloaded. In-flight requests keep the fetcher they started with.
func (s *Server) SetFetcher(f ScheduleFetcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetcher = f
}

func (s *Server) currentFetcher() ScheduleFetcher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetcher
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	cfg := s.cfg.Get()

	r := middleware.NewRouter(middleware.StackConfig{
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		TracingService:        tracingService(cfg.Telemetry.Enabled, cfg.LogService),
		EnableLogging:         true,
	})

	// Health checks stay outside the rate limiter.
	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)

	r.Group(func(r chi.Router) {
		if cfg.RateLimit.Enabled {
			r.Use(middleware.RateLimit(middleware.RateLimitConfig{
				RequestLimit: cfg.RateLimit.RequestsPerMinute,
				WindowSize:   time.Minute,
			}))
		}
		r.Get("/", s.handleIndex)
		r.Get("/schedule", s.handleSchedule)
		r.Handle("/static/*", http.StripPrefix("/static", s.staticHandler()))
	})

	return r
}

func tracingService(enabled bool, service string) string {
	if !enabled {
		return ""
	}
	if service == "" {
		return "dagskra"
	}
	return service
}
