// Package server exposes the assistant over HTTP: the chat endpoint, direct
// calculation and analytics endpoints, read-only knowledge lookups, and the
// optional interaction history.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carbon-assistant/internal/assistant"
	"carbon-assistant/internal/assistant/knowledge"
	"carbon-assistant/internal/carbon"
	"carbon-assistant/internal/common/config"
	"carbon-assistant/internal/common/logger"
	"carbon-assistant/internal/models"
	"carbon-assistant/pkg/schemas"
)

// HealthCheck is one readiness probe, e.g. a database ping.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	router    *chi.Mux
	assistant *assistant.Assistant
	engine    *carbon.Engine
	kb        *knowledge.Base
	history   models.HistoryRepository
	schemas   *schemas.Registry
	checks    []HealthCheck
	logger    logger.Logger
	startedAt time.Time
}

// NewServer wires the HTTP surface. history may be nil when the database is
// disabled; the history endpoints then answer 501.
func NewServer(
	cfg config.ServerConfig,
	a *assistant.Assistant,
	engine *carbon.Engine,
	kb *knowledge.Base,
	history models.HistoryRepository,
	reg *schemas.Registry,
	checks []HealthCheck,
	log logger.Logger,
) *Server {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Session-Id"},
		ExposedHeaders: []string{"X-Session-Id"},
		MaxAge:         300,
	}))

	s := &Server{
		router:    r,
		assistant: a,
		engine:    engine,
		kb:        kb,
		history:   history,
		schemas:   reg,
		checks:    checks,
		logger:    log.With(map[string]interface{}{"component": "http_server"}),
		startedAt: time.Now(),
	}
	r.Use(s.recoverMiddleware)
	r.Use(s.requestLogger)
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/ready", s.handleReady)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Post("/calculate", s.handleCalculate)
		r.Post("/analytics/projection", s.handleProjection)

		r.Get("/knowledge/concepts/{key}", s.handleConcept)
		r.Get("/knowledge/recommendations/{industry}", s.handleRecommendations)
		r.Get("/knowledge/insights/{industry}", s.handleInsights)
		r.Get("/knowledge/compliance/{standard}", s.handleCompliance)

		r.Get("/history", s.handleHistory)
		r.Get("/history/summary", s.handleHistorySummary)
	})
}

// Router returns the handler for mounting into an http.Server.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"uptimeSeconds":  int(time.Since(s.startedAt).Seconds()),
		"rulesetVersion": s.assistant.Classifier().Version(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for _, check := range s.checks {
		if err := check.Check(ctx); err != nil {
			results[check.Name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[check.Name] = "ok"
	}

	s.writeJSON(w, status, map[string]interface{}{
		"ready":  status == http.StatusOK,
		"checks": results,
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panicked", map[string]interface{}{
					"path":  r.URL.Path,
					"panic": rec,
				})
				http.Error(w, `{"code":"INTERNAL","message":"internal server error"}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request handled", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}
