// Package api provides the HTTP REST API for the assessment service.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/avenirlabs/scorecard-ai/internal/assessment"
	"github.com/avenirlabs/scorecard-ai/internal/core"
	"github.com/avenirlabs/scorecard-ai/internal/events"
	"github.com/avenirlabs/scorecard-ai/internal/logging"
	"github.com/avenirlabs/scorecard-ai/internal/session"
)

// Server exposes assessments, reports and the printable report view.
type Server struct {
	router      chi.Router
	controller  *assessment.Controller
	sessions    *session.Store
	reports     core.ReportStore
	bus         *events.Bus
	logger      *logging.Logger
	corsOrigins []string
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *logging.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// WithCORSOrigins restricts allowed CORS origins. Default is "*".
func WithCORSOrigins(origins []string) ServerOption {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// NewServer creates the API server.
func NewServer(controller *assessment.Controller, sessions *session.Store, reports core.ReportStore, bus *events.Bus, opts ...ServerOption) *Server {
	s := &Server{
		controller:  controller,
		sessions:    sessions,
		reports:     reports,
		bus:         bus,
		logger:      logging.NewNop(),
		corsOrigins: []string{"*"},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.router = s.setupRouter()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures the chi router with all routes and middleware.
func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	r.Use(corsHandler.Handler)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/assessments", func(r chi.Router) {
			r.Post("/", s.handleCreateAssessment)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.handleGetAssessment)
				r.Post("/answers", s.handleSubmitAnswer)
				r.Post("/report", s.handleGenerateReport)
				r.Post("/autocomplete", s.handleStartAutoComplete)
				r.Delete("/autocomplete", s.handleStopAutoComplete)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", s.handleListReports)
			r.Route("/{reportID}", func(r chi.Router) {
				r.Get("/", s.handleGetReport)
				r.Get("/sections", s.handleGetReportSections)
				r.Delete("/", s.handleDeleteReport)
			})
		})

		r.Get("/events", s.handleSSE)
	})

	// Printable HTML view, reachable without the API prefix.
	r.Get("/view/report", s.handleViewReport)

	return r
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"bytes", ww.BytesWritten(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// respondError sends a JSON error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps a domain error to its HTTP status.
func respondDomainError(w http.ResponseWriter, err error) {
	status, ok := httpStatusForDomainError(err)
	if !ok {
		status = http.StatusInternalServerError
	}
	respondError(w, status, err.Error())
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// ListenAndServe starts the HTTP server and shuts it down when ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting API server", "addr", addr)
	return srv.ListenAndServe()
}
