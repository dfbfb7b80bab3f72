// Package server provides the HTTP server for the meal plan API
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/longevitykitchen/mealplanner/internal/infrastructure/config"
	"github.com/longevitykitchen/mealplanner/internal/infrastructure/http/handlers"
	"github.com/longevitykitchen/mealplanner/internal/infrastructure/http/middleware"
	"github.com/longevitykitchen/mealplanner/internal/infrastructure/monitoring"
	"github.com/longevitykitchen/mealplanner/internal/ports/inbound"
	"github.com/longevitykitchen/mealplanner/internal/ports/outbound"
	"github.com/longevitykitchen/mealplanner/pkg/healthcheck"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	plannerService inbound.PlannerService,
	recipes outbound.RecipeRepository,
	health *healthcheck.HealthCheck,
	httpMetrics *monitoring.HTTPMetrics,
) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
	}

	s.router = s.setupRouter(plannerService, recipes, health, httpMetrics)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter(
	plannerService inbound.PlannerService,
	recipes outbound.RecipeRepository,
	health *healthcheck.HealthCheck,
	httpMetrics *monitoring.HTTPMetrics,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger, s.config.Monitoring))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(chimiddleware.Timeout(60 * time.Second))

	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	h := handlers.NewAPIHandlers(plannerService, recipes, s.logger)

	r.Get(s.config.Monitoring.HealthCheckPath, health.LivenessHandler())
	r.Get(s.config.Monitoring.ReadinessPath, health.ReadinessHandler())
	if s.config.Monitoring.EnableMetrics {
		r.Handle(s.config.Monitoring.MetricsPath, promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(s.config.RateLimit))

		r.Route("/meal-plans", func(r chi.Router) {
			r.Post("/", h.GenerateMealPlan)
			r.Get("/current", h.GetCurrentProposal)
			r.Post("/current/approve", h.ApproveProposal)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", h.ListRecipes)
			r.Get("/{id}", h.GetRecipe)
		})
	})

	return r
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
