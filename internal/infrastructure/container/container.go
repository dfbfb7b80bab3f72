// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/longevitykitchen/mealplanner/internal/application/planner"
	"github.com/longevitykitchen/mealplanner/internal/infrastructure/config"
	"github.com/longevitykitchen/mealplanner/internal/infrastructure/http/server"
	"github.com/longevitykitchen/mealplanner/internal/infrastructure/monitoring"
	gormRepo "github.com/longevitykitchen/mealplanner/internal/infrastructure/persistence/gorm"
	"github.com/longevitykitchen/mealplanner/internal/infrastructure/persistence/memory"
	redisRepo "github.com/longevitykitchen/mealplanner/internal/infrastructure/persistence/redis"
	"github.com/longevitykitchen/mealplanner/internal/infrastructure/persistence/sqlite"
	"github.com/longevitykitchen/mealplanner/internal/infrastructure/provider/spoonacular"
	"github.com/longevitykitchen/mealplanner/internal/infrastructure/scoring"
	"github.com/longevitykitchen/mealplanner/internal/ports/inbound"
	"github.com/longevitykitchen/mealplanner/internal/ports/outbound"
	"github.com/longevitykitchen/mealplanner/pkg/healthcheck"
	"github.com/longevitykitchen/mealplanner/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	MonitoringModule,
	HealthModule,
	RepositoryModule,
	ProviderModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the SQLite database with GORM
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		db, err := sqlite.SetupDatabase(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		if cfg.Database.Seed {
			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed database", zap.Error(err))
			}
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == ":memory:"),
		)

		return db, nil
	},
)

// CacheModule provides the provider search cache: Redis when enabled,
// otherwise the in-memory implementation.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Redis.Enabled {
			cache, err := redisRepo.NewCacheRepository(cfg.Redis, cfg.RedisAddr(), log)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to redis cache: %w", err)
			}
			log.Info("Using Redis provider cache", zap.String("addr", cfg.RedisAddr()))
			return cache, nil
		}
		log.Info("Using in-memory provider cache")
		return memory.NewCacheRepository(), nil
	},
)

// MonitoringModule provides Prometheus metrics
var MonitoringModule = fx.Provide(
	func(log *zap.Logger) *monitoring.EngineMetrics {
		return monitoring.NewEngineMetrics(log)
	},
	func() *monitoring.HTTPMetrics {
		return monitoring.NewHTTPMetrics()
	},
)

// HealthModule provides dependency health checks for the readiness endpoint
var HealthModule = fx.Provide(
	func(cfg *config.Config, db *gorm.DB, cache outbound.CacheRepository, log *zap.Logger) *healthcheck.HealthCheck {
		health := healthcheck.New(cfg.App.Version, log)
		health.Register(healthcheck.NewDatabaseChecker(db))
		health.Register(healthcheck.NewCacheChecker(cache))
		return health
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	fx.Annotate(
		gormRepo.NewRecipeRepository,
		fx.As(new(outbound.RecipeRepository)),
	),
)

// ProviderModule provides the external recipe provider and scoring engine
var ProviderModule = fx.Provide(
	func(cfg *config.Config, cache outbound.CacheRepository, log *zap.Logger) outbound.RecipeProvider {
		return spoonacular.NewClient(cfg.Provider, cache, log)
	},
	func(log *zap.Logger) outbound.ScoringEngine {
		return scoring.NewEngine(log)
	},
)

// ServiceModule provides the planner service
var ServiceModule = fx.Provide(
	func(
		cfg *config.Config,
		repo outbound.RecipeRepository,
		provider outbound.RecipeProvider,
		engine outbound.ScoringEngine,
		metrics *monitoring.EngineMetrics,
		log *zap.Logger,
	) inbound.PlannerService {
		opts := []planner.Option{planner.WithMetrics(metrics)}
		if cfg.Planner.Seed != 0 {
			opts = append(opts, planner.WithSeed(cfg.Planner.Seed))
		}
		return planner.NewService(repo, provider, engine, log, opts...)
	},
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	func(
		cfg *config.Config,
		log *zap.Logger,
		plannerService inbound.PlannerService,
		repo outbound.RecipeRepository,
		health *healthcheck.HealthCheck,
		httpMetrics *monitoring.HTTPMetrics,
	) *server.Server {
		return server.NewServer(cfg, log, plannerService, repo, health, httpMetrics)
	},
)

// LifecycleModule wires server start and stop into the fx lifecycle
var LifecycleModule = fx.Invoke(
	func(lc fx.Lifecycle, srv *server.Server, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := srv.Start(); err != nil {
						log.Error("HTTP server stopped", zap.Error(err))
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return srv.Shutdown(ctx)
			},
		})
	},
)
