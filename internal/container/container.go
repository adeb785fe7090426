package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-geomapper/app/db"
	appMiddleware "github.com/FACorreiaa/go-geomapper/app/middleware"
	"github.com/FACorreiaa/go-geomapper/app/observability/metrics"
	"github.com/FACorreiaa/go-geomapper/config"
	generativeAI "github.com/FACorreiaa/go-geomapper/internal/api/generative_ai"
	"github.com/FACorreiaa/go-geomapper/internal/api/locations"
	"github.com/FACorreiaa/go-geomapper/internal/router"
	"github.com/FACorreiaa/go-geomapper/internal/shell"
	"github.com/FACorreiaa/go-geomapper/internal/views"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	AIClient         generativeAI.ContentGenerator
	Repository       locations.Repository
	LocationService  locations.Service
	LocationsHandler *locations.HandlerImpl
	Sessions         *shell.Store
	ShellHandler     *shell.HandlerImpl
	RateLimiter      *appMiddleware.RateLimiter
}

// NewContainer connects to the AI backend and, when enabled, the audit database.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	aiClient, err := generativeAI.NewAIClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI client: %w", err)
	}
	return NewContainerWithGenerator(ctx, cfg, aiClient, logger)
}

// NewContainerWithGenerator wires the application around an existing AI client.
func NewContainerWithGenerator(ctx context.Context, cfg *config.Config, aiClient generativeAI.ContentGenerator, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config:   cfg,
		Logger:   logger,
		AIClient: aiClient,
	}

	repo, pool, err := newRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	c.Pool = pool
	c.Repository = repo

	metrics.InitAppMetrics()
	appMetrics := metrics.Get()

	region := cfg.TargetRegion()
	c.LocationService = locations.NewServiceImpl(aiClient, repo, appMetrics, locations.Options{
		Region:        region,
		Temperature:   cfg.AI.Temperature,
		OptimizeRoute: cfg.Route.Optimize,
	}, logger.With(slog.String("component", "locations")))
	c.LocationsHandler = locations.NewHandlerImpl(c.LocationService, logger)

	sessionLogger := logger.With(slog.String("component", "shell"))
	c.Sessions = shell.NewStore(cfg.Session.TTL, func() *shell.Session {
		return shell.NewSession(c.LocationService, appMetrics, sessionLogger)
	})
	c.ShellHandler = shell.NewHandlerImpl(c.Sessions, region, logger)

	c.RateLimiter = appMiddleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL, logger)

	return c, nil
}

func newRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (locations.Repository, *pgxpool.Pool, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if errors.Is(err, database.ErrPostgresDisabled) {
		logger.Info("Audit database disabled, interactions will not be stored")
		return locations.NoopRepository{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate database config: %w", err)
	}

	if err = database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	pool, err := database.Init(ctx, dbConfig.ConnectionURL, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	waitCtx := ctx
	if dbConfig.MaxWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, dbConfig.MaxWait)
		defer cancel()
	}
	if !database.WaitForDB(waitCtx, pool, logger) {
		pool.Close()
		return nil, nil, errors.New("database not ready after waiting")
	}

	return locations.NewRepositoryImpl(pool, logger), pool, nil
}

// Router returns the application routes without server-wide middleware.
func (c *Container) Router() chi.Router {
	sessionCfg := appMiddleware.SessionConfig{
		Secret:     []byte(c.Config.Session.Secret),
		CookieName: c.Config.Session.CookieName,
		Audience:   c.Config.Session.Audience,
		TTL:        c.Config.Session.TTL,
		Secure:     c.Config.Session.Secure,
	}

	return router.SetupRouter(&router.Config{
		LocationsHandler:    c.LocationsHandler,
		ShellHandler:        c.ShellHandler,
		SessionMiddleware:   appMiddleware.Session(sessionCfg, c.Logger),
		RateLimitMiddleware: c.RateLimiter.Handler,
		ReadinessProbes: map[string]router.Probe{
			"ai": func(context.Context) error {
				if c.AIClient == nil {
					return generativeAI.ErrMissingAPIKey
				}
				return nil
			},
			"audit_db": c.Repository.Ping,
		},
		AllowedOrigins: c.Config.CORS.AllowedOrigins,
		StaticFS:       views.Static(),
		EnableSwagger:  c.Config.Handlers.Swagger.Enabled,
	})
}

// Close releases the database pool.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
