package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"github.com/SscSPs/currency_conversion_service/internal/core/services"
	"github.com/SscSPs/currency_conversion_service/internal/handlers"
	"github.com/SscSPs/currency_conversion_service/internal/middleware"
	"github.com/SscSPs/currency_conversion_service/internal/platform/config"
	"github.com/SscSPs/currency_conversion_service/internal/providers/openexchangerates"
	"github.com/SscSPs/currency_conversion_service/internal/repositories/cache/rediscache"
	"github.com/SscSPs/currency_conversion_service/internal/repositories/database/pgsql"
	"github.com/SscSPs/currency_conversion_service/migrations"
	"github.com/SscSPs/currency_conversion_service/pkg/cache"
	"github.com/SscSPs/currency_conversion_service/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const seedUserName = "Test User"

// @title Currency Conversion Service API
// @version 1.0
// @description Converts amounts between currencies using live exchange rates, gated by per-user API keys.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-KEY
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBConnectTimeout)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if cfg.MigrationsEnabled {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, migrations.FS, logger); err != nil {
			logger.Error("Failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisTimeout)
	if err != nil {
		logger.Error("Failed to initialize redis client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cache.CloseRedisClient(redisClient)

	ratesClient := openexchangerates.NewClient(
		cfg.RatesAPIURL,
		cfg.RatesAPIKey,
		cfg.UpstreamTimeout,
		openexchangerates.WithRateLimit(cfg.UpstreamRatePerSec, cfg.UpstreamBurst),
		openexchangerates.WithLogger(logger),
	)

	repos := pgsql.NewRepositoryProvider(dbPool, rediscache.NewRedisCacheStore(redisClient, logger))
	serviceContainer := services.NewServiceContainer(cfg, repos, ratesClient)

	if cfg.SeedDefaultUser {
		seedDefaultUser(ctx, logger, serviceContainer.User)
	}

	ipLimiter, err := newIPLimiter(cfg.HTTPRateLimit, redisClient)
	if err != nil {
		logger.Error("Failed to initialize HTTP rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, ipLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server", slog.Duration("grace_period", cfg.ShutdownGracePeriod))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shut down", slog.String("error", err.Error()))
	}
}

func newIPLimiter(formatted string, client *redis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "ccs:ratelimit",
	})
	if err != nil {
		return nil, err
	}
	return limiter.New(store, rate), nil
}

func seedDefaultUser(ctx context.Context, logger *slog.Logger, users portssvc.UserWriterSvc) {
	user, created, err := users.EnsureSeedUser(ctx, seedUserName)
	if err != nil {
		logger.Error("Failed to seed default user", slog.String("error", err.Error()))
		return
	}
	if created {
		logger.Info("Seeded default user", slog.String("user_name", user.Name), slog.String("api_key", user.APIKey))
	}
}
