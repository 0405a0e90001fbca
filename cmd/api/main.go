package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zatekoja/tripwise/internal/adapters/cache"
	"github.com/zatekoja/tripwise/internal/adapters/database"
	"github.com/zatekoja/tripwise/internal/adapters/providers/geolocation"
	"github.com/zatekoja/tripwise/internal/api/handlers"
	"github.com/zatekoja/tripwise/internal/api/routes"
	"github.com/zatekoja/tripwise/internal/application/services"
	"github.com/zatekoja/tripwise/internal/domain/providers"
	"github.com/zatekoja/tripwise/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/tripwise/internal/infrastructure/clients/redis"
	"github.com/zatekoja/tripwise/internal/infrastructure/observability"
	"github.com/zatekoja/tripwise/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Redis is optional: without it the catalog and places lookups are not cached.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, running without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient, "tripwise")
	}

	userRepo := database.NewUserAdapter(pgClient)
	planRepo := database.NewPlanAdapter(pgClient)
	placeRepo := database.NewPlaceAdapter(pgClient, metrics)
	if cacheProvider != nil {
		placeRepo = database.NewCachedPlaceAdapter(placeRepo, cacheProvider, cfg.Recommendation.CatalogCacheTTLSeconds, metrics)
	}

	placesProvider := newPlacesProvider(cfg, cacheProvider)
	seeder := services.NewRegionSeedingService(placesProvider, placeRepo, services.SeedOptions{
		Categories: cfg.Geolocation.SeedCategories,
		RadiusKm:   cfg.Geolocation.SeedRadiusKm,
		Limit:      cfg.Geolocation.SeedLimit,
	})

	recommendationService := services.NewRecommendationService(
		userRepo,
		planRepo,
		placeRepo,
		seeder,
		services.RecommendationDefaults{
			Limit:    cfg.Recommendation.DefaultLimit,
			RadiusKm: cfg.Recommendation.DefaultRadiusKm,
		},
		metrics,
	)

	router := routes.NewRouter(handlers.NewRecommendationHandler(recommendationService), metrics, cfg.Server.AllowedOrigins)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}

// newPlacesProvider picks the places backend used for region seeding
func newPlacesProvider(cfg *config.Config, cacheProvider providers.CacheProvider) providers.PlacesProvider {
	switch cfg.Geolocation.Provider {
	case "geoapify":
		if cfg.Geolocation.APIKey == "" {
			observability.GetLogger().Warn().Msg("GEOLOCATION_API_KEY not set, falling back to mock places provider")
			return geolocation.NewMockPlacesProvider()
		}
		return geolocation.NewGeoapifyPlacesProvider(cfg.Geolocation.APIKey, cacheProvider, geolocation.GeoapifyOptions{
			BaseURL: cfg.Geolocation.BaseURL,
		})
	default:
		return geolocation.NewMockPlacesProvider()
	}
}
