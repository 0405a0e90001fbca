package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/zatekoja/tripwise/internal/adapters/database"
	"github.com/zatekoja/tripwise/internal/adapters/providers/geolocation"
	"github.com/zatekoja/tripwise/internal/application/services"
	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/internal/domain/providers"
	"github.com/zatekoja/tripwise/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/tripwise/internal/infrastructure/observability"
	"github.com/zatekoja/tripwise/migrations"
	"github.com/zatekoja/tripwise/pkg/config"
	"github.com/zatekoja/tripwise/pkg/geo"
)

func main() {
	var (
		lat, lng    float64
		city        string
		userID      string
		preferences string
		migrate     bool
	)
	flag.Float64Var(&lat, "lat", 26.9124, "latitude to seed around")
	flag.Float64Var(&lng, "lng", 75.7873, "longitude to seed around")
	flag.StringVar(&city, "city", "Jaipur", "city label for seeded places")
	flag.StringVar(&userID, "user", "demo-user", "id of the demo user to create, empty to skip")
	flag.StringVar(&preferences, "prefs", "fort,museum,temple,park", "comma separated demo user preferences")
	flag.BoolVar(&migrate, "migrate", true, "apply the schema before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("tripwise-seed", cfg.Env)
	logger := observability.GetLogger()

	center := geo.Coordinates{Latitude: lat, Longitude: lng}
	if err := center.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid seed location")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if migrate {
		applied, err := migrations.Apply(ctx, pgClient.DB())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to apply schema")
		}
		logger.Info().Strs("files", applied).Msg("schema applied")
	}

	var provider providers.PlacesProvider = geolocation.NewMockPlacesProvider()
	if cfg.Geolocation.Provider == "geoapify" && cfg.Geolocation.APIKey != "" {
		provider = geolocation.NewGeoapifyPlacesProvider(cfg.Geolocation.APIKey, nil, geolocation.GeoapifyOptions{
			BaseURL: cfg.Geolocation.BaseURL,
		})
	}

	seeder := services.NewRegionSeedingService(provider, database.NewPlaceAdapter(pgClient, nil), services.SeedOptions{
		Categories: cfg.Geolocation.SeedCategories,
		RadiusKm:   cfg.Geolocation.SeedRadiusKm,
		Limit:      cfg.Geolocation.SeedLimit,
	})

	places, err := seeder.SeedAround(ctx, center, city)
	if err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}
	logger.Info().Int("places", len(places)).Str("city", city).Msg("places seeded")

	if userID == "" {
		return
	}

	location := entities.LocationFrom(center)
	user := &entities.User{
		ID:          userID,
		Name:        "Demo Traveler",
		Preferences: splitList(preferences),
		Location:    &location,
		City:        city,
	}
	if err := database.NewUserAdapter(pgClient).Upsert(ctx, user); err != nil {
		logger.Fatal().Err(err).Msg("failed to store demo user")
	}
	logger.Info().Str("user_id", userID).Strs("preferences", user.Preferences).Msg("demo user stored")
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
