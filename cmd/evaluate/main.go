package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/zatekoja/tripwise/internal/adapters/database"
	"github.com/zatekoja/tripwise/internal/application/services"
	"github.com/zatekoja/tripwise/internal/evaluation"
	"github.com/zatekoja/tripwise/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/tripwise/internal/infrastructure/observability"
	"github.com/zatekoja/tripwise/pkg/config"
)

func main() {
	var (
		goldenPath string
		k          int
	)
	flag.StringVar(&goldenPath, "golden", "config/golden_cases.json", "path to the golden case set")
	flag.IntVar(&k, "k", evaluation.DefaultK, "ranking cutoff")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("tripwise-evaluate", cfg.Env)
	logger := observability.GetLogger()

	cases, err := evaluation.LoadGoldenCases(goldenPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load golden cases")
	}
	if err := evaluation.ValidateGoldenCases(cases); err != nil {
		logger.Fatal().Err(err).Msg("invalid golden cases")
	}

	ctx := context.Background()
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	// No seeder: evaluation must not change the catalog it measures.
	recommendationService := services.NewRecommendationService(
		database.NewUserAdapter(pgClient),
		database.NewPlanAdapter(pgClient),
		database.NewPlaceAdapter(pgClient, nil),
		nil,
		services.RecommendationDefaults{
			Limit:    cfg.Recommendation.DefaultLimit,
			RadiusKm: cfg.Recommendation.DefaultRadiusKm,
		},
		nil,
	)

	summary, err := evaluation.NewRunner(recommendationService, k).Run(ctx, cases)
	if err != nil {
		logger.Fatal().Err(err).Msg("evaluation failed")
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to encode summary")
	}
	fmt.Println(string(out))
}
