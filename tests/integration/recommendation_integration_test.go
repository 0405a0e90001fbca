//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/zatekoja/tripwise/internal/adapters/cache"
	"github.com/zatekoja/tripwise/internal/adapters/database"
	"github.com/zatekoja/tripwise/internal/adapters/providers/geolocation"
	"github.com/zatekoja/tripwise/internal/application/services"
	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/internal/domain/repositories"
	"github.com/zatekoja/tripwise/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/tripwise/internal/infrastructure/clients/redis"
	"github.com/zatekoja/tripwise/pkg/geo"
)

// RecommendationIntegrationTestSuite runs the recommendation service against
// a real database, seeding through the mock places provider.
type RecommendationIntegrationTestSuite struct {
	suite.Suite
	pg        *postgres.Client
	redis     *redis.Client
	userRepo  repositories.UserRepository
	placeRepo repositories.PlaceRepository
	service   *services.RecommendationService
	ctx       context.Context
}

func (s *RecommendationIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = newTestPostgresClient(s.T())
	s.redis = maybeTestRedisClient(s.T())

	s.userRepo = database.NewUserAdapter(s.pg)
	s.placeRepo = database.NewPlaceAdapter(s.pg, nil)
	if s.redis != nil {
		s.placeRepo = database.NewCachedPlaceAdapter(s.placeRepo, cache.NewRedisAdapter(s.redis, "tripwise-test:"+uuid.NewString()), 30, nil)
	}

	seeder := services.NewRegionSeedingService(geolocation.NewMockPlacesProvider(), s.placeRepo, services.SeedOptions{RadiusKm: 5})
	s.service = services.NewRecommendationService(
		s.userRepo,
		database.NewPlanAdapter(s.pg),
		s.placeRepo,
		seeder,
		services.DefaultRecommendationDefaults(),
		nil,
	)
}

func (s *RecommendationIntegrationTestSuite) TearDownSuite() {
	if s.redis != nil {
		s.redis.Close()
	}
	if s.pg != nil {
		s.pg.Close()
	}
}

func (s *RecommendationIntegrationTestSuite) SetupTest() {
	_, err := s.pg.DB().ExecContext(s.ctx, "TRUNCATE plan_places, plans, users, places CASCADE")
	s.Require().NoError(err)
	if s.redis != nil {
		s.Require().NoError(s.redis.Client().FlushDB(s.ctx).Err())
	}
}

func (s *RecommendationIntegrationTestSuite) TestNearbySeedsEmptyRegionOnce() {
	center := geo.Coordinates{Latitude: 26.9124, Longitude: 75.7873}
	location := entities.LocationFrom(center)
	s.Require().NoError(s.userRepo.Upsert(s.ctx, &entities.User{
		ID:          "traveler",
		Name:        "Traveler",
		Preferences: []string{"fort"},
		Location:    &location,
		City:        "Jaipur",
	}))

	first, err := s.service.RecommendNear(s.ctx, "traveler", nil, &radius, 5)
	s.Require().NoError(err)
	s.Require().NotEmpty(first)
	s.Equal("Old Fort", first[0].Name)

	stored, err := s.placeRepo.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(stored, 6)
	s.Equal("Jaipur", stored[0].City)

	second, err := s.service.RecommendNear(s.ctx, "traveler", nil, &radius, 5)
	s.Require().NoError(err)
	s.Equal(placeIDs(first), placeIDs(second))

	again, err := s.placeRepo.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(again, 6, "a populated region must not be seeded again")
}

func (s *RecommendationIntegrationTestSuite) TestGlobalUsesCoVisitedPlaces() {
	center := geo.Coordinates{Latitude: 26.9124, Longitude: 75.7873}
	_, err := s.service.RecommendNear(s.ctx, s.createUser("seed-trigger", nil), &center, &radius, 5)
	s.Require().NoError(err)

	catalog, err := s.placeRepo.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(catalog, 6)

	me := s.createUser("me", []string{"marketplace"})
	peer := s.createUser("peer", nil)
	s.createPlan(me, catalog[0].ID)
	s.createPlan(peer, catalog[0].ID, catalog[1].ID)

	got, err := s.service.Recommend(s.ctx, me, 3)
	s.Require().NoError(err)
	s.Require().NotEmpty(got)
	s.Equal(catalog[1].ID, got[0].ID)
	s.NotContains(placeIDs(got), catalog[0].ID)
}

func (s *RecommendationIntegrationTestSuite) createUser(id string, prefs []string) string {
	s.Require().NoError(s.userRepo.Upsert(s.ctx, &entities.User{ID: id, Name: id, Preferences: prefs}))
	return id
}

func (s *RecommendationIntegrationTestSuite) createPlan(userID string, placeIDs ...string) {
	planID := uuid.NewString()
	_, err := s.pg.DB().ExecContext(s.ctx, "INSERT INTO plans (id, user_id, title) VALUES ($1, $2, $3)", planID, userID, "trip")
	s.Require().NoError(err)
	for i, placeID := range placeIDs {
		_, err := s.pg.DB().ExecContext(s.ctx,
			"INSERT INTO plan_places (plan_id, position, place_id) VALUES ($1, $2, $3)", planID, i, placeID)
		s.Require().NoError(err)
	}
}

// radius is the search radius in km shared by the nearby cases
var radius = 5.0

func placeIDs(places []*entities.Place) []string {
	ids := make([]string, len(places))
	for i, p := range places {
		ids[i] = p.ID
	}
	return ids
}

func TestRecommendationIntegration(t *testing.T) {
	suite.Run(t, new(RecommendationIntegrationTestSuite))
}
