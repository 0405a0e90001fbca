package services

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zatekoja/tripwise/internal/application/recommender"
	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/internal/domain/providers"
	"github.com/zatekoja/tripwise/internal/domain/repositories"
	"github.com/zatekoja/tripwise/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/tripwise/pkg/errors"
	"github.com/zatekoja/tripwise/pkg/geo"
)

const unknownCity = "Unknown"

// RecommendationDefaults are applied when a caller passes a non-positive
// limit or no radius.
type RecommendationDefaults struct {
	Limit    int
	RadiusKm float64
}

// DefaultRecommendationDefaults returns five places within five kilometres.
func DefaultRecommendationDefaults() RecommendationDefaults {
	return RecommendationDefaults{Limit: 5, RadiusKm: 5}
}

// RecommendationService loads the data a ranking needs and hands it to the
// recommender engine.
type RecommendationService struct {
	userRepo  repositories.UserRepository
	planRepo  repositories.PlanRepository
	placeRepo repositories.PlaceRepository
	seeder    providers.RegionSeeder
	engine    *recommender.Engine
	defaults  RecommendationDefaults
	metrics   *observability.Metrics
}

// NewRecommendationService creates a new recommendation service. seeder and
// metrics may be nil.
func NewRecommendationService(
	userRepo repositories.UserRepository,
	planRepo repositories.PlanRepository,
	placeRepo repositories.PlaceRepository,
	seeder providers.RegionSeeder,
	defaults RecommendationDefaults,
	metrics *observability.Metrics,
) *RecommendationService {
	fallback := DefaultRecommendationDefaults()
	if defaults.Limit <= 0 {
		defaults.Limit = fallback.Limit
	}
	if defaults.RadiusKm <= 0 {
		defaults.RadiusKm = fallback.RadiusKm
	}

	return &RecommendationService{
		userRepo:  userRepo,
		planRepo:  planRepo,
		placeRepo: placeRepo,
		seeder:    seeder,
		engine:    recommender.NewEngine(),
		defaults:  defaults,
		metrics:   metrics,
	}
}

// Recommend ranks the whole catalog for the user.
func (s *RecommendationService) Recommend(ctx context.Context, userID string, limit int) ([]*entities.Place, error) {
	ctx, span := observability.StartSpan(ctx, "RecommendationService.Recommend")
	defer span.End()

	if limit <= 0 {
		limit = s.defaults.Limit
	}
	observability.SetSpanAttributes(span,
		attribute.String("user.id", userID),
		attribute.Int("recommendation.limit", limit),
	)

	user, plans, err := s.loadUserAndPlans(ctx, userID)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	catalog, err := s.placeRepo.ListAll(ctx)
	if err != nil {
		err = asAppError("failed to load places", err)
		observability.RecordError(span, err)
		return nil, err
	}

	result := s.engine.RankGlobal(user, plans, catalog)
	return s.finish(ctx, span, user, result, limit), nil
}

// RecommendNear ranks places within radius of center. A nil radius uses the
// default, zero keeps only places at the center and a negative radius is a
// validation error. A nil center means the user's stored location; a user
// without one gets a validation error. An area with no known places is seeded
// at most once per request.
func (s *RecommendationService) RecommendNear(ctx context.Context, userID string, center *geo.Coordinates, radius *float64, limit int) ([]*entities.Place, error) {
	ctx, span := observability.StartSpan(ctx, "RecommendationService.RecommendNear")
	defer span.End()

	if limit <= 0 {
		limit = s.defaults.Limit
	}
	radiusKm := s.defaults.RadiusKm
	if radius != nil {
		if *radius < 0 || math.IsNaN(*radius) {
			err := apperrors.NewValidationError("radius must not be negative")
			observability.RecordError(span, err)
			return nil, err
		}
		radiusKm = *radius
	}
	observability.SetSpanAttributes(span,
		attribute.String("user.id", userID),
		attribute.Int("recommendation.limit", limit),
		attribute.Float64("recommendation.radius_km", radiusKm),
	)

	user, plans, err := s.loadUserAndPlans(ctx, userID)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if center == nil {
		if !user.HasLocation() {
			err := apperrors.NewValidationError("lat and lng are required or user must have a saved location")
			observability.RecordError(span, err)
			return nil, err
		}
		stored := user.Location.Coordinates()
		center = &stored
	}
	observability.SetSpanAttributes(span,
		attribute.Float64("recommendation.lat", center.Latitude),
		attribute.Float64("recommendation.lng", center.Longitude),
	)

	catalog, err := s.placeRepo.ListAll(ctx)
	if err != nil {
		err = asAppError("failed to load places", err)
		observability.RecordError(span, err)
		return nil, err
	}

	nearby := recommender.FilterWithinRadius(catalog, *center, radiusKm)
	if len(nearby) == 0 {
		nearby = s.seedRegion(ctx, user, *center)
	}

	result := s.engine.RankNearby(user, plans, nearby)
	if result.Mode == recommender.ModePopularity && len(result.Entries) > 0 {
		observability.LoggerFromContext(ctx).Info().
			Str("user_id", user.ID).
			Int("candidates", result.Candidates).
			Msg("no place matched the user, ranking nearby places by rating")
	}

	return s.finish(ctx, span, user, result, limit), nil
}

// seedRegion asks the seeder for places around center. Failures are logged
// and yield an empty set.
func (s *RecommendationService) seedRegion(ctx context.Context, user *entities.User, center geo.Coordinates) []*entities.Place {
	logger := observability.LoggerFromContext(ctx)
	if s.seeder == nil {
		return nil
	}

	city := user.City
	if city == "" {
		city = unknownCity
	}

	logger.Warn().
		Float64("lat", center.Latitude).
		Float64("lng", center.Longitude).
		Str("city", city).
		Msg("no places near location, seeding region")

	seeded, err := s.seeder.SeedAround(ctx, center, city)
	if err != nil {
		logger.Error().Err(err).Str("city", city).Msg("region seeding failed, continuing without nearby places")
		observability.RecordRegionSeed(ctx, s.metrics, "failed", 0)
		return nil
	}
	if len(seeded) == 0 {
		observability.RecordRegionSeed(ctx, s.metrics, "empty", 0)
		return nil
	}

	observability.RecordRegionSeed(ctx, s.metrics, "seeded", len(seeded))
	return seeded
}

func (s *RecommendationService) loadUserAndPlans(ctx context.Context, userID string) (*entities.User, []*entities.Plan, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, asAppError("failed to load user", err)
	}
	if user == nil {
		return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", userID))
	}

	plans, err := s.planRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, asAppError("failed to load plans", err)
	}

	if dangling := countDanglingEntries(plans); dangling > 0 {
		observability.LoggerFromContext(ctx).Debug().
			Err(apperrors.NewDataIntegrityError("plan entries reference missing places")).
			Int("entries", dangling).
			Msg("skipping dangling plan entries")
	}

	return user, plans, nil
}

func (s *RecommendationService) finish(ctx context.Context, span trace.Span, user *entities.User, result recommender.Result, limit int) []*entities.Place {
	places := result.Places(limit)

	span.SetAttributes(
		attribute.String("recommendation.mode", string(result.Mode)),
		attribute.Int("recommendation.candidates", result.Candidates),
		attribute.Int("recommendation.returned", len(places)),
	)
	observability.RecordRecommendation(ctx, s.metrics, string(result.Mode), len(places))

	observability.LoggerFromContext(ctx).Debug().
		Str("user_id", user.ID).
		Str("mode", string(result.Mode)).
		Int("candidates", result.Candidates).
		Int("scored", len(result.Entries)).
		Int("returned", len(places)).
		Msg("recommendation computed")

	return places
}

func countDanglingEntries(plans []*entities.Plan) int {
	n := 0
	for _, plan := range plans {
		if plan == nil {
			continue
		}
		for _, entry := range plan.SelectedPlaces {
			if entry.PlaceID == nil || *entry.PlaceID == "" {
				n++
			}
		}
	}
	return n
}

// asAppError keeps typed errors from repositories and wraps anything else
// as internal.
func asAppError(message string, err error) error {
	if apperrors.TypeOf(err) != "" {
		return err
	}
	return apperrors.NewInternalError(message, err)
}
