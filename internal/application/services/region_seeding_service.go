package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/internal/domain/providers"
	"github.com/zatekoja/tripwise/internal/domain/repositories"
	"github.com/zatekoja/tripwise/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/tripwise/pkg/errors"
	"github.com/zatekoja/tripwise/pkg/geo"
)

// SeedOptions controls what a seeding run asks the places provider for
type SeedOptions struct {
	Categories []string
	RadiusKm   float64
	Limit      int
}

// RegionSeedingService fills the place catalog for an area from an external
// places provider. It implements providers.RegionSeeder.
type RegionSeedingService struct {
	provider  providers.PlacesProvider
	placeRepo repositories.PlaceRepository
	opts      SeedOptions
	now       func() time.Time
}

var _ providers.RegionSeeder = (*RegionSeedingService)(nil)

// NewRegionSeedingService creates a new region seeding service
func NewRegionSeedingService(provider providers.PlacesProvider, placeRepo repositories.PlaceRepository, opts SeedOptions) *RegionSeedingService {
	if opts.RadiusKm <= 0 {
		opts.RadiusKm = 5
	}
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	return &RegionSeedingService{
		provider:  provider,
		placeRepo: placeRepo,
		opts:      opts,
		now:       time.Now,
	}
}

// SeedAround fetches places around center, stores them and returns what was
// stored. Provider and storage failures are reported as upstream unavailable.
func (s *RegionSeedingService) SeedAround(ctx context.Context, center geo.Coordinates, city string) ([]*entities.Place, error) {
	ctx, span := observability.StartSpan(ctx, "RegionSeedingService.SeedAround")
	defer span.End()
	observability.SetSpanAttributes(span,
		attribute.Float64("seed.lat", center.Latitude),
		attribute.Float64("seed.lng", center.Longitude),
		attribute.String("seed.city", city),
	)

	found, err := s.provider.GetNearbyPlaces(ctx, providers.NearbyQuery{
		Center:     center,
		RadiusKm:   s.opts.RadiusKm,
		Categories: s.opts.Categories,
		Limit:      s.opts.Limit,
	})
	if err != nil {
		err = apperrors.NewUpstreamUnavailableError(
			fmt.Sprintf("places lookup around %.4f,%.4f failed", center.Latitude, center.Longitude), err)
		observability.RecordError(span, err)
		return nil, err
	}

	places := s.toEntities(found, city)
	if len(places) == 0 {
		return places, nil
	}

	if err := s.placeRepo.UpsertMany(ctx, places); err != nil {
		err = apperrors.NewUpstreamUnavailableError("failed to store seeded places", err)
		observability.RecordError(span, err)
		return nil, err
	}

	observability.SetSpanAttributes(span, attribute.Int("seed.places", len(places)))
	observability.LoggerFromContext(ctx).Info().
		Str("city", city).
		Int("places", len(places)).
		Msg("seeded region")

	return places, nil
}

func (s *RegionSeedingService) toEntities(found []*providers.Place, city string) []*entities.Place {
	now := s.now().UTC()
	places := make([]*entities.Place, 0, len(found))
	seen := make(map[string]struct{}, len(found))

	for _, p := range found {
		if p == nil || strings.TrimSpace(p.Name) == "" {
			continue
		}

		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		placeCity := p.City
		if placeCity == "" {
			placeCity = city
		}

		place := &entities.Place{
			ID:          id,
			Name:        p.Name,
			Address:     p.Address,
			Location:    entities.LocationFrom(p.Coordinates),
			Categories:  dedupeStrings(p.Categories),
			Rating:      p.Rating,
			ReviewCount: p.ReviewCount,
			City:        placeCity,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if p.PhotoURL != "" {
			photo := p.PhotoURL
			place.PhotoURL = &photo
		}
		places = append(places, place)
	}

	return places
}

func dedupeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
