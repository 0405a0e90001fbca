package providers

import (
	"context"

	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/pkg/geo"
)

// RegionSeeder populates the catalog for an area that has no places yet.
type RegionSeeder interface {
	// SeedAround creates and returns places around center. city labels the
	// new records and may be empty.
	SeedAround(ctx context.Context, center geo.Coordinates, city string) ([]*entities.Place, error)
}
