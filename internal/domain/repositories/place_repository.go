package repositories

import (
	"context"

	"github.com/zatekoja/tripwise/internal/domain/entities"
)

// PlaceRepository defines the interface for the place catalog
type PlaceRepository interface {
	// ListAll retrieves the whole catalog
	ListAll(ctx context.Context) ([]*entities.Place, error)

	// UpsertMany inserts places, replacing any existing row with the same ID
	UpsertMany(ctx context.Context, places []*entities.Place) error
}
