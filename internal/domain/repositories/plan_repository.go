package repositories

import (
	"context"

	"github.com/zatekoja/tripwise/internal/domain/entities"
)

// PlanRepository defines the interface for trip plans
type PlanRepository interface {
	// ListAll retrieves every plan with its selected places resolved to
	// place IDs; entries whose place is gone carry a nil PlaceID
	ListAll(ctx context.Context) ([]*entities.Plan, error)
}
