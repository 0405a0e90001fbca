package recommender

import (
	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/pkg/geo"
)

// FilterWithinRadius keeps the places whose great-circle distance from
// center is at most radiusKm. Catalog order is preserved.
func FilterWithinRadius(catalog []*entities.Place, center geo.Coordinates, radiusKm float64) []*entities.Place {
	nearby := make([]*entities.Place, 0)
	if radiusKm < 0 {
		return nearby
	}
	for _, place := range catalog {
		if place == nil {
			continue
		}
		if geo.DistanceKm(center, place.Location.Coordinates()) <= radiusKm {
			nearby = append(nearby, place)
		}
	}
	return nearby
}
