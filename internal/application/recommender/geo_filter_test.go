package recommender

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/pkg/geo"
)

func TestFilterWithinRadius_KeepsOnlyNearbyPlaces(t *testing.T) {
	jaipur := geo.Coordinates{Latitude: 26.9124, Longitude: 75.7873}
	catalog := []*entities.Place{
		placeAt("hawa-mahal", 26.9239, 75.8267),
		placeAt("amber-fort", 26.9855, 75.8513),
		placeAt("gateway-of-india", 18.9219841, 72.8346543),
	}

	assert.Equal(t, []string{"hawa-mahal"}, ids(FilterWithinRadius(catalog, jaipur, 5)))
	assert.Equal(t, []string{"hawa-mahal", "amber-fort"}, ids(FilterWithinRadius(catalog, jaipur, 15)))
	assert.Empty(t, FilterWithinRadius(catalog, jaipur, 0))
}

func TestFilterWithinRadius_PartitionsRandomCatalog(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	center := geo.Coordinates{Latitude: 48.8566, Longitude: 2.3522}

	catalog := make([]*entities.Place, 0, 200)
	for i := 0; i < 200; i++ {
		catalog = append(catalog, placeAt(
			string(rune('a'+i%26))+string(rune('0'+i/26)),
			center.Latitude+(rng.Float64()-0.5),
			center.Longitude+(rng.Float64()-0.5),
		))
	}

	for _, radius := range []float64{0, 1, 5, 20, 50} {
		nearby := FilterWithinRadius(catalog, center, radius)
		kept := make(map[*entities.Place]bool, len(nearby))
		for _, p := range nearby {
			kept[p] = true
			assert.LessOrEqual(t, geo.DistanceKm(center, p.Location.Coordinates()), radius+1e-9)
		}
		for _, p := range catalog {
			if !kept[p] {
				assert.Greater(t, geo.DistanceKm(center, p.Location.Coordinates()), radius)
			}
		}
	}
}

func TestFilterWithinRadius_NegativeRadius(t *testing.T) {
	center := geo.Coordinates{}
	assert.Empty(t, FilterWithinRadius([]*entities.Place{placeAt("origin", 0, 0)}, center, -1))
}
