package geolocation

import (
	"context"
	"fmt"
	"math"

	"github.com/zatekoja/tripwise/internal/domain/providers"
	"github.com/zatekoja/tripwise/pkg/geo"
)

type mockPlaceTemplate struct {
	name       string
	categories []string
	rating     float64
	bearingDeg float64
	fraction   float64
}

var mockPlaceTemplates = []mockPlaceTemplate{
	{"Old Fort", []string{"fort", "tourism"}, 4.5, 10, 0.3},
	{"City Museum", []string{"museum", "entertainment"}, 4.3, 80, 0.5},
	{"Lotus Temple", []string{"temple", "religion", "tourism"}, 4.6, 150, 0.2},
	{"Central Park", []string{"park", "leisure"}, 4.1, 220, 0.4},
	{"Heritage Walk", []string{"heritage", "tourism"}, 3.9, 290, 0.6},
	{"Night Bazaar", []string{"marketplace", "commercial"}, 4.0, 330, 0.7},
}

// MockPlacesProvider returns a fixed set of places laid out around the
// requested center. It never calls the network.
type MockPlacesProvider struct{}

// NewMockPlacesProvider creates a new mock places provider
func NewMockPlacesProvider() providers.PlacesProvider {
	return &MockPlacesProvider{}
}

// GetNearbyPlaces finds places within a radius (mock implementation)
func (m *MockPlacesProvider) GetNearbyPlaces(ctx context.Context, query providers.NearbyQuery) ([]*providers.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	radius := query.RadiusKm
	if radius <= 0 {
		radius = 1
	}

	places := make([]*providers.Place, 0, len(mockPlaceTemplates))
	for i, tpl := range mockPlaceTemplates {
		if query.Limit > 0 && len(places) >= query.Limit {
			break
		}
		coords := offset(query.Center, tpl.bearingDeg, radius*tpl.fraction)
		places = append(places, &providers.Place{
			ID:          fmt.Sprintf("mock-%.4f-%.4f-%d", query.Center.Latitude, query.Center.Longitude, i),
			Name:        tpl.name,
			Address:     fmt.Sprintf("%.5f, %.5f", coords.Latitude, coords.Longitude),
			Coordinates: coords,
			Categories:  append([]string(nil), tpl.categories...),
			Rating:      tpl.rating,
			ReviewCount: 100 + i*25,
		})
	}
	return places, nil
}

// offset moves distanceKm from origin along bearingDeg on a sphere
func offset(origin geo.Coordinates, bearingDeg, distanceKm float64) geo.Coordinates {
	angular := distanceKm / geo.EarthRadiusKm
	bearing := toRadians(bearingDeg)
	lat1 := toRadians(origin.Latitude)
	lon1 := toRadians(origin.Longitude)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angular) + math.Cos(lat1)*math.Sin(angular)*math.Cos(bearing))
	lon2 := lon1 + math.Atan2(
		math.Sin(bearing)*math.Sin(angular)*math.Cos(lat1),
		math.Cos(angular)-math.Sin(lat1)*math.Sin(lat2),
	)

	return geo.Coordinates{Latitude: toDegrees(lat2), Longitude: toDegrees(lon2)}
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func toDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
