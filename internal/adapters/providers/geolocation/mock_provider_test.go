package geolocation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tripwise/internal/adapters/providers/geolocation"
	"github.com/zatekoja/tripwise/internal/domain/providers"
	"github.com/zatekoja/tripwise/pkg/geo"
)

func TestMockPlacesProvider_PlacesStayInsideRadius(t *testing.T) {
	center := geo.Coordinates{Latitude: 26.9124, Longitude: 75.7873}
	provider := geolocation.NewMockPlacesProvider()

	places, err := provider.GetNearbyPlaces(context.Background(), providers.NearbyQuery{Center: center, RadiusKm: 5})

	require.NoError(t, err)
	require.NotEmpty(t, places)
	for _, p := range places {
		assert.LessOrEqual(t, geo.DistanceKm(center, p.Coordinates), 5.0, p.Name)
		assert.NotEmpty(t, p.ID)
	}
}

func TestMockPlacesProvider_RespectsLimit(t *testing.T) {
	provider := geolocation.NewMockPlacesProvider()

	places, err := provider.GetNearbyPlaces(context.Background(), providers.NearbyQuery{RadiusKm: 5, Limit: 2})

	require.NoError(t, err)
	assert.Len(t, places, 2)
}
