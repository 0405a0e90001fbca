package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_SamePointIsZero(t *testing.T) {
	jaipur := Coordinates{Latitude: 26.9124, Longitude: 75.7873}
	assert.Equal(t, 0.0, DistanceKm(jaipur, jaipur))
}

func TestDistanceKm_KnownCities(t *testing.T) {
	jaipur := Coordinates{Latitude: 26.9124, Longitude: 75.7873}
	mumbai := Coordinates{Latitude: 18.9219841, Longitude: 72.8346543}

	// Jaipur to the Gateway of India is roughly 940 km as the crow flies.
	assert.InDelta(t, 940, DistanceKm(jaipur, mumbai), 15)
}

func TestDistanceKm_IsSymmetric(t *testing.T) {
	a := Coordinates{Latitude: 6.5244, Longitude: 3.3792}
	b := Coordinates{Latitude: 9.0765, Longitude: 7.3986}
	assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
}

func TestDistanceKm_OneDegreeOfLatitude(t *testing.T) {
	a := Coordinates{Latitude: 0, Longitude: 0}
	b := Coordinates{Latitude: 1, Longitude: 0}
	assert.InDelta(t, 111.19, DistanceKm(a, b), 0.01)
}

func TestCoordinates_Validate(t *testing.T) {
	assert.NoError(t, Coordinates{Latitude: 26.9124, Longitude: 75.7873}.Validate())
	assert.NoError(t, Coordinates{Latitude: -90, Longitude: 180}.Validate())
	assert.Error(t, Coordinates{Latitude: 90.5, Longitude: 0}.Validate())
	assert.Error(t, Coordinates{Latitude: 0, Longitude: -180.1}.Validate())
	assert.Error(t, Coordinates{Latitude: math.NaN(), Longitude: 0}.Validate())
}
