package providers

import (
	"context"

	"github.com/zatekoja/tripwise/pkg/geo"
)

// PlacesProvider defines the interface for external point-of-interest lookups
type PlacesProvider interface {
	// GetNearbyPlaces finds places of the given categories within radiusKm
	GetNearbyPlaces(ctx context.Context, query NearbyQuery) ([]*Place, error)
}

// NearbyQuery describes a nearby places lookup
type NearbyQuery struct {
	Center     geo.Coordinates
	RadiusKm   float64
	Categories []string
	Limit      int
}

// Place represents a point of interest as returned by a provider
type Place struct {
	ID          string
	Name        string
	Address     string
	City        string
	Coordinates geo.Coordinates
	Categories  []string
	Rating      float64
	ReviewCount int
	PhotoURL    string
}
