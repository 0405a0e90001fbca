package entities

import (
	"time"

	"github.com/zatekoja/tripwise/pkg/geo"
)

// Place represents a point of interest that can be recommended to a traveler
type Place struct {
	ID              string    `json:"place_id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Address         string    `json:"address" db:"address"`
	Location        Location  `json:"location" db:"-"`
	Categories      []string  `json:"types" db:"-"`
	Rating          float64   `json:"rating" db:"rating"`
	ReviewCount     int       `json:"user_ratings_total" db:"review_count"`
	PhotoURL        *string   `json:"photo_url,omitempty" db:"photo_url"`
	Cost            float64   `json:"cost" db:"cost"`
	DurationMinutes int       `json:"duration" db:"duration_minutes"`
	City            string    `json:"city,omitempty" db:"city"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"lat" db:"latitude"`
	Longitude float64 `json:"lng" db:"longitude"`
}

// Coordinates converts the location for distance calculations.
func (l Location) Coordinates() geo.Coordinates {
	return geo.Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}
}

// LocationFrom converts coordinates back into an entity location.
func LocationFrom(c geo.Coordinates) Location {
	return Location{Latitude: c.Latitude, Longitude: c.Longitude}
}
