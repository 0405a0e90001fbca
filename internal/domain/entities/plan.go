package entities

import (
	"time"
)

// Plan represents a trip plan: the ordered places a user selected
type Plan struct {
	ID             string      `json:"id" db:"id"`
	UserID         string      `json:"user_id" db:"user_id"`
	Title          string      `json:"title" db:"title"`
	SelectedPlaces []PlanEntry `json:"selected_places" db:"-"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
}

// PlanEntry is one selected place in a plan. PlaceID is nil when the
// referenced place no longer exists.
type PlanEntry struct {
	Position int     `json:"position" db:"position"`
	PlaceID  *string `json:"place_id" db:"place_id"`
}
