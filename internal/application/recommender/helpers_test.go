package recommender

import (
	"github.com/zatekoja/tripwise/internal/domain/entities"
)

func newPlace(id string, rating float64, categories ...string) *entities.Place {
	return &entities.Place{
		ID:         id,
		Name:       "Place " + id,
		Categories: categories,
		Rating:     rating,
	}
}

func placeAt(id string, lat, lng float64) *entities.Place {
	return &entities.Place{ID: id, Location: entities.Location{Latitude: lat, Longitude: lng}}
}

func newPlan(userID string, placeIDs ...string) *entities.Plan {
	plan := &entities.Plan{ID: "plan-" + userID, UserID: userID}
	for i, id := range placeIDs {
		id := id
		plan.SelectedPlaces = append(plan.SelectedPlaces, entities.PlanEntry{Position: i, PlaceID: &id})
	}
	return plan
}

func ids(places []*entities.Place) []string {
	out := make([]string, len(places))
	for i, p := range places {
		out[i] = p.ID
	}
	return out
}

func entryIDs(entries []ScoreEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.PlaceID
	}
	return out
}
