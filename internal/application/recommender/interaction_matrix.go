// Package recommender implements the hybrid point-of-interest scoring engine:
// user-based collaborative filtering over trip plans blended with a
// preference/category content match. Everything here is pure and
// request-scoped; I/O belongs to the callers.
package recommender

import (
	"github.com/zatekoja/tripwise/internal/domain/entities"
)

// InteractionMatrix is the sparse user x place visit matrix derived from plans.
type InteractionMatrix struct {
	// visits maps a user ID to the distinct place IDs found in their plans.
	visits map[string]map[string]struct{}
	// users lists user IDs in first-seen order.
	users []string
	// placeOrder lists every referenced place ID in first-seen order; it
	// fixes the component order of every vector built from this matrix.
	placeOrder []string
}

// BuildInteractionMatrix makes a single pass over plans. Entries without a
// resolvable place are skipped and do not count as a visit, but their owner
// still appears in the matrix with whatever else they visited.
func BuildInteractionMatrix(plans []*entities.Plan) *InteractionMatrix {
	m := &InteractionMatrix{
		visits: make(map[string]map[string]struct{}),
	}
	seenPlaces := make(map[string]struct{})

	for _, plan := range plans {
		if plan == nil {
			continue
		}
		visited, ok := m.visits[plan.UserID]
		if !ok {
			visited = make(map[string]struct{})
			m.visits[plan.UserID] = visited
			m.users = append(m.users, plan.UserID)
		}

		for _, entry := range plan.SelectedPlaces {
			if entry.PlaceID == nil || *entry.PlaceID == "" {
				continue
			}
			placeID := *entry.PlaceID
			visited[placeID] = struct{}{}
			if _, seen := seenPlaces[placeID]; !seen {
				seenPlaces[placeID] = struct{}{}
				m.placeOrder = append(m.placeOrder, placeID)
			}
		}
	}

	return m
}

// PlaceOrder returns the place IDs that define vector alignment.
func (m *InteractionMatrix) PlaceOrder() []string {
	return m.placeOrder
}

// Users returns the user IDs that own at least one plan, in first-seen order.
func (m *InteractionMatrix) Users() []string {
	return m.users
}

// Visited reports whether userID has placeID in any of their plans.
func (m *InteractionMatrix) Visited(userID, placeID string) bool {
	_, ok := m.visits[userID][placeID]
	return ok
}

// VisitCount returns the number of distinct places userID has visited.
func (m *InteractionMatrix) VisitCount(userID string) int {
	return len(m.visits[userID])
}

// HasHistory reports whether userID has any recorded visit. A user with no
// history is in cold start.
func (m *InteractionMatrix) HasHistory(userID string) bool {
	return m.VisitCount(userID) > 0
}

// Vector returns the binary visit vector of userID over PlaceOrder.
func (m *InteractionMatrix) Vector(userID string) []float64 {
	vec := make([]float64, len(m.placeOrder))
	visited := m.visits[userID]
	if len(visited) == 0 {
		return vec
	}
	for i, placeID := range m.placeOrder {
		if _, ok := visited[placeID]; ok {
			vec[i] = 1
		}
	}
	return vec
}
