package recommender

import (
	"github.com/zatekoja/tripwise/pkg/similarity"
)

// CollaborativeScores accumulates, for every place the target user has not
// visited, the cosine similarity of each other user who did visit it.
//
// Scores are unnormalised affinities and only meaningful relative to each
// other. A target without history has an all-zero vector, so every
// similarity is 0 and no place gets a positive score.
func CollaborativeScores(targetUserID string, m *InteractionMatrix) map[string]float64 {
	scores := make(map[string]float64)
	if m == nil || len(m.placeOrder) == 0 {
		return scores
	}

	target := m.Vector(targetUserID)

	for _, userID := range m.users {
		if userID == targetUserID {
			continue
		}

		sim := similarity.Cosine(target, m.Vector(userID))
		for placeID := range m.visits[userID] {
			if m.Visited(targetUserID, placeID) {
				continue
			}
			scores[placeID] += sim
		}
	}

	return scores
}
