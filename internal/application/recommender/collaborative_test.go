package recommender

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/tripwise/internal/domain/entities"
)

func TestCollaborativeScores_SimilarUsersDriveScores(t *testing.T) {
	m := BuildInteractionMatrix([]*entities.Plan{
		newPlan("U", "A", "B"),
		newPlan("V", "A", "B", "C"),
		newPlan("W", "D"),
	})

	scores := CollaborativeScores("U", m)

	assert.InDelta(t, 2/(math.Sqrt(2)*math.Sqrt(3)), scores["C"], 1e-12)
	assert.Equal(t, 0.0, scores["D"])
	assert.NotContains(t, scores, "A", "places the target already visited are never scored")
	assert.NotContains(t, scores, "B")
}

func TestCollaborativeScores_AccumulatesAcrossUsers(t *testing.T) {
	m := BuildInteractionMatrix([]*entities.Plan{
		newPlan("U", "A"),
		newPlan("V", "A", "C"),
		newPlan("X", "A", "C"),
	})

	scores := CollaborativeScores("U", m)

	simV := 1 / math.Sqrt(2)
	assert.InDelta(t, 2*simV, scores["C"], 1e-12)
}

func TestCollaborativeScores_ColdStartHasNoPositiveScores(t *testing.T) {
	m := BuildInteractionMatrix([]*entities.Plan{
		newPlan("V", "A", "B"),
		newPlan("W", "C"),
	})

	scores := CollaborativeScores("newcomer", m)

	for placeID, score := range scores {
		assert.Equal(t, 0.0, score, "place %s", placeID)
	}
}

func TestCollaborativeScores_EmptyMatrix(t *testing.T) {
	assert.Empty(t, CollaborativeScores("U", BuildInteractionMatrix(nil)))
	assert.Empty(t, CollaborativeScores("U", nil))
}
