package recommender

import (
	"github.com/zatekoja/tripwise/internal/domain/entities"
)

// Mode tells which path produced a ranking.
type Mode string

const (
	ModeGlobal     Mode = "global"
	ModeHybrid     Mode = "hybrid"
	ModeColdStart  Mode = "cold_start"
	ModePopularity Mode = "popularity"
)

// Result is a ranking plus how it was produced.
type Result struct {
	Entries []ScoreEntry
	Mode    Mode
	// Candidates is the number of places that were considered.
	Candidates int
}

// Places returns the top limit places of the result.
func (r Result) Places(limit int) []*entities.Place {
	return Truncate(r.Entries, limit)
}

// Engine ranks places for a user from an in-memory snapshot of plans and
// places. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	hybrid    Weights
	coldStart Weights
}

// NewEngine creates an engine with the standard 0.7/0.3 blend and a
// content-only cold start.
func NewEngine() *Engine {
	return &Engine{
		hybrid:    HybridWeights,
		coldStart: ColdStartWeights,
	}
}

// RankGlobal scores every catalog place with the hybrid weights, regardless
// of whether the user has history.
func (e *Engine) RankGlobal(user *entities.User, plans []*entities.Plan, catalog []*entities.Place) Result {
	matrix := BuildInteractionMatrix(plans)
	cf := CollaborativeScores(user.ID, matrix)
	cb := ContentScores(user.Preferences, catalog)

	return Result{
		Entries:    Blend(catalog, cf, cb, e.hybrid),
		Mode:       ModeGlobal,
		Candidates: len(catalog),
	}
}

// RankNearby scores the nearby set. Users without history are ranked by
// content alone; when nothing scores above zero the nearby set is ranked by
// rating so a non-empty area always yields recommendations.
func (e *Engine) RankNearby(user *entities.User, plans []*entities.Plan, nearby []*entities.Place) Result {
	matrix := BuildInteractionMatrix(plans)

	weights, mode := e.hybrid, ModeHybrid
	if !matrix.HasHistory(user.ID) {
		weights, mode = e.coldStart, ModeColdStart
	}

	cf := CollaborativeScores(user.ID, matrix)
	cb := ContentScores(user.Preferences, nearby)

	entries := Blend(nearby, cf, cb, weights)
	if len(entries) == 0 {
		return Result{
			Entries:    RankByRating(nearby),
			Mode:       ModePopularity,
			Candidates: len(nearby),
		}
	}

	return Result{Entries: entries, Mode: mode, Candidates: len(nearby)}
}
