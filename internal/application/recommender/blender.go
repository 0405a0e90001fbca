package recommender

import (
	"sort"

	"github.com/zatekoja/tripwise/internal/domain/entities"
)

// Weights controls how the two signals are combined.
type Weights struct {
	Collaborative float64
	Content       float64
}

var (
	// HybridWeights is used whenever the user has visit history.
	HybridWeights = Weights{Collaborative: 0.7, Content: 0.3}

	// ColdStartWeights drops the collaborative signal entirely for users
	// without history in location-aware mode.
	ColdStartWeights = Weights{Collaborative: 0, Content: 1}
)

// ScoreEntry is a scored candidate place.
type ScoreEntry struct {
	PlaceID string
	Score   float64
	Place   *entities.Place
}

// Blend combines collaborative and content scores for each candidate and
// returns only entries with a positive score, best first. A zero score means
// no evidence and never takes a slot.
func Blend(candidates []*entities.Place, collaborative, content map[string]float64, w Weights) []ScoreEntry {
	entries := make([]ScoreEntry, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))

	for _, place := range candidates {
		if place == nil {
			continue
		}
		if _, dup := seen[place.ID]; dup {
			continue
		}
		seen[place.ID] = struct{}{}

		score := w.Collaborative*collaborative[place.ID] + w.Content*content[place.ID]
		if score > 0 {
			entries = append(entries, ScoreEntry{PlaceID: place.ID, Score: score, Place: place})
		}
	}

	sortEntries(entries)
	return entries
}

// RankByRating orders candidates by popularity rating, best first. It is the
// last resort when nothing has a positive blended score.
func RankByRating(candidates []*entities.Place) []ScoreEntry {
	entries := make([]ScoreEntry, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))

	for _, place := range candidates {
		if place == nil {
			continue
		}
		if _, dup := seen[place.ID]; dup {
			continue
		}
		seen[place.ID] = struct{}{}
		entries = append(entries, ScoreEntry{PlaceID: place.ID, Score: place.Rating, Place: place})
	}

	sortEntries(entries)
	return entries
}

// Truncate returns the places of the first limit entries.
func Truncate(entries []ScoreEntry, limit int) []*entities.Place {
	if limit < 0 {
		limit = 0
	}
	if limit > len(entries) {
		limit = len(entries)
	}
	places := make([]*entities.Place, limit)
	for i := 0; i < limit; i++ {
		places[i] = entries[i].Place
	}
	return places
}

// sortEntries orders by score descending; equal scores fall back to the
// place ID so results are reproducible.
func sortEntries(entries []ScoreEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].PlaceID < entries[j].PlaceID
	})
}
