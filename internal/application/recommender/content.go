package recommender

import (
	"github.com/zatekoja/tripwise/internal/domain/entities"
)

// ContentScore returns the fraction of the preference list matched by the
// place's categories: matched / len(preferences).
//
// The denominator is the raw preference list length, not the union or the
// category count, so a short preference list fully matched scores 1 while
// the same overlap against a longer list scores lower. Preferences are a
// presence set; a category listed twice on the place counts once.
func ContentScore(preferences, categories []string) float64 {
	if len(preferences) == 0 || len(categories) == 0 {
		return 0
	}

	wanted := make(map[string]struct{}, len(preferences))
	for _, p := range preferences {
		wanted[p] = struct{}{}
	}

	matched := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if _, ok := wanted[c]; ok {
			matched[c] = struct{}{}
		}
	}

	return float64(len(matched)) / float64(len(preferences))
}

// ContentScores scores every place in catalog against preferences.
func ContentScores(preferences []string, catalog []*entities.Place) map[string]float64 {
	scores := make(map[string]float64, len(catalog))
	for _, place := range catalog {
		if place == nil {
			continue
		}
		scores[place.ID] = ContentScore(preferences, place.Categories)
	}
	return scores
}
