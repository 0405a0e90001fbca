package evaluation

import (
	"context"
	"time"

	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/pkg/geo"
)

// DefaultK is the cutoff used when the runner is given none
const DefaultK = 10

// Recommender is the recommendation surface under evaluation
type Recommender interface {
	Recommend(ctx context.Context, userID string, limit int) ([]*entities.Place, error)
	RecommendNear(ctx context.Context, userID string, center *geo.Coordinates, radiusKm *float64, limit int) ([]*entities.Place, error)
}

// Runner runs evaluation across a set of golden cases.
type Runner struct {
	recommender Recommender
	k           int
}

func NewRunner(recommender Recommender, k int) *Runner {
	if k <= 0 {
		k = DefaultK
	}
	return &Runner{recommender: recommender, k: k}
}

// Run evaluates every case. A case whose request fails is reported with its
// error and left out of the averages.
func (r *Runner) Run(ctx context.Context, cases []GoldenCase) (*EvalSummary, error) {
	summary := &EvalSummary{
		K:          r.k,
		TotalCases: len(cases),
		ByMode:     make(map[Mode]*ModeSummary),
		Results:    make([]EvalResult, 0, len(cases)),
	}

	for _, gc := range cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		places, err := r.recommend(ctx, gc)
		result := EvalResult{
			CaseID:  gc.ID,
			Mode:    gc.Mode,
			Latency: time.Since(start),
		}
		if err != nil {
			result.Error = err.Error()
			summary.FailedCases++
			summary.Results = append(summary.Results, result)
			continue
		}

		result.Retrieved = make([]string, len(places))
		for i, p := range places {
			result.Retrieved[i] = p.ID
		}
		result.RecallAtK = RecallAtK(gc.ExpectedPlaceIDs, result.Retrieved, r.k)
		result.PrecisionAt = PrecisionAtK(gc.ExpectedPlaceIDs, result.Retrieved, r.k)
		result.MRRAtK = MRRAtK(gc.ExpectedPlaceIDs, result.Retrieved, r.k)

		summary.Results = append(summary.Results, result)
		accumulate(summary, result)
	}

	finalize(summary)
	return summary, nil
}

func (r *Runner) recommend(ctx context.Context, gc GoldenCase) ([]*entities.Place, error) {
	if gc.Mode == ModeGlobal {
		return r.recommender.Recommend(ctx, gc.UserID, r.k)
	}
	var center *geo.Coordinates
	if gc.Lat != nil && gc.Lng != nil {
		center = &geo.Coordinates{Latitude: *gc.Lat, Longitude: *gc.Lng}
	}
	return r.recommender.RecommendNear(ctx, gc.UserID, center, gc.RadiusKm, r.k)
}

func accumulate(s *EvalSummary, res EvalResult) {
	s.AvgRecallAtK += res.RecallAtK
	s.AvgPrecisionAt += res.PrecisionAt
	s.AvgMRRAtK += res.MRRAtK
	s.AvgLatency += res.Latency
	if len(res.Retrieved) > 0 {
		s.CasesWithHits++
	}

	ms, ok := s.ByMode[res.Mode]
	if !ok {
		ms = &ModeSummary{}
		s.ByMode[res.Mode] = ms
	}
	ms.Count++
	ms.AvgRecallAtK += res.RecallAtK
	ms.AvgMRRAtK += res.MRRAtK
}

func finalize(s *EvalSummary) {
	evaluated := s.TotalCases - s.FailedCases
	if evaluated > 0 {
		n := float64(evaluated)
		s.AvgRecallAtK /= n
		s.AvgPrecisionAt /= n
		s.AvgMRRAtK /= n
		s.AvgLatency /= time.Duration(evaluated)
	}

	for _, ms := range s.ByMode {
		if ms.Count > 0 {
			n := float64(ms.Count)
			ms.AvgRecallAtK /= n
			ms.AvgMRRAtK /= n
		}
	}
}
