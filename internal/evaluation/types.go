package evaluation

import "time"

// Mode selects which recommendation operation a case exercises.
type Mode string

const (
	ModeGlobal Mode = "global" // whole catalog
	ModeNearby Mode = "nearby" // places within a radius of a point
)

// IsValid checks if the mode value is one of the defined constants.
func (m Mode) IsValid() bool {
	switch m {
	case ModeGlobal, ModeNearby:
		return true
	}
	return false
}

// GoldenCase is a labeled recommendation request with the places a good
// ranking should surface.
type GoldenCase struct {
	ID               string   `json:"id"`
	UserID           string   `json:"user_id"`
	Mode             Mode     `json:"mode"`
	Lat              *float64 `json:"lat,omitempty"`
	Lng              *float64 `json:"lng,omitempty"`
	RadiusKm         *float64 `json:"radius_km,omitempty"`
	ExpectedPlaceIDs []string `json:"expected_place_ids"`
	Difficulty       string   `json:"difficulty"` // easy, medium, hard
}

// EvalResult holds the evaluation outcome for a single case.
type EvalResult struct {
	CaseID      string        `json:"case_id"`
	Mode        Mode          `json:"mode"`
	RecallAtK   float64       `json:"recall_at_k"`
	PrecisionAt float64       `json:"precision_at_k"`
	MRRAtK      float64       `json:"mrr_at_k"`
	Retrieved   []string      `json:"retrieved"`
	Latency     time.Duration `json:"latency_ns"`
	Error       string        `json:"error,omitempty"`
}

// EvalSummary holds aggregate metrics across all golden cases. Failed
// cases are excluded from the averages.
type EvalSummary struct {
	K              int                   `json:"k"`
	TotalCases     int                   `json:"total_cases"`
	FailedCases    int                   `json:"failed_cases"`
	CasesWithHits  int                   `json:"cases_with_hits"`
	AvgRecallAtK   float64               `json:"avg_recall_at_k"`
	AvgPrecisionAt float64               `json:"avg_precision_at_k"`
	AvgMRRAtK      float64               `json:"avg_mrr_at_k"`
	AvgLatency     time.Duration         `json:"avg_latency_ns"`
	ByMode         map[Mode]*ModeSummary `json:"by_mode"`
	Results        []EvalResult          `json:"results"`
}

// ModeSummary holds metrics grouped by mode.
type ModeSummary struct {
	Count        int     `json:"count"`
	AvgRecallAtK float64 `json:"avg_recall_at_k"`
	AvgMRRAtK    float64 `json:"avg_mrr_at_k"`
}
