package evaluation

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestRecallAtK(t *testing.T) {
	tests := []struct {
		name      string
		relevant  []string
		retrieved []string
		k         int
		want      float64
	}{
		{"all relevant retrieved", []string{"amber", "hawa"}, []string{"hawa", "amber", "city-palace"}, 10, 1},
		{"half retrieved", []string{"amber", "hawa", "nahargarh", "jal"}, []string{"amber", "x", "hawa"}, 10, 0.5},
		{"cutoff hides later hits", []string{"amber", "hawa", "jal"}, []string{"amber", "hawa", "x", "y", "jal"}, 3, 2.0 / 3.0},
		{"nothing retrieved", []string{"amber"}, nil, 10, 0},
		{"no relevant places", nil, []string{"amber"}, 10, 0},
		{"repeated hit counted once", []string{"amber", "hawa"}, []string{"amber", "amber"}, 10, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecallAtK(tt.relevant, tt.retrieved, tt.k); !almostEqual(got, tt.want) {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestPrecisionAtK(t *testing.T) {
	tests := []struct {
		name      string
		relevant  []string
		retrieved []string
		k         int
		want      float64
	}{
		{"every slot relevant", []string{"amber", "hawa"}, []string{"amber", "hawa"}, 2, 1},
		{"one of four", []string{"amber"}, []string{"x", "amber", "y", "z"}, 4, 0.25},
		{"short ranking is not padded", []string{"amber", "hawa"}, []string{"amber"}, 10, 1},
		{"cutoff applied first", []string{"jal"}, []string{"x", "y", "jal"}, 2, 0},
		{"empty ranking", []string{"amber"}, nil, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrecisionAtK(tt.relevant, tt.retrieved, tt.k); !almostEqual(got, tt.want) {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestMRRAtK(t *testing.T) {
	tests := []struct {
		name      string
		relevant  []string
		retrieved []string
		k         int
		want      float64
	}{
		{"first slot", []string{"amber"}, []string{"amber", "x"}, 10, 1},
		{"third slot", []string{"amber"}, []string{"x", "y", "amber"}, 10, 1.0 / 3.0},
		{"earliest of several", []string{"amber", "hawa"}, []string{"x", "hawa", "amber"}, 10, 0.5},
		{"beyond cutoff", []string{"amber"}, []string{"x", "y", "amber"}, 2, 0},
		{"no relevant places", nil, []string{"amber"}, 10, 0},
		{"empty ranking", []string{"amber"}, nil, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MRRAtK(tt.relevant, tt.retrieved, tt.k); !almostEqual(got, tt.want) {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}
