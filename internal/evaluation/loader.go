package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadGoldenCases reads and parses a golden case set from a JSON file.
func LoadGoldenCases(path string) ([]GoldenCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden cases file: %w", err)
	}

	var cases []GoldenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse golden cases: %w", err)
	}

	return cases, nil
}

var validDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// ValidateGoldenCases checks that every case is complete and consistent.
func ValidateGoldenCases(cases []GoldenCase) error {
	seen := make(map[string]struct{}, len(cases))

	for i, c := range cases {
		if c.ID == "" {
			return fmt.Errorf("case at index %d: missing id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("case at index %d: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = struct{}{}

		if c.UserID == "" {
			return fmt.Errorf("case %q: missing user_id", c.ID)
		}
		if !c.Mode.IsValid() {
			return fmt.Errorf("case %q: invalid mode %q", c.ID, c.Mode)
		}
		if (c.Lat == nil) != (c.Lng == nil) {
			return fmt.Errorf("case %q: lat and lng must be given together", c.ID)
		}
		if c.Mode == ModeGlobal && (c.Lat != nil || c.RadiusKm != nil) {
			return fmt.Errorf("case %q: global cases take no location or radius", c.ID)
		}
		if c.RadiusKm != nil && *c.RadiusKm < 0 {
			return fmt.Errorf("case %q: radius_km must not be negative", c.ID)
		}
		if len(c.ExpectedPlaceIDs) == 0 {
			return fmt.Errorf("case %q: expected_place_ids is empty", c.ID)
		}
		if !validDifficulties[c.Difficulty] {
			return fmt.Errorf("case %q: invalid difficulty %q (must be easy/medium/hard)", c.ID, c.Difficulty)
		}
	}

	return nil
}
