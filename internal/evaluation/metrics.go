package evaluation

// RecallAtK is the fraction of relevant items found in the top k retrieved.
// Returns 0 if relevant is empty.
func RecallAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 {
		return 0
	}
	return float64(hits(relevant, topK(retrieved, k))) / float64(len(relevant))
}

// PrecisionAtK is the fraction of the top k retrieved that are relevant.
// A ranking shorter than k is not penalised for the missing slots.
func PrecisionAtK(relevant, retrieved []string, k int) float64 {
	top := topK(retrieved, k)
	if len(relevant) == 0 || len(top) == 0 {
		return 0
	}
	return float64(hits(relevant, top)) / float64(len(top))
}

// MRRAtK is the reciprocal rank of the first relevant item in the top k, or
// 0 when none is found.
func MRRAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 {
		return 0
	}
	set := toSet(relevant)
	for i, id := range topK(retrieved, k) {
		if _, ok := set[id]; ok {
			return 1 / float64(i+1)
		}
	}
	return 0
}

func topK(retrieved []string, k int) []string {
	if k >= 0 && k < len(retrieved) {
		return retrieved[:k]
	}
	return retrieved
}

func hits(relevant, retrieved []string) int {
	set := toSet(relevant)
	n := 0
	for _, id := range retrieved {
		if _, ok := set[id]; ok {
			n++
			delete(set, id)
		}
	}
	return n
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
