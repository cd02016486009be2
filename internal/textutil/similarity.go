package textutil

// Jaccard computes |a ∩ b| / |a ∪ b|.
// Two empty sets have no overlap to measure and score 0.
func Jaccard(a, b TokenSet) float64 {
	if a.Len() == 0 && b.Len() == 0 {
		return 0
	}
	small, large := a, b
	if small.Len() > large.Len() {
		small, large = large, small
	}
	intersection := 0
	for token := range small {
		if large.Has(token) {
			intersection++
		}
	}
	union := a.Len() + b.Len() - intersection
	return float64(intersection) / float64(union)
}
