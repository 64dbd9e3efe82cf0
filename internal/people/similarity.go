package people

import "slices"

// DotProduct returns the inner product of a and b. For unit vectors this is
// their cosine similarity. Extra trailing components of the longer vector
// are ignored.
func DotProduct(a, b []float32) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// medianSimilarity compares every vector of a with every vector of b and
// returns the median score. ok is false when there was nothing to compare.
func medianSimilarity(a, b [][]float32) (median float64, ok bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	scores := make([]float64, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			scores = append(scores, DotProduct(x, y))
		}
	}
	slices.Sort(scores)
	return scores[len(scores)/2], true
}
