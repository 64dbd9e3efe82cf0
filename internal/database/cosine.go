package database

import "math"

// maxCosineDistance is reported for vectors that can't be compared
const maxCosineDistance = 2.0

// CosineDistance returns 1 - cos(a, b), from 0 for the same direction to 2
// for opposite ones. Embeddings of different length and zero vectors are as
// far apart as possible.
func CosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return maxCosineDistance
	}

	var dot, sqA, sqB float64
	for i, x := range a {
		y := float64(b[i])
		dot += float64(x) * y
		sqA += float64(x) * float64(x)
		sqB += y * y
	}
	if sqA == 0 || sqB == 0 {
		return maxCosineDistance
	}

	// Rounding can push the cosine slightly outside [-1, 1]
	cos := max(-1, min(1, dot/math.Sqrt(sqA*sqB)))
	return 1 - cos
}
