package inference

import "math"

// CosineSimilarity returns the cosine of the angle between a and b, in [-1, 1].
//
// Both vectors must have the same length and must come from comparable
// embedding spaces (a Query embedding against Document embeddings, or
// Symmetric against Symmetric). For mismatched lengths, empty input or a
// zero-magnitude vector the result is 0.
//
// Each vector is scaled by its largest absolute component before summing, so
// the result stays finite for any finite non-zero input.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	sa, sb := maxAbs(a), maxAbs(b)
	if sa == 0 || sb == 0 || math.IsInf(sa, 0) || math.IsInf(sb, 0) || math.IsNaN(sa) || math.IsNaN(sb) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := a[i]/sa, b[i]/sb
		dot += x * y
		normA += x * x
		normB += y * y
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) {
		return 0
	}
	return math.Max(-1, math.Min(1, sim))
}

func maxAbs(v []float64) float64 {
	var m float64
	for _, x := range v {
		if math.IsNaN(x) {
			return math.NaN()
		}
		m = math.Max(m, math.Abs(x))
	}
	return m
}
