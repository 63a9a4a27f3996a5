// Package scoring provides the semantic similarity math for the ranking engine.
package scoring

import "math"

// CosineSimilarity computes the cosine similarity between two equal-length
// vectors. Zero vectors, empty vectors, and mismatched lengths all yield 0
// rather than NaN; NaN must never reach the ranked output.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SemanticScore converts a raw cosine similarity into the published semantic
// score: clamped to [0,1] and rounded to 4 decimal places.
func SemanticScore(jobEmbedding, candidateEmbedding []float64) float64 {
	return Round(Clamp01(CosineSimilarity(jobEmbedding, candidateEmbedding)), 4)
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}

// Clamp01 clamps x into [0,1].
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
