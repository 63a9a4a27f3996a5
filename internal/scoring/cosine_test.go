package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{
			name: "identical direction",
			a:    []float64{1, 2, 3},
			b:    []float64{2, 4, 6},
			want: 1.0,
		},
		{
			name: "orthogonal",
			a:    []float64{1, 0},
			b:    []float64{0, 1},
			want: 0.0,
		},
		{
			name: "opposite direction",
			a:    []float64{1, 0},
			b:    []float64{-1, 0},
			want: -1.0,
		},
		{
			name: "zero vector left",
			a:    []float64{0, 0, 0},
			b:    []float64{1, 2, 3},
			want: 0.0,
		},
		{
			name: "zero vector right",
			a:    []float64{1, 2, 3},
			b:    []float64{0, 0, 0},
			want: 0.0,
		},
		{
			name: "mismatched lengths",
			a:    []float64{1, 2},
			b:    []float64{1, 2, 3},
			want: 0.0,
		},
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.False(t, math.IsNaN(got))
		})
	}
}

func TestSemanticScore_RoundsToFourDecimals(t *testing.T) {
	// cos = 1/sqrt(2) = 0.70710678... -> 0.7071
	got := SemanticScore([]float64{1, 0}, []float64{1, 1})
	assert.Equal(t, 0.7071, got)
}

func TestSemanticScore_ClampsNegativeToZero(t *testing.T) {
	got := SemanticScore([]float64{1, 0}, []float64{-1, 0})
	assert.Equal(t, 0.0, got)
}

func TestSemanticScore_ZeroVectorIsZero(t *testing.T) {
	got := SemanticScore([]float64{0, 0}, []float64{1, 1})
	assert.Equal(t, 0.0, got)
	assert.False(t, math.IsNaN(got))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.12, Round(0.1249, 2))
	assert.Equal(t, 0.13, Round(0.125, 2))
	assert.Equal(t, 1.0, Round(0.99999, 4))
	assert.Equal(t, 0.1235, Round(0.12345, 4))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.3))
	assert.Equal(t, 1.0, Clamp01(1.1))
	assert.Equal(t, 0.5, Clamp01(0.5))
}
