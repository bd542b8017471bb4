package autopalette

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectDiverseReturnsMinNAndPalette(t *testing.T) {
	swatches := []Swatch{
		{color: LAB{L: 50, A: 0, B: 0}, population: 10},
		{color: LAB{L: 60, A: 20, B: 20}, population: 5},
	}
	scores := []float64{10, 5}

	require.Len(t, selectDiverse(swatches, scores, 5), 2)
	require.Len(t, selectDiverse(swatches, scores, 1), 1)
	require.Empty(t, selectDiverse(swatches, scores, 0))
}

func TestSelectDiverseNoDuplicates(t *testing.T) {
	swatches := []Swatch{
		{color: LAB{L: 50, A: 0, B: 0}, population: 10},
		{color: LAB{L: 51, A: 1, B: 1}, population: 9},
		{color: LAB{L: 90, A: 0, B: 0}, population: 8},
	}
	scores := []float64{10, 9, 8}

	result := selectDiverse(swatches, scores, 3)
	require.Len(t, result, 3)
	seen := map[LAB]bool{}
	for _, s := range result {
		require.False(t, seen[s.Lab()])
		seen[s.Lab()] = true
	}
}

func TestSelectDiverseFirstIsHighestScore(t *testing.T) {
	swatches := []Swatch{
		{color: LAB{L: 50, A: 0, B: 0}, population: 10},
		{color: LAB{L: 90, A: 0, B: 0}, population: 99},
		{color: LAB{L: 30, A: 0, B: 0}, population: 2},
	}
	scores := []float64{10, 99, 2}

	result := selectDiverse(swatches, scores, 3)
	require.Equal(t, 99.0, scores[1])
	require.Equal(t, swatches[1].Lab(), result[0].Lab())
}

func TestSelectDiverseDropsCandidatesBelowFloor(t *testing.T) {
	swatches := []Swatch{
		{color: LAB{L: 50, A: 0, B: 0}, population: 10},
		{color: LAB{L: 90, A: 0, B: 0}, population: 10},
	}
	scores := []float64{0.5, 0.001}

	result := selectDiverse(swatches, scores, 2)
	require.Len(t, result, 1)
	require.Equal(t, swatches[0].Lab(), result[0].Lab())
}

func TestSelectDiverseAllBelowFloorReturnsEmpty(t *testing.T) {
	swatches := []Swatch{
		{color: LAB{L: 50, A: 0, B: 0}, population: 10},
	}
	scores := []float64{0.001}
	require.Empty(t, selectDiverse(swatches, scores, 3))
}
