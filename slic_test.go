package autopalette

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func gridPoints(w, h int) []Point5D {
	var pts []Point5D
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			l := 20.0
			if col >= w/2 {
				l = 80.0
			}
			pts = append(pts, Point5D{
				L: l, A: 0, B: 0,
				X: float64(col+1) / float64(w),
				Y: float64(row+1) / float64(h),
			})
		}
	}
	return pts
}

func TestSLICProducesApproximatelyKClusters(t *testing.T) {
	points := gridPoints(20, 20)
	model := runSLIC(points, SLICParams{K: 4, Compactness: 10, MaxIterations: 5})
	require.NotEmpty(t, model.Clusters)
	require.LessOrEqual(t, len(model.Clusters), 8)
}

func TestSNICAssignsEveryPointExactlyOnce(t *testing.T) {
	points := gridPoints(16, 16)
	model := runSNIC(points, 16, 16, SNICParams{K: 4, Compactness: 10})

	total := 0
	for _, c := range model.Clusters {
		total += c.Population
	}
	require.LessOrEqual(t, total, len(points))
	require.Greater(t, total, 0)
}
