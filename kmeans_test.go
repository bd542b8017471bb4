package autopalette

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKMeansProducesAtMostKClusters(t *testing.T) {
	points := twoBlobPoints()
	model := runKMeans(points, KMeansParams{K: 5, MaxIterations: 10, ShiftThreshold: 1e-6})
	require.LessOrEqual(t, len(model.Clusters), 5)

	total := 0
	for _, c := range model.Clusters {
		total += c.Population
	}
	require.Equal(t, len(points), total)
}

func TestKMeansSeparatesDistinctBlobs(t *testing.T) {
	points := twoBlobPoints()
	model := runKMeans(points, KMeansParams{K: 2, MaxIterations: 10, ShiftThreshold: 1e-6})
	require.Len(t, model.Clusters, 2)
}

func TestGridSeedCentersBoundedByK(t *testing.T) {
	points := twoBlobPoints()
	centers := gridSeedCenters(points, 3)
	require.LessOrEqual(t, len(centers), 3)
	require.NotEmpty(t, centers)
}
