package autopalette

// ClusterModel is the common representation every segmentation algorithm
// (DBSCAN, DBSCAN++, KMeans, SLIC, SNIC) produces: the labeled input
// points plus the resulting clusters. The SwatchAssembler consumes this
// representation uniformly regardless of which algorithm produced it.
type ClusterModel struct {
	Points  []Point5D
	Labels  []ClusterLabel
	Clusters []Cluster
}

// newClusterModel builds a ClusterModel from final labels by recomputing
// centroids and populations from the member points. Points labeled Noise
// or Unassigned are excluded from every cluster.
func newClusterModel(points []Point5D, labels []ClusterLabel) *ClusterModel {
	maxK := -1
	for _, l := range labels {
		if l.Kind == Assigned && l.Cluster > maxK {
			maxK = l.Cluster
		}
	}
	if maxK < 0 {
		return &ClusterModel{Points: points, Labels: labels}
	}

	sums := make([]Point5D, maxK+1)
	counts := make([]int, maxK+1)
	for i, l := range labels {
		if l.Kind != Assigned {
			continue
		}
		k := l.Cluster
		p := points[i]
		sums[k].L += p.L
		sums[k].A += p.A
		sums[k].B += p.B
		sums[k].X += p.X
		sums[k].Y += p.Y
		counts[k]++
	}

	var clusters []Cluster
	for k := 0; k <= maxK; k++ {
		if counts[k] == 0 {
			continue
		}
		n := float64(counts[k])
		clusters = append(clusters, Cluster{
			Centroid: Point5D{
				L: sums[k].L / n,
				A: sums[k].A / n,
				B: sums[k].B / n,
				X: sums[k].X / n,
				Y: sums[k].Y / n,
			},
			Population: counts[k],
		})
	}

	return &ClusterModel{Points: points, Labels: labels, Clusters: clusters}
}
