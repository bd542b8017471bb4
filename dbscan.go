package autopalette

import "math/rand"

// DBSCANParams bundles the tunables from spec.md §4.4. Epsilon is a
// radius in the 5-D feature space (color + spatial axes); MinPoints is
// the neighbor count (including the query point) required to qualify as
// a core point.
type DBSCANParams struct {
	Epsilon   float64
	MinPoints int
}

// DefaultDBSCANParams mirrors the scenarios in spec.md §8: tight enough
// in L*a*b* to keep a 64x64 four-quadrant test image at exactly 4
// clusters, loose enough to merge anti-aliased border pixels into their
// neighbor's cluster.
func DefaultDBSCANParams() DBSCANParams {
	return DBSCANParams{Epsilon: 2.5, MinPoints: 4}
}

// runDBSCAN implements spec.md §4.4's DBSCAN: iterate points in index
// order; unassigned points that fail the core-point density test become
// Noise; core points seed a new cluster and BFS-absorb their
// epsilon-neighborhood, promoting any Noise point they reach to a border
// member. Border points are assigned to the first cluster whose BFS
// reaches them — a consequence of iterating in index order over the
// KdTree's deterministic in-order neighbor lists (spec.md §9).
//
// MinPoints is clamped to len(points): a point set smaller than the
// configured density threshold would otherwise mark every point Noise,
// violating spec.md §8's boundary invariant that any non-empty input
// (e.g. a 1x1 image) yields a palette of at least one swatch.
func runDBSCAN(points []Point5D, params DBSCANParams) *ClusterModel {
	if params.MinPoints > len(points) {
		params.MinPoints = len(points)
	}
	if params.MinPoints < 1 {
		params.MinPoints = 1
	}

	tree := NewKdTree(points)
	labels := make([]ClusterLabel, len(points))
	for i := range labels {
		labels[i] = unassignedLabel
	}

	nextCluster := 0
	for i := range points {
		if labels[i].Kind != Unassigned {
			continue
		}
		neighbors := tree.Within(points[i], params.Epsilon)
		if len(neighbors) < params.MinPoints {
			labels[i] = noiseLabel
			continue
		}

		k := nextCluster
		nextCluster++
		labels[i] = clusterLabel(k)

		queue := append([]int(nil), neighbors...)
		for qi := 0; qi < len(queue); qi++ {
			j := queue[qi]
			if labels[j].Kind == Noise {
				labels[j] = clusterLabel(k)
				continue
			}
			if labels[j].Kind == Assigned {
				continue
			}
			labels[j] = clusterLabel(k)
			jNeighbors := tree.Within(points[j], params.Epsilon)
			if len(jNeighbors) >= params.MinPoints {
				queue = append(queue, jNeighbors...)
			}
		}
	}

	return newClusterModel(points, labels)
}

// DBSCANPPParams adds the seed-subsampling ratio to DBSCANParams.
type DBSCANPPParams struct {
	DBSCANParams
	// Rho is the fraction of points used as seeds for core-point
	// discovery; default 0.1 per spec.md §4.4.
	Rho float64
}

// DefaultDBSCANPPParams is DefaultDBSCANParams with Rho = 0.1.
func DefaultDBSCANPPParams() DBSCANPPParams {
	return DBSCANPPParams{DBSCANParams: DefaultDBSCANParams(), Rho: 0.1}
}

// runDBSCANPP implements spec.md §4.4's DBSCAN++: pick a seed subset of
// size ceil(rho*N) by uniform subsampling of a seeded PRNG, run
// core-point discovery and BFS expansion only on the seeds, then
// classify every non-seed point by its single nearest seed: if that seed
// lies within epsilon and belongs to a cluster (as a core or a border
// seed), the point joins that cluster; otherwise the point is Noise, even
// when another clustered seed lies within epsilon. This is an
// O(rho*N log N) stand-in for DBSCAN's O(N log N)
// core discovery; it produces equivalent cluster structure up to border
// noise, per spec.md §4.4.
func runDBSCANPP(points []Point5D, params DBSCANPPParams, seed int64) *ClusterModel {
	n := len(points)
	if n == 0 {
		return newClusterModel(points, nil)
	}

	rho := params.Rho
	if rho <= 0 {
		rho = 0.1
	}
	seedCount := int(ceilFloat(rho * float64(n)))
	if seedCount < 1 {
		seedCount = 1
	}
	if seedCount > n {
		seedCount = n
	}

	rng := rand.New(rand.NewSource(seed))
	seedIdx := sampleSeedIndices(n, seedCount, rng)

	seedPoints := make([]Point5D, len(seedIdx))
	for i, idx := range seedIdx {
		seedPoints[i] = points[idx]
	}

	seedModel := runDBSCAN(seedPoints, params.DBSCANParams)

	labels := make([]ClusterLabel, n)
	for i := range labels {
		labels[i] = unassignedLabel
	}
	for localI, globalI := range seedIdx {
		labels[globalI] = seedModel.Labels[localI]
	}

	// Classify non-seed points by their nearest seed (see above).
	seedTree := NewKdTree(seedPoints)
	seedSet := make(map[int]bool, len(seedIdx))
	for _, idx := range seedIdx {
		seedSet[idx] = true
	}

	for i := range points {
		if seedSet[i] {
			continue
		}
		nearestLocal, ok := seedTree.Nearest(points[i])
		if !ok {
			labels[i] = noiseLabel
			continue
		}
		if points[i].distance5D(seedPoints[nearestLocal]) > params.Epsilon {
			labels[i] = noiseLabel
			continue
		}
		nearestLabel := seedModel.Labels[nearestLocal]
		if nearestLabel.Kind == Assigned {
			labels[i] = nearestLabel
		} else {
			labels[i] = noiseLabel
		}
	}

	return newClusterModel(points, labels)
}

// sampleSeedIndices picks count distinct indices out of [0,n) uniformly
// at random using a Fisher-Yates partial shuffle seeded by rng, so the
// same seed always produces the same seed subset for the same n and
// count (spec.md §5, reproducibility depends only on input/seed/params).
func sampleSeedIndices(n, count int, rng *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < count; i++ {
		j := i + rng.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	out := make([]int, count)
	copy(out, idx[:count])
	return out
}

func ceilFloat(v float64) float64 {
	i := float64(int64(v))
	if v > i {
		return i + 1
	}
	return i
}
