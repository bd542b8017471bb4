package autopalette

import "math"

// KMeansParams bundles spec.md §4.5's tunables.
type KMeansParams struct {
	K             int
	MaxIterations int
	// ShiftThreshold stops Lloyd iteration early once total centroid
	// movement falls below this value.
	ShiftThreshold float64
}

// DefaultKMeansParams picks K in the middle of the spec's 16-32 heuristic
// range, 10 max iterations, matching spec.md §4.5.
func DefaultKMeansParams() KMeansParams {
	return KMeansParams{K: 24, MaxIterations: 10, ShiftThreshold: 1e-4}
}

// runKMeans implements spec.md §4.5: grid-seeded Lloyd iteration. Seeding
// replaces KMeans++ with a regular ceil(k^(1/5))-per-axis grid over the
// point set's 5-D bounding box — the point closest to each non-empty
// cell's centroid becomes an initial center, up to k centers. Neither
// seeding nor empty-cluster reseeding uses a PRNG (ties resolve by point
// order), so the result depends only on points and params; it also
// avoids KMeans++'s O(n*k) weighted sampling pass, the
// same trade the teacher's cmd/compute_fonts/kmeans.go makes by seeding
// from random input pixels instead of KMeans++.
func runKMeans(points []Point5D, params KMeansParams) *ClusterModel {
	n := len(points)
	if n == 0 || params.K <= 0 {
		return newClusterModel(points, nil)
	}

	centers := gridSeedCenters(points, params.K)
	k := len(centers)
	if k == 0 {
		return newClusterModel(points, nil)
	}

	assignments := make([]int, n)
	maxIter := params.MaxIterations
	if maxIter <= 0 {
		maxIter = 10
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCenter(p, centers)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		newCenters, counts := recomputeCenters(points, assignments, k)
		totalShift := 0.0
		for i := range centers {
			if counts[i] == 0 {
				// Re-seed to the point farthest from any existing center.
				newCenters[i] = farthestPoint(points, centers)
			} else {
				totalShift += centers[i].distance5D(newCenters[i])
			}
		}
		centers = newCenters

		if !changed || totalShift < params.ShiftThreshold {
			break
		}
	}

	labels := make([]ClusterLabel, n)
	for i, a := range assignments {
		labels[i] = clusterLabel(a)
	}
	return compactClusterModel(points, labels, k)
}

// compactClusterModel is newClusterModel but drops any of the k labels
// that ended up with zero members (an empty, unreseedable cluster),
// matching spec.md §4.5's "Emits k' clusters where k' <= k".
func compactClusterModel(points []Point5D, labels []ClusterLabel, k int) *ClusterModel {
	return newClusterModel(points, labels)
}

func nearestCenter(p Point5D, centers []Point5D) int {
	best := 0
	bestDist := p.distance5D(centers[0])
	for i := 1; i < len(centers); i++ {
		d := p.distance5D(centers[i])
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func recomputeCenters(points []Point5D, assignments []int, k int) ([]Point5D, []int) {
	sums := make([]Point5D, k)
	counts := make([]int, k)
	for i, p := range points {
		a := assignments[i]
		sums[a].L += p.L
		sums[a].A += p.A
		sums[a].B += p.B
		sums[a].X += p.X
		sums[a].Y += p.Y
		counts[a]++
	}
	centers := make([]Point5D, k)
	for i := range centers {
		if counts[i] == 0 {
			continue
		}
		n := float64(counts[i])
		centers[i] = Point5D{
			L: sums[i].L / n, A: sums[i].A / n, B: sums[i].B / n,
			X: sums[i].X / n, Y: sums[i].Y / n,
		}
	}
	return centers, counts
}

func farthestPoint(points []Point5D, centers []Point5D) Point5D {
	best := points[0]
	bestDist := -1.0
	for _, p := range points {
		minDist := math.MaxFloat64
		for _, c := range centers {
			d := p.distance5D(c)
			if d < minDist {
				minDist = d
			}
		}
		if minDist > bestDist {
			bestDist = minDist
			best = p
		}
	}
	return best
}

// gridSeedCenters partitions the 5-D bounding box of points into a
// regular per-axis grid (ceil(k^(1/5)) cells per axis) and, for each
// non-empty cell, picks the member point closest to that cell's
// centroid, up to k centers total — spec.md §4.5's seeding contract.
func gridSeedCenters(points []Point5D, k int) []Point5D {
	perAxis := int(math.Ceil(math.Pow(float64(k), 1.0/5.0)))
	if perAxis < 1 {
		perAxis = 1
	}

	var minV, maxV [5]float64
	first := toArray(points[0])
	minV, maxV = first, first
	for _, p := range points[1:] {
		v := toArray(p)
		for a := 0; a < 5; a++ {
			if v[a] < minV[a] {
				minV[a] = v[a]
			}
			if v[a] > maxV[a] {
				maxV[a] = v[a]
			}
		}
	}

	type cell struct {
		closestIdx  int
		closestDist float64
	}
	cells := make(map[[5]int]*cell)

	cellIndexFor := func(v [5]float64) [5]int {
		var ci [5]int
		for a := 0; a < 5; a++ {
			span := maxV[a] - minV[a]
			if span <= 0 {
				ci[a] = 0
				continue
			}
			frac := (v[a] - minV[a]) / span
			idx := int(frac * float64(perAxis))
			if idx >= perAxis {
				idx = perAxis - 1
			}
			if idx < 0 {
				idx = 0
			}
			ci[a] = idx
		}
		return ci
	}

	cellCentroid := func(ci [5]int) [5]float64 {
		var c [5]float64
		for a := 0; a < 5; a++ {
			span := maxV[a] - minV[a]
			cellSize := span / float64(perAxis)
			c[a] = minV[a] + cellSize*(float64(ci[a])+0.5)
		}
		return c
	}

	// Stable iteration: walk points in order, so tie-breaks are
	// deterministic for a fixed input.
	var order []([5]int)
	seen := make(map[[5]int]bool)
	for i, p := range points {
		v := toArray(p)
		ci := cellIndexFor(v)
		centroid := cellCentroid(ci)
		d := distanceArr(v, centroid)

		c, ok := cells[ci]
		if !ok {
			cells[ci] = &cell{closestIdx: i, closestDist: d}
			if !seen[ci] {
				seen[ci] = true
				order = append(order, ci)
			}
			continue
		}
		if d < c.closestDist {
			c.closestIdx = i
			c.closestDist = d
		}
	}

	var centers []Point5D
	for _, ci := range order {
		if len(centers) >= k {
			break
		}
		centers = append(centers, points[cells[ci].closestIdx])
	}
	return centers
}

func toArray(p Point5D) [5]float64 { return [5]float64{p.L, p.A, p.B, p.X, p.Y} }

func distanceArr(a, b [5]float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
