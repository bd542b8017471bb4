package autopalette

import (
	"math"
	"runtime"
	"sync"
)

// SLICParams bundles spec.md §4.6's tunables. Compactness trades color
// fidelity for spatial regularity by rescaling the spatial axes in the
// weighted distance sqrt(deltaE(Lab)^2 + (m/S)^2 * deltaXY^2).
type SLICParams struct {
	// K is the approximate number of superpixels requested.
	K             int
	Compactness   float64
	MaxIterations int
}

// DefaultSLICParams matches spec.md §4.6's default of 10 iterations.
func DefaultSLICParams() SLICParams {
	return SLICParams{K: 24, Compactness: 10, MaxIterations: 10}
}

// runSLIC implements spec.md §4.6's SLIC: place centers on a regular grid
// of spacing S (chosen so k ~= width*height / S^2 in normalized spatial
// units, i.e. S = 1/sqrt(k)), perturb each to the lowest-gradient point
// in its local neighborhood among the candidate points, then iterate
// assignment (within a 2Sx2S window) and center recomputation.
//
// Per-center assignment is independent (spec.md §5), so each iteration's
// assignment pass is parallelized across a worker pool sized by
// runtime.GOMAXPROCS(0), the way the teacher parallelizes per-block work
// in renderer.go; centroid recomputation is sequential and
// order-independent.
func runSLIC(points []Point5D, params SLICParams) *ClusterModel {
	n := len(points)
	if n == 0 || params.K <= 0 {
		return newClusterModel(points, nil)
	}

	s := 1.0 / math.Sqrt(float64(params.K))
	spatialWeight := params.Compactness / s

	centers := slicGridCenters(points, s)
	centers = perturbToLowestGradient(points, centers, s)
	if len(centers) == 0 {
		return newClusterModel(points, nil)
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	maxIter := params.MaxIterations
	if maxIter <= 0 {
		maxIter = 10
	}

	for iter := 0; iter < maxIter; iter++ {
		assignWindowed(points, centers, labels, s, spatialWeight)
		newCenters, counts := recomputeCenters(points, clampAssignments(labels, len(centers)), len(centers)+1)
		for i := range centers {
			if counts[i] > 0 {
				centers[i] = newCenters[i]
			}
		}
	}

	out := make([]ClusterLabel, n)
	for i, l := range labels {
		if l < 0 {
			out[i] = noiseLabel
		} else {
			out[i] = clusterLabel(l)
		}
	}
	return newClusterModel(points, out)
}

// clampAssignments maps any -1 (unassigned) entries to an extra bucket k,
// which runSLIC discards, so recomputeCenters's dense accumulation doesn't
// index out of range and such points never shift a real center; they
// remain excluded from the final model via their noiseLabel in runSLIC.
func clampAssignments(labels []int, k int) []int {
	out := make([]int, len(labels))
	for i, l := range labels {
		if l < 0 || l >= k {
			out[i] = k
		} else {
			out[i] = l
		}
	}
	return out
}

func slicGridCenters(points []Point5D, s float64) []Point5D {
	minX, maxX, minY, maxY := spatialBounds(points)
	var centers []Point5D
	for y := minY + s/2; y <= maxY; y += s {
		for x := minX + s/2; x <= maxX; x += s {
			idx := nearestPointToXY(points, x, y)
			centers = append(centers, points[idx])
		}
	}
	return centers
}

func spatialBounds(points []Point5D) (minX, maxX, minY, maxY float64) {
	minX, maxX = points[0].X, points[0].X
	minY, maxY = points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return
}

func nearestPointToXY(points []Point5D, x, y float64) int {
	best := 0
	bestDist := math.MaxFloat64
	for i, p := range points {
		dx := p.X - x
		dy := p.Y - y
		d := dx*dx + dy*dy
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// perturbToLowestGradient moves each center to the point, among those
// within a small spatial window, with the lowest local color gradient —
// approximated as the smallest sum of L*a*b* distance to its immediate
// spatial neighbors among the sampled points, avoiding centers that land
// on a color edge (spec.md §4.6, "Perturb each center to the
// lowest-gradient point in a 3x3 window").
func perturbToLowestGradient(points []Point5D, centers []Point5D, s float64) []Point5D {
	window := s / 3
	out := make([]Point5D, len(centers))
	for i, c := range centers {
		candidates := pointsWithinXY(points, c.X, c.Y, window)
		if len(candidates) == 0 {
			out[i] = c
			continue
		}
		bestIdx := candidates[0]
		bestGrad := localGradient(points, candidates[0], window)
		for _, idx := range candidates[1:] {
			g := localGradient(points, idx, window)
			if g < bestGrad {
				bestGrad = g
				bestIdx = idx
			}
		}
		out[i] = points[bestIdx]
	}
	return out
}

func pointsWithinXY(points []Point5D, x, y, radius float64) []int {
	var out []int
	for i, p := range points {
		dx := p.X - x
		dy := p.Y - y
		if dx*dx+dy*dy <= radius*radius {
			out = append(out, i)
		}
	}
	return out
}

func localGradient(points []Point5D, idx int, radius float64) float64 {
	p := points[idx]
	neighbors := pointsWithinXY(points, p.X, p.Y, radius)
	if len(neighbors) <= 1 {
		return 0
	}
	var sum float64
	for _, j := range neighbors {
		if j == idx {
			continue
		}
		sum += deltaE76(p.lab(), points[j].lab())
	}
	return sum / float64(len(neighbors)-1)
}

// assignWindowed assigns every point to the center minimizing the
// compactness-weighted distance among centers whose 2Sx2S window
// contains the point, parallelized per center.
func assignWindowed(points []Point5D, centers []Point5D, labels []int, s, spatialWeight float64) {
	n := len(points)
	bestDist := make([]float64, n)
	for i := range bestDist {
		bestDist[i] = math.MaxFloat64
	}
	var mu sync.Mutex

	workers := runtime.GOMAXPROCS(0)
	if workers > len(centers) {
		workers = len(centers)
	}
	if workers < 1 {
		workers = 1
	}

	type result struct {
		idx  int
		dist float64
		ctr  int
	}

	jobs := make(chan int, len(centers))
	for ci := range centers {
		jobs <- ci
	}
	close(jobs)

	var wg sync.WaitGroup
	resultsCh := make(chan result, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ci := range jobs {
				center := centers[ci]
				window := s
				for i, p := range points {
					dx := p.X - center.X
					dy := p.Y - center.Y
					if dx < -window || dx > window || dy < -window || dy > window {
						continue
					}
					d := p.weightedDistance5D(center, spatialWeight)
					resultsCh <- result{idx: i, dist: d, ctr: ci}
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	for r := range resultsCh {
		mu.Lock()
		if r.dist < bestDist[r.idx] {
			bestDist[r.idx] = r.dist
			labels[r.idx] = r.ctr
		}
		mu.Unlock()
	}
}
