package autopalette

import (
	"container/heap"
	"math"
)

// SNICParams mirrors SLICParams; SNIC uses the same compactness-weighted
// distance but is non-iterative.
type SNICParams struct {
	K           int
	Compactness float64
}

// DefaultSNICParams matches the SLIC defaults minus MaxIterations, which
// SNIC has no use for.
func DefaultSNICParams() SNICParams {
	return SNICParams{K: 24, Compactness: 10}
}

// snicQueueItem is a candidate assignment: point pointIdx to cluster
// clusterIdx at the given weighted distance from that cluster's current
// running-mean center.
type snicQueueItem struct {
	dist       float64
	pointIdx   int
	clusterIdx int
}

type snicQueue []snicQueueItem

func (q snicQueue) Len() int            { return len(q) }
func (q snicQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q snicQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *snicQueue) Push(x interface{}) { *q = append(*q, x.(snicQueueItem)) }
func (q *snicQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// runSNIC implements spec.md §4.6's SNIC: a priority queue keyed by the
// weighted distance from the nearest assigned neighbor. Grid centers seed
// the queue at distance 0; popping the minimum assigns the point (if
// unlabeled), folds it into that cluster's running-mean center, and
// pushes its unassigned 4-connected spatial neighbors with their
// distance to the updated center. Each pixel is assigned exactly once,
// at the moment it is first popped, so the algorithm is inherently
// sequential (spec.md §5) — unlike SLIC's iterative per-center
// assignment, there is no independent per-cluster step to parallelize.
func runSNIC(points []Point5D, width, height int, params SNICParams) *ClusterModel {
	n := len(points)
	if n == 0 || params.K <= 0 {
		return newClusterModel(points, nil)
	}

	s := 1.0 / math.Sqrt(float64(params.K))
	spatialWeight := params.Compactness / s

	// Build a position index so "4-connected neighbor" can be resolved
	// even though points may have been filtered/downscaled and therefore
	// don't form a dense grid; we approximate 4-connectivity using the
	// nearest points in normalized (x,y) space via the KdTree.
	tree := NewKdTree(points)

	centers := slicGridCenters(points, s)
	if len(centers) == 0 {
		return newClusterModel(points, nil)
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	runningMean := make([]Point5D, len(centers))
	runningCount := make([]int, len(centers))

	pq := make(snicQueue, 0, len(centers))
	heap.Init(&pq)
	for ci, c := range centers {
		idx, ok := tree.Nearest(c)
		if !ok {
			continue
		}
		heap.Push(&pq, snicQueueItem{dist: 0, pointIdx: idx, clusterIdx: ci})
	}

	// Step over a small radius in normalized spatial units roughly one
	// grid spacing wide, to approximate 4-connected expansion on the
	// point cloud (which need not be a dense regular grid once filtered).
	step := s

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(snicQueueItem)
		if labels[item.pointIdx] != -1 {
			continue
		}
		labels[item.pointIdx] = item.clusterIdx

		ci := item.clusterIdx
		runningCount[ci]++
		cnt := float64(runningCount[ci])
		p := points[item.pointIdx]
		rm := &runningMean[ci]
		rm.L += (p.L - rm.L) / cnt
		rm.A += (p.A - rm.A) / cnt
		rm.B += (p.B - rm.B) / cnt
		rm.X += (p.X - rm.X) / cnt
		rm.Y += (p.Y - rm.Y) / cnt

		neighborOffsets := [4][2]float64{
			{step, 0}, {-step, 0}, {0, step}, {0, -step},
		}
		for _, off := range neighborOffsets {
			target := Point5D{X: p.X + off[0], Y: p.Y + off[1], L: p.L, A: p.A, B: p.B}
			nIdx, ok := tree.Nearest(target)
			if !ok || labels[nIdx] != -1 {
				continue
			}
			d := points[nIdx].weightedDistance5D(*rm, spatialWeight)
			heap.Push(&pq, snicQueueItem{dist: d, pointIdx: nIdx, clusterIdx: ci})
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
