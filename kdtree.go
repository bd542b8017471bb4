package autopalette

import (
	"container/heap"
	"sort"
)

// kdNode is a node in a static, build-once 5-D KD-tree over Point5D
// values. The tree stores indices into the caller's point slice rather
// than copies, the way the ClusterModel borrows point indices rather than
// pointers (spec.md §9, "Cycles / shared references").
//
// Construction follows the teacher's buildKDTree in kdtree.go: choose the
// split axis with the largest value range across the remaining points,
// sort deterministically on that axis with a full tie-break chain, and
// split on the median — generalized here from 3 RGB axes to 5
// (L, a, b, x, y).
type kdNode struct {
	index       int
	axis        int
	left, right *kdNode
}

// KdTree is a static spatial index over a fixed Point5D slice. Build it
// once per point set; it supports radius and k-nearest-neighbor queries.
type KdTree struct {
	points []Point5D
	root   *kdNode
}

// NewKdTree builds a balanced 5-D KD-tree from points. An empty point set
// yields an empty tree; queries against it return empty results.
func NewKdTree(points []Point5D) *KdTree {
	t := &KdTree{points: points}
	if len(points) == 0 {
		return t
	}
	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	t.root = t.build(idx)
	return t
}

func (t *KdTree) build(idx []int) *kdNode {
	if len(idx) == 0 {
		return nil
	}
	axis := t.chooseSplitAxis(idx)

	sort.Slice(idx, func(i, j int) bool {
		return t.less(idx[i], idx[j], axis)
	})

	median := len(idx) / 2
	// Skip past ties on the split axis so identical coordinates don't get
	// split arbitrarily, mirroring the teacher's duplicate-value handling.
	for median < len(idx)-1 && t.axisValue(idx[median], axis) == t.axisValue(idx[median+1], axis) {
		median++
	}

	node := &kdNode{index: idx[median], axis: axis}
	node.left = t.build(idx[:median])
	node.right = t.build(idx[median+1:])
	return node
}

func (t *KdTree) axisValue(i, axis int) float64 {
	return t.axisComponent(t.points[i], axis)
}

func (t *KdTree) axisComponent(p Point5D, axis int) float64 {
	switch axis {
	case 0:
		return p.L
	case 1:
		return p.A
	case 2:
		return p.B
	case 3:
		return p.X
	default:
		return p.Y
	}
}

func (t *KdTree) less(i, j, axis int) bool {
	vi, vj := t.axisValue(i, axis), t.axisValue(j, axis)
	if vi != vj {
		return vi < vj
	}
	// Full tie-break across all axes, then index, for determinism.
	for a := 0; a < 5; a++ {
		if a == axis {
			continue
		}
		ai, aj := t.axisValue(i, a), t.axisValue(j, a)
		if ai != aj {
			return ai < aj
		}
	}
	return i < j
}

func (t *KdTree) chooseSplitAxis(idx []int) int {
	p0 := t.points[idx[0]]
	minV := [5]float64{p0.L, p0.A, p0.B, p0.X, p0.Y}
	maxV := minV
	for _, i := range idx[1:] {
		p := t.points[i]
		v := [5]float64{p.L, p.A, p.B, p.X, p.Y}
		for a := 0; a < 5; a++ {
			if v[a] < minV[a] {
				minV[a] = v[a]
			}
			if v[a] > maxV[a] {
				maxV[a] = v[a]
			}
		}
	}
	best := 0
	bestRange := maxV[0] - minV[0]
	for a := 1; a < 5; a++ {
		r := maxV[a] - minV[a]
		if r > bestRange {
			bestRange = r
			best = a
		}
	}
	return best
}

// Within returns the indices of every point within Euclidean distance r
// of q (inclusive), in the tree's in-order traversal order. That order is
// deterministic for a fixed tree but depends on construction; downstream
// algorithms (DBSCAN's border-point promotion) rely only on it being
// deterministic, never on any other ordering (spec.md §9).
func (t *KdTree) Within(q Point5D, r float64) []int {
	if t.root == nil {
		return nil
	}
	var out []int
	t.within(t.root, q, r, &out)
	return out
}

func (t *KdTree) within(node *kdNode, q Point5D, r float64, out *[]int) {
	if node == nil {
		return
	}
	axisDist := t.axisComponent(q, node.axis) - t.axisValue(node.index, node.axis)

	// In-order: left, self, right — this defines the canonical neighbor
	// order that DBSCAN's border-point promotion depends on.
	if axisDist <= r || axisDist < 0 {
		t.within(node.left, q, r, out)
	}
	if q.distance5D(t.points[node.index]) <= r {
		*out = append(*out, node.index)
	}
	if -axisDist <= r || axisDist >= 0 {
		t.within(node.right, q, r, out)
	}
}

// Nearest returns the index of the single closest point to q.
func (t *KdTree) Nearest(q Point5D) (int, bool) {
	if t.root == nil {
		return 0, false
	}
	best := -1
	bestDist := 0.0
	t.nearest(t.root, q, &best, &bestDist)
	return best, best >= 0
}

func (t *KdTree) nearest(node *kdNode, q Point5D, best *int, bestDist *float64) {
	if node == nil {
		return
	}
	d := q.distance5D(t.points[node.index])
	if *best < 0 || d < *bestDist {
		*best = node.index
		*bestDist = d
	}

	qv := t.axisComponent(q, node.axis)
	nv := t.axisValue(node.index, node.axis)

	var next, other *kdNode
	if qv < nv {
		next, other = node.left, node.right
	} else {
		next, other = node.right, node.left
	}
	t.nearest(next, q, best, bestDist)

	axisDist := qv - nv
	if axisDist*axisDist < (*bestDist)*(*bestDist) || *best < 0 {
		t.nearest(other, q, best, bestDist)
	}
}

// kNearest returns up to k indices nearest to q, nearest first. No
// pipeline code calls it; DBSCAN++ and SNIC use Nearest.
func (t *KdTree) kNearest(q Point5D, k int) []int {
	if t.root == nil || k <= 0 {
		return nil
	}
	pq := make(neighborHeap, 0, k)
	heap.Init(&pq)
	t.collectKNearest(t.root, q, k, &pq)

	result := make([]int, pq.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(&pq).(neighborItem).index
	}
	return result
}

func (t *KdTree) collectKNearest(node *kdNode, q Point5D, k int, pq *neighborHeap) {
	if node == nil {
		return
	}
	d := q.distance5D(t.points[node.index])
	if pq.Len() < k {
		heap.Push(pq, neighborItem{index: node.index, dist: d})
	} else if d < (*pq)[0].dist {
		heap.Pop(pq)
		heap.Push(pq, neighborItem{index: node.index, dist: d})
	}
	t.collectKNearest(node.left, q, k, pq)
	t.collectKNearest(node.right, q, k, pq)
}

// neighborItem/neighborHeap is a bounded max-heap keyed by distance,
// mirroring the teacher's PriorityQueue-based kNearestNeighbors in
// kdtree.go (container/heap over a ColorDistance-like pair).
type neighborItem struct {
	index int
	dist  float64
}

type neighborHeap []neighborItem

func (h neighborHeap) Len() int            { return len(h) }
func (h neighborHeap) Less(i, j int) bool  { return h[i].dist > h[j].dist } // max-heap: worst on top
func (h neighborHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap) Push(x interface{}) { *h = append(*h, x.(neighborItem)) }
func (h *neighborHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
