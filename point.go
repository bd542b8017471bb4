package autopalette

import "math"

// Point5D is an immutable feature vector combining perceptual color
// (L*a*b*) and normalized, 1-indexed spatial position. Spatial coordinates
// are 1-indexed — x = (col+1)/width, y = (row+1)/height — deliberately:
// 0-indexing would make the first row/column's spatial term vanish under
// any multiplicative weighting.
type Point5D struct {
	L, A, B float64
	X, Y    float64
}

// lab extracts the color components of a point.
func (p Point5D) lab() LAB { return LAB{L: p.L, A: p.A, B: p.B} }

// distance5D is the plain Euclidean distance over all five axes, used by
// the KdTree and by DBSCAN/DBSCAN++'s epsilon test.
func (p Point5D) distance5D(o Point5D) float64 {
	dl := p.L - o.L
	da := p.A - o.A
	db := p.B - o.B
	dx := p.X - o.X
	dy := p.Y - o.Y
	return math.Sqrt(dl*dl + da*da + db*db + dx*dx + dy*dy)
}

// weightedDistance5D is the SLIC/SNIC compactness-adjusted distance:
// sqrt(deltaE(Lab)^2 + (m/S)^2 * deltaXY^2). Passing weight=1 recovers
// plain Euclidean distance over the spatial axes (distance5D uses that
// implicitly via m/S == 1).
func (p Point5D) weightedDistance5D(o Point5D, spatialWeight float64) float64 {
	dl := p.L - o.L
	da := p.A - o.A
	db := p.B - o.B
	dx := p.X - o.X
	dy := p.Y - o.Y
	labTerm := dl*dl + da*da + db*db
	xyTerm := (dx*dx + dy*dy) * spatialWeight * spatialWeight
	return math.Sqrt(labTerm + xyTerm)
}

// LabelKind distinguishes the three states a point can be in after
// DBSCAN/DBSCAN++ labeling.
type LabelKind int

const (
	// Unassigned marks a point no algorithm pass has visited yet.
	Unassigned LabelKind = iota
	// Noise marks a point that failed the core-point density test and was
	// not later reached as a border point.
	Noise
	// Assigned marks a point belonging to cluster ClusterLabel.Cluster.
	Assigned
)

// ClusterLabel is either Cluster(k), Noise, or Unassigned.
type ClusterLabel struct {
	Kind    LabelKind
	Cluster int // valid only when Kind == Assigned
}

var unassignedLabel = ClusterLabel{Kind: Unassigned}
var noiseLabel = ClusterLabel{Kind: Noise}

func clusterLabel(k int) ClusterLabel { return ClusterLabel{Kind: Assigned, Cluster: k} }

// Cluster is the common output of every segmentation algorithm: a
// population-weighted centroid in 5-D plus the pixel count that produced
// it. Population is always >= 1 for any cluster handed to the
// SwatchAssembler.
type Cluster struct {
	Centroid   Point5D
	Population int
}
