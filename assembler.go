package autopalette

import "sort"

// defaultMergeThreshold is tau_merge from spec.md §4.7: the CIE76 delta-E
// at or below which two swatch centroids are considered perceptually
// indistinguishable and are collapsed into one swatch.
const defaultMergeThreshold = 6.0

// candidateSwatch is a pre-merge swatch: a cluster's centroid color,
// denormalized position, and population.
type candidateSwatch struct {
	color LAB
	col   int
	row   int
	pop   int
}

// assembleSwatches implements spec.md §4.7: build a candidate swatch per
// cluster, then repeatedly merge the closest pair of remaining swatches
// (by delta-E of their L*a*b* centroids) while the smallest distance is
// at or below mergeThreshold. The merged color is the population-weighted
// average of the two inputs; the merged position is inherited from the
// more populous of the two; the merged population is their sum. Finally
// each surviving swatch's ratio is population / totalPopulation, where
// totalPopulation is the number of pixels the feature encoder kept
// before clustering (spec.md §8: "sum(swatch.population) == T and
// |sum(swatch.ratio) - 1| < 1e-6"), not the sum of the surviving
// clusters' populations — points an algorithm labels Noise are dropped
// from the clusters but must still count against the denominator, or
// the ratios would silently renormalize to sum to 1 even when the
// swatches cover less than the whole image.
func assembleSwatches(model *ClusterModel, width, height int, mergeThreshold float64, totalPopulation int) []Swatch {
	if len(model.Clusters) == 0 {
		return nil
	}
	if mergeThreshold <= 0 {
		mergeThreshold = defaultMergeThreshold
	}

	swatches := make([]candidateSwatch, 0, len(model.Clusters))
	for _, c := range model.Clusters {
		col := denormalize(c.Centroid.X, width) - 1
		row := denormalize(c.Centroid.Y, height) - 1
		swatches = append(swatches, candidateSwatch{
			color: c.Centroid.lab(),
			col:   clampInt(col, 0, width-1),
			row:   clampInt(row, 0, height-1),
			pop:   c.Population,
		})
	}

	swatches = mergeCandidates(swatches, mergeThreshold)

	out := make([]Swatch, len(swatches))
	for i, s := range swatches {
		ratio := 0.0
		if totalPopulation > 0 {
			ratio = float64(s.pop) / float64(totalPopulation)
		}
		out[i] = Swatch{
			color:      s.color,
			col:        s.col,
			row:        s.row,
			population: s.pop,
			ratio:      ratio,
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].population > out[j].population
	})
	return out
}

// mergeCandidates repeatedly merges the globally-closest pair of
// remaining candidates while their delta-E is at or below threshold. With a
// modest palette size (tens of swatches) a direct O(m^2) scan per
// iteration is simpler and plenty fast; the teacher favors straight-line
// clarity over micro-optimization at this scale (e.g. kdtree.go's
// getAllColors flattening the whole tree rather than threading an
// iterator).
func mergeCandidates(swatches []candidateSwatch, threshold float64) []candidateSwatch {
	for {
		if len(swatches) < 2 {
			return swatches
		}
		bestI, bestJ := -1, -1
		bestDist := threshold
		found := false
		for i := 0; i < len(swatches); i++ {
			for j := i + 1; j < len(swatches); j++ {
				d := deltaE76(swatches[i].color, swatches[j].color)
				if d <= bestDist {
					bestDist = d
					bestI, bestJ = i, j
					found = true
				}
			}
		}
		if !found {
			return swatches
		}
		swatches = mergePair(swatches, bestI, bestJ)
	}
}

func mergePair(swatches []candidateSwatch, i, j int) []candidateSwatch {
	a, b := swatches[i], swatches[j]
	totalPop := a.pop + b.pop
	wa := float64(a.pop) / float64(totalPop)
	wb := float64(b.pop) / float64(totalPop)

	merged := candidateSwatch{
		color: LAB{
			L: a.color.L*wa + b.color.L*wb,
			A: a.color.A*wa + b.color.A*wb,
			B: a.color.B*wa + b.color.B*wb,
		},
		pop: totalPop,
	}
	if a.pop >= b.pop {
		merged.col, merged.row = a.col, a.row
	} else {
		merged.col, merged.row = b.col, b.row
	}

	out := make([]candidateSwatch, 0, len(swatches)-1)
	for k, s := range swatches {
		if k == i || k == j {
			continue
		}
		out = append(out, s)
	}
	out = append(out, merged)
	return out
}

func denormalize(v float64, dim int) int {
	return roundToInt(v * float64(dim))
}

func roundToInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
