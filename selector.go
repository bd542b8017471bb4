package autopalette

// scoreFloor is the minimum theme score spec.md §4.9 step 1 requires a
// candidate to clear before it is eligible for selection at all.
const scoreFloor = 0.01

// selectDiverse implements spec.md §4.9's weighted farthest-point
// sampling: drop candidates below scoreFloor, pick the highest-scoring
// swatch first, then repeatedly pick the swatch maximizing
// score * min_{chosen} deltaE(swatch, chosen) until n are chosen or no
// candidates remain. For the un-themed selector, the caller passes
// population as the score (spec.md §4.9's "score is replaced by
// population"); the same product rule then breaks ties between
// diversity and population.
//
// When every candidate scores below the floor (all-candidates-filtered,
// spec.md §9's open question on find_swatches_with_theme), this returns
// an empty slice rather than falling back to un-themed selection, per
// the spec's stated preference.
func selectDiverse(candidates []Swatch, scores []float64, n int) []Swatch {
	if n <= 0 {
		return nil
	}

	type candidate struct {
		swatch Swatch
		score  float64
	}
	var pool []candidate
	for i, s := range candidates {
		if scores[i] >= scoreFloor {
			pool = append(pool, candidate{swatch: s, score: scores[i]})
		}
	}
	if len(pool) == 0 {
		return nil
	}

	chosen := make([]Swatch, 0, n)

	firstIdx := 0
	for i := 1; i < len(pool); i++ {
		if pool[i].score > pool[firstIdx].score {
			firstIdx = i
		}
	}
	chosen = append(chosen, pool[firstIdx].swatch)
	pool = append(pool[:firstIdx], pool[firstIdx+1:]...)

	for len(chosen) < n && len(pool) > 0 {
		bestIdx := -1
		bestRank := -1.0
		for i, c := range pool {
			minDist := minDeltaETo(c.swatch, chosen)
			rank := c.score * minDist
			if rank > bestRank {
				bestRank = rank
				bestIdx = i
			}
		}
		chosen = append(chosen, pool[bestIdx].swatch)
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
	}

	return chosen
}

func minDeltaETo(s Swatch, chosen []Swatch) float64 {
	min := -1.0
	for _, c := range chosen {
		d := deltaE76(s.Lab(), c.Lab())
		if min < 0 || d < min {
			min = d
		}
	}
	if min < 0 {
		return 0
	}
	return min
}
