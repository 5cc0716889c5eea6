package signal

import (
	"math"
	"sort"
)

// FindMaxima returns the indices of local maxima in xs, in ascending index
// order, subject to a minimum index separation and a minimum prominence.
// Prominence of a peak is the smaller of the drops to the lowest valley on
// each side, walking outward until a strictly higher sample or the sequence
// boundary. Candidates are suppressed greedily from the highest peak down,
// so of two peaks closer than minSeparation the higher one survives.
// NaN samples never form extrema.
func FindMaxima(xs []float64, minSeparation int, minProminence float64) []int {
	candidates := localMaxima(xs)

	// Prominence gate.
	kept := candidates[:0]
	for _, i := range candidates {
		if prominenceAt(xs, i) >= minProminence {
			kept = append(kept, i)
		}
	}

	// Greedy separation suppression, strongest peak first.
	sort.Slice(kept, func(a, b int) bool { return xs[kept[a]] > xs[kept[b]] })
	accepted := make([]int, 0, len(kept))
	for _, i := range kept {
		ok := true
		for _, j := range accepted {
			if abs(i-j) < minSeparation {
				ok = false
				break
			}
		}
		if ok {
			accepted = append(accepted, i)
		}
	}
	sort.Ints(accepted)
	return accepted
}

// FindMinima is FindMaxima on the negated signal.
func FindMinima(xs []float64, minSeparation int, minProminence float64) []int {
	neg := make([]float64, len(xs))
	for i, v := range xs {
		neg[i] = -v
	}
	return FindMaxima(neg, minSeparation, minProminence)
}

// localMaxima returns candidate peak indices: samples strictly above the
// previous distinct value and at least as high as the next. A plateau
// contributes its leftmost sample.
func localMaxima(xs []float64) []int {
	var out []int
	for i := 1; i < len(xs)-1; i++ {
		v := xs[i]
		if math.IsNaN(v) || math.IsNaN(xs[i-1]) || math.IsNaN(xs[i+1]) {
			continue
		}
		if v > xs[i-1] && v >= xs[i+1] {
			out = append(out, i)
		}
	}
	return out
}

// prominenceAt computes the prominence of the candidate peak at index i:
// the minimum of the drops from xs[i] to the lowest valley reached before a
// strictly higher sample on each side. A side that reaches the sequence
// boundary without meeting a higher sample does not bound the peak, so the
// other side's drop decides; a peak unbounded on both sides keeps the drop
// to the global valley.
func prominenceAt(xs []float64, i int) float64 {
	leftDrop := sideDrop(xs, i, -1)
	rightDrop := sideDrop(xs, i, +1)
	prom := math.Min(leftDrop, rightDrop)
	if math.IsInf(prom, 1) {
		// Sole peak of the sequence.
		return math.Max(leftDropToEdge(xs, i), 0)
	}
	return prom
}

// sideDrop walks from the peak in the given direction, tracking the lowest
// valley, and returns the drop to it. Returns +Inf when the walk ends at the
// boundary without finding a strictly higher sample.
func sideDrop(xs []float64, i, dir int) float64 {
	peak := xs[i]
	valley := peak
	bounded := false
	for j := i + dir; j >= 0 && j < len(xs); j += dir {
		v := xs[j]
		if math.IsNaN(v) {
			continue
		}
		if v > peak {
			bounded = true
			break
		}
		if v < valley {
			valley = v
		}
	}
	if !bounded {
		return math.Inf(1)
	}
	return peak - valley
}

// leftDropToEdge is the drop from the peak to the lowest finite sample in
// the whole sequence, used only for a peak unbounded on both sides.
func leftDropToEdge(xs []float64, i int) float64 {
	peak := xs[i]
	valley := peak
	for _, v := range xs {
		if !math.IsNaN(v) && v < valley {
			valley = v
		}
	}
	return peak - valley
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
