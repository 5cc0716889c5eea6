package signal

import "math"

// FillGaps replaces each NaN sample with the nearest preceding finite
// sample, falling back to the nearest following one at the head of the
// sequence. The input is not modified. A sequence with no finite samples is
// returned as-is.
func FillGaps(xs []float64) []float64 {
	out := append([]float64(nil), xs...)

	last := math.NaN()
	for i, v := range out {
		if math.IsNaN(v) {
			out[i] = last
		} else {
			last = v
		}
	}

	// Head of the sequence before the first finite sample.
	next := math.NaN()
	for i := len(out) - 1; i >= 0; i-- {
		if math.IsNaN(out[i]) {
			out[i] = next
		} else {
			next = out[i]
		}
	}
	return out
}
