// Package signal conditions the vertical hip trajectory and extracts the
// extrema that bound repetitions. Invalid samples are represented as NaN and
// excluded from every statistic; no field-level sentinels are used.
package signal

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/formlab-data/rep.report/internal/pose"
)

// NormalizedHipY converts one frame's keypoints into a scale-invariant
// vertical hip position: hip-midpoint Y minus ankle-midpoint Y, divided by
// anatomical leg length. The value rises as the squat deepens. Falls back to
// the raw hip Y when the ankles are missing or the legs are degenerate, and
// returns NaN when the hips are unavailable.
func NormalizedHipY(kp pose.Keypoints) float64 {
	hipMid := pose.Midpoint(kp.At(pose.LeftHip), kp.At(pose.RightHip))
	if hipMid == nil {
		return math.NaN()
	}
	ankleMid := pose.Midpoint(kp.At(pose.LeftAnkle), kp.At(pose.RightAnkle))
	legLen := kp.LegLength()
	if ankleMid == nil || legLen < 1e-6 {
		return hipMid.Y
	}
	return (hipMid.Y - ankleMid.Y) / legLen
}

// MedianFilter applies a centered median filter of odd window length,
// suppressing single-frame jitter. Frames near a boundary use the available
// partial window. NaN samples are excluded from each window's median; a
// window with no finite samples yields NaN.
func MedianFilter(xs []float64, window int) []float64 {
	if window < 2 || len(xs) == 0 {
		return append([]float64(nil), xs...)
	}
	half := window / 2
	out := make([]float64, len(xs))
	buf := make([]float64, 0, window)
	for i := range xs {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > len(xs)-1 {
			hi = len(xs) - 1
		}
		buf = buf[:0]
		for j := lo; j <= hi; j++ {
			if !math.IsNaN(xs[j]) {
				buf = append(buf, xs[j])
			}
		}
		if len(buf) == 0 {
			out[i] = math.NaN()
			continue
		}
		sort.Float64s(buf)
		mid := len(buf) / 2
		if len(buf)%2 == 0 {
			out[i] = (buf[mid-1] + buf[mid]) / 2
		} else {
			out[i] = buf[mid]
		}
	}
	return out
}

// Percentile returns the p-quantile (p in [0,1]) of the finite samples in
// xs, or NaN when none are finite.
func Percentile(xs []float64, p float64) float64 {
	finite := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return math.NaN()
	}
	sort.Float64s(finite)
	return stat.Quantile(p, stat.Empirical, finite, nil)
}

// Prominence derives the minimum peak prominence from the signal's own
// distribution: fraction of the robust 5th-to-95th percentile range. This
// self-calibrates extraction to each subject's movement amplitude instead of
// relying on absolute pixel thresholds.
func Prominence(xs []float64, fraction float64) float64 {
	lo := Percentile(xs, 0.05)
	hi := Percentile(xs, 0.95)
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return math.NaN()
	}
	return fraction * (hi - lo)
}

// Band is the percentile band of a rolling buffer, from which the live
// detector derives its phase thresholds.
type Band struct {
	Low  float64
	High float64
}

// PercentileBand returns the (low, high) quantile band of xs.
func PercentileBand(xs []float64, low, high float64) Band {
	return Band{Low: Percentile(xs, low), High: Percentile(xs, high)}
}
