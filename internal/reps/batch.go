package reps

import (
	"math"

	"github.com/formlab-data/rep.report/internal/biomech"
	"github.com/formlab-data/rep.report/internal/pose"
	"github.com/formlab-data/rep.report/internal/signal"
)

// DetectReps segments a complete recorded keypoint sequence into
// repetitions. It returns the ordered rep records and the conditioned hip-y
// curve for downstream visualization. A sequence with no finite signal
// yields (nil, nil); malformed frames degrade to gaps, never errors.
//
// The conditioned signal rises with knee flexion, so standing moments are
// its local minima and the deepest point of a rep is the maximum between
// two adjacent standing minima. Every structurally valid rep is emitted;
// depth quality is recorded on the record, not used to discard it.
func DetectReps(series []pose.Keypoints, fps float64, cfg Config) ([]Record, []float64) {
	if len(series) == 0 {
		return nil, nil
	}

	raw := make([]float64, len(series))
	anyFinite := false
	for i, kp := range series {
		raw[i] = signal.NormalizedHipY(kp)
		if !math.IsNaN(raw[i]) {
			anyFinite = true
		}
	}
	if !anyFinite {
		return nil, nil
	}

	baseline := calibrateBatch(series, cfg)
	cond := signal.MedianFilter(raw, cfg.MedianFilterWindow)
	prom := signal.Prominence(cond, cfg.ProminenceFraction)

	bottoms := signal.FindMaxima(cond, cfg.MinFramesBetweenExtrema, prom)
	standings := signal.FindMinima(cond, cfg.MinFramesBetweenExtrema, prom)
	if len(standings) < 2 {
		return nil, cond
	}

	var records []Record
	for i := 0; i+1 < len(standings); i++ {
		start, end := standings[i], standings[i+1]
		bottom, ok := deepestBetween(cond, bottoms, start, end)
		if !ok {
			continue
		}
		metrics := biomech.ComputeMetrics(series[bottom], baseline, cfg.Biomech)
		records = append(records, newRecord(
			len(records)+1, start, end, bottom, fps, metrics, cfg.ReviewConfidence,
		))
	}
	return records, cond
}

// calibrateBatch builds the session baseline from the first standing frames
// of the sequence, scanning until twice the calibration-frame count has
// accumulated. Returns nil when no standing frame qualifies.
func calibrateBatch(series []pose.Keypoints, cfg Config) *biomech.Baseline {
	want := 2 * cfg.CalibrationFrames
	var samples []biomech.Metrics
	for _, kp := range series {
		if len(samples) >= want {
			break
		}
		if !kp.Valid() {
			continue
		}
		m := biomech.ComputeMetrics(kp, nil, cfg.Biomech)
		if m.IsStanding(cfg.Biomech) {
			samples = append(samples, m)
		}
	}
	if len(samples) == 0 {
		return nil
	}
	b := biomech.ComputeBaseline(samples)
	return &b
}

// deepestBetween picks the highest-valued bottom extremum strictly inside
// (start, end). Reports false when the interval holds no bottom extremum.
func deepestBetween(cond []float64, bottoms []int, start, end int) (int, bool) {
	best := -1
	for _, b := range bottoms {
		if b <= start || b >= end {
			continue
		}
		if best < 0 || cond[b] > cond[best] {
			best = b
		}
	}
	return best, best >= 0
}
