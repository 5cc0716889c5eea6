package biomech

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Baseline holds the per-session reference values captured while standing.
// Computed once per session and never mutated; a nil field means no
// calibration sample carried that metric and callers fall back to the fixed
// thresholds.
type Baseline struct {
	KneeFlexionDeg *float64 `json:"knee_flexion_deg"`
	TrunkAngleDeg  *float64 `json:"trunk_angle_deg"`
	HipAngleDeg    *float64 `json:"hip_angle_deg"`
	ComOffsetNorm  *float64 `json:"com_offset_norm"`
}

// ComputeBaseline aggregates calibration samples into a robust baseline by
// taking the per-field median over the samples that carry that field.
// Callers are expected to restrict samples to standing frames.
func ComputeBaseline(samples []Metrics) Baseline {
	return Baseline{
		KneeFlexionDeg: medianOf(samples, func(m Metrics) *float64 { return m.KneeFlexionDeg }),
		TrunkAngleDeg:  medianOf(samples, func(m Metrics) *float64 { return m.TrunkAngleDeg }),
		HipAngleDeg:    medianOf(samples, func(m Metrics) *float64 { return m.HipAngleDeg }),
		ComOffsetNorm:  medianOf(samples, func(m Metrics) *float64 { return m.ComOffsetNorm }),
	}
}

func medianOf(samples []Metrics, field func(Metrics) *float64) *float64 {
	values := make([]float64, 0, len(samples))
	for _, s := range samples {
		if v := field(s); v != nil {
			values = append(values, *v)
		}
	}
	if len(values) == 0 {
		return nil
	}
	sort.Float64s(values)
	med := stat.Quantile(0.5, stat.Empirical, values, nil)
	return &med
}
