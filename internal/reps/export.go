package reps

import (
	"math"

	"github.com/google/uuid"
)

// Summary is the per-session export handed to downstream reporting. It is
// plain nested data, serializable to JSON without loss; invalid curve
// samples become nulls.
type Summary struct {
	SessionID string     `json:"session_id"`
	Source    string     `json:"source"`
	RepCount  int        `json:"rep_count"`
	FPSEst    float64    `json:"fps_est"`
	Reps      []Record   `json:"reps"`
	HipYCurve []*float64 `json:"hip_y_curve,omitempty"`
}

// NewSummary assembles a session summary with a fresh session ID. The curve
// is optional and only carried for batch sessions.
func NewSummary(source string, fps float64, records []Record, curve []float64) Summary {
	return Summary{
		SessionID: uuid.NewString(),
		Source:    source,
		RepCount:  len(records),
		FPSEst:    fps,
		Reps:      records,
		HipYCurve: exportCurve(curve),
	}
}

// Summary exports the detector's confirmed reps as a live-session summary.
func (d *Detector) Summary(fps float64) Summary {
	return NewSummary("live", fps, d.Finalize(), nil)
}

// exportCurve converts the conditioned signal into nullable samples, since
// NaN has no JSON representation.
func exportCurve(curve []float64) []*float64 {
	if curve == nil {
		return nil
	}
	out := make([]*float64, len(curve))
	for i, v := range curve {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		val := v
		out[i] = &val
	}
	return out
}
