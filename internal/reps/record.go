package reps

import "github.com/formlab-data/rep.report/internal/biomech"

// Record is one completed repetition. It is created atomically when a rep
// boundary is confirmed and never mutated afterward. The embedded metrics
// are those of the bottom frame.
type Record struct {
	Rep         int      `json:"rep"`
	StartFrame  int      `json:"start_frame"`
	EndFrame    int      `json:"end_frame"`
	BottomFrame int      `json:"bottom_frame"`
	DurationSec *float64 `json:"duration_sec"`
	SpeedProxy  *float64 `json:"speed_proxy"`
	NeedsReview bool     `json:"needs_review"`

	biomech.Metrics
}

// newRecord assembles a rep record from its boundary frames and bottom
// metrics. Duration and speed are nil when fps or the frame span is
// non-positive.
func newRecord(rep, startFrame, endFrame, bottomFrame int, fps float64, bottom biomech.Metrics, reviewFloor float64) Record {
	rec := Record{
		Rep:         rep,
		StartFrame:  startFrame,
		EndFrame:    endFrame,
		BottomFrame: bottomFrame,
		Metrics:     bottom,
	}
	if fps > 0 && endFrame > startFrame {
		duration := float64(endFrame-startFrame) / fps
		speed := 1.0 / duration
		rec.DurationSec = &duration
		rec.SpeedProxy = &speed
	}
	rec.NeedsReview = bottom.PoseConfidence == nil || *bottom.PoseConfidence < reviewFloor
	return rec
}
