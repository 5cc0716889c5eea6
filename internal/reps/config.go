package reps

import (
	"github.com/formlab-data/rep.report/internal/biomech"
	"github.com/formlab-data/rep.report/internal/config"
)

// Config holds the tuning parameters for rep segmentation, both batch and
// incremental.
type Config struct {
	// Biomech holds the per-frame form-judgment thresholds
	Biomech biomech.Config

	// CalibrationFrames is the number of standing samples needed for a baseline
	CalibrationFrames int

	// MedianFilterWindow is the conditioner's centered median window (odd)
	MedianFilterWindow int

	// ProminenceFraction scales the robust signal range into the minimum
	// extremum prominence
	ProminenceFraction float64

	// MinFramesBetweenExtrema separates batch-mode extrema candidates
	MinFramesBetweenExtrema int

	// WindowSize bounds the incremental detector's rolling signal window
	WindowSize int

	// MinFramesBetweenReps is the minimum gap from the previous confirmed
	// end frame to the next rep's start frame
	MinFramesBetweenReps int

	// MaxFillRunFrames is the longest run of gap-filled samples tolerated
	// before an in-progress rep is invalidated
	MaxFillRunFrames int

	// TopFraction/BottomFraction place the phase thresholds inside the
	// rolling percentile band; HysteresisFraction separates the descent and
	// ascent crossings of the bottom threshold
	TopFraction        float64
	BottomFraction     float64
	HysteresisFraction float64

	// MinBandSpan floors the band span so thresholds stay meaningful while
	// the subject stands still
	MinBandSpan float64

	// ReviewConfidence is the pose confidence floor below which a rep is
	// flagged for review
	ReviewConfidence float64

	// Verbose enables lifecycle logging (calibration, confirmations)
	Verbose bool
}

// DefaultConfig returns the standard segmentation parameters.
func DefaultConfig() Config {
	return Config{
		Biomech:                 biomech.DefaultConfig(),
		CalibrationFrames:       10,
		MedianFilterWindow:      5,
		ProminenceFraction:      0.10,
		MinFramesBetweenExtrema: 10,
		WindowSize:              60,
		MinFramesBetweenReps:    6,
		MaxFillRunFrames:        15,
		TopFraction:             0.38,
		BottomFraction:          0.58,
		HysteresisFraction:      0.06,
		MinBandSpan:             0.12,
		ReviewConfidence:        0.6,
	}
}

// ConfigFromTuning builds a Config from a loaded TuningConfig.
// Use this in production code where the TuningConfig is already loaded.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		Biomech:                 biomech.ConfigFromTuning(cfg),
		CalibrationFrames:       cfg.GetCalibrationFrames(),
		MedianFilterWindow:      cfg.GetMedianFilterWindow(),
		ProminenceFraction:      cfg.GetProminenceFraction(),
		MinFramesBetweenExtrema: cfg.GetMinFramesBetweenExtrema(),
		WindowSize:              cfg.GetWindowSize(),
		MinFramesBetweenReps:    cfg.GetMinFramesBetweenReps(),
		MaxFillRunFrames:        cfg.GetMaxFillRunFrames(),
		TopFraction:             cfg.GetTopFraction(),
		BottomFraction:          cfg.GetBottomFraction(),
		HysteresisFraction:      cfg.GetHysteresisFraction(),
		MinBandSpan:             cfg.GetMinBandSpan(),
		ReviewConfidence:        cfg.GetReviewConfidence(),
		Verbose:                 cfg.GetVerbose(),
	}
}
