package biomech

import "github.com/formlab-data/rep.report/internal/config"

// Config holds the thresholds for per-frame form judgments.
type Config struct {
	// MinKneeFlexionDeg is the knee flexion (deg) required for parallel depth
	MinKneeFlexionDeg float64

	// MaxTrunkAngleDeg caps forward trunk lean (deg from vertical)
	MaxTrunkAngleDeg float64

	// TrunkDeltaDeg is the additional lean above the standing baseline allowed
	TrunkDeltaDeg float64

	// BalanceMargin extends the foot base by this fraction of its span
	BalanceMargin float64

	// DepthHipMarginRatio is the hip-below-knee margin as a fraction of leg length
	DepthHipMarginRatio float64

	// StandingMaxFlexionDeg is the flexion ceiling for "standing" calibration frames
	StandingMaxFlexionDeg float64
}

// DefaultConfig returns the standard form-judgment thresholds.
func DefaultConfig() Config {
	return Config{
		MinKneeFlexionDeg:     90.0, // parallel
		MaxTrunkAngleDeg:      50.0,
		TrunkDeltaDeg:         20.0,
		BalanceMargin:         0.05,
		DepthHipMarginRatio:   0.05,
		StandingMaxFlexionDeg: 35.0,
	}
}

// ConfigFromTuning builds a Config from a loaded TuningConfig.
// Use this in production code where the TuningConfig is already loaded.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		MinKneeFlexionDeg:     cfg.GetMinKneeFlexionDeg(),
		MaxTrunkAngleDeg:      cfg.GetMaxTrunkAngleDeg(),
		TrunkDeltaDeg:         cfg.GetTrunkDeltaDeg(),
		BalanceMargin:         cfg.GetBalanceMargin(),
		DepthHipMarginRatio:   cfg.GetDepthHipMarginRatio(),
		StandingMaxFlexionDeg: cfg.GetStandingMaxFlexionDeg(),
	}
}
