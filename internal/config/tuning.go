package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for engine tuning
// parameters. Fields are pointers so that a partial JSON file only
// overrides what it names; the Get* methods supply defaults for the rest.
type TuningConfig struct {
	// Calibration params
	CalibrationFrames     *int     `json:"calibration_frames,omitempty"`
	StandingMaxFlexionDeg *float64 `json:"standing_max_flexion_deg,omitempty"`

	// Frame metrics params
	MinKneeFlexionDeg   *float64 `json:"min_knee_flexion_deg,omitempty"`
	MaxTrunkAngleDeg    *float64 `json:"max_trunk_angle_deg,omitempty"`
	TrunkDeltaDeg       *float64 `json:"trunk_delta_deg,omitempty"`
	BalanceMargin       *float64 `json:"balance_margin,omitempty"`
	DepthHipMarginRatio *float64 `json:"depth_hip_margin_ratio,omitempty"`
	ReviewConfidence    *float64 `json:"review_confidence,omitempty"`
	SmoothingAlpha      *float64 `json:"smoothing_alpha,omitempty"`

	// Signal conditioning params
	MedianFilterWindow *int     `json:"median_filter_window,omitempty"`
	ProminenceFraction *float64 `json:"prominence_fraction,omitempty"`

	// Batch segmenter params
	MinFramesBetweenExtrema *int `json:"min_frames_between_extrema,omitempty"`

	// Incremental detector params
	WindowSize           *int     `json:"window_size,omitempty"`
	MinFramesBetweenReps *int     `json:"min_frames_between_reps,omitempty"`
	MaxFillRunFrames     *int     `json:"max_fill_run_frames,omitempty"`
	TopFraction          *float64 `json:"top_fraction,omitempty"`
	BottomFraction       *float64 `json:"bottom_fraction,omitempty"`
	HysteresisFraction   *float64 `json:"hysteresis_fraction,omitempty"`
	MinBandSpan          *float64 `json:"min_band_span,omitempty"`
	Verbose              *bool    `json:"verbose,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the
// max file size. Fields omitted from the JSON file retain their default
// values, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from deeper packages
		"../../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.CalibrationFrames != nil && *c.CalibrationFrames < 1 {
		return fmt.Errorf("calibration_frames must be positive, got %d", *c.CalibrationFrames)
	}
	if c.MedianFilterWindow != nil {
		if *c.MedianFilterWindow < 1 || *c.MedianFilterWindow%2 == 0 {
			return fmt.Errorf("median_filter_window must be a positive odd number, got %d", *c.MedianFilterWindow)
		}
	}
	if c.ProminenceFraction != nil {
		if *c.ProminenceFraction <= 0 || *c.ProminenceFraction > 1 {
			return fmt.Errorf("prominence_fraction must be in (0, 1], got %f", *c.ProminenceFraction)
		}
	}
	if c.WindowSize != nil && *c.WindowSize < 4 {
		return fmt.Errorf("window_size must be at least 4, got %d", *c.WindowSize)
	}
	if c.SmoothingAlpha != nil {
		if *c.SmoothingAlpha <= 0 || *c.SmoothingAlpha > 1 {
			return fmt.Errorf("smoothing_alpha must be in (0, 1], got %f", *c.SmoothingAlpha)
		}
	}
	top := c.GetTopFraction()
	bottom := c.GetBottomFraction()
	if top <= 0 || top >= 1 {
		return fmt.Errorf("top_fraction must be in (0, 1), got %f", top)
	}
	if bottom <= top || bottom >= 1 {
		return fmt.Errorf("bottom_fraction must be in (top_fraction, 1), got %f", bottom)
	}
	if c.HysteresisFraction != nil {
		if *c.HysteresisFraction < 0 || *c.HysteresisFraction >= bottom-top {
			return fmt.Errorf("hysteresis_fraction must be in [0, bottom-top), got %f", *c.HysteresisFraction)
		}
	}
	if c.ReviewConfidence != nil {
		if *c.ReviewConfidence < 0 || *c.ReviewConfidence > 1 {
			return fmt.Errorf("review_confidence must be in [0, 1], got %f", *c.ReviewConfidence)
		}
	}
	return nil
}

// GetCalibrationFrames returns the calibration_frames value or the default.
func (c *TuningConfig) GetCalibrationFrames() int {
	if c.CalibrationFrames == nil {
		return 10
	}
	return *c.CalibrationFrames
}

// GetStandingMaxFlexionDeg returns the standing_max_flexion_deg value or the default.
func (c *TuningConfig) GetStandingMaxFlexionDeg() float64 {
	if c.StandingMaxFlexionDeg == nil {
		return 35.0
	}
	return *c.StandingMaxFlexionDeg
}

// GetMinKneeFlexionDeg returns the min_knee_flexion_deg value or the default.
func (c *TuningConfig) GetMinKneeFlexionDeg() float64 {
	if c.MinKneeFlexionDeg == nil {
		return 90.0 // parallel depth
	}
	return *c.MinKneeFlexionDeg
}

// GetMaxTrunkAngleDeg returns the max_trunk_angle_deg value or the default.
func (c *TuningConfig) GetMaxTrunkAngleDeg() float64 {
	if c.MaxTrunkAngleDeg == nil {
		return 50.0
	}
	return *c.MaxTrunkAngleDeg
}

// GetTrunkDeltaDeg returns the trunk_delta_deg value or the default.
func (c *TuningConfig) GetTrunkDeltaDeg() float64 {
	if c.TrunkDeltaDeg == nil {
		return 20.0
	}
	return *c.TrunkDeltaDeg
}

// GetBalanceMargin returns the balance_margin value or the default.
func (c *TuningConfig) GetBalanceMargin() float64 {
	if c.BalanceMargin == nil {
		return 0.05
	}
	return *c.BalanceMargin
}

// GetDepthHipMarginRatio returns the depth_hip_margin_ratio value or the default.
func (c *TuningConfig) GetDepthHipMarginRatio() float64 {
	if c.DepthHipMarginRatio == nil {
		return 0.05
	}
	return *c.DepthHipMarginRatio
}

// GetReviewConfidence returns the review_confidence value or the default.
func (c *TuningConfig) GetReviewConfidence() float64 {
	if c.ReviewConfidence == nil {
		return 0.6
	}
	return *c.ReviewConfidence
}

// GetSmoothingAlpha returns the smoothing_alpha value or the default.
func (c *TuningConfig) GetSmoothingAlpha() float64 {
	if c.SmoothingAlpha == nil {
		return 0.4
	}
	return *c.SmoothingAlpha
}

// GetMedianFilterWindow returns the median_filter_window value or the default.
func (c *TuningConfig) GetMedianFilterWindow() int {
	if c.MedianFilterWindow == nil {
		return 5
	}
	return *c.MedianFilterWindow
}

// GetProminenceFraction returns the prominence_fraction value or the default.
func (c *TuningConfig) GetProminenceFraction() float64 {
	if c.ProminenceFraction == nil {
		return 0.10
	}
	return *c.ProminenceFraction
}

// GetMinFramesBetweenExtrema returns the min_frames_between_extrema value or the default.
func (c *TuningConfig) GetMinFramesBetweenExtrema() int {
	if c.MinFramesBetweenExtrema == nil {
		return 10
	}
	return *c.MinFramesBetweenExtrema
}

// GetWindowSize returns the window_size value or the default.
func (c *TuningConfig) GetWindowSize() int {
	if c.WindowSize == nil {
		return 60
	}
	return *c.WindowSize
}

// GetMinFramesBetweenReps returns the min_frames_between_reps value or the default.
func (c *TuningConfig) GetMinFramesBetweenReps() int {
	if c.MinFramesBetweenReps == nil {
		return 6
	}
	return *c.MinFramesBetweenReps
}

// GetMaxFillRunFrames returns the max_fill_run_frames value or the default.
func (c *TuningConfig) GetMaxFillRunFrames() int {
	if c.MaxFillRunFrames == nil {
		return 15
	}
	return *c.MaxFillRunFrames
}

// GetTopFraction returns the top_fraction value or the default.
func (c *TuningConfig) GetTopFraction() float64 {
	if c.TopFraction == nil {
		return 0.38
	}
	return *c.TopFraction
}

// GetBottomFraction returns the bottom_fraction value or the default.
func (c *TuningConfig) GetBottomFraction() float64 {
	if c.BottomFraction == nil {
		return 0.58
	}
	return *c.BottomFraction
}

// GetHysteresisFraction returns the hysteresis_fraction value or the default.
func (c *TuningConfig) GetHysteresisFraction() float64 {
	if c.HysteresisFraction == nil {
		return 0.06
	}
	return *c.HysteresisFraction
}

// GetMinBandSpan returns the min_band_span value or the default.
func (c *TuningConfig) GetMinBandSpan() float64 {
	if c.MinBandSpan == nil {
		return 0.12
	}
	return *c.MinBandSpan
}

// GetVerbose returns the verbose value or the default.
func (c *TuningConfig) GetVerbose() bool {
	if c.Verbose == nil {
		return false
	}
	return *c.Verbose
}
