package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEmptyTuningConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := EmptyTuningConfig()
	assert.Equal(t, 10, cfg.GetCalibrationFrames())
	assert.Equal(t, 35.0, cfg.GetStandingMaxFlexionDeg())
	assert.Equal(t, 90.0, cfg.GetMinKneeFlexionDeg())
	assert.Equal(t, 50.0, cfg.GetMaxTrunkAngleDeg())
	assert.Equal(t, 20.0, cfg.GetTrunkDeltaDeg())
	assert.Equal(t, 0.05, cfg.GetBalanceMargin())
	assert.Equal(t, 0.05, cfg.GetDepthHipMarginRatio())
	assert.Equal(t, 0.6, cfg.GetReviewConfidence())
	assert.Equal(t, 0.4, cfg.GetSmoothingAlpha())
	assert.Equal(t, 5, cfg.GetMedianFilterWindow())
	assert.Equal(t, 0.10, cfg.GetProminenceFraction())
	assert.Equal(t, 10, cfg.GetMinFramesBetweenExtrema())
	assert.Equal(t, 60, cfg.GetWindowSize())
	assert.Equal(t, 6, cfg.GetMinFramesBetweenReps())
	assert.Equal(t, 15, cfg.GetMaxFillRunFrames())
	assert.Equal(t, 0.38, cfg.GetTopFraction())
	assert.Equal(t, 0.58, cfg.GetBottomFraction())
	assert.Equal(t, 0.06, cfg.GetHysteresisFraction())
	assert.Equal(t, 0.12, cfg.GetMinBandSpan())
	assert.False(t, cfg.GetVerbose())
}

func TestLoadTuningConfig(t *testing.T) {
	t.Parallel()

	t.Run("partial file overrides only named fields", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "tuning.json", `{"window_size": 120, "verbose": true}`)
		cfg, err := LoadTuningConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 120, cfg.GetWindowSize())
		assert.True(t, cfg.GetVerbose())
		// Unnamed fields keep their defaults.
		assert.Equal(t, 0.38, cfg.GetTopFraction())
		assert.Equal(t, 10, cfg.GetCalibrationFrames())
	})

	t.Run("rejects non-json extension", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "tuning.yaml", `{}`)
		_, err := LoadTuningConfig(path)
		assert.ErrorContains(t, err, ".json extension")
	})

	t.Run("rejects missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadTuningConfig(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "tuning.json", `{"window_size": `)
		_, err := LoadTuningConfig(path)
		assert.ErrorContains(t, err, "parse")
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "tuning.json", `{"median_filter_window": 4}`)
		_, err := LoadTuningConfig(path)
		assert.ErrorContains(t, err, "median_filter_window")
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	iptr := func(v int) *int { return &v }
	fptr := func(v float64) *float64 { return &v }

	t.Run("empty config is valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, EmptyTuningConfig().Validate())
	})

	t.Run("calibration frames must be positive", func(t *testing.T) {
		t.Parallel()
		cfg := &TuningConfig{CalibrationFrames: iptr(0)}
		assert.Error(t, cfg.Validate())
	})

	t.Run("median window must be odd", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, (&TuningConfig{MedianFilterWindow: iptr(4)}).Validate())
		assert.NoError(t, (&TuningConfig{MedianFilterWindow: iptr(7)}).Validate())
	})

	t.Run("prominence fraction bounds", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, (&TuningConfig{ProminenceFraction: fptr(0)}).Validate())
		assert.Error(t, (&TuningConfig{ProminenceFraction: fptr(1.5)}).Validate())
	})

	t.Run("window size floor", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, (&TuningConfig{WindowSize: iptr(3)}).Validate())
	})

	t.Run("smoothing alpha bounds", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, (&TuningConfig{SmoothingAlpha: fptr(0)}).Validate())
		assert.Error(t, (&TuningConfig{SmoothingAlpha: fptr(1.2)}).Validate())
	})

	t.Run("bottom fraction must exceed top", func(t *testing.T) {
		t.Parallel()
		cfg := &TuningConfig{TopFraction: fptr(0.6), BottomFraction: fptr(0.5)}
		assert.Error(t, cfg.Validate())
	})

	t.Run("hysteresis must fit between thresholds", func(t *testing.T) {
		t.Parallel()
		cfg := &TuningConfig{HysteresisFraction: fptr(0.25)}
		assert.Error(t, cfg.Validate())
		cfg = &TuningConfig{HysteresisFraction: fptr(0.1)}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("review confidence bounds", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, (&TuningConfig{ReviewConfidence: fptr(1.5)}).Validate())
	})
}

func TestMustLoadDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := MustLoadDefaultConfig()
	require.NotNil(t, cfg)

	// The shipped defaults file must spell out every value the accessors
	// fall back to, so the two sources of truth cannot drift.
	assert.Equal(t, 10, cfg.GetCalibrationFrames())
	assert.Equal(t, 5, cfg.GetMedianFilterWindow())
	assert.Equal(t, 0.38, cfg.GetTopFraction())
	assert.Equal(t, 0.58, cfg.GetBottomFraction())
	assert.Equal(t, 0.06, cfg.GetHysteresisFraction())
	assert.Equal(t, 0.12, cfg.GetMinBandSpan())
	assert.NotNil(t, cfg.WindowSize)
	assert.NotNil(t, cfg.MinKneeFlexionDeg)
	assert.NotNil(t, cfg.ReviewConfidence)
}
