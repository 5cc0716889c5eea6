// Package biomech derives per-frame biomechanical metrics and per-session
// baselines from 2D keypoint sets. All computations are pure: missing
// landmarks degrade individual fields to nil instead of failing the frame.
package biomech

import (
	"math"

	"github.com/formlab-data/rep.report/internal/pose"
)

// Confidence penalties applied when a metric cannot be derived.
const (
	kneePenalty    = 0.40
	hipPenalty     = 0.15
	trunkPenalty   = 0.15
	comPenalty     = 0.15
	hipKneePenalty = 0.15
)

// Metrics is the fixed-schema record derived from one frame. Numeric fields
// are nil when the required landmarks are missing; boolean judgments are nil
// when the quantity they judge is unknown.
type Metrics struct {
	KneeAngleDeg   *float64 `json:"knee_angle_deg"`
	KneeFlexionDeg *float64 `json:"knee_flexion_deg"`
	HipAngleDeg    *float64 `json:"hip_angle_deg"`
	TrunkAngleDeg  *float64 `json:"trunk_angle_deg"`
	ComOffsetNorm  *float64 `json:"com_offset_norm"`
	DepthOK        *bool    `json:"depth_ok"`
	TrunkOK        *bool    `json:"trunk_ok"`
	BalanceOK      *bool    `json:"balance_ok"`
	FormOK         *bool    `json:"form_ok"`
	PoseConfidence *float64 `json:"pose_confidence"`
}

// ComputeMetrics derives the metrics record for one frame. The baseline is
// optional; when present it tightens the trunk judgment to the individual.
// Passing nil keypoints yields a record with every field nil.
func ComputeMetrics(kp pose.Keypoints, baseline *Baseline, cfg Config) Metrics {
	if kp == nil {
		return Metrics{}
	}

	var m Metrics
	m.KneeAngleDeg = kneeAngleDeg(kp)
	if m.KneeAngleDeg != nil {
		flexion := 180.0 - *m.KneeAngleDeg
		m.KneeFlexionDeg = &flexion
	}
	m.HipAngleDeg = hipAngleDeg(kp)
	m.TrunkAngleDeg = trunkAngleDeg(kp)

	com := comProxy(kp)
	m.ComOffsetNorm, m.BalanceOK = balance(kp, com, cfg.BalanceMargin)

	hipBelow := hipBelowKnee(kp, cfg.DepthHipMarginRatio)
	m.DepthOK = depthOK(m.KneeFlexionDeg, hipBelow, cfg.MinKneeFlexionDeg)
	m.TrunkOK = trunkOK(m.TrunkAngleDeg, baseline, cfg)

	// form_ok requires confirmed depth; an unknown trunk or balance judgment
	// does not veto form, only an explicit false does.
	if m.DepthOK != nil {
		form := *m.DepthOK &&
			(m.TrunkOK == nil || *m.TrunkOK) &&
			(m.BalanceOK == nil || *m.BalanceOK)
		m.FormOK = &form
	}

	conf := 1.0
	if m.KneeAngleDeg == nil {
		conf -= kneePenalty
	}
	if m.HipAngleDeg == nil {
		conf -= hipPenalty
	}
	if m.TrunkAngleDeg == nil {
		conf -= trunkPenalty
	}
	if m.ComOffsetNorm == nil {
		conf -= comPenalty
	}
	if hipBelow == nil {
		conf -= hipKneePenalty
	}
	conf = math.Max(0, math.Min(1, conf))
	m.PoseConfidence = &conf

	return m
}

// kneeAngleDeg averages the hip-knee-ankle angle over the sides with all
// three landmarks present; one usable side stands alone.
func kneeAngleDeg(kp pose.Keypoints) *float64 {
	left := pose.JointAngleDeg(kp.At(pose.LeftHip), kp.At(pose.LeftKnee), kp.At(pose.LeftAnkle))
	right := pose.JointAngleDeg(kp.At(pose.RightHip), kp.At(pose.RightKnee), kp.At(pose.RightAnkle))
	switch {
	case left == nil && right == nil:
		return nil
	case left == nil:
		return right
	case right == nil:
		return left
	}
	avg := (*left + *right) / 2
	return &avg
}

func hipAngleDeg(kp pose.Keypoints) *float64 {
	shoulderMid := pose.Midpoint(kp.At(pose.LeftShoulder), kp.At(pose.RightShoulder))
	hipMid := pose.Midpoint(kp.At(pose.LeftHip), kp.At(pose.RightHip))
	kneeMid := pose.Midpoint(kp.At(pose.LeftKnee), kp.At(pose.RightKnee))
	return pose.JointAngleDeg(shoulderMid, hipMid, kneeMid)
}

// trunkAngleDeg measures forward lean: the angle between the hip-to-shoulder
// vector and vertical. 0 = upright.
func trunkAngleDeg(kp pose.Keypoints) *float64 {
	shoulderMid := pose.Midpoint(kp.At(pose.LeftShoulder), kp.At(pose.RightShoulder))
	hipMid := pose.Midpoint(kp.At(pose.LeftHip), kp.At(pose.RightHip))
	return pose.VerticalAngleDeg(hipMid, shoulderMid)
}

// hipBelowKnee reports whether the hip midpoint sits below the knee midpoint
// by at least marginRatio of leg length. Nil when the relation cannot be
// determined. Image coordinates: below means larger Y.
func hipBelowKnee(kp pose.Keypoints, marginRatio float64) *bool {
	hipMid := pose.Midpoint(kp.At(pose.LeftHip), kp.At(pose.RightHip))
	kneeMid := pose.Midpoint(kp.At(pose.LeftKnee), kp.At(pose.RightKnee))
	if hipMid == nil || kneeMid == nil {
		return nil
	}
	legLen := kp.LegLength()
	if legLen < 1e-6 {
		return nil
	}
	below := hipMid.Y >= kneeMid.Y+marginRatio*legLen
	return &below
}

// depthOK requires parallel flexion, plus the hip-below-knee check when it
// is determinable. With the relation unknown the flexion threshold stands
// alone.
func depthOK(flexion *float64, hipBelow *bool, minFlexion float64) *bool {
	if flexion == nil {
		return nil
	}
	ok := *flexion >= minFlexion
	if ok && hipBelow != nil {
		ok = *hipBelow
	}
	return &ok
}

func trunkOK(trunk *float64, baseline *Baseline, cfg Config) *bool {
	if trunk == nil {
		return nil
	}
	threshold := cfg.MaxTrunkAngleDeg
	if baseline != nil && baseline.TrunkAngleDeg != nil {
		threshold = math.Min(threshold, *baseline.TrunkAngleDeg+cfg.TrunkDeltaDeg)
	}
	ok := *trunk <= threshold
	return &ok
}

// IsStanding reports whether the frame's knee flexion is below the standing
// ceiling, marking it usable for calibration.
func (m Metrics) IsStanding(cfg Config) bool {
	return m.KneeFlexionDeg != nil && *m.KneeFlexionDeg < cfg.StandingMaxFlexionDeg
}
