package pose

// SmoothEMA applies one step of exponential smoothing to a keypoint set,
// blending current against previous with the given alpha. It is a
// pre-processing utility for raw estimator jitter, not part of the rep
// engine itself. When previous is missing or has a different length the
// current set is returned unchanged. Landmarks missing on either side pass
// through from current.
func SmoothEMA(current, previous Keypoints, alpha float64) Keypoints {
	if previous == nil || len(previous) != len(current) {
		return current
	}
	out := make(Keypoints, len(current))
	for i, curr := range current {
		prev := previous[i]
		if curr == nil || prev == nil {
			out[i] = curr
			continue
		}
		out[i] = &Point{
			X: alpha*curr.X + (1-alpha)*prev.X,
			Y: alpha*curr.Y + (1-alpha)*prev.Y,
		}
	}
	return out
}
