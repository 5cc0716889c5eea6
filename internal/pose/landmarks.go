// Package pose defines the keypoint layout produced by the external pose
// estimator and the pure geometry used to derive joint measurements from it.
package pose

import "math"

// Landmark indices following the MediaPipe Pose convention. The engine only
// reads the subset below, but frames always carry the full 33-point set.
const (
	Nose           = 0
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// Point is a 2D landmark position in image pixel coordinates.
// Y grows downward, so a lower body position has a larger Y.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Keypoints is one frame's landmark set. A nil slice means no pose was
// detected this frame; individual entries may be nil when the estimator
// could not place that landmark.
type Keypoints []*Point

// At returns the landmark at idx, or nil if the set or the landmark is
// missing or idx is out of range.
func (k Keypoints) At(idx int) *Point {
	if k == nil || idx < 0 || idx >= len(k) {
		return nil
	}
	return k[idx]
}

// requiredLandmarks are the joints a frame must carry for angle and signal
// computation to be meaningful.
var requiredLandmarks = []int{
	LeftShoulder, RightShoulder,
	LeftHip, RightHip,
	LeftKnee, RightKnee,
	LeftAnkle, RightAnkle,
}

// Valid reports whether the keypoint set has all required landmarks and
// plausible limb proportions. A frame failing this check is treated as
// "no pose" by the detectors.
func (k Keypoints) Valid() bool {
	if k == nil {
		return false
	}
	for _, idx := range requiredLandmarks {
		if k.At(idx) == nil {
			return false
		}
	}
	lh, rh := k.At(LeftHip), k.At(RightHip)
	la, ra := k.At(LeftAnkle), k.At(RightAnkle)
	leftLeg := math.Hypot(lh.X-la.X, lh.Y-la.Y)
	rightLeg := math.Hypot(rh.X-ra.X, rh.Y-ra.Y)
	if leftLeg < 1e-3 || rightLeg < 1e-3 {
		return false
	}
	ratio := leftLeg / rightLeg
	return ratio >= 0.5 && ratio <= 2.0
}
