package reps

import (
	"math"

	"github.com/formlab-data/rep.report/internal/pose"
)

// Synthetic squat kinematics shared by the batch and detector tests. A frame
// is parameterized by depth in [0, 1]: the shank and thigh rotate with depth
// so knee flexion is depth*140 degrees, the hip sinks below the knee near
// full depth, and the trunk stays vertical.

const (
	leadFrames = 24 // standing frames before the first cycle
	rampFrames = 12 // frames per descent and per ascent
	holdFrames = 8  // standing frames between cycles
	tailFrames = 12 // standing frames after the last cycle
)

func squatFrame(depth float64) pose.Keypoints {
	kp := make(pose.Keypoints, pose.NumLandmarks)
	for i := range kp {
		kp[i] = &pose.Point{X: 300, Y: 100}
	}
	set := func(idx int, x, y float64) { kp[idx] = &pose.Point{X: x, Y: y} }

	const seg = 100.0
	beta := depth * 40 * math.Pi / 180
	gamma := depth * 100 * math.Pi / 180

	leg := func(hip, knee, ankle, heel, toe int, ankleX float64) (float64, float64) {
		kneeX := ankleX + seg*math.Sin(beta)
		kneeY := 400 - seg*math.Cos(beta)
		hipX := kneeX - seg*math.Sin(gamma)
		hipY := kneeY - seg*math.Cos(gamma)
		set(ankle, ankleX, 400)
		set(knee, kneeX, kneeY)
		set(hip, hipX, hipY)
		set(heel, ankleX-15, 405)
		set(toe, ankleX+25, 405)
		return hipX, hipY
	}
	lhX, hipY := leg(pose.LeftHip, pose.LeftKnee, pose.LeftAnkle, pose.LeftHeel, pose.LeftFootIndex, 280)
	rhX, _ := leg(pose.RightHip, pose.RightKnee, pose.RightAnkle, pose.RightHeel, pose.RightFootIndex, 320)

	hipMidX := (lhX + rhX) / 2
	set(pose.LeftShoulder, hipMidX-25, hipY-150)
	set(pose.RightShoulder, hipMidX+25, hipY-150)
	set(pose.Nose, hipMidX, hipY-180)
	set(pose.LeftElbow, hipMidX-30, hipY-110)
	set(pose.RightElbow, hipMidX+30, hipY-110)
	set(pose.LeftWrist, hipMidX-35, hipY-70)
	set(pose.RightWrist, hipMidX+35, hipY-70)
	return kp
}

// squatSeries builds a recorded session: a standing lead-in, then the given
// number of full squat cycles separated by standing holds. Small
// deterministic jitter keeps the standing plateaus from being perfectly
// flat, as real tracking never is. Returns the frames and the apex (deepest
// frame) index of each cycle.
func squatSeries(cycles int) ([]pose.Keypoints, []int) {
	var depths []float64
	var apexes []int

	for i := 0; i < leadFrames; i++ {
		depths = append(depths, 0)
	}
	for c := 0; c < cycles; c++ {
		for j := 1; j <= rampFrames; j++ {
			depths = append(depths, float64(j)/rampFrames)
		}
		apexes = append(apexes, len(depths)-1)
		for j := rampFrames - 1; j >= 0; j-- {
			depths = append(depths, float64(j)/rampFrames)
		}
		for j := 0; j < holdFrames; j++ {
			depths = append(depths, 0)
		}
	}
	for i := 0; i < tailFrames; i++ {
		depths = append(depths, 0)
	}

	series := make([]pose.Keypoints, len(depths))
	for i, d := range depths {
		series[i] = squatFrame(d + 0.005*math.Sin(1.3*float64(i)))
	}
	return series, apexes
}
