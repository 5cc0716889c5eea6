package biomech

import "github.com/formlab-data/rep.report/internal/pose"

// Anthropometric mass fractions for the 14-segment COM proxy. The fractions
// sum to 1.0; segments with missing landmarks are skipped and the remaining
// weights renormalize implicitly through the accumulated denominator.
const (
	headWeight     = 0.08
	trunkWeight    = 0.50
	upperArmWeight = 0.027
	forearmWeight  = 0.016
	handWeight     = 0.006
	thighWeight    = 0.10
	shankWeight    = 0.046
	footWeight     = 0.014
)

// comProxy approximates the 2D center of mass from weighted body-segment
// midpoints. Returns nil when the total usable weight is negligible.
func comProxy(kp pose.Keypoints) *pose.Point {
	ls, rs := kp.At(pose.LeftShoulder), kp.At(pose.RightShoulder)
	lh, rh := kp.At(pose.LeftHip), kp.At(pose.RightHip)
	le, re := kp.At(pose.LeftElbow), kp.At(pose.RightElbow)
	lw, rw := kp.At(pose.LeftWrist), kp.At(pose.RightWrist)
	lk, rk := kp.At(pose.LeftKnee), kp.At(pose.RightKnee)
	la, ra := kp.At(pose.LeftAnkle), kp.At(pose.RightAnkle)

	shoulderMid := pose.Midpoint(ls, rs)
	hipMid := pose.Midpoint(lh, rh)

	segments := []struct {
		weight float64
		pt     *pose.Point
	}{
		{headWeight, pose.Midpoint(kp.At(pose.Nose), shoulderMid)},
		{trunkWeight, pose.Midpoint(shoulderMid, hipMid)},
		{upperArmWeight, pose.Midpoint(ls, le)},
		{upperArmWeight, pose.Midpoint(rs, re)},
		{forearmWeight, pose.Midpoint(le, lw)},
		{forearmWeight, pose.Midpoint(re, rw)},
		{handWeight, lw},
		{handWeight, rw},
		{thighWeight, pose.Midpoint(lh, lk)},
		{thighWeight, pose.Midpoint(rh, rk)},
		{shankWeight, pose.Midpoint(lk, la)},
		{shankWeight, pose.Midpoint(rk, ra)},
		{footWeight, footMid(kp, pose.LeftHeel, pose.LeftFootIndex, pose.LeftAnkle)},
		{footWeight, footMid(kp, pose.RightHeel, pose.RightFootIndex, pose.RightAnkle)},
	}

	var totalW, sumX, sumY float64
	for _, seg := range segments {
		if seg.pt == nil {
			continue
		}
		totalW += seg.weight
		sumX += seg.weight * seg.pt.X
		sumY += seg.weight * seg.pt.Y
	}
	if totalW < 1e-6 {
		return nil
	}
	return &pose.Point{X: sumX / totalW, Y: sumY / totalW}
}

// footMid is the heel-to-toe midpoint, with the ankle standing in for
// either end when missing.
func footMid(kp pose.Keypoints, heel, toe, ankle int) *pose.Point {
	h := kp.At(heel)
	t := kp.At(toe)
	a := kp.At(ankle)
	if h == nil {
		h = a
	}
	if t == nil {
		t = a
	}
	return pose.Midpoint(h, t)
}

// balance projects the foot-base landmarks onto the horizontal axis and
// locates the COM within that span. Heels and toes define the base, ankles
// are the fallback. Returns (nil, nil) when the COM or a two-point base is
// unavailable or the base has zero width.
func balance(kp pose.Keypoints, com *pose.Point, margin float64) (*float64, *bool) {
	if com == nil {
		return nil, nil
	}
	base := collect(kp, pose.LeftHeel, pose.RightHeel, pose.LeftFootIndex, pose.RightFootIndex)
	if len(base) < 2 {
		base = collect(kp, pose.LeftAnkle, pose.RightAnkle)
	}
	if len(base) < 2 {
		return nil, nil
	}

	baseMin, baseMax := base[0].X, base[0].X
	for _, p := range base[1:] {
		if p.X < baseMin {
			baseMin = p.X
		}
		if p.X > baseMax {
			baseMax = p.X
		}
	}
	span := baseMax - baseMin
	if span < 1e-6 {
		return nil, nil
	}
	center := (baseMin + baseMax) / 2
	offset := (com.X - center) / span
	m := margin * span
	ok := com.X >= baseMin-m && com.X <= baseMax+m
	return &offset, &ok
}

func collect(kp pose.Keypoints, indices ...int) []*pose.Point {
	pts := make([]*pose.Point, 0, len(indices))
	for _, idx := range indices {
		if p := kp.At(idx); p != nil {
			pts = append(pts, p)
		}
	}
	return pts
}
