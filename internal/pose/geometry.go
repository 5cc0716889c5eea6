package pose

import "math"

// degeneracyEps guards zero-length vectors in angle computation.
const degeneracyEps = 1e-6

// Midpoint returns the midpoint of a and b, or nil if either is missing.
func Midpoint(a, b *Point) *Point {
	if a == nil || b == nil {
		return nil
	}
	return &Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// JointAngleDeg returns the angle at b of the triangle a-b-c in degrees,
// or nil when a point is missing or either limb vector is degenerate.
func JointAngleDeg(a, b, c *Point) *float64 {
	if a == nil || b == nil || c == nil {
		return nil
	}
	bax, bay := a.X-b.X, a.Y-b.Y
	bcx, bcy := c.X-b.X, c.Y-b.Y
	denom := math.Hypot(bax, bay) * math.Hypot(bcx, bcy)
	if denom < degeneracyEps {
		return nil
	}
	cosVal := (bax*bcx + bay*bcy) / denom
	cosVal = math.Max(-1, math.Min(1, cosVal))
	deg := math.Acos(cosVal) * 180 / math.Pi
	return &deg
}

// VerticalAngleDeg returns the angle between the vector from a to b and the
// vertical axis, in degrees. 0 means perfectly vertical. Returns nil when a
// point is missing or the vector is near zero length.
func VerticalAngleDeg(a, b *Point) *float64 {
	if a == nil || b == nil {
		return nil
	}
	dx := b.X - a.X
	dy := b.Y - a.Y
	if math.Abs(dx)+math.Abs(dy) < degeneracyEps {
		return nil
	}
	deg := math.Atan2(math.Abs(dx), math.Abs(dy)) * 180 / math.Pi
	return &deg
}

// Dist returns the Euclidean distance between a and b, or 0 if either is
// missing.
func Dist(a, b *Point) float64 {
	if a == nil || b == nil {
		return 0
	}
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// LegLength returns the anatomical leg length: the hip-knee plus knee-ankle
// segment lengths, averaged over the sides where all three landmarks are
// present. Unlike the straight hip-to-ankle distance this stays constant
// through knee flexion, which makes it a stable normalization scale.
// Returns 0 when neither side is usable.
func (k Keypoints) LegLength() float64 {
	var sum float64
	var sides int
	for _, s := range [][3]int{
		{LeftHip, LeftKnee, LeftAnkle},
		{RightHip, RightKnee, RightAnkle},
	} {
		hip, knee, ankle := k.At(s[0]), k.At(s[1]), k.At(s[2])
		if hip == nil || knee == nil || ankle == nil {
			continue
		}
		sum += Dist(hip, knee) + Dist(knee, ankle)
		sides++
	}
	if sides == 0 {
		return 0
	}
	return sum / float64(sides)
}
