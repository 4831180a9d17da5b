package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// quaternion is a concrete Orientation backed by a unit quaternion in
// scalar-first form (Real, Imag, Jmag, Kmag), matching gonum's field order.
type quaternion quat.Number

// NewOrientationFromQuaternion wraps a quat.Number as an Orientation. The
// quaternion is expected to already be unit-norm; callers that build one
// from raw components should normalize first.
func NewOrientationFromQuaternion(q quat.Number) Orientation {
	qq := quaternion(q)
	return &qq
}

func (q *quaternion) Quaternion() quat.Number {
	return quat.Number(*q)
}

func (q *quaternion) AxisAngles() *R4AA {
	return QuatToR4AA(quat.Number(*q))
}

func (q *quaternion) OrientationVectorRadians() *OrientationVector {
	return QuatToOV(quat.Number(*q))
}

func (q *quaternion) OrientationVectorDegrees() *OrientationVectorDegrees {
	return QuatToOVD(quat.Number(*q))
}

func (q *quaternion) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(quat.Number(*q))
}

func (q *quaternion) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(quat.Number(*q))
}

// QuaternionAlmostEqual reports whether two quaternions represent
// approximately the same rotation, accounting for the double-cover (q and
// -q encode the same orientation).
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	d1 := quatNormDiff(a, b)
	negB := quat.Number{Real: -b.Real, Imag: -b.Imag, Jmag: -b.Jmag, Kmag: -b.Kmag}
	d2 := quatNormDiff(a, negB)
	return d1 <= tol || d2 <= tol
}

func quatNormDiff(a, b quat.Number) float64 {
	dr := a.Real - b.Real
	di := a.Imag - b.Imag
	dj := a.Jmag - b.Jmag
	dk := a.Kmag - b.Kmag
	return math.Sqrt(dr*dr + di*di + dj*dj + dk*dk)
}

func quatNormalize(q quat.Number) quat.Number {
	n := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Number{Real: q.Real / n, Imag: q.Imag / n, Jmag: q.Jmag / n, Kmag: q.Kmag / n}
}

// axisAngleToQuat builds a unit quaternion from an axis (not required to be
// normalized) and an angle in radians.
func axisAngleToQuat(ax, ay, az, theta float64) quat.Number {
	norm := math.Sqrt(ax*ax + ay*ay + az*az)
	if norm < 1e-12 {
		return quat.Number{Real: 1}
	}
	s := math.Sin(theta / 2)
	return quat.Number{
		Real: math.Cos(theta / 2),
		Imag: ax / norm * s,
		Jmag: ay / norm * s,
		Kmag: az / norm * s,
	}
}

// QuatToR4AA converts a unit quaternion to an R4 axis-angle.
func QuatToR4AA(q quat.Number) *R4AA {
	q = quatNormalize(q)
	theta := 2 * math.Acos(clamp(q.Real, -1, 1))
	s := math.Sqrt(1 - q.Real*q.Real)
	if s < 1e-12 {
		return &R4AA{Theta: theta, RX: 0, RY: 0, RZ: 1}
	}
	return &R4AA{Theta: theta, RX: q.Imag / s, RY: q.Jmag / s, RZ: q.Kmag / s}
}

// mapAngleInPiRange wraps an angle into (-pi, pi].
func mapAngleInPiRange(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
