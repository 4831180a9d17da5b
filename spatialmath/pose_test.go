package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestQuaternionRotationMatrixRoundTrip(t *testing.T) {
	cases := []*EulerAngles{
		{Roll: 0, Pitch: 0, Yaw: 0},
		{Roll: math.Pi / 4, Pitch: math.Pi / 6, Yaw: math.Pi / 3},
		{Roll: 0, Pitch: math.Pi, Yaw: math.Pi / 2},
	}
	for _, e := range cases {
		q := e.Quaternion()
		rm := QuatToRotationMatrix(q)
		back := RotationMatrixToQuat(rm)
		test.That(t, QuaternionAlmostEqual(q, back, 1e-6), test.ShouldBeTrue)
	}
}

func TestComposeThenInvertIsIdentity(t *testing.T) {
	a := NewPoseFromRPY(1, 2, 3, 0.1, 0.2, 0.3)
	inv := Invert(a)
	identity := Compose(a, inv)
	test.That(t, PoseAlmostEqual(identity, NewZeroPose(), 1e-6), test.ShouldBeTrue)
}

func TestOrientationVectorRoundTrip(t *testing.T) {
	ov := &OrientationVector{OX: 0, OY: 0, OZ: 1, Theta: math.Pi / 3}
	q := ov.Quaternion()
	back := QuatToOV(q)
	test.That(t, back.OX, test.ShouldAlmostEqual, ov.OX)
	test.That(t, back.OY, test.ShouldAlmostEqual, ov.OY)
	test.That(t, back.OZ, test.ShouldAlmostEqual, ov.OZ)
	test.That(t, back.Theta, test.ShouldAlmostEqual, ov.Theta)
}

func TestRotationMatrixMulVecMatchesComposedRotation(t *testing.T) {
	rm := QuatToRotationMatrix(axisAngleToQuat(0, 0, 1, math.Pi/2))
	v := r3.Vector{X: 1, Y: 0, Z: 0}
	rotated := rm.MulVec(v)
	test.That(t, rotated.X, test.ShouldAlmostEqual, 0)
	test.That(t, rotated.Y, test.ShouldAlmostEqual, 1)
	test.That(t, rotated.Z, test.ShouldAlmostEqual, 0)
}
