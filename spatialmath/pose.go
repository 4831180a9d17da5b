package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a rigid transform: a position in metres plus an orientation.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

type pose struct {
	point       r3.Vector
	orientation Orientation
}

// NewZeroPose returns the identity pose.
func NewZeroPose() Pose {
	return &pose{point: r3.Vector{}, orientation: NewZeroOrientation()}
}

// NewPose builds a pose from a position and an orientation. A nil
// orientation is treated as the identity rotation.
func NewPose(point r3.Vector, o Orientation) Pose {
	if o == nil {
		o = NewZeroOrientation()
	}
	return &pose{point: point, orientation: o}
}

// NewPoseFromQuaternion builds a pose from a position and a scalar-first
// unit quaternion (w, x, y, z). q is normalized if needed.
func NewPoseFromQuaternion(x, y, z, w, qx, qy, qz float64) Pose {
	return &pose{
		point:       r3.Vector{X: x, Y: y, Z: z},
		orientation: NewOrientationFromQuaternion(quatNormalize(quat.Number{Real: w, Imag: qx, Jmag: qy, Kmag: qz})),
	}
}

// NewPoseFromRPY builds a pose from a position and fixed-axis roll-pitch-yaw
// angles in radians (see EulerAngles), matching RLLKinFrame::setRPY in the reference
// kinematics core.
func NewPoseFromRPY(x, y, z, roll, pitch, yaw float64) Pose {
	e := &EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw}
	return &pose{point: r3.Vector{X: x, Y: y, Z: z}, orientation: NewOrientationFromQuaternion(e.Quaternion())}
}

func (p *pose) Point() r3.Vector {
	return p.point
}

func (p *pose) Orientation() Orientation {
	return p.orientation
}

// Compose returns the pose representing applying b in a's frame, i.e. a*b.
func Compose(a, b Pose) Pose {
	aRM := a.Orientation().RotationMatrix()
	rotatedB := aRM.MulVec(b.Point())
	newPoint := a.Point().Add(rotatedB)
	newQuat := quat.Mul(a.Orientation().Quaternion(), b.Orientation().Quaternion())
	return &pose{point: newPoint, orientation: NewOrientationFromQuaternion(quatNormalize(newQuat))}
}

// Invert returns the pose p^-1 such that Compose(p, Invert(p)) is the
// identity pose.
func Invert(p Pose) Pose {
	qInv := quat.Conj(p.Orientation().Quaternion())
	rm := QuatToRotationMatrix(qInv)
	newPoint := rm.MulVec(p.Point()).Mul(-1)
	return &pose{point: newPoint, orientation: NewOrientationFromQuaternion(qInv)}
}

// PoseAlmostEqual reports whether two poses are within tol in both position
// (metres) and orientation.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	d := a.Point().Sub(b.Point()).Norm()
	return d <= tol && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}
