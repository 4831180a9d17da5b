package kinematics

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/Rish619/lbr-redundant-ik/spatialmath"
)

// frame is a single Denavit-Hartenberg link transform: a rotation plus a
// translation, composed left-to-right along a kinematic chain. It mirrors
// the reference core's DH frame type, including the exact trig shortcuts
// for the link twist alpha (almost always one of 0, +pi/2, -pi/2 for this
// geometry) so repeated composition does not accumulate floating-point
// error from evaluating sin/cos of those angles numerically.
type frame struct {
	rot *spatialmath.RotationMatrix
	pos r3.Vector
}

// newDHFrame builds the single-link transform for DH parameters (a, theta,
// d, alpha): link length a, joint angle theta, link offset d, link twist
// alpha.
func newDHFrame(a, theta, d, alpha float64) *frame {
	sinT, cosT := math.Sin(theta), math.Cos(theta)
	sinA, cosA := dhTrig(alpha)

	rm := spatialmath.NewRotationMatrixFromRows(
		r3.Vector{X: cosT, Y: -sinT * cosA, Z: sinT * sinA},
		r3.Vector{X: sinT, Y: cosT * cosA, Z: -cosT * sinA},
		r3.Vector{X: 0, Y: sinA, Z: cosA},
	)
	pos := r3.Vector{X: a * cosT, Y: a * sinT, Z: d}
	return &frame{rot: rm, pos: pos}
}

// dhTrig returns exact sin/cos for the handful of twist angles this
// geometry ever uses, falling back to math.Sin/Cos for anything else.
func dhTrig(alpha float64) (sin, cos float64) {
	switch {
	case kZero(alpha):
		return 0, 1
	case kZero(alpha - math.Pi/2):
		return 1, 0
	case kZero(alpha + math.Pi/2):
		return -1, 0
	default:
		return math.Sin(alpha), math.Cos(alpha)
	}
}

// compose returns f applied first, then g: the standard chain-of-frames
// composition f*g.
func (f *frame) compose(g *frame) *frame {
	return &frame{
		rot: f.rot.Mul(g.rot),
		pos: f.pos.Add(f.rot.MulVec(g.pos)),
	}
}

// pose converts the accumulated frame into a spatialmath.Pose.
func (f *frame) pose() spatialmath.Pose {
	q := spatialmath.RotationMatrixToQuat(f.rot)
	return spatialmath.NewPose(f.pos, spatialmath.NewOrientationFromQuaternion(q))
}

// identityFrame returns the identity transform.
func identityFrame() *frame {
	return &frame{rot: spatialmath.NewRotationMatrixFromRows(
		r3.Vector{X: 1, Y: 0, Z: 0},
		r3.Vector{X: 0, Y: 1, Z: 0},
		r3.Vector{X: 0, Y: 0, Z: 1},
	), pos: r3.Vector{}}
}
