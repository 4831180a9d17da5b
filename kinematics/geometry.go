package kinematics

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/Rish619/lbr-redundant-ik/spatialmath"
)

// referencePlaneNormal is the world direction used to pick the psi=0
// reference plane when the shoulder-wrist axis is not already parallel to
// it. The vertical world axis gives an elbow-up reference posture for the
// common case of a base-mounted arm reaching outward.
var referencePlaneNormal = r3.Vector{X: 0, Y: 0, Z: 1}

// fallbackPlaneNormal is substituted when the shoulder-wrist axis is
// (near) parallel to referencePlaneNormal, which would otherwise leave the
// reference plane undefined.
var fallbackPlaneNormal = r3.Vector{X: 1, Y: 0, Z: 0}

// geometry captures everything the coefficient builder needs for a single
// target pose, independent of global configuration: the shoulder and
// wrist centers, the axis between them, and the psi=0 reference direction
// toward the elbow.
type geometry struct {
	shoulder r3.Vector
	wrist    r3.Vector
	axis     r3.Vector // unit vector shoulder -> wrist
	distance float64
	refDir   r3.Vector // unit vector shoulder -> psi=0 reference elbow
	cosPhi   float64   // axis . refDir
}

// buildGeometry computes the shoulder and wrist centers for pose under
// limbs, and the reference (psi=0) elbow direction. It returns a non-OK
// status if the target is outside the arm's reach envelope or the
// shoulder and wrist centers coincide.
func buildGeometry(pose spatialmath.Pose, limbs LimbLengths) (geometry, Status) {
	var g geometry
	g.shoulder = r3.Vector{X: 0, Y: 0, Z: limbs.Base}

	rm := pose.Orientation().RotationMatrix()
	flangeZ := rm.Col(2)
	g.wrist = pose.Point().Sub(flangeZ.Mul(limbs.Flange))

	sw := g.wrist.Sub(g.shoulder)
	g.distance = sw.Norm()
	if kZero(g.distance) {
		return g, NewStatus(TargetTooCloseToSingularity, "shoulder and wrist centers coincide")
	}
	g.axis = sw.Mul(1.0 / g.distance)

	maxReach, minReach := limbs.Reach()
	if kGreaterThan(g.distance, maxReach) {
		return g, NewStatus(JointLimitViolated, "target position is too far: exceeds maximum reach")
	}
	if kSmallerThan(g.distance, minReach) {
		return g, NewStatus(JointLimitViolated, "target position is too close: inside minimum reach")
	}
	if status := checkAxisSingularities(g); status.IsError() {
		return g, status
	}

	planar := g.axis.Cross(referencePlaneNormal)
	normalUsed := referencePlaneNormal
	if kZero(planar.Norm()) {
		normalUsed = fallbackPlaneNormal
		planar = g.axis.Cross(normalUsed)
	}
	up := normalUsed.Sub(g.axis.Mul(normalUsed.Dot(g.axis)))
	upNorm := up.Norm()
	if kZero(upNorm) {
		return g, NewStatus(TargetTooCloseToSingularity, "reference plane is undefined for this pose")
	}
	vref := up.Mul(1.0 / upNorm)

	cosPhi, status := elbowAxisCosine(limbs, g.distance)
	if status.IsError() {
		return g, status
	}
	g.cosPhi = cosPhi
	sinPhi := kSqrt(1 - cosPhi*cosPhi)
	g.refDir = g.axis.Mul(cosPhi).Add(vref.Mul(sinPhi))

	return g, OK()
}

// elbowAxisCosine returns cos(phi), the angle at the shoulder between the
// shoulder-wrist axis and the shoulder-elbow segment, via the law of
// cosines on the upper arm, forearm, and shoulder-wrist distance.
func elbowAxisCosine(limbs LimbLengths, distance float64) (float64, Status) {
	l1, l2 := limbs.UpperArm, limbs.Forearm
	if kZero(l1) || kZero(distance) {
		return 0, NewStatus(GeneralError, "degenerate upper arm length")
	}
	v := (l1*l1 + distance*distance - l2*l2) / (2 * l1 * distance)
	return clamp(v, -1, 1), OK()
}

// elbowAngle returns the signed elbow joint value (J4) for the given
// shoulder-wrist distance and elbow global-configuration sign, via the law
// of cosines on the interior angle of the upper-arm/forearm triangle.
func elbowAngle(limbs LimbLengths, distance float64, elbowSign float64) float64 {
	l1, l2 := limbs.UpperArm, limbs.Forearm
	v := clamp((l1*l1+l2*l2-distance*distance)/(2*l1*l2), -1, 1)
	return elbowSign * (math.Pi - kAcos(v))
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
