package kinematics

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/Rish619/lbr-redundant-ik/spatialmath"
)

// singularityAxisToleranceDeg is the angular margin, in degrees, within
// which the shoulder-wrist axis is treated as collinear with a pivot
// rotation axis for the purposes of checkAxisSingularities.
const singularityAxisToleranceDeg = 5.0

// Forward computes the end-effector pose for a complete joint vector by
// composing the seven DH link transforms, following the reference core's
// forward_kinematics chain construction.
func Forward(q JointVector, limbs LimbLengths) spatialmath.Pose {
	frames := [7]*frame{
		newDHFrame(0, q[0], limbs.Base, -math.Pi/2),
		newDHFrame(0, q[1], 0, math.Pi/2),
		newDHFrame(0, q[2], limbs.UpperArm, math.Pi/2),
		newDHFrame(0, q[3], 0, -math.Pi/2),
		newDHFrame(0, q[4], limbs.Forearm, -math.Pi/2),
		newDHFrame(0, q[5], 0, math.Pi/2),
		newDHFrame(0, q[6], limbs.Flange, 0),
	}
	acc := identityFrame()
	for _, f := range frames {
		acc = acc.compose(f)
	}
	return acc.pose()
}

// ComputeArmAngle derives the arm angle psi and global configuration that a
// concrete joint vector realizes, by rebuilding the same shoulder-wrist
// geometry the coefficient builder uses and measuring the rotation, about
// the shoulder-wrist axis, between the psi=0 reference elbow direction and
// q's actual elbow direction.
func ComputeArmAngle(q JointVector, limbs LimbLengths) (psi float64, gc GlobalConfig, status Status) {
	pose := Forward(q, limbs)
	g, status := buildGeometry(pose, limbs)
	if status.IsError() {
		return 0, 0, status
	}

	s1, c1 := math.Sincos(q[1])
	dirActual := r3.Vector{X: math.Cos(q[0]) * s1, Y: math.Sin(q[0]) * s1, Z: c1}

	sinPsi := g.axis.Dot(g.refDir.Cross(dirActual))
	cosPsi := g.refDir.Dot(dirActual)
	psi = math.Atan2(sinPsi, cosPsi)

	shoulderSign := kSign(math.Sin(q[1]))
	wristSign := kSign(math.Sin(q[5]))
	elbowSign := kSign(q[3])
	gc = GCFromSigns(shoulderSign, elbowSign, wristSign)

	return psi, gc, OK()
}

// checkAxisSingularities reports whether the shoulder-wrist axis lies
// within singularityAxisToleranceDeg of the base Z axis, the vertical
// extension posture where the shoulder/elbow pivots lose a degree of
// freedom. buildGeometry calls this right after the reach-envelope check,
// so every Forward/Inverse path that builds geometry for a pose inherits
// the guard.
func checkAxisSingularities(g geometry) Status {
	tol := singularityAxisToleranceDeg * math.Pi / 180
	angleToVertical := math.Acos(clamp(math.Abs(g.axis.Z), -1, 1))
	if angleToVertical < tol {
		return NewStatus(TargetTooCloseToSingularity, "shoulder-wrist axis nearly aligned with base axis")
	}
	return OK()
}
