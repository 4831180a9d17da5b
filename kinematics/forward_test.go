package kinematics

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/Rish619/lbr-redundant-ik/spatialmath"
)

func lbrIiwaLimbs() LimbLengths {
	return LimbLengths{Base: 0.34, UpperArm: 0.4, Forearm: 0.4, Flange: 0.126}
}

func lbrIiwaLimits() JointLimits {
	lower := JointVector{-2.93215, -2.05949, -2.93215, -2.05949, -2.93215, -2.05949, -3.01942}
	upper := JointVector{2.93215, 2.05949, 2.93215, 2.05949, 2.93215, 2.05949, 3.01942}
	vMax := JointVector{1.7104, 1.7104, 1.7453, 2.2689, 2.4434, 3.1415, 3.1415}
	aMax := JointVector{5.4444, 5.4444, 5.5555, 7.2222, 7.7777, 10.0, 10.0}
	return JointLimits{Lower: lower, Upper: upper, VMax: vMax, AMax: aMax}
}

func TestForwardThenComputeArmAngleRoundTrips(t *testing.T) {
	limbs := lbrIiwaLimbs()
	q := JointVector{0.0, 0.4, 0.0, -math.Pi / 2, 0.0, math.Pi / 2, 0.0}

	pose := Forward(q, limbs)

	psi, gc, status := ComputeArmAngle(q, limbs)
	test.That(t, status.IsError(), test.ShouldBeFalse)

	c, status := buildCoefficients(pose, limbs, gc)
	test.That(t, status.IsError(), test.ShouldBeFalse)

	rebuilt := c.JointVectorAt(psi)
	rebuiltPose := Forward(rebuilt, limbs)

	test.That(t, spatialmath.PoseAlmostEqual(pose, rebuiltPose, 1e-6), test.ShouldBeTrue)
}

func TestForwardRejectsNonFiniteInput(t *testing.T) {
	limbs := lbrIiwaLimbs()
	engine := NewEngine(limbs, nil)
	test.That(t, engine.SetJointLimits(lbrIiwaLimits().Lower, lbrIiwaLimits().Upper, lbrIiwaLimits().VMax, lbrIiwaLimits().AMax), test.ShouldBeNil)

	_, status := engine.Forward(JointVector{math.NaN(), 0, 0, 0, 0, 0, 0})
	test.That(t, status.Code(), test.ShouldEqual, GeneralError)
}

func TestReachEnvelopeRejectsTooFar(t *testing.T) {
	limbs := lbrIiwaLimbs()
	maxReach, _ := limbs.Reach()
	farPose := spatialmath.NewPoseFromRPY(0, 0, limbs.Base+maxReach+1, 0, 0, 0)
	_, status := buildGeometry(farPose, limbs)
	test.That(t, status.Code(), test.ShouldEqual, JointLimitViolated)
}

// TestVerticalExtensionPoseReportsSingularity mirrors the vertical
// extension scenario: a pose directly above the shoulder, within reach,
// leaves the shoulder-wrist axis collinear with the base Z axis.
func TestVerticalExtensionPoseReportsSingularity(t *testing.T) {
	limbs := lbrIiwaLimbs()
	above := spatialmath.NewPoseFromRPY(0, 0, limbs.Base+0.5, 0, 0, 0)
	_, status := buildGeometry(above, limbs)
	test.That(t, status.Code(), test.ShouldEqual, TargetTooCloseToSingularity)
}
