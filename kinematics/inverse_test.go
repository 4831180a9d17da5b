package kinematics

import (
	"context"
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/Rish619/lbr-redundant-ik/spatialmath"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	limbs := lbrIiwaLimbs()
	limits := lbrIiwaLimits()
	e := NewEngine(limbs, nil)
	err := e.SetJointLimits(limits.Lower, limits.Upper, limits.VMax, limits.AMax)
	test.That(t, err, test.ShouldBeNil)
	return e
}

// TestInverseResolvePsiReachesGoalPose mirrors example_usage.cpp's first
// call: a target pose reached from a single-entry seed using the default
// RESOLVE_PSI / SELECT_BY_SEED options.
func TestInverseResolvePsiReachesGoalPose(t *testing.T) {
	e := newTestEngine(t)
	seed := SeedState{Joints: JointVector{0.0, 0.03, 0.0, -math.Pi / 2, 0.0, math.Pi / 2, 0.0}}
	pose := spatialmath.NewPoseFromRPY(0.5, -0.2, 0.2, 0.0, math.Pi, math.Pi/2)

	opts := NewDefaultOptions()
	opts.JointVelocityScalingFactor = 0.4
	opts.JointAccelerationScalingFactor = 0.4
	opts.DeltaT = 1.0 // large delta_t so the scaler does not clip this single-shot test

	solutions, status := e.Inverse(context.Background(), pose, seed, opts)
	test.That(t, status.IsError(), test.ShouldBeFalse)
	test.That(t, len(solutions) > 0, test.ShouldBeTrue)

	best := solutions[0]
	test.That(t, best.Joints.WithinLimits(e.limits.Lower, e.limits.Upper), test.ShouldBeTrue)

	fwd, fstatus := e.Forward(best.Joints)
	test.That(t, fstatus.IsError(), test.ShouldBeFalse)
	test.That(t, spatialmath.PoseAlmostEqual(fwd.Pose, pose, 1e-4), test.ShouldBeTrue)
}

// TestInverseExactPsiFixedArmAngle mirrors example_usage.cpp's second call:
// a fixed arm angle request under ARM_ANGLE_FIXED-equivalent ExactPsi mode.
func TestInverseExactPsiFixedArmAngle(t *testing.T) {
	e := newTestEngine(t)
	seed := SeedState{Joints: JointVector{0.0, 0.03, 0.0, -math.Pi / 2, 0.0, math.Pi / 2, 0.0}}
	pose := spatialmath.NewPoseFromRPY(0.5, -0.2, 0.2, 0.0, math.Pi, math.Pi/2)

	opts := NewDefaultOptions()
	opts.PositionIKMode = ExactPsi
	opts.TargetArmAngle = math.Pi / 4

	sol, status := e.InverseArmAngle(context.Background(), pose, seed, opts.TargetArmAngle, opts)
	test.That(t, status.Severity(), test.ShouldNotEqual, SeverityError)
	test.That(t, math.Abs(sol.Psi-opts.TargetArmAngle) < 1e-6 || status.Code() == ArmAngleNotInSameInterval, test.ShouldBeTrue)
}

// TestInverseKeepCurrentGCRestrictsToSeedConfiguration mirrors
// example_usage.cpp's third call: KEEP_CURRENT_GLOBAL_CONFIG.
func TestInverseKeepCurrentGCRestrictsToSeedConfiguration(t *testing.T) {
	e := newTestEngine(t)
	seed := SeedState{Joints: JointVector{0.0, 0.03, 0.0, -math.Pi / 2, 0.0, math.Pi / 2, 0.0}}
	pose := spatialmath.NewPoseFromRPY(0.5, -0.2, 0.2, 0.0, math.Pi, math.Pi/2)

	_, seedGC, status := seed.SeedArmAngle(e.limbs)
	test.That(t, status.IsError(), test.ShouldBeFalse)

	opts := NewDefaultOptions()
	opts.GlobalConfigurationMode = KeepCurrentGC

	solutions, status := e.Inverse(context.Background(), pose, seed, opts)
	test.That(t, status.IsError(), test.ShouldBeFalse)
	for _, sol := range solutions {
		test.That(t, sol.GC == seedGC || sol.GC == seedGC.WithElbowFlipped(), test.ShouldBeTrue)
	}
}

func TestInverseReturnAllGCSortsByDistance(t *testing.T) {
	e := newTestEngine(t)
	seed := SeedState{Joints: JointVector{0.0, 0.03, 0.0, -math.Pi / 2, 0.0, math.Pi / 2, 0.0}}
	pose := spatialmath.NewPoseFromRPY(0.5, -0.2, 0.2, 0.0, math.Pi, math.Pi/2)

	opts := NewDefaultOptions()
	opts.GlobalConfigurationMode = ReturnAllGC

	solutions, status := e.Inverse(context.Background(), pose, seed, opts)
	test.That(t, status.IsError(), test.ShouldBeFalse)
	test.That(t, len(solutions) > 0, test.ShouldBeTrue)

	for i := 1; i < len(solutions); i++ {
		di := WeightedSquaredDistance(solutions[i-1].Joints, seed.Joints, opts.JointDistanceWeights)
		dj := WeightedSquaredDistance(solutions[i].Joints, seed.Joints, opts.JointDistanceWeights)
		test.That(t, di <= dj+ZeroRoundingTol, test.ShouldBeTrue)
	}
}

// TestInverseReturnAllGCYieldsEightDistinctConfigurations mirrors the "all
// GCs" scenario: a nominal reach pose well inside the workspace, solved
// with ReturnAllGC, has exactly 8 solutions, one per global configuration,
// and every one of them round-trips back to the target pose.
func TestInverseReturnAllGCYieldsEightDistinctConfigurations(t *testing.T) {
	e := newTestEngine(t)
	seed := SeedState{Joints: JointVector{0.0, 0.03, 0.0, -math.Pi / 2, 0.0, math.Pi / 2, 0.0}}
	pose := spatialmath.NewPoseFromRPY(0.5, -0.2, 0.2, 0.0, math.Pi, math.Pi/2)

	opts := NewDefaultOptions()
	opts.GlobalConfigurationMode = ReturnAllGC

	solutions, status := e.Inverse(context.Background(), pose, seed, opts)
	test.That(t, status.IsError(), test.ShouldBeFalse)
	test.That(t, len(solutions), test.ShouldEqual, 8)

	seen := map[GlobalConfig]bool{}
	for _, sol := range solutions {
		test.That(t, seen[sol.GC], test.ShouldBeFalse)
		seen[sol.GC] = true

		fwd, fstatus := e.Forward(sol.Joints)
		test.That(t, fstatus.IsError(), test.ShouldBeFalse)
		test.That(t, spatialmath.PoseAlmostEqual(fwd.Pose, pose, 1e-4), test.ShouldBeTrue)
	}
}

func TestInverseRejectsUnreachablePose(t *testing.T) {
	e := newTestEngine(t)
	seed := SeedState{Joints: JointVector{0.0, 0.03, 0.0, -math.Pi / 2, 0.0, math.Pi / 2, 0.0}}
	maxReach, _ := e.limbs.Reach()
	tooFar := spatialmath.NewPoseFromRPY(0, 0, e.limbs.Base+maxReach+1, 0, 0, 0)

	_, status := e.Inverse(context.Background(), tooFar, seed, NewDefaultOptions())
	test.That(t, status.IsError(), test.ShouldBeTrue)
	test.That(t, status.Code(), test.ShouldEqual, JointLimitViolated)
}

func TestSetJointLimitsRejectsInconsistentBounds(t *testing.T) {
	e := NewEngine(lbrIiwaLimbs(), nil)
	lower := JointVector{1, 0, 0, 0, 0, 0, 0}
	upper := JointVector{-1, 0, 0, 0, 0, 0, 0}
	vMax := JointVector{1, 1, 1, 1, 1, 1, 1}
	aMax := JointVector{1, 1, 1, 1, 1, 1, 1}

	err := e.SetJointLimits(lower, upper, vMax, aMax)
	test.That(t, err, test.ShouldNotBeNil)
}
