package kinematics

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestTimeOptimalScaleClampsToOne(t *testing.T) {
	limits := lbrIiwaLimits()
	opts := NewDefaultOptions()
	seed := SeedState{Joints: JointVector{0, 0, 0, 0, 0, 0, 0}}
	tinyStep := JointVector{1e-4, 0, 0, 0, 0, 0, 0}

	alpha, ok := TimeOptimalScale(seed, tinyStep, limits, opts)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, alpha, test.ShouldAlmostEqual, 1.0)
}

func TestTimeOptimalScaleShrinksOversizedStep(t *testing.T) {
	limits := lbrIiwaLimits()
	opts := NewDefaultOptions()
	opts.DeltaT = 0.1
	seed := SeedState{Joints: JointVector{0, 0, 0, 0, 0, 0, 0}}
	bigStep := JointVector{5, 0, 0, 0, 0, 0, 0}

	alpha, ok := TimeOptimalScale(seed, bigStep, limits, opts)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, alpha, test.ShouldBeLessThan, 1.0)

	scaledFirstJoint := alpha * bigStep[0]
	test.That(t, scaledFirstJoint <= limits.VMax[0]*opts.DeltaT+ZeroRoundingTol, test.ShouldBeTrue)
}

func TestTimeOptimalScaleRejectsBelowFloor(t *testing.T) {
	limits := lbrIiwaLimits()
	opts := NewDefaultOptions()
	opts.DeltaT = 1e-6
	seed := SeedState{Joints: JointVector{0, 0, 0, 0, 0, 0, 0}}
	bigStep := JointVector{5, 0, 0, 0, 0, 0, 0}

	_, ok := TimeOptimalScale(seed, bigStep, limits, opts)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestTimeOptimalScaleWidensAccelBudgetFromEstimatedVelocity(t *testing.T) {
	limits := lbrIiwaLimits()
	opts := NewDefaultOptions()
	opts.DeltaT = 0.1
	bigStep := JointVector{5, 0, 0, 0, 0, 0, 0}

	atRest := SeedState{Joints: JointVector{0, 0, 0, 0, 0, 0, 0}}
	previous := JointVector{-0.05, 0, 0, 0, 0, 0, 0}
	moving, status := NewSeedState(previous, atRest.Joints)
	test.That(t, status.IsError(), test.ShouldBeFalse)

	alphaAtRest, ok := TimeOptimalScale(atRest, bigStep, limits, opts)
	test.That(t, ok, test.ShouldBeTrue)
	alphaMoving, ok := TimeOptimalScale(moving, bigStep, limits, opts)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, alphaMoving, test.ShouldBeGreaterThan, alphaAtRest)
}

func TestScalePsiIdempotentAtAlphaOne(t *testing.T) {
	seedPsi := 0.2
	psi := 1.1
	test.That(t, ScalePsi(seedPsi, psi, 1.0), test.ShouldAlmostEqual, psi)
}

func TestScalePsiTakesShortestPathAcrossSeam(t *testing.T) {
	seedPsi := math.Pi - 0.1
	psi := -math.Pi + 0.1
	scaled := ScalePsi(seedPsi, psi, 0.5)
	test.That(t, math.Abs(scaled) > math.Pi-0.2, test.ShouldBeTrue)
}

func TestRankSolutionsByDistanceOrdersNearestFirst(t *testing.T) {
	seed := JointVector{0, 0, 0, 0, 0, 0, 0}
	weights := JointVector{1, 1, 1, 1, 1, 1, 1}
	solutions := Solutions{
		{Joints: JointVector{2, 0, 0, 0, 0, 0, 0}},
		{Joints: JointVector{0.1, 0, 0, 0, 0, 0, 0}},
		{Joints: JointVector{1, 0, 0, 0, 0, 0, 0}},
	}
	rankSolutionsByDistance(seed, solutions, weights)
	test.That(t, solutions[0].Joints[0], test.ShouldAlmostEqual, 0.1)
	test.That(t, solutions[2].Joints[0], test.ShouldAlmostEqual, 2.0)
}
