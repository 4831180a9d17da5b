package kinematics

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestIntervalContainsHandlesWrap(t *testing.T) {
	iv := Interval{Lo: 3.0, Hi: -3.0, Overlapping: true}
	test.That(t, iv.Wraps(), test.ShouldBeTrue)
	test.That(t, iv.Contains(3.1), test.ShouldBeTrue)
	test.That(t, iv.Contains(-3.1), test.ShouldBeTrue)
	test.That(t, iv.Contains(0), test.ShouldBeFalse)
}

func TestFeasibleIntervalsClosestTiesPreferAbove(t *testing.T) {
	fi := FeasibleIntervals{Intervals: []Interval{
		{Lo: -1.0, Hi: -0.5},
		{Lo: 0.5, Hi: 1.0},
	}}
	closest, iv, ok := fi.Closest(0)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, closest, test.ShouldAlmostEqual, 0.5)
	test.That(t, iv.Lo, test.ShouldAlmostEqual, 0.5)
}

func TestMergeSortedBlockedIntervalsSkipsContained(t *testing.T) {
	wide := Interval{Lo: -1, Hi: 1}
	contained := Interval{Lo: -0.2, Hi: 0.2}
	merged := mergeSortedBlockedIntervals([]Interval{wide, contained})
	test.That(t, len(merged), test.ShouldEqual, 1)
	test.That(t, merged[0].Lo, test.ShouldAlmostEqual, -1.0)
	test.That(t, merged[0].Hi, test.ShouldAlmostEqual, 1.0)
}

func TestMergeSortedBlockedIntervalsJoinsOverlapping(t *testing.T) {
	a := Interval{Lo: -1, Hi: 0.1}
	b := Interval{Lo: 0, Hi: 1}
	merged := mergeSortedBlockedIntervals([]Interval{a, b})
	test.That(t, len(merged), test.ShouldEqual, 1)
	test.That(t, merged[0].Lo, test.ShouldAlmostEqual, -1.0)
	test.That(t, merged[0].Hi, test.ShouldAlmostEqual, 1.0)
}

func TestComplementOfNoBlockedIsFullCircle(t *testing.T) {
	fi := complement(nil)
	test.That(t, len(fi.Intervals), test.ShouldEqual, 1)
	test.That(t, fi.Intervals[0].Lo, test.ShouldAlmostEqual, -math.Pi)
	test.That(t, fi.Intervals[0].Hi, test.ShouldAlmostEqual, math.Pi)
}

func TestComplementWrapsWhenBothEdgesOpen(t *testing.T) {
	blocked := []Interval{{Lo: -0.1, Hi: 0.1}}
	fi := complement(blocked)
	test.That(t, len(fi.Intervals), test.ShouldEqual, 1)
	test.That(t, fi.Intervals[0].Wraps(), test.ShouldBeTrue)
	test.That(t, fi.Intervals[0].Lo, test.ShouldAlmostEqual, 0.1)
	test.That(t, fi.Intervals[0].Hi, test.ShouldAlmostEqual, -0.1)
}

// TestClosestFallsBackToCircularlyNearestInterval mirrors the wrong-interval
// scenario: two disjoint feasible intervals around psi=0.2 and psi=2.5,
// queried at psi=1.4, which falls in neither. The interval around 2.5 is
// circularly closer (0.9 rad away vs 1.0 rad to the interval around 0.2),
// so Closest must fall back into it rather than the nearer-by-index one.
func TestClosestFallsBackToCircularlyNearestInterval(t *testing.T) {
	fi := FeasibleIntervals{Intervals: []Interval{
		{Lo: 0.0, Hi: 0.4},
		{Lo: 2.3, Hi: 2.7},
	}}
	fallback, iv, ok := fi.Closest(1.4)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, fallback, test.ShouldAlmostEqual, 2.3)
	test.That(t, iv.Lo, test.ShouldAlmostEqual, 2.3)
}

func TestComputeFeasibleIntervalsForLbrIiwa(t *testing.T) {
	limbs := lbrIiwaLimbs()
	limits := lbrIiwaLimits()
	pose := Forward(JointVector{0.0, 0.4, 0.0, -math.Pi / 2, 0.0, math.Pi / 2, 0.0}, limbs)

	_, gc, status := ComputeArmAngle(JointVector{0.0, 0.4, 0.0, -math.Pi / 2, 0.0, math.Pi / 2, 0.0}, limbs)
	test.That(t, status.IsError(), test.ShouldBeFalse)

	c, status := buildCoefficients(pose, limbs, gc)
	test.That(t, status.IsError(), test.ShouldBeFalse)

	fi := computeFeasibleIntervals(c, limits)
	test.That(t, fi.Empty(), test.ShouldBeFalse)
}
