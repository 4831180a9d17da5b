package kinematics

import (
	"testing"

	"go.viam.com/test"
)

func TestJointVectorWithinLimits(t *testing.T) {
	lower := JointVector{-1, -1, -1, -1, -1, -1, -1}
	upper := JointVector{1, 1, 1, 1, 1, 1, 1}

	t.Run("inside", func(t *testing.T) {
		q := JointVector{0, 0.5, -0.5, 0, 0, 0, 0}
		test.That(t, q.WithinLimits(lower, upper), test.ShouldBeTrue)
	})

	t.Run("outside", func(t *testing.T) {
		q := JointVector{0, 0, 0, 1.5, 0, 0, 0}
		test.That(t, q.WithinLimits(lower, upper), test.ShouldBeFalse)
	})

	t.Run("at boundary within tolerance", func(t *testing.T) {
		q := JointVector{1 + ZeroRoundingTol/2, 0, 0, 0, 0, 0, 0}
		test.That(t, q.WithinLimits(lower, upper), test.ShouldBeTrue)
	})
}

func TestWeightedSquaredDistance(t *testing.T) {
	a := JointVector{1, 0, 0, 0, 0, 0, 0}
	b := JointVector{0, 0, 0, 0, 0, 0, 0}
	w := JointVector{1, 1, 1, 1, 1, 1, 1}
	test.That(t, WeightedSquaredDistance(a, b, w), test.ShouldAlmostEqual, 1.0)

	w2 := JointVector{4, 1, 1, 1, 1, 1, 1}
	test.That(t, WeightedSquaredDistance(a, b, w2), test.ShouldAlmostEqual, 4.0)
}

func TestMapAngleInPiRange(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{3.2, 3.2 - 2*3.141592653589793},
		{-3.2, -3.2 + 2*3.141592653589793},
		{3.141592653589793, 3.141592653589793},
	}
	for _, c := range cases {
		test.That(t, mapAngleInPiRange(c.in), test.ShouldAlmostEqual, c.want)
	}
}

func TestGlobalConfigSigns(t *testing.T) {
	gc := NewGlobalConfig(-1, 1, -1)
	test.That(t, gc.ShoulderSign(), test.ShouldEqual, -1.0)
	test.That(t, gc.ElbowSign(), test.ShouldEqual, 1.0)
	test.That(t, gc.WristSign(), test.ShouldEqual, -1.0)

	flipped := gc.WithElbowFlipped()
	test.That(t, flipped.ElbowSign(), test.ShouldEqual, -1.0)
	test.That(t, flipped.ShoulderSign(), test.ShouldEqual, -1.0)
}

func TestAllGlobalConfigs(t *testing.T) {
	all := AllGlobalConfigs()
	test.That(t, len(all), test.ShouldEqual, NumGlobalConfigs)
	seen := map[GlobalConfig]bool{}
	for _, gc := range all {
		seen[gc] = true
	}
	test.That(t, len(seen), test.ShouldEqual, NumGlobalConfigs)
}
