package kinematics

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// JointLimits holds the static per-joint bounds installed once at
// construction: position box limits plus velocity and acceleration
// magnitude limits used by the time-optimal step scaler.
type JointLimits struct {
	Lower JointVector
	Upper JointVector
	VMax  JointVector
	AMax  JointVector
}

// Validate checks internal consistency of the limits: lower <= upper, and
// velocity/acceleration magnitudes strictly positive and finite. All
// violations are collected and returned together via multierr so a caller
// fixing a misconfigured arm sees every problem in one pass, matching this
// corpus's referenceframe.mobile2DFrame.Transform validation style.
func (l JointLimits) Validate() error {
	var errAll error
	if !l.Lower.AllFinite() || !l.Upper.AllFinite() || !l.VMax.AllFinite() || !l.AMax.AllFinite() {
		multierr.AppendInto(&errAll, errors.New("joint limits must be finite"))
	}
	for i := 0; i < NumJoints; i++ {
		if l.Lower[i] > l.Upper[i] {
			multierr.AppendInto(&errAll, errors.Errorf("joint %d: lower limit %.5f exceeds upper limit %.5f", i, l.Lower[i], l.Upper[i]))
		}
		if l.VMax[i] <= 0 {
			multierr.AppendInto(&errAll, errors.Errorf("joint %d: velocity limit %.5f must be positive", i, l.VMax[i]))
		}
		if l.AMax[i] <= 0 {
			multierr.AppendInto(&errAll, errors.Errorf("joint %d: acceleration limit %.5f must be positive", i, l.AMax[i]))
		}
	}
	return errAll
}

// LimbLengths holds the four DH link lengths of the S-R-S geometry: upper
// arm (shoulder to elbow), forearm (elbow to wrist), and the fixed base and
// flange offsets.
type LimbLengths struct {
	Base     float64
	UpperArm float64
	Forearm  float64
	Flange   float64
}

// Reach returns the maximum and minimum shoulder-to-wrist distance the arm
// can physically attain.
func (l LimbLengths) Reach() (maxReach, minReach float64) {
	maxReach = l.UpperArm + l.Forearm
	minReach = l.UpperArm - l.Forearm
	if minReach < 0 {
		minReach = -minReach
	}
	return maxReach, minReach
}
