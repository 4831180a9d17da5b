package kinematics

import "github.com/Rish619/lbr-redundant-ik/spatialmath"

// SeedState is the seed history a solve is resolved against: the current
// measured (or previously commanded) joint configuration, optionally
// preceded by the joint vector commanded one control cycle earlier.
// Redundancy resolution ranks candidates by distance to Joints, and
// ResolvePsi prefers arm angles whose joint vector is nearest Joints;
// Previous, when present, lets the time-optimal step scaler estimate the
// arm's current velocity instead of assuming it starts from rest.
type SeedState struct {
	Joints   JointVector
	Previous *JointVector
}

// NewSeedState builds a SeedState from an ordered history of one or two
// joint vectors: either just the current configuration, or the previous
// commanded configuration followed by the current one.
func NewSeedState(history ...JointVector) (SeedState, Status) {
	switch len(history) {
	case 1:
		return SeedState{Joints: history[0]}, OK()
	case 2:
		prev := history[0]
		return SeedState{Joints: history[1], Previous: &prev}, OK()
	default:
		return SeedState{}, NewStatus(GeneralError, "seed history must have length 1 or 2")
	}
}

// SeedArmAngle returns the arm angle and global configuration the seed
// joint vector itself realizes, under the given limb lengths.
func (s SeedState) SeedArmAngle(limbs LimbLengths) (psi float64, gc GlobalConfig, status Status) {
	return ComputeArmAngle(s.Joints, limbs)
}

// Velocity estimates the current joint velocity from the seed history by
// backward difference against Previous, divided by deltaT. It reports
// ok=false when no Previous entry is available or deltaT is zero.
func (s SeedState) Velocity(deltaT float64) (v JointVector, ok bool) {
	if s.Previous == nil || kZero(deltaT) {
		return JointVector{}, false
	}
	prev := *s.Previous
	for i := range v {
		v[i] = (s.Joints[i] - prev[i]) / deltaT
	}
	return v, true
}

// Solution is one candidate joint configuration returned by Inverse or
// InverseArmAngle.
type Solution struct {
	Joints JointVector
	Psi    float64
	GC     GlobalConfig
	// SameInterval reports whether Psi was resolved within the feasible
	// interval containing the seed's own arm angle, replacing the ambiguous
	// jump-size heuristic: callers that care about continuity across a
	// motion sequence should check this instead of comparing Psi deltas.
	SameInterval bool
}

// Solutions is an ordered list of candidate solutions, nearest the seed
// first, as returned by ReturnAllGC.
type Solutions []Solution

// ForwardResult is the outcome of a Forward call.
type ForwardResult struct {
	Pose spatialmath.Pose
}
