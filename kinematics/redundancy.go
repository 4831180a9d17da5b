package kinematics

import (
	"math"
	"sort"
)

// minTimeOptimalScale is the floor below which a step is rejected as
// infeasible within one control cycle rather than accepted at a near-zero
// scale factor.
const minTimeOptimalScale = 1e-3

// TimeOptimalScale computes the scalar alpha in (0, 1] by which the arm
// angle step from seed to candidate must be scaled so that no joint
// exceeds its velocity or acceleration limit within deltaT, following the
// velocity/acceleration-scaling-factor step limiter: each joint's maximum
// displacement is min(vMax*velocityScale*deltaT,
// 0.5*aMax*accelScale*deltaT^2), and alpha is the smallest ratio of that
// budget to the joint's actual displacement. When seed carries a Previous
// entry, the estimated current velocity (seed.Velocity) is folded into the
// acceleration budget: an already-moving joint can cover the distance its
// current velocity already contributes within the same acceleration limit,
// so the from-rest budget is widened by |velocity|*deltaT. It reports
// ok=false when the step cannot be scaled down to a usable fraction (alpha
// below minTimeOptimalScale).
func TimeOptimalScale(seed SeedState, candidate JointVector, limits JointLimits, opts Options) (alpha float64, ok bool) {
	delta := candidate.Sub(seed.Joints)
	velEstimate, haveVel := seed.Velocity(opts.DeltaT)
	alpha = 1.0
	for i := 0; i < NumJoints; i++ {
		d := math.Abs(delta[i])
		if kZero(d) {
			continue
		}
		velBudget := limits.VMax[i] * opts.JointVelocityScalingFactor * opts.DeltaT
		accBudget := 0.5 * limits.AMax[i] * opts.JointAccelerationScalingFactor * opts.DeltaT * opts.DeltaT
		if haveVel {
			accBudget += math.Abs(velEstimate[i]) * opts.DeltaT
		}
		budget := math.Min(velBudget, accBudget)
		if ratio := budget / d; ratio < alpha {
			alpha = ratio
		}
	}
	if alpha <= 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return alpha, alpha >= minTimeOptimalScale
}

// ScalePsi applies alpha to the arm-angle step from seedPsi toward psi,
// taking the shorter angular path across the +-pi seam, and returns the
// scaled arm angle wrapped into (-pi, pi]. The joint vector reached within
// this control cycle must then be re-evaluated from closed form at this
// angle (Coefficients.JointVectorAt) rather than linearly interpolated in
// joint space, so the clamped step stays on the self-motion manifold for
// the commanded pose.
func ScalePsi(seedPsi, psi, alpha float64) float64 {
	delta := mapAngleInPiRange(psi - seedPsi)
	return mapAngleInPiRange(seedPsi + alpha*delta)
}

// rankSolutionsByDistance sorts solutions in place, nearest the seed first,
// by the weighted joint-distance metric.
func rankSolutionsByDistance(seed JointVector, solutions Solutions, weights JointVector) {
	sort.SliceStable(solutions, func(i, j int) bool {
		di := WeightedSquaredDistance(solutions[i].Joints, seed, weights)
		dj := WeightedSquaredDistance(solutions[j].Joints, seed, weights)
		return di < dj
	})
}
