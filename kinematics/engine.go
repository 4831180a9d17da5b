package kinematics

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/Rish619/lbr-redundant-ik/logging"
	"github.com/Rish619/lbr-redundant-ik/spatialmath"
)

// quaternionNormTol is the allowed drift of a pose's orientation quaternion
// from unit norm before it is rejected as malformed input.
const quaternionNormTol = 1e-6

// poseIsValid reports whether pose's position is finite and its
// orientation is a finite, (near-)unit quaternion.
func poseIsValid(pose spatialmath.Pose) bool {
	p := pose.Point()
	if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
		return false
	}
	q := pose.Orientation().Quaternion()
	if !finite(q.Real) || !finite(q.Imag) || !finite(q.Jmag) || !finite(q.Kmag) {
		return false
	}
	norm := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	return math.Abs(norm-1) <= quaternionNormTol
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// armAngleInRange reports whether psi lies within the arm angle's defined
// domain [-pi, pi].
func armAngleInRange(psi float64) bool {
	return psi >= -math.Pi-ZeroRoundingTol && psi <= math.Pi+ZeroRoundingTol
}

// Engine is the top-level entry point for the S-R-S analytical IK solver:
// it holds the arm's fixed limb lengths and mutable joint limits, and
// exposes Forward, Inverse, InverseArmAngle and IntervalsFor as a single
// cohesive API, following this corpus's convention of a small constructor
// plus a concrete type implementing the package's public surface rather
// than an exported interface with one implementation.
type Engine struct {
	limbs     LimbLengths
	limits    JointLimits
	limitsSet bool
	logger    logging.Logger
}

// NewEngine constructs an Engine for the given limb lengths. Joint limits
// must be installed separately via SetJointLimits before any Inverse call
// will succeed.
func NewEngine(limbs LimbLengths, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewLogger("kinematics")
	}
	return &Engine{limbs: limbs, logger: logger}
}

// SetJointLimits installs the box, velocity, and acceleration limits used
// by every subsequent Inverse/InverseArmAngle call. It validates all four
// vectors together via multierr so a misconfigured arm surfaces every
// problem in one error, matching referenceframe.mobile2DFrame.Transform's
// validation style in this corpus.
func (e *Engine) SetJointLimits(lower, upper, vMax, aMax JointVector) error {
	limits := JointLimits{Lower: lower, Upper: upper, VMax: vMax, AMax: aMax}
	if err := limits.Validate(); err != nil {
		e.logger.Errorw("rejected joint limits", "error", err)
		return errors.Wrap(err, "invalid joint limits")
	}
	e.limits = limits
	e.limitsSet = true
	return nil
}

func (e *Engine) solver() Solve {
	return Solve{Limbs: e.limbs, Limits: e.limits}
}

// Forward computes the end-effector pose reached by q.
func (e *Engine) Forward(q JointVector) (ForwardResult, Status) {
	if !q.AllFinite() {
		return ForwardResult{}, NewStatus(GeneralError, "joint vector contains NaN or Inf")
	}
	if e.limitsSet && !q.WithinLimits(e.limits.Lower, e.limits.Upper) {
		e.logger.Debugw("forward kinematics requested outside installed joint limits", "q", q)
	}
	return ForwardResult{Pose: Forward(q, e.limbs)}, OK()
}

// Inverse solves for a full joint configuration reaching pose, following
// opts' global-configuration and arm-angle resolution modes.
func (e *Engine) Inverse(ctx context.Context, pose spatialmath.Pose, seed SeedState, opts Options) (Solutions, Status) {
	if !e.limitsSet {
		return nil, NewStatus(GeneralError, "joint limits have not been installed via SetJointLimits")
	}
	if !seed.Joints.AllFinite() {
		return nil, NewStatus(GeneralError, "seed joint vector contains NaN or Inf")
	}
	if !poseIsValid(pose) {
		return nil, NewStatus(GeneralError, "target pose contains NaN/Inf or a non-unit orientation quaternion")
	}
	if !armAngleInRange(opts.TargetArmAngle) {
		return nil, NewStatus(GeneralError, "target_arm_angle is outside [-pi, pi]")
	}
	solutions, status := e.solver().Inverse(ctx, pose, seed, opts)
	e.logResult("Inverse", status)
	return solutions, status
}

// InverseArmAngle solves for the joint configuration at psiTarget; see
// Solve.InverseArmAngle for when the returned arm angle differs from it.
func (e *Engine) InverseArmAngle(ctx context.Context, pose spatialmath.Pose, seed SeedState, psiTarget float64, opts Options) (Solution, Status) {
	if !e.limitsSet {
		return Solution{}, NewStatus(GeneralError, "joint limits have not been installed via SetJointLimits")
	}
	if !seed.Joints.AllFinite() {
		return Solution{}, NewStatus(GeneralError, "seed joint vector contains NaN or Inf")
	}
	if !poseIsValid(pose) {
		return Solution{}, NewStatus(GeneralError, "target pose contains NaN/Inf or a non-unit orientation quaternion")
	}
	if !armAngleInRange(psiTarget) {
		return Solution{}, NewStatus(GeneralError, "psiTarget is outside [-pi, pi]")
	}
	sol, status := e.solver().InverseArmAngle(ctx, pose, seed, psiTarget, opts)
	e.logResult("InverseArmAngle", status)
	return sol, status
}

// IntervalsFor returns the feasible arm-angle intervals for pose under gc.
func (e *Engine) IntervalsFor(pose spatialmath.Pose, gc GlobalConfig) (FeasibleIntervals, Status) {
	fi, status := e.solver().IntervalsFor(pose, gc)
	e.logResult("IntervalsFor", status)
	return fi, status
}

func (e *Engine) logResult(op string, status Status) {
	switch status.Severity() {
	case SeverityError:
		e.logger.Errorw(op+" failed", "code", status.Code().String(), "message", status.Message())
	case SeverityWarning:
		e.logger.Warnw(op+" returned a fallback result", "code", status.Code().String(), "message", status.Message())
	default:
		e.logger.Debugw(op+" succeeded", "code", status.Code().String())
	}
}
