package kinematics

import (
	"context"
	"math"

	"github.com/Rish619/lbr-redundant-ik/spatialmath"
)

// resolvePsiSamples is the number of samples taken across a feasible
// interval when ResolvePsi searches for the arm angle minimizing the
// weighted joint-distance metric; the sampling is refined by a few rounds
// of golden-section search around the best sample.
const resolvePsiSamples = 32

// Solve is the entry point for both Inverse and InverseArmAngle: it builds
// coefficients and feasible intervals for every candidate global
// configuration the Options select, resolves an arm angle in each, scales
// the resulting step against the seed by TimeOptimalScale, and ranks the
// survivors by weighted distance to the seed.
type Solve struct {
	Limbs  LimbLengths
	Limits JointLimits
}

// candidateGCs returns the global configurations Inverse should attempt,
// in the order GC4-degenerate duplicates are first collapsed.
func (s Solve) candidateGCs(seed SeedState, opts Options) ([]GlobalConfig, Status) {
	switch opts.GlobalConfigurationMode {
	case KeepCurrentGC:
		psi, gc, status := seed.SeedArmAngle(s.Limbs)
		if status.IsError() {
			return nil, status
		}
		if isElbowDegenerate(seed.Joints[3]) {
			_, altGC := remapArmAngleForElbowGC(psi, gc)
			return []GlobalConfig{gc, altGC}, OK()
		}
		return []GlobalConfig{gc}, OK()
	case SpecifyGC:
		if !opts.UserGC.Valid() {
			return nil, NewStatus(GeneralError, "user_gc out of range")
		}
		return []GlobalConfig{opts.UserGC}, OK()
	default: // SelectBySeedGC, ReturnAllGC
		return AllGlobalConfigs(), OK()
	}
}

// Inverse solves for a full joint configuration reaching pose, following
// Options' global-configuration and arm-angle resolution modes.
func (s Solve) Inverse(ctx context.Context, pose spatialmath.Pose, seed SeedState, opts Options) (Solutions, Status) {
	gcs, status := s.candidateGCs(seed, opts)
	if status.IsError() {
		return nil, status
	}

	seedPsi, seedGC, seedStatus := seed.SeedArmAngle(s.Limbs)
	haveSeedPsi := !seedStatus.IsError()

	var solutions Solutions
	worst := NewStatus(GeneralError, "no global configuration produced a solution")
	seenDegenerate := map[GlobalConfig]bool{}

	for _, gc := range gcs {
		if seenDegenerate[gc] {
			continue
		}
		sol, st := s.solveOneGC(ctx, pose, seed, gc, opts, seedPsi, seedGC, haveSeedPsi)
		if st.IsError() {
			worst = st
			continue
		}
		if isElbowDegenerate(sol.Joints[3]) {
			seenDegenerate[gc.WithElbowFlipped()] = true
		}
		solutions = append(solutions, sol)
	}

	if len(solutions) == 0 {
		return nil, worst
	}

	rankSolutionsByDistance(seed.Joints, solutions, opts.JointDistanceWeights)

	if opts.GlobalConfigurationMode == ReturnAllGC {
		return solutions, statusFromSolutions(solutions)
	}
	return solutions[:1], statusFromSolutions(solutions[:1])
}

// InverseArmAngle solves for the joint configuration at psiTarget, bypassing
// Options.PositionIKMode's arm-angle search. A global configuration whose
// feasible intervals do not contain psiTarget yields no solution. When the
// step from the seed exceeds the TimeOptimalScale budget, the returned Psi is
// psiTarget moved back toward the seed's arm angle by ScalePsi.
func (s Solve) InverseArmAngle(ctx context.Context, pose spatialmath.Pose, seed SeedState, psiTarget float64, opts Options) (Solution, Status) {
	exact := opts
	exact.PositionIKMode = ExactPsi
	exact.TargetArmAngle = psiTarget
	solutions, status := s.Inverse(ctx, pose, seed, exact)
	if status.IsError() || len(solutions) == 0 {
		return Solution{}, status
	}
	return solutions[0], status
}

// IntervalsFor returns the feasible arm-angle intervals for pose under a
// single global configuration, without resolving a specific solution.
func (s Solve) IntervalsFor(pose spatialmath.Pose, gc GlobalConfig) (FeasibleIntervals, Status) {
	c, status := buildCoefficients(pose, s.Limbs, gc)
	if status.IsError() {
		return FeasibleIntervals{}, status
	}
	fi := computeFeasibleIntervals(c, s.Limits)
	if fi.Empty() {
		return fi, NewStatus(NoSolutionForArmAngle, "no feasible arm angle for this pose and configuration")
	}
	return fi, OK()
}

func (s Solve) solveOneGC(
	ctx context.Context,
	pose spatialmath.Pose,
	seed SeedState,
	gc GlobalConfig,
	opts Options,
	seedPsi float64,
	seedGC GlobalConfig,
	haveSeedPsi bool,
) (Solution, Status) {
	c, status := buildCoefficients(pose, s.Limbs, gc)
	if status.IsError() {
		return Solution{}, status
	}

	fi := computeFeasibleIntervals(c, s.Limits)
	if fi.Empty() {
		return Solution{}, NewStatus(NoSolutionForArmAngle, "no feasible arm angle for this global configuration")
	}

	var seedInterval Interval
	seedIntervalOK := false
	if haveSeedPsi && seedGC == gc {
		seedInterval, seedIntervalOK = fi.IntervalFor(seedPsi)
	}

	psi, sameInterval, status := s.resolvePsi(ctx, c, fi, seed, opts, seedInterval, seedIntervalOK)
	if status.IsError() {
		return Solution{}, status
	}

	q := c.JointVectorAt(psi)
	if !q.WithinLimits(s.Limits.Lower, s.Limits.Upper) {
		return Solution{}, NewStatus(JointLimitViolated, "resolved joint vector violates a box limit")
	}

	alpha, ok := TimeOptimalScale(seed, q, s.Limits, opts)
	if !ok {
		return Solution{}, NewStatus(JointLimitViolated, "step exceeds velocity/acceleration limits even at minimum scale")
	}
	if alpha < 1 {
		if !haveSeedPsi {
			return Solution{}, NewStatus(JointLimitViolated, "step exceeds velocity/acceleration limits and no seed arm angle is available to rescale along")
		}
		psi = ScalePsi(seedPsi, psi, alpha)
		q = c.JointVectorAt(psi)
		if !q.WithinLimits(s.Limits.Lower, s.Limits.Upper) {
			return Solution{}, NewStatus(JointLimitViolated, "rescaled joint vector violates a box limit")
		}
		if seedIntervalOK {
			if iv, inInterval := fi.IntervalFor(psi); inInterval {
				sameInterval = intervalsEqual(iv, seedInterval)
			} else {
				sameInterval = false
			}
		}
	}

	return Solution{Joints: q, Psi: psi, GC: gc, SameInterval: sameInterval}, status
}

func (s Solve) resolvePsi(
	ctx context.Context,
	c Coefficients,
	fi FeasibleIntervals,
	seed SeedState,
	opts Options,
	seedInterval Interval,
	seedIntervalOK bool,
) (psi float64, sameInterval bool, status Status) {
	switch opts.PositionIKMode {
	case ExactPsi:
		iv, inside := fi.IntervalFor(opts.TargetArmAngle)
		if !inside {
			return 0, false, NewStatus(NoSolutionForArmAngle, "requested arm angle is outside every feasible interval for this global configuration")
		}
		same := seedIntervalOK && intervalsEqual(iv, seedInterval)
		return opts.TargetArmAngle, same, OK()

	case ClosestFeasiblePsi:
		target := opts.TargetArmAngle
		psi, iv, ok := fi.Closest(target)
		if !ok {
			return 0, false, NewStatus(NoSolutionForArmAngle, "no feasible arm angle available")
		}
		same := seedIntervalOK && intervalsEqual(iv, seedInterval)
		return psi, same, OK()

	default: // ResolvePsi
		best, iv, status := resolvePsiByDistance(ctx, c, fi, seed.Joints, opts.JointDistanceWeights)
		if status.IsError() {
			return 0, false, status
		}
		same := seedIntervalOK && intervalsEqual(iv, seedInterval)
		return best, same, OK()
	}
}

// resolvePsiByDistance searches every feasible interval for the arm angle
// minimizing the weighted joint-distance metric against seed, by uniform
// sampling followed by golden-section refinement around the best sample.
func resolvePsiByDistance(ctx context.Context, c Coefficients, fi FeasibleIntervals, seed JointVector, weights JointVector) (float64, Interval, Status) {
	bestCost := math.Inf(1)
	var bestPsi float64
	var bestIv Interval
	found := false

	for _, iv := range fi.Intervals {
		select {
		case <-ctx.Done():
			return 0, Interval{}, NewStatus(GeneralError, ctx.Err().Error())
		default:
		}
		lo, hi := intervalSpan(iv)
		psi, cost := minimizeOverSpan(lo, hi, func(p float64) float64 {
			return WeightedSquaredDistance(c.JointVectorAt(p), seed, weights)
		})
		if cost < bestCost {
			bestCost, bestPsi, bestIv, found = cost, psi, iv, true
		}
	}
	if !found {
		return 0, Interval{}, NewStatus(NoSolutionForArmAngle, "no feasible arm angle available")
	}
	return mapAngleInPiRange(bestPsi), bestIv, OK()
}

// intervalSpan returns a linear [lo, hi] (hi may exceed pi) covering iv,
// unwrapping it if necessary so ordinary 1-D search applies.
func intervalSpan(iv Interval) (float64, float64) {
	if !iv.Wraps() {
		return iv.Lo, iv.Hi
	}
	return iv.Lo, iv.Hi + 2*math.Pi
}

// minimizeOverSpan finds an approximate minimizer of f on [lo, hi] via
// uniform sampling followed by golden-section refinement of the best
// bracket; f is not assumed convex, so the uniform pass guards against
// missing a distant global minimum.
func minimizeOverSpan(lo, hi float64, f func(float64) float64) (float64, float64) {
	step := (hi - lo) / float64(resolvePsiSamples)
	bestX, bestV := lo, f(lo)
	for i := 1; i <= resolvePsiSamples; i++ {
		x := lo + step*float64(i)
		if v := f(x); v < bestV {
			bestX, bestV = x, v
		}
	}
	a, b := bestX-step, bestX+step
	if a < lo {
		a = lo
	}
	if b > hi {
		b = hi
	}
	const phi = 0.6180339887498949
	for iter := 0; iter < 40; iter++ {
		c1 := b - phi*(b-a)
		c2 := a + phi*(b-a)
		if f(c1) < f(c2) {
			b = c2
		} else {
			a = c1
		}
	}
	x := 0.5 * (a + b)
	return x, f(x)
}

func intervalsEqual(a, b Interval) bool {
	return kIsEqual(a.Lo, b.Lo) && kIsEqual(a.Hi, b.Hi)
}

// isElbowDegenerate reports whether the elbow angle is close enough to 0
// or +-pi (fully extended or fully folded) that the elbow
// global-configuration sign no longer distinguishes two different poses,
// the condition remapArmAngleForElbowGC guards against.
func isElbowDegenerate(j4 float64) bool {
	return kZero(j4) || kIsEqual(math.Abs(j4), math.Pi)
}

// remapArmAngleForElbowGC returns the arm angle and global configuration
// equivalent to (psi, gc) under the opposite elbow branch: when the elbow is
// degenerate (fully extended or folded) its GC bit carries no information,
// so the same physical posture is also reachable, at psi shifted by pi,
// under the flipped elbow GC.
func remapArmAngleForElbowGC(psi float64, gc GlobalConfig) (float64, GlobalConfig) {
	return mapAngleInPiRange(psi + math.Pi), gc.WithElbowFlipped()
}

func statusFromSolutions(solutions Solutions) Status {
	for _, sol := range solutions {
		if !sol.SameInterval {
			return NewStatus(ArmAngleNotInSameInterval, "resolved arm angle is outside the seed's feasible interval")
		}
	}
	return OK()
}
