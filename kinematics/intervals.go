package kinematics

import (
	"math"
	"sort"
)

// mergeEps is the tolerance used when deciding whether two arm-angle
// intervals touch or overlap during merging.
const mergeEps = 1e-9

// singularityGuardMargin is the half-width of the blocked interval placed
// around a pivot singularity, per spec's MARGIN_SINGULARITY = 10*tol.
const singularityGuardMargin = 10 * ZeroRoundingTol

// Interval is a closed sub-range [Lo, Hi] of arm angle in (-pi, pi].
// Overlapping marks an interval that logically wraps across the +-pi seam
// and represents [Lo, pi] union (-pi, Hi] instead of the ordinary [Lo,
// Hi]; the flag is explicit rather than inferred from Lo > Hi, so the
// engine never has to special-case the seam by comparing Lo and Hi at
// every call site.
type Interval struct {
	Lo, Hi      float64
	Overlapping bool
}

// Wraps reports whether the interval crosses the +-pi seam.
func (iv Interval) Wraps() bool {
	return iv.Overlapping
}

// Contains reports whether psi lies in the interval, honoring wrap.
func (iv Interval) Contains(psi float64) bool {
	if !iv.Overlapping {
		return psi >= iv.Lo-ZeroRoundingTol && psi <= iv.Hi+ZeroRoundingTol
	}
	return psi >= iv.Lo-ZeroRoundingTol || psi <= iv.Hi+ZeroRoundingTol
}

// Mid returns the midpoint of the interval, measured along the wrapped arc
// for an overlapping interval.
func (iv Interval) Mid() float64 {
	if !iv.Overlapping {
		return 0.5 * (iv.Lo + iv.Hi)
	}
	span := (math.Pi - iv.Lo) + (iv.Hi + math.Pi)
	mid := iv.Lo + span/2
	return mapAngleInPiRange(mid)
}

// FeasibleIntervals is the sorted, non-overlapping set of arm angles at
// which every joint is within its box limits and no pivot singularity
// guard applies, for one target pose and global configuration.
type FeasibleIntervals struct {
	Intervals []Interval
}

// Empty reports whether there is no feasible arm angle at all.
func (f FeasibleIntervals) Empty() bool {
	return len(f.Intervals) == 0
}

// Contains reports whether psi lies in any feasible interval.
func (f FeasibleIntervals) Contains(psi float64) bool {
	_, ok := f.IntervalFor(psi)
	return ok
}

// IntervalFor returns the feasible interval containing psi, if any.
func (f FeasibleIntervals) IntervalFor(psi float64) (Interval, bool) {
	for _, iv := range f.Intervals {
		if iv.Contains(psi) {
			return iv, true
		}
	}
	return Interval{}, false
}

// Closest returns the feasible arm angle nearest to psi (psi itself, if
// already feasible) and the interval it falls in. Ties between two
// equidistant intervals resolve to the one above psi (the reference core's
// documented tie-break). It returns ok=false when there is no feasible
// interval at all.
func (f FeasibleIntervals) Closest(psi float64) (closest float64, containing Interval, ok bool) {
	if iv, inside := f.IntervalFor(psi); inside {
		return psi, iv, true
	}
	if f.Empty() {
		return 0, Interval{}, false
	}
	bestDist := math.Inf(1)
	var best float64
	var bestIv Interval
	for _, iv := range f.Intervals {
		for _, edge := range []float64{iv.Lo, iv.Hi} {
			d := circularDistance(psi, edge)
			if d < bestDist-ZeroRoundingTol {
				bestDist, best, bestIv = d, edge, iv
			} else if kIsEqual(d, bestDist) {
				// Tie: prefer the candidate reached by moving in the
				// positive direction from psi (the interval "above").
				if circularForwardDistance(psi, edge) < circularForwardDistance(psi, best) {
					best, bestIv = edge, iv
				}
			}
		}
	}
	return best, bestIv, true
}

func circularDistance(a, b float64) float64 {
	d := math.Abs(mapAngleInPiRange(a - b))
	return d
}

func circularForwardDistance(from, to float64) float64 {
	d := mapAngleInPiRange(to - from)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d
}

// computeFeasibleIntervals runs the full arm-angle interval algorithm for
// one set of coefficients and joint limits: derive each joint's blocked
// sub-arcs, add pivot-singularity guard intervals, merge them, and take
// the complement within (-pi, pi].
func computeFeasibleIntervals(c Coefficients, limits JointLimits) FeasibleIntervals {
	var blocked []Interval
	for i := 0; i < NumJoints; i++ {
		blocked = append(blocked, jointBlockedIntervals(c, i, limits.Lower[i], limits.Upper[i])...)
	}
	blocked = append(blocked, pivotSingularityGuards(c)...)

	merged := mergeSortedBlockedIntervals(blocked)
	return complement(merged)
}

// jointBlockedIntervals returns the arm-angle sub-arcs, each expressed
// without wrap (split at the +-pi seam if necessary), at which joint i
// falls outside [lower, upper].
func jointBlockedIntervals(c Coefficients, i int, lower, upper float64) []Interval {
	if i == 3 {
		if c.J4 < lower-ZeroRoundingTol || c.J4 > upper+ZeroRoundingTol {
			return []Interval{{Lo: -math.Pi, Hi: math.Pi}}
		}
		return nil
	}

	angleFn := func(psi float64) float64 { return c.Angle(i, psi) }
	boundaries := boundaryArmAngles(c, i, lower, upper)
	boundaries = append(boundaries, -math.Pi, math.Pi)
	sort.Float64s(boundaries)
	boundaries = dedupeSorted(boundaries)

	var out []Interval
	for k := 0; k+1 < len(boundaries); k++ {
		lo, hi := boundaries[k], boundaries[k+1]
		mid := 0.5 * (lo + hi)
		if mid <= lo || mid >= hi {
			continue
		}
		v := angleFn(mid)
		if v < lower-ZeroRoundingTol || v > upper+ZeroRoundingTol {
			out = append(out, Interval{Lo: lo, Hi: hi})
		}
	}
	return out
}

// boundaryArmAngles returns every arm angle at which joint i equals
// exactly lower or exactly upper, the candidate split points for sampling.
func boundaryArmAngles(c Coefficients, i int, lower, upper float64) []float64 {
	var pivot PivotCoeffs
	var hinge HingeCoeffs
	isHinge := i == 1 || i == 5
	switch i {
	case 0:
		pivot = c.J1
	case 1:
		hinge = c.J2
	case 2:
		pivot = c.J3
	case 4:
		pivot = c.J5
	case 5:
		hinge = c.J6
	case 6:
		pivot = c.J7
	}
	var out []float64
	if isHinge {
		out = append(out, hinge.ArmAnglesForLimit(lower)...)
		out = append(out, hinge.ArmAnglesForLimit(upper)...)
	} else {
		out = append(out, pivot.ArmAnglesForLimit(lower)...)
		out = append(out, pivot.ArmAnglesForLimit(upper)...)
	}
	return out
}

// pivotSingularityGuards returns a small blocked interval around every
// pivot joint's singularity, if one exists on the unit circle.
func pivotSingularityGuards(c Coefficients) []Interval {
	var out []Interval
	for _, p := range []PivotCoeffs{c.J1, c.J3, c.J5, c.J7} {
		if psi, ok := p.Singularity(); ok {
			out = append(out, splitAroundSeam(psi-singularityGuardMargin, psi+singularityGuardMargin)...)
		}
	}
	return out
}

// splitAroundSeam splits [lo, hi] (lo may be < -pi or hi > pi) into one or
// two intervals that each stay within (-pi, pi], moving the portion that
// runs past the seam to a separate piece on the other side of it.
func splitAroundSeam(lo, hi float64) []Interval {
	var out []Interval
	if lo < -math.Pi {
		out = append(out, Interval{Lo: -math.Pi, Hi: mapAngleInPiRange(hi)})
		out = append(out, Interval{Lo: mapAngleInPiRange(lo), Hi: math.Pi})
		return out
	}
	if hi > math.Pi {
		out = append(out, Interval{Lo: lo, Hi: math.Pi})
		out = append(out, Interval{Lo: -math.Pi, Hi: mapAngleInPiRange(hi)})
		return out
	}
	return []Interval{{Lo: lo, Hi: hi}}
}

func dedupeSorted(vals []float64) []float64 {
	out := vals[:0:0]
	for i, v := range vals {
		if i == 0 || !kIsEqual(v, vals[i-1]) {
			out = append(out, v)
		}
	}
	return out
}

// mergeSortedBlockedIntervals merges a (possibly unsorted) list of
// non-wrapping blocked intervals into the minimal set of disjoint
// intervals covering the same arc. An interval fully contained in the
// most-recently-merged interval is explicitly skipped rather than used to
// shrink it -- the fix for the reference algorithm's documented bug, where
// a contained interval arriving after a wider one could incorrectly pull
// the merged interval's end back in.
func mergeSortedBlockedIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lo < sorted[j].Lo })

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Lo <= last.Hi+mergeEps {
			if iv.Hi > last.Hi {
				last.Hi = iv.Hi
			}
			// else: iv is fully contained in *last; skip it.
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// complement returns the feasible intervals left over after removing the
// merged, non-wrapping blocked intervals from the full circle (-pi, pi].
// The leftover room at the two ends of (-pi, pi] is stitched into a single
// wrapping feasible interval when both ends are open.
func complement(blocked []Interval) FeasibleIntervals {
	if len(blocked) == 0 {
		return FeasibleIntervals{Intervals: []Interval{{Lo: -math.Pi, Hi: math.Pi}}}
	}

	var feasible []Interval
	for i := 0; i+1 < len(blocked); i++ {
		lo, hi := blocked[i].Hi, blocked[i+1].Lo
		if kGreaterThan(hi, lo) {
			feasible = append(feasible, Interval{Lo: lo, Hi: hi})
		}
	}

	first, last := blocked[0], blocked[len(blocked)-1]
	leftRoom := kGreaterThan(first.Lo, -math.Pi)
	rightRoom := kGreaterThan(math.Pi, last.Hi)
	switch {
	case leftRoom && rightRoom:
		feasible = append(feasible, Interval{Lo: last.Hi, Hi: first.Lo, Overlapping: true})
	case leftRoom:
		feasible = append([]Interval{{Lo: -math.Pi, Hi: first.Lo}}, feasible...)
	case rightRoom:
		feasible = append(feasible, Interval{Lo: last.Hi, Hi: math.Pi})
	}
	return FeasibleIntervals{Intervals: feasible}
}
