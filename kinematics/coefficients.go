package kinematics

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/Rish619/lbr-redundant-ik/spatialmath"
)

// PivotCoeffs holds the six scalar coefficients of a pivot joint's
// closed-form angle as a function of arm angle psi:
//
//	angle(psi) = atan2(An*sin(psi)+Bn*cos(psi)+Cn, Ad*sin(psi)+Bd*cos(psi)+Cd)
type PivotCoeffs struct {
	An, Bn, Cn float64
	Ad, Bd, Cd float64
}

// Angle evaluates the pivot joint's closed form at psi.
func (p PivotCoeffs) Angle(psi float64) float64 {
	s, c := math.Sincos(psi)
	return math.Atan2(p.An*s+p.Bn*c+p.Cn, p.Ad*s+p.Bd*c+p.Cd)
}

// Singularity locates the arm angle, if any, at which both the numerator
// and denominator of this pivot's atan2 vanish simultaneously -- the
// condition spec calls a pivot singularity. It returns ok=false when the
// two zero-loci never coincide on the unit circle.
func (p PivotCoeffs) Singularity() (psi float64, ok bool) {
	det := p.An*p.Bd - p.Ad*p.Bn
	if kZero(det) {
		return 0, false
	}
	sinPsi := (-p.Cn*p.Bd + p.Cd*p.Bn) / det
	cosPsi := (p.An*(-p.Cd) - p.Ad*(-p.Cn)) / det
	if !kIsEqual(sinPsi*sinPsi+cosPsi*cosPsi, 1) {
		return 0, false
	}
	return math.Atan2(sinPsi, cosPsi), true
}

// ArmAnglesForLimit returns every arm angle in (-pi, pi] at which this
// pivot joint equals target, found by cross-multiplying the atan2 form
// into a linear equation in sin(psi) and cos(psi).
func (p PivotCoeffs) ArmAnglesForLimit(target float64) []float64 {
	sinT, cosT := math.Sincos(target)
	a := p.An*cosT - p.Ad*sinT
	b := p.Bn*cosT - p.Bd*sinT
	c := -(p.Cn*cosT - p.Cd*sinT)
	candidates := solveLinearTrig(a, b, c)
	out := make([]float64, 0, 2)
	for _, psi := range candidates {
		if kIsEqual(angularDiff(p.Angle(psi), target), 0) {
			out = append(out, psi)
		}
	}
	return out
}

// HingeCoeffs holds the six scalar coefficients of a hinge joint's closed
// form as a function of arm angle psi:
//
//	angle(psi) = sign*acos(A*sin(psi)+B*cos(psi)+C*sin(psi)^2+D*cos(psi)^2+E*sin(psi)*cos(psi)+F)
//
// The S-R-S geometry this package builds always produces C=D=E=0 (the
// acos argument reduces to a single sinusoid), but the type carries the
// full general form so a differently-shaped hinge joint could be plugged
// in without changing its contract.
type HingeCoeffs struct {
	A, B, C, D, E, F float64
	Sign             float64
}

// argument evaluates the acos argument at psi.
func (h HingeCoeffs) argument(psi float64) float64 {
	s, c := math.Sincos(psi)
	return h.A*s + h.B*c + h.C*s*s + h.D*c*c + h.E*s*c + h.F
}

// Angle evaluates the hinge joint's closed form at psi.
func (h HingeCoeffs) Angle(psi float64) float64 {
	return h.Sign * kAcos(h.argument(psi))
}

// isLinear reports whether this hinge reduces to A*sin+B*cos+F, the only
// shape ArmAnglesForLimit solves in closed form.
func (h HingeCoeffs) isLinear() bool {
	return kZero(h.C) && kZero(h.D) && kZero(h.E)
}

// ArmAnglesForLimit returns every arm angle in (-pi, pi] at which this
// hinge joint equals target. For the linear S-R-S case it solves directly;
// for a general (non-linear) hinge it falls back to a dense bracketed
// search, since the general quartic admits no simple closed form.
func (h HingeCoeffs) ArmAnglesForLimit(target float64) []float64 {
	v := clamp(math.Cos(target*h.Sign), -1, 1)
	if h.isLinear() {
		candidates := solveLinearTrig(h.A, h.B, v-h.F)
		out := make([]float64, 0, 2)
		for _, psi := range candidates {
			if kIsEqual(angularDiff(h.Angle(psi), target), 0) {
				out = append(out, psi)
			}
		}
		return out
	}
	return bracketedRoots(func(psi float64) float64 { return h.argument(psi) - v }, 720)
}

// solveLinearTrig solves a*sin(psi)+b*cos(psi) = c for psi in (-pi, pi],
// returning zero, one, or two solutions.
func solveLinearTrig(a, b, c float64) []float64 {
	r := math.Hypot(a, b)
	if kZero(r) {
		return nil
	}
	ratio := c / r
	if kGreaterThan(ratio, 1) || kSmallerThan(ratio, -1) {
		return nil
	}
	ratio = clamp(ratio, -1, 1)
	phi := math.Atan2(b, a)
	theta := math.Asin(ratio)
	psi1 := mapAngleInPiRange(theta - phi)
	psi2 := mapAngleInPiRange(math.Pi - theta - phi)
	if kIsEqual(psi1, psi2) {
		return []float64{psi1}
	}
	return []float64{psi1, psi2}
}

// bracketedRoots samples f at n points across (-pi, pi] and bisects every
// sign change into a root.
func bracketedRoots(f func(float64) float64, n int) []float64 {
	var roots []float64
	step := 2 * math.Pi / float64(n)
	prevPsi := -math.Pi
	prevVal := f(prevPsi)
	for i := 1; i <= n; i++ {
		psi := -math.Pi + step*float64(i)
		val := f(psi)
		if prevVal == 0 {
			roots = append(roots, prevPsi)
		} else if (prevVal < 0) != (val < 0) {
			lo, hi := prevPsi, psi
			loVal := prevVal
			for iter := 0; iter < 60; iter++ {
				mid := 0.5 * (lo + hi)
				midVal := f(mid)
				if (midVal < 0) == (loVal < 0) {
					lo, loVal = mid, midVal
				} else {
					hi = mid
				}
			}
			roots = append(roots, 0.5*(lo+hi))
		}
		prevPsi, prevVal = psi, val
	}
	return roots
}

// angularDiff returns a-b mapped into (-pi, pi].
func angularDiff(a, b float64) float64 {
	return mapAngleInPiRange(a - b)
}

// Coefficients holds every joint's closed-form coefficients for one target
// pose and one global configuration, plus the fixed (psi-independent)
// elbow angle.
type Coefficients struct {
	GC GlobalConfig
	J1 PivotCoeffs
	J2 HingeCoeffs
	J3 PivotCoeffs
	J4 float64
	J5 PivotCoeffs
	J6 HingeCoeffs
	J7 PivotCoeffs
}

// Angle evaluates joint i (0-indexed, J1..J7) at arm angle psi. Joint index
// 3 (J4, the elbow) ignores psi.
func (c Coefficients) Angle(i int, psi float64) float64 {
	switch i {
	case 0:
		return c.J1.Angle(psi)
	case 1:
		return c.J2.Angle(psi)
	case 2:
		return c.J3.Angle(psi)
	case 3:
		return c.J4
	case 4:
		return c.J5.Angle(psi)
	case 5:
		return c.J6.Angle(psi)
	case 6:
		return c.J7.Angle(psi)
	default:
		panic("kinematics: joint index out of range")
	}
}

// JointVectorAt evaluates all seven joints at psi.
func (c Coefficients) JointVectorAt(psi float64) JointVector {
	var q JointVector
	for i := 0; i < NumJoints; i++ {
		q[i] = c.Angle(i, psi)
	}
	return q
}

// buildCoefficients derives the full set of closed-form coefficients for
// pose under the given limb lengths and global configuration, following
// the shoulder/wrist rotation-block decomposition: the shoulder and wrist
// orientations are each a rotation, about the shoulder-wrist axis by psi,
// of a fixed reference orientation, which makes every matrix entry (and
// hence every joint angle argument) an affine combination of sin(psi) and
// cos(psi).
func buildCoefficients(pose spatialmath.Pose, limbs LimbLengths, gc GlobalConfig) (Coefficients, Status) {
	g, status := buildGeometry(pose, limbs)
	if status.IsError() {
		return Coefficients{}, status
	}

	shoulderSign := gc.ShoulderSign()
	wristSign := gc.WristSign()
	elbowSign := gc.ElbowSign()

	j2v := shoulderSign * kAcos(clamp(g.refDir.Z, -1, 1))
	j1v := math.Atan2(shoulderSign*g.refDir.Y, shoulderSign*g.refDir.X)
	rVS := shoulderBlockMatrix(j1v, j2v)

	k := crossMatrix(g.axis)
	kk := k.Mul(k)
	as := k.Mul(rVS)
	bs := mat3Scale(kk.Mul(rVS), -1)
	cs := mat3Add(rVS, mat3Scale(bs, -1))

	c := Coefficients{GC: gc}
	c.J1 = PivotCoeffs{
		An: shoulderSign * as.At(1, 2), Bn: shoulderSign * bs.At(1, 2), Cn: shoulderSign * cs.At(1, 2),
		Ad: shoulderSign * as.At(0, 2), Bd: shoulderSign * bs.At(0, 2), Cd: shoulderSign * cs.At(0, 2),
	}
	c.J2 = HingeCoeffs{A: as.At(2, 2), B: bs.At(2, 2), F: cs.At(2, 2), Sign: shoulderSign}
	c.J3 = PivotCoeffs{
		An: shoulderSign * as.At(2, 1), Bn: shoulderSign * bs.At(2, 1), Cn: shoulderSign * cs.At(2, 1),
		Ad: -shoulderSign * as.At(2, 0), Bd: -shoulderSign * bs.At(2, 0), Cd: -shoulderSign * cs.At(2, 0),
	}

	c.J4 = elbowAngle(limbs, g.distance, elbowSign)
	relbow := rotY(c.J4)

	target := pose.Orientation().RotationMatrix()
	relbowT := relbow.Transpose()
	asT, bsT, csT := as.Transpose(), bs.Transpose(), cs.Transpose()
	aw := relbowT.Mul(asT).Mul(target)
	bw := relbowT.Mul(bsT).Mul(target)
	cw := relbowT.Mul(csT).Mul(target)

	c.J5 = PivotCoeffs{
		An: wristSign * aw.At(1, 2), Bn: wristSign * bw.At(1, 2), Cn: wristSign * cw.At(1, 2),
		Ad: wristSign * aw.At(0, 2), Bd: wristSign * bw.At(0, 2), Cd: wristSign * cw.At(0, 2),
	}
	c.J6 = HingeCoeffs{A: aw.At(2, 2), B: bw.At(2, 2), F: cw.At(2, 2), Sign: wristSign}
	c.J7 = PivotCoeffs{
		An: wristSign * aw.At(2, 1), Bn: wristSign * bw.At(2, 1), Cn: wristSign * cw.At(2, 1),
		Ad: -wristSign * aw.At(2, 0), Bd: -wristSign * bw.At(2, 0), Cd: -wristSign * cw.At(2, 0),
	}

	return c, OK()
}

// shoulderBlockMatrix builds the 3x3 rotation Rz(j1)*Rx(-pi/2)*Rz(j2)*Rx(pi/2),
// the closed form for the pivot-hinge-pivot triple shared by the shoulder
// (J1,J2,J3 with J3=0) and wrist (J5,J6,J7 with J7=0) blocks.
func shoulderBlockMatrix(j1, j2 float64) *spatialmath.RotationMatrix {
	s1, c1 := math.Sincos(j1)
	s2, c2 := math.Sincos(j2)
	return spatialmath.NewRotationMatrixFromRows(
		r3.Vector{X: c1 * c2, Y: -s1, Z: c1 * s2},
		r3.Vector{X: s1 * c2, Y: c1, Z: s1 * s2},
		r3.Vector{X: -s2, Y: 0, Z: c2},
	)
}
