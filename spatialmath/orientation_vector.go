package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// OrientationVector represents an orientation by the direction the local
// +Z axis points in the reference frame (OX, OY, OZ, a unit vector) plus a
// twist angle Theta about that axis.
type OrientationVector struct {
	OX    float64 `json:"ox"`
	OY    float64 `json:"oy"`
	OZ    float64 `json:"oz"`
	Theta float64 `json:"theta"`
}

// OrientationVectorDegrees is OrientationVector with Theta in degrees.
type OrientationVectorDegrees struct {
	OX    float64 `json:"ox"`
	OY    float64 `json:"oy"`
	OZ    float64 `json:"oz"`
	Theta float64 `json:"theta"`
}

// Quaternion returns orientation in quaternion representation.
func (ov *OrientationVector) Quaternion() quat.Number {
	return OVToQuat(ov)
}

// AxisAngles returns the orientation in axis angle representation.
func (ov *OrientationVector) AxisAngles() *R4AA {
	return QuatToR4AA(ov.Quaternion())
}

// OrientationVectorRadians returns ov unchanged.
func (ov *OrientationVector) OrientationVectorRadians() *OrientationVector {
	return ov
}

// OrientationVectorDegrees converts Theta to degrees.
func (ov *OrientationVector) OrientationVectorDegrees() *OrientationVectorDegrees {
	return &OrientationVectorDegrees{ov.OX, ov.OY, ov.OZ, ov.Theta * 180 / math.Pi}
}

// EulerAngles returns orientation in Euler angle representation.
func (ov *OrientationVector) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(ov.Quaternion())
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (ov *OrientationVector) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(ov.Quaternion())
}

// QuatToOV decomposes a unit quaternion into the direction its local Z axis
// points (OX, OY, OZ) plus the residual twist Theta about that axis. The
// decomposition is: find the minimal rotation mapping +Z onto the image
// direction, then measure the remaining rotation about that direction.
func QuatToOV(q quat.Number) *OrientationVector {
	q = quatNormalize(q)
	rm := QuatToRotationMatrix(q)
	// image of +Z under the rotation is the third column.
	ox, oy, oz := rm.At(0, 2), rm.At(1, 2), rm.At(2, 2)

	planar := math.Hypot(ox, oy)
	var theta float64
	if planar < 1e-10 {
		// axis is aligned (or anti-aligned) with +Z; remove the same base
		// rotation OVToQuat uses (identity, or pi about X when anti-aligned)
		// and read the remaining twist about local Z.
		q0 := quat.Number{Real: 1}
		if oz < 0 {
			q0 = quat.Number{Imag: 1}
		}
		qRem := quat.Mul(quat.Conj(q0), q)
		theta = 2 * math.Atan2(qRem.Kmag, qRem.Real)
	} else {
		axisX, axisY := -oy/planar, ox/planar
		angle := math.Acos(clamp(oz, -1, 1))
		q0 := axisAngleToQuat(axisX, axisY, 0, angle)
		qRem := quat.Mul(quat.Conj(q0), q)
		theta = 2 * math.Atan2(qRem.Kmag, qRem.Real)
	}
	return &OrientationVector{OX: ox, OY: oy, OZ: oz, Theta: mapAngleInPiRange(theta)}
}

// QuatToOVD is QuatToOV with Theta in degrees.
func QuatToOVD(q quat.Number) *OrientationVectorDegrees {
	return QuatToOV(q).OrientationVectorDegrees()
}

// OVToQuat is the inverse of QuatToOV: build the minimal rotation mapping
// +Z onto (OX,OY,OZ), then apply an additional Theta rotation about that
// same direction.
func OVToQuat(ov *OrientationVector) quat.Number {
	norm := math.Sqrt(ov.OX*ov.OX + ov.OY*ov.OY + ov.OZ*ov.OZ)
	if norm < 1e-12 {
		return quat.Number{Real: 1}
	}
	ox, oy, oz := ov.OX/norm, ov.OY/norm, ov.OZ/norm
	planar := math.Hypot(ox, oy)
	var q0 quat.Number
	if planar < 1e-10 {
		if oz >= 0 {
			q0 = quat.Number{Real: 1}
		} else {
			q0 = quat.Number{Real: 0, Imag: 1}
		}
	} else {
		axisX, axisY := -oy/planar, ox/planar
		angle := math.Acos(clamp(oz, -1, 1))
		q0 = axisAngleToQuat(axisX, axisY, 0, angle)
	}
	qTwist := axisAngleToQuat(ox, oy, oz, ov.Theta)
	return quat.Mul(qTwist, q0)
}
