package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles represents roll-pitch-yaw angles about the fixed X, Y and Z
// axes (R = Rz(yaw)*Ry(pitch)*Rx(roll)), in radians.
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Quaternion returns orientation in quaternion representation.
func (e *EulerAngles) Quaternion() quat.Number {
	return EulerAnglesToQuat(e)
}

// AxisAngles returns the orientation in axis angle representation.
func (e *EulerAngles) AxisAngles() *R4AA {
	return QuatToR4AA(e.Quaternion())
}

// OrientationVectorRadians returns orientation as an orientation vector.
func (e *EulerAngles) OrientationVectorRadians() *OrientationVector {
	return QuatToOV(e.Quaternion())
}

// OrientationVectorDegrees returns orientation as an orientation vector in degrees.
func (e *EulerAngles) OrientationVectorDegrees() *OrientationVectorDegrees {
	return QuatToOVD(e.Quaternion())
}

// EulerAngles returns e unchanged.
func (e *EulerAngles) EulerAngles() *EulerAngles {
	return e
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (e *EulerAngles) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(e.Quaternion())
}

// QuatToEulerAngles extracts fixed-axis roll-pitch-yaw angles from a unit
// quaternion.
func QuatToEulerAngles(q quat.Number) *EulerAngles {
	rm := QuatToRotationMatrix(q)
	m20 := clamp(rm.At(2, 0), -1, 1)
	pitch := -math.Asin(m20)
	var roll, yaw float64
	if math.Abs(m20) > 1-1e-9 {
		// gimbal lock: roll and yaw are not independently observable, fold
		// the combined rotation into yaw.
		roll = 0
		yaw = math.Atan2(-rm.At(0, 1), rm.At(1, 1))
	} else {
		roll = math.Atan2(rm.At(2, 1), rm.At(2, 2))
		yaw = math.Atan2(rm.At(1, 0), rm.At(0, 0))
	}
	return &EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw}
}

// EulerAnglesToQuat builds a unit quaternion from fixed-axis roll-pitch-yaw
// angles.
func EulerAnglesToQuat(e *EulerAngles) quat.Number {
	cr, sr := math.Cos(e.Roll/2), math.Sin(e.Roll/2)
	cp, sp := math.Cos(e.Pitch/2), math.Sin(e.Pitch/2)
	cy, sy := math.Cos(e.Yaw/2), math.Sin(e.Yaw/2)
	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}
