package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a 3x3 orthonormal rotation matrix stored row-major.
type RotationMatrix struct {
	data [9]float64
}

// NewRotationMatrixFromRows builds a RotationMatrix from its three rows.
func NewRotationMatrixFromRows(r0, r1, r2 r3.Vector) *RotationMatrix {
	return &RotationMatrix{data: [9]float64{
		r0.X, r0.Y, r0.Z,
		r1.X, r1.Y, r1.Z,
		r2.X, r2.Y, r2.Z,
	}}
}

// At returns the element at row r, column c (0-indexed).
func (rm *RotationMatrix) At(r, c int) float64 {
	return rm.data[r*3+c]
}

// Row returns row r as a vector.
func (rm *RotationMatrix) Row(r int) r3.Vector {
	return r3.Vector{X: rm.At(r, 0), Y: rm.At(r, 1), Z: rm.At(r, 2)}
}

// Col returns column c as a vector.
func (rm *RotationMatrix) Col(c int) r3.Vector {
	return r3.Vector{X: rm.At(0, c), Y: rm.At(1, c), Z: rm.At(2, c)}
}

// MulVec applies the rotation to a vector.
func (rm *RotationMatrix) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm.At(0, 0)*v.X + rm.At(0, 1)*v.Y + rm.At(0, 2)*v.Z,
		Y: rm.At(1, 0)*v.X + rm.At(1, 1)*v.Y + rm.At(1, 2)*v.Z,
		Z: rm.At(2, 0)*v.X + rm.At(2, 1)*v.Y + rm.At(2, 2)*v.Z,
	}
}

// Transpose returns the transpose, which for an orthonormal matrix is also
// its inverse.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	out := &RotationMatrix{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.data[c*3+r] = rm.At(r, c)
		}
	}
	return out
}

// Mul composes two rotation matrices, this*other.
func (rm *RotationMatrix) Mul(other *RotationMatrix) *RotationMatrix {
	out := &RotationMatrix{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += rm.At(r, k) * other.At(k, c)
			}
			out.data[r*3+c] = sum
		}
	}
	return out
}

// QuatToRotationMatrix converts a unit quaternion to a rotation matrix.
func QuatToRotationMatrix(q quat.Number) *RotationMatrix {
	q = quatNormalize(q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return &RotationMatrix{data: [9]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w),
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w),
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y),
	}}
}

// RotationMatrixToQuat converts a rotation matrix back to a unit quaternion
// using the standard trace-based extraction.
func RotationMatrixToQuat(rm *RotationMatrix) quat.Number {
	m00, m11, m22 := rm.At(0, 0), rm.At(1, 1), rm.At(2, 2)
	trace := m00 + m11 + m22
	var q quat.Number
	switch {
	case trace > 0:
		s := 0.5 / sqrtSafe(trace+1.0)
		q.Real = 0.25 / s
		q.Imag = (rm.At(2, 1) - rm.At(1, 2)) * s
		q.Jmag = (rm.At(0, 2) - rm.At(2, 0)) * s
		q.Kmag = (rm.At(1, 0) - rm.At(0, 1)) * s
	case m00 > m11 && m00 > m22:
		s := 2.0 * sqrtSafe(1.0+m00-m11-m22)
		q.Real = (rm.At(2, 1) - rm.At(1, 2)) / s
		q.Imag = 0.25 * s
		q.Jmag = (rm.At(0, 1) + rm.At(1, 0)) / s
		q.Kmag = (rm.At(0, 2) + rm.At(2, 0)) / s
	case m11 > m22:
		s := 2.0 * sqrtSafe(1.0+m11-m00-m22)
		q.Real = (rm.At(0, 2) - rm.At(2, 0)) / s
		q.Imag = (rm.At(0, 1) + rm.At(1, 0)) / s
		q.Jmag = 0.25 * s
		q.Kmag = (rm.At(1, 2) + rm.At(2, 1)) / s
	default:
		s := 2.0 * sqrtSafe(1.0+m22-m00-m11)
		q.Real = (rm.At(1, 0) - rm.At(0, 1)) / s
		q.Imag = (rm.At(0, 2) + rm.At(2, 0)) / s
		q.Jmag = (rm.At(1, 2) + rm.At(2, 1)) / s
		q.Kmag = 0.25 * s
	}
	return quatNormalize(q)
}

func sqrtSafe(v float64) float64 {
	if v < 0 {
		return 0
	}
	return math.Sqrt(v)
}
