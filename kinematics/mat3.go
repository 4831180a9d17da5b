package kinematics

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/Rish619/lbr-redundant-ik/spatialmath"
)

// crossMatrix returns the skew-symmetric matrix K such that K*v == n.Cross(v)
// for all v.
func crossMatrix(n r3.Vector) *spatialmath.RotationMatrix {
	return spatialmath.NewRotationMatrixFromRows(
		r3.Vector{X: 0, Y: -n.Z, Z: n.Y},
		r3.Vector{X: n.Z, Y: 0, Z: -n.X},
		r3.Vector{X: -n.Y, Y: n.X, Z: 0},
	)
}

// mat3Add returns a+b element-wise.
func mat3Add(a, b *spatialmath.RotationMatrix) *spatialmath.RotationMatrix {
	entries := [9]float64{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			entries[r*3+c] = a.At(r, c) + b.At(r, c)
		}
	}
	return mat3FromEntries(entries)
}

// mat3Scale returns m scaled by s.
func mat3Scale(m *spatialmath.RotationMatrix, s float64) *spatialmath.RotationMatrix {
	entries := [9]float64{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			entries[r*3+c] = m.At(r, c) * s
		}
	}
	return mat3FromEntries(entries)
}

func mat3FromEntries(e [9]float64) *spatialmath.RotationMatrix {
	return spatialmath.NewRotationMatrixFromRows(
		r3.Vector{X: e[0], Y: e[1], Z: e[2]},
		r3.Vector{X: e[3], Y: e[4], Z: e[5]},
		r3.Vector{X: e[6], Y: e[7], Z: e[8]},
	)
}

// rotY returns the rotation-like matrix Rx(90)*Rz(theta)*Rx(-90), used for
// the fixed elbow-joint twist between the shoulder and wrist coefficient
// blocks.
func rotY(theta float64) *spatialmath.RotationMatrix {
	sinT, cosT := math.Sin(theta), math.Cos(theta)
	return spatialmath.NewRotationMatrixFromRows(
		r3.Vector{X: cosT, Y: 0, Z: -sinT},
		r3.Vector{X: 0, Y: 1, Z: 0},
		r3.Vector{X: sinT, Y: 0, Z: cosT},
	)
}
