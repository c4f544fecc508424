package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a 3x3 rotation stored row-major.
type RotationMatrix [9]float64

// NewIdentityRotation returns the identity rotation.
func NewIdentityRotation() RotationMatrix {
	return RotationMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// NewRotationMatrixFromColumns builds a rotation whose columns are the images of the unit axes.
func NewRotationMatrixFromColumns(x, y, z r3.Vector) RotationMatrix {
	return RotationMatrix{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	}
}

// At returns the value in the given row and column.
func (rm RotationMatrix) At(row, col int) float64 {
	return rm[3*row+col]
}

// Row returns the given row as a vector.
func (rm RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm[3*row], Y: rm[3*row+1], Z: rm[3*row+2]}
}

// Col returns the given column as a vector.
func (rm RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm[col], Y: rm[3+col], Z: rm[6+col]}
}

// Mul rotates a vector.
func (rm RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm[0]*v.X + rm[1]*v.Y + rm[2]*v.Z,
		Y: rm[3]*v.X + rm[4]*v.Y + rm[5]*v.Z,
		Z: rm[6]*v.X + rm[7]*v.Y + rm[8]*v.Z,
	}
}

// MulTranspose rotates a vector by the inverse rotation.
func (rm RotationMatrix) MulTranspose(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm[0]*v.X + rm[3]*v.Y + rm[6]*v.Z,
		Y: rm[1]*v.X + rm[4]*v.Y + rm[7]*v.Z,
		Z: rm[2]*v.X + rm[5]*v.Y + rm[8]*v.Z,
	}
}

// MulRotation returns the product rm * other.
func (rm RotationMatrix) MulRotation(other RotationMatrix) RotationMatrix {
	var out RotationMatrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[3*i+j] = rm[3*i]*other[j] + rm[3*i+1]*other[3+j] + rm[3*i+2]*other[6+j]
		}
	}
	return out
}

// Transpose returns the inverse rotation.
func (rm RotationMatrix) Transpose() RotationMatrix {
	return RotationMatrix{
		rm[0], rm[3], rm[6],
		rm[1], rm[4], rm[7],
		rm[2], rm[5], rm[8],
	}
}

// Det returns the determinant.
func (rm RotationMatrix) Det() float64 {
	return rm.Row(0).Dot(rm.Row(1).Cross(rm.Row(2)))
}

// IsRotation reports whether the matrix is orthonormal with determinant +1, within tol.
func (rm RotationMatrix) IsRotation(tol float64) bool {
	for _, v := range rm {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	rrt := rm.MulRotation(rm.Transpose())
	ident := NewIdentityRotation()
	for i := range rrt {
		if math.Abs(rrt[i]-ident[i]) > tol {
			return false
		}
	}
	return math.Abs(rm.Det()-1) <= tol
}

// AlmostEqual compares every entry within tol.
func (rm RotationMatrix) AlmostEqual(other RotationMatrix, tol float64) bool {
	for i := range rm {
		if math.Abs(rm[i]-other[i]) > tol {
			return false
		}
	}
	return true
}

// Quaternion returns the unit quaternion of the rotation, using Shepperd's method so that the
// largest diagonal term is always used as the pivot.
func (rm RotationMatrix) Quaternion() quat.Number {
	m00, m01, m02 := rm[0], rm[1], rm[2]
	m10, m11, m12 := rm[3], rm[4], rm[5]
	m20, m21, m22 := rm[6], rm[7], rm[8]

	var q quat.Number
	tr := m00 + m11 + m22
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q = quat.Number{Real: s / 4, Imag: (m21 - m12) / s, Jmag: (m02 - m20) / s, Kmag: (m10 - m01) / s}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q = quat.Number{Real: (m21 - m12) / s, Imag: s / 4, Jmag: (m01 + m10) / s, Kmag: (m02 + m20) / s}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q = quat.Number{Real: (m02 - m20) / s, Imag: (m01 + m10) / s, Jmag: s / 4, Kmag: (m12 + m21) / s}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q = quat.Number{Real: (m10 - m01) / s, Imag: (m02 + m20) / s, Jmag: (m12 + m21) / s, Kmag: s / 4}
	}
	return Normalize(q)
}

// QuatToRotationMatrix converts a quaternion, which need not be unit length, to a rotation matrix.
func QuatToRotationMatrix(q quat.Number) RotationMatrix {
	q = Normalize(q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return RotationMatrix{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	}
}

// Normalize scales a quaternion to unit length. The zero quaternion maps to the identity.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

func (rm RotationMatrix) String() string {
	return fmt.Sprintf("[%.6g %.6g %.6g; %.6g %.6g %.6g; %.6g %.6g %.6g]",
		rm[0], rm[1], rm[2], rm[3], rm[4], rm[5], rm[6], rm[7], rm[8])
}
