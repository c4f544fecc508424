package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// AxisAngle is a rotation by Theta radians about a unit Axis. Scaling the axis by the angle gives
// the rotation vector, the so(3) coordinate ball and free joints use for their positions.
type AxisAngle struct {
	Axis  r3.Vector `json:"axis"`
	Theta float64   `json:"theta"`
}

// NewAxisAngle returns the rotation by theta about axis. The axis is normalized; a zero axis
// becomes +Z, which only describes a rotation when theta is zero.
func NewAxisAngle(axis r3.Vector, theta float64) AxisAngle {
	n := axis.Norm()
	if n == 0 {
		return AxisAngle{Axis: r3.Vector{Z: 1}, Theta: theta}
	}
	return AxisAngle{Axis: axis.Mul(1 / n), Theta: theta}
}

// AxisAngleFromRotationVector splits a rotation vector into its axis and angle.
func AxisAngleFromRotationVector(v r3.Vector) AxisAngle {
	return NewAxisAngle(v, v.Norm())
}

// RotationVector returns Theta·Axis.
func (aa AxisAngle) RotationVector() r3.Vector {
	return aa.Axis.Mul(aa.Theta)
}

// Quaternion returns the unit quaternion of the rotation.
func (aa AxisAngle) Quaternion() quat.Number {
	axis := NewAxisAngle(aa.Axis, aa.Theta).Axis
	s, c := math.Sincos(aa.Theta / 2)
	return quat.Number{Real: c, Imag: s * axis.X, Jmag: s * axis.Y, Kmag: s * axis.Z}
}

// RotationMatrix returns the rotation as a matrix.
func (aa AxisAngle) RotationMatrix() RotationMatrix {
	return QuatToRotationMatrix(aa.Quaternion())
}

// QuatToAxisAngle returns the axis angle of a unit quaternion. q and -q give the same result, with
// Theta in [0, π]. Near the identity the axis is +Z.
func QuatToAxisAngle(q quat.Number) AxisAngle {
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	v := r3.Vector{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	s := v.Norm()
	if s < 1e-12 {
		return AxisAngle{Axis: r3.Vector{Z: 1}}
	}
	return AxisAngle{Axis: v.Mul(1 / s), Theta: 2 * math.Atan2(s, q.Real)}
}

// QuatToRotationVector returns the rotation vector of a unit quaternion, with norm in [0, π].
func QuatToRotationVector(q quat.Number) r3.Vector {
	return QuatToAxisAngle(q).RotationVector()
}
