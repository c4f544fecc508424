package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// DualQuaternion is a unit dual quaternion encoding of a rigid transform.
type DualQuaternion struct {
	dualquat.Number
}

// NewDualQuaternion returns the identity. The real part of a dual quaternion should be a unit
// quaternion, not all zeroes, so this should be used instead of DualQuaternion{}.
func NewDualQuaternion() DualQuaternion {
	return DualQuaternion{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// NewDualQuaternionFromTransform encodes a transform.
func NewDualQuaternionFromTransform(t Transform) DualQuaternion {
	q := DualQuaternion{dualquat.Number{Real: t.Rotation.Quaternion()}}
	q.SetTranslation(t.Translation)
	return q
}

// SetTranslation sets the translation against the current rotation.
func (q *DualQuaternion) SetTranslation(p r3.Vector) {
	q.Dual = quat.Mul(quat.Number{Imag: p.X / 2, Jmag: p.Y / 2, Kmag: p.Z / 2}, q.Real)
}

// Translation recovers the translation, t = 2 * dual * conj(real).
func (q DualQuaternion) Translation() r3.Vector {
	t := quat.Scale(2, quat.Mul(q.Dual, quat.Conj(q.Real)))
	return r3.Vector{X: t.Imag, Y: t.Jmag, Z: t.Kmag}
}

// Transform decodes the dual quaternion.
func (q DualQuaternion) Transform() Transform {
	return Transform{Rotation: QuatToRotationMatrix(q.Real), Translation: q.Translation()}
}

// Transformation multiplies the dual quat contained in this DualQuaternion by another dual quat.
func (q DualQuaternion) Transformation(by dualquat.Number) dualquat.Number {
	// Ensure we are multiplying by a unit dual quaternion
	if vecLen := 1 / quat.Abs(by.Real); vecLen != 1 {
		by.Real = quat.Scale(vecLen, by.Real)
		by.Dual = quat.Scale(vecLen, by.Dual)
	}

	return dualquat.Mul(q.Number, by)
}

// Invert returns the inverse transform.
func (q DualQuaternion) Invert() DualQuaternion {
	return DualQuaternion{dualquat.ConjQuat(q.Number)}
}
