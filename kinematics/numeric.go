package kinematics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/Aoi-hosizora/dart/spatialmath"
)

// NumericalLocalJacobian estimates the local Jacobian at q by central differences with step h.
// Each column perturbs the positions along one generalized velocity direction through the
// joint's own integration, so ball and free joints are differentiated along their body
// velocities.
func NumericalLocalJacobian(j *Joint, q []float64, h float64) (spatialmath.Jacobian, error) {
	tf, err := j.LocalTransformAt(q)
	if err != nil {
		return nil, err
	}
	inv := tf.Inverse().Mat4()
	jac := spatialmath.NewJacobian(j.NumDoFs())
	for i := range jac {
		dir := unitVector(len(q), i)
		plus := j.localTransform(j.integrate(q, dir, h)).Mat4()
		minus := j.localTransform(j.integrate(q, dir, -h)).Mat4()
		jac[i] = vee(inv.Mul4(plus.Sub(minus)).Mul(1 / (2 * h)))
	}
	return jac, nil
}

// NumericalLocalJacobianTimeDeriv estimates the time derivative of the local Jacobian at q
// moving with dq, by central differences of the Jacobian along dq with step h.
func NumericalLocalJacobianTimeDeriv(j *Joint, q, dq []float64, h float64) (spatialmath.Jacobian, error) {
	if err := j.checkLength(q); err != nil {
		return nil, err
	}
	if err := j.checkLength(dq); err != nil {
		return nil, err
	}
	plus := spatialmath.AdTJacobian(j.tfChild, j.motionSubspace(j.integrate(q, dq, h)))
	minus := spatialmath.AdTJacobian(j.tfChild, j.motionSubspace(j.integrate(q, dq, -h)))
	return plus.Sub(minus).Scale(1 / (2 * h)), nil
}

// vee reads the twist out of a 4x4 matrix of the form [[w]x v; 0 0].
func vee(m mgl64.Mat4) spatialmath.SpatialVector {
	return spatialmath.SpatialVector{
		Angular: r3.Vector{X: m.At(2, 1), Y: m.At(0, 2), Z: m.At(1, 0)},
		Linear:  r3.Vector{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)},
	}
}

func unitVector(n, i int) []float64 {
	v := make([]float64, n)
	v[i] = 1
	return v
}
