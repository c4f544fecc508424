package kinematics

import (
	"github.com/golang/geo/r3"

	"github.com/Aoi-hosizora/dart/spatialmath"
)

// screwAxis is a unit-speed motion along a fixed unit axis: a rotation about the axis combined
// with pitch units of translation per radian, or a pure translation along it.
type screwAxis struct {
	axis        r3.Vector
	pitch       float64
	translation bool
}

func revoluteAxis(axis r3.Vector) screwAxis {
	return screwAxis{axis: axis}
}

func prismaticAxis(axis r3.Vector) screwAxis {
	return screwAxis{axis: axis, translation: true}
}

// twist returns the spatial velocity produced by unit speed along the axis.
func (s screwAxis) twist() spatialmath.SpatialVector {
	if s.translation {
		return spatialmath.SpatialVector{Linear: s.axis}
	}
	return spatialmath.SpatialVector{Angular: s.axis, Linear: s.axis.Mul(s.pitch)}
}

// exp returns the transform reached after moving q along the axis.
func (s screwAxis) exp(q float64) spatialmath.Transform {
	if s.translation {
		return spatialmath.NewTranslation(s.axis.Mul(q))
	}
	return spatialmath.NewTransform(spatialmath.RotationAboutAxis(s.axis, q), s.axis.Mul(s.pitch*q))
}

// productOfExponentials returns exp(ξ0 q0)·…·exp(ξn qn).
func productOfExponentials(axes []screwAxis, q []float64) spatialmath.Transform {
	tf := spatialmath.NewZeroTransform()
	for i, a := range axes {
		tf = spatialmath.Compose(tf, a.exp(q[i]))
	}
	return tf
}

// bodyJacobian returns the columns S_i with T⁻¹·dT = Σ S_i dq_i for the product of exponentials,
// i.e. each twist pulled back through the motions applied after it.
func bodyJacobian(axes []screwAxis, q []float64) spatialmath.Jacobian {
	jac := spatialmath.NewJacobian(len(axes))
	tail := spatialmath.NewZeroTransform()
	for i := len(axes) - 1; i >= 0; i-- {
		jac[i] = spatialmath.AdInvT(tail, axes[i].twist())
		tail = spatialmath.Compose(axes[i].exp(q[i]), tail)
	}
	return jac
}

// bodyJacobianTimeDeriv returns dS_i = Σ_{k>i} ad(S_i, S_k) dq_k for the columns of bodyJacobian.
func bodyJacobianTimeDeriv(jac spatialmath.Jacobian, dq []float64) spatialmath.Jacobian {
	djac := spatialmath.NewJacobian(len(jac))
	for i := range jac {
		for k := i + 1; k < len(jac); k++ {
			djac[i] = djac[i].Add(spatialmath.AdBracket(jac[i], jac[k]).Mul(dq[k]))
		}
	}
	return djac
}
