package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// SpatialVector is a 6D motion vector: angular part first, then linear.
type SpatialVector struct {
	Angular r3.Vector
	Linear  r3.Vector
}

// NewSpatialVector builds a spatial vector from its two halves.
func NewSpatialVector(angular, linear r3.Vector) SpatialVector {
	return SpatialVector{Angular: angular, Linear: linear}
}

// SpatialVectorFromArray reads [wx wy wz vx vy vz].
func SpatialVectorFromArray(a [6]float64) SpatialVector {
	return SpatialVector{
		Angular: r3.Vector{X: a[0], Y: a[1], Z: a[2]},
		Linear:  r3.Vector{X: a[3], Y: a[4], Z: a[5]},
	}
}

// Array returns [wx wy wz vx vy vz].
func (v SpatialVector) Array() [6]float64 {
	return [6]float64{v.Angular.X, v.Angular.Y, v.Angular.Z, v.Linear.X, v.Linear.Y, v.Linear.Z}
}

// At returns the i-th component.
func (v SpatialVector) At(i int) float64 {
	return v.Array()[i]
}

// Add returns v+o.
func (v SpatialVector) Add(o SpatialVector) SpatialVector {
	return SpatialVector{v.Angular.Add(o.Angular), v.Linear.Add(o.Linear)}
}

// Sub returns v-o.
func (v SpatialVector) Sub(o SpatialVector) SpatialVector {
	return SpatialVector{v.Angular.Sub(o.Angular), v.Linear.Sub(o.Linear)}
}

// Mul scales both parts.
func (v SpatialVector) Mul(s float64) SpatialVector {
	return SpatialVector{v.Angular.Mul(s), v.Linear.Mul(s)}
}

// Dot returns the 6D dot product.
func (v SpatialVector) Dot(o SpatialVector) float64 {
	return v.Angular.Dot(o.Angular) + v.Linear.Dot(o.Linear)
}

// Norm returns the 6D euclidean norm.
func (v SpatialVector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// AlmostEqual compares every component within tol.
func (v SpatialVector) AlmostEqual(o SpatialVector, tol float64) bool {
	a, b := v.Array(), o.Array()
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func (v SpatialVector) String() string {
	a := v.Array()
	return fmt.Sprintf("[%.6g %.6g %.6g | %.6g %.6g %.6g]", a[0], a[1], a[2], a[3], a[4], a[5])
}

// AdT re-expresses a motion vector given in the child frame of t in its parent frame.
func AdT(t Transform, v SpatialVector) SpatialVector {
	w := t.Rotation.Mul(v.Angular)
	return SpatialVector{
		Angular: w,
		Linear:  t.Translation.Cross(w).Add(t.Rotation.Mul(v.Linear)),
	}
}

// AdInvT is AdT of the inverse transform.
func AdInvT(t Transform, v SpatialVector) SpatialVector {
	return SpatialVector{
		Angular: t.Rotation.MulTranspose(v.Angular),
		Linear:  t.Rotation.MulTranspose(v.Linear.Sub(t.Translation.Cross(v.Angular))),
	}
}

// AdR rotates both halves by the rotation of t, ignoring its translation.
func AdR(t Transform, v SpatialVector) SpatialVector {
	return SpatialVector{t.Rotation.Mul(v.Angular), t.Rotation.Mul(v.Linear)}
}

// AdInvR rotates both halves by the inverse rotation of t.
func AdInvR(t Transform, v SpatialVector) SpatialVector {
	return SpatialVector{t.Rotation.MulTranspose(v.Angular), t.Rotation.MulTranspose(v.Linear)}
}

// AdBracket is the Lie bracket ad(v, w) of se(3), the rate of change of w seen from a frame moving with v.
func AdBracket(v, w SpatialVector) SpatialVector {
	return SpatialVector{
		Angular: v.Angular.Cross(w.Angular),
		Linear:  v.Angular.Cross(w.Linear).Add(v.Linear.Cross(w.Angular)),
	}
}
