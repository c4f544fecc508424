// Package spatialmath defines rigid transforms, spatial vectors and the Lie group operations
// used to compose motion across reference frames.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// defaultTransformTolerance is used by VerifyTransform.
const defaultTransformTolerance = 1e-6

// Transform is a rigid transform: a point p in the child frame maps to Rotation*p + Translation
// in the parent frame.
type Transform struct {
	Rotation    RotationMatrix
	Translation r3.Vector
}

// NewZeroTransform returns the identity transform.
func NewZeroTransform() Transform {
	return Transform{Rotation: NewIdentityRotation()}
}

// NewTransform builds a transform from its parts.
func NewTransform(rotation RotationMatrix, translation r3.Vector) Transform {
	return Transform{Rotation: rotation, Translation: translation}
}

// NewTranslation returns a pure translation.
func NewTranslation(translation r3.Vector) Transform {
	return Transform{Rotation: NewIdentityRotation(), Translation: translation}
}

// NewRotation returns a pure rotation.
func NewRotation(rotation RotationMatrix) Transform {
	return Transform{Rotation: rotation}
}

// Compose returns a*b, i.e. b expressed through a.
func Compose(a, b Transform) Transform {
	return Transform{
		Rotation:    a.Rotation.MulRotation(b.Rotation),
		Translation: a.Rotation.Mul(b.Translation).Add(a.Translation),
	}
}

// Inverse returns the inverse transform.
func (t Transform) Inverse() Transform {
	rt := t.Rotation.Transpose()
	return Transform{
		Rotation:    rt,
		Translation: rt.Mul(t.Translation).Mul(-1),
	}
}

// InvCompose returns a⁻¹*b without forming the inverse separately.
func InvCompose(a, b Transform) Transform {
	return Transform{
		Rotation:    a.Rotation.Transpose().MulRotation(b.Rotation),
		Translation: a.Rotation.MulTranspose(b.Translation.Sub(a.Translation)),
	}
}

// Apply maps a point through the transform.
func (t Transform) Apply(p r3.Vector) r3.Vector {
	return t.Rotation.Mul(p).Add(t.Translation)
}

// Mat4 returns the homogeneous 4x4 matrix of the transform.
func (t Transform) Mat4() mgl64.Mat4 {
	m := mgl64.Ident4()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m.Set(row, col, t.Rotation.At(row, col))
		}
	}
	m.Set(0, 3, t.Translation.X)
	m.Set(1, 3, t.Translation.Y)
	m.Set(2, 3, t.Translation.Z)
	return m
}

// NewTransformFromMat4 reads the rotation and translation blocks of a homogeneous matrix.
func NewTransformFromMat4(m mgl64.Mat4) Transform {
	var rot RotationMatrix
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			rot[3*row+col] = m.At(row, col)
		}
	}
	return Transform{Rotation: rot, Translation: r3.Vector{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)}}
}

// AlmostEqual compares rotation and translation entries within tol.
func (t Transform) AlmostEqual(other Transform, tol float64) bool {
	return t.Rotation.AlmostEqual(other.Rotation, tol) &&
		math.Abs(t.Translation.X-other.Translation.X) <= tol &&
		math.Abs(t.Translation.Y-other.Translation.Y) <= tol &&
		math.Abs(t.Translation.Z-other.Translation.Z) <= tol
}

// VerifyTransform reports whether the rotation block is a proper rotation and every entry is finite.
func VerifyTransform(t Transform) bool {
	if !t.Rotation.IsRotation(defaultTransformTolerance) {
		return false
	}
	for _, v := range []float64{t.Translation.X, t.Translation.Y, t.Translation.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (t Transform) String() string {
	return fmt.Sprintf("{R: %v, p: (%.6g, %.6g, %.6g)}", t.Rotation, t.Translation.X, t.Translation.Y, t.Translation.Z)
}
