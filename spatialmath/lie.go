package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Below this angle the closed forms of exp and log switch to their Taylor series.
const smallAngle = 1e-6

// ExpMapRot maps a rotation vector (axis times angle) to a rotation matrix.
func ExpMapRot(w r3.Vector) RotationMatrix {
	theta := w.Norm()
	if theta < smallAngle {
		// R ≈ I + [w] + ½[w]²
		return skewSquaredPlus(w, 1-theta*theta/6, 0.5-theta*theta/24)
	}
	axis := w.Mul(1 / theta)
	s, c := math.Sincos(theta)
	return skewSquaredPlus(axis, s, 1-c)
}

// skewSquaredPlus returns I + a[w] + b[w]².
func skewSquaredPlus(w r3.Vector, a, b float64) RotationMatrix {
	x, y, z := w.X, w.Y, w.Z
	return RotationMatrix{
		1 - b*(y*y+z*z), -a*z + b*x*y, a*y + b*x*z,
		a*z + b*x*y, 1 - b*(x*x+z*z), -a*x + b*y*z,
		-a*y + b*x*z, a*x + b*y*z, 1 - b*(x*x+y*y),
	}
}

// LogMapRot maps a rotation matrix to its rotation vector with angle in [0, π].
func LogMapRot(rm RotationMatrix) r3.Vector {
	return QuatToRotationVector(rm.Quaternion())
}

// ExpMap maps a twist [w; v] to a rigid transform.
func ExpMap(s SpatialVector) Transform {
	w, v := s.Angular, s.Linear
	theta := w.Norm()
	rot := ExpMapRot(w)

	// p = (I + B[w] + C[w]²) v
	var b, c float64
	if theta < smallAngle {
		b = 0.5 - theta*theta/24
		c = 1.0/6 - theta*theta/120
	} else {
		sinT, cosT := math.Sincos(theta)
		b = (1 - cosT) / (theta * theta)
		c = (theta - sinT) / (theta * theta * theta)
	}
	wxv := w.Cross(v)
	p := v.Add(wxv.Mul(b)).Add(w.Cross(wxv).Mul(c))
	return Transform{Rotation: rot, Translation: p}
}

// LogMap maps a rigid transform to the twist [w; v] with |w| in [0, π].
func LogMap(t Transform) SpatialVector {
	w := LogMapRot(t.Rotation)
	theta := w.Norm()

	// v = (I - ½[w] + D[w]²) p
	var d float64
	if theta < smallAngle {
		d = 1.0/12 + theta*theta/720
	} else {
		sinT, cosT := math.Sincos(theta)
		d = (1 - theta*sinT/(2*(1-cosT))) / (theta * theta)
	}
	p := t.Translation
	wxp := w.Cross(p)
	v := p.Sub(wxp.Mul(0.5)).Add(w.Cross(wxp).Mul(d))
	return SpatialVector{Angular: w, Linear: v}
}

// RotationAboutAxis returns the rotation by angle about a unit axis.
func RotationAboutAxis(axis r3.Vector, angle float64) RotationMatrix {
	return ExpMapRot(axis.Mul(angle))
}

// Skew returns the matrix [w] such that [w]·v = w × v.
func Skew(w r3.Vector) mgl64.Mat3 {
	return mgl64.Mat3{
		0, w.Z, -w.Y,
		-w.Z, 0, w.X,
		w.Y, -w.X, 0,
	}
}
