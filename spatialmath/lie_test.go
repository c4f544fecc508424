package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestExpLogRot(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		// stay inside the principal ball |w| < π
		w := RandomVector(r, -1.8, 1.8)
		if w.Norm() >= math.Pi {
			continue
		}
		rot := ExpMapRot(w)
		test.That(t, rot.IsRotation(1e-12), test.ShouldBeTrue)
		back := LogMapRot(rot)
		test.That(t, back.X, test.ShouldAlmostEqual, w.X, 1e-9)
		test.That(t, back.Y, test.ShouldAlmostEqual, w.Y, 1e-9)
		test.That(t, back.Z, test.ShouldAlmostEqual, w.Z, 1e-9)
	}
}

func TestExpLogRotEdges(t *testing.T) {
	test.That(t, ExpMapRot(r3.Vector{}), test.ShouldResemble, NewIdentityRotation())
	test.That(t, LogMapRot(NewIdentityRotation()), test.ShouldResemble, r3.Vector{})

	tiny := r3.Vector{X: 1e-9, Y: -2e-9}
	back := LogMapRot(ExpMapRot(tiny))
	test.That(t, back.X, test.ShouldAlmostEqual, tiny.X, 1e-15)
	test.That(t, back.Y, test.ShouldAlmostEqual, tiny.Y, 1e-15)

	// at π the axis sign is ambiguous but the angle is not
	half := LogMapRot(RotationAboutAxis(r3.Vector{Y: 1}, math.Pi))
	test.That(t, half.Norm(), test.ShouldAlmostEqual, math.Pi)
	test.That(t, ExpMapRot(half).AlmostEqual(RotationAboutAxis(r3.Vector{Y: 1}, math.Pi), 1e-12), test.ShouldBeTrue)

	huge := ExpMapRot(r3.Vector{X: 1e64, Y: -1e64, Z: 3e63})
	test.That(t, huge.IsRotation(1e-9), test.ShouldBeTrue)
}

func TestExpLogSE3(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		s := RandomSpatialVector(r, -1.5, 1.5)
		if s.Angular.Norm() >= math.Pi {
			continue
		}
		tf := ExpMap(s)
		test.That(t, VerifyTransform(tf), test.ShouldBeTrue)
		test.That(t, LogMap(tf).AlmostEqual(s, 1e-9), test.ShouldBeTrue)
	}

	pure := SpatialVector{Linear: r3.Vector{X: 1, Y: 2, Z: 3}}
	test.That(t, ExpMap(pure).AlmostEqual(NewTranslation(pure.Linear), 0), test.ShouldBeTrue)
	test.That(t, LogMap(NewZeroTransform()), test.ShouldResemble, SpatialVector{})
}

func TestExpMapIsScrewMotion(t *testing.T) {
	// a unit twist about z through the origin with pitch p
	p := 0.25
	theta := 1.2
	s := SpatialVector{Angular: r3.Vector{Z: theta}, Linear: r3.Vector{Z: p * theta}}
	tf := ExpMap(s)
	test.That(t, tf.Rotation.AlmostEqual(RotationAboutAxis(r3.Vector{Z: 1}, theta), 1e-12), test.ShouldBeTrue)
	test.That(t, tf.Translation.Z, test.ShouldAlmostEqual, p*theta)
	test.That(t, tf.Translation.X, test.ShouldAlmostEqual, 0.)
}

func TestExpMapDerivative(t *testing.T) {
	// d/dh exp(h s) at h=0 is the twist itself
	r := rand.New(rand.NewSource(3))
	s := RandomSpatialVector(r, -1, 1)
	h := 1e-7
	tf := ExpMap(s.Mul(h))
	omega := LogMapRot(tf.Rotation).Mul(1 / h)
	test.That(t, omega.X, test.ShouldAlmostEqual, s.Angular.X, 1e-6)
	test.That(t, omega.Y, test.ShouldAlmostEqual, s.Angular.Y, 1e-6)
	test.That(t, omega.Z, test.ShouldAlmostEqual, s.Angular.Z, 1e-6)
	test.That(t, tf.Translation.X/h, test.ShouldAlmostEqual, s.Linear.X, 1e-6)
}

func TestSkew(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		w := RandomVector(r, -2, 2)
		v := RandomVector(r, -2, 2)
		got := Skew(w).Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
		want := w.Cross(v)
		test.That(t, got[0], test.ShouldAlmostEqual, want.X, 1e-12)
		test.That(t, got[1], test.ShouldAlmostEqual, want.Y, 1e-12)
		test.That(t, got[2], test.ShouldAlmostEqual, want.Z, 1e-12)
		test.That(t, Skew(w).Transpose(), test.ShouldResemble, Skew(w.Mul(-1)))
	}
}
