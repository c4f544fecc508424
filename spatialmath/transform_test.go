package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestComposeInverse(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		a := RandomTransform(r)
		b := RandomTransform(r)
		c := RandomTransform(r)

		test.That(t, VerifyTransform(a), test.ShouldBeTrue)
		test.That(t, Compose(a, a.Inverse()).AlmostEqual(NewZeroTransform(), 1e-12), test.ShouldBeTrue)
		test.That(t, Compose(a.Inverse(), a).AlmostEqual(NewZeroTransform(), 1e-12), test.ShouldBeTrue)
		test.That(t, Compose(Compose(a, b), c).AlmostEqual(Compose(a, Compose(b, c)), 1e-12), test.ShouldBeTrue)
		test.That(t, InvCompose(a, b).AlmostEqual(Compose(a.Inverse(), b), 1e-12), test.ShouldBeTrue)
		test.That(t, Compose(NewZeroTransform(), a).AlmostEqual(a, 0), test.ShouldBeTrue)
	}
}

func TestApply(t *testing.T) {
	tf := NewTransform(RotationAboutAxis(r3.Vector{Z: 1}, math.Pi/2), r3.Vector{X: 1, Y: 2, Z: 3})
	p := tf.Apply(r3.Vector{X: 1})
	test.That(t, p.X, test.ShouldAlmostEqual, 1.)
	test.That(t, p.Y, test.ShouldAlmostEqual, 3.)
	test.That(t, p.Z, test.ShouldAlmostEqual, 3.)
	back := tf.Inverse().Apply(p)
	test.That(t, back.X, test.ShouldAlmostEqual, 1.)
	test.That(t, back.Y, test.ShouldAlmostEqual, 0.)
	test.That(t, back.Z, test.ShouldAlmostEqual, 0.)
}

func TestMat4(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	a := RandomTransform(r)
	b := RandomTransform(r)
	m := a.Mat4().Mul4(b.Mat4())
	test.That(t, NewTransformFromMat4(m).AlmostEqual(Compose(a, b), 1e-12), test.ShouldBeTrue)
	test.That(t, a.Mat4().At(3, 3), test.ShouldEqual, 1.)
	test.That(t, a.Mat4().At(0, 3), test.ShouldEqual, a.Translation.X)
}

func TestVerifyTransform(t *testing.T) {
	test.That(t, VerifyTransform(NewZeroTransform()), test.ShouldBeTrue)
	test.That(t, VerifyTransform(Transform{}), test.ShouldBeFalse)

	reflection := NewRotation(RotationMatrix{-1, 0, 0, 0, 1, 0, 0, 0, 1})
	test.That(t, VerifyTransform(reflection), test.ShouldBeFalse)

	tf := NewTranslation(r3.Vector{X: math.NaN()})
	test.That(t, VerifyTransform(tf), test.ShouldBeFalse)
	tf = NewTranslation(r3.Vector{X: 1e64})
	test.That(t, VerifyTransform(tf), test.ShouldBeTrue)
}

func TestQuaternionRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		rot := ExpMapRot(RandomVector(r, -3, 3))
		back := QuatToRotationMatrix(rot.Quaternion())
		test.That(t, back.AlmostEqual(rot, 1e-12), test.ShouldBeTrue)
	}
	// pivots other than the trace
	for _, axis := range []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}} {
		rot := RotationAboutAxis(axis, math.Pi)
		back := QuatToRotationMatrix(rot.Quaternion())
		test.That(t, back.AlmostEqual(rot, 1e-12), test.ShouldBeTrue)
	}
}

func TestPoseConfig(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	tf := RandomTransform(r)
	cfg := NewPoseConfig(tf)
	test.That(t, cfg.Transform().AlmostEqual(tf, 1e-12), test.ShouldBeTrue)

	var nilCfg *PoseConfig
	test.That(t, nilCfg.Transform(), test.ShouldResemble, NewZeroTransform())
}
