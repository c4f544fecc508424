package referenceframe

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/Aoi-hosizora/dart/spatialmath"
)

const moverTolerance = 1e-9

func TestMoverSetters(t *testing.T) {
	r := rand.New(rand.NewSource(10))
	fs, frames, _ := newRandomTree(t, r)
	// moving frame hangs below f2, so its parent is neither World nor any reference frame on the f5 branch
	moving := NewSimpleFrame(fs, "moving", frames[1].ID(), spatialmath.RandomTransform(r))
	moving.SetRelativeSpatialVelocity(spatialmath.RandomSpatialVector(r, -1, 1))
	moving.SetRelativeSpatialAcceleration(spatialmath.RandomSpatialVector(r, -1, 1))

	refs := allIDs(frames)

	for i := 0; i < 10; i++ {
		for _, rel := range refs {
			tf := spatialmath.RandomTransform(r)
			moving.SetTransform(tf, rel)
			test.That(t, moving.Transform(rel).AlmostEqual(tf, moverTolerance), test.ShouldBeTrue)

			for _, in := range refs {
				vel := spatialmath.RandomSpatialVector(r, -1, 1)
				moving.SetSpatialVelocity(vel, rel, in)
				test.That(t, moving.SpatialVelocity(rel, in).AlmostEqual(vel, moverTolerance), test.ShouldBeTrue)

				acc := spatialmath.RandomSpatialVector(r, -1, 1)
				moving.SetSpatialAcceleration(acc, rel, in)
				test.That(t, moving.SpatialAcceleration(rel, in).AlmostEqual(acc, moverTolerance), test.ShouldBeTrue)
				// setting the acceleration does not disturb the velocity
				test.That(t, moving.SpatialVelocity(rel, in).AlmostEqual(vel, moverTolerance), test.ShouldBeTrue)
			}
		}
	}
}

func TestMoverClassicalSetters(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	fs, frames, _ := newRandomTree(t, r)
	moving := NewSimpleFrame(fs, "moving", frames[2].ID(), spatialmath.RandomTransform(r))
	moving.SetRelativeSpatialVelocity(spatialmath.RandomSpatialVector(r, -1, 1))
	moving.SetRelativeSpatialAcceleration(spatialmath.RandomSpatialVector(r, -1, 1))

	closeTo := func(a, b r3.Vector) bool { return a.Sub(b).Norm() < moverTolerance }

	for _, rel := range allIDs(frames) {
		for _, in := range allIDs(frames) {
			// linear and angular velocity are independent
			oldAng := moving.AngularVelocity(rel, in)
			lin := spatialmath.RandomVector(r, -1, 1)
			moving.SetLinearVelocity(lin, rel, in)
			test.That(t, closeTo(moving.LinearVelocity(rel, in), lin), test.ShouldBeTrue)
			test.That(t, closeTo(moving.AngularVelocity(rel, in), oldAng), test.ShouldBeTrue)

			ang := spatialmath.RandomVector(r, -1, 1)
			moving.SetAngularVelocity(ang, rel, in)
			test.That(t, closeTo(moving.AngularVelocity(rel, in), ang), test.ShouldBeTrue)
			test.That(t, closeTo(moving.LinearVelocity(rel, in), lin), test.ShouldBeTrue)

			// so are linear and angular acceleration
			oldAngAcc := moving.AngularAcceleration(rel, in)
			linAcc := spatialmath.RandomVector(r, -1, 1)
			moving.SetLinearAcceleration(linAcc, rel, in)
			test.That(t, closeTo(moving.LinearAcceleration(rel, in), linAcc), test.ShouldBeTrue)
			test.That(t, closeTo(moving.AngularAcceleration(rel, in), oldAngAcc), test.ShouldBeTrue)

			angAcc := spatialmath.RandomVector(r, -1, 1)
			moving.SetAngularAcceleration(angAcc, rel, in)
			test.That(t, closeTo(moving.AngularAcceleration(rel, in), angAcc), test.ShouldBeTrue)
			test.That(t, closeTo(moving.LinearAcceleration(rel, in), linAcc), test.ShouldBeTrue)
		}
	}
}

func TestMoverSpatialMotion(t *testing.T) {
	r := rand.New(rand.NewSource(12))
	fs, frames, _ := newRandomTree(t, r)
	moving := NewSimpleFrame(fs, "moving", World, spatialmath.NewZeroTransform())

	tf := spatialmath.RandomTransform(r)
	vel := spatialmath.RandomSpatialVector(r, -1, 1)
	acc := spatialmath.RandomSpatialVector(r, -1, 1)
	motion := SpatialMotion{
		Transform:                   &tf,
		TransformRelativeTo:         frames[3].ID(),
		Velocity:                    &vel,
		VelocityRelativeTo:          frames[1].ID(),
		VelocityInCoordinatesOf:     frames[5].ID(),
		Acceleration:                &acc,
		AccelerationRelativeTo:      frames[4].ID(),
		AccelerationInCoordinatesOf: World,
	}
	moving.SetSpatialMotion(motion)
	test.That(t, moving.Transform(frames[3].ID()).AlmostEqual(tf, moverTolerance), test.ShouldBeTrue)
	test.That(t, moving.SpatialVelocity(frames[1].ID(), frames[5].ID()).AlmostEqual(vel, moverTolerance), test.ShouldBeTrue)
	test.That(t, moving.SpatialAcceleration(frames[4].ID(), World).AlmostEqual(acc, moverTolerance), test.ShouldBeTrue)

	// nil targets leave the frame alone
	before := moving.RelativeTransform()
	beforeVel := moving.RelativeSpatialVelocity()
	moving.SetSpatialMotion(SpatialMotion{Acceleration: &acc})
	test.That(t, moving.RelativeTransform(), test.ShouldResemble, before)
	test.That(t, moving.RelativeSpatialVelocity(), test.ShouldResemble, beforeVel)
	test.That(t, moving.SpatialAcceleration(World, World).AlmostEqual(acc, moverTolerance), test.ShouldBeTrue)
}

func TestMoverRejectsMovingReference(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	fs, frames, _ := newRandomTree(t, r)
	child := NewSimpleFrame(fs, "child", frames[0].ID(), spatialmath.NewZeroTransform())
	test.That(t, func() { frames[0].SetTransform(spatialmath.NewZeroTransform(), frames[0].ID()) }, test.ShouldPanic)
	test.That(t, func() {
		frames[0].SetSpatialVelocity(spatialmath.SpatialVector{}, child.ID(), World)
	}, test.ShouldPanic)
	test.That(t, func() {
		frames[0].SetSpatialAcceleration(spatialmath.SpatialVector{}, frames[3].ID(), World)
	}, test.ShouldPanic)
}

func TestSetClassicalDerivatives(t *testing.T) {
	r := rand.New(rand.NewSource(14))
	fs, frames, _ := newRandomTree(t, r)
	parent := frames[1].ID()
	f := NewSimpleFrame(fs, "classical", parent, spatialmath.RandomTransform(r))

	v := spatialmath.RandomVector(r, -1, 1)
	w := spatialmath.RandomVector(r, -1, 1)
	a := spatialmath.RandomVector(r, -1, 1)
	alpha := spatialmath.RandomVector(r, -1, 1)
	f.SetClassicalDerivatives(v, w, a, alpha)

	test.That(t, f.LinearVelocity(parent, parent).Sub(v).Norm(), test.ShouldBeLessThan, moverTolerance)
	test.That(t, f.AngularVelocity(parent, parent).Sub(w).Norm(), test.ShouldBeLessThan, moverTolerance)
	test.That(t, f.LinearAcceleration(parent, parent).Sub(a).Norm(), test.ShouldBeLessThan, moverTolerance)
	test.That(t, f.AngularAcceleration(parent, parent).Sub(alpha).Norm(), test.ShouldBeLessThan, moverTolerance)
}
