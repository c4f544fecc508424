package skeleton

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/Aoi-hosizora/dart/kinematics"
	"github.com/Aoi-hosizora/dart/logging"
	"github.com/Aoi-hosizora/dart/referenceframe"
	"github.com/Aoi-hosizora/dart/spatialmath"
)

const (
	numSamples        = 100
	skeletonTolerance = 1e-6
	fdStep            = 1e-5
)

func newTestSkeleton(t *testing.T) *Skeleton {
	t.Helper()
	logger := logging.NewTestLogger(t)
	return New("skel", referenceframe.NewFrameSystem(logger), logger)
}

func randomJointConfig(r *rand.Rand, name string, jt kinematics.JointType) kinematics.JointConfig {
	return kinematics.JointConfig{
		Name:                        name,
		Type:                        jt,
		Axis:                        spatialmath.RandomVector(r, -1, 1),
		Axis2:                       spatialmath.RandomVector(r, -1, 1),
		TransformFromParentBodyNode: spatialmath.NewPoseConfig(spatialmath.RandomTransform(r)),
		TransformFromChildBodyNode:  spatialmath.NewPoseConfig(spatialmath.RandomTransform(r)),
	}
}

func mustAdd(
	t *testing.T,
	s *Skeleton,
	parent *BodyNode,
	cfg kinematics.JointConfig,
	body string,
) (*kinematics.Joint, *BodyNode) {
	t.Helper()
	j, bn, err := s.CreateJointAndBodyNodePair(parent, cfg, BodyNodeConfig{Name: body})
	test.That(t, err, test.ShouldBeNil)
	return j, bn
}

func randomRotation(r *rand.Rand) spatialmath.RotationMatrix {
	return spatialmath.ExpMapRot(spatialmath.RandomVector(r, -math.Pi, math.Pi))
}

// expectedRelative is the body transform produced by a joint whose own transform is jointTF.
func expectedRelative(j *kinematics.Joint, jointTF spatialmath.Transform) spatialmath.Transform {
	return spatialmath.Compose(
		spatialmath.Compose(j.TransformFromParentBodyNode(), jointTF),
		j.TransformFromChildBodyNode().Inverse())
}

func TestConvertedPositionsReproduceBodyTransforms(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	s := newTestSkeleton(t)
	_, root := mustAdd(t, s, nil, randomJointConfig(r, "weld", kinematics.WeldJoint), "root")
	free, freeBody := mustAdd(t, s, root, randomJointConfig(r, "free", kinematics.FreeJoint), "free_body")
	eulerCfg := randomJointConfig(r, "euler", kinematics.EulerJoint)
	eulerCfg.AxisOrder = spatialmath.AxisOrderZYX
	euler, eulerBody := mustAdd(t, s, freeBody, eulerCfg, "euler_body")
	ball, ballBody := mustAdd(t, s, eulerBody, randomJointConfig(r, "ball", kinematics.BallJoint), "ball_body")

	for i := 0; i < numSamples; i++ {
		desired := spatialmath.RandomTransform(r)
		jointTF := spatialmath.Compose(
			spatialmath.Compose(free.TransformFromParentBodyNode().Inverse(), desired),
			free.TransformFromChildBodyNode())
		test.That(t, free.SetPositions(kinematics.FreeConvertToPositions(jointTF)), test.ShouldBeNil)
		test.That(t, freeBody.Transform(root.ID()).AlmostEqual(desired, skeletonTolerance), test.ShouldBeTrue)

		rm := randomRotation(r)
		q, err := euler.EulerConvertToPositions(rm)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, euler.SetPositions(q), test.ShouldBeNil)
		expected := expectedRelative(euler, spatialmath.NewRotation(rm))
		test.That(t, eulerBody.Transform(freeBody.ID()).AlmostEqual(expected, skeletonTolerance), test.ShouldBeTrue)

		rm = randomRotation(r)
		test.That(t, ball.SetPositions(kinematics.BallConvertToPositions(rm)), test.ShouldBeNil)
		expected = expectedRelative(ball, spatialmath.NewRotation(rm))
		test.That(t, ballBody.Transform(eulerBody.ID()).AlmostEqual(expected, skeletonTolerance), test.ShouldBeTrue)
	}
}

// newReferenceFrames builds World -> rf1 -> rf2 -> rf3 -> rf4 and World -> rf5 -> rf6 with random motion.
func newReferenceFrames(r *rand.Rand, fs *referenceframe.FrameSystem) []referenceframe.FrameID {
	parents := []int{-1, 0, 1, 2, -1, 4}
	frames := make([]*referenceframe.SimpleFrame, 0, len(parents))
	ids := []referenceframe.FrameID{referenceframe.World}
	for i, p := range parents {
		parent := referenceframe.World
		if p >= 0 {
			parent = frames[p].ID()
		}
		f := referenceframe.NewSimpleFrame(fs, "rf"+string(rune('1'+i)), parent, spatialmath.RandomTransform(r))
		f.SetRelativeSpatialVelocity(spatialmath.RandomSpatialVector(r, -1, 1))
		f.SetRelativeSpatialAcceleration(spatialmath.RandomSpatialVector(r, -1, 1))
		frames = append(frames, f)
		ids = append(ids, f.ID())
	}
	return ids
}

func TestFreeJointMover(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	s := newTestSkeleton(t)
	refs := newReferenceFrames(r, s.FrameSystem())

	rootJoint, root := mustAdd(t, s, nil, randomJointConfig(r, "spin", kinematics.RevoluteJoint), "root")
	rootJoint.SetPosition(0, 0.3)
	rootJoint.SetVelocity(0, -0.7)
	rootJoint.SetAcceleration(0, 1.1)
	_, body := mustAdd(t, s, root, randomJointConfig(r, "free", kinematics.FreeJoint), "body")
	refs = append(refs, root.ID())

	mover, err := body.Mover()
	test.That(t, err, test.ShouldBeNil)

	for i := 0; i < 5; i++ {
		for _, rel := range refs {
			tf := spatialmath.RandomTransform(r)
			mover.SetTransform(tf, rel)
			test.That(t, body.Transform(rel).AlmostEqual(tf, skeletonTolerance), test.ShouldBeTrue)

			for _, in := range refs {
				vel := spatialmath.RandomSpatialVector(r, -1, 1)
				mover.SetSpatialVelocity(vel, rel, in)
				test.That(t, body.SpatialVelocity(rel, in).AlmostEqual(vel, skeletonTolerance), test.ShouldBeTrue)

				acc := spatialmath.RandomSpatialVector(r, -1, 1)
				mover.SetSpatialAcceleration(acc, rel, in)
				test.That(t, body.SpatialAcceleration(rel, in).AlmostEqual(acc, skeletonTolerance), test.ShouldBeTrue)
				test.That(t, body.SpatialVelocity(rel, in).AlmostEqual(vel, skeletonTolerance), test.ShouldBeTrue)
			}
		}
	}

	closeTo := func(a, b r3.Vector) bool { return a.Sub(b).Norm() < skeletonTolerance }
	for _, rel := range refs {
		for _, in := range refs {
			oldAng := body.AngularVelocity(rel, in)
			lin := spatialmath.RandomVector(r, -1, 1)
			mover.SetLinearVelocity(lin, rel, in)
			test.That(t, closeTo(body.LinearVelocity(rel, in), lin), test.ShouldBeTrue)
			test.That(t, closeTo(body.AngularVelocity(rel, in), oldAng), test.ShouldBeTrue)

			oldLinAcc := body.LinearAcceleration(rel, in)
			angAcc := spatialmath.RandomVector(r, -1, 1)
			mover.SetAngularAcceleration(angAcc, rel, in)
			test.That(t, closeTo(body.AngularAcceleration(rel, in), angAcc), test.ShouldBeTrue)
			test.That(t, closeTo(body.LinearAcceleration(rel, in), oldLinAcc), test.ShouldBeTrue)
		}
	}

	tf := spatialmath.RandomTransform(r)
	vel := spatialmath.RandomSpatialVector(r, -1, 1)
	acc := spatialmath.RandomSpatialVector(r, -1, 1)
	mover.SetSpatialMotion(referenceframe.SpatialMotion{
		Transform:                   &tf,
		TransformRelativeTo:         refs[4],
		Velocity:                    &vel,
		VelocityRelativeTo:          refs[2],
		VelocityInCoordinatesOf:     refs[6],
		Acceleration:                &acc,
		AccelerationRelativeTo:      refs[5],
		AccelerationInCoordinatesOf: referenceframe.World,
	})
	test.That(t, body.Transform(refs[4]).AlmostEqual(tf, skeletonTolerance), test.ShouldBeTrue)
	test.That(t, body.SpatialVelocity(refs[2], refs[6]).AlmostEqual(vel, skeletonTolerance), test.ShouldBeTrue)
	test.That(t, body.SpatialAcceleration(refs[5], referenceframe.World).AlmostEqual(acc, skeletonTolerance), test.ShouldBeTrue)
}

func TestMoverRequiresFreeJoint(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	s := newTestSkeleton(t)
	_, body := mustAdd(t, s, nil, randomJointConfig(r, "ball", kinematics.BallJoint), "body")
	_, err := body.Mover()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "ball")
}

// newChain builds a chain of revolute, universal and prismatic joints with random offsets.
func newChain(t *testing.T, r *rand.Rand) (*Skeleton, []*BodyNode) {
	t.Helper()
	s := newTestSkeleton(t)
	types := []kinematics.JointType{
		kinematics.RevoluteJoint, kinematics.UniversalJoint, kinematics.PrismaticJoint, kinematics.ScrewJoint,
	}
	var parent *BodyNode
	bodies := make([]*BodyNode, 0, len(types))
	for i, jt := range types {
		_, bn := mustAdd(t, s, parent, randomJointConfig(r, "joint"+string(rune('0'+i)), jt), "body"+string(rune('0'+i)))
		bodies = append(bodies, bn)
		parent = bn
	}
	return s, bodies
}

func TestForwardKinematics(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	s, bodies := newChain(t, r)
	leaf := bodies[len(bodies)-1]
	n := s.NumDoFs()
	test.That(t, n, test.ShouldEqual, 5)

	sample := func() []float64 {
		v := make([]float64, n)
		for i := range v {
			v[i] = r.Float64()*2 - 1
		}
		return v
	}
	at := func(q []float64, dq []float64, h float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = q[i] + h*dq[i]
		}
		return out
	}

	for i := 0; i < 20; i++ {
		q, dq, ddq := sample(), sample(), sample()

		// world transform is the product of relative transforms
		test.That(t, s.SetPositions(q), test.ShouldBeNil)
		expected := spatialmath.NewZeroTransform()
		for _, j := range s.Joints() {
			expected = spatialmath.Compose(expected, j.RelativeTransform())
		}
		test.That(t, leaf.WorldTransform().AlmostEqual(expected, 1e-9), test.ShouldBeTrue)

		// body velocity is the derivative of the world transform along dq
		test.That(t, s.SetPositions(at(q, dq, fdStep)), test.ShouldBeNil)
		plus := leaf.WorldTransform()
		test.That(t, s.SetPositions(at(q, dq, -fdStep)), test.ShouldBeNil)
		minus := leaf.WorldTransform()
		fdVel := spatialmath.LogMap(spatialmath.InvCompose(minus, plus)).Mul(1 / (2 * fdStep))

		test.That(t, s.SetPositions(q), test.ShouldBeNil)
		test.That(t, s.SetVelocities(dq), test.ShouldBeNil)
		vel := leaf.SpatialVelocity(referenceframe.World, leaf.ID())
		test.That(t, vel.AlmostEqual(fdVel, 1e-4), test.ShouldBeTrue)

		// body acceleration is the derivative of the body velocity along (dq, ddq)
		test.That(t, s.SetAccelerations(ddq), test.ShouldBeNil)
		acc := leaf.SpatialAcceleration(referenceframe.World, leaf.ID())

		velAt := func(h float64) spatialmath.SpatialVector {
			test.That(t, s.SetPositions(at(at(q, dq, h), ddq, h*h/2)), test.ShouldBeNil)
			test.That(t, s.SetVelocities(at(dq, ddq, h)), test.ShouldBeNil)
			return leaf.SpatialVelocity(referenceframe.World, leaf.ID())
		}
		fdAcc := velAt(fdStep).Sub(velAt(-fdStep)).Mul(1 / (2 * fdStep))
		test.That(t, acc.AlmostEqual(fdAcc, 1e-4), test.ShouldBeTrue)
	}
}

func TestJointWritesInvalidateDescendants(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	s, bodies := newChain(t, r)
	fs := s.FrameSystem()
	leaf := bodies[len(bodies)-1]
	attached := referenceframe.NewSimpleFrame(fs, "tool", leaf.ID(), spatialmath.RandomTransform(r))

	fs.Refresh()
	before := attached.WorldTransform()
	root := s.Joint("joint0")
	root.SetPosition(0, root.Position(0)+0.5)
	test.That(t, attached.WorldTransform().AlmostEqual(before, 1e-9), test.ShouldBeFalse)
	expected := spatialmath.Compose(leaf.WorldTransform(), attached.RelativeTransform())
	test.That(t, attached.WorldTransform().AlmostEqual(expected, 1e-9), test.ShouldBeTrue)

	root.SetVelocity(0, 2)
	test.That(t, leaf.SpatialVelocity(referenceframe.World, referenceframe.World).Norm(), test.ShouldBeGreaterThan, 0)

	// offsets count as joint writes
	mid := s.Joint("joint2")
	before = leaf.WorldTransform()
	mid.SetTransformFromParentBodyNode(spatialmath.RandomTransform(r))
	test.That(t, leaf.WorldTransform().AlmostEqual(before, 1e-9), test.ShouldBeFalse)
}

func TestDoFOrdering(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	s := newTestSkeleton(t)
	a, rootA := mustAdd(t, s, nil, randomJointConfig(r, "a", kinematics.RevoluteJoint), "A")
	b, bodyB := mustAdd(t, s, rootA, randomJointConfig(r, "b", kinematics.BallJoint), "B")
	c, _ := mustAdd(t, s, bodyB, randomJointConfig(r, "c", kinematics.PrismaticJoint), "C")
	d, _ := mustAdd(t, s, rootA, randomJointConfig(r, "d", kinematics.UniversalJoint), "D")
	e, _ := mustAdd(t, s, nil, randomJointConfig(r, "e", kinematics.WeldJoint), "E")
	f, _ := mustAdd(t, s, nil, randomJointConfig(r, "f", kinematics.ScrewJoint), "F")

	test.That(t, s.BodyNodeNames(), test.ShouldResemble, []string{"A", "B", "C", "D", "E", "F"})
	test.That(t, s.NumDoFs(), test.ShouldEqual, 1+3+1+2+0+1)

	for joint, index := range map[*kinematics.Joint]int{a: 0, b: 1, c: 4, d: 5, e: 7, f: 7} {
		got, err := s.DoFIndex(joint)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, got, test.ShouldEqual, index)
	}

	q := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	test.That(t, s.SetPositions(q), test.ShouldBeNil)
	test.That(t, s.Positions(), test.ShouldResemble, q)
	test.That(t, b.Positions(), test.ShouldResemble, []float64{2, 3, 4})
	test.That(t, d.Positions(), test.ShouldResemble, []float64{6, 7})
	test.That(t, f.Positions(), test.ShouldResemble, []float64{8})

	err := s.SetVelocities([]float64{1, 2})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected 8 but got 2")
	test.That(t, s.Velocities(), test.ShouldResemble, make([]float64, 8))

	test.That(t, s.SetForces(q), test.ShouldBeNil)
	test.That(t, s.Forces(), test.ShouldResemble, q)
	s.ResetForces()
	test.That(t, s.Forces(), test.ShouldResemble, make([]float64, 8))

	test.That(t, s.SetCommands(q), test.ShouldBeNil)
	test.That(t, s.Commands(), test.ShouldResemble, q)
	s.ResetCommands()
	test.That(t, s.Commands(), test.ShouldResemble, make([]float64, 8))

	table := s.String()
	test.That(t, table, test.ShouldContainSubstring, "ball")
	test.That(t, table, test.ShouldContainSubstring, "1-3")
	test.That(t, table, test.ShouldContainSubstring, "world")

	other := newTestSkeleton(t)
	stranger, _ := mustAdd(t, other, nil, randomJointConfig(r, "x", kinematics.RevoluteJoint), "X")
	_, err = s.DoFIndex(stranger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRemoveBodyNode(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	s := newTestSkeleton(t)
	fs := s.FrameSystem()
	_, rootA := mustAdd(t, s, nil, randomJointConfig(r, "a", kinematics.RevoluteJoint), "A")
	_, bodyB := mustAdd(t, s, rootA, randomJointConfig(r, "b", kinematics.BallJoint), "B")
	c, bodyC := mustAdd(t, s, bodyB, randomJointConfig(r, "c", kinematics.PrismaticJoint), "C")
	_, bodyD := mustAdd(t, s, rootA, randomJointConfig(r, "d", kinematics.UniversalJoint), "D")
	tool := referenceframe.NewSimpleFrame(fs, "tool", bodyC.ID(), spatialmath.NewZeroTransform())

	test.That(t, s.RemoveBodyNode(bodyB), test.ShouldBeNil)
	test.That(t, s.BodyNodeNames(), test.ShouldResemble, []string{"A", "D"})
	test.That(t, s.NumDoFs(), test.ShouldEqual, 3)
	test.That(t, s.BodyNode("B"), test.ShouldBeNil)
	test.That(t, s.Joint("c"), test.ShouldBeNil)
	test.That(t, bodyC.Removed(), test.ShouldBeTrue)
	test.That(t, fs.Exists(bodyC.ID()), test.ShouldBeFalse)
	test.That(t, fs.Exists(tool.ID()), test.ShouldBeFalse)
	test.That(t, fs.Exists(bodyD.ID()), test.ShouldBeTrue)
	test.That(t, rootA.ChildBodyNodes(), test.ShouldResemble, []*BodyNode{bodyD})

	// writes to joints of removed bodies no longer reach the frame system
	c.SetPosition(0, 1)
	test.That(t, c.Position(0), test.ShouldEqual, 1.)

	err := s.RemoveBodyNode(bodyB)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"B"`)

	// names of removed bodies are free again
	_, _, err = s.CreateJointAndBodyNodePair(rootA, randomJointConfig(r, "b", kinematics.FreeJoint), BodyNodeConfig{Name: "B"})
	test.That(t, err, test.ShouldBeNil)
	_, _, err = s.CreateJointAndBodyNodePair(bodyC, randomJointConfig(r, "z", kinematics.FreeJoint), BodyNodeConfig{Name: "Z"})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCreateRejectsBadInput(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	s := newTestSkeleton(t)
	_, root := mustAdd(t, s, nil, randomJointConfig(r, "a", kinematics.RevoluteJoint), "A")

	_, _, err := s.CreateJointAndBodyNodePair(root, randomJointConfig(r, "b", kinematics.RevoluteJoint), BodyNodeConfig{Name: "A"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `body node "A" already exists`)

	_, _, err = s.CreateJointAndBodyNodePair(root, randomJointConfig(r, "a", kinematics.RevoluteJoint), BodyNodeConfig{Name: "B"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `joint "a" already exists`)

	_, _, err = s.CreateJointAndBodyNodePair(root, randomJointConfig(r, "b", kinematics.RevoluteJoint), BodyNodeConfig{})
	test.That(t, err, test.ShouldNotBeNil)

	bad := randomJointConfig(r, "b", kinematics.RevoluteJoint)
	bad.DoFs = []kinematics.DoFConfig{{}, {}}
	_, _, err = s.CreateJointAndBodyNodePair(root, bad, BodyNodeConfig{Name: "B"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, s.BodyNode("B"), test.ShouldBeNil)

	other := newTestSkeleton(t)
	_, foreign := mustAdd(t, other, nil, randomJointConfig(r, "x", kinematics.RevoluteJoint), "X")
	_, _, err = s.CreateJointAndBodyNodePair(foreign, randomJointConfig(r, "b", kinematics.RevoluteJoint), BodyNodeConfig{Name: "B"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, s.RemoveBodyNode(foreign), test.ShouldNotBeNil)
}
