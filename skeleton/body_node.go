package skeleton

import (
	"github.com/Aoi-hosizora/dart/kinematics"
	"github.com/Aoi-hosizora/dart/referenceframe"
	"github.com/Aoi-hosizora/dart/spatialmath"
	"github.com/Aoi-hosizora/dart/utils"
)

// BodyNodeConfig describes a body node.
type BodyNodeConfig struct {
	Name string `json:"name" yaml:"name"`
}

// Validate ensures all parts of the config are valid.
func (cfg *BodyNodeConfig) Validate(path string) error {
	if cfg.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	return nil
}

// BodyNode is a rigid body of a skeleton. Its frame is driven by its parent joint, so every
// Frame query on a body node reflects the current joint state.
type BodyNode struct {
	referenceframe.Frame

	name     string
	skel     *Skeleton
	parent   *BodyNode
	children []*BodyNode
	joint    *kinematics.Joint
	removed  bool
}

// Name returns the name of the body node. It stays available after the body is removed.
func (bn *BodyNode) Name() string {
	return bn.name
}

// Removed reports whether the body node has been removed from its skeleton.
func (bn *BodyNode) Removed() bool {
	return bn.removed
}

// Skeleton returns the skeleton owning the body node.
func (bn *BodyNode) Skeleton() *Skeleton {
	return bn.skel
}

// ParentBodyNode returns the parent body, or nil for a root body.
func (bn *BodyNode) ParentBodyNode() *BodyNode {
	return bn.parent
}

// ChildBodyNodes returns the child bodies in creation order.
func (bn *BodyNode) ChildBodyNodes() []*BodyNode {
	return append([]*BodyNode(nil), bn.children...)
}

// ParentJoint returns the joint connecting the body to its parent.
func (bn *BodyNode) ParentJoint() *kinematics.Joint {
	return bn.joint
}

// FrameID returns the handle of the body's frame.
func (bn *BodyNode) FrameID() referenceframe.FrameID {
	return bn.ID()
}

// ParentFrameID returns the frame of the parent body, or World for a root body.
func (bn *BodyNode) ParentFrameID() referenceframe.FrameID {
	if bn.parent == nil {
		return referenceframe.World
	}
	return bn.parent.ID()
}

// Mover returns a mover that sets the motion of the body relative to any frame by writing the
// positions, velocities and accelerations of its free parent joint.
func (bn *BodyNode) Mover() (referenceframe.Mover, error) {
	if bn.joint.Type() != kinematics.FreeJoint {
		return referenceframe.Mover{}, kinematics.NewWrongJointTypeError(bn.joint.Name(), bn.joint.Type(), kinematics.FreeJoint)
	}
	return referenceframe.NewMover(bn.FrameSystem(), bn.ID(), freeJointSetter{bn.joint}), nil
}

// freeJointSetter writes relative motion through a free joint.
type freeJointSetter struct {
	joint *kinematics.Joint
}

func (s freeJointSetter) SetRelativeTransform(tf spatialmath.Transform) {
	mustSet(s.joint.SetRelativeTransform(tf))
}

func (s freeJointSetter) SetRelativeSpatialVelocity(vel spatialmath.SpatialVector) {
	mustSet(s.joint.SetRelativeSpatialVelocity(vel))
}

func (s freeJointSetter) SetRelativeSpatialAcceleration(acc spatialmath.SpatialVector) {
	mustSet(s.joint.SetRelativeSpatialAcceleration(acc))
}

// mustSet panics on errors that only a non-free joint can produce.
func mustSet(err error) {
	if err != nil {
		panic(err)
	}
}
