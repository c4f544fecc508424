package referenceframe

import (
	"github.com/golang/geo/r3"

	"github.com/Aoi-hosizora/dart/spatialmath"
)

// SimpleFrame is a free-standing frame that stores its own motion relative to its parent. It can
// be attached beneath World, another simple frame, or a body.
type SimpleFrame struct {
	Mover

	transform    spatialmath.Transform
	velocity     spatialmath.SpatialVector
	acceleration spatialmath.SpatialVector
}

// NewSimpleFrame adds a simple frame at rest beneath parent, with the given relative transform.
func NewSimpleFrame(fs *FrameSystem, name string, parent FrameID, tf spatialmath.Transform) *SimpleFrame {
	sf := &SimpleFrame{transform: tf}
	id := fs.AddFrame(name, parent, sf)
	sf.Mover = NewMover(fs, id, sf)
	return sf
}

// RelativeTransform returns the transform relative to the parent frame.
func (sf *SimpleFrame) RelativeTransform() spatialmath.Transform {
	return sf.transform
}

// RelativeSpatialVelocity returns the velocity relative to the parent frame, in own coordinates.
func (sf *SimpleFrame) RelativeSpatialVelocity() spatialmath.SpatialVector {
	return sf.velocity
}

// RelativeSpatialAcceleration returns the acceleration relative to the parent frame, in own coordinates.
func (sf *SimpleFrame) RelativeSpatialAcceleration() spatialmath.SpatialVector {
	return sf.acceleration
}

// SetRelativeTransform sets the transform relative to the parent frame.
func (sf *SimpleFrame) SetRelativeTransform(tf spatialmath.Transform) {
	sf.transform = tf
	sf.fs.Invalidate(sf.id, TransformChanged)
}

// SetRelativeSpatialVelocity sets the velocity relative to the parent frame, in own coordinates.
func (sf *SimpleFrame) SetRelativeSpatialVelocity(vel spatialmath.SpatialVector) {
	sf.velocity = vel
	sf.fs.Invalidate(sf.id, VelocityChanged)
}

// SetRelativeSpatialAcceleration sets the acceleration relative to the parent frame, in own coordinates.
func (sf *SimpleFrame) SetRelativeSpatialAcceleration(acc spatialmath.SpatialVector) {
	sf.acceleration = acc
	sf.fs.Invalidate(sf.id, AccelerationChanged)
}

// SetClassicalDerivatives sets the motion relative to the parent frame from classical
// quantities, all expressed in the coordinates of the parent frame.
func (sf *SimpleFrame) SetClassicalDerivatives(linearVel, angularVel, linearAcc, angularAcc r3.Vector) {
	parent := sf.fs.Parent(sf.id)
	sf.SetLinearVelocity(linearVel, parent, parent)
	sf.SetAngularVelocity(angularVel, parent, parent)
	sf.SetLinearAcceleration(linearAcc, parent, parent)
	sf.SetAngularAcceleration(angularAcc, parent, parent)
}

// SetParentFrame moves the frame beneath a new parent, keeping its relative motion.
func (sf *SimpleFrame) SetParentFrame(parent FrameID) {
	sf.fs.SetParent(sf.id, parent)
}
