package referenceframe

import (
	"github.com/golang/geo/r3"

	"github.com/Aoi-hosizora/dart/spatialmath"
)

// RelativeMotionSetter stores the motion of a frame relative to its parent, in the frame's own
// coordinates, and invalidates the frame in its FrameSystem.
type RelativeMotionSetter interface {
	SetRelativeTransform(spatialmath.Transform)
	SetRelativeSpatialVelocity(spatialmath.SpatialVector)
	SetRelativeSpatialAcceleration(spatialmath.SpatialVector)
}

// Mover sets the motion of a frame with respect to any other frame by solving for the
// parent-relative motion its setter accepts.
type Mover struct {
	Frame
	setter RelativeMotionSetter
}

// NewMover returns a Mover writing frame id through setter.
func NewMover(fs *FrameSystem, id FrameID, setter RelativeMotionSetter) Mover {
	return Mover{Frame: NewFrame(fs, id), setter: setter}
}

// SpatialMotion groups optional transform, velocity and acceleration targets for SetSpatialMotion.
// Nil targets are left unchanged.
type SpatialMotion struct {
	Transform           *spatialmath.Transform
	TransformRelativeTo FrameID

	Velocity                *spatialmath.SpatialVector
	VelocityRelativeTo      FrameID
	VelocityInCoordinatesOf FrameID

	Acceleration                *spatialmath.SpatialVector
	AccelerationRelativeTo      FrameID
	AccelerationInCoordinatesOf FrameID
}

// checkReference panics unless relativeTo can serve as a fixed reference for the moved frame.
func (m Mover) checkReference(relativeTo FrameID) {
	if m.fs.IsAncestor(m.id, relativeTo) {
		panic(NewSelfReferenceError(m.id, relativeTo))
	}
}

// SetTransform makes the transform of the frame relative to relativeTo equal tf.
func (m Mover) SetTransform(tf spatialmath.Transform, relativeTo FrameID) {
	m.checkReference(relativeTo)
	parent := m.fs.Parent(m.id)
	if relativeTo != parent {
		tf = spatialmath.Compose(m.fs.Transform(relativeTo, parent), tf)
	}
	m.setter.SetRelativeTransform(tf)
}

// SetSpatialVelocity makes the spatial velocity of the frame relative to relativeTo, expressed in
// inCoordinatesOf, equal vel.
func (m Mover) SetSpatialVelocity(vel spatialmath.SpatialVector, relativeTo, inCoordinatesOf FrameID) {
	m.checkReference(relativeTo)
	v := m.toOwnCoordinates(vel, inCoordinatesOf)
	parent := m.fs.Parent(m.id)
	if relativeTo != parent {
		rel := m.fs.RelativeTransform(m.id)
		v = v.Add(spatialmath.AdT(m.fs.Transform(relativeTo, m.id), m.fs.WorldSpatialVelocity(relativeTo))).
			Sub(spatialmath.AdInvT(rel, m.fs.WorldSpatialVelocity(parent)))
	}
	m.setter.SetRelativeSpatialVelocity(v)
}

// SetSpatialAcceleration makes the spatial acceleration of the frame relative to relativeTo,
// expressed in inCoordinatesOf, equal acc. The current velocities are kept.
func (m Mover) SetSpatialAcceleration(acc spatialmath.SpatialVector, relativeTo, inCoordinatesOf FrameID) {
	m.checkReference(relativeTo)
	a := m.toOwnCoordinates(acc, inCoordinatesOf)
	parent := m.fs.Parent(m.id)
	if relativeTo != parent {
		rel := m.fs.RelativeTransform(m.id)
		vel := m.fs.WorldSpatialVelocity(m.id)
		fromParent := spatialmath.AdInvT(rel, m.fs.WorldSpatialAcceleration(parent)).
			Add(spatialmath.AdBracket(vel, m.fs.RelativeSpatialVelocity(m.id)))

		tf := m.fs.Transform(relativeTo, m.id)
		fromReference := spatialmath.AdT(tf, m.fs.WorldSpatialAcceleration(relativeTo)).
			Sub(spatialmath.AdBracket(vel, spatialmath.AdT(tf, m.fs.WorldSpatialVelocity(relativeTo))))
		a = a.Sub(fromParent).Add(fromReference)
	}
	m.setter.SetRelativeSpatialAcceleration(a)
}

// SetLinearVelocity sets the classical velocity of the frame origin and keeps its angular velocity.
func (m Mover) SetLinearVelocity(vel r3.Vector, relativeTo, inCoordinatesOf FrameID) {
	tf := m.fs.Transform(m.id, inCoordinatesOf)
	_, ang := spatialmath.ToClassicalVelocity(m.fs.SpatialVelocity(m.id, relativeTo, m.id), tf)
	m.SetSpatialVelocity(spatialmath.FromClassicalVelocity(vel, ang, tf), relativeTo, m.id)
}

// SetAngularVelocity sets the angular velocity of the frame and keeps the classical velocity of its origin.
func (m Mover) SetAngularVelocity(vel r3.Vector, relativeTo, inCoordinatesOf FrameID) {
	tf := m.fs.Transform(m.id, inCoordinatesOf)
	lin, _ := spatialmath.ToClassicalVelocity(m.fs.SpatialVelocity(m.id, relativeTo, m.id), tf)
	m.SetSpatialVelocity(spatialmath.FromClassicalVelocity(lin, vel, tf), relativeTo, m.id)
}

// SetLinearAcceleration sets the classical acceleration of the frame origin and keeps its angular
// acceleration.
func (m Mover) SetLinearAcceleration(acc r3.Vector, relativeTo, inCoordinatesOf FrameID) {
	tf := m.fs.Transform(m.id, inCoordinatesOf)
	vel := m.fs.SpatialVelocity(m.id, relativeTo, m.id)
	_, ang := spatialmath.ToClassicalAcceleration(m.fs.SpatialAcceleration(m.id, relativeTo, m.id), vel, tf)
	m.SetSpatialAcceleration(spatialmath.FromClassicalAcceleration(acc, ang, vel, tf), relativeTo, m.id)
}

// SetAngularAcceleration sets the angular acceleration of the frame and keeps the classical
// acceleration of its origin.
func (m Mover) SetAngularAcceleration(acc r3.Vector, relativeTo, inCoordinatesOf FrameID) {
	tf := m.fs.Transform(m.id, inCoordinatesOf)
	vel := m.fs.SpatialVelocity(m.id, relativeTo, m.id)
	lin, _ := spatialmath.ToClassicalAcceleration(m.fs.SpatialAcceleration(m.id, relativeTo, m.id), vel, tf)
	m.SetSpatialAcceleration(spatialmath.FromClassicalAcceleration(lin, acc, vel, tf), relativeTo, m.id)
}

// SetSpatialMotion applies the non-nil targets in order: transform, velocity, acceleration.
func (m Mover) SetSpatialMotion(motion SpatialMotion) {
	if motion.Transform != nil {
		m.SetTransform(*motion.Transform, motion.TransformRelativeTo)
	}
	if motion.Velocity != nil {
		m.SetSpatialVelocity(*motion.Velocity, motion.VelocityRelativeTo, motion.VelocityInCoordinatesOf)
	}
	if motion.Acceleration != nil {
		m.SetSpatialAcceleration(*motion.Acceleration, motion.AccelerationRelativeTo, motion.AccelerationInCoordinatesOf)
	}
}

func (m Mover) toOwnCoordinates(v spatialmath.SpatialVector, inCoordinatesOf FrameID) spatialmath.SpatialVector {
	if inCoordinatesOf == m.id {
		return v
	}
	return spatialmath.AdR(m.fs.Transform(inCoordinatesOf, m.id), v)
}
