package referenceframe

import (
	"github.com/golang/geo/r3"

	"github.com/Aoi-hosizora/dart/spatialmath"
)

// Transform returns the transform of frame id relative to frame relativeTo, i.e. the map taking
// coordinates in id to coordinates in relativeTo.
func (fs *FrameSystem) Transform(id, relativeTo FrameID) spatialmath.Transform {
	n := fs.node(id)
	fs.node(relativeTo)
	switch {
	case id == relativeTo:
		return spatialmath.NewZeroTransform()
	case relativeTo == World:
		return fs.WorldTransform(id)
	case relativeTo == n.parent:
		return n.source.RelativeTransform()
	}
	return spatialmath.InvCompose(fs.WorldTransform(relativeTo), fs.WorldTransform(id))
}

// SpatialVelocity returns the spatial velocity of frame id relative to frame relativeTo,
// expressed in the coordinates of frame inCoordinatesOf.
func (fs *FrameSystem) SpatialVelocity(id, relativeTo, inCoordinatesOf FrameID) spatialmath.SpatialVector {
	n := fs.node(id)
	fs.node(relativeTo)
	fs.node(inCoordinatesOf)

	var v spatialmath.SpatialVector
	switch {
	case id == relativeTo:
	case relativeTo == n.parent:
		v = n.source.RelativeSpatialVelocity()
	case relativeTo == World:
		v = fs.WorldSpatialVelocity(id)
	default:
		v = fs.WorldSpatialVelocity(id).Sub(
			spatialmath.AdT(fs.Transform(relativeTo, id), fs.WorldSpatialVelocity(relativeTo)))
	}
	if inCoordinatesOf == id {
		return v
	}
	return spatialmath.AdR(fs.Transform(id, inCoordinatesOf), v)
}

// SpatialAcceleration returns the spatial acceleration of frame id relative to frame relativeTo,
// expressed in the coordinates of frame inCoordinatesOf.
func (fs *FrameSystem) SpatialAcceleration(id, relativeTo, inCoordinatesOf FrameID) spatialmath.SpatialVector {
	n := fs.node(id)
	fs.node(relativeTo)
	fs.node(inCoordinatesOf)

	var a spatialmath.SpatialVector
	switch {
	case id == relativeTo:
	case relativeTo == n.parent:
		a = n.source.RelativeSpatialAcceleration()
	case relativeTo == World:
		a = fs.WorldSpatialAcceleration(id)
	default:
		tf := fs.Transform(relativeTo, id)
		a = fs.WorldSpatialAcceleration(id).
			Sub(spatialmath.AdT(tf, fs.WorldSpatialAcceleration(relativeTo))).
			Add(spatialmath.AdBracket(fs.WorldSpatialVelocity(id),
				spatialmath.AdT(tf, fs.WorldSpatialVelocity(relativeTo))))
	}
	if inCoordinatesOf == id {
		return a
	}
	return spatialmath.AdR(fs.Transform(id, inCoordinatesOf), a)
}

// LinearVelocity returns the classical velocity of the origin of frame id.
func (fs *FrameSystem) LinearVelocity(id, relativeTo, inCoordinatesOf FrameID) r3.Vector {
	return fs.SpatialVelocity(id, relativeTo, inCoordinatesOf).Linear
}

// AngularVelocity returns the angular velocity of frame id.
func (fs *FrameSystem) AngularVelocity(id, relativeTo, inCoordinatesOf FrameID) r3.Vector {
	return fs.SpatialVelocity(id, relativeTo, inCoordinatesOf).Angular
}

// LinearAcceleration returns the classical acceleration of the origin of frame id.
func (fs *FrameSystem) LinearAcceleration(id, relativeTo, inCoordinatesOf FrameID) r3.Vector {
	return fs.PointLinearAcceleration(id, r3.Vector{}, relativeTo, inCoordinatesOf)
}

// AngularAcceleration returns the angular acceleration of frame id.
func (fs *FrameSystem) AngularAcceleration(id, relativeTo, inCoordinatesOf FrameID) r3.Vector {
	return fs.SpatialAcceleration(id, relativeTo, inCoordinatesOf).Angular
}

// PointLinearVelocity returns the classical velocity of a point fixed in frame id at offset,
// given in the coordinates of id.
func (fs *FrameSystem) PointLinearVelocity(id FrameID, offset r3.Vector, relativeTo, inCoordinatesOf FrameID) r3.Vector {
	v := spatialmath.PointVelocity(fs.SpatialVelocity(id, relativeTo, id), offset)
	return fs.rotateInto(id, inCoordinatesOf, v)
}

// PointLinearAcceleration returns the classical acceleration of a point fixed in frame id at
// offset, given in the coordinates of id.
func (fs *FrameSystem) PointLinearAcceleration(id FrameID, offset r3.Vector, relativeTo, inCoordinatesOf FrameID) r3.Vector {
	a := spatialmath.PointAcceleration(
		fs.SpatialAcceleration(id, relativeTo, id),
		fs.SpatialVelocity(id, relativeTo, id),
		offset)
	return fs.rotateInto(id, inCoordinatesOf, a)
}

func (fs *FrameSystem) rotateInto(id, inCoordinatesOf FrameID, v r3.Vector) r3.Vector {
	if inCoordinatesOf == id {
		return v
	}
	return fs.Transform(id, inCoordinatesOf).Rotation.Mul(v)
}

// Frame is a read-only view of one frame of a FrameSystem.
type Frame struct {
	fs *FrameSystem
	id FrameID
}

// NewFrame returns a view of an existing frame.
func NewFrame(fs *FrameSystem, id FrameID) Frame {
	fs.node(id)
	return Frame{fs: fs, id: id}
}

// FrameSystem returns the system the frame lives in.
func (f Frame) FrameSystem() *FrameSystem {
	return f.fs
}

// ID returns the handle of the frame.
func (f Frame) ID() FrameID {
	return f.id
}

// Name returns the name of the frame.
func (f Frame) Name() string {
	return f.fs.Name(f.id)
}

// ParentFrame returns the parent of the frame.
func (f Frame) ParentFrame() FrameID {
	return f.fs.Parent(f.id)
}

// WorldTransform returns the transform of the frame relative to World.
func (f Frame) WorldTransform() spatialmath.Transform {
	return f.fs.WorldTransform(f.id)
}

// Transform returns the transform of the frame relative to another frame.
func (f Frame) Transform(relativeTo FrameID) spatialmath.Transform {
	return f.fs.Transform(f.id, relativeTo)
}

// SpatialVelocity returns the spatial velocity of the frame.
func (f Frame) SpatialVelocity(relativeTo, inCoordinatesOf FrameID) spatialmath.SpatialVector {
	return f.fs.SpatialVelocity(f.id, relativeTo, inCoordinatesOf)
}

// SpatialAcceleration returns the spatial acceleration of the frame.
func (f Frame) SpatialAcceleration(relativeTo, inCoordinatesOf FrameID) spatialmath.SpatialVector {
	return f.fs.SpatialAcceleration(f.id, relativeTo, inCoordinatesOf)
}

// LinearVelocity returns the classical velocity of the frame origin.
func (f Frame) LinearVelocity(relativeTo, inCoordinatesOf FrameID) r3.Vector {
	return f.fs.LinearVelocity(f.id, relativeTo, inCoordinatesOf)
}

// AngularVelocity returns the angular velocity of the frame.
func (f Frame) AngularVelocity(relativeTo, inCoordinatesOf FrameID) r3.Vector {
	return f.fs.AngularVelocity(f.id, relativeTo, inCoordinatesOf)
}

// LinearAcceleration returns the classical acceleration of the frame origin.
func (f Frame) LinearAcceleration(relativeTo, inCoordinatesOf FrameID) r3.Vector {
	return f.fs.LinearAcceleration(f.id, relativeTo, inCoordinatesOf)
}

// AngularAcceleration returns the angular acceleration of the frame.
func (f Frame) AngularAcceleration(relativeTo, inCoordinatesOf FrameID) r3.Vector {
	return f.fs.AngularAcceleration(f.id, relativeTo, inCoordinatesOf)
}
