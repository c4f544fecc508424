// Package referenceframe keeps a tree of reference frames and composes transforms, spatial
// velocities and spatial accelerations between any two of them.
package referenceframe

import (
	"github.com/Aoi-hosizora/dart/logging"
	"github.com/Aoi-hosizora/dart/spatialmath"
)

// FrameID is a stable handle to a frame in a FrameSystem. Handles are never reused.
type FrameID int

// World is the root frame. It has no parent, the identity transform and zero motion.
const World FrameID = 0

// RelativeMotion supplies the motion of a frame relative to its parent, expressed in the frame's
// own coordinates.
type RelativeMotion interface {
	RelativeTransform() spatialmath.Transform
	RelativeSpatialVelocity() spatialmath.SpatialVector
	RelativeSpatialAcceleration() spatialmath.SpatialVector
}

// Change is the shallowest kinematic level affected by a write. Each level also invalidates the
// ones that depend on it.
type Change int

// Invalidation levels.
const (
	TransformChanged Change = iota
	VelocityChanged
	AccelerationChanged
)

type dirtyFlags uint8

const (
	dirtyTransform dirtyFlags = 1 << iota
	dirtyVelocity
	dirtyAcceleration

	dirtyAll = dirtyTransform | dirtyVelocity | dirtyAcceleration
)

func (c Change) flags() dirtyFlags {
	switch c {
	case TransformChanged:
		return dirtyAll
	case VelocityChanged:
		return dirtyVelocity | dirtyAcceleration
	default:
		return dirtyAcceleration
	}
}

type frameNode struct {
	name     string
	parent   FrameID
	children []FrameID
	source   RelativeMotion
	alive    bool

	// Cached motion relative to World, in the frame's own coordinates. A dirty bit set on a node
	// is also set on every descendant.
	dirty        dirtyFlags
	transform    spatialmath.Transform
	velocity     spatialmath.SpatialVector
	acceleration spatialmath.SpatialVector
}

// FrameSystem is an arena of frames forming a tree rooted at World. It is not safe for concurrent
// use; callers serialize writes and reads.
type FrameSystem struct {
	nodes  []*frameNode
	logger logging.Logger

	chain []FrameID
}

// NewFrameSystem returns a frame system containing only World.
func NewFrameSystem(logger logging.Logger) *FrameSystem {
	world := &frameNode{
		name:      "world",
		parent:    World,
		alive:     true,
		transform: spatialmath.NewZeroTransform(),
	}
	return &FrameSystem{nodes: []*frameNode{world}, logger: logger}
}

// AddFrame inserts a frame beneath parent and returns its handle. The frame's motion relative to
// its parent is read from source whenever a cached value is stale.
func (fs *FrameSystem) AddFrame(name string, parent FrameID, source RelativeMotion) FrameID {
	if !fs.Exists(parent) {
		panic(NewParentFrameMissingError(name))
	}
	if source == nil {
		panic("frame " + name + " has no motion source")
	}
	id := FrameID(len(fs.nodes))
	fs.nodes = append(fs.nodes, &frameNode{
		name:   name,
		parent: parent,
		source: source,
		alive:  true,
		dirty:  dirtyAll,
	})
	p := fs.nodes[parent]
	p.children = append(p.children, id)
	fs.logger.Debugw("added frame", "frame", name, "id", id, "parent", p.name)
	return id
}

// RemoveFrame removes a frame and its whole subtree. The handles of removed frames become invalid.
func (fs *FrameSystem) RemoveFrame(id FrameID) {
	n := fs.node(id)
	if id == World {
		panic("cannot remove the world frame")
	}
	p := fs.nodes[n.parent]
	p.children = removeID(p.children, id)

	stack := []FrameID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := fs.nodes[cur]
		stack = append(stack, node.children...)
		node.alive = false
		node.children = nil
		node.source = nil
	}
	fs.logger.Debugw("removed frame", "frame", n.name, "id", id)
}

// SetParent moves a frame, with its subtree, beneath a new parent. The frame keeps its relative
// motion, so its world motion generally changes.
func (fs *FrameSystem) SetParent(id, parent FrameID) {
	n := fs.node(id)
	fs.node(parent)
	if id == World {
		panic("the world frame has no parent")
	}
	if fs.IsAncestor(id, parent) {
		panic(NewFrameCycleError(id, parent))
	}
	old := fs.nodes[n.parent]
	old.children = removeID(old.children, id)
	n.parent = parent
	p := fs.nodes[parent]
	p.children = append(p.children, id)
	fs.Invalidate(id, TransformChanged)
}

// Exists reports whether id refers to a live frame.
func (fs *FrameSystem) Exists(id FrameID) bool {
	return id >= 0 && int(id) < len(fs.nodes) && fs.nodes[id].alive
}

// Name returns the name of the frame.
func (fs *FrameSystem) Name(id FrameID) string {
	return fs.node(id).name
}

// Parent returns the parent of the frame. The parent of World is World.
func (fs *FrameSystem) Parent(id FrameID) FrameID {
	return fs.node(id).parent
}

// Children returns the direct children of the frame in insertion order.
func (fs *FrameSystem) Children(id FrameID) []FrameID {
	return append([]FrameID(nil), fs.node(id).children...)
}

// TracebackFrame returns the path from the frame up to and including World.
func (fs *FrameSystem) TracebackFrame(id FrameID) []FrameID {
	fs.node(id)
	path := []FrameID{id}
	for cur := id; cur != World; {
		cur = fs.nodes[cur].parent
		path = append(path, cur)
	}
	return path
}

// IsAncestor reports whether ancestor lies on the path from id to World, id included.
func (fs *FrameSystem) IsAncestor(ancestor, id FrameID) bool {
	for _, f := range fs.TracebackFrame(id) {
		if f == ancestor {
			return true
		}
	}
	return false
}

// Invalidate marks the cached motion of the frame and its subtree stale from the given level down.
func (fs *FrameSystem) Invalidate(id FrameID, change Change) {
	fs.node(id)
	if id == World {
		return
	}
	flags := change.flags()
	stack := []FrameID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := fs.nodes[cur]
		if n.dirty&flags == flags {
			// descendants are already at least as dirty
			continue
		}
		n.dirty |= flags
		stack = append(stack, n.children...)
	}
}

// Refresh recomputes every stale cached value in one top-down pass over the tree.
func (fs *FrameSystem) Refresh() {
	queue := append([]FrameID(nil), fs.nodes[World].children...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if fs.nodes[cur].dirty != 0 {
			fs.recompute(cur, dirtyAll)
		}
		queue = append(queue, fs.nodes[cur].children...)
	}
}

// RelativeTransform returns the transform of the frame relative to its parent.
func (fs *FrameSystem) RelativeTransform(id FrameID) spatialmath.Transform {
	n := fs.node(id)
	if id == World {
		return spatialmath.NewZeroTransform()
	}
	return n.source.RelativeTransform()
}

// RelativeSpatialVelocity returns the velocity of the frame relative to its parent, in its own coordinates.
func (fs *FrameSystem) RelativeSpatialVelocity(id FrameID) spatialmath.SpatialVector {
	n := fs.node(id)
	if id == World {
		return spatialmath.SpatialVector{}
	}
	return n.source.RelativeSpatialVelocity()
}

// RelativeSpatialAcceleration returns the acceleration of the frame relative to its parent, in its own coordinates.
func (fs *FrameSystem) RelativeSpatialAcceleration(id FrameID) spatialmath.SpatialVector {
	n := fs.node(id)
	if id == World {
		return spatialmath.SpatialVector{}
	}
	return n.source.RelativeSpatialAcceleration()
}

// WorldTransform returns the transform of the frame relative to World.
func (fs *FrameSystem) WorldTransform(id FrameID) spatialmath.Transform {
	fs.update(id, dirtyTransform)
	return fs.nodes[id].transform
}

// WorldSpatialVelocity returns the velocity of the frame relative to World, in its own coordinates.
func (fs *FrameSystem) WorldSpatialVelocity(id FrameID) spatialmath.SpatialVector {
	fs.update(id, dirtyTransform|dirtyVelocity)
	return fs.nodes[id].velocity
}

// WorldSpatialAcceleration returns the acceleration of the frame relative to World, in its own coordinates.
func (fs *FrameSystem) WorldSpatialAcceleration(id FrameID) spatialmath.SpatialVector {
	fs.update(id, dirtyAll)
	return fs.nodes[id].acceleration
}

// update recomputes the stale prefix of the path from World to id, parents before children.
func (fs *FrameSystem) update(id FrameID, need dirtyFlags) {
	fs.node(id)
	chain := fs.chain[:0]
	for cur := id; cur != World && fs.nodes[cur].dirty&need != 0; cur = fs.nodes[cur].parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		fs.recompute(chain[i], need)
	}
	fs.chain = chain
}

// recompute refreshes the requested stale values of one frame whose parent is up to date.
func (fs *FrameSystem) recompute(id FrameID, need dirtyFlags) {
	n := fs.nodes[id]
	p := fs.nodes[n.parent]
	rel := n.source.RelativeTransform()

	if n.dirty&dirtyTransform != 0 {
		n.transform = spatialmath.Compose(p.transform, rel)
		n.dirty &^= dirtyTransform
	}
	if need&dirtyVelocity != 0 && n.dirty&dirtyVelocity != 0 {
		n.velocity = spatialmath.AdInvT(rel, p.velocity).Add(n.source.RelativeSpatialVelocity())
		n.dirty &^= dirtyVelocity
	}
	if need&dirtyAcceleration != 0 && n.dirty&dirtyAcceleration != 0 {
		n.acceleration = spatialmath.AdInvT(rel, p.acceleration).
			Add(n.source.RelativeSpatialAcceleration()).
			Add(spatialmath.AdBracket(n.velocity, n.source.RelativeSpatialVelocity()))
		n.dirty &^= dirtyAcceleration
	}
}

func (fs *FrameSystem) node(id FrameID) *frameNode {
	if !fs.Exists(id) {
		panic(NewFrameMissingError(id))
	}
	return fs.nodes[id]
}

func removeID(ids []FrameID, id FrameID) []FrameID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
