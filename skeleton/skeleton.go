// Package skeleton assembles joints and rigid bodies into kinematic trees whose body frames live
// in a shared reference frame system.
package skeleton

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/Aoi-hosizora/dart/kinematics"
	"github.com/Aoi-hosizora/dart/logging"
	"github.com/Aoi-hosizora/dart/referenceframe"
)

// Skeleton owns a forest of body nodes connected by joints. Root bodies hang from World. The
// generalized coordinates of the skeleton are the DoFs of its joints in depth-first pre-order,
// roots and children in creation order.
type Skeleton struct {
	name   string
	frames *referenceframe.FrameSystem
	logger logging.Logger

	roots  []*BodyNode
	bodies map[string]*BodyNode
	joints map[string]*kinematics.Joint
}

// New returns an empty skeleton whose bodies will be added to frames.
func New(name string, frames *referenceframe.FrameSystem, logger logging.Logger) *Skeleton {
	return &Skeleton{
		name:   name,
		frames: frames,
		logger: logger,
		bodies: map[string]*BodyNode{},
		joints: map[string]*kinematics.Joint{},
	}
}

// Name returns the name of the skeleton.
func (s *Skeleton) Name() string {
	return s.name
}

// FrameSystem returns the frame system holding the body frames.
func (s *Skeleton) FrameSystem() *referenceframe.FrameSystem {
	return s.frames
}

// CreateJointAndBodyNodePair adds a body connected to parent by a new joint. A nil parent
// creates a new root body attached to World.
func (s *Skeleton) CreateJointAndBodyNodePair(
	parent *BodyNode,
	jointCfg kinematics.JointConfig,
	bodyCfg BodyNodeConfig,
) (*kinematics.Joint, *BodyNode, error) {
	if err := bodyCfg.Validate("body"); err != nil {
		return nil, nil, err
	}
	if _, ok := s.bodies[bodyCfg.Name]; ok {
		return nil, nil, NewDuplicateNameError("body node", bodyCfg.Name, s.name)
	}
	if _, ok := s.joints[jointCfg.Name]; ok {
		return nil, nil, NewDuplicateNameError("joint", jointCfg.Name, s.name)
	}
	if parent != nil && (parent.skel != s || parent.removed) {
		return nil, nil, NewBodyNodeMissingError(parent.name, s.name)
	}

	joint, err := kinematics.NewJoint(jointCfg, s.logger.Sublogger(jointCfg.Name))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot create joint for body %q", bodyCfg.Name)
	}

	parentFrame := referenceframe.World
	if parent != nil {
		parentFrame = parent.ID()
	}
	id := s.frames.AddFrame(bodyCfg.Name, parentFrame, joint)
	joint.SetChangeHandler(func(c referenceframe.Change) {
		s.frames.Invalidate(id, c)
	})

	bn := &BodyNode{
		Frame:  referenceframe.NewFrame(s.frames, id),
		name:   bodyCfg.Name,
		skel:   s,
		parent: parent,
		joint:  joint,
	}
	if parent == nil {
		s.roots = append(s.roots, bn)
	} else {
		parent.children = append(parent.children, bn)
	}
	s.bodies[bodyCfg.Name] = bn
	s.joints[jointCfg.Name] = joint
	s.logger.Debugw("created joint and body node",
		"skeleton", s.name, "joint", jointCfg.Name, "type", jointCfg.Type, "body", bodyCfg.Name)
	return joint, bn, nil
}

// RemoveBodyNode removes a body with its whole subtree, including their joints and any frames
// attached beneath them.
func (s *Skeleton) RemoveBodyNode(bn *BodyNode) error {
	if bn == nil {
		return NewBodyNodeMissingError("", s.name)
	}
	if bn.skel != s || bn.removed {
		return NewBodyNodeMissingError(bn.name, s.name)
	}
	subtree := subtreeOf(bn)
	for _, b := range subtree {
		delete(s.bodies, b.name)
		delete(s.joints, b.joint.Name())
	}
	if bn.parent == nil {
		s.roots = lo.Without(s.roots, bn)
	} else {
		bn.parent.children = lo.Without(bn.parent.children, bn)
	}
	s.frames.RemoveFrame(bn.ID())
	for _, b := range subtree {
		b.removed = true
		b.joint.SetChangeHandler(nil)
	}
	s.logger.Debugw("removed body nodes", "skeleton", s.name, "bodies", len(subtree))
	return nil
}

// BodyNode returns the body with the given name, or nil.
func (s *Skeleton) BodyNode(name string) *BodyNode {
	return s.bodies[name]
}

// Joint returns the joint with the given name, or nil.
func (s *Skeleton) Joint(name string) *kinematics.Joint {
	return s.joints[name]
}

// RootBodyNodes returns the root bodies in creation order.
func (s *Skeleton) RootBodyNodes() []*BodyNode {
	return append([]*BodyNode(nil), s.roots...)
}

// BodyNodes returns every body in depth-first pre-order.
func (s *Skeleton) BodyNodes() []*BodyNode {
	return lo.FlatMap(s.roots, func(root *BodyNode, _ int) []*BodyNode {
		return subtreeOf(root)
	})
}

// Joints returns every joint in the order of BodyNodes.
func (s *Skeleton) Joints() []*kinematics.Joint {
	return lo.Map(s.BodyNodes(), func(bn *BodyNode, _ int) *kinematics.Joint {
		return bn.joint
	})
}

// BodyNodeNames returns the names of every body in the order of BodyNodes.
func (s *Skeleton) BodyNodeNames() []string {
	return lo.Map(s.BodyNodes(), func(bn *BodyNode, _ int) string {
		return bn.Name()
	})
}

// String prints a table of the bodies in DoF order with their parent, joint and positions.
func (s *Skeleton) String() string {
	t := table.NewWriter()
	t.SetTitle(s.name)
	t.AppendHeader(table.Row{"#", "Body", "Parent", "Joint", "Type", "DoFs", "Positions"})
	index := 0
	for i, bn := range s.BodyNodes() {
		parent := "world"
		if bn.parent != nil {
			parent = bn.parent.name
		}
		n := bn.joint.NumDoFs()
		dofs := ""
		if n > 0 {
			dofs = fmt.Sprintf("%d-%d", index, index+n-1)
		}
		t.AppendRow(table.Row{
			i + 1,
			bn.name,
			parent,
			bn.joint.Name(),
			bn.joint.Type().String(),
			dofs,
			fmt.Sprintf("%.4g", bn.joint.Positions()),
		})
		index += n
	}
	return t.Render()
}

// subtreeOf returns bn and its descendants in depth-first pre-order.
func subtreeOf(bn *BodyNode) []*BodyNode {
	out := []*BodyNode{bn}
	for _, c := range bn.children {
		out = append(out, subtreeOf(c)...)
	}
	return out
}
