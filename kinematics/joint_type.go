package kinematics

import (
	"github.com/pkg/errors"
)

// JointType selects the kinematic map of a Joint.
type JointType int

// Joint types.
const (
	WeldJoint JointType = iota
	RevoluteJoint
	PrismaticJoint
	ScrewJoint
	UniversalJoint
	TranslationalJoint
	PlanarJoint
	EulerJoint
	BallJoint
	FreeJoint
)

var jointTypeNames = map[JointType]string{
	WeldJoint:          "weld",
	RevoluteJoint:      "revolute",
	PrismaticJoint:     "prismatic",
	ScrewJoint:         "screw",
	UniversalJoint:     "universal",
	TranslationalJoint: "translational",
	PlanarJoint:        "planar",
	EulerJoint:         "euler",
	BallJoint:          "ball",
	FreeJoint:          "free",
}

// JointTypes lists every joint type.
var JointTypes = []JointType{
	WeldJoint, RevoluteJoint, PrismaticJoint, ScrewJoint, UniversalJoint,
	TranslationalJoint, PlanarJoint, EulerJoint, BallJoint, FreeJoint,
}

// NumDoFs returns the number of generalized coordinates of the joint type.
func (t JointType) NumDoFs() int {
	switch t {
	case WeldJoint:
		return 0
	case RevoluteJoint, PrismaticJoint, ScrewJoint:
		return 1
	case UniversalJoint:
		return 2
	case TranslationalJoint, PlanarJoint, EulerJoint, BallJoint:
		return 3
	case FreeJoint:
		return 6
	}
	return 0
}

// IsValid reports whether t names a known joint type.
func (t JointType) IsValid() bool {
	_, ok := jointTypeNames[t]
	return ok
}

func (t JointType) String() string {
	if name, ok := jointTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (t JointType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, errors.Errorf("unknown joint type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *JointType) UnmarshalText(text []byte) error {
	for jt, name := range jointTypeNames {
		if name == string(text) {
			*t = jt
			return nil
		}
	}
	return errors.Errorf("unknown joint type %q", string(text))
}

// PlaneType selects the plane of motion of a planar joint.
type PlaneType int

// Planes. For PlaneArbitrary the two translation axes come from the joint config.
const (
	PlaneXY PlaneType = iota
	PlaneYZ
	PlaneZX
	PlaneArbitrary
)

func (p PlaneType) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneYZ:
		return "yz"
	case PlaneZX:
		return "zx"
	case PlaneArbitrary:
		return "arbitrary"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (p PlaneType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PlaneType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "xy", "":
		*p = PlaneXY
	case "yz":
		*p = PlaneYZ
	case "zx":
		*p = PlaneZX
	case "arbitrary":
		*p = PlaneArbitrary
	default:
		return errors.Errorf("unknown plane %q", string(text))
	}
	return nil
}
