package kinematics

import (
	"github.com/pkg/errors"
)

// ActuatorType selects how the command of a degree of freedom is interpreted.
type ActuatorType int

// Actuator types.
const (
	// ActuatorForce commands the generalized force.
	ActuatorForce ActuatorType = iota
	// ActuatorPassive ignores commands.
	ActuatorPassive
	// ActuatorServo commands a target velocity reached with bounded force.
	ActuatorServo
	// ActuatorAcceleration commands the generalized acceleration.
	ActuatorAcceleration
	// ActuatorVelocity commands the generalized velocity.
	ActuatorVelocity
	// ActuatorLocked holds the coordinate still and ignores commands.
	ActuatorLocked
)

// actuation describes what a command does under one actuator type.
type actuation struct {
	name string
	// accepts is false when commands are ignored.
	accepts bool
	// slot is the quantity whose limits clamp the command.
	slot Quantity
	// writesSlot is true when the command is stored directly into slot, and direct writes to
	// slot are mirrored back into the command.
	writesSlot bool
}

var actuations = [...]actuation{
	ActuatorForce:        {name: "force", accepts: true, slot: Force, writesSlot: true},
	ActuatorPassive:      {name: "passive"},
	ActuatorServo:        {name: "servo", accepts: true, slot: Velocity},
	ActuatorAcceleration: {name: "acceleration", accepts: true, slot: Acceleration, writesSlot: true},
	ActuatorVelocity:     {name: "velocity", accepts: true, slot: Velocity, writesSlot: true},
	ActuatorLocked:       {name: "locked"},
}

func (a ActuatorType) actuation() actuation {
	if !a.IsValid() {
		return actuation{name: "unknown"}
	}
	return actuations[a]
}

// IsValid reports whether a names a known actuator type.
func (a ActuatorType) IsValid() bool {
	return a >= 0 && int(a) < len(actuations)
}

func (a ActuatorType) String() string {
	return a.actuation().name
}

// mirrors reports whether a direct write to q also becomes the command.
func (a ActuatorType) mirrors(q Quantity) bool {
	act := a.actuation()
	return act.writesSlot && act.slot == q
}

// MarshalText implements encoding.TextMarshaler.
func (a ActuatorType) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, a.invalidError()
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string selects ActuatorForce.
func (a *ActuatorType) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*a = ActuatorForce
		return nil
	}
	for i, act := range actuations {
		if act.name == string(text) {
			*a = ActuatorType(i)
			return nil
		}
	}
	return errors.Errorf("unknown actuator type %q", string(text))
}

func (a ActuatorType) invalidError() error {
	return errors.Errorf("unknown actuator type %d", int(a))
}
