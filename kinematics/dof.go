package kinematics

import (
	"math"
)

// Quantity names one of the generalized quantities of a degree of freedom that carries limits.
type Quantity int

// Limited quantities.
const (
	Position Quantity = iota
	Velocity
	Acceleration
	Force

	numQuantities
)

func (q Quantity) String() string {
	switch q {
	case Position:
		return "position"
	case Velocity:
		return "velocity"
	case Acceleration:
		return "acceleration"
	case Force:
		return "force"
	}
	return "unknown"
}

// Limit is a closed interval of allowed values.
type Limit struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// NoLimit is the unbounded interval.
func NoLimit() Limit {
	return Limit{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Clamp returns v limited to the interval.
func (l Limit) Clamp(v float64) float64 {
	return math.Max(l.Min, math.Min(l.Max, v))
}

// Contains reports whether v lies in the interval.
func (l Limit) Contains(v float64) bool {
	return v >= l.Min && v <= l.Max
}

// DoF is the state of a single generalized coordinate of a joint.
type DoF struct {
	Position     float64
	Velocity     float64
	Acceleration float64
	Force        float64
	Command      float64

	Limits   [numQuantities]Limit
	Actuator ActuatorType

	CoulombFriction    float64
	SpringStiffness    float64
	RestPosition       float64
	DampingCoefficient float64
}

func newDoF() DoF {
	d := DoF{Actuator: ActuatorForce}
	for i := range d.Limits {
		d.Limits[i] = NoLimit()
	}
	return d
}

// Limit returns the limits of a quantity.
func (d DoF) Limit(q Quantity) Limit {
	return d.Limits[q]
}

func (d *DoF) value(q Quantity) *float64 {
	switch q {
	case Position:
		return &d.Position
	case Velocity:
		return &d.Velocity
	case Acceleration:
		return &d.Acceleration
	default:
		return &d.Force
	}
}
