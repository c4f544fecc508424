package kinematics

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/Aoi-hosizora/dart/spatialmath"
	"github.com/Aoi-hosizora/dart/utils"
)

// defaultScrewPitch is used when a screw joint is configured with zero pitch.
const defaultScrewPitch = 0.1

// JointConfig describes a joint. Fields that do not apply to the joint type are ignored.
type JointConfig struct {
	Name string    `json:"name" yaml:"name"`
	Type JointType `json:"type" yaml:"type"`

	// Axis is the axis of revolute, prismatic, screw and universal joints, and the first
	// translation axis of an arbitrary planar joint. Axis2 is the second axis of universal and
	// arbitrary planar joints.
	Axis  r3.Vector `json:"axis,omitempty" yaml:"axis,omitempty"`
	Axis2 r3.Vector `json:"axis2,omitempty" yaml:"axis2,omitempty"`
	// Pitch is the translation per radian of a screw joint. Zero selects 0.1.
	Pitch     float64               `json:"pitch,omitempty" yaml:"pitch,omitempty"`
	AxisOrder spatialmath.AxisOrder `json:"axis_order,omitempty" yaml:"axis_order,omitempty"`
	Plane     PlaneType             `json:"plane,omitempty" yaml:"plane,omitempty"`

	TransformFromParentBodyNode *spatialmath.PoseConfig `json:"transform_from_parent,omitempty" yaml:"transform_from_parent,omitempty"`
	TransformFromChildBodyNode  *spatialmath.PoseConfig `json:"transform_from_child,omitempty" yaml:"transform_from_child,omitempty"`

	Actuator              ActuatorType `json:"actuator,omitempty" yaml:"actuator,omitempty"`
	PositionLimitEnforced bool         `json:"position_limit_enforced,omitempty" yaml:"position_limit_enforced,omitempty"`
	DoFs                  []DoFConfig  `json:"dofs,omitempty" yaml:"dofs,omitempty"`
}

// DoFConfig holds the initial state and properties of one degree of freedom. Nil limits are
// unbounded.
type DoFConfig struct {
	Position           float64 `json:"position,omitempty" yaml:"position,omitempty"`
	Velocity           float64 `json:"velocity,omitempty" yaml:"velocity,omitempty"`
	PositionLimit      *Limit  `json:"position_limit,omitempty" yaml:"position_limit,omitempty"`
	VelocityLimit      *Limit  `json:"velocity_limit,omitempty" yaml:"velocity_limit,omitempty"`
	AccelerationLimit  *Limit  `json:"acceleration_limit,omitempty" yaml:"acceleration_limit,omitempty"`
	ForceLimit         *Limit  `json:"force_limit,omitempty" yaml:"force_limit,omitempty"`
	CoulombFriction    float64 `json:"coulomb_friction,omitempty" yaml:"coulomb_friction,omitempty"`
	SpringStiffness    float64 `json:"spring_stiffness,omitempty" yaml:"spring_stiffness,omitempty"`
	RestPosition       float64 `json:"rest_position,omitempty" yaml:"rest_position,omitempty"`
	DampingCoefficient float64 `json:"damping_coefficient,omitempty" yaml:"damping_coefficient,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *JointConfig) Validate(path string) error {
	var err error
	if cfg.Name == "" {
		multierr.AppendInto(&err, utils.NewConfigValidationFieldRequiredError(path, "name"))
	}
	if !cfg.Type.IsValid() {
		multierr.AppendInto(&err, utils.NewConfigValidationError(path, errors.Errorf("unknown joint type %d", int(cfg.Type))))
		return err
	}
	if !cfg.Actuator.IsValid() {
		multierr.AppendInto(&err, utils.NewConfigValidationError(path, errors.Errorf("unknown actuator type %d", int(cfg.Actuator))))
	}
	if cfg.Type == PlanarJoint && cfg.Plane == PlaneArbitrary {
		if cfg.Axis.Cross(cfg.Axis2).Norm() < 1e-9 {
			multierr.AppendInto(&err, utils.NewConfigValidationError(path,
				errors.New("arbitrary plane needs two non-parallel axes")))
		}
	}
	if len(cfg.DoFs) > cfg.Type.NumDoFs() {
		multierr.AppendInto(&err, utils.NewConfigValidationError(path,
			errors.Errorf("%s joint has %d DoF but %d were configured", cfg.Type, cfg.Type.NumDoFs(), len(cfg.DoFs))))
	}
	for i, dof := range cfg.DoFs {
		multierr.AppendInto(&err, dof.Validate(fmt.Sprintf("%s.dofs.%d", path, i)))
	}
	return err
}

// Validate ensures all parts of the config are valid.
func (cfg *DoFConfig) Validate(path string) error {
	var err error
	for q, l := range cfg.limits() {
		if l != nil && l.Min > l.Max {
			multierr.AppendInto(&err, utils.NewConfigValidationError(path,
				errors.Errorf("%s limit min %v is greater than max %v", Quantity(q), l.Min, l.Max)))
		}
	}
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"coulomb_friction", cfg.CoulombFriction},
		{"spring_stiffness", cfg.SpringStiffness},
		{"damping_coefficient", cfg.DampingCoefficient},
	} {
		if c.value < 0 {
			multierr.AppendInto(&err, utils.NewConfigValidationError(path, NewNegativeCoefficientError(c.name, c.value)))
		}
	}
	return err
}

// apply writes the configured state into a fresh degree of freedom.
func (cfg *DoFConfig) apply(d *DoF) {
	d.Position = cfg.Position
	d.Velocity = cfg.Velocity
	for q, l := range cfg.limits() {
		if l != nil {
			d.Limits[q] = *l
		}
	}
	d.CoulombFriction = cfg.CoulombFriction
	d.SpringStiffness = cfg.SpringStiffness
	d.RestPosition = cfg.RestPosition
	d.DampingCoefficient = cfg.DampingCoefficient
}

// limits returns the configured limits indexed by Quantity.
func (cfg *DoFConfig) limits() [numQuantities]*Limit {
	return [numQuantities]*Limit{
		Position:     cfg.PositionLimit,
		Velocity:     cfg.VelocityLimit,
		Acceleration: cfg.AccelerationLimit,
		Force:        cfg.ForceLimit,
	}
}
