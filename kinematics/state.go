package kinematics

import (
	"github.com/Aoi-hosizora/dart/referenceframe"
)

func (j *Joint) dof(i int) *DoF {
	if i < 0 || i >= len(j.dofs) {
		panic(NewDoFIndexError(i, len(j.dofs)))
	}
	return &j.dofs[i]
}

// DoF returns a copy of the state of degree of freedom i.
func (j *Joint) DoF(i int) DoF {
	return *j.dof(i)
}

// value and values read a generalized quantity.
func (j *Joint) value(q Quantity, i int) float64 {
	return *j.dof(i).value(q)
}

func (j *Joint) values(q Quantity) []float64 {
	out := make([]float64, len(j.dofs))
	for i := range j.dofs {
		out[i] = *j.dofs[i].value(q)
	}
	return out
}

// setValue writes a generalized quantity without clamping. When the actuator commands the same
// quantity the command follows.
func (j *Joint) setValue(q Quantity, i int, v float64) {
	d := j.dof(i)
	*d.value(q) = v
	if d.Actuator.mirrors(q) {
		d.Command = v
	}
	j.changed(q)
}

func (j *Joint) setValues(q Quantity, values []float64) error {
	if err := j.checkLength(values); err != nil {
		return err
	}
	for i, v := range values {
		d := &j.dofs[i]
		*d.value(q) = v
		if d.Actuator.mirrors(q) {
			d.Command = v
		}
	}
	j.changed(q)
	return nil
}

// changed drops the caches that depend on q and reports the change.
func (j *Joint) changed(q Quantity) {
	switch q {
	case Position:
		j.invalidateKinematics()
		j.notify(referenceframe.TransformChanged)
	case Velocity:
		j.djacValid = false
		j.notify(referenceframe.VelocityChanged)
	case Acceleration:
		j.notify(referenceframe.AccelerationChanged)
	}
}

// Position returns the position of degree of freedom i.
func (j *Joint) Position(i int) float64 {
	return j.value(Position, i)
}

// SetPosition sets the position of degree of freedom i. Limits are not applied.
func (j *Joint) SetPosition(i int, v float64) {
	j.setValue(Position, i, v)
}

// Positions returns all positions.
func (j *Joint) Positions() []float64 {
	return j.values(Position)
}

// SetPositions sets all positions.
func (j *Joint) SetPositions(q []float64) error {
	return j.setValues(Position, q)
}

// Velocity returns the velocity of degree of freedom i.
func (j *Joint) Velocity(i int) float64 {
	return j.value(Velocity, i)
}

// SetVelocity sets the velocity of degree of freedom i. Limits are not applied.
func (j *Joint) SetVelocity(i int, v float64) {
	j.setValue(Velocity, i, v)
}

// Velocities returns all velocities.
func (j *Joint) Velocities() []float64 {
	return j.values(Velocity)
}

// SetVelocities sets all velocities.
func (j *Joint) SetVelocities(dq []float64) error {
	return j.setValues(Velocity, dq)
}

// Acceleration returns the acceleration of degree of freedom i.
func (j *Joint) Acceleration(i int) float64 {
	return j.value(Acceleration, i)
}

// SetAcceleration sets the acceleration of degree of freedom i. Limits are not applied.
func (j *Joint) SetAcceleration(i int, v float64) {
	j.setValue(Acceleration, i, v)
}

// Accelerations returns all accelerations.
func (j *Joint) Accelerations() []float64 {
	return j.values(Acceleration)
}

// SetAccelerations sets all accelerations.
func (j *Joint) SetAccelerations(ddq []float64) error {
	return j.setValues(Acceleration, ddq)
}

// Force returns the generalized force of degree of freedom i.
func (j *Joint) Force(i int) float64 {
	return j.value(Force, i)
}

// SetForce sets the generalized force of degree of freedom i. Limits are not applied.
func (j *Joint) SetForce(i int, v float64) {
	j.setValue(Force, i, v)
}

// Forces returns all generalized forces.
func (j *Joint) Forces() []float64 {
	return j.values(Force)
}

// SetForces sets all generalized forces.
func (j *Joint) SetForces(f []float64) error {
	return j.setValues(Force, f)
}

// ResetForces zeroes all generalized forces.
func (j *Joint) ResetForces() {
	for i := range j.dofs {
		j.dofs[i].Force = 0
	}
}

// Limit returns the limits of quantity q of degree of freedom i.
func (j *Joint) Limit(q Quantity, i int) Limit {
	return j.dof(i).Limits[q]
}

// SetLimit sets the limits of quantity q of degree of freedom i.
func (j *Joint) SetLimit(q Quantity, i int, l Limit) {
	j.dof(i).Limits[q] = l
}

// LowerLimit returns the lower limit of quantity q of degree of freedom i.
func (j *Joint) LowerLimit(q Quantity, i int) float64 {
	return j.dof(i).Limits[q].Min
}

// SetLowerLimit sets the lower limit of quantity q of degree of freedom i.
func (j *Joint) SetLowerLimit(q Quantity, i int, v float64) {
	j.dof(i).Limits[q].Min = v
}

// UpperLimit returns the upper limit of quantity q of degree of freedom i.
func (j *Joint) UpperLimit(q Quantity, i int) float64 {
	return j.dof(i).Limits[q].Max
}

// SetUpperLimit sets the upper limit of quantity q of degree of freedom i.
func (j *Joint) SetUpperLimit(q Quantity, i int, v float64) {
	j.dof(i).Limits[q].Max = v
}

// PositionLimitEnforced reports whether stepping keeps positions within their limits.
func (j *Joint) PositionLimitEnforced() bool {
	return j.positionLimitEnforced
}

// SetPositionLimitEnforced enables or disables position limits during stepping.
func (j *Joint) SetPositionLimitEnforced(enforced bool) {
	j.positionLimitEnforced = enforced
}

// CoulombFriction returns the friction coefficient of degree of freedom i.
func (j *Joint) CoulombFriction(i int) float64 {
	return j.dof(i).CoulombFriction
}

// SetCoulombFriction sets the largest force friction can exert on degree of freedom i.
func (j *Joint) SetCoulombFriction(i int, v float64) error {
	d := j.dof(i)
	if v < 0 {
		return NewNegativeCoefficientError("coulomb friction", v)
	}
	d.CoulombFriction = v
	return nil
}

// SpringStiffness returns the spring stiffness of degree of freedom i.
func (j *Joint) SpringStiffness(i int) float64 {
	return j.dof(i).SpringStiffness
}

// SetSpringStiffness sets the stiffness of the spring pulling degree of freedom i to its rest position.
func (j *Joint) SetSpringStiffness(i int, v float64) error {
	d := j.dof(i)
	if v < 0 {
		return NewNegativeCoefficientError("spring stiffness", v)
	}
	d.SpringStiffness = v
	return nil
}

// RestPosition returns the rest position of the spring of degree of freedom i.
func (j *Joint) RestPosition(i int) float64 {
	return j.dof(i).RestPosition
}

// SetRestPosition sets the rest position of the spring of degree of freedom i.
func (j *Joint) SetRestPosition(i int, v float64) {
	j.dof(i).RestPosition = v
}

// DampingCoefficient returns the viscous damping of degree of freedom i.
func (j *Joint) DampingCoefficient(i int) float64 {
	return j.dof(i).DampingCoefficient
}

// SetDampingCoefficient sets the viscous damping of degree of freedom i.
func (j *Joint) SetDampingCoefficient(i int, v float64) error {
	d := j.dof(i)
	if v < 0 {
		return NewNegativeCoefficientError("damping coefficient", v)
	}
	d.DampingCoefficient = v
	return nil
}
