package kinematics

// ActuatorType returns the actuator type of degree of freedom i.
func (j *Joint) ActuatorType(i int) ActuatorType {
	return j.dof(i).Actuator
}

// SetActuatorType sets the actuator type of every degree of freedom. Commands are reset.
func (j *Joint) SetActuatorType(a ActuatorType) error {
	if !a.IsValid() {
		return a.invalidError()
	}
	for i := range j.dofs {
		j.dofs[i].Actuator = a
		j.dofs[i].Command = 0
	}
	return nil
}

// SetDoFActuatorType sets the actuator type of degree of freedom i and resets its command.
func (j *Joint) SetDoFActuatorType(i int, a ActuatorType) error {
	d := j.dof(i)
	if !a.IsValid() {
		return a.invalidError()
	}
	d.Actuator = a
	d.Command = 0
	return nil
}

// Command returns the command of degree of freedom i.
func (j *Joint) Command(i int) float64 {
	return j.dof(i).Command
}

// SetCommand clamps v to the limits of the quantity the actuator commands and stores it. Force,
// acceleration and velocity actuators also write the clamped value into that quantity; a servo
// keeps it as its target velocity. Passive and locked actuators ignore commands.
func (j *Joint) SetCommand(i int, v float64) {
	d := j.dof(i)
	act := d.Actuator.actuation()
	if !act.accepts {
		j.logger.Warnw("actuator ignores commands", "joint", j.name, "dof", i, "actuator", d.Actuator, "command", v)
		d.Command = 0
		return
	}
	v = d.Limits[act.slot].Clamp(v)
	d.Command = v
	if act.writesSlot {
		*d.value(act.slot) = v
		j.changed(act.slot)
	}
}

// Commands returns all commands.
func (j *Joint) Commands() []float64 {
	out := make([]float64, len(j.dofs))
	for i := range j.dofs {
		out[i] = j.dofs[i].Command
	}
	return out
}

// SetCommands applies SetCommand to every degree of freedom.
func (j *Joint) SetCommands(commands []float64) error {
	if err := j.checkLength(commands); err != nil {
		return err
	}
	for i, v := range commands {
		j.SetCommand(i, v)
	}
	return nil
}

// ResetCommands zeroes all commands.
func (j *Joint) ResetCommands() {
	for i := range j.dofs {
		j.dofs[i].Command = 0
	}
}
