package skeleton

import (
	"github.com/samber/lo"

	"github.com/Aoi-hosizora/dart/kinematics"
)

// NumDoFs returns the number of generalized coordinates of the skeleton.
func (s *Skeleton) NumDoFs() int {
	return lo.SumBy(s.Joints(), func(j *kinematics.Joint) int {
		return j.NumDoFs()
	})
}

// DoFIndex returns the index of the first generalized coordinate of joint.
func (s *Skeleton) DoFIndex(joint *kinematics.Joint) (int, error) {
	index := 0
	for _, j := range s.Joints() {
		if j == joint {
			return index, nil
		}
		index += j.NumDoFs()
	}
	return -1, NewJointMissingError(joint.Name(), s.name)
}

func (s *Skeleton) gather(get func(j *kinematics.Joint) []float64) []float64 {
	return lo.FlatMap(s.Joints(), func(j *kinematics.Joint, _ int) []float64 {
		return get(j)
	})
}

// scatter hands each joint its slice of values. Nothing is written on a length mismatch.
func (s *Skeleton) scatter(values []float64, set func(j *kinematics.Joint, part []float64) error) error {
	joints := s.Joints()
	if n := s.NumDoFs(); len(values) != n {
		return kinematics.NewIncorrectDoFError(len(values), n)
	}
	start := 0
	for _, j := range joints {
		end := start + j.NumDoFs()
		if err := set(j, values[start:end]); err != nil {
			return err
		}
		start = end
	}
	return nil
}

// Positions returns all generalized positions.
func (s *Skeleton) Positions() []float64 {
	return s.gather((*kinematics.Joint).Positions)
}

// SetPositions sets all generalized positions.
func (s *Skeleton) SetPositions(q []float64) error {
	return s.scatter(q, (*kinematics.Joint).SetPositions)
}

// Velocities returns all generalized velocities.
func (s *Skeleton) Velocities() []float64 {
	return s.gather((*kinematics.Joint).Velocities)
}

// SetVelocities sets all generalized velocities.
func (s *Skeleton) SetVelocities(dq []float64) error {
	return s.scatter(dq, (*kinematics.Joint).SetVelocities)
}

// Accelerations returns all generalized accelerations.
func (s *Skeleton) Accelerations() []float64 {
	return s.gather((*kinematics.Joint).Accelerations)
}

// SetAccelerations sets all generalized accelerations.
func (s *Skeleton) SetAccelerations(ddq []float64) error {
	return s.scatter(ddq, (*kinematics.Joint).SetAccelerations)
}

// Forces returns all generalized forces.
func (s *Skeleton) Forces() []float64 {
	return s.gather((*kinematics.Joint).Forces)
}

// SetForces sets all generalized forces.
func (s *Skeleton) SetForces(f []float64) error {
	return s.scatter(f, (*kinematics.Joint).SetForces)
}

// Commands returns all commands.
func (s *Skeleton) Commands() []float64 {
	return s.gather((*kinematics.Joint).Commands)
}

// SetCommands applies every command, clamped by its joint.
func (s *Skeleton) SetCommands(commands []float64) error {
	return s.scatter(commands, (*kinematics.Joint).SetCommands)
}

// ResetCommands zeroes every command.
func (s *Skeleton) ResetCommands() {
	for _, j := range s.Joints() {
		j.ResetCommands()
	}
}

// ResetForces zeroes every generalized force.
func (s *Skeleton) ResetForces() {
	for _, j := range s.Joints() {
		j.ResetForces()
	}
}
