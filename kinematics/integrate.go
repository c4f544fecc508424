package kinematics

import (
	"github.com/Aoi-hosizora/dart/spatialmath"
)

// IntegratedPositions returns the positions reached from q after moving with velocities dq for
// dt. Ball and free joints compose exp(dq·dt) on the right of their current rotation or
// transform; all other joints add dq·dt.
func (j *Joint) IntegratedPositions(q, dq []float64, dt float64) ([]float64, error) {
	if err := j.checkLength(q); err != nil {
		return nil, err
	}
	if err := j.checkLength(dq); err != nil {
		return nil, err
	}
	return j.integrate(q, dq, dt), nil
}

func (j *Joint) integrate(q, dq []float64, dt float64) []float64 {
	switch j.jointType {
	case BallJoint:
		rm := spatialmath.ExpMapRot(vector3(q)).MulRotation(spatialmath.ExpMapRot(vector3(dq).Mul(dt)))
		return BallConvertToPositions(rm)
	case FreeJoint:
		tf := spatialmath.Compose(spatialmath.ExpMap(spatialVector6(q)), spatialmath.ExpMap(spatialVector6(dq).Mul(dt)))
		return FreeConvertToPositions(tf)
	}
	out := make([]float64, len(q))
	for i := range q {
		out[i] = q[i] + dq[i]*dt
	}
	return out
}

// IntegratePositions advances the positions by the current velocities over dt.
func (j *Joint) IntegratePositions(dt float64) {
	if len(j.dofs) == 0 {
		return
	}
	q := j.integrate(j.Positions(), j.Velocities(), dt)
	for i := range j.dofs {
		j.dofs[i].Position = q[i]
	}
	j.changed(Position)
}

// IntegrateVelocities advances the velocities by the current accelerations over dt.
func (j *Joint) IntegrateVelocities(dt float64) {
	if len(j.dofs) == 0 {
		return
	}
	for i := range j.dofs {
		j.dofs[i].Velocity += j.dofs[i].Acceleration * dt
	}
	j.changed(Velocity)
}
