package kinematics

import (
	"github.com/Aoi-hosizora/dart/spatialmath"
)

// SetRelativeTransform sets the positions of a free joint so that the local transform equals tf.
func (j *Joint) SetRelativeTransform(tf spatialmath.Transform) error {
	if j.jointType != FreeJoint {
		return NewWrongJointTypeError(j.name, j.jointType, FreeJoint)
	}
	jointTF := spatialmath.Compose(spatialmath.InvCompose(j.tfParent, tf), j.tfChild)
	return j.SetPositions(FreeConvertToPositions(jointTF))
}

// SetRelativeSpatialVelocity sets the velocities of a free joint so that the child body moves
// with vel relative to the parent body, in child coordinates.
func (j *Joint) SetRelativeSpatialVelocity(vel spatialmath.SpatialVector) error {
	if j.jointType != FreeJoint {
		return NewWrongJointTypeError(j.name, j.jointType, FreeJoint)
	}
	a := spatialmath.AdInvT(j.tfChild, vel).Array()
	return j.SetVelocities(a[:])
}

// SetRelativeSpatialAcceleration sets the accelerations of a free joint so that the child body
// accelerates with acc relative to the parent body, in child coordinates.
func (j *Joint) SetRelativeSpatialAcceleration(acc spatialmath.SpatialVector) error {
	if j.jointType != FreeJoint {
		return NewWrongJointTypeError(j.name, j.jointType, FreeJoint)
	}
	a := spatialmath.AdInvT(j.tfChild, acc).Array()
	return j.SetAccelerations(a[:])
}
