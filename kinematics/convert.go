package kinematics

import (
	"github.com/Aoi-hosizora/dart/spatialmath"
)

// BallConvertToPositions returns the ball joint positions of a rotation: its rotation vector,
// with angle in [0, π].
func BallConvertToPositions(rm spatialmath.RotationMatrix) []float64 {
	w := spatialmath.LogMapRot(rm)
	return []float64{w.X, w.Y, w.Z}
}

// BallConvertToTransform returns the rotation reached by ball joint positions q.
func BallConvertToTransform(q []float64) (spatialmath.Transform, error) {
	if len(q) != 3 {
		return spatialmath.Transform{}, NewIncorrectDoFError(len(q), 3)
	}
	return spatialmath.NewRotation(spatialmath.ExpMapRot(vector3(q))), nil
}

// FreeConvertToPositions returns the free joint positions of a transform: its twist, angular
// part first.
func FreeConvertToPositions(tf spatialmath.Transform) []float64 {
	a := spatialmath.LogMap(tf).Array()
	return a[:]
}

// FreeConvertToTransform returns the transform reached by free joint positions q.
func FreeConvertToTransform(q []float64) (spatialmath.Transform, error) {
	if len(q) != 6 {
		return spatialmath.Transform{}, NewIncorrectDoFError(len(q), 6)
	}
	return spatialmath.ExpMap(spatialVector6(q)), nil
}

// EulerConvertToPositions decomposes a rotation into the angles of the joint's axis order. The
// middle angle lies in [-π/2, π/2]; when it reaches ±π/2 the first and third axes align and the
// third angle is reported as 0.
func (j *Joint) EulerConvertToPositions(rm spatialmath.RotationMatrix) ([]float64, error) {
	if j.jointType != EulerJoint {
		return nil, NewWrongJointTypeError(j.name, j.jointType, EulerJoint)
	}
	angles := spatialmath.RotationMatrixToEuler(j.axisOrder, rm)
	return angles[:], nil
}

// EulerConvertToTransform returns the rotation reached by Euler angles q in the joint's axis order.
func (j *Joint) EulerConvertToTransform(q []float64) (spatialmath.Transform, error) {
	if j.jointType != EulerJoint {
		return spatialmath.Transform{}, NewWrongJointTypeError(j.name, j.jointType, EulerJoint)
	}
	if err := j.checkLength(q); err != nil {
		return spatialmath.Transform{}, err
	}
	return spatialmath.NewRotation(spatialmath.EulerToRotationMatrix(j.axisOrder, [3]float64{q[0], q[1], q[2]})), nil
}

// AxisOrder returns the axis order of an Euler joint.
func (j *Joint) AxisOrder() spatialmath.AxisOrder {
	return j.axisOrder
}
