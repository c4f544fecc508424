// Package kinematics implements the joints connecting rigid bodies: the map from generalized
// coordinates to a transform, its analytic Jacobian and Jacobian time derivative, and the
// actuation, limit and friction state of each degree of freedom.
//
// A joint's local transform is T_p · T_j(q) · T_c⁻¹, where T_p and T_c are the fixed offsets of
// the joint from the parent and child bodies. Its local Jacobian J maps generalized velocities
// to the spatial velocity of the child body relative to the parent, in child coordinates.
package kinematics

import (
	"github.com/golang/geo/r3"

	"github.com/Aoi-hosizora/dart/logging"
	"github.com/Aoi-hosizora/dart/referenceframe"
	"github.com/Aoi-hosizora/dart/spatialmath"
)

// axisEpsilon is the norm below which a configured axis is treated as missing.
const axisEpsilon = 1e-12

var (
	xAxis = r3.Vector{X: 1}
	yAxis = r3.Vector{Y: 1}
	zAxis = r3.Vector{Z: 1}
)

// Joint connects a parent body to a child body. It is not safe for concurrent use.
type Joint struct {
	name      string
	jointType JointType
	axes      []screwAxis
	axisOrder spatialmath.AxisOrder

	tfParent spatialmath.Transform
	tfChild  spatialmath.Transform

	dofs                  []DoF
	positionLimitEnforced bool

	tfValid   bool
	localTF   spatialmath.Transform
	jacValid  bool
	jac       spatialmath.Jacobian
	djacValid bool
	djac      spatialmath.Jacobian

	onChange func(referenceframe.Change)
	logger   logging.Logger
}

// NewJoint builds a joint at rest from its config. A nil logger discards the joint's warnings.
func NewJoint(cfg JointConfig, logger logging.Logger) (*Joint, error) {
	if err := cfg.Validate("joint"); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewBlankLogger(cfg.Name)
	}
	j := &Joint{
		name:                  cfg.Name,
		jointType:             cfg.Type,
		axisOrder:             cfg.AxisOrder,
		tfParent:              cfg.TransformFromParentBodyNode.Transform(),
		tfChild:               cfg.TransformFromChildBodyNode.Transform(),
		positionLimitEnforced: cfg.PositionLimitEnforced,
		logger:                logger,
	}
	j.axes = j.buildAxes(cfg)
	j.dofs = make([]DoF, cfg.Type.NumDoFs())
	for i := range j.dofs {
		j.dofs[i] = newDoF()
		j.dofs[i].Actuator = cfg.Actuator
		if i < len(cfg.DoFs) {
			cfg.DoFs[i].apply(&j.dofs[i])
		}
	}
	return j, nil
}

func (j *Joint) buildAxes(cfg JointConfig) []screwAxis {
	switch cfg.Type {
	case RevoluteJoint:
		return []screwAxis{revoluteAxis(j.unitAxis(cfg.Axis, xAxis, "axis"))}
	case PrismaticJoint:
		return []screwAxis{prismaticAxis(j.unitAxis(cfg.Axis, xAxis, "axis"))}
	case ScrewJoint:
		s := revoluteAxis(j.unitAxis(cfg.Axis, xAxis, "axis"))
		s.pitch = cfg.Pitch
		if s.pitch == 0 {
			s.pitch = defaultScrewPitch
		}
		return []screwAxis{s}
	case UniversalJoint:
		return []screwAxis{
			revoluteAxis(j.unitAxis(cfg.Axis, xAxis, "axis")),
			revoluteAxis(j.unitAxis(cfg.Axis2, yAxis, "axis2")),
		}
	case TranslationalJoint:
		return []screwAxis{prismaticAxis(xAxis), prismaticAxis(yAxis), prismaticAxis(zAxis)}
	case PlanarJoint:
		t1, t2 := j.planeAxes(cfg)
		return []screwAxis{prismaticAxis(t1), prismaticAxis(t2), revoluteAxis(t1.Cross(t2).Normalize())}
	case EulerJoint:
		axes := cfg.AxisOrder.Axes()
		return []screwAxis{revoluteAxis(axes[0]), revoluteAxis(axes[1]), revoluteAxis(axes[2])}
	}
	return nil
}

// planeAxes returns two orthonormal translation axes of a planar joint.
func (j *Joint) planeAxes(cfg JointConfig) (r3.Vector, r3.Vector) {
	switch cfg.Plane {
	case PlaneYZ:
		return yAxis, zAxis
	case PlaneZX:
		return zAxis, xAxis
	case PlaneArbitrary:
		t1 := j.unitAxis(cfg.Axis, xAxis, "axis")
		t2 := cfg.Axis2.Sub(t1.Mul(t1.Dot(cfg.Axis2)))
		return t1, j.unitAxis(t2, t1.Ortho(), "axis2")
	}
	return xAxis, yAxis
}

// unitAxis normalizes a configured axis, replacing a zero axis with def.
func (j *Joint) unitAxis(axis, def r3.Vector, field string) r3.Vector {
	if axis.Norm() < axisEpsilon {
		j.logger.Warnw("joint axis is zero, using default", "joint", j.name, "field", field, "default", def)
		return def
	}
	return axis.Normalize()
}

// Name returns the name of the joint.
func (j *Joint) Name() string {
	return j.name
}

// Type returns the joint type.
func (j *Joint) Type() JointType {
	return j.jointType
}

// NumDoFs returns the number of generalized coordinates.
func (j *Joint) NumDoFs() int {
	return len(j.dofs)
}

// SetChangeHandler registers fn to be called whenever a write changes the motion of the child
// body relative to the parent.
func (j *Joint) SetChangeHandler(fn func(referenceframe.Change)) {
	j.onChange = fn
}

// TransformFromParentBodyNode returns the fixed offset of the joint in the parent body.
func (j *Joint) TransformFromParentBodyNode() spatialmath.Transform {
	return j.tfParent
}

// SetTransformFromParentBodyNode sets the fixed offset of the joint in the parent body.
func (j *Joint) SetTransformFromParentBodyNode(tf spatialmath.Transform) {
	j.tfParent = tf
	j.tfValid = false
	j.notify(referenceframe.TransformChanged)
}

// TransformFromChildBodyNode returns the fixed offset of the joint in the child body.
func (j *Joint) TransformFromChildBodyNode() spatialmath.Transform {
	return j.tfChild
}

// SetTransformFromChildBodyNode sets the fixed offset of the joint in the child body.
func (j *Joint) SetTransformFromChildBodyNode(tf spatialmath.Transform) {
	j.tfChild = tf
	j.invalidateKinematics()
	j.notify(referenceframe.TransformChanged)
}

// LocalTransform returns the transform of the child body relative to the parent body at the
// current positions.
func (j *Joint) LocalTransform() spatialmath.Transform {
	if !j.tfValid {
		j.localTF = j.localTransform(j.Positions())
		j.tfValid = true
	}
	return j.localTF
}

// LocalJacobian returns the Jacobian at the current positions.
func (j *Joint) LocalJacobian() spatialmath.Jacobian {
	if !j.jacValid {
		j.jac = spatialmath.AdTJacobian(j.tfChild, j.motionSubspace(j.Positions()))
		j.jacValid = true
	}
	return j.jac
}

// LocalJacobianTimeDeriv returns the time derivative of the Jacobian at the current positions
// and velocities.
func (j *Joint) LocalJacobianTimeDeriv() spatialmath.Jacobian {
	if !j.djacValid {
		j.djac = spatialmath.AdTJacobian(j.tfChild,
			j.motionSubspaceDeriv(j.motionSubspace(j.Positions()), j.Velocities()))
		j.djacValid = true
	}
	return j.djac
}

// LocalTransformAt returns the local transform at positions q.
func (j *Joint) LocalTransformAt(q []float64) (spatialmath.Transform, error) {
	if err := j.checkLength(q); err != nil {
		return spatialmath.Transform{}, err
	}
	return j.localTransform(q), nil
}

// LocalJacobianAt returns the local Jacobian at positions q.
func (j *Joint) LocalJacobianAt(q []float64) (spatialmath.Jacobian, error) {
	if err := j.checkLength(q); err != nil {
		return nil, err
	}
	return spatialmath.AdTJacobian(j.tfChild, j.motionSubspace(q)), nil
}

// LocalJacobianTimeDerivAt returns the time derivative of the local Jacobian at positions q
// and velocities dq.
func (j *Joint) LocalJacobianTimeDerivAt(q, dq []float64) (spatialmath.Jacobian, error) {
	if err := j.checkLength(q); err != nil {
		return nil, err
	}
	if err := j.checkLength(dq); err != nil {
		return nil, err
	}
	return spatialmath.AdTJacobian(j.tfChild, j.motionSubspaceDeriv(j.motionSubspace(q), dq)), nil
}

// RelativeTransform returns the local transform. Together with RelativeSpatialVelocity and
// RelativeSpatialAcceleration it lets a joint drive the frame of its child body.
func (j *Joint) RelativeTransform() spatialmath.Transform {
	return j.LocalTransform()
}

// RelativeSpatialVelocity returns J·dq.
func (j *Joint) RelativeSpatialVelocity() spatialmath.SpatialVector {
	return j.LocalJacobian().Mul(j.Velocities())
}

// RelativeSpatialAcceleration returns J·ddq + dJ·dq.
func (j *Joint) RelativeSpatialAcceleration() spatialmath.SpatialVector {
	return j.LocalJacobian().Mul(j.Accelerations()).Add(j.LocalJacobianTimeDeriv().Mul(j.Velocities()))
}

func (j *Joint) localTransform(q []float64) spatialmath.Transform {
	return spatialmath.Compose(spatialmath.Compose(j.tfParent, j.jointTransform(q)), j.tfChild.Inverse())
}

// jointTransform returns T_j(q).
func (j *Joint) jointTransform(q []float64) spatialmath.Transform {
	switch j.jointType {
	case BallJoint:
		return spatialmath.NewRotation(spatialmath.ExpMapRot(vector3(q)))
	case FreeJoint:
		return spatialmath.ExpMap(spatialVector6(q))
	default:
		return productOfExponentials(j.axes, q)
	}
}

// motionSubspace returns the Jacobian of T_j in joint coordinates. Ball and free joints use
// body velocities as generalized velocities, so theirs is constant.
func (j *Joint) motionSubspace(q []float64) spatialmath.Jacobian {
	switch j.jointType {
	case BallJoint:
		return spatialmath.Jacobian{
			{Angular: xAxis}, {Angular: yAxis}, {Angular: zAxis},
		}
	case FreeJoint:
		return spatialmath.Jacobian{
			{Angular: xAxis}, {Angular: yAxis}, {Angular: zAxis},
			{Linear: xAxis}, {Linear: yAxis}, {Linear: zAxis},
		}
	default:
		return bodyJacobian(j.axes, q)
	}
}

func (j *Joint) motionSubspaceDeriv(s spatialmath.Jacobian, dq []float64) spatialmath.Jacobian {
	switch j.jointType {
	case BallJoint, FreeJoint:
		return spatialmath.NewJacobian(len(s))
	default:
		return bodyJacobianTimeDeriv(s, dq)
	}
}

func (j *Joint) invalidateKinematics() {
	j.tfValid = false
	j.jacValid = false
	j.djacValid = false
}

func (j *Joint) notify(change referenceframe.Change) {
	if j.onChange != nil {
		j.onChange(change)
	}
}

func (j *Joint) checkLength(values []float64) error {
	if len(values) != len(j.dofs) {
		return NewIncorrectDoFError(len(values), len(j.dofs))
	}
	return nil
}

func vector3(q []float64) r3.Vector {
	return r3.Vector{X: q[0], Y: q[1], Z: q[2]}
}

func spatialVector6(q []float64) spatialmath.SpatialVector {
	return spatialmath.SpatialVector{Angular: vector3(q[:3]), Linear: vector3(q[3:6])}
}
