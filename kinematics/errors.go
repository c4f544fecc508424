package kinematics

import (
	"github.com/pkg/errors"
)

// NewIncorrectDoFError returns an error indicating that a vector does not have one entry per
// degree of freedom.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of values does not match joint DoF, expected %d but got %d", expected, actual)
}

// NewDoFIndexError returns an error for a degree of freedom index outside [0, dof).
func NewDoFIndexError(index, dof int) error {
	return errors.Errorf("DoF index %d out of range for joint with %d DoF", index, dof)
}

// NewWrongJointTypeError returns an error for an operation only defined for another joint type.
func NewWrongJointTypeError(name string, actual, expected JointType) error {
	return errors.Errorf("joint %q is a %s joint, operation requires a %s joint", name, actual, expected)
}

// NewNegativeCoefficientError returns an error for a coefficient that must not be negative.
func NewNegativeCoefficientError(what string, value float64) error {
	return errors.Errorf("%s must be non-negative, got %v", what, value)
}
