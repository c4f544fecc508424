package skeleton

import (
	"github.com/pkg/errors"
)

// NewDuplicateNameError returns an error for a body node or joint whose name is already taken.
func NewDuplicateNameError(kind, name, skeleton string) error {
	return errors.Errorf("%s %q already exists in skeleton %q", kind, name, skeleton)
}

// NewBodyNodeMissingError returns an error for a body node that is not part of the skeleton.
func NewBodyNodeMissingError(name, skeleton string) error {
	return errors.Errorf("body node %q is not part of skeleton %q", name, skeleton)
}

// NewJointMissingError returns an error for a joint that is not part of the skeleton.
func NewJointMissingError(name, skeleton string) error {
	return errors.Errorf("joint %q is not part of skeleton %q", name, skeleton)
}
