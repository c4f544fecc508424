package referenceframe

import (
	"github.com/pkg/errors"
)

// NewFrameMissingError returns an error indicating that a frame handle does not refer to a live frame.
func NewFrameMissingError(id FrameID) error {
	return errors.Errorf("frame %d is not part of the frame system", id)
}

// NewParentFrameMissingError returns an error indicating that a frame was added without a parent.
func NewParentFrameMissingError(name string) error {
	return errors.Errorf("parent of frame %q is not part of the frame system", name)
}

// NewFrameCycleError returns an error for an attempt to place a frame beneath one of its own descendants.
func NewFrameCycleError(id, ancestor FrameID) error {
	return errors.Errorf("frame %d is an ancestor of frame %d", id, ancestor)
}

// NewSelfReferenceError returns an error for an attempt to set the motion of a frame relative to
// itself or to one of its descendants.
func NewSelfReferenceError(id, relativeTo FrameID) error {
	return errors.Errorf("cannot set the motion of frame %d relative to frame %d, which moves with it", id, relativeTo)
}
