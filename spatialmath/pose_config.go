package spatialmath

import "github.com/golang/geo/r3"

// PoseConfig is the serialized form of a Transform: a translation and a rotation vector
// (axis times angle, in radians).
type PoseConfig struct {
	Translation r3.Vector `json:"translation" yaml:"translation"`
	Rotation    r3.Vector `json:"rotation" yaml:"rotation"`
}

// NewPoseConfig converts a transform to its serialized form.
func NewPoseConfig(t Transform) *PoseConfig {
	return &PoseConfig{Translation: t.Translation, Rotation: LogMapRot(t.Rotation)}
}

// Transform returns the transform described by the config. A nil config is the identity.
func (c *PoseConfig) Transform() Transform {
	if c == nil {
		return NewZeroTransform()
	}
	return NewTransform(ExpMapRot(c.Rotation), c.Translation)
}
