package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// AxisOrder names the sequence of fixed-axis rotations of an Euler parameterization.
type AxisOrder int

// Supported Euler orders. XYZ means R = Rx(q0)·Ry(q1)·Rz(q2).
const (
	AxisOrderXYZ AxisOrder = iota
	AxisOrderZYX
)

func (o AxisOrder) String() string {
	switch o {
	case AxisOrderXYZ:
		return "xyz"
	case AxisOrderZYX:
		return "zyx"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (o AxisOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *AxisOrder) UnmarshalText(text []byte) error {
	switch string(text) {
	case "xyz", "XYZ", "":
		*o = AxisOrderXYZ
	case "zyx", "ZYX":
		*o = AxisOrderZYX
	default:
		return errors.Errorf("unknown euler axis order %q", string(text))
	}
	return nil
}

// Axes returns the three unit axes in application order.
func (o AxisOrder) Axes() [3]r3.Vector {
	x, y, z := r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: 1}
	if o == AxisOrderZYX {
		return [3]r3.Vector{z, y, x}
	}
	return [3]r3.Vector{x, y, z}
}

// EulerToRotationMatrix composes the three rotations of the given order.
func EulerToRotationMatrix(order AxisOrder, angles [3]float64) RotationMatrix {
	axes := order.Axes()
	return RotationAboutAxis(axes[0], angles[0]).
		MulRotation(RotationAboutAxis(axes[1], angles[1])).
		MulRotation(RotationAboutAxis(axes[2], angles[2]))
}

// gimbalTolerance is how close |sin(middle angle)| may get to 1 before the decomposition treats
// the first and third axes as aligned.
const gimbalTolerance = 1e-10

// RotationMatrixToEuler decomposes a rotation into angles of the given order. The middle angle
// lies in [-π/2, π/2]. At gimbal lock the third angle is set to 0 and the first absorbs the
// combined rotation.
func RotationMatrixToEuler(order AxisOrder, rm RotationMatrix) [3]float64 {
	if order == AxisOrderZYX {
		// R = Rz(a)·Ry(b)·Rx(c)
		sb := -clampUnit(rm.At(2, 0))
		b := math.Asin(sb)
		if 1-math.Abs(sb) < gimbalTolerance {
			return [3]float64{math.Atan2(-rm.At(0, 1), rm.At(1, 1)), b, 0}
		}
		return [3]float64{
			math.Atan2(rm.At(1, 0), rm.At(0, 0)),
			b,
			math.Atan2(rm.At(2, 1), rm.At(2, 2)),
		}
	}
	// R = Rx(a)·Ry(b)·Rz(c)
	sb := clampUnit(rm.At(0, 2))
	b := math.Asin(sb)
	if 1-math.Abs(sb) < gimbalTolerance {
		return [3]float64{math.Atan2(rm.At(2, 1), rm.At(1, 1)), b, 0}
	}
	return [3]float64{
		math.Atan2(-rm.At(1, 2), rm.At(2, 2)),
		b,
		math.Atan2(-rm.At(0, 1), rm.At(0, 0)),
	}
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
