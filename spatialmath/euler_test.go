package spatialmath

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestEulerRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, order := range []AxisOrder{AxisOrderXYZ, AxisOrderZYX} {
		t.Run(order.String(), func(t *testing.T) {
			for i := 0; i < 100; i++ {
				angles := [3]float64{
					(r.Float64()*2 - 1) * math.Pi,
					(r.Float64()*2 - 1) * (math.Pi/2 - 0.01),
					(r.Float64()*2 - 1) * math.Pi,
				}
				rot := EulerToRotationMatrix(order, angles)
				back := RotationMatrixToEuler(order, rot)
				for k := range angles {
					test.That(t, back[k], test.ShouldAlmostEqual, angles[k], 1e-9)
				}
			}
		})
	}
}

func TestEulerOrderMatters(t *testing.T) {
	angles := [3]float64{0.3, -0.4, 0.5}
	xyz := EulerToRotationMatrix(AxisOrderXYZ, angles)
	zyx := EulerToRotationMatrix(AxisOrderZYX, angles)
	test.That(t, xyz.AlmostEqual(zyx, 1e-3), test.ShouldBeFalse)

	expected := RotationAboutAxis(r3.Vector{Z: 1}, 0.3).
		MulRotation(RotationAboutAxis(r3.Vector{Y: 1}, -0.4)).
		MulRotation(RotationAboutAxis(r3.Vector{X: 1}, 0.5))
	test.That(t, zyx.AlmostEqual(expected, 1e-12), test.ShouldBeTrue)
}

func TestEulerGimbalLock(t *testing.T) {
	for _, order := range []AxisOrder{AxisOrderXYZ, AxisOrderZYX} {
		rot := EulerToRotationMatrix(order, [3]float64{0.7, math.Pi / 2, -0.2})
		back := RotationMatrixToEuler(order, rot)
		test.That(t, back[2], test.ShouldEqual, 0.)
		test.That(t, back[1], test.ShouldAlmostEqual, math.Pi/2, 1e-6)
		// the decomposition is different but describes the same rotation
		test.That(t, EulerToRotationMatrix(order, back).AlmostEqual(rot, 1e-6), test.ShouldBeTrue)
	}
}

func TestAxisOrderText(t *testing.T) {
	var o AxisOrder
	test.That(t, json.Unmarshal([]byte(`"zyx"`), &o), test.ShouldBeNil)
	test.That(t, o, test.ShouldEqual, AxisOrderZYX)
	out, err := json.Marshal(AxisOrderXYZ)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `"xyz"`)
	test.That(t, json.Unmarshal([]byte(`"yxz"`), &o), test.ShouldNotBeNil)
}
