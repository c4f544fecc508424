package spatialmath

import "github.com/golang/geo/r3"

// Spatial and classical motion differ only in the linear part. The spatial linear velocity of a
// frame is the velocity of the point of the moving body that currently coincides with the frame
// origin, which is also the classical velocity of that origin. Accelerations differ by the
// centripetal term: a_classical = a_spatial + ω × v.

// PointVelocity returns the classical velocity of a point at offset from the frame origin, with
// offset and vel expressed in the same coordinates.
func PointVelocity(vel SpatialVector, offset r3.Vector) r3.Vector {
	return vel.Linear.Add(vel.Angular.Cross(offset))
}

// PointAcceleration returns the classical acceleration of a point at offset from the frame origin.
func PointAcceleration(acc, vel SpatialVector, offset r3.Vector) r3.Vector {
	w := vel.Angular
	return acc.Linear.Add(acc.Angular.Cross(offset)).Add(w.Cross(vel.Linear.Add(w.Cross(offset))))
}

// ClassicalLinearAcceleration returns the classical acceleration of the frame origin.
func ClassicalLinearAcceleration(acc, vel SpatialVector) r3.Vector {
	return acc.Linear.Add(vel.Angular.Cross(vel.Linear))
}

// SpatialLinearAcceleration inverts ClassicalLinearAcceleration for a known velocity.
func SpatialLinearAcceleration(classical r3.Vector, vel SpatialVector) r3.Vector {
	return classical.Sub(vel.Angular.Cross(vel.Linear))
}

// ToClassicalVelocity splits a spatial velocity into the classical linear velocity of the frame
// origin and the angular velocity, both rotated by tf into the coordinates it maps to.
func ToClassicalVelocity(vel SpatialVector, tf Transform) (linear, angular r3.Vector) {
	return tf.Rotation.Mul(vel.Linear), tf.Rotation.Mul(vel.Angular)
}

// FromClassicalVelocity inverts ToClassicalVelocity.
func FromClassicalVelocity(linear, angular r3.Vector, tf Transform) SpatialVector {
	return SpatialVector{
		Angular: tf.Rotation.MulTranspose(angular),
		Linear:  tf.Rotation.MulTranspose(linear),
	}
}

// ToClassicalAcceleration splits a spatial acceleration into the classical linear acceleration of
// the frame origin and the angular acceleration, rotated by tf. vel is the matching spatial
// velocity in the same coordinates as acc.
func ToClassicalAcceleration(acc, vel SpatialVector, tf Transform) (linear, angular r3.Vector) {
	return tf.Rotation.Mul(ClassicalLinearAcceleration(acc, vel)), tf.Rotation.Mul(acc.Angular)
}

// FromClassicalAcceleration inverts ToClassicalAcceleration for a known spatial velocity.
func FromClassicalAcceleration(linear, angular r3.Vector, vel SpatialVector, tf Transform) SpatialVector {
	return SpatialVector{
		Angular: tf.Rotation.MulTranspose(angular),
		Linear:  SpatialLinearAcceleration(tf.Rotation.MulTranspose(linear), vel),
	}
}
