package spatialmath

import (
	"math/rand"

	"github.com/golang/geo/r3"

	"github.com/Aoi-hosizora/dart/utils"
)

// RandomVector samples each component uniformly from [lo, hi).
func RandomVector(r *rand.Rand, lo, hi float64) r3.Vector {
	return r3.Vector{
		X: utils.SampleRandomFloat(lo, hi, r),
		Y: utils.SampleRandomFloat(lo, hi, r),
		Z: utils.SampleRandomFloat(lo, hi, r),
	}
}

// RandomSpatialVector samples each component uniformly from [lo, hi).
func RandomSpatialVector(r *rand.Rand, lo, hi float64) SpatialVector {
	return SpatialVector{Angular: RandomVector(r, lo, hi), Linear: RandomVector(r, lo, hi)}
}

// RandomTransform returns the exponential of a twist with components in [-1, 1).
func RandomTransform(r *rand.Rand) Transform {
	return ExpMap(RandomSpatialVector(r, -1, 1))
}
