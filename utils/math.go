package utils

import (
	"math"
	"math/rand"
)

// Clamp returns v restricted to [lower, upper]. Infinite bounds are allowed.
func Clamp(v, lower, upper float64) float64 {
	return math.Min(math.Max(v, lower), upper)
}

// SampleRandomFloat samples a float uniformly from [min, max) using the given rand.Rand.
func SampleRandomFloat(min, max float64, r *rand.Rand) float64 {
	return min + r.Float64()*(max-min)
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
