package mathutil

import "math"

// Epsilon is the tolerance used when comparing recomputed float positions.
const Epsilon = 1e-5

// FloorModF is the float counterpart of FloorMod: x - m*floor(x/m).
func FloorModF(x, m float64) float64 {
	return x - m*math.Floor(x/m)
}

// Round is the single rounding rule for turning real grid coordinates into
// tile identities: nearest integer, ties to even.
func Round(x float64) float64 {
	return math.RoundToEven(x)
}

// NearlyEqual reports whether a and b differ by less than Epsilon.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}
