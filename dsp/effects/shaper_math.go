//go:build !fastmath

package effects

import "math"

// shapePow computes x^e for x > 0 using standard library math.
func shapePow(x, e float64) float64 {
	return math.Pow(x, e)
}
