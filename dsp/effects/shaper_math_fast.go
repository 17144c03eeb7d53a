//go:build fastmath

package effects

import (
	"github.com/meko-christian/algo-approx"
)

// shapePow computes x^e for x > 0 using fast approximation.
// Uses the identity: x^e = exp(e * ln(x))
func shapePow(x, e float64) float64 {
	if e == 0 {
		return 1
	}

	return approx.FastExp(e * approx.FastLog(x))
}
