package testutil

import "math"

// RMS returns the root mean square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range x {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(x)))
}

// Peak returns the largest absolute value in x.
func Peak(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		m = math.Max(m, math.Abs(v))
	}

	return m
}

// GainDB returns the RMS level of out relative to ref in dB.
func GainDB(out, ref []float64) float64 {
	return 20 * math.Log10(RMS(out)/RMS(ref))
}
