package param

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-distortion/dsp/core"
)

// Range is a plain-value interval with an optional snapping Interval and a
// Skew factor for the normalised mapping. Skew < 1 spends more of the
// normalised range on the low end, which suits frequencies.
type Range struct {
	Min      float64
	Max      float64
	Interval float64
	Skew     float64
}

// Validate reports whether the range is usable.
func (r Range) Validate() error {
	if !core.IsFinite(r.Min) || !core.IsFinite(r.Max) || r.Max <= r.Min {
		return fmt.Errorf("param range must satisfy min < max: [%f, %f]", r.Min, r.Max)
	}

	if r.Interval < 0 || !core.IsFinite(r.Interval) {
		return fmt.Errorf("param range interval must be >= 0 and finite: %f", r.Interval)
	}

	if r.Skew <= 0 || !core.IsFinite(r.Skew) {
		return fmt.Errorf("param range skew must be > 0 and finite: %f", r.Skew)
	}

	return nil
}

func (r Range) skew() float64 {
	if r.Skew <= 0 {
		return 1
	}

	return r.Skew
}

// ConvertFrom0to1 maps a normalised position to a snapped plain value:
// min + (max-min) * exp(log(n)/skew).
func (r Range) ConvertFrom0to1(normalized float64) float64 {
	n := core.Clamp01(normalized)

	if s := r.skew(); s != 1 && n > 0 && n < 1 {
		n = math.Exp(math.Log(n) / s)
	}

	return r.Snap(r.Min + (r.Max-r.Min)*n)
}

// ConvertTo0to1 maps a plain value to its normalised position. It is the
// inverse of ConvertFrom0to1 up to snapping.
func (r Range) ConvertTo0to1(plain float64) float64 {
	if r.Max <= r.Min {
		return 0
	}

	p := core.Clamp01((r.Clamp(plain) - r.Min) / (r.Max - r.Min))

	if s := r.skew(); s != 1 && p > 0 && p < 1 {
		p = math.Exp(math.Log(p) * s)
	}

	return p
}

// Clamp limits plain to [Min, Max]. NaN maps to Min.
func (r Range) Clamp(plain float64) float64 {
	if math.IsNaN(plain) {
		return r.Min
	}

	return core.Clamp(plain, r.Min, r.Max)
}

// Snap rounds plain to the nearest multiple of Interval above Min and clamps
// the result into the range.
func (r Range) Snap(plain float64) float64 {
	plain = r.Clamp(plain)

	if r.Interval > 0 {
		steps := math.Round((plain - r.Min) / r.Interval)

		// Decimal intervals divide by the integral reciprocal so 0.1 steps
		// land on exact decimals instead of accumulating representation error.
		if inv := 1 / r.Interval; inv == math.Round(inv) {
			plain = r.Min + steps/inv
		} else {
			plain = r.Min + steps*r.Interval
		}
	}

	return r.Clamp(plain)
}
