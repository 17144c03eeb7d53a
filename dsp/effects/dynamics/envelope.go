package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-distortion/dsp/core"
)

// EnvelopeFollower is a two-stage peak follower.
//
// The first stage holds the larger of |x| and a release-smoothed copy of the
// previous peak, so peaks are caught instantly and decay exponentially. The
// second stage moves the output towards that peak with the attack
// coefficient, which keeps fast transients from producing steps:
//
//	peak = max(|x|, rel*peak + (1-rel)*|x|)
//	out  = att*(out - peak) + peak
//
// Both coefficients are 0 until SetCoefficients is called, which makes the
// follower track |x| with no smoothing.
type EnvelopeFollower struct {
	sampleRate float64
	attackMs   float64
	releaseMs  float64

	attackCoef  float64
	releaseCoef float64

	out  float64
	peak float64
}

// NewEnvelopeFollower returns a follower bound to sampleRate with zero
// (immediate) coefficients.
func NewEnvelopeFollower(sampleRate float64) (*EnvelopeFollower, error) {
	e := &EnvelopeFollower{}
	if err := e.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	return e, nil
}

// TimeCoefficient converts a time constant in milliseconds into a per-sample
// exponential decay coefficient exp(-1000 / (ms * sampleRate)).
func TimeCoefficient(ms, sampleRate float64) float64 {
	return math.Exp(-1000 / (ms * sampleRate))
}

// SetSampleRate rebinds the follower. Coefficients set earlier are
// recomputed for the new rate; state is kept.
func (e *EnvelopeFollower) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("envelope follower sample rate must be > 0 and finite: %f", sampleRate)
	}

	e.sampleRate = sampleRate

	if e.attackMs > 0 && e.releaseMs > 0 {
		e.attackCoef = TimeCoefficient(e.attackMs, sampleRate)
		e.releaseCoef = TimeCoefficient(e.releaseMs, sampleRate)
	}

	return nil
}

// SetCoefficients derives the attack and release coefficients from times in
// milliseconds. Both must be finite and > 0.
func (e *EnvelopeFollower) SetCoefficients(attackMs, releaseMs float64) error {
	if attackMs <= 0 || !core.IsFinite(attackMs) {
		return fmt.Errorf("envelope attack must be > 0 and finite: %f", attackMs)
	}

	if releaseMs <= 0 || !core.IsFinite(releaseMs) {
		return fmt.Errorf("envelope release must be > 0 and finite: %f", releaseMs)
	}

	e.attackMs = attackMs
	e.releaseMs = releaseMs
	e.attackCoef = TimeCoefficient(attackMs, e.sampleRate)
	e.releaseCoef = TimeCoefficient(releaseMs, e.sampleRate)

	return nil
}

// ProcessSample advances the follower by one sample and returns the envelope.
func (e *EnvelopeFollower) ProcessSample(x float64) float64 {
	ax := math.Abs(x)
	e.peak = math.Max(ax, e.releaseCoef*e.peak+(1-e.releaseCoef)*ax)
	e.out = e.attackCoef*(e.out-e.peak) + e.peak

	return e.out
}

// ProcessBlock writes the envelope of src into dst. len(dst) must be >= len(src).
func (e *EnvelopeFollower) ProcessBlock(dst, src []float64) {
	_ = dst[:len(src)]
	for i, x := range src {
		dst[i] = e.ProcessSample(x)
	}
}

// FlushDenormals zeroes state that decayed into the denormal range.
func (e *EnvelopeFollower) FlushDenormals() {
	e.out = core.FlushDenormals(e.out)
	e.peak = core.FlushDenormals(e.peak)
}

// Reset clears the follower state. Coefficients are kept.
func (e *EnvelopeFollower) Reset() {
	e.out = 0
	e.peak = 0
}

// Value returns the last envelope output.
func (e *EnvelopeFollower) Value() float64 { return e.out }

// AttackCoefficient returns the per-sample attack coefficient.
func (e *EnvelopeFollower) AttackCoefficient() float64 { return e.attackCoef }

// ReleaseCoefficient returns the per-sample release coefficient.
func (e *EnvelopeFollower) ReleaseCoefficient() float64 { return e.releaseCoef }

// SampleRate returns the bound sample rate in Hz.
func (e *EnvelopeFollower) SampleRate() float64 { return e.sampleRate }
