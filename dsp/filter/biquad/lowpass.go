package biquad

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-distortion/dsp/core"
)

const (
	// MaxCutoffRatio bounds the cutoff as a fraction of the sample rate.
	// At exactly Nyquist tan() diverges and both poles sit on z = -1.
	MaxCutoffRatio = 0.49
	// MinCutoffHz keeps K strictly positive.
	MinCutoffHz = 1.0
	// MinQ guards the K/Q term of the normalisation.
	MinQ = 0.01
	// ButterworthQ is the Q of a maximally flat second-order low-pass.
	ButterworthQ = 0.707
)

// LowPassCoefficients designs a resonant second-order low-pass using the
// bilinear-transform prototype:
//
//	K    = tan(pi*f/fs)
//	norm = 1 / (1 + K/Q + K²)
//	B0   = K²*norm, B1 = 2*B0, B2 = B0
//	A1   = 2*(K²-1)*norm
//	A2   = (1 - K/Q + K²)*norm
//
// frequency is clamped to [MinCutoffHz, MaxCutoffRatio*fs] and q to >= MinQ.
// The result is a pure function of its arguments.
func LowPassCoefficients(frequency, q, sampleRate float64) Coefficients {
	f := core.Clamp(frequency, MinCutoffHz, MaxCutoffRatio*sampleRate)
	if !core.IsFinite(f) {
		f = MaxCutoffRatio * sampleRate
	}

	if !(q >= MinQ) || math.IsInf(q, 0) {
		q = MinQ
	}

	k := math.Tan(math.Pi * f / sampleRate)
	kk := k * k
	norm := 1 / (1 + k/q + kk)

	b0 := kk * norm

	return Coefficients{
		B0: b0,
		B1: 2 * b0,
		B2: b0,
		A1: 2 * (kk - 1) * norm,
		A2: (1 - k/q + kk) * norm,
	}
}

// LowPass is a resonant biquad low-pass bound to a sample rate.
type LowPass struct {
	Section

	sampleRate float64
	frequency  float64
	q          float64
}

// NewLowPass returns a LowPass tuned to ButterworthQ at MaxCutoffRatio*fs.
func NewLowPass(sampleRate float64) (*LowPass, error) {
	l := &LowPass{}
	if err := l.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	return l, nil
}

// SetSampleRate rebinds the filter and recomputes coefficients. State is kept.
func (l *LowPass) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("biquad low-pass sample rate must be > 0 and finite: %f", sampleRate)
	}

	l.sampleRate = sampleRate
	if l.frequency == 0 {
		l.frequency = MaxCutoffRatio * sampleRate
		l.q = ButterworthQ
	}

	l.Set(l.frequency, l.q)

	return nil
}

// Set retunes the filter. It never fails; see LowPassCoefficients for the
// clamping rules. Safe to call once per block from the audio thread.
func (l *LowPass) Set(frequency, q float64) {
	l.frequency = frequency
	l.q = q
	l.Coefficients = LowPassCoefficients(frequency, q, l.sampleRate)
}

// SampleRate returns the bound sample rate in Hz.
func (l *LowPass) SampleRate() float64 { return l.sampleRate }

// Frequency returns the last requested cutoff in Hz (before clamping).
func (l *LowPass) Frequency() float64 { return l.frequency }

// Q returns the last requested quality factor (before clamping).
func (l *LowPass) Q() float64 { return l.q }
