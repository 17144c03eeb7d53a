package ladder

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-distortion/dsp/core"
)

const (
	// MaxCutoffRatio bounds the cutoff as a fraction of the sample rate.
	// tan() diverges at Nyquist and outCoef reaches -1.
	MaxCutoffRatio = 0.49
	// MinCutoffHz keeps warp strictly positive.
	MinCutoffHz = 1.0
)

// OnePoleCoefficients returns the bilinear one-pole coefficients
//
//	warp    = tan(pi*f/fs)
//	outCoef = (1-warp)/(1+warp)
//	inCoef  = warp/(1+warp)
//
// with f clamped to [MinCutoffHz, MaxCutoffRatio*fs].
func OnePoleCoefficients(frequency, sampleRate float64) (inCoef, outCoef float64) {
	f := core.Clamp(frequency, MinCutoffHz, MaxCutoffRatio*sampleRate)
	if !core.IsFinite(f) {
		f = MaxCutoffRatio * sampleRate
	}

	warp := math.Tan(math.Pi * f / sampleRate)

	return warp / (1 + warp), (1 - warp) / (1 + warp)
}

// OnePole is a bilinear-transform one-pole low-pass:
//
//	y[n] = inCoef*(x[n] + x[n-1]) + outCoef*y[n-1]
//
// DC gain is exactly one and the response has a zero at Nyquist.
type OnePole struct {
	sampleRate float64
	frequency  float64

	inCoef  float64
	outCoef float64

	state float64
}

// NewOnePole returns a one-pole low-pass at the highest allowed cutoff.
func NewOnePole(sampleRate float64) (*OnePole, error) {
	p := &OnePole{}
	if err := p.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	return p, nil
}

// SetSampleRate rebinds the stage and recomputes its coefficients.
func (p *OnePole) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("ladder one-pole sample rate must be > 0 and finite: %f", sampleRate)
	}

	p.sampleRate = sampleRate
	if p.frequency == 0 {
		p.frequency = MaxCutoffRatio * sampleRate
	}

	p.SetFrequency(p.frequency)

	return nil
}

// SetFrequency retunes the stage. Out-of-range values are clamped.
func (p *OnePole) SetFrequency(frequency float64) {
	p.frequency = frequency
	p.inCoef, p.outCoef = OnePoleCoefficients(frequency, p.sampleRate)
}

// ProcessSample filters one sample (transposed form, one state register).
func (p *OnePole) ProcessSample(x float64) float64 {
	y := p.inCoef*x + p.state
	p.state = p.inCoef*x + p.outCoef*y

	return y
}

// Reset clears the state register.
func (p *OnePole) Reset() { p.state = 0 }

// Coefficients returns (inCoef, outCoef).
func (p *OnePole) Coefficients() (inCoef, outCoef float64) { return p.inCoef, p.outCoef }

// Frequency returns the last requested cutoff in Hz.
func (p *OnePole) Frequency() float64 { return p.frequency }

func (p *OnePole) flushDenormals() {
	p.state = core.FlushDenormals(p.state)
}
