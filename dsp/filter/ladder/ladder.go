package ladder

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-distortion/dsp/core"
)

const (
	// Stages is the number of cascaded one-pole sections.
	Stages = 4
	// MaxFeedback is the largest feedback gain Set accepts. The loop gain
	// stays below one, so the ladder never self-oscillates: feedback lowers
	// the DC gain to 1/(1+feedback) and leaves a mild bump below the cutoff.
	MaxFeedback = 0.98

	defaultCutoffHz = 1000.0
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	cutoffHz float64
	feedback float64
}

func defaultConfig() config {
	return config{cutoffHz: defaultCutoffHz}
}

// WithCutoffHz sets the initial cutoff. Must be finite and >= MinCutoffHz.
func WithCutoffHz(cutoffHz float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(cutoffHz) || cutoffHz < MinCutoffHz {
			return fmt.Errorf("ladder cutoff must be >= %g and finite: %f", MinCutoffHz, cutoffHz)
		}

		cfg.cutoffHz = cutoffHz

		return nil
	}
}

// WithFeedback sets the initial feedback in [0, MaxFeedback].
func WithFeedback(feedback float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(feedback) || feedback < 0 || feedback > MaxFeedback {
			return fmt.Errorf("ladder feedback must be in [0, %g]: %f", MaxFeedback, feedback)
		}

		cfg.feedback = feedback

		return nil
	}
}

// Ladder is four OnePole stages in series with output-to-input feedback:
//
//	u = x - feedback*lastOutput
//	y = stage3(stage2(stage1(stage0(u))))
//
// lastOutput is the previous sample's output, so the loop has one sample of
// delay and needs no implicit solve.
type Ladder struct {
	sampleRate float64
	cutoffHz   float64
	feedback   float64

	stages     [Stages]OnePole
	lastOutput float64
}

// New constructs a ladder bound to sampleRate.
func New(sampleRate float64, opts ...Option) (*Ladder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	l := &Ladder{cutoffHz: cfg.cutoffHz, feedback: cfg.feedback}
	if err := l.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	return l, nil
}

// SetSampleRate rebinds every stage and retunes to the current settings.
func (l *Ladder) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("ladder sample rate must be > 0 and finite: %f", sampleRate)
	}

	l.sampleRate = sampleRate
	for i := range l.stages {
		l.stages[i].sampleRate = sampleRate
	}

	l.Set(l.cutoffHz, l.feedback)

	return nil
}

// Set retunes all stages to frequency and sets the loop gain. feedback is
// clamped to [0, MaxFeedback]; NaN is treated as 0. Never allocates.
func (l *Ladder) Set(frequency, feedback float64) {
	if !(feedback > 0) {
		feedback = 0
	}

	l.cutoffHz = frequency
	l.feedback = math.Min(feedback, MaxFeedback)

	inCoef, outCoef := OnePoleCoefficients(frequency, l.sampleRate)
	for i := range l.stages {
		s := &l.stages[i]
		s.frequency = frequency
		s.inCoef = inCoef
		s.outCoef = outCoef
	}
}

// ProcessSample runs one sample through the feedback loop and the four stages.
func (l *Ladder) ProcessSample(x float64) float64 {
	y := x - l.feedback*l.lastOutput
	for i := range l.stages {
		y = l.stages[i].ProcessSample(y)
	}

	l.lastOutput = y

	return y
}

// ProcessInPlace filters buf in place.
func (l *Ladder) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = l.ProcessSample(x)
	}
}

// Reset clears all stage states and the feedback register.
func (l *Ladder) Reset() {
	for i := range l.stages {
		l.stages[i].Reset()
	}

	l.lastOutput = 0
}

// FlushDenormals zeroes state registers that decayed into the denormal range.
func (l *Ladder) FlushDenormals() {
	for i := range l.stages {
		l.stages[i].flushDenormals()
	}

	l.lastOutput = core.FlushDenormals(l.lastOutput)
}

// Coefficients returns the shared stage coefficients and the feedback gain.
func (l *Ladder) Coefficients() (inCoef, outCoef, feedback float64) {
	return l.stages[0].inCoef, l.stages[0].outCoef, l.feedback
}

// DCGain returns the steady-state gain 1/(1+feedback).
func (l *Ladder) DCGain() float64 { return 1 / (1 + l.feedback) }

// SampleRate returns the bound sample rate in Hz.
func (l *Ladder) SampleRate() float64 { return l.sampleRate }

// CutoffHz returns the last requested cutoff in Hz.
func (l *Ladder) CutoffHz() float64 { return l.cutoffHz }

// Feedback returns the effective (clamped) feedback gain.
func (l *Ladder) Feedback() float64 { return l.feedback }
