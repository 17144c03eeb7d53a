package effects

import (
	"fmt"
	"math"
)

const (
	minWaveshaperDrive = -1.0
	maxWaveshaperDrive = 1.0
)

// DriveCurve maps a bipolar drive amount onto the exponent of the power-law
// waveshaper. Positive drive flattens the curve towards a square wave,
// negative drive steepens it towards silence around zero.
type DriveCurve struct {
	Positive float64
	Negative float64
}

var (
	// CurveClassic keeps a minimum exponent of 0.01 at full drive.
	CurveClassic = DriveCurve{Positive: 0.99, Negative: 3}
	// CurveLinear reaches exponent 0 (hard square) at full drive.
	CurveLinear = DriveCurve{Positive: 1, Negative: 3}
)

// Exponent returns the shaping exponent for drive in [-1, 1].
func (c DriveCurve) Exponent(drive float64) float64 {
	if drive >= 0 {
		return 1 - c.Positive*drive
	}

	return 1 - c.Negative*drive
}

// Shape applies the sign-preserving power law sign(x)*|x|^exponent.
// Zero maps to zero for every exponent, including 0.
func Shape(x, exponent float64) float64 {
	if x == 0 || math.IsNaN(x) {
		return 0
	}

	if exponent == 1 {
		return x
	}

	y := shapePow(math.Abs(x), exponent)
	if x < 0 {
		return -y
	}

	return y
}

// WaveshaperOption mutates construction-time parameters.
type WaveshaperOption func(*waveshaperConfig) error

type waveshaperConfig struct {
	curve DriveCurve
	drive float64
}

// WithWaveshaperCurve selects the drive-to-exponent curve.
func WithWaveshaperCurve(curve DriveCurve) WaveshaperOption {
	return func(cfg *waveshaperConfig) error {
		if !isFinite(curve.Positive) || !isFinite(curve.Negative) || curve.Positive < 0 || curve.Negative < 0 {
			return fmt.Errorf("waveshaper curve must be finite and non-negative: %+v", curve)
		}

		cfg.curve = curve

		return nil
	}
}

// WithWaveshaperDrive sets the initial drive in [-1, 1].
func WithWaveshaperDrive(drive float64) WaveshaperOption {
	return func(cfg *waveshaperConfig) error {
		if err := validateWaveshaperDrive(drive); err != nil {
			return err
		}

		cfg.drive = drive

		return nil
	}
}

// Waveshaper is a stateless power-law distortion stage. The exponent is
// cached when drive changes so ProcessSample does no curve evaluation.
type Waveshaper struct {
	curve    DriveCurve
	drive    float64
	exponent float64
}

// NewWaveshaper creates a waveshaper with CurveClassic and zero drive unless
// overridden.
func NewWaveshaper(opts ...WaveshaperOption) (*Waveshaper, error) {
	cfg := waveshaperConfig{curve: CurveClassic}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	w := &Waveshaper{curve: cfg.curve}
	w.setDrive(cfg.drive)

	return w, nil
}

// SetDrive sets drive in [-1, 1].
func (w *Waveshaper) SetDrive(drive float64) error {
	if err := validateWaveshaperDrive(drive); err != nil {
		return err
	}

	w.setDrive(drive)

	return nil
}

// SetCurve replaces the drive curve and recomputes the exponent.
func (w *Waveshaper) SetCurve(curve DriveCurve) error {
	cfg := waveshaperConfig{}
	if err := WithWaveshaperCurve(curve)(&cfg); err != nil {
		return err
	}

	w.curve = cfg.curve
	w.setDrive(w.drive)

	return nil
}

func (w *Waveshaper) setDrive(drive float64) {
	w.drive = drive
	w.exponent = w.curve.Exponent(drive)
}

// ProcessSample shapes one sample.
func (w *Waveshaper) ProcessSample(x float64) float64 {
	return Shape(x, w.exponent)
}

// ProcessInPlace shapes buf in place.
func (w *Waveshaper) ProcessInPlace(buf []float64) {
	e := w.exponent
	for i, x := range buf {
		buf[i] = Shape(x, e)
	}
}

// Drive returns the current drive.
func (w *Waveshaper) Drive() float64 { return w.drive }

// Exponent returns the cached shaping exponent.
func (w *Waveshaper) Exponent() float64 { return w.exponent }

// Curve returns the drive curve.
func (w *Waveshaper) Curve() DriveCurve { return w.curve }

func validateWaveshaperDrive(drive float64) error {
	if drive < minWaveshaperDrive || drive > maxWaveshaperDrive || !isFinite(drive) {
		return fmt.Errorf("waveshaper drive must be in [%g, %g]: %f", minWaveshaperDrive, maxWaveshaperDrive, drive)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
