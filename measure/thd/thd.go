// Package thd measures harmonic distortion of a signal, or of a block
// processor driven with a sine.
package thd

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-distortion/dsp/window"
)

const (
	defaultFFTSize      = 8192
	defaultMaxHarmonics = 9
)

var errNoFundamental = errors.New("thd: fundamental outside the analysed band")

// Config holds THD analysis parameters.
type Config struct {
	SampleRate      float64
	FFTSize         int
	FundamentalFreq float64 // 0 picks the strongest bin
	MaxHarmonics    int     // highest harmonic order counted, >= 2
	CaptureBins     int     // bins either side of a peak summed into it; 0 derives it from the window
	WindowType      window.Type
}

// Result holds THD measurement results. Ratios are relative to the
// fundamental amplitude.
//
//nolint:revive
type Result struct {
	FundamentalFreq  float64
	FundamentalLevel float64
	THD              float64
	THDN             float64
	THD_dB           float64
	THDN_dB          float64
	OddHD            float64
	EvenHD           float64
	// Harmonics[i] is the level of harmonic i+2.
	Harmonics []float64
}

// Analyzer runs repeated THD analyses with a fixed FFT size. Not safe for
// concurrent use.
type Analyzer struct {
	cfg    Config
	plan   *algofft.Plan[complex128]
	coeffs []float64
	in     []complex128
	out    []complex128
	mag    []float64
}

// NewAnalyzer validates cfg and prepares the FFT plan.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("thd: fft plan: %w", err)
	}

	return &Analyzer{
		cfg:    cfg,
		plan:   plan,
		coeffs: window.Generate(cfg.WindowType, cfg.FFTSize),
		in:     make([]complex128, cfg.FFTSize),
		out:    make([]complex128, cfg.FFTSize),
		mag:    make([]float64, cfg.FFTSize/2+1),
	}, nil
}

// AnalyzeSignal is a one-shot analysis of signal.
func AnalyzeSignal(signal []float64, cfg Config) (Result, error) {
	a, err := NewAnalyzer(cfg)
	if err != nil {
		return Result{}, err
	}

	return a.Analyze(signal)
}

// Config returns the normalised configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// BinHz returns the FFT bin spacing.
func (a *Analyzer) BinHz() float64 { return a.cfg.SampleRate / float64(a.cfg.FFTSize) }

// Analyze windows the first FFTSize samples of signal (zero padded when
// shorter) and measures its harmonic content.
func (a *Analyzer) Analyze(signal []float64) (Result, error) {
	if len(signal) == 0 {
		return Result{}, errors.New("thd: empty signal")
	}

	for i := range a.in {
		v := 0.0
		if i < len(signal) {
			v = signal[i] * a.coeffs[i]
		}

		a.in[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return Result{}, fmt.Errorf("thd: fft: %w", err)
	}

	for i := range a.mag {
		x := a.out[i]
		a.mag[i] = real(x)*real(x) + imag(x)*imag(x)
	}

	return a.FromPowerSpectrum(a.mag)
}

// FromPowerSpectrum measures harmonics from squared magnitudes of bins
// [0, Nyquist].
func (a *Analyzer) FromPowerSpectrum(power []float64) (Result, error) {
	maxBin := len(power) - 1
	if maxBin < 2 {
		return Result{}, errNoFundamental
	}

	binHz := a.BinHz()
	capture := a.cfg.CaptureBins

	fund := a.fundamentalBin(power, capture)
	if fund <= capture || fund > maxBin {
		return Result{}, errNoFundamental
	}

	fundLevel := bandLevel(power, fund, capture)
	if fundLevel <= 0 {
		return Result{FundamentalFreq: float64(fund) * binHz}, nil
	}

	var harmSq, oddSq, evenSq float64

	harmonics := make([]float64, 0, a.cfg.MaxHarmonics-1)

	for k := 2; k <= a.cfg.MaxHarmonics; k++ {
		bin := k * fund
		if bin+capture > maxBin {
			break
		}

		h := bandLevel(power, bin, capture) / fundLevel
		harmonics = append(harmonics, h)
		harmSq += h * h

		if k%2 == 0 {
			evenSq += h * h
		} else {
			oddSq += h * h
		}
	}

	totalSq := 0.0
	for i := 1; i <= maxBin; i++ {
		totalSq += power[i]
	}

	fundSq := fundLevel * fundLevel
	thdn := math.Sqrt(math.Max(totalSq-fundSq, 0) / fundSq)
	thd := math.Sqrt(harmSq)

	return Result{
		FundamentalFreq:  float64(fund) * binHz,
		FundamentalLevel: fundLevel,
		THD:              thd,
		THDN:             thdn,
		THD_dB:           ratioToDB(thd),
		THDN_dB:          ratioToDB(thdn),
		OddHD:            math.Sqrt(oddSq),
		EvenHD:           math.Sqrt(evenSq),
		Harmonics:        harmonics,
	}, nil
}

func (a *Analyzer) fundamentalBin(power []float64, capture int) int {
	if a.cfg.FundamentalFreq > 0 {
		return int(math.Round(a.cfg.FundamentalFreq / a.BinHz()))
	}

	best, bestVal := 0, -1.0

	for i := capture + 1; i < len(power); i++ {
		if power[i] > bestVal {
			best, bestVal = i, power[i]
		}
	}

	return best
}

// bandLevel returns the root of the power summed over bin±capture.
func bandLevel(power []float64, bin, capture int) float64 {
	lo := max(bin-capture, 0)
	hi := min(bin+capture, len(power)-1)

	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += power[i]
	}

	return math.Sqrt(sum)
}

func captureBinsFor(t window.Type) int {
	switch t {
	case window.TypeRectangular:
		return 0
	case window.TypeHann:
		return 1
	case window.TypeBlackmanHarris:
		return 3
	default:
		return 4
	}
}

func normalizeConfig(cfg Config) (Config, error) {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return cfg, fmt.Errorf("thd sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}

	if cfg.FFTSize == 0 {
		cfg.FFTSize = defaultFFTSize
	}

	if cfg.FFTSize < 16 || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return cfg, fmt.Errorf("thd fft size must be a power of two >= 16: %d", cfg.FFTSize)
	}

	if cfg.MaxHarmonics == 0 {
		cfg.MaxHarmonics = defaultMaxHarmonics
	}

	if cfg.MaxHarmonics < 2 {
		return cfg, fmt.Errorf("thd max harmonics must be >= 2: %d", cfg.MaxHarmonics)
	}

	if cfg.WindowType == window.TypeRectangular {
		cfg.WindowType = window.TypeHann
	}

	if cfg.CaptureBins <= 0 {
		cfg.CaptureBins = captureBinsFor(cfg.WindowType)
	}

	return cfg, nil
}

func ratioToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}
