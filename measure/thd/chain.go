package thd

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-distortion/dsp/param"
)

// BlockProcessor is anything that processes planar audio in place with a
// parameter snapshot, such as an effectchain.Processor.
type BlockProcessor interface {
	ProcessBlock(buf [][]float64, p param.Snapshot)
}

// ProcessorConfig drives MeasureProcessor.
type ProcessorConfig struct {
	Config

	// Amplitude is the peak level of the test sine.
	Amplitude float64
	// BlockSize is the block length handed to the processor.
	BlockSize int
	// SettleSamples are processed and discarded before analysis so
	// followers and filters reach steady state.
	SettleSamples int
}

// BinCentred rounds freq to the nearest FFT bin centre so the test tone
// leaks as little as possible.
func BinCentred(freq, sampleRate float64, fftSize int) float64 {
	binHz := sampleRate / float64(fftSize)
	return math.Max(1, math.Round(freq/binHz)) * binHz
}

// MeasureProcessor feeds a bin-centred sine at cfg.FundamentalFreq through
// p one mono block at a time and analyses the settled output.
func MeasureProcessor(p BlockProcessor, snap param.Snapshot, cfg ProcessorConfig) (Result, error) {
	if cfg.FundamentalFreq <= 0 {
		return Result{}, fmt.Errorf("thd fundamental must be > 0: %f", cfg.FundamentalFreq)
	}

	if cfg.Amplitude <= 0 {
		cfg.Amplitude = 0.5
	}

	if cfg.BlockSize <= 0 {
		cfg.BlockSize = 512
	}

	a, err := NewAnalyzer(cfg.Config)
	if err != nil {
		return Result{}, err
	}

	n := a.cfg.FFTSize
	if cfg.SettleSamples <= 0 {
		cfg.SettleSamples = n / 2
	}

	freq := BinCentred(cfg.FundamentalFreq, a.cfg.SampleRate, n)
	a.cfg.FundamentalFreq = freq

	total := cfg.SettleSamples + n
	signal := make([]float64, total)
	step := 2 * math.Pi * freq / a.cfg.SampleRate

	for i := range signal {
		signal[i] = cfg.Amplitude * math.Sin(step*float64(i))
	}

	buf := make([][]float64, 1)
	for start := 0; start < total; start += cfg.BlockSize {
		buf[0] = signal[start:min(start+cfg.BlockSize, total)]
		p.ProcessBlock(buf, snap)
	}

	return a.Analyze(signal[cfg.SettleSamples:])
}
