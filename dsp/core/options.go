package core

import "math"

const (
	// DefaultSampleRate is used until a processor is prepared.
	DefaultSampleRate = 48000.0
	// MinSampleRate replaces sample rates that are not positive and finite.
	MinSampleRate = 8000.0
	// DefaultBlockSize is the default maximum block length.
	DefaultBlockSize = 512
)

// ProcessorConfig defines the sample-rate-bound settings every stateful
// component is prepared with.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 48 kHz with 512 sample blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
		BlockSize:  DefaultBlockSize,
	}
}

// WithSampleRate sets the processing sample rate. Non-positive values are ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the maximum block size. Non-positive values are ignored.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// SanitizeSampleRate returns sampleRate, or MinSampleRate when it is not
// finite or not positive. Low but valid rates pass unchanged. The second
// result reports whether it clamped.
func SanitizeSampleRate(sampleRate float64) (float64, bool) {
	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0 {
		return MinSampleRate, true
	}

	return sampleRate, false
}
