package effectchain

import (
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-distortion/dsp/core"
	"github.com/cwbudde/algo-distortion/dsp/effects"
	"github.com/cwbudde/algo-distortion/dsp/effects/dynamics"
	"github.com/cwbudde/algo-distortion/dsp/param"
	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"
)

// MaxChannels is the widest supported layout (stereo).
const MaxChannels = 2

// ErrNotPrepared is returned by ProcessBlockChecked before Prepare succeeded.
var ErrNotPrepared = errors.New("effectchain: processor not prepared")

// Plugin is the host-facing contract of a prepared audio processor.
type Plugin interface {
	Prepare(sampleRate float64, maxBlockSize int) error
	ProcessBlock(buf [][]float64, p param.Snapshot)
	Descriptors() []param.Descriptor
}

var _ Plugin = (*Processor)(nil)

// SupportsLayout reports whether an input/output channel layout can be
// processed: mono or stereo, with matching input and output.
func SupportsLayout(inChannels, outChannels int) bool {
	return inChannels == outChannels && inChannels >= 1 && inChannels <= MaxChannels
}

// Option mutates construction-time parameters.
type Option func(*config) error

type config struct {
	profile     Profile
	topology    FilterTopology
	topologySet bool
	logger      logrus.FieldLogger
	maxChannels int
}

// WithProfile selects the chain profile. Defaults to ProfileCompensated.
func WithProfile(p Profile) Option {
	return func(cfg *config) error {
		if _, ok := topologies[p.Topology]; !ok {
			return fmt.Errorf("profile %q: %w: %s", p.Name, ErrUnknownTopology, p.Topology)
		}

		cfg.profile = p

		return nil
	}
}

// WithTopology overrides the filter topology of the profile.
func WithTopology(t FilterTopology) Option {
	return func(cfg *config) error {
		if _, ok := topologies[t]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTopology, t)
		}

		cfg.topology = t
		cfg.topologySet = true

		return nil
	}
}

// WithLogger sets the logger used by the non-realtime calls. The default
// discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *config) error {
		if l == nil {
			return errors.New("effectchain logger must not be nil")
		}

		cfg.logger = l

		return nil
	}
}

// WithMaxChannels sets how many channels are processed, 1 or 2.
func WithMaxChannels(n int) Option {
	return func(cfg *config) error {
		if n < 1 || n > MaxChannels {
			return fmt.Errorf("effectchain max channels must be in [1, %d]: %d", MaxChannels, n)
		}

		cfg.maxChannels = n

		return nil
	}
}

type channel struct {
	filter lowPass
	comp   dynamics.Compensator
	dry    []float64
}

// Processor is the distortion chain. It is not safe for concurrent use:
// one goroutine calls Prepare and ProcessBlock. Parameters travel by value
// in a param.Snapshot.
type Processor struct {
	profile     Profile
	logger      logrus.FieldLogger
	maxChannels int

	ctx      Context
	prepared bool

	shaper *effects.Waveshaper
	chans  []channel
	wet    []float64
}

// New creates an unprepared Processor.
func New(opts ...Option) (*Processor, error) {
	cfg := config{
		profile:     ProfileCompensated,
		maxChannels: MaxChannels,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.topologySet {
		cfg.profile.Topology = cfg.topology
	}

	if cfg.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.logger = l
	}

	shaper, err := effects.NewWaveshaper(effects.WithWaveshaperCurve(cfg.profile.Curve))
	if err != nil {
		return nil, fmt.Errorf("effectchain: %w", err)
	}

	p := &Processor{
		profile:     cfg.profile,
		logger:      cfg.logger,
		maxChannels: cfg.maxChannels,
		shaper:      shaper,
	}

	p.logger.WithFields(logrus.Fields{
		"profile":  p.profile.Name,
		"topology": p.profile.Topology.String(),
		"dynamics": p.profile.Dynamics,
		"channels": p.maxChannels,
	}).Debug("distortion processor created")

	return p, nil
}

// Prepare binds the processor to a sample rate and a maximum block size,
// allocates scratch buffers and clears all state. Sample rates that are not
// positive and finite are replaced by core.MinSampleRate.
func (p *Processor) Prepare(sampleRate float64, maxBlockSize int) error {
	if maxBlockSize <= 0 {
		return fmt.Errorf("effectchain max block size must be > 0: %d", maxBlockSize)
	}

	sr, clamped := core.SanitizeSampleRate(sampleRate)
	if clamped {
		p.logger.WithFields(logrus.Fields{
			"requested": sampleRate,
			"used":      sr,
		}).Warn("sample rate out of range, clamped")
	}

	chans := make([]channel, p.maxChannels)
	defaults := param.DefaultSnapshot()

	for i := range chans {
		c := &chans[i]

		filter, err := newLowPass(p.profile.Topology, sr)
		if err != nil {
			return fmt.Errorf("effectchain: channel %d: %w", i, err)
		}

		filter.tune(defaults.Cutoff, defaults.Resonance)
		c.filter = filter

		if err := c.comp.Prepare(sr); err != nil {
			return fmt.Errorf("effectchain: channel %d: %w", i, err)
		}

		var prev []float64
		if i < len(p.chans) {
			prev = p.chans[i].dry
		}

		c.dry = core.EnsureLen(prev, maxBlockSize)
	}

	p.chans = chans
	p.wet = core.EnsureLen(p.wet, maxBlockSize)
	p.ctx = Context{SampleRate: sr, MaxBlockSize: maxBlockSize, Channels: p.maxChannels}
	p.prepared = true

	p.logger.WithFields(logrus.Fields{
		"sample_rate": sr,
		"block_size":  maxBlockSize,
		"channels":    p.maxChannels,
		"profile":     p.profile.Name,
		"topology":    p.profile.Topology.String(),
	}).Info("distortion processor prepared")

	return nil
}

// PrepareWith is Prepare driven by processor options. Unset values fall
// back to core.DefaultSampleRate and core.DefaultBlockSize.
func (p *Processor) PrepareWith(opts ...core.ProcessorOption) error {
	cfg := core.ApplyProcessorOptions(opts...)
	return p.Prepare(cfg.SampleRate, cfg.BlockSize)
}

// ProcessBlock processes buf in place. buf[ch] holds the samples of one
// channel; channels beyond the processor's channel count are left untouched.
// Before Prepare the buffer passes through unchanged. Never allocates.
func (p *Processor) ProcessBlock(buf [][]float64, snap param.Snapshot) {
	p.process(buf, snap, true)
}

// ProcessBlockPreClip is ProcessBlock without the final hard clip. It exposes
// the raw chain output for analysis.
func (p *Processor) ProcessBlockPreClip(buf [][]float64, snap param.Snapshot) {
	p.process(buf, snap, false)
}

// ProcessBlockChecked is ProcessBlock that reports ErrNotPrepared instead of
// passing the buffer through.
func (p *Processor) ProcessBlockChecked(buf [][]float64, snap param.Snapshot) error {
	if !p.prepared {
		return ErrNotPrepared
	}

	p.process(buf, snap, true)

	return nil
}

// ProcessBlockFrom takes a snapshot of store and processes buf with it.
func (p *Processor) ProcessBlockFrom(buf [][]float64, store *param.Store) {
	p.process(buf, store.Snapshot(), true)
}

func (p *Processor) process(buf [][]float64, snap param.Snapshot, clip bool) {
	if !p.prepared {
		return
	}

	s := snap.Sanitized()

	// Sanitized drive is always in range.
	_ = p.shaper.SetDrive(s.Drive)

	amount := 0.0
	if p.profile.Dynamics {
		amount = s.Dynamics
	}

	wetGain := param.VolumeGain(s.Volume) * s.Mix
	dryGain := 1 - s.Mix
	block := p.ctx.MaxBlockSize

	for ch := range min(len(buf), len(p.chans)) {
		c := &p.chans[ch]
		c.filter.tune(s.Cutoff, s.Resonance)

		data := buf[ch]
		for start := 0; start < len(data); start += block {
			end := min(start+block, len(data))
			p.processSegment(c, data[start:end], amount, wetGain, dryGain, clip)
		}

		c.filter.flushDenormals()
		c.comp.FlushDenormals()
	}
}

func (p *Processor) processSegment(c *channel, seg []float64, amount, wetGain, dryGain float64, clip bool) {
	n := len(seg)
	dry := c.dry[:n]
	wet := p.wet[:n]

	for i, x := range seg {
		if !core.IsFinite(x) {
			x = 0
		}

		dry[i] = x
	}

	copy(wet, dry)
	p.shaper.ProcessInPlace(wet)
	c.filter.processInPlace(wet)

	if p.profile.Dynamics {
		for i, y := range wet {
			c.comp.Input(dry[i])
			wet[i] = y * c.comp.Output(y, amount)
		}
	}

	for i, y := range wet {
		if !core.IsFinite(y) {
			wet[i] = 0
		}
	}

	vecmath.ScaleBlock(seg, wet, wetGain)

	if dryGain != 0 {
		vecmath.ScaleBlock(dry, dry, dryGain)
		vecmath.AddBlockInPlace(seg, dry)
	}

	if clip {
		for i, y := range seg {
			seg[i] = core.ClampUnit(y)
		}
	}
}

// Reset clears filter and follower state without reallocating.
func (p *Processor) Reset() {
	for i := range p.chans {
		p.chans[i].filter.reset()
		p.chans[i].comp.Reset()
	}

	p.logger.Debug("distortion processor reset")
}

// Descriptors returns the parameters this processor reads. Dynamics is only
// listed when the profile compensates loudness.
func (p *Processor) Descriptors() []param.Descriptor {
	all := param.Descriptors()
	if p.profile.Dynamics {
		return all
	}

	out := all[:0]
	for _, d := range all {
		if d.ID != param.Dynamics {
			out = append(out, d)
		}
	}

	return out
}

// Prepared reports whether Prepare has succeeded.
func (p *Processor) Prepared() bool { return p.prepared }

// SampleRate returns the prepared sample rate, or 0 before Prepare.
func (p *Processor) SampleRate() float64 { return p.ctx.SampleRate }

// Context returns the prepared processing context.
func (p *Processor) Context() Context { return p.ctx }

// Profile returns the active profile, including any topology override.
func (p *Processor) Profile() Profile { return p.profile }

// MaxChannels returns the number of channels processed.
func (p *Processor) MaxChannels() int { return p.maxChannels }

// TailSamples returns the length of the output tail after the input stops.
// The chain reports none.
func (p *Processor) TailSamples() int { return 0 }

// LatencySamples returns the processing latency, which is zero.
func (p *Processor) LatencySamples() int { return 0 }
