package effectchain

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-distortion/dsp/filter/biquad"
	"github.com/cwbudde/algo-distortion/dsp/filter/ladder"
	"github.com/cwbudde/algo-distortion/dsp/param"
)

// ErrUnknownTopology is returned when a FilterTopology has no registered filter.
var ErrUnknownTopology = errors.New("unknown filter topology")

// lowPass is the per-channel resonant low-pass contract. tune is called once
// per block and must not allocate.
type lowPass interface {
	tune(cutoffHz, resonance float64)
	processInPlace(buf []float64)
	reset()
	flushDenormals()
}

type lowPassFactory func(sampleRate float64) (lowPass, error)

var topologies = map[FilterTopology]lowPassFactory{
	TopologyBiquad: newBiquadLowPass,
	TopologyLadder: newLadderLowPass,
}

func newLowPass(topology FilterTopology, sampleRate float64) (lowPass, error) {
	factory, ok := topologies[topology]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTopology, topology)
	}

	return factory(sampleRate)
}

type biquadLowPass struct {
	lp *biquad.LowPass
}

func newBiquadLowPass(sampleRate float64) (lowPass, error) {
	lp, err := biquad.NewLowPass(sampleRate)
	if err != nil {
		return nil, err
	}

	return &biquadLowPass{lp: lp}, nil
}

func (b *biquadLowPass) tune(cutoffHz, resonance float64) {
	b.lp.Set(cutoffHz, param.ResonanceToQ(resonance))
}

func (b *biquadLowPass) processInPlace(buf []float64) { b.lp.ProcessBlock(buf) }
func (b *biquadLowPass) reset()                       { b.lp.Reset() }
func (b *biquadLowPass) flushDenormals()              { b.lp.FlushDenormals() }

type ladderLowPass struct {
	l *ladder.Ladder
}

func newLadderLowPass(sampleRate float64) (lowPass, error) {
	l, err := ladder.New(sampleRate)
	if err != nil {
		return nil, err
	}

	return &ladderLowPass{l: l}, nil
}

func (l *ladderLowPass) tune(cutoffHz, resonance float64) {
	l.l.Set(cutoffHz, param.LadderFeedback(resonance, cutoffHz))
}

func (l *ladderLowPass) processInPlace(buf []float64) { l.l.ProcessInPlace(buf) }
func (l *ladderLowPass) reset()                       { l.l.Reset() }
func (l *ladderLowPass) flushDenormals()              { l.l.FlushDenormals() }
