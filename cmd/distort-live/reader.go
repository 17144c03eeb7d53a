package main

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/algo-distortion/dsp/effectchain"
	"github.com/cwbudde/algo-distortion/dsp/param"
)

const bytesPerSample = 4 // float32

// chainReader renders a test tone through the chain on demand. Read runs
// on the audio device goroutine; the only state shared with other
// goroutines is the parameter Store.
type chainReader struct {
	proc     *effectchain.Processor
	store    *param.Store
	channels int

	phase     float64
	phaseInc  float64
	amplitude float64

	buf  [][]float64
	view [][]float64
}

func newChainReader(proc *effectchain.Processor, store *param.Store, toneHz, amplitude float64) *chainReader {
	ctx := proc.Context()
	channels := proc.MaxChannels()

	r := &chainReader{
		proc:      proc,
		store:     store,
		channels:  channels,
		phaseInc:  2 * math.Pi * toneHz / ctx.SampleRate,
		amplitude: amplitude,
		buf:       make([][]float64, channels),
		view:      make([][]float64, channels),
	}

	for ch := range r.buf {
		r.buf[ch] = make([]float64, ctx.MaxBlockSize)
	}

	return r
}

// Read fills p with interleaved little-endian float32 frames. A trailing
// partial frame is left unwritten.
func (r *chainReader) Read(p []byte) (int, error) {
	frameBytes := r.channels * bytesPerSample
	frames := len(p) / frameBytes
	block := len(r.buf[0])

	for start := 0; start < frames; start += block {
		n := min(block, frames-start)
		r.render(n)
		r.encode(p[start*frameBytes:], n)
	}

	return frames * frameBytes, nil
}

func (r *chainReader) render(n int) {
	tone := r.buf[0][:n]
	for i := range tone {
		tone[i] = r.amplitude * math.Sin(r.phase)

		r.phase += r.phaseInc
		if r.phase >= 2*math.Pi {
			r.phase -= 2 * math.Pi
		}
	}

	r.view[0] = tone
	for ch := 1; ch < r.channels; ch++ {
		copy(r.buf[ch][:n], tone)
		r.view[ch] = r.buf[ch][:n]
	}

	r.proc.ProcessBlockFrom(r.view, r.store)
}

func (r *chainReader) encode(dst []byte, n int) {
	off := 0
	for i := range n {
		for ch := range r.channels {
			binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(float32(r.buf[ch][i])))
			off += bytesPerSample
		}
	}
}

// sweepPosition maps elapsed time to a triangle in [0, 1] with the given
// period, used to sweep the normalised cutoff.
func sweepPosition(elapsed, period float64) float64 {
	if period <= 0 {
		return 1
	}

	phase := math.Mod(elapsed/period, 1)
	if phase < 0.5 {
		return 1 - 2*phase
	}

	return 2*phase - 1
}
