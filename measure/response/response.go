// Package response measures the linear frequency response of a filter or of
// the distortion chain from its impulse response.
package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-distortion/dsp/param"
	"github.com/cwbudde/algo-vecmath"
)

// BlockProcessor is anything that processes planar audio in place with a
// parameter snapshot, such as an effectchain.Processor.
type BlockProcessor interface {
	ProcessBlock(buf [][]float64, p param.Snapshot)
}

// Response is a magnitude response sampled on FFT bins [0, Nyquist].
type Response struct {
	SampleRate float64
	FFTSize    int
	Magnitude  []float64 // linear
}

var errEmptyResponse = errors.New("response: empty")

// FromImpulse transforms ir, zero padded or truncated to fftSize, into a
// magnitude response. fftSize must be a power of two.
func FromImpulse(ir []float64, sampleRate float64, fftSize int) (Response, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Response{}, fmt.Errorf("response sample rate must be > 0 and finite: %f", sampleRate)
	}

	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return Response{}, fmt.Errorf("response fft size must be a power of two >= 2: %d", fftSize)
	}

	if len(ir) == 0 {
		return Response{}, errEmptyResponse
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Response{}, fmt.Errorf("response: fft plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i := range min(len(ir), fftSize) {
		in[i] = complex(ir[i], 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Response{}, fmt.Errorf("response: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return Response{SampleRate: sampleRate, FFTSize: fftSize, Magnitude: mag}, nil
}

// ImpulseResponse drives p with a single impulse of the given amplitude
// followed by silence and returns length samples of output, divided by
// amplitude. Use a small amplitude and neutral drive to stay in the linear
// region of the chain.
func ImpulseResponse(p BlockProcessor, snap param.Snapshot, amplitude float64, length, blockSize int) ([]float64, error) {
	if amplitude <= 0 || math.IsNaN(amplitude) || math.IsInf(amplitude, 0) {
		return nil, fmt.Errorf("response impulse amplitude must be > 0 and finite: %f", amplitude)
	}

	if length <= 0 || blockSize <= 0 {
		return nil, fmt.Errorf("response length and block size must be > 0: %d, %d", length, blockSize)
	}

	ir := make([]float64, length)
	ir[0] = amplitude

	buf := make([][]float64, 1)
	for start := 0; start < length; start += blockSize {
		buf[0] = ir[start:min(start+blockSize, length)]
		p.ProcessBlock(buf, snap)
	}

	vecmath.ScaleBlock(ir, ir, 1/amplitude)

	return ir, nil
}

// MeasureProcessor returns the magnitude response of p for snap.
func MeasureProcessor(p BlockProcessor, snap param.Snapshot, sampleRate float64, fftSize int) (Response, error) {
	ir, err := ImpulseResponse(p, snap, 0.25, fftSize, 512)
	if err != nil {
		return Response{}, err
	}

	return FromImpulse(ir, sampleRate, fftSize)
}

// BinHz returns the bin spacing.
func (r Response) BinHz() float64 { return r.SampleRate / float64(r.FFTSize) }

// Frequency returns the centre frequency of bin.
func (r Response) Frequency(bin int) float64 { return float64(bin) * r.BinHz() }

// At returns the magnitude at freq in dB, interpolated linearly between bins.
func (r Response) At(freq float64) float64 {
	if len(r.Magnitude) == 0 {
		return math.Inf(-1)
	}

	pos := freq / r.BinHz()
	last := float64(len(r.Magnitude) - 1)
	pos = math.Max(0, math.Min(pos, last))

	i := int(pos)
	if float64(i) == last {
		return toDB(r.Magnitude[i])
	}

	frac := pos - float64(i)

	return toDB(r.Magnitude[i]*(1-frac) + r.Magnitude[i+1]*frac)
}

// Peak returns the frequency and level in dB of the largest bin.
func (r Response) Peak() (freq, db float64) {
	best := 0
	for i, m := range r.Magnitude {
		if m > r.Magnitude[best] {
			best = i
		}
	}

	if len(r.Magnitude) == 0 {
		return 0, math.Inf(-1)
	}

	return r.Frequency(best), toDB(r.Magnitude[best])
}

// CutoffFrequency returns the first frequency above DC where the response
// falls dropDB below its DC level, interpolated between bins. It returns
// false when the response never falls that far.
func (r Response) CutoffFrequency(dropDB float64) (float64, bool) {
	if len(r.Magnitude) < 2 {
		return 0, false
	}

	target := toDB(r.Magnitude[0]) - dropDB

	prev := toDB(r.Magnitude[0])
	for i := 1; i < len(r.Magnitude); i++ {
		cur := toDB(r.Magnitude[i])
		if cur <= target {
			frac := 0.0
			if prev != cur {
				frac = (prev - target) / (prev - cur)
			}

			return r.Frequency(i-1) + frac*r.BinHz(), true
		}

		prev = cur
	}

	return 0, false
}

func toDB(m float64) float64 {
	if m <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(m)
}
