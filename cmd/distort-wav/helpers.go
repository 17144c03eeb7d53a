package main

import (
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-distortion/dsp/effectchain"
	"github.com/cwbudde/algo-distortion/dsp/param"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	wavFormatPCM = 1
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	format   *audio.Format
}

// openWAVInput opens a WAV file and checks that the chain can process it.
func openWAVInput(path string) (*wavInputInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)

	if !effectchain.SupportsLayout(format.NumChannels, format.NumChannels) {
		_ = f.Close()
		return nil, fmt.Errorf("unsupported channel count %d: mono or stereo only", format.NumChannels)
	}

	if getMaxValue(bitDepth) == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("unsupported bit depth %d: 16, 24 or 32 only", bitDepth)
	}

	return &wavInputInfo{
		file:     f,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: bitDepth,
		format:   format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// getMaxValue returns the full-scale sample value for the bit depth, or 0
// when the depth is not supported.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return 0
	}
}

type renderStats struct {
	frames     int
	channels   int
	sampleRate int
	bitDepth   int
	peakIn     float64
	peakOut    float64
}

// renderFile streams inPath through a processor built from opts and
// writes the result to outPath in the input format.
func renderFile(inPath, outPath string, snap param.Snapshot, blockSize int, opts ...effectchain.Option) (renderStats, error) {
	if blockSize <= 0 {
		return renderStats{}, fmt.Errorf("block size must be > 0: %d", blockSize)
	}

	in, err := openWAVInput(inPath)
	if err != nil {
		return renderStats{}, err
	}
	defer in.Close()

	opts = append(opts, effectchain.WithMaxChannels(in.channels))

	p, err := effectchain.New(opts...)
	if err != nil {
		return renderStats{}, err
	}

	if err := p.Prepare(float64(in.rate), blockSize); err != nil {
		return renderStats{}, err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return renderStats{}, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	enc := wav.NewEncoder(out, in.rate, in.bitDepth, in.channels, wavFormatPCM)

	stats := renderStats{channels: in.channels, sampleRate: in.rate, bitDepth: in.bitDepth}
	buf := newRenderBuffers(in, blockSize)

	for {
		n, err := in.decoder.PCMBuffer(buf.ints)
		if err != nil {
			return stats, fmt.Errorf("failed to read samples: %w", err)
		}

		if n == 0 {
			break
		}

		frames := n / in.channels
		stats.peakIn = math.Max(stats.peakIn, buf.deinterleave(frames))

		p.ProcessBlock(buf.planar(frames), snap)

		stats.peakOut = math.Max(stats.peakOut, buf.interleave(frames))
		stats.frames += frames

		if err := enc.Write(buf.out(frames)); err != nil {
			return stats, fmt.Errorf("failed to write samples: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return stats, fmt.Errorf("failed to finalize output: %w", err)
	}

	return stats, nil
}

// renderBuffers holds the preallocated interleaved and planar buffers.
type renderBuffers struct {
	ints     *audio.IntBuffer
	outInts  *audio.IntBuffer
	channels [][]float64
	view     [][]float64
	maxVal   float64
}

func newRenderBuffers(in *wavInputInfo, blockSize int) *renderBuffers {
	b := &renderBuffers{
		ints: &audio.IntBuffer{
			Data:           make([]int, blockSize*in.channels),
			Format:         in.format,
			SourceBitDepth: in.bitDepth,
		},
		outInts: &audio.IntBuffer{
			Data:           make([]int, blockSize*in.channels),
			Format:         in.format,
			SourceBitDepth: in.bitDepth,
		},
		channels: make([][]float64, in.channels),
		view:     make([][]float64, in.channels),
		maxVal:   getMaxValue(in.bitDepth),
	}

	for ch := range b.channels {
		b.channels[ch] = make([]float64, blockSize)
	}

	return b
}

// deinterleave converts frames of integer samples to planar floats and
// returns their peak magnitude.
func (b *renderBuffers) deinterleave(frames int) float64 {
	nch := len(b.channels)
	inv := 1 / b.maxVal
	peak := 0.0

	for ch, dst := range b.channels {
		for i := range frames {
			v := float64(b.ints.Data[i*nch+ch]) * inv
			dst[i] = v
			peak = math.Max(peak, math.Abs(v))
		}
	}

	return peak
}

// interleave quantizes the planar floats back into the output buffer and
// returns their peak magnitude.
func (b *renderBuffers) interleave(frames int) float64 {
	nch := len(b.channels)
	peak := 0.0

	for ch, src := range b.channels {
		for i := range frames {
			peak = math.Max(peak, math.Abs(src[i]))

			v := math.Round(src[i] * b.maxVal)
			v = math.Max(-b.maxVal-1, math.Min(b.maxVal, v))
			b.outInts.Data[i*nch+ch] = int(v)
		}
	}

	return peak
}

func (b *renderBuffers) planar(frames int) [][]float64 {
	for ch := range b.channels {
		b.view[ch] = b.channels[ch][:frames]
	}

	return b.view
}

func (b *renderBuffers) out(frames int) *audio.IntBuffer {
	return &audio.IntBuffer{
		Data:           b.outInts.Data[:frames*len(b.channels)],
		Format:         b.outInts.Format,
		SourceBitDepth: b.outInts.SourceBitDepth,
	}
}
