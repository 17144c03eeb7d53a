package effectchain

import (
	"testing"

	"github.com/cwbudde/algo-distortion/dsp/param"
	"github.com/cwbudde/algo-distortion/internal/testutil"
)

const (
	testSampleRate = 48000.0
	testBlockSize  = 256
)

func newPrepared(t *testing.T, opts ...Option) *Processor {
	t.Helper()

	p, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := p.Prepare(testSampleRate, testBlockSize); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	return p
}

func mono(src []float64) [][]float64 { return testutil.Channels(src, 1) }

func stereo(src []float64) [][]float64 { return testutil.Channels(src, 2) }

// snapshotWith returns the default snapshot with the given overrides.
func snapshotWith(overrides map[param.ID]float64) param.Snapshot {
	s := param.DefaultSnapshot()
	for id, v := range overrides {
		s = s.With(id, v)
	}

	return s
}
