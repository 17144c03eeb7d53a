package response_test

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-distortion/dsp/effectchain"
	"github.com/cwbudde/algo-distortion/dsp/param"
	"github.com/cwbudde/algo-distortion/measure/response"
)

func measure(t *testing.T, profile effectchain.Profile, snap param.Snapshot) response.Response {
	t.Helper()

	p, err := effectchain.New(effectchain.WithProfile(profile), effectchain.WithMaxChannels(1))
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Prepare(48000, 512); err != nil {
		t.Fatal(err)
	}

	r, err := response.MeasureProcessor(p, snap, 48000, 8192)
	if err != nil {
		t.Fatalf("MeasureProcessor() error = %v", err)
	}

	return r
}

func TestChainCutoffTracksParameter(t *testing.T) {
	for _, cutoff := range []float64{200, 1000, 5000} {
		r := measure(t, effectchain.ProfileCompensated, param.DefaultSnapshot().With(param.Cutoff, cutoff))

		if dc := r.At(0); math.Abs(dc) > 0.01 {
			t.Fatalf("cutoff=%v: DC gain %v dB", cutoff, dc)
		}

		f, ok := r.CutoffFrequency(3.0103)
		if !ok || math.Abs(f-cutoff)/cutoff > 0.02 {
			t.Fatalf("cutoff=%v: measured -3 dB point %v (%v)", cutoff, f, ok)
		}
	}
}

func TestChainResonancePeak(t *testing.T) {
	snap := param.DefaultSnapshot().With(param.Cutoff, 1000).With(param.Resonance, 1)
	r := measure(t, effectchain.ProfileCompensated, snap)

	f, db := r.Peak()
	if math.Abs(f-1000)/1000 > 0.03 {
		t.Fatalf("resonant peak at %v Hz", f)
	}

	// A Q of 4.707 peaks near 20*log10(Q/sqrt(1-1/(4Q²))) dB.
	if math.Abs(db-13.50) > 0.1 {
		t.Fatalf("resonant peak %v dB want ~13.50", db)
	}
}

func TestChainMixBlendsDry(t *testing.T) {
	snap := param.DefaultSnapshot().With(param.Cutoff, 200).With(param.Mix, 0.5)
	r := measure(t, effectchain.ProfileCompensated, snap)

	// Far above cutoff only the dry half remains.
	if got := r.At(15000); math.Abs(got-20*math.Log10(0.5)) > 0.1 {
		t.Fatalf("mix 0.5 at 15 kHz: %v dB", got)
	}
}

func TestLadderIsSteeperThanBiquad(t *testing.T) {
	snap := param.DefaultSnapshot().With(param.Cutoff, 500)
	biq := measure(t, effectchain.ProfileCompensated, snap)
	lad := measure(t, effectchain.ProfileLadder, snap)

	if lad.At(8000) >= biq.At(8000)-20 {
		t.Fatalf("ladder %v dB vs biquad %v dB at 8 kHz", lad.At(8000), biq.At(8000))
	}
}
