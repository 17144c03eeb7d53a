package param

import (
	"fmt"
	"math"
	"testing"
)

func TestResonanceToQ(t *testing.T) {
	for _, tc := range []struct{ r, q float64 }{
		{0, 0.707}, {0.5, 2.707}, {1, 4.707}, {-1, 0.707}, {3, 4.707},
	} {
		if got := ResonanceToQ(tc.r); math.Abs(got-tc.q) > 1e-12 {
			t.Fatalf("ResonanceToQ(%v)=%v want %v", tc.r, got, tc.q)
		}
	}
}

func TestLadderFeedback(t *testing.T) {
	if got := LadderFeedback(1, 40); math.Abs(got-LadderFeedbackLow) > 1e-12 {
		t.Fatalf("LadderFeedback(1, 40)=%v", got)
	}

	if got := LadderFeedback(1, 20000); math.Abs(got-LadderFeedbackHigh) > 1e-12 {
		t.Fatalf("LadderFeedback(1, 20000)=%v", got)
	}

	if got := LadderFeedback(0, 1000); got != 0 {
		t.Fatalf("LadderFeedback(0, 1000)=%v", got)
	}

	prev := math.Inf(1)
	for _, f := range []float64{40, 200, 1000, 5000, 20000} {
		k := LadderFeedback(0.9, f)
		if k > prev || k > 0.98 {
			t.Fatalf("feedback must fall with cutoff: f=%v k=%v prev=%v", f, k, prev)
		}

		prev = k
	}
}

func TestVolumeGain(t *testing.T) {
	if got := VolumeGain(0); got != 1 {
		t.Fatalf("VolumeGain(0)=%v", got)
	}

	if got := VolumeGain(-36); math.Abs(got-0.015848931924611134) > 1e-15 {
		t.Fatalf("VolumeGain(-36)=%v", got)
	}
}

func ExampleStore() {
	s := NewStore()
	_ = s.Set(Drive, 0.5)
	_ = s.SetNormalized(Cutoff, 0.5)

	snap := s.Snapshot()
	cutoff, _ := Lookup(Cutoff)

	fmt.Printf("drive=%.2f cutoff=%s q=%.3f\n", snap.Drive, cutoff.Format(snap.Cutoff), ResonanceToQ(snap.Resonance))
	// Output: drive=0.50 cutoff=3.57 kHz q=0.707
}
