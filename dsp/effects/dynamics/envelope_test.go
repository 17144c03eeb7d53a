package dynamics

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-distortion/internal/testutil"
)

func TestTimeCoefficient(t *testing.T) {
	got := TimeCoefficient(1, 48000)
	want := math.Exp(-1000.0 / 48000.0)

	if math.Abs(got-want) > 1e-15 {
		t.Fatalf("coef=%.17g want=%.17g", got, want)
	}

	if c := TimeCoefficient(10, 48000); !(c > got && c < 1) {
		t.Fatalf("longer release must decay slower: %.6f", c)
	}
}

func TestEnvelopeFollowerValidation(t *testing.T) {
	if _, err := NewEnvelopeFollower(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewEnvelopeFollower(math.NaN()); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}

	e, err := NewEnvelopeFollower(48000)
	if err != nil {
		t.Fatalf("NewEnvelopeFollower() error = %v", err)
	}

	for _, tc := range [][2]float64{{0, 10}, {1, 0}, {-1, 10}, {1, math.Inf(1)}, {math.NaN(), 10}} {
		if err := e.SetCoefficients(tc[0], tc[1]); err == nil {
			t.Fatalf("SetCoefficients(%v, %v) expected error", tc[0], tc[1])
		}
	}
}

func TestEnvelopeFollowerImmediateWithoutCoefficients(t *testing.T) {
	e, err := NewEnvelopeFollower(48000)
	if err != nil {
		t.Fatal(err)
	}

	in := []float64{0.5, -0.25, 0.75, 0, -1}
	out := make([]float64, len(in))
	e.ProcessBlock(out, in)

	want := []float64{0.5, 0.25, 0.75, 0, 1}
	testutil.RequireSliceNearlyEqual(t, out, want, 0)
}

func TestEnvelopeFollowerAttackAndRelease(t *testing.T) {
	e, err := NewEnvelopeFollower(48000)
	if err != nil {
		t.Fatal(err)
	}

	if err := e.SetCoefficients(DefaultCompensationAttackMs, DefaultCompensationReleaseMs); err != nil {
		t.Fatal(err)
	}

	// Rises monotonically towards a constant level without overshoot.
	prev := 0.0

	for i := range 2000 {
		v := e.ProcessSample(1)
		if v < prev || v > 1 {
			t.Fatalf("sample %d: envelope %.6f not monotonic in [0,1]", i, v)
		}

		prev = v
	}

	if prev < 0.999 {
		t.Fatalf("envelope did not settle: %.6f", prev)
	}

	// Decays monotonically once the input stops.
	for i := range 4800 {
		v := e.ProcessSample(0)
		if v > prev {
			t.Fatalf("sample %d: envelope rose during release", i)
		}

		prev = v
	}

	if prev > 0.01 {
		t.Fatalf("envelope did not release: %.6f", prev)
	}

	e.Reset()

	if e.Value() != 0 {
		t.Fatalf("Reset left value %.6f", e.Value())
	}
}

func TestEnvelopeFollowerSampleRateKeepsTimes(t *testing.T) {
	e, err := NewEnvelopeFollower(48000)
	if err != nil {
		t.Fatal(err)
	}

	if err := e.SetCoefficients(1, 10); err != nil {
		t.Fatal(err)
	}

	if err := e.SetSampleRate(96000); err != nil {
		t.Fatal(err)
	}

	if got, want := e.AttackCoefficient(), TimeCoefficient(1, 96000); got != want {
		t.Fatalf("attack coef=%.17g want=%.17g", got, want)
	}

	if got, want := e.ReleaseCoefficient(), TimeCoefficient(10, 96000); got != want {
		t.Fatalf("release coef=%.17g want=%.17g", got, want)
	}
}

func TestEnvelopeFollowerFlushDenormals(t *testing.T) {
	e, err := NewEnvelopeFollower(48000)
	if err != nil {
		t.Fatal(err)
	}

	e.ProcessSample(1e-310)
	e.FlushDenormals()

	if e.Value() != 0 {
		t.Fatalf("denormal envelope not flushed: %g", e.Value())
	}
}
