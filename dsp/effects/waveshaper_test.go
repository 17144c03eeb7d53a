package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-distortion/internal/testutil"
)

func TestDriveCurveExponent(t *testing.T) {
	tests := []struct {
		name  string
		curve DriveCurve
		drive float64
		want  float64
	}{
		{"classic neutral", CurveClassic, 0, 1},
		{"classic full", CurveClassic, 1, 0.01},
		{"classic half", CurveClassic, 0.5, 0.505},
		{"classic negative", CurveClassic, -1, 4},
		{"linear full", CurveLinear, 1, 0},
		{"linear negative half", CurveLinear, -0.5, 2.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.curve.Exponent(tc.drive); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("Exponent(%v)=%v want %v", tc.drive, got, tc.want)
			}
		})
	}
}

func TestShapeZeroAndIdentity(t *testing.T) {
	for _, e := range []float64{0, 0.01, 0.5, 1, 2, 4} {
		if got := Shape(0, e); got != 0 {
			t.Fatalf("Shape(0, %v)=%v want 0", e, got)
		}
	}

	for _, x := range []float64{-1, -0.3, 0.25, 0.9, 1} {
		if got := Shape(x, 1); got != x {
			t.Fatalf("Shape(%v, 1)=%v want identity", x, got)
		}
	}

	if got := Shape(math.NaN(), 0.5); got != 0 {
		t.Fatalf("Shape(NaN)=%v want 0", got)
	}
}

func TestShapeOddSymmetryAndBound(t *testing.T) {
	for _, e := range []float64{0, 0.01, 0.3, 1, 2.5, 4} {
		for x := -1.0; x <= 1.0; x += 1.0 / 64 {
			y := Shape(x, e)
			if math.IsNaN(y) || math.Abs(y) > 1+1e-9 {
				t.Fatalf("Shape(%v, %v)=%v outside [-1,1]", x, e, y)
			}

			if z := Shape(-x, e); math.Abs(z+y) > 1e-12 {
				t.Fatalf("Shape not odd at x=%v e=%v: %v vs %v", x, e, y, z)
			}
		}
	}
}

func TestShapeExactPower(t *testing.T) {
	if got := Shape(0.25, 0.5); math.Abs(got-0.5) > 1e-6 {
		t.Fatalf("Shape(0.25, 0.5)=%v want 0.5", got)
	}

	if got := Shape(-0.5, 2); math.Abs(got+0.25) > 1e-6 {
		t.Fatalf("Shape(-0.5, 2)=%v want -0.25", got)
	}

	if got := Shape(-0.3, 0); got != -1 {
		t.Fatalf("Shape(-0.3, 0)=%v want -1", got)
	}
}

func TestWaveshaperValidation(t *testing.T) {
	if _, err := NewWaveshaper(WithWaveshaperDrive(1.5)); err == nil {
		t.Fatal("expected error for drive above 1")
	}

	if _, err := NewWaveshaper(WithWaveshaperCurve(DriveCurve{Positive: math.NaN()})); err == nil {
		t.Fatal("expected error for NaN curve")
	}

	w, err := NewWaveshaper()
	if err != nil {
		t.Fatalf("NewWaveshaper() error = %v", err)
	}

	if w.Curve() != CurveClassic || w.Exponent() != 1 {
		t.Fatalf("unexpected defaults: curve=%+v exponent=%v", w.Curve(), w.Exponent())
	}

	if err := w.SetDrive(math.Inf(-1)); err == nil {
		t.Fatal("expected error for infinite drive")
	}

	if err := w.SetCurve(DriveCurve{Positive: -1, Negative: 3}); err == nil {
		t.Fatal("expected error for negative curve")
	}
}

func TestWaveshaperNeutralDriveIsIdentity(t *testing.T) {
	w, err := NewWaveshaper()
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.DeterministicNoise(7, 1, 256)
	buf := append([]float64(nil), in...)
	w.ProcessInPlace(buf)

	testutil.RequireSliceNearlyEqual(t, buf, in, 0)
}

func TestWaveshaperCurveSwitchKeepsDrive(t *testing.T) {
	w, err := NewWaveshaper(WithWaveshaperDrive(1))
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(w.Exponent()-0.01) > 1e-12 {
		t.Fatalf("classic exponent=%v", w.Exponent())
	}

	if err := w.SetCurve(CurveLinear); err != nil {
		t.Fatal(err)
	}

	if w.Drive() != 1 || w.Exponent() != 0 {
		t.Fatalf("linear drive=%v exponent=%v", w.Drive(), w.Exponent())
	}

	if got := w.ProcessSample(0.001); got != 1 {
		t.Fatalf("full linear drive should square: %v", got)
	}
}

func TestWaveshaperMoreDriveIsLouder(t *testing.T) {
	prev := 0.0

	for _, drive := range []float64{-1, -0.5, 0, 0.5, 1} {
		w, err := NewWaveshaper(WithWaveshaperDrive(drive))
		if err != nil {
			t.Fatal(err)
		}

		y := w.ProcessSample(0.2)
		if y < prev {
			t.Fatalf("drive=%v produced %v below previous %v", drive, y, prev)
		}

		prev = y
	}
}
