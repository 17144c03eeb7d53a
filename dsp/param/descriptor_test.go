package param

import (
	"math"
	"testing"
)

func TestDescriptorsLayout(t *testing.T) {
	ds := Descriptors()
	if len(ds) != int(NumParams) {
		t.Fatalf("len=%d want %d", len(ds), NumParams)
	}

	names := []string{"Drive", "Dynamics", "Cutoff", "Resonance", "Mix", "Volume"}
	for i, d := range ds {
		if d.ID != ID(i) || d.Name != names[i] || d.ID.String() != names[i] {
			t.Fatalf("descriptor %d = %+v", i, d)
		}

		if err := d.Range.Validate(); err != nil {
			t.Fatalf("%s: %v", d.Name, err)
		}

		if d.Range.Clamp(d.Default) != d.Default {
			t.Fatalf("%s: default %v outside range", d.Name, d.Default)
		}
	}

	if ds[Cutoff].Default != 20000 {
		t.Fatalf("cutoff default=%v want 20000", ds[Cutoff].Default)
	}

	if ds[Mix].Default != 1 {
		t.Fatalf("mix default=%v want 1", ds[Mix].Default)
	}

	// Returned slice is a copy.
	ds[Drive].Name = "changed"
	if d, _ := Lookup(Drive); d.Name != "Drive" {
		t.Fatal("Descriptors() exposed internal table")
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup(NumParams); ok {
		t.Fatal("Lookup(NumParams) should fail")
	}

	if ID(-1).String() != "ID(-1)" {
		t.Fatalf("String()=%q", ID(-1).String())
	}

	d, ok := ByName("cutoff")
	if !ok || d.ID != Cutoff {
		t.Fatalf("ByName(cutoff)=%+v, %v", d, ok)
	}

	if _, ok := ByName("feedback"); ok {
		t.Fatal("ByName(feedback) should fail")
	}
}

func TestDescriptorFormatParse(t *testing.T) {
	cutoff, _ := Lookup(Cutoff)
	volume, _ := Lookup(Volume)
	mix, _ := Lookup(Mix)

	tests := []struct {
		d     Descriptor
		plain float64
		text  string
	}{
		{cutoff, 1500, "1.50 kHz"},
		{cutoff, 440, "440 Hz"},
		{volume, -6, "-6.0 dB"},
		{mix, 0.25, "0.25"},
	}

	for _, tc := range tests {
		if got := tc.d.Format(tc.plain); got != tc.text {
			t.Fatalf("%s Format(%v)=%q want %q", tc.d.Name, tc.plain, got, tc.text)
		}

		got, err := tc.d.Parse(tc.text)
		if err != nil {
			t.Fatalf("%s Parse(%q) error = %v", tc.d.Name, tc.text, err)
		}

		if math.Abs(got-tc.plain) > 1e-9 {
			t.Fatalf("%s Parse(%q)=%v want %v", tc.d.Name, tc.text, got, tc.plain)
		}
	}

	if _, err := mix.Parse("NaN"); err == nil {
		t.Fatal("expected NaN parse error")
	}

	if _, err := mix.Parse("loud"); err == nil {
		t.Fatal("expected parse error")
	}

	if got, _ := cutoff.Parse("96 kHz"); got != 20000 {
		t.Fatalf("out-of-range parse not clamped: %v", got)
	}
}
