package registry

import (
	"testing"

	"github.com/cwbudde/algo-distortion/internal/cpu"
)

func noop(_ Coefficients, d0, d1 float64, _ []float64) (float64, float64) { return d0, d1 }

func TestLookupPriority(t *testing.T) {
	r := &OpRegistry{}
	r.Register(OpEntry{Name: "generic", SIMDLevel: cpu.SIMDNone, Priority: 0, ProcessBlock: noop})
	r.Register(OpEntry{Name: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20, ProcessBlock: noop})
	r.Register(OpEntry{Name: "neon", SIMDLevel: cpu.SIMDNEON, Priority: 15, ProcessBlock: noop})

	tests := []struct {
		features cpu.Features
		want     string
	}{
		{cpu.Features{}, "generic"},
		{cpu.Features{HasAVX2: true}, "avx2"},
		{cpu.Features{HasNEON: true}, "neon"},
		{cpu.Features{HasAVX2: true, ForceGeneric: true}, "generic"},
	}

	for _, tt := range tests {
		entry := r.Lookup(tt.features)
		if entry == nil {
			t.Fatalf("Lookup(%+v) = nil", tt.features)
		}

		if entry.Name != tt.want {
			t.Fatalf("Lookup(%+v) = %q, want %q", tt.features, entry.Name, tt.want)
		}
	}

	if got := len(r.ListEntries()); got != 3 {
		t.Fatalf("ListEntries() len = %d, want 3", got)
	}

	r.Reset()

	if r.Lookup(cpu.Features{}) != nil {
		t.Fatal("Lookup after Reset should return nil")
	}
}
