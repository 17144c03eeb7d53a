package core

import "testing"

func TestEnsureLen(t *testing.T) {
	t.Parallel()

	buf := make([]float64, 4, 16)

	got := EnsureLen(buf, 12)
	if len(got) != 12 || &got[0] != &buf[0] {
		t.Fatalf("expected reuse: len=%d", len(got))
	}

	grown := EnsureLen(buf, 32)
	if len(grown) != 32 || cap(grown) < 32 {
		t.Fatalf("expected growth: len=%d cap=%d", len(grown), cap(grown))
	}

	if got := EnsureLen(nil, 0); len(got) != 0 {
		t.Fatalf("EnsureLen(nil, 0) len=%d", len(got))
	}

	if got := EnsureLen(buf, -1); len(got) != 0 {
		t.Fatalf("EnsureLen(buf, -1) len=%d", len(got))
	}
}
