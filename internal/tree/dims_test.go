package tree

import "testing"

func TestNewDimsRejectsNonPositiveCapacity(t *testing.T) {
	if _, err := NewDims(0, 64); err == nil {
		t.Fatalf("expected error for zero capacity")
	}
	if _, err := NewDims(-5, 64); err == nil {
		t.Fatalf("expected error for negative capacity")
	}
}

func TestNewDimsRejectsBadWordWidth(t *testing.T) {
	cases := []int{0, 7, 8, 16, 63, 100}
	for _, w := range cases {
		if _, err := NewDims(1024, w); err == nil {
			t.Fatalf("word width %d: expected error", w)
		}
	}
}

func TestNewDimsProducesConsistentDegree(t *testing.T) {
	d, err := NewDims(1<<20, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Degree*d.CounterWidth > d.W {
		t.Fatalf("degree*counterWidth = %d exceeds W = %d", d.Degree*d.CounterWidth, d.W)
	}
	if d.Degree < minDegree {
		t.Fatalf("degree %d below minimum %d", d.Degree, minDegree)
	}
	if d.PointerWidth > d.CounterWidth {
		t.Fatalf("pointer_width %d exceeds counter_width %d", d.PointerWidth, d.CounterWidth)
	}
	if d.PointerWidth*d.Degree > d.W {
		t.Fatalf("pointer_width*degree = %d exceeds W = %d", d.PointerWidth*d.Degree, d.W)
	}
	if d.MaxLeaves <= 0 || d.MaxNodes <= 0 {
		t.Fatalf("non-positive pool sizes: leaves=%d nodes=%d", d.MaxLeaves, d.MaxNodes)
	}
}

func TestNewDimsScalesWithCapacity(t *testing.T) {
	small, err := NewDims(1<<10, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	large, err := NewDims(1<<24, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if large.MaxLeaves <= small.MaxLeaves {
		t.Fatalf("expected larger capacity to need more leaves: small=%d large=%d", small.MaxLeaves, large.MaxLeaves)
	}
	if large.CounterWidth <= small.CounterWidth {
		t.Fatalf("expected larger capacity to need wider counters: small=%d large=%d", small.CounterWidth, large.CounterWidth)
	}
}
