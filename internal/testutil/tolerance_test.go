package testutil

import "testing"

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if d != 1 {
		t.Fatalf("MaxAbsDiff() = %v, want 1", d)
	}
	if _, err := MaxAbsDiff([]float64{1}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestRequireHelpersPass(t *testing.T) {
	RequireNearlyEqual(t, 1.0, 1.0+1e-12, 1e-9)
	RequireComplexNearlyEqual(t, complex(1, 1), complex(1, 1+1e-12), 1e-9)
	RequireSliceNearlyEqual(t, []float64{0, 1}, []float64{0, 1}, 0)
	RequireComplexSliceNearlyEqual(t, []complex128{1i}, []complex128{1i}, 0)
	RequireFinite(t, []float64{0, -1, 1e300})
}
