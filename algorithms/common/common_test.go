package common

import (
	"math"
	"testing"

	"github.com/RyanBlaney/sonido-fourier/internal/testutil"
)

func TestRotateLeft(t *testing.T) {
	tests := []struct {
		name string
		k    int
		want []float64
	}{
		{"zero", 0, []float64{0, 1, 2, 3, 4}},
		{"two", 2, []float64{2, 3, 4, 0, 1}},
		{"full turn", 5, []float64{0, 1, 2, 3, 4}},
		{"wraps", 7, []float64{2, 3, 4, 0, 1}},
		{"right", -1, []float64{4, 0, 1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []float64{0, 1, 2, 3, 4}
			RotateLeft(data, tt.k)
			testutil.RequireSliceNearlyEqual(t, data, tt.want, 0)
		})
	}

	RotateLeft(nil, 3)
}

func TestTail(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	testutil.RequireSliceNearlyEqual(t, Tail(data, 2), []float64{3, 4}, 0)
	testutil.RequireSliceNearlyEqual(t, Tail(data, 9), data, 0)
	if len(Tail(data, 0)) != 0 {
		t.Fatal("Tail(data, 0) should be empty")
	}
}

func TestStatistics(t *testing.T) {
	data := []float64{1, -1, 1, -1}
	testutil.RequireNearlyEqual(t, Mean(data), 0, 0)
	testutil.RequireNearlyEqual(t, RMS(data), 1, 1e-15)
	testutil.RequireNearlyEqual(t, RMS([]float64{3, 4}), math.Sqrt(12.5), 1e-15)

	if ArgMax([]float64{0, 5, 2}) != 1 || ArgMax(nil) != -1 {
		t.Fatal("ArgMax returned the wrong index")
	}
	if Mean(nil) != 0 || RMS(nil) != 0 {
		t.Fatal("empty input should give zero")
	}
}
