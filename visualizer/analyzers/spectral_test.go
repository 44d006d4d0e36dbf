package analyzers

import (
	"math"
	"testing"

	"github.com/RyanBlaney/sonido-fourier/algorithms/common"
	"github.com/RyanBlaney/sonido-fourier/algorithms/spectral"
	"github.com/RyanBlaney/sonido-fourier/internal/testutil"
)

func TestSpectralAnalyzerPureTone(t *testing.T) {
	// 256 samples over 4 seconds, 2 Hz tone
	n, spacing := 256, 4.0/256
	window := make([]float64, n)
	for i := range window {
		window[i] = math.Sin(2 * math.Pi * 2 * float64(i) * spacing)
	}

	for _, backend := range []spectral.Backend{spectral.BackendGoDSP, spectral.BackendGonum} {
		fft, err := spectral.NewFFTWithBackend(backend)
		if err != nil {
			t.Fatalf("NewFFTWithBackend() error = %v", err)
		}
		sa, err := NewSpectralAnalyzer(fft, n, spacing)
		if err != nil {
			t.Fatalf("NewSpectralAnalyzer() error = %v", err)
		}

		res, err := sa.ComputeFFT(window)
		if err != nil {
			t.Fatalf("ComputeFFT() error = %v", err)
		}
		if res.FreqBins != n/2+1 || len(res.Magnitude) != res.FreqBins || len(res.Frequencies) != res.FreqBins {
			t.Fatalf("%s: inconsistent result sizes %+v", backend, res)
		}
		testutil.RequireNearlyEqual(t, res.FreqResolution, 0.25, 1e-12)

		peak := common.ArgMax(res.Magnitude)
		testutil.RequireNearlyEqual(t, res.Frequencies[peak], 2, 1e-12)
	}
}

func TestSpectralAnalyzerRejectsWrongLength(t *testing.T) {
	sa, err := NewSpectralAnalyzer(nil, 8, 1)
	if err != nil {
		t.Fatalf("NewSpectralAnalyzer() error = %v", err)
	}
	if _, err := sa.ComputeFFT(make([]float64, 7)); err == nil {
		t.Fatal("expected error for a short window")
	}
}

func TestNewSpectralAnalyzerValidation(t *testing.T) {
	if _, err := NewSpectralAnalyzer(nil, 0, 1); err == nil {
		t.Fatal("expected error for empty window")
	}
	if _, err := NewSpectralAnalyzer(nil, 8, 0); err == nil {
		t.Fatal("expected error for zero spacing")
	}
}
