package visualizer

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/RyanBlaney/sonido-fourier/algorithms/common"
	"github.com/RyanBlaney/sonido-fourier/algorithms/spectral"
	"github.com/RyanBlaney/sonido-fourier/algorithms/synthesis"
	"github.com/RyanBlaney/sonido-fourier/internal/testutil"
	"github.com/RyanBlaney/sonido-fourier/visualizer/config"
)

func newComposer(t *testing.T, slots ...synthesis.WaveParams) *Composer {
	t.Helper()
	cfg := config.DefaultComposerConfig()
	if len(slots) > 0 {
		cfg.Slots = slots
	}
	c, err := NewComposer(cfg)
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}
	return c
}

func threeToneComposer(t *testing.T) *Composer {
	return newComposer(t,
		synthesis.WaveParams{Amplitude: 1, Frequency: 1},
		synthesis.WaveParams{Amplitude: 1, Frequency: 2},
		synthesis.WaveParams{Amplitude: 1, Frequency: 3},
		synthesis.WaveParams{Amplitude: 0, Frequency: 0},
	)
}

func TestComposerDefaults(t *testing.T) {
	c := newComposer(t)
	if c.NumSlots() != 4 {
		t.Fatalf("NumSlots() = %d, want 4", c.NumSlots())
	}

	combined := c.CombinedWaveform()
	grid := c.Grid()
	if len(combined) != grid.Len() || grid.Len() != 512 {
		t.Fatalf("combined length %d, grid length %d", len(combined), grid.Len())
	}
	for i, v := range combined {
		testutil.RequireNearlyEqual(t, v, 4*math.Sin(grid.At(i)), 1e-12)
	}

	// Four unit sines at one cycle per window wind to a centroid of 4/2
	testutil.RequireNearlyEqual(t, cmplx.Abs(c.PhasorCentroid()), 2, 1e-9)
	if len(c.PhasorTrace()) != 512 {
		t.Fatalf("trace length = %d, want 512", len(c.PhasorTrace()))
	}
	if len(c.Spectrum()) != 500 {
		t.Fatalf("spectrum length = %d, want 500", len(c.Spectrum()))
	}
}

func TestComposerThreeToneSpectrum(t *testing.T) {
	c := threeToneComposer(t)
	spectrum := c.Spectrum()
	freqs, mags := spectrum.Frequencies(), spectrum.Magnitudes()

	for _, f0 := range []float64{1, 2, 3} {
		best := 0
		for i, f := range freqs {
			if math.Abs(f-f0) < math.Abs(freqs[best]-f0) {
				best = i
			}
		}
		testutil.RequireNearlyEqual(t, mags[best], 0.5, 0.02)
	}
	for i, f := range freqs {
		if f > 4.5 && mags[i] > 0.15 {
			t.Fatalf("f=%v: magnitude %v, want leakage below 0.15", f, mags[i])
		}
	}

	peaks := c.SpectrumPeaks(0.3, 0.5)
	if len(peaks) != 3 {
		t.Fatalf("got %d peaks (%+v), want 3", len(peaks), peaks)
	}
}

func TestComposerSpectrumMatchesCentroid(t *testing.T) {
	c := threeToneComposer(t)
	spectrum := c.Spectrum()

	for _, idx := range []int{0, 41, 166, 300} {
		c.SetAnalysisFrequency(spectrum[idx].Frequency)
		if got := cmplx.Abs(c.PhasorCentroid()); got != spectrum[idx].Magnitude {
			t.Fatalf("f=%v: |centroid| = %v, spectrum = %v", spectrum[idx].Frequency, got, spectrum[idx].Magnitude)
		}
	}
}

func TestComposerCentroidAtZeroIsMean(t *testing.T) {
	c := newComposer(t,
		synthesis.WaveParams{Amplitude: 1, Frequency: 1.5, Phase: 0.4},
		synthesis.WaveParams{Amplitude: 2, Frequency: 0.25, Phase: 1},
	)
	c.SetAnalysisFrequency(0)

	centroid := c.PhasorCentroid()
	testutil.RequireNearlyEqual(t, real(centroid), common.Mean(c.CombinedWaveform()), 1e-12)
	testutil.RequireNearlyEqual(t, imag(centroid), 0, 1e-12)
}

func TestComposerSetWaveParamsPartial(t *testing.T) {
	c := newComposer(t)
	if err := c.SetWaveParams(2, WithFrequency(3)); err != nil {
		t.Fatalf("SetWaveParams() error = %v", err)
	}

	p, err := c.WaveParams(2)
	if err != nil {
		t.Fatalf("WaveParams() error = %v", err)
	}
	if p.Amplitude != 1 || p.Frequency != 3 || p.Phase != 0 {
		t.Fatalf("slot 2 = %+v, want amplitude 1, frequency 3, phase 0", p)
	}

	w, err := c.Waveform(2)
	if err != nil {
		t.Fatalf("Waveform() error = %v", err)
	}
	grid := c.Grid()
	combined := c.CombinedWaveform()
	for i := range w {
		testutil.RequireNearlyEqual(t, w[i], math.Sin(3*grid.At(i)), 1e-12)
		testutil.RequireNearlyEqual(t, combined[i], 3*math.Sin(grid.At(i))+w[i], 1e-12)
	}
}

func TestComposerClampsAndWraps(t *testing.T) {
	c := newComposer(t)
	if err := c.SetWaveParams(0, WithAmplitude(9), WithFrequency(-2), WithPhase(-math.Pi/2)); err != nil {
		t.Fatalf("SetWaveParams() error = %v", err)
	}
	p, _ := c.WaveParams(0)
	if p.Amplitude != 5 || p.Frequency != 0 {
		t.Fatalf("slot 0 = %+v, want amplitude 5 and frequency 0", p)
	}
	testutil.RequireNearlyEqual(t, p.Phase, 3*math.Pi/2, 1e-12)

	c.SetAnalysisFrequency(42)
	if c.AnalysisFrequency() != 10 {
		t.Fatalf("AnalysisFrequency() = %v, want 10", c.AnalysisFrequency())
	}
}

func TestComposerSlotOutOfRange(t *testing.T) {
	c := newComposer(t)
	before := c.CombinedWaveform()

	for _, idx := range []int{-1, 4} {
		if err := c.SetWaveParams(idx, WithAmplitude(2)); !errors.Is(err, ErrSlotOutOfRange) {
			t.Fatalf("SetWaveParams(%d) error = %v, want ErrSlotOutOfRange", idx, err)
		}
		if _, err := c.WaveParams(idx); !errors.Is(err, ErrSlotOutOfRange) {
			t.Fatalf("WaveParams(%d) error = %v", idx, err)
		}
		if _, err := c.Waveform(idx); !errors.Is(err, ErrSlotOutOfRange) {
			t.Fatalf("Waveform(%d) error = %v", idx, err)
		}
	}
	testutil.RequireSliceNearlyEqual(t, c.CombinedWaveform(), before, 0)
}

func TestComposerAnalysisFrequencyLeavesSpectrum(t *testing.T) {
	c := threeToneComposer(t)
	before := c.Spectrum().Magnitudes()
	c.SetAnalysisFrequency(7.5)

	testutil.RequireSliceNearlyEqual(t, c.Spectrum().Magnitudes(), before, 0)
	if c.AnalysisFrequency() != 7.5 {
		t.Fatalf("AnalysisFrequency() = %v, want 7.5", c.AnalysisFrequency())
	}
}

func TestComposerInvalidSweepKeepsSpectrum(t *testing.T) {
	c := threeToneComposer(t)
	before := c.Spectrum()

	for _, r := range []spectral.SweepRange{
		{Lower: 5, Upper: 5, Points: 10},
		{Lower: 6, Upper: 2, Points: 10},
		{Lower: 0, Upper: 12, Points: 0},
	} {
		if err := c.SetSweepRange(r); !errors.Is(err, spectral.ErrInvalidSweepRange) {
			t.Fatalf("SetSweepRange(%+v) error = %v", r, err)
		}
	}
	after := c.Spectrum()
	testutil.RequireSliceNearlyEqual(t, after.Magnitudes(), before.Magnitudes(), 0)
	if c.SweepRange() != (spectral.SweepRange{Lower: 0, Upper: 12, Points: 500}) {
		t.Fatalf("SweepRange() = %+v", c.SweepRange())
	}
}

func TestComposerSetSweepRange(t *testing.T) {
	c := threeToneComposer(t)
	if err := c.SetSweepRange(spectral.SweepRange{Lower: 0, Upper: 4, Points: 5}); err != nil {
		t.Fatalf("SetSweepRange() error = %v", err)
	}
	s := c.Spectrum()
	testutil.RequireSliceNearlyEqual(t, s.Frequencies(), []float64{0, 1, 2, 3, 4}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, s.Magnitudes(), []float64{0, 0.5, 0.5, 0.5, 0}, 1e-9)
}

func TestComposerAccessorsReturnCopies(t *testing.T) {
	c := newComposer(t)
	c.CombinedWaveform()[0] = 100
	c.PhasorTrace()[0] = 100
	c.Spectrum()[0].Magnitude = 100

	if c.CombinedWaveform()[0] == 100 || c.PhasorTrace()[0] == 100 || c.Spectrum()[0].Magnitude == 100 {
		t.Fatal("accessor exposed internal state")
	}
}

func TestNewComposerInvalidConfig(t *testing.T) {
	cfg := config.DefaultComposerConfig()
	cfg.Slots = nil
	if _, err := NewComposer(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("NewComposer() error = %v, want ErrInvalidConfig", err)
	}
}
