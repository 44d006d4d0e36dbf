// Package visualizer holds the two operating modes of the Fourier
// visualizer: the composer, which sums a few adjustable sines and winds the
// result around the unit circle, and the stream, which scrolls a synthetic
// multi-tone signal through a sliding window and transforms every frame.
package visualizer

import (
	"fmt"
	"math/cmplx"

	"github.com/RyanBlaney/sonido-fourier/algorithms/spectral"
	"github.com/RyanBlaney/sonido-fourier/algorithms/synthesis"
	"github.com/RyanBlaney/sonido-fourier/logging"
	"github.com/RyanBlaney/sonido-fourier/visualizer/config"
)

// Composer owns the generator slots and every value derived from them.
// Setters recompute synchronously; accessors only read. A Composer is not
// safe for concurrent use.
type Composer struct {
	grid   synthesis.SampleGrid
	ranges config.ParamRanges
	sweep  spectral.SweepRange
	slots  []synthesis.WaveParams

	analysisFrequency float64

	waves      []synthesis.Waveform
	combined   synthesis.Waveform
	projection spectral.Projection
	spectrum   spectral.Spectrum

	logger logging.Logger
}

// ComposerOption configures a Composer
type ComposerOption func(*Composer)

// WithComposerLogger replaces the component logger
func WithComposerLogger(logger logging.Logger) ComposerOption {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// ParamOption updates one field of a generator slot
type ParamOption func(*synthesis.WaveParams)

// WithAmplitude sets the slot amplitude
func WithAmplitude(a float64) ParamOption {
	return func(p *synthesis.WaveParams) { p.Amplitude = a }
}

// WithFrequency sets the slot frequency
func WithFrequency(f float64) ParamOption {
	return func(p *synthesis.WaveParams) { p.Frequency = f }
}

// WithPhase sets the slot phase
func WithPhase(phase float64) ParamOption {
	return func(p *synthesis.WaveParams) { p.Phase = phase }
}

// NewComposer validates cfg and computes every derived value once
func NewComposer(cfg config.ComposerConfig, opts ...ComposerOption) (*Composer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid, err := synthesis.NewSampleGrid(cfg.Grid.Lower, cfg.Grid.Upper, cfg.Grid.Points)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	c := &Composer{
		grid:   grid,
		ranges: cfg.Ranges,
		sweep:  cfg.Sweep,
		slots:  make([]synthesis.WaveParams, len(cfg.Slots)),
		waves:  make([]synthesis.Waveform, len(cfg.Slots)),
		logger: logging.WithFields(logging.Fields{
			"component": "composer",
			"slots":     len(cfg.Slots),
		}),
	}
	for _, opt := range opts {
		opt(c)
	}

	for i, p := range cfg.Slots {
		c.slots[i] = c.clampParams(p)
		c.waves[i] = synthesis.Generate(c.slots[i], c.grid)
	}
	c.analysisFrequency = c.clamp("analysis_frequency", c.ranges.AnalysisFrequency, cfg.AnalysisFrequency)

	c.recombine()
	c.reproject()
	c.resweep()

	c.logger.Debug("Composer initialized", logging.Fields{
		"grid_points": grid.Len(),
		"sweep":       c.sweep,
	})

	return c, nil
}

// SetWaveParams updates the given slot and recomputes everything downstream.
// Options that are not passed leave the corresponding field as it was.
func (c *Composer) SetWaveParams(index int, opts ...ParamOption) error {
	if index < 0 || index >= len(c.slots) {
		c.logger.Warn("Rejected parameter update", logging.Fields{"slot": index})
		return fmt.Errorf("%w: %d (have %d)", ErrSlotOutOfRange, index, len(c.slots))
	}

	p := c.slots[index]
	for _, opt := range opts {
		opt(&p)
	}
	c.slots[index] = c.clampParams(p)
	c.waves[index] = synthesis.Generate(c.slots[index], c.grid)

	c.recombine()
	c.reproject()
	c.resweep()
	return nil
}

// SetAnalysisFrequency moves the winding frequency. Only the phasor trace
// and centroid depend on it; the swept spectrum is left as is.
func (c *Composer) SetAnalysisFrequency(f float64) {
	c.analysisFrequency = c.clamp("analysis_frequency", c.ranges.AnalysisFrequency, f)
	c.reproject()
}

// SetSweepRange replaces the sweep. An invalid range is rejected and the
// previous spectrum is kept.
func (c *Composer) SetSweepRange(r spectral.SweepRange) error {
	if err := r.Validate(); err != nil {
		c.logger.Warn("Rejected sweep range", logging.Fields{"sweep": r})
		return err
	}
	c.sweep = r
	c.resweep()
	return nil
}

func (c *Composer) recombine() {
	c.combined = synthesis.Combine(c.waves...)
}

func (c *Composer) reproject() {
	c.projection = spectral.Project(c.combined, c.analysisFrequency)
}

func (c *Composer) resweep() {
	spectrum, err := spectral.Sweep(c.combined, c.sweep)
	if err != nil {
		// c.sweep is validated before it is stored
		panic(fmt.Sprintf("visualizer: stored sweep became invalid: %v", err))
	}
	c.spectrum = spectrum

	c.logger.Debug("Spectrum recomputed", logging.Fields{
		"points":   len(spectrum),
		"centroid": cmplx.Abs(c.projection.Centroid),
	})
}

// clampParams wraps the phase into [0, 2π) and limits every field to its range
func (c *Composer) clampParams(p synthesis.WaveParams) synthesis.WaveParams {
	p = p.Normalize()
	p.Amplitude = c.clamp("amplitude", c.ranges.Amplitude, p.Amplitude)
	p.Frequency = c.clamp("frequency", c.ranges.Frequency, p.Frequency)
	p.Phase = c.clamp("phase", c.ranges.Phase, p.Phase)
	return p
}

func (c *Composer) clamp(name string, r config.Range, v float64) float64 {
	clamped, changed := r.Clamp(v)
	if changed {
		c.logger.Warn("Clamped parameter", logging.Fields{
			"parameter": name,
			"requested": v,
			"applied":   clamped,
		})
	}
	return clamped
}

// NumSlots returns the number of generator slots
func (c *Composer) NumSlots() int {
	return len(c.slots)
}

// Grid returns the composer's sample grid
func (c *Composer) Grid() synthesis.SampleGrid {
	return c.grid
}

// WaveParams returns the current parameters of a slot
func (c *Composer) WaveParams(index int) (synthesis.WaveParams, error) {
	if index < 0 || index >= len(c.slots) {
		return synthesis.WaveParams{}, fmt.Errorf("%w: %d (have %d)", ErrSlotOutOfRange, index, len(c.slots))
	}
	return c.slots[index], nil
}

// Waveform returns a copy of one slot's waveform
func (c *Composer) Waveform(index int) (synthesis.Waveform, error) {
	if index < 0 || index >= len(c.waves) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrSlotOutOfRange, index, len(c.waves))
	}
	return clone(c.waves[index]), nil
}

// AnalysisFrequency returns the current winding frequency
func (c *Composer) AnalysisFrequency() float64 {
	return c.analysisFrequency
}

// SweepRange returns the current sweep
func (c *Composer) SweepRange() spectral.SweepRange {
	return c.sweep
}

// CombinedWaveform returns a copy of the summed signal
func (c *Composer) CombinedWaveform() synthesis.Waveform {
	return clone(c.combined)
}

// PhasorTrace returns a copy of the wound signal
func (c *Composer) PhasorTrace() []complex128 {
	out := make([]complex128, len(c.projection.Trace))
	copy(out, c.projection.Trace)
	return out
}

// PhasorCentroid returns the mean of the phasor trace
func (c *Composer) PhasorCentroid() complex128 {
	return c.projection.Centroid
}

// Spectrum returns a copy of the swept magnitude spectrum
func (c *Composer) Spectrum() spectral.Spectrum {
	out := make(spectral.Spectrum, len(c.spectrum))
	copy(out, c.spectrum)
	return out
}

// SpectrumPeaks finds local maxima of the current spectrum at least
// minHeight tall and minSeparation apart, strongest first
func (c *Composer) SpectrumPeaks(minHeight, minSeparation float64) []spectral.Peak {
	return spectral.NewPeakDetector(minHeight, minSeparation, 0).
		Detect(c.spectrum.Frequencies(), c.spectrum.Magnitudes())
}

func clone[S ~[]E, E any](s S) S {
	out := make(S, len(s))
	copy(out, s)
	return out
}
