package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/RyanBlaney/sonido-fourier/algorithms/spectral"
	"github.com/RyanBlaney/sonido-fourier/algorithms/synthesis"
)

var (
	// ErrInvalidConfig wraps every validation failure in this package
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidShift is also wrapped when shift_by is not in [1, window length]
	ErrInvalidShift = errors.New("invalid shift size")
)

// Range is a closed interval used to clamp incoming parameter values
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Clamp limits v to [Min, Max] and reports whether it had to
func (r Range) Clamp(v float64) (float64, bool) {
	switch {
	case v < r.Min:
		return r.Min, true
	case v > r.Max:
		return r.Max, true
	default:
		return v, false
	}
}

// ParamRanges bounds every value the composer accepts from its caller
type ParamRanges struct {
	Amplitude         Range `json:"amplitude"`
	Frequency         Range `json:"frequency"`
	Phase             Range `json:"phase"`
	AnalysisFrequency Range `json:"analysis_frequency"`
}

// GridConfig describes a half-open sample grid
type GridConfig struct {
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Points int     `json:"points"`
}

// ComposerConfig configures composer mode
type ComposerConfig struct {
	Grid              GridConfig             `json:"grid"`
	Slots             []synthesis.WaveParams `json:"slots"`
	AnalysisFrequency float64                `json:"analysis_frequency"`
	Sweep             spectral.SweepRange    `json:"sweep"`
	Ranges            ParamRanges            `json:"ranges"`
}

// StreamConfig configures streaming mode
type StreamConfig struct {
	WindowLength int              `json:"window_length"`
	Domain       GridConfig       `json:"domain"` // Points is ignored; WindowLength wins
	ShiftBy      int              `json:"shift_by"`
	MaxFrequency int              `json:"max_frequency"`
	Active       []int            `json:"active"`
	TickInterval time.Duration    `json:"tick_interval"`
	FFTBackend   spectral.Backend `json:"fft_backend"`
}

// DefaultParamRanges returns the slider ranges of the composer UI
func DefaultParamRanges() ParamRanges {
	return ParamRanges{
		Amplitude:         Range{Min: 0.0001, Max: 5},
		Frequency:         Range{Min: 0, Max: 10},
		Phase:             Range{Min: 0, Max: 2 * math.Pi},
		AnalysisFrequency: Range{Min: 0, Max: 10},
	}
}

// DefaultComposerConfig returns four unit sines over one 2π window with a
// 500 point sweep over [0, 12]
func DefaultComposerConfig() ComposerConfig {
	slots := make([]synthesis.WaveParams, 4)
	for i := range slots {
		slots[i] = synthesis.WaveParams{Amplitude: 1, Frequency: 1, Phase: 0}
	}

	return ComposerConfig{
		Grid:              GridConfig{Lower: 0, Upper: 2 * math.Pi, Points: 512},
		Slots:             slots,
		AnalysisFrequency: 1,
		Sweep:             spectral.SweepRange{Lower: 0, Upper: 12, Points: 500},
		Ranges:            DefaultParamRanges(),
	}
}

// DefaultStreamConfig returns a 1024 sample window over [0, 20π) advancing
// 15 samples every 50ms with only 1 Hz selected
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		WindowLength: 1024,
		Domain:       GridConfig{Lower: 0, Upper: 20 * math.Pi},
		ShiftBy:      15,
		MaxFrequency: 20,
		Active:       []int{1},
		TickInterval: 50 * time.Millisecond,
		FFTBackend:   spectral.BackendGoDSP,
	}
}

// Validate checks that a composer can be built from c
func (c ComposerConfig) Validate() error {
	if err := c.Grid.validate(c.Grid.Points); err != nil {
		return err
	}
	if len(c.Slots) == 0 {
		return fmt.Errorf("%w: composer needs at least one slot", ErrInvalidConfig)
	}
	if err := c.Sweep.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return c.Ranges.Validate()
}

// Validate checks every range is non-empty
func (r ParamRanges) Validate() error {
	named := map[string]Range{
		"amplitude":          r.Amplitude,
		"frequency":          r.Frequency,
		"phase":              r.Phase,
		"analysis_frequency": r.AnalysisFrequency,
	}
	for name, rg := range named {
		if !(rg.Min <= rg.Max) {
			return fmt.Errorf("%w: %s range [%v, %v] is empty", ErrInvalidConfig, name, rg.Min, rg.Max)
		}
	}
	return nil
}

// Validate checks the window, shift and frequency limits. The shift must
// lie in [1, WindowLength]; it does not have to divide the window.
func (c StreamConfig) Validate() error {
	if err := c.Domain.validate(c.WindowLength); err != nil {
		return err
	}
	if c.ShiftBy < 1 || c.ShiftBy > c.WindowLength {
		return fmt.Errorf("%w: %w: shift_by %d outside [1, %d]", ErrInvalidConfig, ErrInvalidShift, c.ShiftBy, c.WindowLength)
	}
	if c.MaxFrequency < 1 {
		return fmt.Errorf("%w: max_frequency %d must be positive", ErrInvalidConfig, c.MaxFrequency)
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("%w: negative tick interval %v", ErrInvalidConfig, c.TickInterval)
	}
	return nil
}

func (g GridConfig) validate(points int) error {
	if points < 1 {
		return fmt.Errorf("%w: grid needs at least one point, got %d", ErrInvalidConfig, points)
	}
	if !(g.Upper > g.Lower) {
		return fmt.Errorf("%w: grid range [%v, %v) is empty", ErrInvalidConfig, g.Lower, g.Upper)
	}
	return nil
}
