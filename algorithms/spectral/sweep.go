package spectral

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidSweepRange is returned for an empty or reversed sweep
var ErrInvalidSweepRange = errors.New("invalid sweep range")

// SweepRange is an inclusive, linearly spaced set of analysis frequencies
type SweepRange struct {
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Points int     `json:"points"`
}

// Validate reports ErrInvalidSweepRange when lower >= upper or points <= 0
func (r SweepRange) Validate() error {
	if !(r.Lower < r.Upper) {
		return fmt.Errorf("%w: lower %v must be below upper %v", ErrInvalidSweepRange, r.Lower, r.Upper)
	}
	if r.Points <= 0 {
		return fmt.Errorf("%w: %d points", ErrInvalidSweepRange, r.Points)
	}
	return nil
}

// Frequencies lays out the sweep points, both bounds included.
// A single-point sweep evaluates only Lower.
func (r SweepRange) Frequencies() []float64 {
	if r.Points <= 0 {
		return nil
	}
	if r.Points == 1 {
		return []float64{r.Lower}
	}
	return floats.Span(make([]float64, r.Points), r.Lower, r.Upper)
}

// SpectrumPoint is one sweep sample
type SpectrumPoint struct {
	Frequency float64 `json:"frequency"`
	Magnitude float64 `json:"magnitude"`
}

// Spectrum is an ordered sequence of sweep samples
type Spectrum []SpectrumPoint

// Frequencies returns the frequency column
func (s Spectrum) Frequencies() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Frequency
	}
	return out
}

// Magnitudes returns the magnitude column
func (s Spectrum) Magnitudes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Magnitude
	}
	return out
}

// Sweep evaluates |Centroid(signal, f)| at every frequency of r.
// Cost is O(len(signal) · r.Points).
func Sweep(signal []float64, r SweepRange) (Spectrum, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	freqs := r.Frequencies()
	spectrum := make(Spectrum, len(freqs))
	for i, f := range freqs {
		spectrum[i] = SpectrumPoint{
			Frequency: f,
			Magnitude: cmplx.Abs(Centroid(signal, f)),
		}
	}
	return spectrum, nil
}
