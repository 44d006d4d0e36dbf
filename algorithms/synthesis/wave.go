// Package synthesis builds sampled sine waveforms and sums them.
package synthesis

import (
	"math"
)

// WaveParams describes a single sine component
type WaveParams struct {
	Amplitude float64 `json:"amplitude"`
	Frequency float64 `json:"frequency"`
	Phase     float64 `json:"phase"`
}

// Normalize returns a copy with the phase wrapped into [0, 2π)
func (p WaveParams) Normalize() WaveParams {
	p.Phase = WrapPhase(p.Phase)
	return p
}

// WrapPhase wraps an angle into [0, 2π)
func WrapPhase(phase float64) float64 {
	wrapped := math.Mod(phase, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	// Mod of a value just below a multiple of 2π can round up to 2π itself
	if wrapped >= 2*math.Pi {
		wrapped = 0
	}
	return wrapped
}

// Waveform is a sequence of real samples aligned index-for-index with the
// SampleGrid it was evaluated on.
type Waveform []float64

// Generate evaluates amplitude * sin(frequency*x + phase) at every grid point
func Generate(p WaveParams, grid SampleGrid) Waveform {
	out := make(Waveform, grid.Len())
	for i, x := range grid.points {
		out[i] = p.Amplitude * math.Sin(p.Frequency*x+p.Phase)
	}
	return out
}
