// Package spectral evaluates DFT coefficients by direct projection, sweeps them
// across a frequency range, and wraps real FFT backends.
package spectral

import (
	"math"

	"gonum.org/v1/gonum/cmplxs"
)

// Projection is a signal wound around the unit circle at one analysis
// frequency. Centroid is the mean of Trace, which is the DFT coefficient at
// Frequency normalized by the signal length.
type Projection struct {
	Frequency float64
	Trace     []complex128
	Centroid  complex128
}

// Project multiplies signal[i] by exp(-2πi·f·i/M) for every sample and
// averages the result. f counts cycles over the whole signal.
func Project(signal []float64, f float64) Projection {
	trace := Wind(signal, f)
	return Projection{
		Frequency: f,
		Trace:     trace,
		Centroid:  mean(trace),
	}
}

// Wind returns the phasor trace signal[i]·exp(-2πi·f·i/M)
func Wind(signal []float64, f float64) []complex128 {
	m := float64(len(signal))
	trace := make([]complex128, len(signal))
	for i, s := range signal {
		sin, cos := math.Sincos(-2 * math.Pi * f * float64(i) / m)
		trace[i] = complex(s*cos, s*sin)
	}
	return trace
}

// Centroid returns only the mean of the phasor trace at f.
// It runs the same arithmetic as Project so the two agree exactly.
func Centroid(signal []float64, f float64) complex128 {
	return mean(Wind(signal, f))
}

func mean(trace []complex128) complex128 {
	if len(trace) == 0 {
		return 0
	}
	return cmplxs.Sum(trace) / complex(float64(len(trace)), 0)
}
