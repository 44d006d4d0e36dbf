package spectral

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrUnknownBackend is returned for an FFT backend name that is not supported
var ErrUnknownBackend = errors.New("unknown FFT backend")

// Backend selects the FFT implementation
type Backend string

const (
	// BackendGoDSP uses mjibson/go-dsp, which handles any input length
	BackendGoDSP Backend = "go-dsp"
	// BackendGonum uses gonum's real FFT plan, cached per input length
	BackendGonum Backend = "gonum"
)

// FFT provides Fast Fourier Transform functionality
type FFT struct {
	backend Backend
	plan    *fourier.FFT
}

// NewFFT creates a new FFT calculator on the go-dsp backend
func NewFFT() *FFT {
	return &FFT{backend: BackendGoDSP}
}

// NewFFTWithBackend creates an FFT calculator on the named backend.
// An empty name selects go-dsp.
func NewFFTWithBackend(backend Backend) (*FFT, error) {
	switch backend {
	case "":
		return NewFFT(), nil
	case BackendGoDSP, BackendGonum:
		return &FFT{backend: backend}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Backend reports which implementation this calculator uses
func (f *FFT) Backend() Backend {
	return f.backend
}

// Compute returns the full, unnormalized N-point spectrum of a real signal
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(x)
}

// ComputeReal returns the non-negative frequency half of the spectrum:
// floor(N/2)+1 unnormalized coefficients, DC first.
func (f *FFT) ComputeReal(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	if f.backend == BackendGonum {
		if f.plan == nil || f.plan.Len() != len(x) {
			f.plan = fourier.NewFFT(len(x))
		}
		return f.plan.Coefficients(nil, x)
	}

	full := fft.FFTReal(x)
	half := make([]complex128, len(x)/2+1)
	copy(half, full)
	return half
}

// RealFrequencies returns the frequency of every ComputeReal bin for n
// samples taken spacing apart: k / (n·spacing) for k in [0, n/2].
func RealFrequencies(n int, spacing float64) []float64 {
	if n <= 0 || spacing <= 0 {
		return []float64{}
	}
	freqs := make([]float64, n/2+1)
	for k := range freqs {
		freqs[k] = float64(k) / (float64(n) * spacing)
	}
	return freqs
}

// Magnitudes returns |c| for every coefficient
func Magnitudes(coeffs []complex128) []float64 {
	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = cmplx.Abs(c)
	}
	return out
}

// Phases returns arg(c) for every coefficient
func Phases(coeffs []complex128) []float64 {
	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = cmplx.Phase(c)
	}
	return out
}
