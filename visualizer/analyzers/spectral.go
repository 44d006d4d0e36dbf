package analyzers

import (
	"fmt"

	"github.com/RyanBlaney/sonido-fourier/algorithms/spectral"
	"github.com/RyanBlaney/sonido-fourier/logging"
)

// SpectralAnalyzer runs the real FFT over fixed-length windows and labels
// the bins with a frequency axis computed once at construction
type SpectralAnalyzer struct {
	fft         *spectral.FFT
	windowSize  int
	spacing     float64
	frequencies []float64
	logger      logging.Logger
}

// SpectrumResult holds one window's half spectrum
type SpectrumResult struct {
	Complex        []complex128 `json:"-"`               // Raw coefficients (not serialized)
	Magnitude      []float64    `json:"magnitude"`       // |X[k]|
	Phase          []float64    `json:"phase"`           // arg X[k]
	Frequencies    []float64    `json:"frequencies"`     // Bin centre of every coefficient
	FreqBins       int          `json:"freq_bins"`       // floor(WindowSize/2)+1
	WindowSize     int          `json:"window_size"`     // Samples per window
	FreqResolution float64      `json:"freq_resolution"` // Distance between bins
}

// NewSpectralAnalyzer creates an analyzer for windows of windowSize samples
// taken spacing apart
func NewSpectralAnalyzer(fft *spectral.FFT, windowSize int, spacing float64) (*SpectralAnalyzer, error) {
	if fft == nil {
		fft = spectral.NewFFT()
	}
	if windowSize < 1 {
		return nil, fmt.Errorf("window size must be positive, got %d", windowSize)
	}
	if !(spacing > 0) {
		return nil, fmt.Errorf("sample spacing must be positive, got %v", spacing)
	}

	return &SpectralAnalyzer{
		fft:         fft,
		windowSize:  windowSize,
		spacing:     spacing,
		frequencies: spectral.RealFrequencies(windowSize, spacing),
		logger: logging.WithFields(logging.Fields{
			"component":   "spectral_analyzer",
			"window_size": windowSize,
			"backend":     fft.Backend(),
		}),
	}, nil
}

// ComputeFFT computes the half spectrum of one window
func (sa *SpectralAnalyzer) ComputeFFT(window []float64) (*SpectrumResult, error) {
	if len(window) != sa.windowSize {
		return nil, fmt.Errorf("window has %d samples, analyzer expects %d", len(window), sa.windowSize)
	}

	coeffs := sa.fft.ComputeReal(window)

	result := &SpectrumResult{
		Complex:        coeffs,
		Magnitude:      spectral.Magnitudes(coeffs),
		Phase:          spectral.Phases(coeffs),
		Frequencies:    sa.Frequencies(),
		FreqBins:       len(coeffs),
		WindowSize:     sa.windowSize,
		FreqResolution: sa.FreqResolution(),
	}

	sa.logger.Debug("FFT computation completed", logging.Fields{
		"freq_bins": result.FreqBins,
	})

	return result, nil
}

// Frequencies returns a copy of the bin axis
func (sa *SpectralAnalyzer) Frequencies() []float64 {
	out := make([]float64, len(sa.frequencies))
	copy(out, sa.frequencies)
	return out
}

// FreqResolution returns the distance between neighbouring bins
func (sa *SpectralAnalyzer) FreqResolution() float64 {
	return 1 / (float64(sa.windowSize) * sa.spacing)
}

// WindowSize returns the expected window length
func (sa *SpectralAnalyzer) WindowSize() int {
	return sa.windowSize
}
