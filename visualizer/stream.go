package visualizer

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/RyanBlaney/sonido-fourier/algorithms/common"
	"github.com/RyanBlaney/sonido-fourier/algorithms/spectral"
	"github.com/RyanBlaney/sonido-fourier/algorithms/synthesis"
	"github.com/RyanBlaney/sonido-fourier/logging"
	"github.com/RyanBlaney/sonido-fourier/visualizer/analyzers"
	"github.com/RyanBlaney/sonido-fourier/visualizer/config"
)

// Stream scrolls the sum of the active integer-frequency sines through a
// SlidingWindow and transforms the window after every step.
//
// Frequencies are in Hz against a domain measured in radians: sin(f·x) over
// [0, 20π) is ten seconds of an f Hz tone. The bin axis therefore uses a
// sample spacing of Δx/2π.
//
// A Stream is driven by discrete Tick calls and never sleeps or spawns
// goroutines; see Runner for a timer-driven loop. It is not safe for
// concurrent use.
type Stream struct {
	cfg      config.StreamConfig
	window   *SlidingWindow
	analyzer *analyzers.SpectralAnalyzer
	active   []int
	spectrum *analyzers.SpectrumResult
	logger   logging.Logger
}

// StreamOption configures a Stream
type StreamOption func(*Stream)

// WithStreamLogger replaces the component logger
func WithStreamLogger(logger logging.Logger) StreamOption {
	return func(s *Stream) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStream validates cfg and builds an idle stream holding a zero window
func NewStream(cfg config.StreamConfig, opts ...StreamOption) (*Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid, err := synthesis.NewSampleGrid(cfg.Domain.Lower, cfg.Domain.Upper, cfg.WindowLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	window, err := NewSlidingWindow(grid, cfg.ShiftBy)
	if err != nil {
		return nil, err
	}

	fft, err := spectral.NewFFTWithBackend(cfg.FFTBackend)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	analyzer, err := analyzers.NewSpectralAnalyzer(fft, cfg.WindowLength, grid.Spacing()/(2*math.Pi))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	s := &Stream{
		cfg:      cfg,
		window:   window,
		analyzer: analyzer,
		active:   []int{0},
		logger: logging.WithFields(logging.Fields{
			"component":     "stream",
			"window_length": cfg.WindowLength,
			"shift_by":      cfg.ShiftBy,
		}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.SetActiveFrequencies(cfg.Active); err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	if err := s.transform(); err != nil {
		return nil, err
	}

	if cfg.WindowLength%cfg.ShiftBy != 0 {
		s.logger.Debug("Shift does not divide the window, domain phase will drift", logging.Fields{
			"drift_per_cycle": cfg.WindowLength % cfg.ShiftBy,
		})
	}

	return s, nil
}

// Start zeroes the window and begins accepting ticks. Starting a running
// stream does nothing.
func (s *Stream) Start() {
	if !s.window.Start() {
		return
	}
	if err := s.transform(); err != nil {
		s.logger.Error(err, "Failed to transform initial window")
	}
	s.logger.Info("Stream started", logging.Fields{"active": s.active})
}

// Stop stops accepting ticks. The last window and spectrum stay readable.
func (s *Stream) Stop() {
	if !s.window.Stop() {
		return
	}
	s.logger.Info("Stream stopped", logging.Fields{"ticks": s.window.Ticks()})
}

// Running reports whether Tick will advance the window
func (s *Stream) Running() bool {
	return s.window.State() == Running
}

// State returns the window's lifecycle state
func (s *Stream) State() WindowState {
	return s.window.State()
}

// Tick advances the window by one chunk and recomputes the spectrum.
// While idle it returns ErrBufferNotRunning and changes nothing.
func (s *Stream) Tick() error {
	if err := s.window.Advance(s.generate); err != nil {
		return err
	}
	return s.transform()
}

// generate evaluates the active tones at the given domain positions
func (s *Stream) generate(positions []float64) []float64 {
	freqs := make([]float64, len(s.active))
	for i, f := range s.active {
		freqs[i] = float64(f)
	}
	return synthesis.SumOfSines(freqs, positions)
}

func (s *Stream) transform() error {
	result, err := s.analyzer.ComputeFFT(s.window.data)
	if err != nil {
		return fmt.Errorf("transform window: %w", err)
	}
	s.spectrum = result

	s.logger.Debug("Window transformed", logging.Fields{
		"tick": s.window.Ticks(),
		"rms":  common.RMS(s.window.data),
	})
	return nil
}

// SetActiveFrequencies replaces the set of tones. Each value must lie in
// [1, MaxFrequency]; on error the previous set is kept. 0 is always part of
// the set and contributes silence, so an empty selection is valid.
func (s *Stream) SetActiveFrequencies(freqs []int) error {
	for _, f := range freqs {
		if f < 1 || f > s.cfg.MaxFrequency {
			s.logger.Warn("Rejected active frequency", logging.Fields{"frequency": f})
			return fmt.Errorf("%w: %d not in [1, %d]", ErrFrequencyOutOfRange, f, s.cfg.MaxFrequency)
		}
	}

	active := append([]int{0}, freqs...)
	slices.Sort(active)
	s.active = slices.Compact(active)

	s.logger.Debug("Active frequencies updated", logging.Fields{"active": s.active})
	return nil
}

// ActiveFrequencies returns the sorted active set, 0 included
func (s *Stream) ActiveFrequencies() []int {
	return slices.Clone(s.active)
}

// Window returns the buffer and the fixed display axis to draw it against
func (s *Stream) Window() (samples, axis []float64) {
	return s.window.Data(), s.window.Axis()
}

// Domain returns the rotated domain positions of the buffer samples
func (s *Stream) Domain() []float64 {
	return s.window.Domain()
}

// FFT returns the floor(N/2)+1 complex coefficients of the current window
func (s *Stream) FFT() []complex128 {
	return slices.Clone(s.spectrum.Complex)
}

// Magnitudes returns |FFT| of the current window
func (s *Stream) Magnitudes() []float64 {
	return slices.Clone(s.spectrum.Magnitude)
}

// Frequencies returns the bin axis, fixed for the life of the stream
func (s *Stream) Frequencies() []float64 {
	return s.analyzer.Frequencies()
}

// DominantFrequency returns the bin frequency with the largest magnitude,
// ignoring DC. It reports false while the window is silent.
func (s *Stream) DominantFrequency() (float64, bool) {
	mags := s.spectrum.Magnitude
	if len(mags) < 2 {
		return 0, false
	}
	k := common.ArgMax(mags[1:]) + 1
	if mags[k] <= 1e-9 {
		return 0, false
	}
	return s.spectrum.Frequencies[k], true
}

// TickInterval returns the configured delay between ticks for a Runner
func (s *Stream) TickInterval() time.Duration {
	return s.cfg.TickInterval
}

// Ticks returns the number of ticks since the last Start
func (s *Stream) Ticks() int {
	return s.window.Ticks()
}

// Frame is a snapshot of one streaming step
type Frame struct {
	Tick        int
	Samples     []float64
	Axis        []float64
	Spectrum    []complex128
	Magnitudes  []float64
	Frequencies []float64
}

// Frame captures the current window and spectrum
func (s *Stream) Frame() Frame {
	samples, axis := s.Window()
	return Frame{
		Tick:        s.window.Ticks(),
		Samples:     samples,
		Axis:        axis,
		Spectrum:    s.FFT(),
		Magnitudes:  s.Magnitudes(),
		Frequencies: s.Frequencies(),
	}
}
