// Command fourierdemo drives the Fourier visualizer core without a GUI and
// prints what a front end would draw.
//
// Usage:
//
//	fourierdemo [flags]
//
// Examples:
//
//	fourierdemo -mode composer -tone 1:1:0 -tone 1:2:0 -tone 1:3:0
//	fourierdemo -mode stream -active 1,3,7 -ticks 80
//	fourierdemo -log-format json -log-level debug
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/cmplx"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/RyanBlaney/sonido-fourier/algorithms/spectral"
	"github.com/RyanBlaney/sonido-fourier/algorithms/synthesis"
	"github.com/RyanBlaney/sonido-fourier/logging"
	"github.com/RyanBlaney/sonido-fourier/visualizer"
	"github.com/RyanBlaney/sonido-fourier/visualizer/config"
)

// toneList collects repeated -tone amplitude:frequency:phase flags
type toneList []synthesis.WaveParams

func (t *toneList) String() string {
	parts := make([]string, len(*t))
	for i, p := range *t {
		parts[i] = fmt.Sprintf("%g:%g:%g", p.Amplitude, p.Frequency, p.Phase)
	}
	return strings.Join(parts, ",")
}

func (t *toneList) Set(v string) error {
	fields := strings.Split(v, ":")
	if len(fields) != 3 {
		return fmt.Errorf("tone %q: want amplitude:frequency:phase", v)
	}
	var vals [3]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return fmt.Errorf("tone %q: %w", v, err)
		}
		vals[i] = x
	}
	*t = append(*t, synthesis.WaveParams{Amplitude: vals[0], Frequency: vals[1], Phase: vals[2]})
	return nil
}

type options struct {
	mode        string
	tones       toneList
	analysis    float64
	sweepLower  float64
	sweepUpper  float64
	sweepPoints int
	minPeak     float64
	active      string
	ticks       int
	interval    time.Duration
	backend     string
	logFormat   string
	logLevel    string
}

func main() {
	var opts options
	flag.StringVar(&opts.mode, "mode", "both", "composer, stream or both")
	flag.Var(&opts.tones, "tone", "generator slot as amplitude:frequency:phase (repeatable, default four 1:1:0 slots)")
	flag.Float64Var(&opts.analysis, "analysis", 1, "analysis frequency for the phasor centroid")
	flag.Float64Var(&opts.sweepLower, "sweep-lower", 0, "lowest swept frequency")
	flag.Float64Var(&opts.sweepUpper, "sweep-upper", 12, "highest swept frequency")
	flag.IntVar(&opts.sweepPoints, "sweep-points", 500, "number of swept frequencies")
	flag.Float64Var(&opts.minPeak, "min-peak", 0.1, "smallest spectrum peak to report")
	flag.StringVar(&opts.active, "active", "1", "comma separated stream frequencies in [1, 20]")
	flag.IntVar(&opts.ticks, "ticks", 70, "stream ticks to run before stopping")
	flag.DurationVar(&opts.interval, "interval", config.DefaultStreamConfig().TickInterval, "delay between stream ticks")
	flag.StringVar(&opts.backend, "backend", string(spectral.BackendGoDSP), "FFT backend: go-dsp or gonum")
	flag.StringVar(&opts.logFormat, "log-format", "text", "text or json")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")
	flag.Parse()

	if err := setupLogging(opts.logFormat, opts.logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Stdout, opts)
	stop()
	if err != nil {
		logging.Error(err, "fourierdemo failed")
		os.Exit(1)
	}
}

func setupLogging(format, level string) error {
	var logger logging.Logger
	switch format {
	case "text":
		logger = logging.NewDefaultLogger()
	case "json":
		logger = logging.NewZapLogger()
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	lvl, ok := logging.ParseLevel(level)
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}
	logger.SetLevel(lvl)
	logging.SetGlobalLogger(logger)
	return nil
}

func run(ctx context.Context, out io.Writer, opts options) error {
	switch opts.mode {
	case "composer":
		return runComposer(out, opts)
	case "stream":
		return runStream(ctx, out, opts)
	case "both":
		if err := runComposer(out, opts); err != nil {
			return err
		}
		fmt.Fprintln(out)
		return runStream(ctx, out, opts)
	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
}

func runComposer(out io.Writer, opts options) error {
	cfg := config.DefaultComposerConfig()
	if len(opts.tones) > 0 {
		cfg.Slots = opts.tones
	}
	cfg.AnalysisFrequency = opts.analysis
	cfg.Sweep = spectral.SweepRange{Lower: opts.sweepLower, Upper: opts.sweepUpper, Points: opts.sweepPoints}

	c, err := visualizer.NewComposer(cfg)
	if err != nil {
		return err
	}

	centroid := c.PhasorCentroid()
	fmt.Fprintf(out, "Composer: %d slots, %d samples, analysis %.3f Hz\n", c.NumSlots(), c.Grid().Len(), c.AnalysisFrequency())
	fmt.Fprintf(out, "Centroid: %.4f%+.4fi (|c| = %.4f)\n\n", real(centroid), imag(centroid), cmplx.Abs(centroid))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Peak\tFrequency\tMagnitude\n")
	fmt.Fprintf(tw, "----\t---------\t---------\n")
	for i, p := range c.SpectrumPeaks(opts.minPeak, 0.5) {
		fmt.Fprintf(tw, "%d\t%.3f\t%.4f\n", i+1, p.Frequency, p.Magnitude)
	}
	return tw.Flush()
}

func runStream(ctx context.Context, out io.Writer, opts options) error {
	active, err := parseActive(opts.active)
	if err != nil {
		return err
	}

	cfg := config.DefaultStreamConfig()
	cfg.Active = active
	cfg.FFTBackend = spectral.Backend(opts.backend)
	cfg.TickInterval = opts.interval

	s, err := visualizer.NewStream(cfg)
	if err != nil {
		return err
	}

	detector := spectral.NewPeakDetector(1, 0.5, len(active))
	var last visualizer.Frame

	s.Start()
	err = visualizer.NewRunner(s, s.TickInterval()).Run(ctx, func(f visualizer.Frame) {
		last = f
		if f.Tick >= opts.ticks {
			s.Stop()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Fprintf(out, "Stream: %d ticks, window %d, shift %d, backend %s, active %v\n",
		last.Tick, cfg.WindowLength, cfg.ShiftBy, cfg.FFTBackend, s.ActiveFrequencies())

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Peak\tFrequency [Hz]\t|FFT|\n")
	fmt.Fprintf(tw, "----\t--------------\t-----\n")
	for i, p := range detector.Detect(last.Frequencies, last.Magnitudes) {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\n", i+1, p.Frequency, p.Magnitude)
	}
	return tw.Flush()
}

func parseActive(v string) ([]int, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	var freqs []int
	for _, f := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("active frequency %q: %w", f, err)
		}
		freqs = append(freqs, n)
	}
	return freqs, nil
}
