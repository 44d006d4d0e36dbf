package visualizer

import (
	"fmt"

	"github.com/RyanBlaney/sonido-fourier/algorithms/common"
	"github.com/RyanBlaney/sonido-fourier/algorithms/synthesis"
)

// WindowState is the lifecycle state of a SlidingWindow
type WindowState int

const (
	Idle WindowState = iota
	Running
)

func (s WindowState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// SampleSource produces one sample per domain position
type SampleSource func(positions []float64) []float64

// SlidingWindow is a fixed-length sample buffer paired with a domain buffer
// of the same length. Every Advance rotates both left by the shift and fills
// the vacated tail with fresh samples, so the buffer always holds the most
// recent Len() samples. The display axis is a copy of the initial domain and
// never moves.
//
// The shift does not have to divide the length: rotation is taken modulo
// Len() and the domain simply keeps wrapping.
type SlidingWindow struct {
	grid    synthesis.SampleGrid
	shiftBy int

	data   []float64
	domain []float64
	axis   []float64

	state WindowState
	ticks int
}

// NewSlidingWindow creates an idle window over grid that advances shiftBy
// samples per step
func NewSlidingWindow(grid synthesis.SampleGrid, shiftBy int) (*SlidingWindow, error) {
	if grid.Len() == 0 {
		return nil, fmt.Errorf("%w: empty grid", synthesis.ErrInvalidGrid)
	}
	if shiftBy < 1 || shiftBy > grid.Len() {
		return nil, fmt.Errorf("%w: shift_by %d outside [1, %d]", ErrInvalidShift, shiftBy, grid.Len())
	}

	w := &SlidingWindow{
		grid:    grid,
		shiftBy: shiftBy,
	}
	w.reset()
	return w, nil
}

func (w *SlidingWindow) reset() {
	w.data = make([]float64, w.grid.Len())
	w.domain = w.grid.Points()
	w.axis = w.grid.Points()
	w.ticks = 0
}

// Start zeroes the buffer, restores the domain and moves to Running.
// It reports false if the window was already running, in which case
// nothing changes.
func (w *SlidingWindow) Start() bool {
	if w.state == Running {
		return false
	}
	w.reset()
	w.state = Running
	return true
}

// Stop moves to Idle, keeping the buffer contents readable. It reports
// false if the window was already idle.
func (w *SlidingWindow) Stop() bool {
	if w.state == Idle {
		return false
	}
	w.state = Idle
	return true
}

// Advance performs one step: rotate data and domain left by the shift, then
// write source(new trailing positions) into the trailing slots. It returns
// ErrBufferNotRunning without touching anything while idle.
func (w *SlidingWindow) Advance(source SampleSource) error {
	if w.state != Running {
		return ErrBufferNotRunning
	}

	common.RotateLeft(w.data, w.shiftBy)
	common.RotateLeft(w.domain, w.shiftBy)

	fresh := source(common.Tail(w.domain, w.shiftBy))
	if len(fresh) != w.shiftBy {
		panic(fmt.Sprintf("visualizer: sample source returned %d samples, want %d", len(fresh), w.shiftBy))
	}
	copy(common.Tail(w.data, w.shiftBy), fresh)

	w.ticks++
	return nil
}

// State returns the lifecycle state
func (w *SlidingWindow) State() WindowState { return w.state }

// Len returns the window length
func (w *SlidingWindow) Len() int { return len(w.data) }

// ShiftBy returns the number of samples replaced per step
func (w *SlidingWindow) ShiftBy() int { return w.shiftBy }

// Ticks returns the number of steps since the last Start
func (w *SlidingWindow) Ticks() int { return w.ticks }

// Data returns a copy of the buffer, oldest sample first
func (w *SlidingWindow) Data() []float64 { return clone(w.data) }

// Domain returns a copy of the rotated domain positions of the buffer
func (w *SlidingWindow) Domain() []float64 { return clone(w.domain) }

// Axis returns a copy of the fixed display axis
func (w *SlidingWindow) Axis() []float64 { return clone(w.axis) }

// Grid returns the grid the window was built on
func (w *SlidingWindow) Grid() synthesis.SampleGrid { return w.grid }
