package visualizer

import (
	"context"
	"errors"
	"time"

	"github.com/RyanBlaney/sonido-fourier/logging"
)

// DefaultTickInterval is used when a Runner is given a non-positive interval
const DefaultTickInterval = 50 * time.Millisecond

// FrameHandler receives every frame produced by a Runner
type FrameHandler func(Frame)

// Runner drives a Stream from a ticker. It is the external scheduler the
// stream expects: one Tick per interval, then the frame is handed to the
// render callback on the same goroutine.
type Runner struct {
	stream   *Stream
	interval time.Duration
	logger   logging.Logger
}

// NewRunner creates a runner ticking stream every interval
func NewRunner(stream *Stream, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Runner{
		stream:   stream,
		interval: interval,
		logger: logging.WithFields(logging.Fields{
			"component": "stream_runner",
			"interval":  interval.String(),
		}),
	}
}

// Run ticks until ctx is done or the stream stops. Stopping is observed at
// the next tick, so a Stop issued from onFrame ends the loop one interval
// later without producing another frame. Run returns nil when the stream
// stopped and ctx.Err() when the context ended it.
//
// The stream must only be touched from onFrame while Run is active.
func (r *Runner) Run(ctx context.Context, onFrame FrameHandler) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Runner cancelled", logging.Fields{"ticks": r.stream.Ticks()})
			return ctx.Err()
		case <-ticker.C:
		}

		if err := r.stream.Tick(); err != nil {
			if errors.Is(err, ErrBufferNotRunning) {
				r.logger.Debug("Stream stopped, runner exiting", logging.Fields{"ticks": r.stream.Ticks()})
				return nil
			}
			return err
		}

		if onFrame != nil {
			onFrame(r.stream.Frame())
		}
	}
}
