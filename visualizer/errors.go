package visualizer

import (
	"errors"

	"github.com/RyanBlaney/sonido-fourier/visualizer/config"
)

var (
	// ErrSlotOutOfRange is returned for a generator index the composer does not have
	ErrSlotOutOfRange = errors.New("generator slot out of range")

	// ErrBufferNotRunning is returned by Tick while the stream is idle
	ErrBufferNotRunning = errors.New("sliding window is not running")

	// ErrInvalidShift is returned when shift_by is not in [1, window length]
	ErrInvalidShift = config.ErrInvalidShift

	// ErrFrequencyOutOfRange is returned for an active frequency outside [1, max]
	ErrFrequencyOutOfRange = errors.New("active frequency out of range")
)
