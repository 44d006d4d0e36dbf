package visualizer

import (
	"os"
	"testing"

	"github.com/RyanBlaney/sonido-fourier/logging"
)

func TestMain(m *testing.M) {
	logging.SetGlobalLogger(&logging.NoOpLogger{})
	os.Exit(m.Run())
}
