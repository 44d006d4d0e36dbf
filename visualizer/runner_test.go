package visualizer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunnerStopsAfterStreamStop(t *testing.T) {
	s := newStream(t, nil)
	s.Start()

	var frames []Frame
	r := NewRunner(s, time.Millisecond)
	err := r.Run(context.Background(), func(f Frame) {
		frames = append(frames, f)
		if len(frames) == 3 {
			s.Stop()
		}
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	for i, f := range frames {
		if f.Tick != i+1 {
			t.Fatalf("frame %d has tick %d", i, f.Tick)
		}
		if len(f.Samples) != 1024 || len(f.Spectrum) != 513 || len(f.Frequencies) != 513 {
			t.Fatalf("frame %d has unexpected sizes", i)
		}
	}
}

func TestRunnerContextCancel(t *testing.T) {
	s := newStream(t, nil)
	s.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	count := 0
	err := NewRunner(s, time.Millisecond).Run(ctx, func(Frame) {
		count++
		if count == 2 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if !s.Running() {
		t.Fatal("cancelling the runner should not stop the stream")
	}
}

func TestRunnerIdleStreamReturnsImmediately(t *testing.T) {
	s := newStream(t, nil)
	called := false
	if err := NewRunner(s, 0).Run(context.Background(), func(Frame) { called = true }); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if called {
		t.Fatal("idle stream produced a frame")
	}
}
