package weekit

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/weekit/weekit/input"
)

// recorder is an Application that logs its callbacks into the fake
// surface's call log so ordering against swaps is visible.
type recorder struct {
	surf  *fakeSurface
	sized [2]int
	ticks int
	stop  func()
	after int
}

func (r *recorder) Size(w, h int) { r.sized = [2]int{w, h} }

func (r *recorder) Draw(c *Canvas, w, h int) {
	r.surf.record("app draw %dx%d", w, h)
	c.Rect(0, 0, 1, 1)
}

func (r *recorder) Tick() {
	r.ticks++
	r.surf.record("app tick")
	if r.stop != nil && r.ticks == r.after {
		r.stop()
	}
}

func TestStep(t *testing.T) {
	s, surf := newFakeSession(t, WithWindow(0, 0, 320, 240))
	app := &recorder{surf: surf}

	if err := Step(s, app, nil); err != nil {
		t.Fatal(err)
	}
	want := []string{"app draw 320x240", "draw 3", "swap", "app tick"}
	if !slices.Equal(surf.log, want) {
		t.Errorf("calls = %v, want %v", surf.log, want)
	}
}

func TestStepSwapError(t *testing.T) {
	s, surf := newFakeSession(t)
	surf.swapErr = errFake
	app := &recorder{surf: surf}

	if err := Step(s, app, nil); !errors.Is(err, errFake) {
		t.Errorf("Step = %v, want %v", err, errFake)
	}
	if app.ticks != 0 {
		t.Error("app ticked after a failed swap")
	}
}

func TestStepUnstartedPoller(t *testing.T) {
	s, surf := newFakeSession(t)
	app := &recorder{surf: surf}
	err := Step(s, app, input.NewPoller("/nonexistent"))
	if !errors.Is(err, input.ErrNotStarted) {
		t.Errorf("Step = %v, want ErrNotStarted", err)
	}
}

func TestRun(t *testing.T) {
	s, surf := newFakeSession(t, WithWindow(0, 0, 100, 50))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app := &recorder{surf: surf, stop: cancel, after: 3}

	start := time.Now()
	if err := Run(ctx, s, app, WithInterval(time.Millisecond)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Run did not stop promptly")
	}
	if app.sized != [2]int{100, 50} {
		t.Errorf("Size called with %v", app.sized)
	}
	if app.ticks != 3 || surf.swaps != 3 {
		t.Errorf("ticks = %d, swaps = %d, want 3 each", app.ticks, surf.swaps)
	}

	// Each tick follows its frame's swap.
	var order []string
	for _, c := range surf.log {
		if c == "swap" || c == "app tick" {
			order = append(order, c)
		}
	}
	want := []string{"swap", "app tick", "swap", "app tick", "swap", "app tick"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestRunCancelled(t *testing.T) {
	s, surf := newFakeSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, s, &recorder{surf: surf}); err != nil {
		t.Errorf("Run = %v, want nil", err)
	}
	if surf.swaps != 0 {
		t.Errorf("swaps = %d, want 0", surf.swaps)
	}
}

func TestRunStopsOnError(t *testing.T) {
	s, surf := newFakeSession(t)
	surf.swapErr = errFake
	err := Run(context.Background(), s, &recorder{surf: surf}, WithInterval(-time.Second))
	if !errors.Is(err, errFake) {
		t.Errorf("Run = %v, want %v", err, errFake)
	}
}

func TestWithInterval(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{0, 0},
		{time.Second, time.Second},
		{-time.Second, 0},
	}
	for _, tt := range tests {
		o := defaultRunOptions()
		WithInterval(tt.in)(&o)
		if o.interval != tt.want {
			t.Errorf("WithInterval(%v) = %v, want %v", tt.in, o.interval, tt.want)
		}
	}
	if defaultRunOptions().interval != DefaultInterval {
		t.Error("default interval")
	}
}
