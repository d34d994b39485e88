package weekit

import (
	"image"
	"time"

	"github.com/weekit/weekit/input"
)

// Option configures a Session during Init.
//
// Example:
//
//	// Full screen on the best available platform
//	s, err := weekit.Init()
//
//	// A 400x300 window at (100, 50) on the software platform
//	s, err := weekit.Init(
//	    weekit.WithPlatform("software"),
//	    weekit.WithWindow(100, 50, 400, 300),
//	)
type Option func(*initOptions)

type initOptions struct {
	platform   string
	x, y, w, h int
	screenSize image.Point
}

func defaultInitOptions() initOptions {
	return initOptions{}
}

// WithPlatform selects a registered platform by name instead of the
// highest-priority available one.
func WithPlatform(name string) Option {
	return func(o *initOptions) {
		o.platform = name
	}
}

// WithWindow requests a window at (x, y) of w by h pixels. A width or
// height of zero or less, or one larger than the screen, becomes the
// screen size.
func WithWindow(x, y, w, h int) Option {
	return func(o *initOptions) {
		o.x, o.y, o.w, o.h = x, y, w, h
	}
}

// WithScreenSize sets the screen size of platforms that have no physical
// display. Hardware platforms ignore it.
func WithScreenSize(w, h int) Option {
	return func(o *initOptions) {
		o.screenSize = image.Pt(w, h)
	}
}

// DefaultInterval is the loop sleep between frames.
const DefaultInterval = 25 * time.Millisecond

// RunOption configures Run.
type RunOption func(*runOptions)

type runOptions struct {
	poller   *input.Poller
	interval time.Duration
	handler  input.Handler
}

func defaultRunOptions() runOptions {
	return runOptions{interval: DefaultInterval}
}

// WithPoller drains p once per iteration after the frame is presented.
func WithPoller(p *input.Poller) RunOption {
	return func(o *runOptions) {
		o.poller = p
	}
}

// WithInterval sets the sleep between iterations. Negative values are
// treated as zero.
func WithInterval(d time.Duration) RunOption {
	return func(o *runOptions) {
		if d < 0 {
			d = 0
		}
		o.interval = d
	}
}

// WithEventHandler receives polled input events. It takes precedence over
// an Application that implements EventHandler.
func WithEventHandler(h input.Handler) RunOption {
	return func(o *runOptions) {
		o.handler = h
	}
}
