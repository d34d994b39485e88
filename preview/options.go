package preview

import (
	"errors"
	"time"
)

// ErrNotSoftware is returned by Run for sessions on another platform.
var ErrNotSoftware = errors.New("preview: session is not on the software platform")

// Option configures Run.
type Option func(*options)

type options struct {
	title    string
	scale    int
	interval time.Duration
}

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithScale sets the window size as a multiple of the session window.
func WithScale(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.scale = n
		}
	}
}

// WithInterval sets the time between frames.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}
