package weekit

import (
	"context"
	"time"

	"github.com/weekit/weekit/input"
)

// Application is driven by Run once per frame.
type Application interface {
	// Draw renders one frame into the window.
	Draw(c *Canvas, width, height int)
	// Tick advances application state after the frame is presented and
	// input is drained.
	Tick()
}

// Resizer is implemented by applications that want the window size once,
// before the first frame.
type Resizer interface {
	Size(width, height int)
}

// EventHandler is implemented by applications that consume input events.
type EventHandler = input.Handler

// Run drives app until ctx is cancelled. Each iteration draws, presents
// the frame, drains the poller, sleeps the interval and ticks.
//
// Run returns nil when ctx is cancelled, or the first presentation or
// polling error.
func Run(ctx context.Context, s *Session, app Application, opts ...RunOption) error {
	o := defaultRunOptions()
	for _, opt := range opts {
		opt(&o)
	}
	handler := o.handler
	if handler == nil {
		if h, ok := app.(EventHandler); ok {
			handler = h
		}
	}

	if r, ok := app.(Resizer); ok {
		r.Size(s.Size())
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := present(s, app, o.poller, handler); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(o.interval):
		}
		app.Tick()
	}
}

// Step runs one iteration without sleeping: draw, present, drain p (if
// not nil) into app when it is an EventHandler, then tick.
func Step(s *Session, app Application, p *input.Poller) error {
	var handler input.Handler
	if h, ok := app.(EventHandler); ok {
		handler = h
	}
	if err := present(s, app, p, handler); err != nil {
		return err
	}
	app.Tick()
	return nil
}

func present(s *Session, app Application, p *input.Poller, h input.Handler) error {
	w, hgt := s.Size()
	app.Draw(s.Canvas(), w, hgt)
	if err := s.Swap(); err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	if h == nil {
		h = input.Discard
	}
	return p.Poll(h)
}
