package input

import (
	"errors"
	"fmt"
)

// Default device nodes: the touchscreen and the keyboard.
var (
	DefaultPaths   = []string{"/dev/input/event0", "/dev/input/event1"}
	TouchOnlyPaths = []string{"/dev/input/event1"}
)

// Handler receives input events.
type Handler interface {
	HandleEvent(ev Event)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ev Event)

func (f HandlerFunc) HandleEvent(ev Event) { f(ev) }

// Discard drops every event.
var Discard Handler = HandlerFunc(func(Event) {})

// OpenError reports a device that could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("input: open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// ErrNotStarted is returned by Poll before a successful Start.
var ErrNotStarted = errors.New("input: poller not started")

// Poller drains a set of devices once per call to Poll.
type Poller struct {
	paths   []string
	open    func(path string) (*Device, error)
	devices []*Device
}

// NewPoller creates a poller for the given device nodes, or DefaultPaths
// when none are given. Devices are opened by Start.
func NewPoller(paths ...string) *Poller {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	return &Poller{
		paths: append([]string(nil), paths...),
		open:  Open,
	}
}

// NewPollerWithDevices creates a started poller over already open
// devices.
func NewPollerWithDevices(devices ...*Device) *Poller {
	p := &Poller{devices: devices, open: Open}
	for _, d := range devices {
		p.paths = append(p.paths, d.Path())
	}
	return p
}

// Start opens every device. If any device cannot be opened the ones
// already opened are closed and an *OpenError naming it is returned.
func (p *Poller) Start() error {
	if p.devices != nil {
		return nil
	}
	devices := make([]*Device, 0, len(p.paths))
	for _, path := range p.paths {
		d, err := p.open(path)
		if err != nil {
			for _, opened := range devices {
				opened.Close()
			}
			logger().Warn("input: error opening device", "device", path, "err", err)
			return &OpenError{Path: path, Err: err}
		}
		devices = append(devices, d)
	}
	p.devices = devices
	return nil
}

// Devices returns the open devices in path order.
func (p *Poller) Devices() []*Device {
	return p.devices
}

// Poll checks every device without blocking and delivers the events of
// those that are ready. Each device is drained independently, in path
// order; events of one device keep their read order.
func (p *Poller) Poll(h Handler) error {
	if p.devices == nil {
		return ErrNotStarted
	}
	var errs []error
	for _, d := range p.devices {
		if _, err := d.Drain(h); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes all devices. The poller can be started again.
func (p *Poller) Close() error {
	var errs []error
	for _, d := range p.devices {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	p.devices = nil
	return errors.Join(errs...)
}
