package input

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
)

// File is an open device node. *os.File satisfies it.
type File interface {
	io.ReadCloser
	Fd() uintptr
	Name() string
}

// Device is an opened evdev node with its capabilities.
type Device struct {
	f     File
	path  string
	name  string
	types []byte
	codes map[uint16][]uint16
	abs   map[uint16]AbsInfo

	buf     []byte
	pending []byte
}

// Open opens the device node read-only, takes exclusive access when the
// kernel allows it, and reads its capabilities.
func Open(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	d, err := NewDevice(f, sysQuerier{})
	if err != nil {
		f.Close()
		return nil, err
	}
	return d, nil
}

// NewDevice wraps an open file and queries its capabilities through q.
// Failed capability queries leave the corresponding data empty.
func NewDevice(f File, q Querier) (*Device, error) {
	if f == nil || q == nil {
		return nil, errors.New("input: nil file or querier")
	}
	d := &Device{
		f:     f,
		path:  f.Name(),
		name:  "Unknown",
		types: make([]byte, typeBitsLen),
		codes: make(map[uint16][]uint16),
		abs:   make(map[uint16]AbsInfo),
		buf:   make([]byte, BatchSize*EventSize),
	}
	fd := f.Fd()

	if err := q.Grab(fd); err != nil {
		logger().Debug("input: exclusive grab failed", "device", d.path, "err", err)
	}
	if name, err := q.Name(fd); err == nil && name != "" {
		d.name = name
	}
	if err := q.Bits(fd, 0, d.types); err != nil {
		logger().Debug("input: capability query failed", "device", d.path, "err", err)
	}

	codeBits := make([]byte, codeBitsLen)
	for ev := 1; ev <= EvMax; ev++ {
		if !testBit(d.types, ev) {
			continue
		}
		clear(codeBits)
		if err := q.Bits(fd, uint16(ev), codeBits); err != nil {
			continue
		}
		var codes []uint16
		for code := 0; code <= KeyMax; code++ {
			if !testBit(codeBits, code) {
				continue
			}
			codes = append(codes, uint16(code))
			if ev == EvAbs {
				if info, err := q.AbsInfo(fd, uint16(code)); err == nil {
					d.abs[uint16(code)] = info
				}
			}
		}
		d.codes[uint16(ev)] = codes
	}

	d.report()
	return d, nil
}

// report logs the capabilities at debug level. Min and max are always
// shown; fuzz, flat and resolution only when set.
func (d *Device) report() {
	log := logger()
	log.Debug("input: device opened", "device", d.path, "name", d.name)
	for _, ev := range d.Types() {
		log.Debug("input: event type", "device", d.path, "type", fmt.Sprintf("0x%x", ev))
		for _, code := range d.codes[ev] {
			if ev != EvAbs {
				log.Debug("input: event code", "device", d.path, "type", fmt.Sprintf("0x%x", ev), "code", fmt.Sprintf("0x%x", code))
				continue
			}
			info := d.abs[code]
			attrs := []any{
				"device", d.path,
				"code", fmt.Sprintf("0x%x", code),
				slog.Int("value", int(info.Value)),
				slog.Int("min", int(info.Min)),
				slog.Int("max", int(info.Max)),
			}
			if info.Fuzz != 0 {
				attrs = append(attrs, slog.Int("fuzz", int(info.Fuzz)))
			}
			if info.Flat != 0 {
				attrs = append(attrs, slog.Int("flat", int(info.Flat)))
			}
			if info.Resolution != 0 {
				attrs = append(attrs, slog.Int("resolution", int(info.Resolution)))
			}
			log.Debug("input: absolute axis", attrs...)
		}
	}
}

// Path returns the device node path.
func (d *Device) Path() string { return d.path }

// Name returns the kernel device name, or "Unknown".
func (d *Device) Name() string { return d.name }

// Supports reports whether the device emits events of type ev.
func (d *Device) Supports(ev uint16) bool {
	return testBit(d.types, int(ev))
}

// Types returns the supported event types in ascending order.
func (d *Device) Types() []uint16 {
	var types []uint16
	for ev := 0; ev <= EvMax; ev++ {
		if testBit(d.types, ev) {
			types = append(types, uint16(ev))
		}
	}
	return types
}

// Codes returns the supported codes of event type ev in ascending order.
func (d *Device) Codes(ev uint16) []uint16 {
	codes := d.codes[ev]
	out := make([]uint16, len(codes))
	copy(out, codes)
	return out
}

// AbsInfo returns the calibration of an absolute axis.
func (d *Device) AbsInfo(code uint16) (AbsInfo, bool) {
	info, ok := d.abs[code]
	return info, ok
}

// AbsCodes returns the absolute axes that have calibration data.
func (d *Device) AbsCodes() []uint16 {
	codes := make([]uint16, 0, len(d.abs))
	for c := range d.abs {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Drain delivers the pending events of the device to h without blocking.
// At most BatchSize events are taken. It reports how many were delivered.
func (d *Device) Drain(h Handler) (int, error) {
	ok, err := ready(d.f.Fd())
	if err != nil {
		return 0, fmt.Errorf("input: poll %s: %w", d.path, err)
	}
	if !ok {
		return 0, nil
	}

	n, err := d.f.Read(d.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("input: read %s: %w", d.path, err)
	}

	data := d.buf[:n]
	if len(d.pending) > 0 {
		data = append(d.pending, data...)
		d.pending = nil
	}

	count := 0
	for len(data) >= EventSize {
		h.HandleEvent(decodeEvent(data[:EventSize], d.path))
		data = data[EventSize:]
		count++
	}
	if len(data) > 0 {
		d.pending = append([]byte(nil), data...)
	}
	return count, nil
}

// Close releases the device.
func (d *Device) Close() error {
	return d.f.Close()
}
