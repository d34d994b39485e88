package preview

import (
	"time"

	"github.com/weekit/weekit/input"
)

// Device is the name given to synthesized events.
const Device = "preview"

// pointer turns a mouse into single-slot multitouch events, the way the
// touch display reports a finger.
type pointer struct {
	down bool
	x, y int
	id   int32
}

// update returns the events for the pointer state (down, x, y) ending with
// a SYN_REPORT, or nil when nothing changed.
func (p *pointer) update(down bool, x, y int, now time.Time) []input.Event {
	ev := func(typ, code uint16, v int32) input.Event {
		return input.Event{Time: now, Type: typ, Code: code, Value: v, Device: Device}
	}

	var out []input.Event
	switch {
	case down && !p.down:
		p.id++
		out = append(out,
			ev(input.EvAbs, input.AbsMtSlot, 0),
			ev(input.EvAbs, input.AbsMtTrackingID, p.id),
			ev(input.EvAbs, input.AbsMtPositionX, int32(x)),
			ev(input.EvAbs, input.AbsMtPositionY, int32(y)),
			ev(input.EvKey, input.BtnTouch, 1),
		)
	case down && (x != p.x || y != p.y):
		if x != p.x {
			out = append(out, ev(input.EvAbs, input.AbsMtPositionX, int32(x)))
		}
		if y != p.y {
			out = append(out, ev(input.EvAbs, input.AbsMtPositionY, int32(y)))
		}
	case !down && p.down:
		out = append(out,
			ev(input.EvAbs, input.AbsMtTrackingID, -1),
			ev(input.EvKey, input.BtnTouch, 0),
		)
	}
	p.down, p.x, p.y = down, x, y
	if out == nil {
		return nil
	}
	return append(out, ev(input.EvSyn, input.SynReport, 0))
}

// keyEvents returns an EV_KEY event for each press and release followed by
// a SYN_REPORT, or nil when both are empty.
func keyEvents(pressed, released []uint16, now time.Time) []input.Event {
	if len(pressed) == 0 && len(released) == 0 {
		return nil
	}
	out := make([]input.Event, 0, len(pressed)+len(released)+1)
	for _, c := range pressed {
		out = append(out, input.Event{Time: now, Type: input.EvKey, Code: c, Value: int32(input.KeyDown), Device: Device})
	}
	for _, c := range released {
		out = append(out, input.Event{Time: now, Type: input.EvKey, Code: c, Value: int32(input.KeyUp), Device: Device})
	}
	return append(out, input.Event{Time: now, Type: input.EvSyn, Code: input.SynReport, Device: Device})
}
