package input

import "time"

// MaxSlots is the number of multitouch slots tracked by TouchDecoder.
const MaxSlots = 10

// Phase is the stage of a touch in its lifetime.
type Phase uint8

const (
	Began Phase = iota + 1
	Moved
	Ended
)

func (p Phase) String() string {
	switch p {
	case Began:
		return "began"
	case Moved:
		return "moved"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// TouchEvent is a change of one touch slot, reported at a sync.
type TouchEvent struct {
	Slot  int
	Phase Phase
	X, Y  int32
	Time  time.Time
}

// KeyState is the value of an EV_KEY event.
type KeyState uint8

const (
	KeyUp KeyState = iota
	KeyDown
	KeyRepeat
)

// KeyEvent is a key or button change other than BTN_TOUCH.
type KeyEvent struct {
	Code  uint16
	State KeyState
	Time  time.Time
}

// Pressed reports whether the key went down.
func (e KeyEvent) Pressed() bool { return e.State == KeyDown }

type touch struct {
	trackingID int32
	x, y       int32
	began      bool
	moved      bool
	ended      bool
}

// TouchDecoder is a Handler that follows the multitouch slot protocol.
// Position, slot and tracking changes accumulate until EV_SYN, which
// reports at most one TouchEvent per slot: Began wins over Ended, which
// wins over Moved. Single-touch ABS_X and ABS_Y update the current slot.
type TouchDecoder struct {
	OnTouch func(TouchEvent)
	OnKey   func(KeyEvent)

	touches [MaxSlots]touch
	slot    int
}

// HandleEvent implements Handler.
func (d *TouchDecoder) HandleEvent(ev Event) {
	switch ev.Type {
	case EvSyn:
		d.sync(ev.Time)
	case EvKey:
		d.key(ev)
	case EvAbs:
		d.abs(ev.Code, ev.Value)
	}
}

func (d *TouchDecoder) current() *touch {
	if d.slot < 0 || d.slot >= MaxSlots {
		return nil
	}
	return &d.touches[d.slot]
}

func (d *TouchDecoder) key(ev Event) {
	if ev.Code == BtnTouch {
		t := d.current()
		if t == nil {
			return
		}
		switch ev.Value {
		case 0:
			t.ended = true
		case 1:
			t.began = true
		}
		return
	}
	if d.OnKey != nil {
		d.OnKey(KeyEvent{Code: ev.Code, State: KeyState(ev.Value), Time: ev.Time})
	}
}

func (d *TouchDecoder) abs(code uint16, v int32) {
	if code == AbsMtSlot {
		d.slot = int(v)
		return
	}
	t := d.current()
	if t == nil {
		return
	}
	switch code {
	case AbsX, AbsMtPositionX:
		t.x = v
		t.moved = true
	case AbsY, AbsMtPositionY:
		t.y = v
		t.moved = true
	case AbsMtTrackingID:
		t.trackingID = v
		if v >= 0 {
			t.began = true
		} else {
			t.ended = true
		}
	}
}

func (d *TouchDecoder) sync(at time.Time) {
	for slot := range d.touches {
		t := &d.touches[slot]
		var phase Phase
		switch {
		case t.began:
			phase = Began
		case t.ended:
			phase = Ended
		case t.moved:
			phase = Moved
		}
		t.began, t.moved, t.ended = false, false, false
		if phase != 0 && d.OnTouch != nil {
			d.OnTouch(TouchEvent{Slot: slot, Phase: phase, X: t.x, Y: t.y, Time: at})
		}
	}
}

// Slot returns the slot currently addressed by the device.
func (d *TouchDecoder) Slot() int { return d.slot }
