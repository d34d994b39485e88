package input

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"time"
)

// Event is one struct input_event record.
type Event struct {
	Time   time.Time
	Type   uint16
	Code   uint16
	Value  int32
	Device string
}

func (e Event) String() string {
	return fmt.Sprintf("%s type=0x%02x code=0x%03x value=%d", e.Device, e.Type, e.Code, e.Value)
}

// EventSize is sizeof(struct input_event) on this host: a timeval of two
// longs followed by type, code and value.
const EventSize = 2*bits.UintSize/8 + 8

// BatchSize is the maximum number of events taken from a device in one
// read.
const BatchSize = 64

// decodeEvent decodes one native-endian record. b must hold EventSize
// bytes.
func decodeEvent(b []byte, device string) Event {
	var sec, usec int64
	const word = bits.UintSize / 8
	if word == 8 {
		sec = int64(binary.NativeEndian.Uint64(b[0:]))
		usec = int64(binary.NativeEndian.Uint64(b[8:]))
	} else {
		sec = int64(int32(binary.NativeEndian.Uint32(b[0:])))
		usec = int64(int32(binary.NativeEndian.Uint32(b[4:])))
	}
	p := b[2*word:]
	return Event{
		Time:   time.Unix(sec, usec*1000),
		Type:   binary.NativeEndian.Uint16(p[0:]),
		Code:   binary.NativeEndian.Uint16(p[2:]),
		Value:  int32(binary.NativeEndian.Uint32(p[4:])),
		Device: device,
	}
}

// AppendEvent appends the kernel record form of e to b.
func AppendEvent(b []byte, e Event) []byte {
	const word = bits.UintSize / 8
	var usec int64
	var sec int64
	if !e.Time.IsZero() {
		sec = e.Time.Unix()
		usec = int64(e.Time.Nanosecond() / 1000)
	}
	if word == 8 {
		b = binary.NativeEndian.AppendUint64(b, uint64(sec))
		b = binary.NativeEndian.AppendUint64(b, uint64(usec))
	} else {
		b = binary.NativeEndian.AppendUint32(b, uint32(sec))
		b = binary.NativeEndian.AppendUint32(b, uint32(usec))
	}
	b = binary.NativeEndian.AppendUint16(b, e.Type)
	b = binary.NativeEndian.AppendUint16(b, e.Code)
	return binary.NativeEndian.AppendUint32(b, uint32(e.Value))
}
