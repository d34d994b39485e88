package input

import (
	"encoding/binary"
	"math/bits"
)

// Event types.
const (
	EvSyn = 0x00
	EvKey = 0x01
	EvRel = 0x02
	EvAbs = 0x03
	EvMsc = 0x04
	EvMax = 0x1f
)

// Event codes.
const (
	SynReport = 0x00

	AbsX            = 0x00
	AbsY            = 0x01
	AbsPressure     = 0x18
	AbsMtSlot       = 0x2f
	AbsMtPositionX  = 0x35
	AbsMtPositionY  = 0x36
	AbsMtTrackingID = 0x39
	AbsMax          = 0x3f

	BtnTouch = 0x14a
	KeyMax   = 0x2ff
)

// Key codes used by the desktop preview.
const (
	KeyEsc        = 1
	KeyBackspace  = 14
	KeyTab        = 15
	KeyEnter      = 28
	KeySpace      = 57
	KeyArrowUp    = 103
	KeyArrowLeft  = 105
	KeyArrowRight = 106
	KeyArrowDown  = 108
)

// ioctl request encoding, the Linux _IOC macro.
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr(dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift)
}

// absInfoSize is sizeof(struct input_absinfo): six int32.
const absInfoSize = 24

// eviocgabs is EVIOCGABS(abs) = _IOR('E', 0x40 + abs, struct input_absinfo).
func eviocgabs(code uint16) uintptr {
	return ioc(iocRead, 'E', 0x40+uint32(code), absInfoSize)
}

// eviocgrab is EVIOCGRAB = _IOW('E', 0x90, int).
func eviocgrab() uintptr {
	return ioc(iocWrite, 'E', 0x90, 4)
}

// eviocgname is EVIOCGNAME(len) = _IOC(_IOC_READ, 'E', 0x06, len).
func eviocgname(n int) uintptr {
	return ioc(iocRead, 'E', 0x06, uint32(n))
}

// eviocgbit is EVIOCGBIT(ev, len) = _IOC(_IOC_READ, 'E', 0x20 + ev, len).
func eviocgbit(ev uint16, n int) uintptr {
	return ioc(iocRead, 'E', 0x20+uint32(ev), uint32(n))
}

// Bitmap sizes in bytes, rounded up to whole longs.
var (
	typeBitsLen = bitsLen(EvMax)
	codeBitsLen = bitsLen(KeyMax)
)

func bitsLen(maxBit int) int {
	words := maxBit/bits.UintSize + 1
	return words * bits.UintSize / 8
}

// testBit reports whether bit n is set in a kernel bitmap, an array of
// native-endian longs.
func testBit(bitmap []byte, n int) bool {
	wordBytes := bits.UintSize / 8
	off := n / bits.UintSize * wordBytes
	if off+wordBytes > len(bitmap) {
		return false
	}
	var word uint64
	if wordBytes == 8 {
		word = binary.NativeEndian.Uint64(bitmap[off:])
	} else {
		word = uint64(binary.NativeEndian.Uint32(bitmap[off:]))
	}
	return word>>(n%bits.UintSize)&1 == 1
}

// setBit sets bit n in a kernel bitmap. Used by fake queriers.
func setBit(bitmap []byte, n int) {
	wordBytes := bits.UintSize / 8
	off := n / bits.UintSize * wordBytes
	if off+wordBytes > len(bitmap) {
		return
	}
	if wordBytes == 8 {
		w := binary.NativeEndian.Uint64(bitmap[off:])
		binary.NativeEndian.PutUint64(bitmap[off:], w|1<<(n%bits.UintSize))
		return
	}
	w := binary.NativeEndian.Uint32(bitmap[off:])
	binary.NativeEndian.PutUint32(bitmap[off:], w|1<<(n%bits.UintSize))
}

// AbsInfo is the calibration of an absolute axis, struct input_absinfo.
type AbsInfo struct {
	Value      int32
	Min        int32
	Max        int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// Querier issues the evdev capability ioctls on an open device.
type Querier interface {
	// Grab requests exclusive access.
	Grab(fd uintptr) error
	Name(fd uintptr) (string, error)
	// Bits fills buf with the code bitmap of event type ev, or the type
	// bitmap when ev is 0.
	Bits(fd uintptr, ev uint16, buf []byte) error
	AbsInfo(fd uintptr, code uint16) (AbsInfo, error)
}
