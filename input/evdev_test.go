package input

import "testing"

func TestIoctlNumbers(t *testing.T) {
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"EVIOCGRAB", eviocgrab(), 0x40044590},
		{"EVIOCGNAME(256)", eviocgname(256), 0x81004506},
		{"EVIOCGABS(ABS_X)", eviocgabs(AbsX), 0x80184540},
		{"EVIOCGABS(ABS_MT_POSITION_X)", eviocgabs(AbsMtPositionX), 0x80184575},
		{"EVIOCGBIT(EV_ABS, 8)", eviocgbit(EvAbs, 8), 0x80084523},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got 0x%x, want 0x%x", tt.got, tt.want)
			}
		})
	}
}

func TestBitmap(t *testing.T) {
	buf := make([]byte, codeBitsLen)
	for _, n := range []int{0, 7, 63, 64, BtnTouch, KeyMax} {
		if testBit(buf, n) {
			t.Errorf("bit %d set in empty bitmap", n)
		}
		setBit(buf, n)
		if !testBit(buf, n) {
			t.Errorf("bit %d not set after setBit", n)
		}
	}
	if testBit(buf, 1) || testBit(buf, BtnTouch+1) {
		t.Error("neighbouring bits set")
	}
	if testBit(buf, KeyMax+1000) {
		t.Error("out of range bit reported set")
	}
	if codeBitsLen < (KeyMax+1)/8 {
		t.Errorf("codeBitsLen = %d too small", codeBitsLen)
	}
}
