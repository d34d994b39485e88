package weekit

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"
)

// drawCall is one DrawPath recorded by fakeSurface.
type drawCall struct {
	mode   PaintMode
	segs   []Segment
	coords []float32
	fill   Paint
	stroke Paint
	style  StrokeStyle
	matrix Matrix
}

// fakeSurface records the calls a Canvas makes.
type fakeSurface struct {
	log     []string
	draws   []drawCall
	fill    Paint
	stroke  Paint
	style   StrokeStyle
	rule    FillRule
	matrix  Matrix
	scissor image.Rectangle
	clipOn  bool
	clear   Color

	images  map[ImageHandle][]byte
	next    ImageHandle
	blits   []string
	err     error
	swapErr error
	swaps   int
	closed  bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{images: make(map[ImageHandle][]byte), matrix: Identity()}
}

func (f *fakeSurface) record(format string, args ...any) {
	f.log = append(f.log, fmt.Sprintf(format, args...))
}

func (f *fakeSurface) SetPaint(p Paint, mode PaintMode) {
	if mode&PaintFill != 0 {
		f.fill = p
	}
	if mode&PaintStroke != 0 {
		f.stroke = p
	}
	f.record("paint %d", mode)
}

func (f *fakeSurface) SetStroke(s StrokeStyle) { f.style = s; f.record("stroke %v", s.Width) }
func (f *fakeSurface) SetFillRule(r FillRule)  { f.rule = r; f.record("fillrule %d", r) }
func (f *fakeSurface) SetMatrix(m Matrix)      { f.matrix = m; f.record("matrix") }

func (f *fakeSurface) SetScissor(r image.Rectangle, enabled bool) {
	f.scissor, f.clipOn = r, enabled
	f.record("scissor %v %v", r, enabled)
}

func (f *fakeSurface) SetClearColor(c Color)   { f.clear = c; f.record("clearcolor") }
func (f *fakeSurface) Clear(r image.Rectangle) { f.record("clear %v", r) }

func (f *fakeSurface) DrawPath(p *Path, mode PaintMode) {
	f.draws = append(f.draws, drawCall{
		mode:   mode,
		segs:   append([]Segment(nil), p.Segments...),
		coords: append([]float32(nil), p.Coords...),
		fill:   f.fill,
		stroke: f.stroke,
		style:  f.style,
		matrix: f.matrix,
	})
	f.record("draw %d", mode)
}

func (f *fakeSurface) CreateImage(format PixelFormat, w, h int, pix []byte, stride int) (ImageHandle, error) {
	if w <= 0 || h <= 0 {
		return 0, ErrInvalidImage
	}
	f.next++
	f.images[f.next] = append([]byte(nil), pix...)
	f.record("create %d %dx%d", f.next, w, h)
	return f.next, nil
}

func (f *fakeSurface) SetPixels(x, y int, img ImageHandle, w, h int) {
	f.blits = append(f.blits, fmt.Sprintf("%d@%d,%d %dx%d", img, x, y, w, h))
}

func (f *fakeSurface) DestroyImage(img ImageHandle) {
	delete(f.images, img)
	f.record("destroy %d", img)
}

func (f *fakeSurface) ReadPixels(dst []byte, x, y, w, h int) error {
	for i := range dst[:w*h*4] {
		dst[i] = byte(i)
	}
	return nil
}

func (f *fakeSurface) Err() error {
	err := f.err
	f.err = nil
	return err
}

func (f *fakeSurface) Swap() error {
	f.swaps++
	f.record("swap")
	return f.swapErr
}

func (f *fakeSurface) SetOpacity(alpha uint8) error { f.record("opacity %d", alpha); return nil }
func (f *fakeSurface) Move(x, y int) error          { f.record("move %d,%d", x, y); return nil }

func (f *fakeSurface) Close() error {
	f.closed = true
	f.record("close")
	return nil
}

// fakePlatform is a display of a fixed size that opens one fakeSurface.
type fakePlatform struct {
	screen  image.Point
	window  image.Rectangle
	surf    *fakeSurface
	openErr error
	sizeErr error
	closed  int
}

func (p *fakePlatform) Name() string { return "fake" }

func (p *fakePlatform) ScreenSize() (int, int, error) {
	return p.screen.X, p.screen.Y, p.sizeErr
}

func (p *fakePlatform) Open(window image.Rectangle) (Surface, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}
	p.window = window
	p.surf = newFakeSurface()
	return p.surf, nil
}

func (p *fakePlatform) Close() error {
	p.closed++
	if p.surf != nil {
		p.surf.record("display close")
	}
	return nil
}

// registerFake registers a fake platform under a name unique to the test
// and returns the name and the platform the factory hands out.
func registerFake(t *testing.T, priority int) (string, *fakePlatform) {
	t.Helper()
	name := "fake-" + strings.ReplaceAll(t.Name(), "/", "-")
	p := &fakePlatform{screen: image.Pt(640, 480)}
	RegisterPlatform(name, priority, func(PlatformConfig) (Platform, error) {
		return p, nil
	}, nil)
	t.Cleanup(func() { UnregisterPlatform(name) })
	return name, p
}

// newFakeSession opens a session on a fresh fake platform and clears the
// calls made during Init.
func newFakeSession(t *testing.T, opts ...Option) (*Session, *fakeSurface) {
	t.Helper()
	name, p := registerFake(t, -1)
	s, err := Init(append([]Option{WithPlatform(name)}, opts...)...)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { s.Finish() })
	p.surf.log = nil
	p.surf.draws = nil
	return s, p.surf
}

var errFake = errors.New("fake failure")
