package weekit

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

// Session is an open window surface on a display platform. It is only
// obtained from a successful Init and must not be used from more than one
// goroutine.
type Session struct {
	platform Platform
	surface  Surface
	window   image.Rectangle
	screen   image.Point
	canvas   *Canvas
	closed   bool
}

// Init connects to a display platform and opens a window surface.
//
// Without options the window covers the whole screen of the highest
// priority available platform. On failure no session is returned and
// every acquired resource has been released.
func Init(opts ...Option) (*Session, error) {
	o := defaultInitOptions()
	for _, opt := range opts {
		opt(&o)
	}

	entry, err := platforms.lookup(o.platform)
	if err != nil {
		return nil, err
	}

	p, err := entry.Factory(PlatformConfig{ScreenSize: o.screenSize})
	if err != nil {
		return nil, wrapSetup(entry.Name, "display", err)
	}

	sw, sh, err := p.ScreenSize()
	if err != nil {
		_ = p.Close()
		return nil, wrapSetup(entry.Name, "screen size", err)
	}
	screen := image.Pt(sw, sh)
	window := clampWindow(o.x, o.y, o.w, o.h, screen)

	surf, err := p.Open(window)
	if err != nil {
		_ = p.Close()
		return nil, wrapSetup(entry.Name, "surface", err)
	}

	s := &Session{
		platform: p,
		surface:  surf,
		window:   window,
		screen:   screen,
	}
	s.canvas = newCanvas(s)

	Logger().Info("weekit: session opened",
		"platform", p.Name(),
		"screen", fmt.Sprintf("%dx%d", sw, sh),
		"window", window)
	return s, nil
}

func wrapSetup(platform, stage string, err error) error {
	var se *SetupError
	if errors.As(err, &se) {
		return err
	}
	return &SetupError{Platform: platform, Stage: stage, Err: err}
}

// clampWindow applies the window sizing policy: a non-positive dimension,
// or one larger than the screen, becomes the screen dimension.
func clampWindow(x, y, w, h int, screen image.Point) image.Rectangle {
	if w <= 0 || w > screen.X {
		w = screen.X
	}
	if h <= 0 || h > screen.Y {
		h = screen.Y
	}
	return image.Rect(x, y, x+w, y+h)
}

// Canvas returns the drawing layer bound to the session.
func (s *Session) Canvas() *Canvas { return s.canvas }

// Surface returns the platform surface.
func (s *Session) Surface() Surface { return s.surface }

// Platform returns the platform the session was opened on.
func (s *Session) Platform() Platform { return s.platform }

// Size returns the window width and height.
func (s *Session) Size() (w, h int) {
	return s.window.Dx(), s.window.Dy()
}

// ScreenSize returns the physical screen size.
func (s *Session) ScreenSize() (w, h int) {
	return s.screen.X, s.screen.Y
}

// Window returns the window rectangle in screen coordinates.
func (s *Session) Window() image.Rectangle { return s.window }

// Closed reports whether Finish has been called.
func (s *Session) Closed() bool { return s.closed }

// Swap reports any pending drawing error and presents the back buffer.
func (s *Session) Swap() error {
	if s.closed {
		return ErrSessionClosed
	}
	drawErr := s.surface.Err()
	if err := s.surface.Swap(); err != nil {
		return errors.Join(drawErr, err)
	}
	return drawErr
}

// DumpScreen writes the screen-sized back buffer to w as raw 4-byte
// sABGR_8888 pixels, bottom row first.
func (s *Session) DumpScreen(w io.Writer) error {
	pix, err := s.readScreen()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(pix); err != nil {
		return err
	}
	return bw.Flush()
}

// SaveEnd dumps the screen to the named file, or to standard output when
// name is empty, then presents the frame.
func (s *Session) SaveEnd(name string) error {
	if s.closed {
		return ErrSessionClosed
	}
	if name == "" {
		if err := s.DumpScreen(os.Stdout); err != nil {
			return err
		}
		return s.Swap()
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := s.DumpScreen(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return s.Swap()
}

// SavePNG writes the screen-sized back buffer to a PNG file, top row first.
func (s *Session) SavePNG(name string) error {
	img, err := s.Snapshot()
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Snapshot reads the screen-sized back buffer into a top-down image.
func (s *Session) Snapshot() (*image.NRGBA, error) {
	pix, err := s.readScreen()
	if err != nil {
		return nil, err
	}
	w, h := s.screen.X, s.screen.Y
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	stride := w * 4
	for y := 0; y < h; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], pix[(h-1-y)*stride:(h-y)*stride])
	}
	return img, nil
}

func (s *Session) readScreen() ([]byte, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	w, h := s.screen.X, s.screen.Y
	pix := make([]byte, w*h*4)
	if err := s.surface.ReadPixels(pix, 0, 0, w, h); err != nil {
		return nil, err
	}
	return pix, nil
}

// WindowOpacity sets the compositor opacity of the window.
func (s *Session) WindowOpacity(alpha uint8) error {
	if s.closed {
		return ErrSessionClosed
	}
	return s.surface.SetOpacity(alpha)
}

// WindowPosition moves the window to (x, y) in screen coordinates.
func (s *Session) WindowPosition(x, y int) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.surface.Move(x, y); err != nil {
		return err
	}
	s.window = s.window.Add(image.Pt(x, y).Sub(s.window.Min))
	return nil
}

// Finish presents the last frame and releases the surface, the rendering
// context and the display, in that order. Calling it again is a no-op.
func (s *Session) Finish() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.canvas.release()

	err := errors.Join(s.surface.Close(), s.platform.Close())
	Logger().Info("weekit: session finished", "platform", s.platform.Name())
	return err
}
