// Copyright 2026 The weekit Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software is a CPU drawing platform. It renders into an in-memory
// framebuffer and needs no display, so it runs on any host and backs the
// desktop preview and the tests.
//
// Import it for its side effect of registering the "software" platform:
//
//	import _ "github.com/weekit/weekit/platform/software"
package software

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/weekit/weekit"
	"github.com/weekit/weekit/internal/path"
	"github.com/weekit/weekit/internal/raster"
	"github.com/weekit/weekit/internal/stroke"
)

// Name is the registry name of the platform.
const Name = "software"

// DefaultScreenSize is the screen reported when no size is configured,
// the resolution of the official Raspberry Pi touch display.
var DefaultScreenSize = image.Pt(800, 480)

func init() {
	weekit.RegisterPlatform(Name, 10, New, nil)
}

// Platform is an in-memory display.
type Platform struct {
	mu     sync.Mutex
	screen image.Point
	open   int
	closed bool
}

// New creates a software display. cfg.ScreenSize overrides
// DefaultScreenSize when both dimensions are positive.
func New(cfg weekit.PlatformConfig) (weekit.Platform, error) {
	screen := DefaultScreenSize
	if cfg.ScreenSize.X > 0 && cfg.ScreenSize.Y > 0 {
		screen = cfg.ScreenSize
	}
	return &Platform{screen: screen}, nil
}

func (p *Platform) Name() string { return Name }

func (p *Platform) ScreenSize() (int, int, error) {
	return p.screen.X, p.screen.Y, nil
}

// Open creates a surface for window, given in screen coordinates.
func (p *Platform) Open(window image.Rectangle) (weekit.Surface, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, weekit.ErrDisplayUnavailable
	}
	if window.Dx() <= 0 || window.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty window %v", weekit.ErrSurface, window)
	}
	p.open++
	return newSurface(p, window), nil
}

func (p *Platform) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open > 0 {
		weekit.Logger().Warn("software: display closed with open surfaces", "surfaces", p.open)
	}
	p.closed = true
	return nil
}

func (p *Platform) release() {
	p.mu.Lock()
	p.open--
	p.mu.Unlock()
}

// Surface is a window backed by two RGBA images. Drawing goes to the back
// image; Swap copies it to the front image. Both are stored top row
// first in premultiplied alpha.
type Surface struct {
	platform *Platform
	window   image.Rectangle
	back     *image.RGBA
	front    *image.RGBA
	frames   int
	opacity  uint8

	fill, stroke weekit.Paint
	style        weekit.StrokeStyle
	rule         weekit.FillRule
	matrix       weekit.Matrix
	scissor      image.Rectangle
	scissorOn    bool
	clear        weekit.Color

	images map[weekit.ImageHandle]*image.NRGBA
	next   weekit.ImageHandle

	filler  raster.Filler
	outline path.Outline
	err     error
	closed  bool
}

func newSurface(p *Platform, window image.Rectangle) *Surface {
	bounds := image.Rect(0, 0, window.Dx(), window.Dy())
	return &Surface{
		platform: p,
		window:   window,
		back:     image.NewRGBA(bounds),
		front:    image.NewRGBA(bounds),
		opacity:  255,
		fill:     weekit.Paint{Color: weekit.Black},
		stroke:   weekit.Paint{Color: weekit.Black},
		style:    weekit.StrokeStyle{Width: 1, MiterLimit: 4},
		matrix:   weekit.Identity(),
		images:   make(map[weekit.ImageHandle]*image.NRGBA),
	}
}

func (s *Surface) setErr(code int, op string) {
	if s.err == nil {
		s.err = &weekit.DrawError{Code: code, Op: op}
	}
}

func (s *Surface) SetPaint(p weekit.Paint, mode weekit.PaintMode) {
	if mode&weekit.PaintFill != 0 {
		s.fill = p
	}
	if mode&weekit.PaintStroke != 0 {
		s.stroke = p
	}
}

func (s *Surface) SetStroke(st weekit.StrokeStyle) { s.style = st }
func (s *Surface) SetFillRule(r weekit.FillRule)   { s.rule = r }
func (s *Surface) SetMatrix(m weekit.Matrix)       { s.matrix = m }
func (s *Surface) SetClearColor(c weekit.Color)    { s.clear = c }

func (s *Surface) SetScissor(r image.Rectangle, enabled bool) {
	s.scissor = r
	s.scissorOn = enabled
}

// device maps a window rectangle (origin bottom-left) to image space.
func (s *Surface) device(r image.Rectangle) image.Rectangle {
	h := s.back.Rect.Dy()
	return image.Rect(r.Min.X, h-r.Max.Y, r.Max.X, h-r.Min.Y)
}

func (s *Surface) clip() image.Rectangle {
	if s.scissorOn {
		return s.device(s.scissor).Intersect(s.back.Rect)
	}
	return s.back.Rect
}

// deviceMatrix maps user space to image space.
func (s *Surface) deviceMatrix() weekit.Matrix {
	flip := weekit.Matrix{A: 1, E: -1, F: float64(s.back.Rect.Dy())}
	return flip.Multiply(s.matrix)
}

func (s *Surface) Clear(r image.Rectangle) {
	if s.closed {
		return
	}
	c := s.clear.Premultiply().NRGBA()
	src := image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
	draw.Draw(s.back, s.device(r).Intersect(s.clip()), src, image.Point{}, draw.Src)
}

func (s *Surface) DrawPath(p *weekit.Path, mode weekit.PaintMode) {
	if s.closed || p == nil || p.Len() == 0 {
		return
	}
	user := toOutline(&s.outline, p)
	dm := s.deviceMatrix()
	toDevice := func(pt path.Point) path.Point {
		x, y := dm.Apply(pt.X, pt.Y)
		return path.Point{X: x, Y: y}
	}
	clip := s.clip()

	if mode&weekit.PaintFill != 0 {
		fill := s.filler.FillEvenOdd
		if s.rule == weekit.NonZero {
			fill = s.filler.Fill
		}
		fill(s.back, clip, user.Map(toDevice), s.source(s.fill, dm))
	}
	if mode&weekit.PaintStroke != 0 && s.style.Width > 0 {
		det := math.Abs(s.matrix.A*s.matrix.E - s.matrix.B*s.matrix.D)
		if det == 0 {
			return
		}
		tol := stroke.DefaultTolerance / math.Sqrt(det)
		outline := stroke.Expand(user, strokeStyle(s.style), tol)
		s.filler.Fill(s.back, clip, outline.Map(toDevice), s.source(s.stroke, dm))
	}
}

func toOutline(o *path.Outline, p *weekit.Path) *path.Outline {
	o.Reset()
	pt := func(c []float32, i int) path.Point {
		return path.Point{X: float64(c[i]), Y: float64(c[i+1])}
	}
	p.Walk(func(seg weekit.Segment, c []float32) {
		switch seg {
		case weekit.SegMoveTo:
			o.MoveTo(pt(c, 0))
		case weekit.SegLineTo:
			o.LineTo(pt(c, 0))
		case weekit.SegQuadTo:
			o.QuadTo(pt(c, 0), pt(c, 2))
		case weekit.SegCubicTo:
			o.CubicTo(pt(c, 0), pt(c, 2), pt(c, 4))
		case weekit.SegClose:
			o.Close()
		}
	})
	return o
}

func strokeStyle(st weekit.StrokeStyle) stroke.Style {
	out := stroke.Style{
		Width:      float64(st.Width),
		MiterLimit: float64(st.MiterLimit),
	}
	switch st.Cap {
	case weekit.CapRound:
		out.Cap = stroke.CapRound
	case weekit.CapSquare:
		out.Cap = stroke.CapSquare
	}
	switch st.Join {
	case weekit.JoinRound:
		out.Join = stroke.JoinRound
	case weekit.JoinBevel:
		out.Join = stroke.JoinBevel
	}
	return out
}

func (s *Surface) source(p weekit.Paint, dm weekit.Matrix) image.Image {
	if p.Gradient == nil {
		return image.NewUniform(p.Color.NRGBA())
	}
	return &gradientImage{g: p.Gradient, inv: dm.Invert()}
}

// gradientImage samples a gradient at image pixel centers mapped back to
// user space.
type gradientImage struct {
	g   *weekit.Gradient
	inv weekit.Matrix
}

func (gi *gradientImage) ColorModel() color.Model { return color.NRGBAModel }

func (gi *gradientImage) Bounds() image.Rectangle {
	return image.Rect(-1<<24, -1<<24, 1<<24, 1<<24)
}

func (gi *gradientImage) At(x, y int) color.Color {
	ux, uy := gi.inv.Apply(float64(x)+0.5, float64(y)+0.5)
	return gi.g.ColorAt(ux, uy).NRGBA()
}

func (s *Surface) CreateImage(format weekit.PixelFormat, w, h int, pix []byte, stride int) (weekit.ImageHandle, error) {
	if s.closed {
		return 0, weekit.ErrSessionClosed
	}
	if w <= 0 || h <= 0 || stride < w*4 || len(pix) < stride*(h-1)+w*4 {
		return 0, &weekit.DrawError{Code: weekit.CodeIllegalArgument, Op: "CreateImage"}
	}
	var order [4]int
	switch format {
	case weekit.NativeFormat():
		order = [4]int{0, 1, 2, 3}
	case weekit.FormatRGBA8888, weekit.FormatABGR8888:
		order = [4]int{3, 2, 1, 0}
	default:
		return 0, &weekit.DrawError{Code: weekit.CodeUnsupportedFormat, Op: "CreateImage"}
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := pix[y*stride : y*stride+w*4]
		dst := img.Pix[(h-1-y)*img.Stride:]
		for x := 0; x < w*4; x += 4 {
			dst[x+0] = src[x+order[0]]
			dst[x+1] = src[x+order[1]]
			dst[x+2] = src[x+order[2]]
			dst[x+3] = src[x+order[3]]
		}
	}
	s.next++
	s.images[s.next] = img
	return s.next, nil
}

func (s *Surface) SetPixels(x, y int, handle weekit.ImageHandle, w, h int) {
	if s.closed {
		return
	}
	img, ok := s.images[handle]
	if !ok {
		s.setErr(weekit.CodeBadHandle, "SetPixels")
		return
	}
	w = min(w, img.Rect.Dx())
	h = min(h, img.Rect.Dy())
	if w <= 0 || h <= 0 {
		s.setErr(weekit.CodeIllegalArgument, "SetPixels")
		return
	}
	dst := s.device(image.Rect(x, y, x+w, y+h))
	draw.Draw(s.back, dst, img, image.Pt(0, img.Rect.Dy()-h), draw.Src)
}

func (s *Surface) DestroyImage(handle weekit.ImageHandle) {
	if s.closed {
		return
	}
	if _, ok := s.images[handle]; !ok {
		s.setErr(weekit.CodeBadHandle, "DestroyImage")
		return
	}
	delete(s.images, handle)
}

// ReadPixels copies a window region of the back image as non-premultiplied
// R, G, B, A bytes, bottom row first. Pixels outside the window read as
// zero. It fails with weekit.ErrSessionClosed once the surface is closed.
func (s *Surface) ReadPixels(dst []byte, x, y, w, h int) error {
	if s.closed {
		return weekit.ErrSessionClosed
	}
	if w <= 0 || h <= 0 || len(dst) < w*h*4 {
		return &weekit.DrawError{Code: weekit.CodeIllegalArgument, Op: "ReadPixels"}
	}
	clear(dst[:w*h*4])
	height := s.back.Rect.Dy()
	for j := 0; j < h; j++ {
		dy := height - 1 - (y + j)
		if dy < 0 || dy >= height {
			continue
		}
		for i := 0; i < w; i++ {
			dx := x + i
			if dx < 0 || dx >= s.back.Rect.Dx() {
				continue
			}
			c := color.NRGBAModel.Convert(s.back.RGBAAt(dx, dy)).(color.NRGBA)
			o := (j*w + i) * 4
			dst[o+0], dst[o+1], dst[o+2], dst[o+3] = c.R, c.G, c.B, c.A
		}
	}
	return nil
}

func (s *Surface) Err() error {
	err := s.err
	s.err = nil
	return err
}

func (s *Surface) Swap() error {
	if s.closed {
		return weekit.ErrSessionClosed
	}
	copy(s.front.Pix, s.back.Pix)
	s.frames++
	return nil
}

func (s *Surface) SetOpacity(alpha uint8) error {
	s.opacity = alpha
	return nil
}

func (s *Surface) Move(x, y int) error {
	s.window = s.window.Add(image.Pt(x, y).Sub(s.window.Min))
	return nil
}

func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	copy(s.front.Pix, s.back.Pix)
	s.closed = true
	s.images = nil
	s.platform.release()
	return nil
}

// Frame returns a copy of the last presented frame, top row first.
func (s *Surface) Frame() *image.RGBA {
	out := image.NewRGBA(s.front.Rect)
	copy(out.Pix, s.front.Pix)
	return out
}

// FrameInto copies the last presented frame into dst, which must hold
// the window size in premultiplied RGBA bytes, top row first.
func (s *Surface) FrameInto(dst []byte) { copy(dst, s.front.Pix) }

// Frames returns how many frames have been presented.
func (s *Surface) Frames() int { return s.frames }

// Opacity returns the window opacity last set.
func (s *Surface) Opacity() uint8 { return s.opacity }

// Window returns the window rectangle in screen coordinates.
func (s *Surface) Window() image.Rectangle { return s.window }
