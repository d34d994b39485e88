package weekit

import "image"

// Canvas is the drawing layer of a Session. Every primitive builds a
// transient path, submits it to the surface with the ambient paint, stroke,
// transform and scissor state, and drops it.
//
// Coordinates are window pixels with the origin at the bottom-left.
// Drawing after Session.Finish is a no-op.
type Canvas struct {
	s    *Session
	surf Surface
	w, h int

	matrix Matrix
	fill   Paint
	stroke Paint
	style  StrokeStyle
	rule   FillRule
	clear  Color
	clip   image.Rectangle

	scratch *Path
}

func newCanvas(s *Session) *Canvas {
	w, h := s.Size()
	c := &Canvas{
		s:       s,
		surf:    s.surface,
		w:       w,
		h:       h,
		matrix:  Identity(),
		scratch: NewPath(),
	}
	c.Background(255, 255, 255)
	c.Reset()
	c.LoadIdentity()
	return c
}

// release detaches the canvas from its surface.
func (c *Canvas) release() {
	c.surf = nil
}

func (c *Canvas) live() bool {
	return c.surf != nil
}

// Size returns the window size the canvas draws into.
func (c *Canvas) Size() (w, h int) { return c.w, c.h }

// path returns the scratch path, emptied.
func (c *Canvas) path() *Path {
	c.scratch.Reset()
	return c.scratch
}

func (c *Canvas) draw(p *Path, mode PaintMode) {
	if !c.live() || p.Len() == 0 {
		return
	}
	c.surf.DrawPath(p, mode)
}

// Reset sets black fill and stroke paints and a stroke width of zero.
func (c *Canvas) Reset() {
	c.Fill(0, 0, 0, 1)
	c.Stroke(0, 0, 0, 1)
	c.StrokeWidth(0)
}

// Background clears the whole window to an opaque color and keeps it as
// the clear color.
func (c *Canvas) Background(r, g, b uint32) {
	c.setClear(RGB(r, g, b))
	c.WindowClear()
}

// BackgroundRGBA is Background with alpha.
func (c *Canvas) BackgroundRGBA(r, g, b uint32, a float32) {
	c.setClear(RGBA(r, g, b, a))
	c.WindowClear()
}

func (c *Canvas) setClear(col Color) {
	c.clear = col
	if c.live() {
		c.surf.SetClearColor(col)
	}
}

// WindowClear clears the window to the current clear color.
func (c *Canvas) WindowClear() {
	c.AreaClear(0, 0, c.w, c.h)
}

// AreaClear clears a rectangle in window coordinates. The transform does
// not apply.
func (c *Canvas) AreaClear(x, y, w, h int) {
	if !c.live() {
		return
	}
	c.surf.Clear(image.Rect(x, y, x+w, y+h))
}

// ClipRect limits drawing to a window-space rectangle. The transform does
// not apply to it.
func (c *Canvas) ClipRect(x, y, w, h int) {
	c.clip = image.Rect(x, y, x+w, y+h)
	if c.live() {
		c.surf.SetScissor(c.clip, true)
	}
}

// ClipEnd disables clipping.
func (c *Canvas) ClipEnd() {
	c.clip = image.Rectangle{}
	if c.live() {
		c.surf.SetScissor(image.Rectangle{}, false)
	}
}

// Clip returns the active clip rectangle, or an empty rectangle when
// clipping is off.
func (c *Canvas) Clip() image.Rectangle { return c.clip }

// Matrix returns the current user-to-surface transform.
func (c *Canvas) Matrix() Matrix { return c.matrix }

// SetMatrix replaces the current transform.
func (c *Canvas) SetMatrix(m Matrix) {
	c.matrix = m
	if c.live() {
		c.surf.SetMatrix(m)
	}
}

// LoadIdentity resets the transform.
func (c *Canvas) LoadIdentity() {
	c.SetMatrix(Identity())
}

// Translate moves the origin to (x, y) in the current user space.
func (c *Canvas) Translate(x, y float32) {
	c.SetMatrix(c.matrix.Multiply(TranslateMatrix(float64(x), float64(y))))
}

// Rotate rotates user space counter-clockwise by deg degrees.
func (c *Canvas) Rotate(deg float32) {
	c.SetMatrix(c.matrix.Multiply(RotateMatrix(float64(deg))))
}

// Scale scales user space.
func (c *Canvas) Scale(x, y float32) {
	c.SetMatrix(c.matrix.Multiply(ScaleMatrix(float64(x), float64(y))))
}

// Shear shears user space by the factors shx and shy.
func (c *Canvas) Shear(shx, shy float32) {
	c.SetMatrix(c.matrix.Multiply(ShearMatrix(float64(shx), float64(shy))))
}
