package weekit

const fillStroke = PaintFill | PaintStroke

// Rect draws a filled and stroked rectangle with its lower-left corner at
// (x, y).
func (c *Canvas) Rect(x, y, w, h float32) {
	p := c.path()
	p.Rect(x, y, w, h)
	c.draw(p, fillStroke)
}

// RectOutline strokes a rectangle.
func (c *Canvas) RectOutline(x, y, w, h float32) {
	p := c.path()
	p.Rect(x, y, w, h)
	c.draw(p, PaintStroke)
}

// Square is Rect with equal sides.
func (c *Canvas) Square(x, y, s float32) {
	c.Rect(x, y, s, s)
}

// RoundRect draws a rectangle whose corners are quarter ellipses of
// diameter rw by rh.
func (c *Canvas) RoundRect(x, y, w, h, rw, rh float32) {
	p := c.path()
	p.RoundRect(x, y, w, h, rw, rh)
	c.draw(p, fillStroke)
}

// RoundRectOutline strokes a rounded rectangle.
func (c *Canvas) RoundRectOutline(x, y, w, h, rw, rh float32) {
	p := c.path()
	p.RoundRect(x, y, w, h, rw, rh)
	c.draw(p, PaintStroke)
}

// Ellipse draws an ellipse centered at (x, y) with full width w and
// height h.
func (c *Canvas) Ellipse(x, y, w, h float32) {
	p := c.path()
	p.Ellipse(x, y, w, h)
	c.draw(p, fillStroke)
}

// EllipseOutline strokes an ellipse.
func (c *Canvas) EllipseOutline(x, y, w, h float32) {
	p := c.path()
	p.Ellipse(x, y, w, h)
	c.draw(p, PaintStroke)
}

// Circle draws a circle centered at (x, y). The size d is the diameter.
func (c *Canvas) Circle(x, y, d float32) {
	c.Ellipse(x, y, d, d)
}

// CircleOutline strokes a circle of diameter d.
func (c *Canvas) CircleOutline(x, y, d float32) {
	c.EllipseOutline(x, y, d, d)
}

// Arc draws an open elliptical arc of full width w and height h centered
// at (x, y), from startDeg sweeping extentDeg degrees.
func (c *Canvas) Arc(x, y, w, h, startDeg, extentDeg float32) {
	p := c.path()
	p.Arc(x, y, w, h, startDeg, extentDeg)
	c.draw(p, fillStroke)
}

// ArcOutline strokes an open elliptical arc.
func (c *Canvas) ArcOutline(x, y, w, h, startDeg, extentDeg float32) {
	p := c.path()
	p.Arc(x, y, w, h, startDeg, extentDeg)
	c.draw(p, PaintStroke)
}

// CBezier draws a cubic Bezier from (sx, sy) through controls (cx, cy)
// and (px, py) to (ex, ey).
func (c *Canvas) CBezier(sx, sy, cx, cy, px, py, ex, ey float32) {
	c.draw(c.cubic(sx, sy, cx, cy, px, py, ex, ey), fillStroke)
}

// CBezierOutline strokes a cubic Bezier.
func (c *Canvas) CBezierOutline(sx, sy, cx, cy, px, py, ex, ey float32) {
	c.draw(c.cubic(sx, sy, cx, cy, px, py, ex, ey), PaintStroke)
}

// QBezier draws a quadratic Bezier from (sx, sy) through (cx, cy) to
// (ex, ey).
func (c *Canvas) QBezier(sx, sy, cx, cy, ex, ey float32) {
	c.draw(c.quad(sx, sy, cx, cy, ex, ey), fillStroke)
}

// QBezierOutline strokes a quadratic Bezier.
func (c *Canvas) QBezierOutline(sx, sy, cx, cy, ex, ey float32) {
	c.draw(c.quad(sx, sy, cx, cy, ex, ey), PaintStroke)
}

func (c *Canvas) cubic(sx, sy, cx, cy, px, py, ex, ey float32) *Path {
	p := c.path()
	p.MoveTo(sx, sy)
	p.CubicTo(cx, cy, px, py, ex, ey)
	return p
}

func (c *Canvas) quad(sx, sy, cx, cy, ex, ey float32) *Path {
	p := c.path()
	p.MoveTo(sx, sy)
	p.QuadTo(cx, cy, ex, ey)
	return p
}

// Line strokes a line from (x1, y1) to (x2, y2).
func (c *Canvas) Line(x1, y1, x2, y2 float32) {
	p := c.path()
	p.Line(x1, y1, x2, y2)
	c.draw(p, PaintStroke)
}

// Polygon fills the polygon with vertices at the paired x and y values.
// Extra values in the longer slice are ignored.
func (c *Canvas) Polygon(x, y []float32) {
	c.poly(x, y, PaintFill)
}

// Polyline strokes the open polyline through the paired x and y values.
func (c *Canvas) Polyline(x, y []float32) {
	c.poly(x, y, PaintStroke)
}

func (c *Canvas) poly(x, y []float32, mode PaintMode) {
	p := c.path()
	p.Polygon(Interleave(x, y), false)
	c.draw(p, mode)
}

// DrawPath submits a caller-built path.
func (c *Canvas) DrawPath(p *Path, mode PaintMode) {
	c.draw(p, mode)
}
