package weekit

// Fill sets the fill paint to a solid color from 8-bit channels and alpha.
// See RGBA for how out-of-range values are normalized.
func (c *Canvas) Fill(r, g, b uint32, a float32) {
	c.FillColor(RGBA(r, g, b, a))
}

// Stroke sets the stroke paint to a solid color.
func (c *Canvas) Stroke(r, g, b uint32, a float32) {
	c.StrokeColor(RGBA(r, g, b, a))
}

// FillColor sets the fill paint to a solid color.
func (c *Canvas) FillColor(col Color) {
	c.setPaint(Paint{Color: col}, PaintFill)
}

// StrokeColor sets the stroke paint to a solid color.
func (c *Canvas) StrokeColor(col Color) {
	c.setPaint(Paint{Color: col}, PaintStroke)
}

// FillPaint returns the current fill paint.
func (c *Canvas) FillPaint() Paint { return c.fill }

// StrokePaint returns the current stroke paint.
func (c *Canvas) StrokePaint() Paint { return c.stroke }

func (c *Canvas) setPaint(p Paint, mode PaintMode) {
	if mode&PaintFill != 0 {
		c.fill = p
	}
	if mode&PaintStroke != 0 {
		c.stroke = p
	}
	if c.live() {
		c.surf.SetPaint(p, mode)
	}
}

// StrokeWidth sets the stroke width. It also selects butt caps and miter
// joins.
func (c *Canvas) StrokeWidth(w float32) {
	c.SetStrokeStyle(StrokeStyle{
		Width:      w,
		Cap:        CapButt,
		Join:       JoinMiter,
		MiterLimit: 4,
	})
}

// SetStrokeStyle replaces the whole stroke state.
func (c *Canvas) SetStrokeStyle(s StrokeStyle) {
	c.style = s
	if c.live() {
		c.surf.SetStroke(s)
	}
}

// StrokeStyle returns the current stroke state.
func (c *Canvas) StrokeStyle() StrokeStyle { return c.style }

// SetFillRule selects how fills treat self-intersecting and nested
// subpaths. Strokes are unaffected.
func (c *Canvas) SetFillRule(r FillRule) {
	c.rule = r
	if c.live() {
		c.surf.SetFillRule(r)
	}
}

// FillRule returns the current fill rule.
func (c *Canvas) FillRule() FillRule { return c.rule }

// FillLinearGradient sets the fill paint to a linear ramp from (x1, y1) to
// (x2, y2). The ramp repeats beyond its ends.
func (c *Canvas) FillLinearGradient(x1, y1, x2, y2 float32, stops []ColorStop) {
	c.setPaint(Paint{Gradient: &Gradient{
		Kind:   LinearGradient,
		X1:     x1,
		Y1:     y1,
		X2:     x2,
		Y2:     y2,
		Stops:  append([]ColorStop(nil), stops...),
		Spread: SpreadRepeat,
	}}, PaintFill)
}

// FillRadialGradient sets the fill paint to a radial ramp centered at
// (cx, cy) with focus (fx, fy) and radius r. The ramp repeats beyond its
// ends.
func (c *Canvas) FillRadialGradient(cx, cy, fx, fy, r float32, stops []ColorStop) {
	c.setPaint(Paint{Gradient: &Gradient{
		Kind:   RadialGradient,
		CX:     cx,
		CY:     cy,
		FX:     fx,
		FY:     fy,
		R:      r,
		Stops:  append([]ColorStop(nil), stops...),
		Spread: SpreadRepeat,
	}}, PaintFill)
}
