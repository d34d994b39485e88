package weekit

// Text draws s with its baseline starting at (x, y), at pointsize pixels
// per em. Glyphs are filled and stroked with the current paints.
func (c *Canvas) Text(x, y float32, s string, f *Font, pointsize float32) {
	if !c.live() || f == nil {
		return
	}
	glyphs, _ := f.shape(s, pointsize)
	if len(glyphs) == 0 {
		return
	}

	saved := c.matrix
	for _, g := range glyphs {
		outline := f.outline(g.id)
		if outline.Len() == 0 {
			continue
		}
		m := saved.
			Multiply(TranslateMatrix(float64(x+g.x), float64(y+g.y))).
			Multiply(ScaleMatrix(float64(pointsize), float64(pointsize)))
		c.surf.SetMatrix(m)
		c.surf.DrawPath(outline, fillStroke)
	}
	c.surf.SetMatrix(saved)
}

// TextMid draws s centered on x.
func (c *Canvas) TextMid(x, y float32, s string, f *Font, pointsize float32) {
	c.Text(x-TextWidth(s, f, pointsize)/2, y, s, f, pointsize)
}

// TextEnd draws s ending at x.
func (c *Canvas) TextEnd(x, y float32, s string, f *Font, pointsize float32) {
	c.Text(x-TextWidth(s, f, pointsize), y, s, f, pointsize)
}

// TextWidth returns the advance width of s.
func TextWidth(s string, f *Font, pointsize float32) float32 {
	if f == nil {
		return 0
	}
	_, w := f.shape(s, pointsize)
	return w
}

// TextHeight returns how far the font rises above the baseline.
func TextHeight(f *Font, pointsize float32) float32 {
	if f == nil {
		return 0
	}
	a, _ := f.metrics(pointsize)
	return a
}

// TextDepth returns how far the font goes below the baseline.
func TextDepth(f *Font, pointsize float32) float32 {
	if f == nil {
		return 0
	}
	_, d := f.metrics(pointsize)
	return d
}
