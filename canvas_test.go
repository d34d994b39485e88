package weekit

import (
	"image"
	"math"
	"slices"
	"testing"
)

func TestCanvasPaintModes(t *testing.T) {
	tests := []struct {
		name string
		draw func(c *Canvas)
		want PaintMode
	}{
		{"rect", func(c *Canvas) { c.Rect(0, 0, 10, 10) }, PaintFill | PaintStroke},
		{"rect outline", func(c *Canvas) { c.RectOutline(0, 0, 10, 10) }, PaintStroke},
		{"square", func(c *Canvas) { c.Square(0, 0, 10) }, PaintFill | PaintStroke},
		{"roundrect", func(c *Canvas) { c.RoundRect(0, 0, 10, 10, 2, 2) }, PaintFill | PaintStroke},
		{"roundrect outline", func(c *Canvas) { c.RoundRectOutline(0, 0, 10, 10, 2, 2) }, PaintStroke},
		{"ellipse", func(c *Canvas) { c.Ellipse(5, 5, 10, 4) }, PaintFill | PaintStroke},
		{"ellipse outline", func(c *Canvas) { c.EllipseOutline(5, 5, 10, 4) }, PaintStroke},
		{"circle", func(c *Canvas) { c.Circle(5, 5, 10) }, PaintFill | PaintStroke},
		{"circle outline", func(c *Canvas) { c.CircleOutline(5, 5, 10) }, PaintStroke},
		{"arc", func(c *Canvas) { c.Arc(5, 5, 10, 10, 0, 90) }, PaintFill | PaintStroke},
		{"arc outline", func(c *Canvas) { c.ArcOutline(5, 5, 10, 10, 0, 90) }, PaintStroke},
		{"cbezier", func(c *Canvas) { c.CBezier(0, 0, 1, 2, 3, 4, 5, 0) }, PaintFill | PaintStroke},
		{"cbezier outline", func(c *Canvas) { c.CBezierOutline(0, 0, 1, 2, 3, 4, 5, 0) }, PaintStroke},
		{"qbezier", func(c *Canvas) { c.QBezier(0, 0, 1, 2, 3, 0) }, PaintFill | PaintStroke},
		{"qbezier outline", func(c *Canvas) { c.QBezierOutline(0, 0, 1, 2, 3, 0) }, PaintStroke},
		{"line", func(c *Canvas) { c.Line(0, 0, 10, 10) }, PaintStroke},
		{"polygon", func(c *Canvas) { c.Polygon([]float32{0, 10, 5}, []float32{0, 0, 8}) }, PaintFill},
		{"polyline", func(c *Canvas) { c.Polyline([]float32{0, 10, 5}, []float32{0, 0, 8}) }, PaintStroke},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, surf := newFakeSession(t)
			tt.draw(s.Canvas())
			if len(surf.draws) != 1 {
				t.Fatalf("got %d draws, want 1", len(surf.draws))
			}
			if got := surf.draws[0].mode; got != tt.want {
				t.Errorf("mode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCanvasRectGeometry(t *testing.T) {
	s, surf := newFakeSession(t)
	s.Canvas().Rect(10, 20, 30, 40)

	d := surf.draws[0]
	wantSegs := []Segment{SegMoveTo, SegLineTo, SegLineTo, SegLineTo, SegClose}
	if !slices.Equal(d.segs, wantSegs) {
		t.Errorf("segments = %v, want %v", d.segs, wantSegs)
	}
	wantCoords := []float32{10, 20, 40, 20, 40, 60, 10, 60}
	if !slices.Equal(d.coords, wantCoords) {
		t.Errorf("coords = %v, want %v", d.coords, wantCoords)
	}
}

func TestCanvasPolylineIsOpen(t *testing.T) {
	s, surf := newFakeSession(t)
	s.Canvas().Polyline([]float32{0, 10, 20, 99}, []float32{0, 5, 0})

	d := surf.draws[0]
	if slices.Contains(d.segs, SegClose) {
		t.Errorf("polyline closed: %v", d.segs)
	}
	if len(d.coords) != 6 {
		t.Errorf("got %d coords, want 6 (extra x ignored)", len(d.coords))
	}
}

func TestCanvasPaintState(t *testing.T) {
	s, surf := newFakeSession(t)
	c := s.Canvas()

	c.Fill(255, 0, 0, 0.5)
	c.Stroke(0, 0, 255, 1)
	c.StrokeWidth(3)
	c.Rect(0, 0, 10, 10)

	d := surf.draws[0]
	if want := (Color{1, 0, 0, 0.5}); d.fill.Color != want {
		t.Errorf("fill = %v, want %v", d.fill.Color, want)
	}
	if d.stroke.Color != Blue {
		t.Errorf("stroke = %v, want blue", d.stroke.Color)
	}
	want := StrokeStyle{Width: 3, Cap: CapButt, Join: JoinMiter, MiterLimit: 4}
	if d.style != want {
		t.Errorf("style = %+v, want %+v", d.style, want)
	}
	if c.FillPaint().Color != d.fill.Color || c.StrokeStyle() != want {
		t.Error("canvas accessors disagree with surface state")
	}

	c.Reset()
	if c.FillPaint().Color != Black || c.StrokePaint().Color != Black || c.StrokeStyle().Width != 0 {
		t.Errorf("after Reset: fill %v stroke %v width %v", c.FillPaint().Color, c.StrokePaint().Color, c.StrokeStyle().Width)
	}
}

func TestCanvasGradients(t *testing.T) {
	s, surf := newFakeSession(t)
	c := s.Canvas()
	stops := []ColorStop{{0, Red}, {1, Blue}}

	c.FillLinearGradient(0, 0, 100, 0, stops)
	stops[0].Color = Green
	g := surf.fill.Gradient
	if g == nil || g.Kind != LinearGradient {
		t.Fatalf("fill gradient = %+v, want linear", g)
	}
	if g.Spread != SpreadRepeat {
		t.Errorf("spread = %v, want repeat", g.Spread)
	}
	if g.Stops[0].Color != Red {
		t.Error("gradient aliases the caller's stops")
	}

	c.FillRadialGradient(50, 50, 40, 40, 25, stops)
	g = surf.fill.Gradient
	if g.Kind != RadialGradient || g.R != 25 || g.FX != 40 {
		t.Errorf("radial gradient = %+v", g)
	}
	if surf.stroke.Gradient != nil {
		t.Error("fill gradient changed the stroke paint")
	}
}

func TestCanvasTransform(t *testing.T) {
	s, surf := newFakeSession(t)
	c := s.Canvas()

	c.Translate(100, 50)
	c.Rotate(90)
	c.Scale(2, 2)
	x, y := surf.matrix.Apply(1, 0)
	if !approx(x, 100) || !approx(y, 52) {
		t.Errorf("(1, 0) maps to (%v, %v), want (100, 52)", x, y)
	}

	c.LoadIdentity()
	if !surf.matrix.IsIdentity() || !c.Matrix().IsIdentity() {
		t.Error("LoadIdentity did not reset the transform")
	}

	c.Shear(1, 0)
	x, y = c.Matrix().Apply(0, 1)
	if !approx(x, 1) || !approx(y, 1) {
		t.Errorf("shear maps (0, 1) to (%v, %v), want (1, 1)", x, y)
	}
}

func TestCanvasClip(t *testing.T) {
	s, surf := newFakeSession(t)
	c := s.Canvas()

	c.Translate(1000, 1000)
	c.ClipRect(10, 20, 30, 40)
	if want := image.Rect(10, 20, 40, 60); surf.scissor != want || !surf.clipOn {
		t.Errorf("scissor = %v %v, want %v on", surf.scissor, surf.clipOn, want)
	}
	if c.Clip() != image.Rect(10, 20, 40, 60) {
		t.Errorf("Clip() = %v", c.Clip())
	}

	c.ClipEnd()
	if surf.clipOn || !c.Clip().Empty() {
		t.Error("ClipEnd left clipping on")
	}
}

func TestCanvasFillRule(t *testing.T) {
	s, surf := newFakeSession(t)
	c := s.Canvas()

	if c.FillRule() != EvenOdd {
		t.Errorf("default FillRule() = %d, want EvenOdd", c.FillRule())
	}
	c.SetFillRule(NonZero)
	if surf.rule != NonZero || c.FillRule() != NonZero {
		t.Errorf("rule = %d/%d, want NonZero", surf.rule, c.FillRule())
	}
	if want := []string{"fillrule 1"}; !slices.Equal(surf.log, want) {
		t.Errorf("calls = %v, want %v", surf.log, want)
	}
}

func TestCanvasClear(t *testing.T) {
	s, surf := newFakeSession(t, WithWindow(0, 0, 200, 100))
	c := s.Canvas()

	c.BackgroundRGBA(0, 0, 0, 0.25)
	c.AreaClear(5, 6, 7, 8)
	want := []string{
		"clearcolor",
		"clear (0,0)-(200,100)",
		"clear (5,6)-(12,14)",
	}
	if !slices.Equal(surf.log, want) {
		t.Errorf("calls = %v, want %v", surf.log, want)
	}
	if surf.clear != (Color{0, 0, 0, 0.25}) {
		t.Errorf("clear color = %v", surf.clear)
	}
}

func TestCanvasEmptyPathSkipped(t *testing.T) {
	s, surf := newFakeSession(t)
	s.Canvas().Polygon(nil, nil)
	s.Canvas().DrawPath(NewPath(), PaintFill)
	if len(surf.draws) != 0 {
		t.Errorf("got %d draws, want 0", len(surf.draws))
	}
}

func TestCanvasImages(t *testing.T) {
	s, surf := newFakeSession(t)
	c := s.Canvas()

	img, err := NewImage(2, 2, make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.DrawImage(10, 20, img); err != nil {
		t.Fatal(err)
	}
	if err := c.DrawImage(30, 40, img); err != nil {
		t.Fatal(err)
	}
	if len(surf.images) != 1 {
		t.Errorf("uploaded %d images, want 1", len(surf.images))
	}
	want := []string{"1@10,20 2x2", "1@30,40 2x2"}
	if !slices.Equal(surf.blits, want) {
		t.Errorf("blits = %v, want %v", surf.blits, want)
	}
	img.Destroy()
	if len(surf.images) != 0 {
		t.Error("Destroy left the image uploaded")
	}

	surf.blits = nil
	if err := c.MakeImage(1, 2, 1, 1, []byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if len(surf.blits) != 1 || len(surf.images) != 0 {
		t.Errorf("MakeImage: blits %v, images %d", surf.blits, len(surf.images))
	}
	if err := c.MakeImage(0, 0, 2, 2, []byte{1}); err == nil {
		t.Error("MakeImage accepted a short buffer")
	}
}

func TestCanvasText(t *testing.T) {
	s, surf := newFakeSession(t)
	c := s.Canvas()
	c.Translate(5, 0)

	c.Text(10, 20, "Hi", SansTypeface(), 20)
	if len(surf.draws) != 2 {
		t.Fatalf("got %d glyph draws, want 2", len(surf.draws))
	}
	for i, d := range surf.draws {
		if d.mode != PaintFill|PaintStroke {
			t.Errorf("glyph %d mode = %d", i, d.mode)
		}
	}
	// The glyph origin sits on the baseline, offset by the user transform.
	x, y := surf.draws[0].matrix.Apply(0, 0)
	if !approx(x, 15) || !approx(y, 20) {
		t.Errorf("first glyph origin = (%v, %v), want (15, 20)", x, y)
	}
	if sx, _ := surf.draws[0].matrix.Apply(1, 0); !approx(sx-x, 20) {
		t.Errorf("glyph scale = %v, want 20", sx-x)
	}
	if got := surf.matrix; got != c.Matrix() {
		t.Errorf("transform not restored: %+v", got)
	}

	surf.draws = nil
	c.Text(0, 0, " ", SansTypeface(), 20)
	c.Text(0, 0, "", SansTypeface(), 20)
	c.Text(0, 0, "x", nil, 20)
	if len(surf.draws) != 0 {
		t.Errorf("blank text drew %d glyphs", len(surf.draws))
	}
}

func TestTextMetrics(t *testing.T) {
	f := SansTypeface()
	w1 := TextWidth("m", f, 10)
	w2 := TextWidth("mm", f, 10)
	near := func(a, b float32) bool { return math.Abs(float64(a-b)) < 0.5 }
	if w1 <= 0 || !near(w2, 2*w1) {
		t.Errorf("TextWidth m = %v, mm = %v", w1, w2)
	}
	if got := TextWidth("m", f, 20); !near(got, 2*w1) {
		t.Errorf("TextWidth at 20 = %v, want %v", got, 2*w1)
	}
	if h := TextHeight(f, 20); h <= 0 || h > 30 {
		t.Errorf("TextHeight = %v", h)
	}
	if d := TextDepth(f, 20); d <= 0 || d > TextHeight(f, 20) {
		t.Errorf("TextDepth = %v", d)
	}
	if TextWidth("x", nil, 10) != 0 {
		t.Error("TextWidth with nil font is not zero")
	}
	if MonoTypeface().Name() != "Go Mono" || BoldTypeface() != BoldTypeface() {
		t.Error("typefaces not cached by name")
	}
}

func TestCanvasTextAlignment(t *testing.T) {
	s, surf := newFakeSession(t)
	c := s.Canvas()
	f := SansTypeface()
	w := TextWidth("A", f, 10)

	c.TextEnd(100, 0, "A", f, 10)
	x, _ := surf.draws[0].matrix.Apply(0, 0)
	if !approx(x, float64(100-w)) {
		t.Errorf("TextEnd origin = %v, want %v", x, 100-w)
	}

	surf.draws = nil
	c.TextMid(100, 0, "A", f, 10)
	x, _ = surf.draws[0].matrix.Apply(0, 0)
	if !approx(x, float64(100-w/2)) {
		t.Errorf("TextMid origin = %v, want %v", x, 100-w/2)
	}
}
