package weekit

import "math"

// Segment is a path command. The values are the absolute-coordinate
// OpenVG segment commands, so a Path can be appended to a platform path
// object without translation.
type Segment uint8

const (
	SegClose   Segment = 0  // VG_CLOSE_PATH
	SegMoveTo  Segment = 2  // VG_MOVE_TO_ABS
	SegLineTo  Segment = 4  // VG_LINE_TO_ABS
	SegQuadTo  Segment = 10 // VG_QUAD_TO_ABS
	SegCubicTo Segment = 12 // VG_CUBIC_TO_ABS
)

// Coords returns how many coordinate values follow the command.
func (s Segment) Coords() int {
	switch s {
	case SegMoveTo, SegLineTo:
		return 2
	case SegQuadTo:
		return 4
	case SegCubicTo:
		return 6
	}
	return 0
}

func (s Segment) String() string {
	switch s {
	case SegClose:
		return "close"
	case SegMoveTo:
		return "move"
	case SegLineTo:
		return "line"
	case SegQuadTo:
		return "quad"
	case SegCubicTo:
		return "cubic"
	}
	return "unknown"
}

// Path is vector geometry: a command list and the coordinates they
// consume, in user space with the origin at the bottom-left.
type Path struct {
	Segments []Segment
	Coords   []float32
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{
		Segments: make([]Segment, 0, 8),
		Coords:   make([]float32, 0, 16),
	}
}

// Len returns the number of segments.
func (p *Path) Len() int { return len(p.Segments) }

// Reset empties the path, keeping its storage.
func (p *Path) Reset() {
	p.Segments = p.Segments[:0]
	p.Coords = p.Coords[:0]
}

func (p *Path) MoveTo(x, y float32) {
	p.Segments = append(p.Segments, SegMoveTo)
	p.Coords = append(p.Coords, x, y)
}

func (p *Path) LineTo(x, y float32) {
	p.Segments = append(p.Segments, SegLineTo)
	p.Coords = append(p.Coords, x, y)
}

func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.Segments = append(p.Segments, SegQuadTo)
	p.Coords = append(p.Coords, cx, cy, x, y)
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.Segments = append(p.Segments, SegCubicTo)
	p.Coords = append(p.Coords, c1x, c1y, c2x, c2y, x, y)
}

func (p *Path) Close() {
	p.Segments = append(p.Segments, SegClose)
}

// Walk calls fn for every segment with the coordinates it consumes.
// The coords slice aliases the path's storage.
func (p *Path) Walk(fn func(seg Segment, coords []float32)) {
	i := 0
	for _, seg := range p.Segments {
		n := seg.Coords()
		if i+n > len(p.Coords) {
			return
		}
		fn(seg, p.Coords[i:i+n])
		i += n
	}
}

// Transform returns a copy of the path with every point mapped by m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{
		Segments: append([]Segment(nil), p.Segments...),
		Coords:   make([]float32, len(p.Coords)),
	}
	for i := 0; i+1 < len(p.Coords); i += 2 {
		x, y := m.Apply(float64(p.Coords[i]), float64(p.Coords[i+1]))
		out.Coords[i] = float32(x)
		out.Coords[i+1] = float32(y)
	}
	return out
}

// Rect appends a rectangle with its lower-left corner at (x, y). It
// appends nothing unless w and h are positive.
func (p *Path) Rect(x, y, w, h float32) {
	if !positive(w, h) {
		return
	}
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// RoundRect appends a rectangle whose corners are quarter ellipses of
// diameter rw by rh. Diameters are clamped to the rectangle size. It
// appends nothing unless w and h are positive.
func (p *Path) RoundRect(x, y, w, h, rw, rh float32) {
	if !positive(w, h) {
		return
	}
	if rw < 0 {
		rw = 0
	}
	if rh < 0 {
		rh = 0
	}
	if rw > w {
		rw = w
	}
	if rh > h {
		rh = h
	}
	rx, ry := rw/2, rh/2

	p.MoveTo(x+rx, y)
	p.LineTo(x+w-rx, y)
	p.ellipseArc(x+w-rx, y+ry, rx, ry, -90, 0, false)
	p.LineTo(x+w, y+h-ry)
	p.ellipseArc(x+w-rx, y+h-ry, rx, ry, 0, 90, false)
	p.LineTo(x+rx, y+h)
	p.ellipseArc(x+rx, y+h-ry, rx, ry, 90, 180, false)
	p.LineTo(x, y+ry)
	p.ellipseArc(x+rx, y+ry, rx, ry, 180, 270, false)
	p.Close()
}

// Ellipse appends an ellipse centered at (cx, cy) with full width w and
// height h. It appends nothing unless w and h are positive.
func (p *Path) Ellipse(cx, cy, w, h float32) {
	if !positive(w, h) {
		return
	}
	p.ellipseArc(cx, cy, w/2, h/2, 0, 360, true)
	p.Close()
}

// Arc appends an open elliptical arc of full width w and height h centered
// at (x, y), starting at startDeg and sweeping extentDeg degrees
// counter-clockwise (clockwise when negative). The extent is limited to
// one full turn. It appends nothing unless w and h are positive.
func (p *Path) Arc(x, y, w, h, startDeg, extentDeg float32) {
	if !positive(w, h) {
		return
	}
	extentDeg = min(max(extentDeg, -360), 360)
	p.ellipseArc(x, y, w/2, h/2, startDeg, startDeg+extentDeg, true)
}

// Line appends a single line segment.
func (p *Path) Line(x1, y1, x2, y2 float32) {
	p.MoveTo(x1, y1)
	p.LineTo(x2, y2)
}

// Polygon appends a polyline through interleaved x, y points.
// When closed is set the last point connects back to the first.
func (p *Path) Polygon(points []float32, closed bool) {
	n := len(points) / 2
	if n == 0 {
		return
	}
	p.MoveTo(points[0], points[1])
	for i := 1; i < n; i++ {
		p.LineTo(points[2*i], points[2*i+1])
	}
	if closed {
		p.Close()
	}
}

// ellipseArc approximates the arc from a1 to a2 degrees with cubic
// Beziers of at most 90 degrees each. It starts a new subpath when move is
// set, otherwise it continues from the current point.
func (p *Path) ellipseArc(cx, cy, rx, ry, a1, a2 float32, move bool) {
	start := float64(a1) * math.Pi / 180
	sweep := float64(a2-a1) * math.Pi / 180

	x0 := float64(cx) + float64(rx)*math.Cos(start)
	y0 := float64(cy) + float64(ry)*math.Sin(start)
	if move {
		p.MoveTo(float32(x0), float32(y0))
	}
	if sweep == 0 || math.IsNaN(sweep) || math.IsInf(sweep, 0) {
		return
	}

	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	for i := 0; i < n; i++ {
		t1 := start + float64(i)*step
		t2 := t1 + step
		cos1, sin1 := math.Cos(t1), math.Sin(t1)
		cos2, sin2 := math.Cos(t2), math.Sin(t2)

		c1x := cos1 - k*sin1
		c1y := sin1 + k*cos1
		c2x := cos2 + k*sin2
		c2y := sin2 - k*cos2

		p.CubicTo(
			cx+rx*float32(c1x), cy+ry*float32(c1y),
			cx+rx*float32(c2x), cy+ry*float32(c2y),
			cx+rx*float32(cos2), cy+ry*float32(sin2),
		)
	}
}

// positive reports whether both sizes are greater than zero. NaN is not.
func positive(w, h float32) bool {
	return w > 0 && h > 0
}

// Interleave merges parallel x and y slices into x0, y0, x1, y1, ...
// The shorter slice bounds the result.
func Interleave(x, y []float32) []float32 {
	n := min(len(x), len(y))
	points := make([]float32, 2*n)
	for i := 0; i < n; i++ {
		points[2*i] = x[i]
		points[2*i+1] = y[i]
	}
	return points
}
