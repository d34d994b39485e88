// Package path holds the float64 outline type shared by the software
// stroker and rasterizer, and curve flattening.
package path

import "math"

// Point is a 2D point.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point        { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point        { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Mul(s float64) Point      { return Point{X: p.X * s, Y: p.Y * s} }
func (p Point) Dot(q Point) float64      { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64    { return p.X*q.Y - p.Y*q.X }
func (p Point) Length() float64          { return math.Hypot(p.X, p.Y) }
func (p Point) Distance(q Point) float64 { return p.Sub(q).Length() }
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Op is an outline command.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	QuadTo
	CubicTo
	Close
)

// Points returns how many points the command consumes.
func (op Op) Points() int {
	switch op {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	}
	return 0
}

// Outline is a command list with the points each command consumes.
type Outline struct {
	Ops []Op
	Pts []Point
}

func (o *Outline) MoveTo(p Point) {
	o.Ops = append(o.Ops, MoveTo)
	o.Pts = append(o.Pts, p)
}

func (o *Outline) LineTo(p Point) {
	o.Ops = append(o.Ops, LineTo)
	o.Pts = append(o.Pts, p)
}

func (o *Outline) QuadTo(c, p Point) {
	o.Ops = append(o.Ops, QuadTo)
	o.Pts = append(o.Pts, c, p)
}

func (o *Outline) CubicTo(c1, c2, p Point) {
	o.Ops = append(o.Ops, CubicTo)
	o.Pts = append(o.Pts, c1, c2, p)
}

func (o *Outline) Close() {
	o.Ops = append(o.Ops, Close)
}

// Empty reports whether the outline has no commands.
func (o *Outline) Empty() bool { return len(o.Ops) == 0 }

// Reset empties the outline, keeping its storage.
func (o *Outline) Reset() {
	o.Ops = o.Ops[:0]
	o.Pts = o.Pts[:0]
}

// End returns the last point, or the origin for an empty outline.
func (o *Outline) End() Point {
	if len(o.Pts) == 0 {
		return Point{}
	}
	return o.Pts[len(o.Pts)-1]
}

// Walk calls fn for each command with its points.
func (o *Outline) Walk(fn func(op Op, pts []Point)) {
	i := 0
	for _, op := range o.Ops {
		n := op.Points()
		fn(op, o.Pts[i:i+n])
		i += n
	}
}

// Map returns a copy with every point passed through fn.
func (o *Outline) Map(fn func(Point) Point) *Outline {
	out := &Outline{
		Ops: append([]Op(nil), o.Ops...),
		Pts: make([]Point, len(o.Pts)),
	}
	for i, p := range o.Pts {
		out.Pts[i] = fn(p)
	}
	return out
}

// Append copies every command of other.
func (o *Outline) Append(other *Outline) {
	o.Ops = append(o.Ops, other.Ops...)
	o.Pts = append(o.Pts, other.Pts...)
}

// AppendReversed appends the drawing commands of other traversed from its
// end back to its start. MoveTo and Close commands of other are skipped,
// so other should hold a single subpath.
func (o *Outline) AppendReversed(other *Outline) {
	type seg struct {
		op    Op
		pts   []Point
		start Point
	}
	var segs []seg
	var cur Point
	other.Walk(func(op Op, pts []Point) {
		if op != MoveTo && op != Close {
			segs = append(segs, seg{op, pts, cur})
		}
		if len(pts) > 0 {
			cur = pts[len(pts)-1]
		}
	})
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		switch s.op {
		case LineTo:
			o.LineTo(s.start)
		case QuadTo:
			o.QuadTo(s.pts[0], s.start)
		case CubicTo:
			o.CubicTo(s.pts[1], s.pts[0], s.start)
		}
	}
}

// Bounds returns the bounding box of all points, control points included.
func (o *Outline) Bounds() (minPt, maxPt Point) {
	if len(o.Pts) == 0 {
		return Point{}, Point{}
	}
	minPt, maxPt = o.Pts[0], o.Pts[0]
	for _, p := range o.Pts[1:] {
		minPt.X = math.Min(minPt.X, p.X)
		minPt.Y = math.Min(minPt.Y, p.Y)
		maxPt.X = math.Max(maxPt.X, p.X)
		maxPt.Y = math.Max(maxPt.Y, p.Y)
	}
	return minPt, maxPt
}
