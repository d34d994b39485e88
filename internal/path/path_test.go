package path

import (
	"math"
	"testing"
)

func TestFlattenQuad(t *testing.T) {
	p0, p1, p2 := Point{0, 0}, Point{50, 100}, Point{100, 0}
	pts := FlattenQuad(p0, p1, p2, Tolerance)
	if len(pts) < 4 {
		t.Fatalf("got %d points, want a subdivided curve", len(pts))
	}
	if pts[0] != p0 || pts[len(pts)-1] != p2 {
		t.Errorf("endpoints = %v, %v", pts[0], pts[len(pts)-1])
	}
	// The apex of this quad is at (50, 50).
	var top float64
	for _, p := range pts {
		top = math.Max(top, p.Y)
	}
	if math.Abs(top-50) > 1 {
		t.Errorf("apex = %v, want about 50", top)
	}
}

func TestFlattenStraight(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
	}{
		{"quad", FlattenQuad(Point{0, 0}, Point{5, 0}, Point{10, 0}, Tolerance)},
		{"cubic", FlattenCubic(Point{0, 0}, Point{3, 0}, Point{6, 0}, Point{10, 0}, Tolerance)},
	}
	for _, tt := range tests {
		if len(tt.pts) != 2 {
			t.Errorf("%s: got %d points for a straight curve, want 2", tt.name, len(tt.pts))
		}
	}
}

func TestFlattenCubicTolerance(t *testing.T) {
	p0, p1, p2, p3 := Point{0, 0}, Point{0, 100}, Point{100, 100}, Point{100, 0}
	coarse := FlattenCubic(p0, p1, p2, p3, 10)
	fine := FlattenCubic(p0, p1, p2, p3, 0.1)
	if len(fine) <= len(coarse) {
		t.Errorf("fine = %d points, coarse = %d", len(fine), len(coarse))
	}
	// NaN input terminates.
	nan := math.NaN()
	if pts := FlattenCubic(p0, Point{nan, nan}, p2, p3, Tolerance); len(pts) == 0 {
		t.Error("no points for NaN control")
	}
}

func TestOutline(t *testing.T) {
	var o Outline
	if !o.Empty() || o.End() != (Point{}) {
		t.Fatal("zero outline not empty")
	}
	o.MoveTo(Point{0, 0})
	o.LineTo(Point{10, 0})
	o.QuadTo(Point{15, 5}, Point{10, 10})
	o.CubicTo(Point{5, 15}, Point{-5, 15}, Point{0, 10})
	o.Close()

	if o.End() != (Point{0, 10}) {
		t.Errorf("End() = %v", o.End())
	}
	minPt, maxPt := o.Bounds()
	if minPt != (Point{-5, 0}) || maxPt != (Point{15, 15}) {
		t.Errorf("Bounds() = %v, %v", minPt, maxPt)
	}

	var ops []Op
	n := 0
	o.Walk(func(op Op, pts []Point) {
		ops = append(ops, op)
		n += len(pts)
	})
	if len(ops) != 5 || n != len(o.Pts) {
		t.Errorf("walked %v with %d points", ops, n)
	}

	m := o.Map(func(p Point) Point { return p.Mul(2) })
	if m.End() != (Point{0, 20}) || o.End() != (Point{0, 10}) {
		t.Error("Map result or source wrong")
	}

	o.Reset()
	if !o.Empty() || len(o.Pts) != 0 {
		t.Error("Reset left data")
	}
}

func TestAppendReversed(t *testing.T) {
	var src Outline
	src.MoveTo(Point{0, 0})
	src.LineTo(Point{10, 0})
	src.CubicTo(Point{11, 1}, Point{12, 2}, Point{13, 3})

	var dst Outline
	dst.MoveTo(Point{13, 3})
	dst.AppendReversed(&src)

	if len(dst.Ops) != 3 || dst.Ops[1] != CubicTo || dst.Ops[2] != LineTo {
		t.Fatalf("ops = %v", dst.Ops)
	}
	wantPts := []Point{{13, 3}, {12, 2}, {11, 1}, {10, 0}, {0, 0}}
	for i, p := range wantPts {
		if dst.Pts[i] != p {
			t.Errorf("pts[%d] = %v, want %v", i, dst.Pts[i], p)
		}
	}
}

func TestPointMath(t *testing.T) {
	a, b := Point{3, 4}, Point{1, 0}
	if a.Length() != 5 {
		t.Errorf("Length = %v", a.Length())
	}
	if a.Dot(b) != 3 || a.Cross(b) != -4 {
		t.Errorf("Dot = %v, Cross = %v", a.Dot(b), a.Cross(b))
	}
	if got := a.Lerp(b, 0.5); got != (Point{2, 2}) {
		t.Errorf("Lerp = %v", got)
	}
	if a.Distance(b) != math.Hypot(2, 4) {
		t.Errorf("Distance = %v", a.Distance(b))
	}
}
