// Copyright 2026 The weekit Authors
// SPDX-License-Identifier: BSD-3-Clause

package stroke

import (
	"math"

	"github.com/weekit/weekit/internal/path"
)

// Cap is the shape at the open ends of a stroke.
type Cap uint8

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join is the shape where two segments meet.
type Join uint8

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Style describes the pen.
type Style struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64
}

// DefaultTolerance is the flattening tolerance used when Expand is given
// a non-positive one.
const DefaultTolerance = 0.25

// Expand returns the fill outline of in stroked with style. A width of
// zero or less strokes nothing.
func Expand(in *path.Outline, style Style, tolerance float64) *path.Outline {
	if style.Width <= 0 || in == nil || in.Empty() {
		return &path.Outline{}
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	e := &expander{
		style:      style,
		tol:        tolerance,
		forward:    &path.Outline{},
		backward:   &path.Outline{},
		out:        &path.Outline{},
		joinThresh: 2 * tolerance / style.Width,
	}

	in.Walk(func(op path.Op, pts []path.Point) {
		switch op {
		case path.MoveTo:
			e.finish()
			e.startPt = pts[0]
			e.lastPt = pts[0]
		case path.LineTo:
			if pts[0] != e.lastPt {
				e.segment(pts[0])
			}
		case path.QuadTo:
			if pts[0] != e.lastPt || pts[1] != e.lastPt {
				e.polyline(path.FlattenQuad(e.lastPt, pts[0], pts[1], e.tol))
			}
		case path.CubicTo:
			if pts[0] != e.lastPt || pts[1] != e.lastPt || pts[2] != e.lastPt {
				e.polyline(path.FlattenCubic(e.lastPt, pts[0], pts[1], pts[2], e.tol))
			}
		case path.Close:
			if e.lastPt != e.startPt {
				e.segment(e.startPt)
			}
			e.finishClosed()
		}
	})
	e.finish()
	return e.out
}

type expander struct {
	style Style
	tol   float64

	forward  *path.Outline
	backward *path.Outline
	out      *path.Outline

	startPt   path.Point
	startNorm path.Point
	startTan  path.Point
	lastPt    path.Point
	lastTan   path.Point
	lastNorm  path.Point

	joinThresh float64
}

// segment strokes a straight line from the current point to p.
func (e *expander) segment(p path.Point) {
	tan := p.Sub(e.lastPt)
	e.join(tan)
	e.lastTan = tan
	e.line(tan, p)
}

func (e *expander) polyline(pts []path.Point) {
	for i := 1; i < len(pts); i++ {
		if d := pts[i].Sub(pts[i-1]); d.Dot(d) > 1e-10 {
			e.segment(pts[i])
		}
	}
}

func (e *expander) normal(tan path.Point) path.Point {
	return perp(tan).Mul(0.5 * e.style.Width / tan.Length())
}

func (e *expander) join(tan path.Point) {
	norm := e.normal(tan)
	p0 := e.lastPt

	if e.forward.Empty() {
		e.forward.MoveTo(p0.Add(norm.Mul(-1)))
		e.backward.MoveTo(p0.Add(norm))
		e.startTan = tan
		e.startNorm = norm
		return
	}

	ab, cd := e.lastTan, tan
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)

	// Nearly straight: connect both sides without a join.
	if dot > 0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward.LineTo(p0.Add(norm.Mul(-1)))
		e.backward.LineTo(p0.Add(norm))
		return
	}

	switch e.style.Join {
	case JoinMiter:
		if 2*hypot < (hypot+dot)*e.style.MiterLimit*e.style.MiterLimit {
			e.miter(p0, norm, ab, cd, cross)
		}
		e.forward.LineTo(p0.Add(norm.Mul(-1)))
		e.backward.LineTo(p0.Add(norm))
	case JoinRound:
		lastNorm := e.normal(ab)
		angle := math.Atan2(cross, dot)
		if angle > 0 {
			e.backward.LineTo(p0.Add(norm))
			arc(e.forward, p0, lastNorm.Mul(-1), angle)
		} else {
			e.forward.LineTo(p0.Add(norm.Mul(-1)))
			arc(e.backward, p0, lastNorm, angle)
		}
	default:
		e.forward.LineTo(p0.Add(norm.Mul(-1)))
		e.backward.LineTo(p0.Add(norm))
	}
}

// miter adds the miter tip on the outer side of the turn.
func (e *expander) miter(p0 path.Point, norm, ab, cd path.Point, cross float64) {
	lastNorm := e.normal(ab)
	switch {
	case cross > 0:
		last := p0.Add(lastNorm.Mul(-1))
		this := p0.Add(norm.Mul(-1))
		h := ab.Cross(this.Sub(last)) / cross
		e.forward.LineTo(this.Add(cd.Mul(-h)))
		e.backward.LineTo(p0)
	case cross < 0:
		last := p0.Add(lastNorm)
		this := p0.Add(norm)
		h := ab.Cross(this.Sub(last)) / cross
		e.backward.LineTo(this.Add(cd.Mul(-h)))
		e.forward.LineTo(p0)
	}
}

func (e *expander) line(tan path.Point, p1 path.Point) {
	norm := e.normal(tan)
	e.forward.LineTo(p1.Add(norm.Mul(-1)))
	e.backward.LineTo(p1.Add(norm))
	e.lastPt = p1
	e.lastNorm = norm
}

// finish closes an open subpath with caps.
func (e *expander) finish() {
	if e.forward.Empty() {
		return
	}
	e.out.Append(e.forward)
	e.cap(e.lastPt, e.lastNorm.Mul(-1), false)
	e.out.AppendReversed(e.backward)
	e.cap(e.startPt, e.startNorm, true)

	e.forward = &path.Outline{}
	e.backward = &path.Outline{}
}

// finishClosed emits a closed subpath as two loops.
func (e *expander) finishClosed() {
	if e.forward.Empty() {
		return
	}
	e.join(e.startTan)

	e.out.Append(e.forward)
	e.out.Close()
	e.out.MoveTo(e.backward.End())
	e.out.AppendReversed(e.backward)
	e.out.Close()

	e.forward = &path.Outline{}
	e.backward = &path.Outline{}
}

// cap crosses from one side of the stroke to the other at center. norm
// points to the side the outline is currently on.
func (e *expander) cap(center path.Point, norm path.Point, closing bool) {
	switch e.style.Cap {
	case CapRound:
		arc(e.out, center, norm, math.Pi)
		if closing {
			e.out.Close()
		}
	case CapSquare:
		// Corners of the square in the frame (norm, norm rotated).
		frame := func(x, y float64) path.Point {
			return path.Point{
				X: norm.X*x - norm.Y*y + center.X,
				Y: norm.Y*x + norm.X*y + center.Y,
			}
		}
		e.out.LineTo(frame(1, 1))
		e.out.LineTo(frame(-1, 1))
		if closing {
			e.out.Close()
		} else {
			e.out.LineTo(frame(-1, 0))
		}
	default:
		if closing {
			e.out.Close()
		} else {
			e.out.LineTo(center.Add(norm.Mul(-1)))
		}
	}
}

// arc appends a circular arc around center starting at center+from and
// turning by angle radians, as cubic segments of at most 90 degrees.
func arc(out *path.Outline, center path.Point, from path.Point, angle float64) {
	n := int(math.Ceil(math.Abs(angle) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := angle / float64(n)
	a := math.Atan2(from.Y, from.X)
	r := from.Length()
	k := 4.0 / 3.0 * math.Tan(step/4)

	for i := 0; i < n; i++ {
		a0, a1 := a, a+step
		cos0, sin0 := math.Cos(a0), math.Sin(a0)
		cos1, sin1 := math.Cos(a1), math.Sin(a1)
		out.CubicTo(
			path.Point{X: center.X + r*(cos0-k*sin0), Y: center.Y + r*(sin0+k*cos0)},
			path.Point{X: center.X + r*(cos1+k*sin1), Y: center.Y + r*(sin1-k*cos1)},
			path.Point{X: center.X + r*cos1, Y: center.Y + r*sin1},
		)
		a = a1
	}
}

func perp(v path.Point) path.Point { return path.Point{X: -v.Y, Y: v.X} }
