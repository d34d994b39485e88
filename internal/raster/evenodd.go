// Copyright 2026 The weekit Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"image/draw"
	"math"

	"github.com/weekit/weekit/internal/path"
)

// FillEvenOdd is Fill with the even-odd rule: a point is inside when a
// ray from it crosses the outline an odd number of times.
func (f *Filler) FillEvenOdd(dst draw.Image, clip image.Rectangle, o *path.Outline, src image.Image) {
	if o == nil || o.Empty() {
		return
	}
	clip = clip.Intersect(dst.Bounds()).Intersect(Bounds(o))
	if clip.Empty() {
		return
	}

	a := &f.acc
	a.reset(clip.Dx(), clip.Dy())
	off := path.Point{X: float64(clip.Min.X), Y: float64(clip.Min.Y)}

	var start, pen path.Point
	open := false
	closePath := func() {
		if open {
			a.line(pen, start)
		}
		open = false
	}
	o.Walk(func(op path.Op, pts []path.Point) {
		switch op {
		case path.MoveTo:
			closePath()
			start, pen = pts[0].Sub(off), pts[0].Sub(off)
			open = true
		case path.LineTo:
			p := pts[0].Sub(off)
			a.line(pen, p)
			pen = p
		case path.QuadTo:
			poly := path.FlattenQuad(pen, pts[0].Sub(off), pts[1].Sub(off), path.Tolerance)
			pen = a.polyline(poly)
		case path.CubicTo:
			poly := path.FlattenCubic(pen, pts[0].Sub(off), pts[1].Sub(off), pts[2].Sub(off), path.Tolerance)
			pen = a.polyline(poly)
		case path.Close:
			closePath()
			pen = start
		}
	})
	closePath()

	draw.DrawMask(dst, clip, src, clip.Min, a.mask(), image.Point{}, draw.Over)
}

// accumulator collects signed area per pixel. Each row has one extra
// cell that takes contributions right of the last pixel.
type accumulator struct {
	w, h  int
	cells []float32
	alpha *image.Alpha
}

func (a *accumulator) reset(w, h int) {
	a.w, a.h = w, h
	n := (w + 1) * h
	if cap(a.cells) < n {
		a.cells = make([]float32, n)
	} else {
		a.cells = a.cells[:n]
		clear(a.cells)
	}
	if a.alpha == nil || a.alpha.Rect.Dx() != w || a.alpha.Rect.Dy() != h {
		a.alpha = image.NewAlpha(image.Rect(0, 0, w, h))
	}
}

func (a *accumulator) polyline(pts []path.Point) path.Point {
	for i := 1; i < len(pts); i++ {
		a.line(pts[i-1], pts[i])
	}
	return pts[len(pts)-1]
}

func (a *accumulator) add(row []float32, x int, v float64) {
	row[min(max(x, 0), a.w)] += float32(v)
}

// line adds the signed area right of segment p-q, one row at a time.
func (a *accumulator) line(p, q path.Point) {
	dir := 1.0
	if p.Y > q.Y {
		dir, p, q = -1, q, p
	}
	if q.Y-p.Y <= 1e-6 || math.IsNaN(p.X) || math.IsNaN(q.X) {
		return
	}
	dxdy := (q.X - p.X) / (q.Y - p.Y)

	x := p.X
	yMax := min(int(math.Ceil(q.Y)), a.h)
	for y := int(math.Floor(p.Y)); y < yMax; y++ {
		dy := math.Min(float64(y+1), q.Y) - math.Max(float64(y), p.Y)
		xNext := x + dy*dxdy
		if y < 0 {
			x = xNext
			continue
		}
		row := a.cells[y*(a.w+1) : (y+1)*(a.w+1)]
		d := dy * dir
		x0, x1 := math.Min(x, xNext), math.Max(x, xNext)
		x0i := int(math.Floor(x0))
		x1i := int(math.Ceil(x1))

		if x1i <= x0i+1 {
			// The segment stays within one pixel column.
			xm := 0.5*(x+xNext) - float64(x0i)
			a.add(row, x0i, d-d*xm)
			a.add(row, x0i+1, d*xm)
			x = xNext
			continue
		}

		s := 1 / (x1 - x0)
		x0f := x0 - float64(x0i)
		a0 := 0.5 * s * (1 - x0f) * (1 - x0f)
		x1f := x1 - float64(x1i) + 1
		am := 0.5 * s * x1f * x1f

		a.add(row, x0i, d*a0)
		if x1i == x0i+2 {
			a.add(row, x0i+1, d*(1-a0-am))
		} else {
			a1 := s * (1.5 - x0f)
			a.add(row, x0i+1, d*(a1-a0))
			for xi := x0i + 2; xi < x1i-1; xi++ {
				a.add(row, xi, d*s)
			}
			a2 := a1 + s*float64(x1i-x0i-3)
			a.add(row, x1i-1, d*(1-a2-am))
		}
		a.add(row, x1i, d*am)
		x = xNext
	}
}

// mask turns the accumulated area into even-odd coverage.
func (a *accumulator) mask() *image.Alpha {
	for y := 0; y < a.h; y++ {
		row := a.cells[y*(a.w+1):]
		pix := a.alpha.Pix[y*a.alpha.Stride:]
		var acc float64
		for x := 0; x < a.w; x++ {
			acc += float64(row[x])
			pix[x] = uint8(255.99 * evenOdd(acc))
		}
	}
	return a.alpha
}

// evenOdd folds a winding area into [0, 1]: 1 is full, 2 is empty again.
func evenOdd(area float64) float64 {
	v := math.Mod(math.Abs(area), 2)
	if v > 1 {
		v = 2 - v
	}
	return v
}
