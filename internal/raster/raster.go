// Copyright 2026 The weekit Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster fills outlines into RGBA images with anti-aliasing.
//
// Fill accumulates signed area clamped to one, so overlapping subpaths of
// the same winding do not darken and stroke outlines made of two opposite
// loops leave their interior empty. FillEvenOdd folds the accumulated
// area modulo two, so regions covered twice come out empty.
package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/weekit/weekit/internal/path"
)

// Filler rasterizes outlines. The zero value is ready to use and reuses
// its coverage buffer between calls.
type Filler struct {
	r   vector.Rasterizer
	acc accumulator
}

// Fill composites src over dst through the coverage of o, limited to clip.
// Outline coordinates are in dst pixel space and src is sampled at the
// same coordinates.
func (f *Filler) Fill(dst draw.Image, clip image.Rectangle, o *path.Outline, src image.Image) {
	if o == nil || o.Empty() {
		return
	}
	clip = clip.Intersect(dst.Bounds()).Intersect(Bounds(o))
	if clip.Empty() {
		return
	}

	f.r.Reset(clip.Dx(), clip.Dy())
	f.r.DrawOp = draw.Over

	dx, dy := float64(clip.Min.X), float64(clip.Min.Y)
	pt := func(p path.Point) (float32, float32) {
		return float32(p.X - dx), float32(p.Y - dy)
	}

	open := false
	o.Walk(func(op path.Op, pts []path.Point) {
		switch op {
		case path.MoveTo:
			if open {
				f.r.ClosePath()
			}
			f.r.MoveTo(pt(pts[0]))
			open = true
		case path.LineTo:
			f.r.LineTo(pt(pts[0]))
		case path.QuadTo:
			x1, y1 := pt(pts[0])
			x2, y2 := pt(pts[1])
			f.r.QuadTo(x1, y1, x2, y2)
		case path.CubicTo:
			x1, y1 := pt(pts[0])
			x2, y2 := pt(pts[1])
			x3, y3 := pt(pts[2])
			f.r.CubeTo(x1, y1, x2, y2, x3, y3)
		case path.Close:
			if open {
				f.r.ClosePath()
			}
			open = false
		}
	})
	if open {
		f.r.ClosePath()
	}

	f.r.Draw(dst, clip, src, clip.Min)
}

// Bounds returns the pixel rectangle covering every point of o.
func Bounds(o *path.Outline) image.Rectangle {
	if o.Empty() {
		return image.Rectangle{}
	}
	minPt, maxPt := o.Bounds()
	if anyNaN(minPt, maxPt) {
		return image.Rectangle{}
	}
	return image.Rect(
		clampInt(math.Floor(minPt.X)), clampInt(math.Floor(minPt.Y)),
		clampInt(math.Ceil(maxPt.X)), clampInt(math.Ceil(maxPt.Y)),
	)
}

func anyNaN(pts ...path.Point) bool {
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return true
		}
	}
	return false
}

const maxCoord = 1 << 24

func clampInt(v float64) int {
	switch {
	case v < -maxCoord:
		return -maxCoord
	case v > maxCoord:
		return maxCoord
	}
	return int(v)
}
