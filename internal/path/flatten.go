package path

import "math"

// Tolerance is the default maximum distance between a curve and its
// flattened polyline.
const Tolerance = 0.25

// maxDepth bounds subdivision for degenerate input such as NaN points.
const maxDepth = 16

// FlattenQuad returns the polyline approximating a quadratic Bezier,
// starting with p0.
func FlattenQuad(p0, p1, p2 Point, tolerance float64) []Point {
	points := []Point{p0}
	flattenQuadRec(p0, p1, p2, tolerance, 0, &points)
	return points
}

func flattenQuadRec(p0, p1, p2 Point, tolerance float64, depth int, points *[]Point) {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < tolerance {
		*points = append(*points, p2)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)

	flattenQuadRec(p0, q0, q2, tolerance, depth+1, points)
	flattenQuadRec(q2, q1, p2, tolerance, depth+1, points)
}

// FlattenCubic returns the polyline approximating a cubic Bezier,
// starting with p0.
func FlattenCubic(p0, p1, p2, p3 Point, tolerance float64) []Point {
	points := []Point{p0}
	flattenCubicRec(p0, p1, p2, p3, tolerance, 0, &points)
	return points
}

func flattenCubicRec(p0, p1, p2, p3 Point, tolerance float64, depth int, points *[]Point) {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxDepth || dist < tolerance {
		*points = append(*points, p3)
		return
	}

	// de Casteljau split at t = 0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	flattenCubicRec(p0, q0, r0, s, tolerance, depth+1, points)
	flattenCubicRec(s, r1, q2, p3, tolerance, depth+1, points)
}

// distanceToLine is the distance from p to the segment ab.
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()
	if abLen < 1e-10 {
		return p.Distance(a)
	}

	t := p.Sub(a).Dot(ab) / (abLen * abLen)
	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}
