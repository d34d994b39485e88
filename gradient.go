package weekit

import (
	"math"
	"sort"
)

// Spread defines how a gradient extends beyond its [0, 1] ramp.
type Spread int

const (
	// SpreadPad extends edge colors beyond bounds.
	SpreadPad Spread = iota
	// SpreadRepeat repeats the ramp. Gradient fills use this by default.
	SpreadRepeat
	// SpreadReflect mirrors the ramp.
	SpreadReflect
)

// GradientKind selects the gradient geometry.
type GradientKind int

const (
	LinearGradient GradientKind = iota
	RadialGradient
)

// ColorStop represents a color at a specific offset in a gradient ramp.
type ColorStop struct {
	Offset float32
	Color  Color
}

// StopsFromFloats converts the packed form used by the original drawing
// API, five floats per stop (offset, r, g, b, a), into color stops.
// A trailing partial group is ignored.
func StopsFromFloats(packed []float32) []ColorStop {
	n := len(packed) / 5
	stops := make([]ColorStop, 0, n)
	for i := 0; i < n; i++ {
		p := packed[i*5 : i*5+5]
		stops = append(stops, ColorStop{
			Offset: p[0],
			Color:  Color{p[1], p[2], p[3], p[4]},
		})
	}
	return stops
}

// Floats packs the stops back into five floats per stop.
func Floats(stops []ColorStop) []float32 {
	out := make([]float32, 0, len(stops)*5)
	for _, s := range stops {
		out = append(out, s.Offset, s.Color[0], s.Color[1], s.Color[2], s.Color[3])
	}
	return out
}

// Gradient is a color-ramp paint. Coordinates are in user space.
type Gradient struct {
	Kind GradientKind

	// Linear: from (X1, Y1) to (X2, Y2).
	X1, Y1, X2, Y2 float32

	// Radial: center (CX, CY), focus (FX, FY), radius R.
	CX, CY, FX, FY, R float32

	Stops         []ColorStop
	Spread        Spread
	Premultiplied bool
}

// ColorAt returns the ramp color at the user-space point (x, y).
func (g *Gradient) ColorAt(x, y float64) Color {
	var t float64
	switch g.Kind {
	case RadialGradient:
		t = g.radialT(x, y)
	default:
		t = g.linearT(x, y)
	}
	return colorAtOffset(g.Stops, t, g.Spread)
}

func (g *Gradient) linearT(x, y float64) float64 {
	dx := float64(g.X2 - g.X1)
	dy := float64(g.Y2 - g.Y1)
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return 0
	}
	px := x - float64(g.X1)
	py := y - float64(g.Y1)
	return (px*dx + py*dy) / lengthSq
}

// radialT solves the focal ray / circle intersection. The focus is moved
// inside the circle when it lies outside.
func (g *Gradient) radialT(x, y float64) float64 {
	r := float64(g.R)
	if r <= 0 {
		return 1
	}
	cx, cy := float64(g.CX), float64(g.CY)
	fx, fy := float64(g.FX), float64(g.FY)
	if d := math.Hypot(fx-cx, fy-cy); d > r*0.999 {
		k := r * 0.999 / d
		fx = cx + (fx-cx)*k
		fy = cy + (fy-cy)*k
	}

	dx, dy := x-fx, y-fy
	a := dx*dx + dy*dy
	if a == 0 {
		return 0
	}
	ox, oy := fx-cx, fy-cy
	b := 2 * (dx*ox + dy*oy)
	c := ox*ox + oy*oy - r*r
	disc := b*b - 4*a*c
	if disc < 0 {
		return 1
	}
	s := (-b + math.Sqrt(disc)) / (2 * a)
	if s <= 0 {
		return 1
	}
	return 1 / s
}

// sortStops returns a copy of stops sorted by offset.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// applySpread normalizes t to [0, 1].
func applySpread(t float64, mode Spread) float64 {
	switch mode {
	case SpreadRepeat:
		t -= math.Floor(t)
	case SpreadReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = clamp01(t)
	}
	return t
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// colorAtOffset interpolates the ramp in non-premultiplied sRGB space.
func colorAtOffset(stops []ColorStop, t float64, mode Spread) Color {
	switch len(stops) {
	case 0:
		return Transparent
	case 1:
		return stops[0].Color
	}

	sorted := sortStops(stops)
	t = applySpread(t, mode)

	idx := sort.Search(len(sorted), func(i int) bool {
		return float64(sorted[i].Offset) >= t
	})
	if idx == 0 {
		return sorted[0].Color
	}
	if idx >= len(sorted) {
		return sorted[len(sorted)-1].Color
	}

	s1, s2 := sorted[idx-1], sorted[idx]
	if s2.Offset == s1.Offset {
		return s1.Color
	}
	local := (t - float64(s1.Offset)) / float64(s2.Offset-s1.Offset)
	return s1.Color.Lerp(s2.Color, float32(local))
}
