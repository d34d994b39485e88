package weekit

import "image/color"

// Color is a non-premultiplied RGBA quad with each component in [0, 1],
// in the layout the surface paint state expects.
type Color [4]float32

// RGBA builds a Color from 8-bit channels and a float alpha.
//
// A channel above 255 yields a component of 0, not 255. An alpha outside
// [0, 1] yields 1.
func RGBA(r, g, b uint32, a float32) Color {
	c := Color{0, 0, 0, 1}
	if r <= 255 {
		c[0] = float32(r) / 255
	}
	if g <= 255 {
		c[1] = float32(g) / 255
	}
	if b <= 255 {
		c[2] = float32(b) / 255
	}
	if a >= 0 && a <= 1 {
		c[3] = a
	}
	return c
}

// RGB returns an opaque Color from 8-bit channels.
func RGB(r, g, b uint32) Color {
	return RGBA(r, g, b, 1)
}

// R returns the red component.
func (c Color) R() float32 { return c[0] }

// G returns the green component.
func (c Color) G() float32 { return c[1] }

// B returns the blue component.
func (c Color) B() float32 { return c[2] }

// A returns the alpha component.
func (c Color) A() float32 { return c[3] }

// NRGBA converts the color to an 8-bit non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c[0]),
		G: to8(c[1]),
		B: to8(c[2]),
		A: to8(c[3]),
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Lerp performs linear interpolation between two colors.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		c[0] + (other[0]-c[0])*t,
		c[1] + (other[1]-c[1])*t,
		c[2] + (other[2]-c[2])*t,
		c[3] + (other[3]-c[3])*t,
	}
}

// Premultiply returns the color with RGB scaled by alpha.
func (c Color) Premultiply() Color {
	return Color{c[0] * c[3], c[1] * c[3], c[2] * c[3], c[3]}
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Red         = RGB(255, 0, 0)
	Green       = RGB(0, 255, 0)
	Blue        = RGB(0, 0, 255)
	Transparent = RGBA(0, 0, 0, 0)
)
