// Package videocore draws with the Raspberry Pi VideoCore GPU: OpenVG on
// an EGL window surface backed by a DispmanX element.
//
// The platform registers itself as "videocore" with priority 100 and is
// available when the VideoCore service device exists and the package was
// built for linux/arm or linux/arm64 with cgo. Build with the novideocore
// tag to leave it out.
//
// EGL contexts are bound to an OS thread. New locks the calling goroutine
// to its thread; every later call must come from that goroutine.
package videocore

import (
	"os"

	"github.com/weekit/weekit"
)

// Name is the registry name of the platform.
const Name = "videocore"

// DevicePath is the VideoCore service device that must exist for the
// platform to be available.
const DevicePath = "/dev/vchiq"

func init() {
	weekit.RegisterPlatform(Name, 100, New, Available)
}

// Available reports whether this build has the VideoCore driver and the
// host exposes the VideoCore device.
func Available() bool {
	if !supported {
		return false
	}
	_, err := os.Stat(DevicePath)
	return err == nil
}

type paintKind uint8

const (
	solidPaint paintKind = iota
	linearPaint
	radialPaint
)

// paintSpec is a Paint flattened to OpenVG paint parameters.
type paintSpec struct {
	kind     paintKind
	color    [4]float32
	geometry []float32
	stops    []float32
	spread   weekit.Spread
}

func specFor(p weekit.Paint) paintSpec {
	g := p.Gradient
	if g == nil {
		return paintSpec{kind: solidPaint, color: p.Color}
	}
	s := paintSpec{
		stops:  weekit.Floats(g.Stops),
		spread: g.Spread,
	}
	switch g.Kind {
	case weekit.RadialGradient:
		s.kind = radialPaint
		s.geometry = []float32{g.CX, g.CY, g.FX, g.FY, g.R}
	default:
		s.kind = linearPaint
		s.geometry = []float32{g.X1, g.Y1, g.X2, g.Y2}
	}
	return s
}

// pathData splits p into the command bytes and coordinates OpenVG appends.
// Segment values already are absolute OpenVG commands.
func pathData(p *weekit.Path) ([]uint8, []float32) {
	segs := make([]uint8, 0, len(p.Segments))
	n := 0
	for _, s := range p.Segments {
		if n+s.Coords() > len(p.Coords) {
			break
		}
		segs = append(segs, uint8(s))
		n += s.Coords()
	}
	return segs, p.Coords[:n]
}
