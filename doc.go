// Package weekit is a small toolkit for full-screen 2D applications on the
// Raspberry Pi.
//
// # Overview
//
// weekit binds a window to the display through a Platform, draws vector
// shapes, gradients, images and text through a Canvas, reads raw evdev
// input through the input package and drives the application with a fixed
// rate loop.
//
// # Quick Start
//
//	import (
//	    "github.com/weekit/weekit"
//	    _ "github.com/weekit/weekit/platform/videocore"
//	)
//
//	s, err := weekit.Init()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Finish()
//
//	c := s.Canvas()
//	c.Background(0, 0, 0)
//	c.Fill(44, 77, 232, 1)
//	c.Circle(200, 200, 100)
//	s.Swap()
//
// # Platforms
//
// Platforms register themselves when their package is imported:
//   - platform/videocore: EGL, OpenVG and DispmanX on VideoCore IV (cgo)
//   - platform/software: an in-memory framebuffer for tests and previews
//
// Init picks the highest-priority available platform unless WithPlatform
// names one.
//
// # Coordinate System
//
//   - Origin (0,0) at the bottom-left of the window
//   - X increases right
//   - Y increases up
//   - Angles in degrees, counter-clockwise
//
// # Errors
//
// Init returns a *SetupError naming the failed stage and wrapping one of
// ErrDisplayUnavailable, ErrNoConfig, ErrContext or ErrSurface. Drawing calls
// do not return errors; a platform reports its drawing error state from
// Session.Swap.
package weekit

// Version is the library version.
const Version = "0.1.0"
