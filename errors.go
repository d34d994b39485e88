package weekit

import (
	"errors"
	"fmt"
)

// Setup errors. Platforms wrap these so callers can use errors.Is
// regardless of which platform failed.
var (
	// ErrNoPlatform is returned by Init when no platform is registered
	// or none reports itself available.
	ErrNoPlatform = errors.New("weekit: no platform available")

	// ErrDisplayUnavailable means the display connection could not be
	// opened or initialized.
	ErrDisplayUnavailable = errors.New("weekit: display unavailable")

	// ErrNoConfig means no framebuffer configuration matched the
	// requested RGBA8888 window surface.
	ErrNoConfig = errors.New("weekit: no compatible framebuffer configuration")

	// ErrContext means the rendering context could not be created or bound.
	ErrContext = errors.New("weekit: rendering context creation failed")

	// ErrSurface means the window surface could not be created.
	ErrSurface = errors.New("weekit: window surface creation failed")

	// ErrSessionClosed is returned by Session methods called after Finish.
	ErrSessionClosed = errors.New("weekit: session finished")
)

// Image errors.
var (
	// ErrImageNotFound is returned when an image file cannot be opened.
	ErrImageNotFound = errors.New("weekit: image file not found")

	// ErrInvalidImage is returned when raw pixel data does not match
	// the declared dimensions.
	ErrInvalidImage = errors.New("weekit: invalid image data")
)

// SetupError reports which platform and stage failed during Init.
type SetupError struct {
	Platform string
	Stage    string
	Err      error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("weekit: %s: %s: %v", e.Platform, e.Stage, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// PlatformNotFoundError indicates a named platform is not registered.
type PlatformNotFoundError struct {
	Name string
}

func (e *PlatformNotFoundError) Error() string {
	return "weekit: platform not registered: " + e.Name
}

// PlatformUnavailableError indicates a platform is registered but cannot
// run on this machine.
type PlatformUnavailableError struct {
	Name string
}

func (e *PlatformUnavailableError) Error() string {
	return "weekit: platform not available: " + e.Name
}

// DecodeError wraps a codec failure while decoding an image.
type DecodeError struct {
	Source string // file path, or "memory"
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("weekit: decode %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Drawing error codes, shared with OpenVG.
const (
	CodeBadHandle         = 0x1000
	CodeIllegalArgument   = 0x1001
	CodeOutOfMemory       = 0x1002
	CodePathCapability    = 0x1003
	CodeUnsupportedFormat = 0x1004
	CodeImageInUse        = 0x1006
)

// DrawError is a sticky drawing error reported by a platform surface.
type DrawError struct {
	Code int
	Op   string
}

func (e *DrawError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("weekit: drawing error 0x%x", e.Code)
	}
	return fmt.Sprintf("weekit: %s: drawing error 0x%x", e.Op, e.Code)
}
