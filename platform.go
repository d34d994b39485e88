package weekit

import (
	"image"
	"sort"
	"sync"
)

// PaintMode selects which parts of a path are painted.
type PaintMode uint8

const (
	PaintFill PaintMode = 1 << iota
	PaintStroke
)

// Paint is a solid color or, when Gradient is set, a color ramp.
type Paint struct {
	Color    Color
	Gradient *Gradient
}

// FillRule decides which regions of a self-intersecting or nested path
// are inside.
type FillRule uint8

const (
	// EvenOdd fills regions crossed an odd number of times. It is the
	// default.
	EvenOdd FillRule = iota
	// NonZero fills regions with a non-zero winding number.
	NonZero
)

// LineCap is the shape at the open ends of a stroke.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape where two stroke segments meet.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// StrokeStyle is the ambient stroke state of a surface.
type StrokeStyle struct {
	Width      float32
	Cap        LineCap
	Join       LineJoin
	MiterLimit float32
}

// ImageHandle identifies an image uploaded to a surface. Zero is invalid.
type ImageHandle uint32

// Surface is an open drawing surface bound to a window. Paint, stroke,
// transform and scissor are ambient state applied to subsequent draws.
// Coordinates are window pixels with the origin at the bottom-left.
type Surface interface {
	SetPaint(p Paint, mode PaintMode)
	SetStroke(s StrokeStyle)
	SetFillRule(r FillRule)
	SetMatrix(m Matrix)
	// SetScissor limits drawing to r in window space. The transform does
	// not apply to r.
	SetScissor(r image.Rectangle, enabled bool)
	SetClearColor(c Color)
	Clear(r image.Rectangle)
	// DrawPath paints p with the ambient state. p is reused by the caller
	// after the call returns.
	DrawPath(p *Path, mode PaintMode)

	// CreateImage uploads w*h pixels of the given format. Rows are stride
	// bytes apart, bottom row first.
	CreateImage(format PixelFormat, w, h int, pix []byte, stride int) (ImageHandle, error)
	// SetPixels copies the w*h lower-left region of an image to (x, y),
	// bypassing transform and paint.
	SetPixels(x, y int, img ImageHandle, w, h int)
	DestroyImage(img ImageHandle)
	// ReadPixels copies a region as 4-byte sABGR_8888 pixels, bottom row
	// first, into dst.
	ReadPixels(dst []byte, x, y, w, h int) error

	// Err returns and clears the sticky drawing error.
	Err() error
	Swap() error
	SetOpacity(alpha uint8) error
	Move(x, y int) error
	// Close presents the last frame and releases the surface and its
	// rendering context.
	Close() error
}

// Platform is a display connection able to open one window surface.
type Platform interface {
	Name() string
	ScreenSize() (w, h int, err error)
	Open(window image.Rectangle) (Surface, error)
	// Close terminates the display connection. Surfaces must be closed
	// first.
	Close() error
}

// PlatformConfig carries Init options a platform factory may honor.
type PlatformConfig struct {
	// ScreenSize overrides the detected screen size where the platform
	// allows it (software platforms). Zero keeps the default.
	ScreenSize image.Point
}

// PlatformFactory connects to a display.
type PlatformFactory func(cfg PlatformConfig) (Platform, error)

// PlatformEntry is a registered platform.
type PlatformEntry struct {
	Name string

	// Priority orders automatic selection, higher first.
	//   - 100: hardware display platforms
	//   - 10: software platforms
	Priority int

	Factory   PlatformFactory
	Available func() bool
}

var platforms = &registry{}

type registry struct {
	mu      sync.RWMutex
	entries map[string]*PlatformEntry
}

// RegisterPlatform adds a platform to the global registry. Platform
// packages call it from init. A nil available means always available.
// Registering an existing name replaces the entry.
func RegisterPlatform(name string, priority int, factory PlatformFactory, available func() bool) {
	platforms.register(name, priority, factory, available)
}

// UnregisterPlatform removes a platform from the global registry.
func UnregisterPlatform(name string) {
	platforms.mu.Lock()
	defer platforms.mu.Unlock()
	delete(platforms.entries, name)
}

// Platforms returns all registered platform names, highest priority first.
func Platforms() []string {
	platforms.mu.RLock()
	defer platforms.mu.RUnlock()
	return platforms.sortedNames(false)
}

// AvailablePlatforms returns the registered platforms that can run here,
// highest priority first.
func AvailablePlatforms() []string {
	platforms.mu.RLock()
	defer platforms.mu.RUnlock()
	return platforms.sortedNames(true)
}

func (r *registry) register(name string, priority int, factory PlatformFactory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*PlatformEntry)
	}
	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &PlatformEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// lookup returns the named entry or, for an empty name, the best
// available one.
func (r *registry) lookup(name string) (*PlatformEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		names := r.sortedNames(true)
		if len(names) == 0 {
			return nil, ErrNoPlatform
		}
		return r.entries[names[0]], nil
	}

	entry, ok := r.entries[name]
	if !ok {
		return nil, &PlatformNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &PlatformUnavailableError{Name: name}
	}
	return entry, nil
}

// sortedNames must be called with r.mu held.
func (r *registry) sortedNames(availableOnly bool) []string {
	entries := make([]*PlatformEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if availableOnly && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
