//go:build cgo

package preview

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/weekit/weekit"
	"github.com/weekit/weekit/input"
	"github.com/weekit/weekit/platform/software"
)

var keymap = map[ebiten.Key]uint16{
	ebiten.KeyEscape:     input.KeyEsc,
	ebiten.KeyBackspace:  input.KeyBackspace,
	ebiten.KeyTab:        input.KeyTab,
	ebiten.KeyEnter:      input.KeyEnter,
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyArrowUp:    input.KeyArrowUp,
	ebiten.KeyArrowLeft:  input.KeyArrowLeft,
	ebiten.KeyArrowRight: input.KeyArrowRight,
	ebiten.KeyArrowDown:  input.KeyArrowDown,
}

// Run drives app in a desktop window until the window closes or ctx is
// cancelled. It must be called from the main goroutine.
func Run(ctx context.Context, s *weekit.Session, app weekit.Application, opts ...Option) error {
	surf, ok := s.Surface().(*software.Surface)
	if !ok {
		return ErrNotSoftware
	}
	o := options{title: "weekit", scale: 1, interval: weekit.DefaultInterval}
	for _, opt := range opts {
		opt(&o)
	}

	if r, ok := app.(weekit.Resizer); ok {
		r.Size(s.Size())
	}
	handler, _ := app.(weekit.EventHandler)

	w, h := s.Size()
	g := &game{
		ctx:     ctx,
		s:       s,
		surf:    surf,
		app:     app,
		handler: handler,
		w:       w,
		h:       h,
	}
	ebiten.SetWindowTitle(o.title)
	ebiten.SetWindowSize(w*o.scale, h*o.scale)
	ebiten.SetTPS(max(1, int(time.Second/o.interval)))

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	ctx     context.Context
	s       *weekit.Session
	surf    *software.Surface
	app     weekit.Application
	handler input.Handler

	w, h  int
	ptr   pointer
	keys  []ebiten.Key
	img   *ebiten.Image
	frame []byte
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if g.handler != nil {
		for _, ev := range g.events(time.Now()) {
			g.handler.HandleEvent(ev)
		}
	}
	return weekit.Step(g.s, g.app, nil)
}

func (g *game) events(now time.Time) []input.Event {
	x, y := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	evs := g.ptr.update(down, x, y, now)

	var pressed, released []uint16
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if c, ok := keymap[k]; ok {
			pressed = append(pressed, c)
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if c, ok := keymap[k]; ok {
			released = append(released, c)
		}
	}
	return append(evs, keyEvents(pressed, released, now)...)
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImageWithOptions(image.Rect(0, 0, g.w, g.h), nil)
		g.frame = make([]byte, g.w*g.h*4)
	}
	g.surf.FrameInto(g.frame)
	g.img.WritePixels(g.frame)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(int, int) (int, int) {
	return g.w, g.h
}
