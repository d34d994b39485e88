// Command weekit-demo draws shapes, gradients, text and an optional JPEG,
// and marks every touch on the screen.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/weekit/weekit"
	"github.com/weekit/weekit/input"
	_ "github.com/weekit/weekit/platform/software"
	_ "github.com/weekit/weekit/platform/videocore"
	"github.com/weekit/weekit/preview"
)

func main() {
	var (
		platform  = flag.String("platform", os.Getenv("WEEKIT_PLATFORM"), "platform name (videocore, software); empty picks the best available")
		window    = flag.Bool("window", false, "show the software platform in a desktop window")
		x         = flag.Int("x", 0, "window x")
		y         = flag.Int("y", 0, "window y")
		w         = flag.Int("w", 0, "window width, 0 for full screen")
		h         = flag.Int("h", 0, "window height, 0 for full screen")
		imagePath = flag.String("image", "", "JPEG to draw")
		dump      = flag.String("dump", "", "write one frame as raw RGBA to this file and exit; - for stdout")
		touchOnly = flag.Bool("touch-only", false, "poll only the touchscreen")
		debug     = flag.Bool("debug", false, "log debug output")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	weekit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *window && *platform == "" {
		*platform = "software"
	}
	s, err := weekit.Init(
		weekit.WithPlatform(*platform),
		weekit.WithWindow(*x, *y, *w, *h),
	)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer s.Finish()

	app := newDemo()
	if *imagePath != "" {
		img, err := weekit.LoadJPEG(*imagePath)
		if err != nil {
			log.Printf("image: %v", err)
		} else {
			app.img = img
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *dump != "":
		err = dumpFrame(s, app, *dump)
	case *window:
		err = preview.Run(ctx, s, app, preview.WithTitle("weekit demo"))
	default:
		err = run(ctx, s, app, *touchOnly)
	}
	if err != nil {
		s.Finish()
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, s *weekit.Session, app *demo, touchOnly bool) error {
	paths := input.DefaultPaths
	if touchOnly {
		paths = input.TouchOnlyPaths
	}
	p := input.NewPoller(paths...)
	if err := p.Start(); err != nil {
		log.Printf("input disabled: %v", err)
		return weekit.Run(ctx, s, app)
	}
	defer p.Close()
	return weekit.Run(ctx, s, app, weekit.WithPoller(p))
}

func dumpFrame(s *weekit.Session, app *demo, path string) error {
	app.Size(s.Size())
	w, h := s.Size()
	app.Draw(s.Canvas(), w, h)
	if path == "-" {
		path = ""
	}
	return s.SaveEnd(path)
}

type demo struct {
	w, h    int
	frame   int
	img     *weekit.Image
	touches map[int]input.TouchEvent
	decoder input.TouchDecoder
	last    string
}

func newDemo() *demo {
	d := &demo{touches: make(map[int]input.TouchEvent)}
	d.decoder.OnTouch = d.touch
	d.decoder.OnKey = func(e input.KeyEvent) {
		d.last = fmt.Sprintf("key %d %v", e.Code, e.Pressed())
	}
	return d
}

func (d *demo) Size(w, h int) { d.w, d.h = w, h }

func (d *demo) HandleEvent(ev input.Event) { d.decoder.HandleEvent(ev) }

func (d *demo) touch(e input.TouchEvent) {
	if e.Phase == input.Ended {
		delete(d.touches, e.Slot)
	} else {
		d.touches[e.Slot] = e
	}
	d.last = fmt.Sprintf("slot %d %v (%d, %d)", e.Slot, e.Phase, e.X, e.Y)
}

func (d *demo) Tick() { d.frame++ }

func (d *demo) Draw(c *weekit.Canvas, width, height int) {
	w, h := float32(width), float32(height)
	c.Background(20, 24, 32)
	c.Reset()

	c.FillLinearGradient(0, 0, w, 0, []weekit.ColorStop{
		{Offset: 0, Color: weekit.RGB(40, 60, 120)},
		{Offset: 1, Color: weekit.RGB(20, 24, 32)},
	})
	c.Rect(0, h-60, w, 60)

	c.Fill(255, 255, 255, 1)
	c.StrokeWidth(0)
	c.Text(20, h-40, "weekit", weekit.BoldTypeface(), 28)
	c.TextEnd(w-20, h-40, fmt.Sprintf("frame %d", d.frame), weekit.MonoTypeface(), 16)

	c.Fill(230, 80, 60, 0.9)
	c.Circle(120, h/2, 120)
	c.Fill(60, 200, 120, 0.8)
	c.RoundRect(220, h/2-50, 160, 100, 30, 30)

	c.Stroke(250, 220, 80, 1)
	c.StrokeWidth(6)
	c.ArcOutline(520, h/2, 140, 140, float32(d.frame%360), 270)
	c.CBezierOutline(40, 60, 180, 200, 320, -40, 460, 100)

	c.Translate(700, h/2)
	c.Rotate(float32(d.frame % 360))
	c.FillRadialGradient(0, 0, 0, 0, 50, []weekit.ColorStop{
		{Offset: 0, Color: weekit.White},
		{Offset: 1, Color: weekit.RGB(80, 80, 200)},
	})
	c.StrokeWidth(0)
	c.Rect(-40, -40, 80, 80)
	c.LoadIdentity()

	if d.img != nil {
		if err := c.DrawImage(w-float32(d.img.Width)-20, 20, d.img); err != nil {
			weekit.Logger().Warn("demo: draw image", "err", err)
		}
	}

	c.Reset()
	c.Fill(255, 255, 255, 0.5)
	for _, t := range d.touches {
		// Touch coordinates have their origin at the top-left.
		c.Circle(float32(t.X), h-float32(t.Y), 60)
	}
	c.Fill(200, 200, 200, 1)
	c.Text(20, 20, d.last, weekit.SansTypeface(), 16)
}
