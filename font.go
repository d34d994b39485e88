package weekit

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// Font is a parsed TrueType or OpenType font. Glyph outlines are cached
// as paths in em units, y up, so one path serves every point size.
type Font struct {
	name string
	sf   *sfnt.Font
	face *gotext.Face
	upem fixed.Int26_6

	mu     sync.Mutex
	buf    sfnt.Buffer
	shaper shaping.HarfbuzzShaper
	glyphs map[sfnt.GlyphIndex]*Path
}

// ParseFont parses font data. The name is used in log output only.
func ParseFont(name string, data []byte) (*Font, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("weekit: parse font %s: %w", name, err)
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("weekit: parse font %s: %w", name, err)
	}
	return &Font{
		name:   name,
		sf:     sf,
		face:   face,
		upem:   fixed.I(int(sf.UnitsPerEm())),
		glyphs: make(map[sfnt.GlyphIndex]*Path),
	}, nil
}

func mustParseFont(name string, data []byte) *Font {
	f, err := ParseFont(name, data)
	if err != nil {
		panic(err)
	}
	return f
}

// Built-in typefaces from the Go font family, parsed on first use.
var (
	SansTypeface = sync.OnceValue(func() *Font { return mustParseFont("Go Regular", goregular.TTF) })
	BoldTypeface = sync.OnceValue(func() *Font { return mustParseFont("Go Bold", gobold.TTF) })
	MonoTypeface = sync.OnceValue(func() *Font { return mustParseFont("Go Mono", gomono.TTF) })
)

// Name returns the name given to ParseFont.
func (f *Font) Name() string { return f.name }

// glyphRun is one positioned glyph of a shaped string, in pixels at the
// shaped size.
type glyphRun struct {
	id sfnt.GlyphIndex
	x  float32
	y  float32
}

// shape lays out s at size pixels per em. It returns the glyphs and the
// total advance.
func (f *Font) shape(s string, size float32) ([]glyphRun, float32) {
	if s == "" || size <= 0 {
		return nil, 0
	}
	runes := []rune(norm.NFC.String(s))

	f.mu.Lock()
	out := f.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.face,
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})
	f.mu.Unlock()

	glyphs := make([]glyphRun, 0, len(out.Glyphs))
	var pen float32
	for _, g := range out.Glyphs {
		glyphs = append(glyphs, glyphRun{
			id: sfnt.GlyphIndex(g.GlyphID),
			x:  pen + fixedToFloat(g.XOffset),
			y:  fixedToFloat(g.YOffset),
		})
		pen += fixedToFloat(g.Advance)
	}
	return glyphs, pen
}

// outline returns the cached em-unit path of a glyph. Glyphs without an
// outline, such as a space, yield an empty path.
func (f *Font) outline(id sfnt.GlyphIndex) *Path {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.glyphs[id]; ok {
		return p
	}

	p := NewPath()
	segs, err := f.sf.LoadGlyph(&f.buf, id, f.upem, nil)
	if err != nil {
		Logger().Debug("weekit: glyph outline", "font", f.name, "glyph", id, "err", err)
		f.glyphs[id] = p
		return p
	}

	scale := 1 / fixedToFloat(f.upem)
	pt := func(v fixed.Point26_6) (float32, float32) {
		// sfnt is y-down; surfaces are y-up.
		return fixedToFloat(v.X) * scale, -fixedToFloat(v.Y) * scale
	}

	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			x, y := pt(seg.Args[0])
			p.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := pt(seg.Args[0])
			p.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			p.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			p.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		p.Close()
	}
	f.glyphs[id] = p
	return p
}

// metrics returns the ascent and descent at size pixels per em, both
// positive.
func (f *Font) metrics(size float32) (ascent, descent float32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.sf.Metrics(&f.buf, fixed.Int26_6(size*64), xfont.HintingNone)
	if err != nil {
		return 0, 0
	}
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
