package player

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/depeter/couchosd/internal/fonts"
	"github.com/depeter/couchosd/internal/osd"
)

// osdOverlayID is the osd-overlay slot the OSD occupies.
const osdOverlayID = 1

// OverlaySink receives finished ASS frames. *Player is the mpv sink.
type OverlaySink interface {
	SetOverlay(id int, data string, resX, resY int) error
	RemoveOverlay(id int) error
}

// ASSBackend draws the OSD as ASS vector events in a w×h PlayRes.
type ASSBackend struct {
	sink          OverlaySink
	width, height int
}

func NewASSBackend(sink OverlaySink, w, h int) *ASSBackend {
	return &ASSBackend{sink: sink, width: w, height: h}
}

func (b *ASSBackend) Open() (osd.Canvas, error) {
	if b.width <= 0 || b.height <= 0 {
		return nil, fmt.Errorf("ass: invalid size %dx%d", b.width, b.height)
	}
	return &ASSCanvas{sink: b.sink, width: b.width, height: b.height, fill: color.NRGBA{A: 255}}, nil
}

type assFont struct {
	asset fonts.Asset
}

func (f *assFont) Asset() fonts.Asset { return f.asset }

// ASSCanvas accumulates one frame of ASS events.
type ASSCanvas struct {
	sink          OverlaySink
	width, height int
	fill          color.NRGBA
	b             strings.Builder
	closed        bool
}

func (c *ASSCanvas) Size() (int, int) { return c.width, c.height }

// LoadFont checks the asset can be measured. mpv selects the font by
// family name, so the family has to be installed for text to match.
func (c *ASSCanvas) LoadFont(a fonts.Asset) (osd.Font, error) {
	if _, err := fonts.Face(a, 12); err != nil {
		return nil, err
	}
	return &assFont{asset: a}, nil
}

func (c *ASSCanvas) UnloadFont(osd.Font) {}

func (c *ASSCanvas) Begin(w, h int) {
	c.b.Reset()
}

func (c *ASSCanvas) End() error {
	if c.closed {
		return errors.New("ass: canvas closed")
	}
	return c.sink.SetOverlay(osdOverlayID, c.b.String(), c.width, c.height)
}

// Frame returns the events of the frame being drawn.
func (c *ASSCanvas) Frame() string {
	return c.b.String()
}

func (c *ASSCanvas) Fill(clr color.NRGBA) {
	c.fill = clr
}

func (c *ASSCanvas) flip(y float64) int {
	return int(math.Round(float64(c.height) - y))
}

// drawing writes one \p1 vector event positioned at the top-left corner.
func (c *ASSCanvas) drawing(shape string) {
	fmt.Fprintf(&c.b,
		"{\\an7\\pos(0,0)\\bord0\\shad0\\1c%s\\1a%s\\p1}%s{\\p0}\n",
		assColor(c.fill), assAlpha(c.fill), shape,
	)
}

func (c *ASSCanvas) Rect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	left, right := round(x), round(x+w)
	top, bottom := c.flip(y+h), c.flip(y)
	c.drawing(fmt.Sprintf("m %d %d l %d %d l %d %d l %d %d",
		left, top, right, top, right, bottom, left, bottom))
}

func (c *ASSCanvas) RoundRect(x, y, w, h, rw, rh float64) {
	if w <= 0 || h <= 0 {
		return
	}
	rw, rh = osd.ClampRadii(w, h, rw, rh)
	c.drawing(assRoundRect(round(x), c.flip(y+h), round(w), round(h), round(rw), round(rh)))
}

func (c *ASSCanvas) text(align int, x, y float64, s string, f osd.Font, size float64) {
	fmt.Fprintf(&c.b,
		"{\\an%d\\pos(%d,%d)\\bord0\\shad0\\fn%s\\fs%d\\1c%s\\1a%s}%s\n",
		align, round(x), c.flip(y), f.Asset().Family, round(size),
		assColor(c.fill), assAlpha(c.fill), assEscape(s),
	)
}

func (c *ASSCanvas) Text(x, y float64, s string, f osd.Font, size float64) {
	c.text(1, x, y, s, f, size)
}

func (c *ASSCanvas) TextEnd(x, y float64, s string, f osd.Font, size float64) {
	c.text(3, x, y, s, f, size)
}

// TextCenter anchors s at its bottom center, so mpv centers it with
// whichever font it ends up using for the family.
func (c *ASSCanvas) TextCenter(x, y float64, s string, f osd.Font, size float64) {
	c.text(2, x, y, s, f, size)
}

func (c *ASSCanvas) TextWidth(s string, f osd.Font, size float64) float64 {
	w, err := fonts.Measure(f.Asset(), s, size)
	if err != nil {
		return 0
	}
	return w
}

// Close removes the overlay from mpv.
func (c *ASSCanvas) Close() error {
	if c.closed {
		return errors.New("ass: canvas closed")
	}
	c.closed = true
	return c.sink.RemoveOverlay(osdOverlayID)
}

func round(v float64) int {
	return int(math.Round(v))
}

// assColor formats the RGB part of c as an ASS &HBBGGRR& color.
func assColor(c color.NRGBA) string {
	return fmt.Sprintf("&H%02X%02X%02X&", c.B, c.G, c.R)
}

// assAlpha formats the alpha of c; ASS alpha 00 is opaque.
func assAlpha(c color.NRGBA) string {
	return fmt.Sprintf("&H%02X&", 255-c.A)
}

var assEscaper = strings.NewReplacer(
	"\\", "\\\u2060",
	"{", "\\{",
	"\n", "\\N",
)

// assEscape keeps libass from reading override tags in plain text.
func assEscape(s string) string {
	return assEscaper.Replace(s)
}

// assRoundRect generates an ASS vector drawing for a rounded rectangle
// with its top-left corner at x,y.
func assRoundRect(x, y, w, h, rx, ry int) string {
	// m = moveto, l = lineto, b = cubic bezier; clockwise from the top-left
	kx := int(math.Round(float64(rx) * 0.5523))
	ky := int(math.Round(float64(ry) * 0.5523))
	return fmt.Sprintf(
		"m %d %d l %d %d b %d %d %d %d %d %d l %d %d b %d %d %d %d %d %d l %d %d b %d %d %d %d %d %d l %d %d b %d %d %d %d %d %d",
		x+rx, y,
		x+w-rx, y,
		x+w-rx+kx, y, x+w, y+ry-ky, x+w, y+ry,
		x+w, y+h-ry,
		x+w, y+h-ry+ky, x+w-rx+kx, y+h, x+w-rx, y+h,
		x+rx, y+h,
		x+rx-kx, y+h, x, y+h-ry+ky, x, y+h-ry,
		x, y+ry,
		x, y+ry-ky, x+rx-kx, y, x+rx, y,
	)
}
