// Package ui is an osd backend that draws with ebiten, and the transparent
// window that shows its frames on top of the video.
package ui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/depeter/couchosd/internal/fonts"
	"github.com/depeter/couchosd/internal/osd"
)

const kappa = 0.5522847498

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// white returns the 1x1 source image that path fills are shaded from.
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// Backend opens offscreen canvases. At most one canvas is current; it is
// what the Window draws.
type Backend struct {
	width, height int
	current       *Canvas
}

func NewBackend(w, h int) *Backend {
	return &Backend{width: w, height: h}
}

func (b *Backend) Open() (osd.Canvas, error) {
	if b.width <= 0 || b.height <= 0 {
		return nil, fmt.Errorf("ui: invalid size %dx%d", b.width, b.height)
	}
	if b.current != nil {
		return nil, errors.New("ui: canvas already open")
	}
	c := &Canvas{
		backend: b,
		img:     ebiten.NewImage(b.width, b.height),
		fill:    color.NRGBA{A: 255},
	}
	b.current = c
	return c, nil
}

// Frame returns the last completed frame, or nil when nothing is shown.
func (b *Backend) Frame() *ebiten.Image {
	if b.current == nil || !b.current.ready {
		return nil
	}
	return b.current.img
}

// Size returns the canvas size in pixels.
func (b *Backend) Size() (int, int) {
	return b.width, b.height
}

// Canvas draws into an offscreen image.
type Canvas struct {
	backend *Backend
	img     *ebiten.Image
	fill    color.NRGBA
	ready   bool

	path     vector.Path
	vertices []ebiten.Vertex
	indices  []uint16
}

func (c *Canvas) Size() (int, int) {
	return c.backend.width, c.backend.height
}

func (c *Canvas) LoadFont(a fonts.Asset) (osd.Font, error) {
	return loadFontFace(a)
}

func (c *Canvas) UnloadFont(f osd.Font) {
	if ff, ok := f.(*fontFace); ok {
		ff.faces = nil
	}
}

// Begin clears the image. The previous frame stays hidden until End.
func (c *Canvas) Begin(w, h int) {
	c.ready = false
	c.img.Clear()
}

func (c *Canvas) End() error {
	if c.img == nil {
		return errors.New("ui: canvas closed")
	}
	c.ready = true
	return nil
}

func (c *Canvas) Fill(clr color.NRGBA) {
	c.fill = clr
}

func (c *Canvas) flip(y float64) float32 {
	return float32(float64(c.backend.height) - y)
}

func (c *Canvas) Rect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(c.img, float32(x), c.flip(y+h), float32(w), float32(h), c.fill, false)
}

func (c *Canvas) RoundRect(x, y, w, h, rw, rh float64) {
	if w <= 0 || h <= 0 {
		return
	}
	rw, rh = osd.ClampRadii(w, h, rw, rh)
	left, right := float32(x), float32(x+w)
	top, bottom := c.flip(y+h), c.flip(y)
	rx, ry := float32(rw), float32(rh)
	kx, ky := rx*kappa, ry*kappa

	c.path = vector.Path{}
	p := &c.path
	p.MoveTo(left+rx, top)
	p.LineTo(right-rx, top)
	p.CubicTo(right-rx+kx, top, right, top+ry-ky, right, top+ry)
	p.LineTo(right, bottom-ry)
	p.CubicTo(right, bottom-ry+ky, right-rx+kx, bottom, right-rx, bottom)
	p.LineTo(left+rx, bottom)
	p.CubicTo(left+rx-kx, bottom, left, bottom-ry+ky, left, bottom-ry)
	p.LineTo(left, top+ry)
	p.CubicTo(left, top+ry-ky, left+rx-kx, top, left+rx, top)
	p.Close()
	c.fillPath()
}

func (c *Canvas) fillPath() {
	c.vertices, c.indices = c.path.AppendVerticesAndIndicesForFilling(c.vertices[:0], c.indices[:0])
	r, g, b, a := c.fill.RGBA()
	for i := range c.vertices {
		v := &c.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = float32(r) / 0xffff
		v.ColorG = float32(g) / 0xffff
		v.ColorB = float32(b) / 0xffff
		v.ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		FillRule:       ebiten.FillRuleNonZero,
		AntiAlias:      true,
	}
	c.img.DrawTriangles(c.vertices, c.indices, white(), op)
}

func (c *Canvas) Text(x, y float64, s string, f osd.Font, size float64) {
	ff, ok := f.(*fontFace)
	if !ok {
		return
	}
	drawText(c.img, s, x, float64(c.flip(y)), ff.face(size), c.fill, text.AlignStart)
}

func (c *Canvas) TextEnd(x, y float64, s string, f osd.Font, size float64) {
	ff, ok := f.(*fontFace)
	if !ok {
		return
	}
	drawText(c.img, s, x, float64(c.flip(y)), ff.face(size), c.fill, text.AlignEnd)
}

func (c *Canvas) TextWidth(s string, f osd.Font, size float64) float64 {
	ff, ok := f.(*fontFace)
	if !ok {
		return 0
	}
	return measureText(s, ff.face(size))
}

func (c *Canvas) Close() error {
	if c.img == nil {
		return errors.New("ui: canvas closed")
	}
	c.img.Deallocate()
	c.img = nil
	c.ready = false
	if c.backend.current == c {
		c.backend.current = nil
	}
	return nil
}
