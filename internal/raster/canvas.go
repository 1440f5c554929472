// Package raster is an osd backend that rasterizes frames in software
// into an RGBA image and hands them to a Presenter.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/depeter/couchosd/internal/fonts"
	"github.com/depeter/couchosd/internal/osd"
)

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498

var errClosed = errors.New("raster: canvas closed")

// Backend opens canvases of a fixed size.
type Backend struct {
	Width, Height int
	Presenter     Presenter
}

// New returns a backend drawing w×h frames and passing them to p.
func New(w, h int, p Presenter) *Backend {
	if p == nil {
		p = Discard
	}
	return &Backend{Width: w, Height: h, Presenter: p}
}

func (b *Backend) Open() (osd.Canvas, error) {
	if b.Width <= 0 || b.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", b.Width, b.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	return &Canvas{
		img:  img,
		rast: vector.NewRasterizer(b.Width, b.Height),
		out:  b.Presenter,
	}, nil
}

type rasterFont struct {
	asset fonts.Asset
}

func (f *rasterFont) Asset() fonts.Asset { return f.asset }

// Canvas draws into an image.RGBA. Use Image to read the last frame.
type Canvas struct {
	img    *image.RGBA
	rast   *vector.Rasterizer
	out    Presenter
	fill   *image.Uniform
	closed bool
}

// Image returns the frame buffer.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) LoadFont(a fonts.Asset) (osd.Font, error) {
	if _, err := fonts.Face(a, 12); err != nil {
		return nil, err
	}
	return &rasterFont{asset: a}, nil
}

func (c *Canvas) UnloadFont(osd.Font) {}

func (c *Canvas) Begin(w, h int) {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	c.fill = image.NewUniform(color.NRGBA{A: 255})
}

func (c *Canvas) End() error {
	if c.closed {
		return errClosed
	}
	return c.out.Present(c.img)
}

func (c *Canvas) Fill(clr color.NRGBA) {
	c.fill = image.NewUniform(clr)
}

// flip converts a canvas y coordinate to image space.
func (c *Canvas) flip(y float64) float32 {
	return float32(float64(c.img.Bounds().Dy()) - y)
}

func (c *Canvas) Rect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c.RoundRect(x, y, w, h, 0, 0)
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

	r := c.rast
	r.Reset(c.img.Bounds().Dx(), c.img.Bounds().Dy())
	r.DrawOp = draw.Over
	r.MoveTo(left+rx, top)
	r.LineTo(right-rx, top)
	r.CubeTo(right-rx+kx, top, right, top+ry-ky, right, top+ry)
	r.LineTo(right, bottom-ry)
	r.CubeTo(right, bottom-ry+ky, right-rx+kx, bottom, right-rx, bottom)
	r.LineTo(left+rx, bottom)
	r.CubeTo(left+rx-kx, bottom, left, bottom-ry+ky, left, bottom-ry)
	r.LineTo(left, top+ry)
	r.CubeTo(left, top+ry-ky, left+rx-kx, top, left+rx, top)
	r.ClosePath()
	r.Draw(c.img, c.img.Bounds(), c.fill, image.Point{})
}

func (c *Canvas) Text(x, y float64, s string, f osd.Font, size float64) {
	face, err := fonts.Face(f.Asset(), size)
	if err != nil {
		return
	}
	d := font.Drawer{
		Dst:  c.img,
		Src:  c.fill,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(float64(c.flip(y)) * 64)},
	}
	d.DrawString(s)
}

func (c *Canvas) TextEnd(x, y float64, s string, f osd.Font, size float64) {
	c.Text(x-c.TextWidth(s, f, size), y, s, f, size)
}

func (c *Canvas) TextWidth(s string, f osd.Font, size float64) float64 {
	w, err := fonts.Measure(f.Asset(), s, size)
	if err != nil {
		return 0
	}
	return w
}

// Close blanks the display if the presenter supports it.
func (c *Canvas) Close() error {
	if c.closed {
		return errClosed
	}
	c.closed = true
	if cl, ok := c.out.(Clearer); ok {
		return cl.Clear()
	}
	return nil
}
