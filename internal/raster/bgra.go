package raster

import (
	"image"
	"io"
	"os"
)

// EncodeBGRA converts img to raw 8-bit BGRA pixels, row by row, the layout
// expected by 32bpp framebuffers and by mpv's overlay-add.
func EncodeBGRA(img image.Image) []byte {
	bounds := img.Bounds()
	buf := make([]byte, bounds.Dx()*bounds.Dy()*4)

	if rgba, ok := img.(*image.RGBA); ok {
		off := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := rgba.Pix[rgba.PixOffset(bounds.Min.X, y):]
			for x := 0; x < bounds.Dx(); x++ {
				p := row[x*4 : x*4+4]
				buf[off], buf[off+1], buf[off+2], buf[off+3] = p[2], p[1], p[0], p[3]
				off += 4
			}
		}
		return buf
	}

	off := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			buf[off] = byte(b >> 8)
			buf[off+1] = byte(g >> 8)
			buf[off+2] = byte(r >> 8)
			buf[off+3] = byte(a >> 8)
			off += 4
		}
	}
	return buf
}

// BGRAWriter presents each frame by writing its BGRA pixels to w.
func BGRAWriter(w io.Writer) Presenter {
	return PresenterFunc(func(img *image.RGBA) error {
		_, err := w.Write(EncodeBGRA(img))
		return err
	})
}

// Framebuffer presents frames by overwriting a 32bpp BGRA framebuffer
// device such as /dev/fb0. The device must be at least as large as the
// frame and have a line length of exactly width*4 bytes.
type Framebuffer struct {
	Path string
	last image.Rectangle
}

func (f *Framebuffer) Present(img *image.RGBA) error {
	f.last = img.Bounds()
	return f.write(EncodeBGRA(img))
}

// Clear blanks the area covered by the last frame.
func (f *Framebuffer) Clear() error {
	if f.last.Empty() {
		return nil
	}
	return f.write(make([]byte, f.last.Dx()*f.last.Dy()*4))
}

func (f *Framebuffer) write(buf []byte) error {
	fb, err := os.OpenFile(f.Path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	if _, err := fb.WriteAt(buf, 0); err != nil {
		fb.Close()
		return err
	}
	return fb.Close()
}
