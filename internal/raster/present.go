package raster

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/depeter/couchosd/internal/config"
)

// Presenter receives each finished frame. The image is reused for the
// next frame, so presenters must not keep it.
type Presenter interface {
	Present(img *image.RGBA) error
}

// Clearer is implemented by presenters that must blank the display when
// the canvas closes.
type Clearer interface {
	Clear() error
}

type PresenterFunc func(img *image.RGBA) error

func (f PresenterFunc) Present(img *image.RGBA) error { return f(img) }

type discard struct{}

func (discard) Present(*image.RGBA) error { return nil }

// Discard drops every frame.
var Discard Presenter = discard{}

// PNGFile writes each frame to path, replacing the previous one.
func PNGFile(path string) Presenter {
	return PresenterFunc(func(img *image.RGBA) error {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("cannot create output directory: %w", err)
			}
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("cannot encode png: %w", err)
		}
		return nil
	})
}

// FromConfig picks the presenter named by cfg: a PNG file when png_output
// is set, otherwise the framebuffer device.
func FromConfig(cfg config.RasterConfig) Presenter {
	if cfg.PNGOutput != "" {
		return PNGFile(cfg.PNGOutput)
	}
	if cfg.Framebuffer != "" {
		return &Framebuffer{Path: cfg.Framebuffer}
	}
	return Discard
}
