package osd

import (
	"image/color"

	"github.com/depeter/couchosd/internal/fonts"
)

// Backend opens drawing surfaces. Each call to Open attaches a new canvas
// to the display; a canvas is never reused after Close.
type Backend interface {
	Open() (Canvas, error)
}

// Font is a font loaded into a canvas.
type Font interface {
	Asset() fonts.Asset
}

// Canvas is an immediate-mode vector drawing surface. Coordinates are in
// pixels with the origin at the bottom-left corner and y growing upwards.
// Text is positioned by its baseline.
type Canvas interface {
	// Size reports the surface size, fixed for the life of the canvas.
	Size() (w, h int)

	LoadFont(a fonts.Asset) (Font, error)
	UnloadFont(f Font)

	// Begin starts a frame, clearing the surface to transparent.
	Begin(w, h int)
	// End finishes the frame and presents it.
	End() error

	// Fill sets the color used by the shape and text calls that follow.
	Fill(c color.NRGBA)
	Rect(x, y, w, h float64)
	RoundRect(x, y, w, h, rw, rh float64)

	// Text draws s starting at x.
	Text(x, y float64, s string, f Font, size float64)
	// TextEnd draws s ending at x.
	TextEnd(x, y float64, s string, f Font, size float64)
	TextWidth(s string, f Font, size float64) float64

	Close() error
}

// CenterTexter is implemented by canvases that can center text themselves,
// for surfaces whose final font metrics are not known to the caller.
type CenterTexter interface {
	// TextCenter draws s centered on x.
	TextCenter(x, y float64, s string, f Font, size float64)
}

// ClampRadii limits corner radii to half the rectangle's sides so that
// backends agree on the shape of degenerate rounded rectangles.
func ClampRadii(w, h, rw, rh float64) (float64, float64) {
	if rw > w/2 {
		rw = w / 2
	}
	if rh > h/2 {
		rh = h / 2
	}
	if rw < 0 {
		rw = 0
	}
	if rh < 0 {
		rh = 0
	}
	return rw, rh
}
