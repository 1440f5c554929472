package osd

import "image/color"

// Panel geometry, in canvas units from the bottom-left corner.
const (
	panelX      = 22
	panelY      = 82
	panelH      = 120
	panelMargin = panelX * 2
	panelRadius = 15

	headerCapH = 20
	headerH    = 54
	headerGap  = 10

	pausedX = 32
	pausedY = panelY + panelH + 20

	textInset = 46
	headerY   = 162

	trackX      = 142
	trackY      = 102
	trackH      = 12
	trackRadius = 10
	trackMargin = trackX*2 + 4

	shadowOffset = 1
)

// Font sizes.
const (
	sizePaused = 16
	sizeClock  = 14
	sizeTitle  = 20
	sizePos    = 12
)

// Palette
var (
	colorWhite     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorBlack     = color.NRGBA{A: 255}
	colorBackdrop  = color.NRGBA{A: 128}
	colorClock     = color.NRGBA{R: 102, G: 102, B: 102, A: 255}
	colorTrack     = color.NRGBA{R: 255, G: 255, B: 255, A: 51}
	colorProgress  = color.NRGBA{R: 209, G: 125, B: 30, A: 255}
	colorTextShade = colorBlack
)

// TrackWidth returns the width of the progress track on a canvas w pixels wide.
func TrackWidth(w int) float64 {
	return float64(w - trackMargin)
}
