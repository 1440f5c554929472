package ui

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/depeter/couchosd/internal/fonts"
)

// fontFace is a loaded font with one face per size drawn so far.
type fontFace struct {
	asset  fonts.Asset
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

func loadFontFace(a fonts.Asset) (*fontFace, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(a.Data))
	if err != nil {
		return nil, err
	}
	return &fontFace{
		asset:  a,
		source: src,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

func (f *fontFace) Asset() fonts.Asset { return f.asset }

func (f *fontFace) face(size float64) *text.GoTextFace {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{
		Source: f.source,
		Size:   size,
	}
	f.faces[size] = face
	return face
}

// drawText draws txt with its baseline at y in screen space, starting at
// x or ending at x depending on align.
func drawText(dst *ebiten.Image, txt string, x, y float64, face *text.GoTextFace, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(dst, txt, face, op)
}

func measureText(txt string, face *text.GoTextFace) float64 {
	w, _ := text.Measure(txt, face, 0)
	return w
}
