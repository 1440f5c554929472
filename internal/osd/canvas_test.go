package osd

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/depeter/couchosd/internal/fonts"
)

// op is one recorded canvas call.
type op struct {
	name       string
	x, y, w, h float64
	text       string
	font       string
	size       float64
	fill       color.NRGBA
}

type fakeFont struct{ asset fonts.Asset }

func (f *fakeFont) Asset() fonts.Asset { return f.asset }

// recorder is a Canvas that records drawing calls. Text is 10 units wide
// per rune.
type recorder struct {
	backend *recordingBackend
	w, h    int
	fill    color.NRGBA
	ops     []op
	frames  int
	closed  bool
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) LoadFont(a fonts.Asset) (Font, error) {
	if r.backend.failFont == a.Name {
		return nil, errors.New("font load failed")
	}
	r.backend.loaded = append(r.backend.loaded, a.Name)
	return &fakeFont{asset: a}, nil
}

func (r *recorder) UnloadFont(f Font) {
	r.backend.unloaded = append(r.backend.unloaded, f.Asset().Name)
}

func (r *recorder) Begin(w, h int) {
	r.ops = nil
	r.ops = append(r.ops, op{name: "begin", w: float64(w), h: float64(h)})
}

func (r *recorder) End() error {
	r.frames++
	r.ops = append(r.ops, op{name: "end"})
	return nil
}

func (r *recorder) Fill(c color.NRGBA) { r.fill = c }

func (r *recorder) Rect(x, y, w, h float64) {
	r.ops = append(r.ops, op{name: "rect", x: x, y: y, w: w, h: h, fill: r.fill})
}

func (r *recorder) RoundRect(x, y, w, h, rw, rh float64) {
	r.ops = append(r.ops, op{name: "roundrect", x: x, y: y, w: w, h: h, fill: r.fill})
}

func (r *recorder) Text(x, y float64, s string, f Font, size float64) {
	r.ops = append(r.ops, op{name: "text", x: x, y: y, text: s, font: f.Asset().Name, size: size, fill: r.fill})
}

func (r *recorder) TextEnd(x, y float64, s string, f Font, size float64) {
	r.ops = append(r.ops, op{name: "textend", x: x, y: y, text: s, font: f.Asset().Name, size: size, fill: r.fill})
}

func (r *recorder) TextWidth(s string, f Font, size float64) float64 {
	return float64(len([]rune(s)) * 10)
}

func (r *recorder) Close() error {
	if r.closed {
		return fmt.Errorf("canvas closed twice")
	}
	r.closed = true
	return nil
}

func (r *recorder) find(name, text string) (op, bool) {
	for _, o := range r.ops {
		if o.name == name && (text == "" || o.text == text) {
			return o, true
		}
	}
	return op{}, false
}

func (r *recorder) count(name string) int {
	n := 0
	for _, o := range r.ops {
		if o.name == name {
			n++
		}
	}
	return n
}

// centerRecorder is a recorder that centers text itself.
type centerRecorder struct{ *recorder }

func (r centerRecorder) TextCenter(x, y float64, s string, f Font, size float64) {
	r.ops = append(r.ops, op{name: "textcenter", x: x, y: y, text: s, font: f.Asset().Name, size: size, fill: r.fill})
}

type recordingBackend struct {
	w, h     int
	failOpen bool
	failFont string
	center   bool

	opened   []*recorder
	loaded   []string
	unloaded []string
}

func (b *recordingBackend) Open() (Canvas, error) {
	if b.failOpen {
		return nil, errors.New("no display")
	}
	r := &recorder{backend: b, w: b.w, h: b.h}
	b.opened = append(b.opened, r)
	if b.center {
		return centerRecorder{r}, nil
	}
	return r, nil
}

func (b *recordingBackend) last() *recorder {
	return b.opened[len(b.opened)-1]
}
