package fonts

import (
	"fmt"
	"sync"

	"github.com/bluele/gcache"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// faceKey identifies one rasterized size of one asset.
type faceKey struct {
	name string
	size float64
}

var (
	parseMu sync.Mutex
	parsed  = map[string]*opentype.Font{}

	// The OSD uses a handful of sizes, 32 entries is plenty.
	faces = gcache.New(32).LRU().LoaderFunc(loadFace).Build()
)

func parse(name string) (*opentype.Font, error) {
	parseMu.Lock()
	defer parseMu.Unlock()
	if f, ok := parsed[name]; ok {
		return f, nil
	}
	a, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(a.Data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	parsed[name] = f
	return f, nil
}

func loadFace(k interface{}) (interface{}, error) {
	key := k.(faceKey)
	f, err := parse(key.name)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Face returns a face for the asset at size pixels. Faces are cached and
// shared, so they must only be used from one goroutine at a time.
func Face(a Asset, size float64) (font.Face, error) {
	v, err := faces.Get(faceKey{name: a.Name, size: size})
	if err != nil {
		return nil, err
	}
	return v.(font.Face), nil
}

// Measure returns the advance width of s in pixels.
func Measure(a Asset, s string, size float64) (float64, error) {
	face, err := Face(a, size)
	if err != nil {
		return 0, err
	}
	adv := font.MeasureString(face, s)
	return float64(adv) / 64, nil
}
