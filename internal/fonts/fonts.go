// Package fonts holds the two font assets the OSD is drawn with and
// measures text against them.
package fonts

import (
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
)

// Names the OSD loads its fonts by.
const (
	SemiboldName = "semibold"
	BoldName     = "bold"
)

// Asset is an embedded TrueType font.
type Asset struct {
	Name   string
	Family string // family name as registered with the system, for backends that select fonts by name
	Data   []byte
}

var (
	Semibold = Asset{Name: SemiboldName, Family: "Go Medium", Data: gomedium.TTF}
	Bold     = Asset{Name: BoldName, Family: "Go Bold", Data: gobold.TTF}
)

var assets = map[string]Asset{
	SemiboldName: Semibold,
	BoldName:     Bold,
}

// Lookup returns the asset registered under name.
func Lookup(name string) (Asset, error) {
	a, ok := assets[name]
	if !ok {
		return Asset{}, fmt.Errorf("unknown font %q", name)
	}
	return a, nil
}
