//go:build !linux

package player

import (
	"errors"

	"github.com/gen2brain/go-mpv"
)

var errNoOverlay = errors.New("osd-overlay is only wired up on linux")

func osdOverlaySet(m *mpv.Mpv, id int, data string, resX, resY int) error {
	return errNoOverlay
}

func osdOverlayRemove(m *mpv.Mpv, id int) error {
	return errNoOverlay
}
