package player

import (
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depeter/couchosd/internal/osd"
)

type fakeSink struct {
	frames  []string
	resX    int
	resY    int
	removed []int
}

func (s *fakeSink) SetOverlay(id int, data string, resX, resY int) error {
	s.frames = append(s.frames, data)
	s.resX, s.resY = resX, resY
	return nil
}

func (s *fakeSink) RemoveOverlay(id int) error {
	s.removed = append(s.removed, id)
	return nil
}

func TestASSColors(t *testing.T) {
	c := color.NRGBA{R: 209, G: 125, B: 30, A: 255}
	assert.Equal(t, "&H1E7DD1&", assColor(c))
	assert.Equal(t, "&H00&", assAlpha(c))
	assert.Equal(t, "&H7F&", assAlpha(color.NRGBA{A: 128}))
}

func TestASSEscape(t *testing.T) {
	assert.Equal(t, "a\\{b}\\Nc", assEscape("a{b}\nc"))
	assert.Equal(t, "x\\\u2060N", assEscape("x\\N"))
}

func TestASSRoundRect(t *testing.T) {
	assert.Equal(t,
		"m 10 20 l 90 20 b 96 20 100 24 100 30 l 100 40 b 100 46 96 50 90 50 l 10 50 b 4 50 0 46 0 40 l 0 30 b 0 24 4 20 10 20",
		assRoundRect(0, 20, 100, 30, 10, 10))
}

func TestASSFrame(t *testing.T) {
	sink := &fakeSink{}
	o := osd.New(NewASSBackend(sink, 1920, 1080), osd.WithClock(func() time.Time {
		return time.Date(2014, 1, 1, 13, 5, 0, 0, time.Local)
	}))

	require.NoError(t, o.Show(1023, 2503, "Test {Title}"))
	require.Len(t, sink.frames, 1)
	assert.Equal(t, 1920, sink.resX)
	assert.Equal(t, 1080, sink.resY)

	frame := sink.frames[0]
	lines := strings.Split(strings.TrimSuffix(frame, "\n"), "\n")
	assert.Contains(t, lines[0], "\\an1\\pos(32,858)")
	assert.Contains(t, lines[0], "}PAUSED")
	assert.Contains(t, frame, "\\1c&H1E7DD1&")
	assert.Contains(t, frame, "{\\an2\\pos(960,918)\\bord0\\shad0\\fnGo Medium\\fs20\\1c&HFFFFFF&\\1a&H00&}Test \\{Title}")
	assert.Contains(t, frame, "}01:05 PM")
	assert.Contains(t, frame, "\\an3\\pos(1874,918)")
	assert.Contains(t, frame, "}17:03\n")
	assert.Contains(t, frame, "}24:40\n")

	require.NoError(t, o.Hide())
	assert.Equal(t, []int{osdOverlayID}, sink.removed)
	require.NoError(t, o.Hide())
	assert.Len(t, sink.removed, 1)
}

func TestASSZeroWidthSkipped(t *testing.T) {
	c, err := NewASSBackend(&fakeSink{}, 100, 100).Open()
	require.NoError(t, err)
	ac := c.(*ASSCanvas)
	ac.Begin(100, 100)
	ac.RoundRect(10, 10, 0, 12, 10, 10)
	ac.Rect(10, 10, 5, 0)
	assert.Empty(t, ac.Frame())
}
