package player

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/depeter/couchosd/internal/osd"
)

type fakePlayback struct {
	paused   bool
	pos, dur float64
	title    string

	// onPaused runs inside Paused, before the state is read.
	onPaused func()
}

func (p *fakePlayback) Paused() bool {
	if p.onPaused != nil {
		p.onPaused()
	}
	return p.paused
}

func (p *fakePlayback) Position() float64 { return p.pos }
func (p *fakePlayback) Duration() float64 { return p.dur }
func (p *fakePlayback) Title() string     { return p.title }

func TestPauseOSD(t *testing.T) {
	sink := &fakeSink{}
	overlay := osd.New(NewASSBackend(sink, 1280, 720))
	d := osd.NewDispatcher(overlay, 8, nil)
	pb := &fakePlayback{pos: 61.9, dur: 3600.4, title: "mpv title"}
	c := NewPauseOSD(pb, d, zap.NewNop().Sugar())
	ctx := context.Background()

	pb.paused = true
	c.PauseChanged(ctx, true)
	d.Step()
	require.True(t, overlay.Shown())
	st := overlay.State()
	assert.Equal(t, 61, st.Played)
	assert.Equal(t, 3600, st.Duration)
	assert.Equal(t, "mpv title", st.Title)

	c.Title = "Test Title (2014)"
	c.PauseChanged(ctx, true)
	d.Step()
	assert.Equal(t, "Test Title (2014)", overlay.State().Title)
	assert.Len(t, sink.frames, 2)

	pb.paused = false
	c.PauseChanged(ctx, false)
	d.Step()
	assert.False(t, overlay.Shown())
	assert.Equal(t, []int{osdOverlayID}, sink.removed)
}

func TestResumeDuringRefreshHides(t *testing.T) {
	sink := &fakeSink{}
	overlay := osd.New(NewASSBackend(sink, 1280, 720))
	d := osd.NewDispatcher(overlay, 8, nil)
	pb := &fakePlayback{paused: true, pos: 10, dur: 100}
	c := NewPauseOSD(pb, d, zap.NewNop().Sugar())
	ctx := context.Background()

	resumed := make(chan struct{})
	pb.onPaused = func() {
		pb.onPaused = nil
		// the resume event arrives while the refresh is deciding
		go func() {
			defer close(resumed)
			c.PauseChanged(ctx, false)
		}()
	}

	c.refreshPaused(ctx)
	<-resumed
	assert.Equal(t, 2, d.Step())
	assert.False(t, overlay.Shown())
	assert.Len(t, sink.frames, 1)
	assert.Equal(t, []int{osdOverlayID}, sink.removed)
}

func TestRefreshSkippedWhenPlaying(t *testing.T) {
	overlay := osd.New(NewASSBackend(&fakeSink{}, 1280, 720))
	d := osd.NewDispatcher(overlay, 8, nil)
	c := NewPauseOSD(&fakePlayback{pos: 10, dur: 100}, d, zap.NewNop().Sugar())

	c.refreshPaused(context.Background())
	assert.Equal(t, 0, d.Step())
	assert.False(t, overlay.Shown())
}
