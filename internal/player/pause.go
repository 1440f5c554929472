package player

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/depeter/couchosd/internal/osd"
)

// Playback is the part of Player the pause OSD reads.
type Playback interface {
	Paused() bool
	Position() float64
	Duration() float64
	Title() string
}

// PauseOSD shows the OSD while playback is paused and hides it on resume
// or when playback ends. While paused the OSD is redrawn every refresh
// interval so the clock stays current.
type PauseOSD struct {
	playback   Playback
	dispatcher *osd.Dispatcher
	log        *zap.SugaredLogger
	refresh    time.Duration

	// mu orders a refresh's pause check and its show against pause changes.
	mu sync.Mutex

	// Title overrides the media title reported by mpv when set.
	Title string
}

func NewPauseOSD(p Playback, d *osd.Dispatcher, log *zap.SugaredLogger) *PauseOSD {
	return &PauseOSD{
		playback:   p,
		dispatcher: d,
		log:        log,
		refresh:    time.Second,
	}
}

// Attach wires the controller to a player's callbacks. ctx bounds the
// requests made from those callbacks.
func (c *PauseOSD) Attach(ctx context.Context, p *Player) {
	p.OnPause = func(paused bool) { c.PauseChanged(ctx, paused) }
	p.OnPlaybackEnd = func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.hide(ctx)
	}
}

// PauseChanged shows or hides the OSD for the new pause state.
func (c *PauseOSD) PauseChanged(ctx context.Context, paused bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if paused {
		c.log.Debug("paused, showing OSD")
		c.show(ctx)
		return
	}
	c.log.Debug("resumed, hiding OSD")
	c.hide(ctx)
}

// Run redraws the OSD while paused until ctx is done.
func (c *PauseOSD) Run(ctx context.Context) {
	t := time.NewTicker(c.refresh)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.refreshPaused(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// refreshPaused redraws the OSD if playback is still paused. A resume
// reported meanwhile queues its hide after this show.
func (c *PauseOSD) refreshPaused(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playback.Paused() {
		c.show(ctx)
	}
}

func (c *PauseOSD) show(ctx context.Context) {
	title := c.Title
	if title == "" {
		title = c.playback.Title()
	}
	played := int(math.Floor(c.playback.Position()))
	duration := int(math.Floor(c.playback.Duration()))
	if err := c.dispatcher.Show(ctx, played, duration, title); err != nil {
		c.log.Warnw("queue show", "error", err)
	}
}

func (c *PauseOSD) hide(ctx context.Context) {
	if err := c.dispatcher.Hide(ctx); err != nil {
		c.log.Warnw("queue hide", "error", err)
	}
}
