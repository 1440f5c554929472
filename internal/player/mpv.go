package player

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/gen2brain/go-mpv"
	"go.uber.org/zap"

	"github.com/depeter/couchosd/internal/config"
)

// Player wraps libmpv for video playback.
type Player struct {
	m        *mpv.Mpv
	mu       sync.Mutex
	log      *zap.SugaredLogger
	playing  bool
	paused   bool
	duration float64
	position float64
	title    string
	done     chan struct{}

	// Callbacks run on the event loop goroutine.
	OnPause       func(paused bool)
	OnPlaybackEnd func()
}

// New creates and initializes a new mpv player instance.
func New(cfg config.PlaybackConfig, log *zap.SugaredLogger) (*Player, error) {
	m := mpv.New()
	p := &Player{m: m, log: log, done: make(chan struct{})}

	// mpv draws the video, couchosd draws the OSD
	p.must(m.SetOptionString("hwdec", cfg.HWAccel))
	p.must(m.SetOptionString("vo", "gpu"))
	p.must(m.SetOptionString("osc", "no"))
	p.must(m.SetOptionString("osd-bar", "no"))
	p.must(m.SetOptionString("osd-on-seek", "no"))
	p.must(m.SetOptionString("input-default-bindings", "yes"))
	p.must(m.SetOptionString("input-vo-keyboard", "yes"))
	p.must(m.SetOptionString("volume", fmt.Sprintf("%d", cfg.Volume)))
	if cfg.KeepOpen {
		p.must(m.SetOptionString("keep-open", "yes"))
	}

	if err := m.Initialize(); err != nil {
		return nil, fmt.Errorf("mpv init: %w", err)
	}

	m.ObserveProperty(0, "time-pos", mpv.FormatDouble)
	m.ObserveProperty(0, "duration", mpv.FormatDouble)
	m.ObserveProperty(0, "pause", mpv.FormatFlag)
	m.ObserveProperty(0, "media-title", mpv.FormatString)

	go p.eventLoop()

	return p, nil
}

func (p *Player) must(err error) {
	if err != nil {
		p.log.Warnw("mpv option", "error", err)
	}
}

// LoadFile starts playback of a URL.
func (p *Player) LoadFile(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
	p.paused = false
	return p.m.Command([]string{"loadfile", url})
}

// TogglePause toggles pause state.
func (p *Player) TogglePause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.m.Command([]string{"cycle", "pause"})
}

// Stop stops playback.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	return p.m.Command([]string{"stop"})
}

// Quit asks mpv to shut down; Wait returns once it has.
func (p *Player) Quit() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.m.Command([]string{"quit"})
}

// Wait blocks until mpv shuts down.
func (p *Player) Wait() <-chan struct{} {
	return p.done
}

// Destroy cleans up the mpv instance.
func (p *Player) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m.TerminateDestroy()
}

// Playing returns whether media is currently loaded.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Paused returns the current pause state.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Position returns the current playback position in seconds.
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// Duration returns the total duration in seconds.
func (p *Player) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// Title returns mpv's media title for the current file.
func (p *Player) Title() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title
}

// SetOverlay replaces the ASS overlay with the given id.
func (p *Player) SetOverlay(id int, data string, resX, resY int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return osdOverlaySet(p.m, id, data, resX, resY)
}

// RemoveOverlay removes the ASS overlay with the given id.
func (p *Player) RemoveOverlay(id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return osdOverlayRemove(p.m, id)
}

func (p *Player) eventLoop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(p.done)
	for {
		ev := p.m.WaitEvent(1.0)
		if ev == nil {
			continue
		}

		switch ev.EventID {
		case mpv.EventPropertyChange:
			if ev.Data == nil {
				continue
			}
			prop := ev.Property()
			var pauseChanged, paused bool
			p.mu.Lock()
			switch prop.Name {
			case "time-pos":
				if v, ok := prop.Data.(float64); ok {
					p.position = v
				}
			case "duration":
				if v, ok := prop.Data.(float64); ok {
					p.duration = v
				}
			case "media-title":
				if v, ok := prop.Data.(string); ok {
					p.title = v
				}
			case "pause":
				if v, ok := prop.Data.(int); ok {
					paused = v == 1
					pauseChanged = paused != p.paused
					p.paused = paused
				}
			}
			p.mu.Unlock()
			if pauseChanged && p.OnPause != nil {
				p.OnPause(paused)
			}

		case mpv.EventEnd:
			p.mu.Lock()
			wasPlaying := p.playing
			p.playing = false
			p.mu.Unlock()
			if ev.Data != nil {
				ef := ev.EndFile()
				p.log.Infow("mpv end-file", "reason", ef.Reason, "wasPlaying", wasPlaying)
			}
			// Stop() clears playing before the stop command, so its end-file is ignored.
			if wasPlaying && p.OnPlaybackEnd != nil {
				p.OnPlaybackEnd()
			}

		case mpv.EventShutdown:
			return
		}
	}
}
