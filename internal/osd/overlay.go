// Package osd draws the playback on-screen display: title, wall clock,
// progress bar and position labels, on top of a video surface.
//
// An Overlay is not safe for concurrent use. Hosts that call in from
// several goroutines go through a Dispatcher.
package osd

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/depeter/couchosd/internal/fonts"
)

// ErrNoBackend is returned by Show on an overlay created without a backend.
var ErrNoBackend = errors.New("osd: no backend")

// State is the playback state the OSD was last drawn with.
type State struct {
	Title    string
	Played   int
	Duration int

	TimeNow string
	TimeEnd string
	PosNow  string
	PosEnd  string

	Width  int
	Height int
}

// Progress returns Played/Duration, or 0 when the duration is unknown.
func (s State) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Played) / float64(s.Duration)
}

// Overlay owns one OSD: its canvas, its fonts and its state. The canvas is
// opened on the first Show and released on Hide.
type Overlay struct {
	backend Backend
	now     func() time.Time
	log     *zap.SugaredLogger

	canvas   Canvas
	semibold Font
	bold     Font
	state    State
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithClock sets the source of the wall-clock time shown on the OSD.
func WithClock(now func() time.Time) Option {
	return func(o *Overlay) { o.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *Overlay) { o.log = l }
}

// New creates a hidden overlay drawing through b.
func New(b Backend, opts ...Option) *Overlay {
	o := &Overlay{
		backend: b,
		now:     time.Now,
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Shown reports whether the overlay currently holds a canvas.
func (o *Overlay) Shown() bool {
	return o.canvas != nil
}

// State returns the state of the last frame drawn.
func (o *Overlay) State() State {
	return o.state
}

// Hide removes the OSD and releases its canvas and fonts. Hiding a hidden
// overlay does nothing.
func (o *Overlay) Hide() error {
	return o.teardown()
}

func (o *Overlay) ensureInitialized() error {
	if o.canvas != nil {
		return nil
	}
	if o.backend == nil {
		return ErrNoBackend
	}

	c, err := o.backend.Open()
	if err != nil {
		return fmt.Errorf("open canvas: %w", err)
	}
	semibold, err := c.LoadFont(fonts.Semibold)
	if err != nil {
		c.Close()
		return fmt.Errorf("load font %s: %w", fonts.SemiboldName, err)
	}
	bold, err := c.LoadFont(fonts.Bold)
	if err != nil {
		c.UnloadFont(semibold)
		c.Close()
		return fmt.Errorf("load font %s: %w", fonts.BoldName, err)
	}

	o.canvas = c
	o.semibold = semibold
	o.bold = bold
	o.state = State{}
	o.state.Width, o.state.Height = c.Size()
	o.log.Debugw("canvas opened", "width", o.state.Width, "height", o.state.Height)
	return nil
}

func (o *Overlay) teardown() error {
	if o.canvas == nil {
		return nil
	}
	o.canvas.UnloadFont(o.bold)
	o.canvas.UnloadFont(o.semibold)
	err := o.canvas.Close()

	o.canvas = nil
	o.semibold = nil
	o.bold = nil
	o.state = State{}
	o.log.Debug("canvas closed")
	if err != nil {
		return fmt.Errorf("close canvas: %w", err)
	}
	return nil
}
