package osd

import (
	"context"

	"go.uber.org/zap"
)

type commandKind int

const (
	cmdShow commandKind = iota
	cmdHide
)

type command struct {
	kind     commandKind
	played   int
	duration int
	title    string
}

// Dispatcher runs show and hide requests against one Overlay from a
// single goroutine, in the order they were made.
type Dispatcher struct {
	overlay *Overlay
	queue   chan command
	log     *zap.SugaredLogger
}

// NewDispatcher creates a dispatcher buffering up to depth pending requests.
func NewDispatcher(o *Overlay, depth int, log *zap.SugaredLogger) *Dispatcher {
	if depth < 1 {
		depth = 1
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Dispatcher{
		overlay: o,
		queue:   make(chan command, depth),
		log:     log,
	}
}

// Show queues a redraw of the OSD. It blocks while the queue is full.
func (d *Dispatcher) Show(ctx context.Context, played, duration int, title string) error {
	return d.enqueue(ctx, command{kind: cmdShow, played: played, duration: duration, title: title})
}

// Hide queues the removal of the OSD.
func (d *Dispatcher) Hide(ctx context.Context) error {
	return d.enqueue(ctx, command{kind: cmdHide})
}

func (d *Dispatcher) enqueue(ctx context.Context, c command) error {
	select {
	case d.queue <- c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes queued requests until ctx is done, then hides the OSD.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case c := <-d.queue:
			d.exec(c)
		case <-ctx.Done():
			d.Stop()
			return ctx.Err()
		}
	}
}

// Step executes every request queued so far without waiting for more.
// It returns the number of requests executed.
func (d *Dispatcher) Step() int {
	n := 0
	for {
		select {
		case c := <-d.queue:
			d.exec(c)
			n++
		default:
			return n
		}
	}
}

func (d *Dispatcher) exec(c command) {
	switch c.kind {
	case cmdShow:
		if err := d.overlay.Show(c.played, c.duration, c.title); err != nil {
			d.log.Errorw("show osd", "played", c.played, "duration", c.duration, "error", err)
		}
	case cmdHide:
		if err := d.overlay.Hide(); err != nil {
			d.log.Errorw("hide osd", "error", err)
		}
	}
}

// Stop hides the OSD immediately. Call it from the goroutine that runs
// Step or Run.
func (d *Dispatcher) Stop() {
	if err := d.overlay.Hide(); err != nil {
		d.log.Errorw("hide on shutdown", "error", err)
	}
}
