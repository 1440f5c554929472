package ui

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/depeter/couchosd/internal/config"
	"github.com/depeter/couchosd/internal/osd"
)

// Window implements ebiten.Game. It executes queued OSD requests on the
// game loop and shows the current frame on a transparent screen.
type Window struct {
	ctx        context.Context
	backend    *Backend
	dispatcher *osd.Dispatcher
	log        *zap.SugaredLogger
}

// NewWindow creates the game for a dispatcher whose overlay draws
// through backend.
func NewWindow(ctx context.Context, backend *Backend, d *osd.Dispatcher, log *zap.SugaredLogger) *Window {
	return &Window{ctx: ctx, backend: backend, dispatcher: d, log: log}
}

func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		w.dispatcher.Stop()
		return ebiten.Termination
	}
	if n := w.dispatcher.Step(); n > 0 {
		w.log.Debugw("osd requests executed", "count", n)
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	if frame := w.backend.Frame(); frame != nil {
		screen.DrawImage(frame, nil)
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.backend.Size()
}

// Run opens the overlay window and blocks until ctx is done or the window
// is closed.
func Run(ctx context.Context, cfg config.WindowConfig, backend *Backend, d *osd.Dispatcher, log *zap.SugaredLogger) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("couchosd")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(cfg.Floating)
	ebiten.SetWindowMousePassthrough(cfg.Passthrough)
	ebiten.SetRunnableOnUnfocused(true)

	w := NewWindow(ctx, backend, d, log)
	log.Infow("overlay window starting", "width", cfg.Width, "height", cfg.Height)
	return ebiten.RunGameWithOptions(w, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		InitUnfocused:     true,
	})
}
