// Command libosd builds a shared library for hosts that drive the OSD
// through a C ABI:
//
//	go build -buildmode=c-shared -o libosd.so ./cmd/libosd
//
//	void show_osd(int played, int duration, char* title);
//	void hide_osd(void);
//
// Both calls return once the request is queued. Frames are rasterized and
// written to the framebuffer configured in [raster].
package main

import "C"

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/depeter/couchosd/internal/config"
	"github.com/depeter/couchosd/internal/osd"
	"github.com/depeter/couchosd/internal/raster"
)

var (
	startOnce  sync.Once
	dispatcher *osd.Dispatcher
	log        *zap.SugaredLogger
)

// start loads the config and starts the drawing goroutine on first use.
func start() {
	startOnce.Do(func() {
		cfg, cfgErr := config.Load()
		if cfgErr != nil {
			cfg = config.DefaultConfig()
		}
		l, err := cfg.Log.Build()
		if err != nil {
			l = zap.NewNop().Sugar()
		}
		log = l
		if cfgErr != nil {
			log.Warnw("using default config", "error", cfgErr)
		}
		if cfg.OSD.Backend != config.BackendRaster {
			log.Warnw("shared library draws with the raster backend", "configured", cfg.OSD.Backend)
		}

		overlay := osd.New(
			raster.New(cfg.OSD.Width, cfg.OSD.Height, raster.FromConfig(cfg.Raster)),
			osd.WithLogger(log.Named("osd")),
		)
		dispatcher = osd.NewDispatcher(overlay, cfg.OSD.QueueDepth, log.Named("dispatcher"))
		go dispatcher.Run(context.Background())
	})
}

//export show_osd
func show_osd(played, duration C.int, title *C.char) {
	start()
	// C.GoString copies, the caller may free title once we return
	t := C.GoString(title)
	if err := dispatcher.Show(context.Background(), int(played), int(duration), t); err != nil {
		log.Errorw("show_osd", "error", err)
	}
}

//export hide_osd
func hide_osd() {
	start()
	if err := dispatcher.Hide(context.Background()); err != nil {
		log.Errorw("hide_osd", "error", err)
	}
}

func main() {}
