package main

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/thatisuday/commando"

	"github.com/depeter/couchosd/internal/config"
	"github.com/depeter/couchosd/internal/control"
	"github.com/depeter/couchosd/internal/osd"
	"github.com/depeter/couchosd/internal/player"
	"github.com/depeter/couchosd/internal/raster"
	"github.com/depeter/couchosd/internal/ui"
)

func runSnapshot(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	cfg, log := setup(flags)
	defer log.Sync()

	played, err := strconv.Atoi(strings.TrimSpace(args["played"].Value))
	if err != nil {
		fatalf("invalid played seconds: %v", err)
	}
	duration, err := strconv.Atoi(strings.TrimSpace(args["duration"].Value))
	if err != nil {
		fatalf("invalid duration: %v", err)
	}
	title, _ := flags["title"].GetString()
	out, _ := flags["output"].GetString()
	if strings.TrimSpace(out) == "" {
		fatalf("output path is empty")
	}

	w, h := cfg.OSD.Width, cfg.OSD.Height
	if v, _ := flags["width"].GetInt(); v > 0 {
		w = v
	}
	if v, _ := flags["height"].GetInt(); v > 0 {
		h = v
	}

	overlay := osd.New(raster.New(w, h, raster.PNGFile(out)), osd.WithLogger(log.Named("osd")))
	if err := overlay.Show(played, duration, title); err != nil {
		fatalf("render: %v", err)
	}
	if err := overlay.Hide(); err != nil {
		fatalf("close: %v", err)
	}
	log.Infow("wrote snapshot", "path", out, "width", w, "height", h)
}

func runServe(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	cfg, log := setup(flags)
	defer log.Sync()

	backend := cfg.OSD.Backend
	if v, _ := flags["backend"].GetString(); v != "" {
		backend = v
	}

	ctx, stop := signalContext()
	defer stop()

	serve := func(d *osd.Dispatcher) {
		err := control.Serve(ctx, os.Stdin, d, log.Named("control"))
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Errorw("reading commands", "error", err)
		}
		log.Info("command input closed")
		stop()
	}

	switch backend {
	case config.BackendRaster:
		overlay := osd.New(raster.New(cfg.OSD.Width, cfg.OSD.Height, raster.FromConfig(cfg.Raster)), osd.WithLogger(log.Named("osd")))
		d := osd.NewDispatcher(overlay, cfg.OSD.QueueDepth, log.Named("dispatcher"))
		go serve(d)
		d.Run(ctx)

	case config.BackendWindow:
		b := ui.NewBackend(cfg.OSD.Width, cfg.OSD.Height)
		overlay := osd.New(b, osd.WithLogger(log.Named("osd")))
		d := osd.NewDispatcher(overlay, cfg.OSD.QueueDepth, log.Named("dispatcher"))
		go serve(d)
		if err := ui.Run(ctx, cfg.Window, b, d, log.Named("window")); err != nil {
			fatalf("overlay window: %v", err)
		}

	default:
		fatalf("serve: unknown backend %q, use raster or window", backend)
	}
}

func runPlay(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	cfg, log := setup(flags)
	defer log.Sync()

	url := strings.TrimSpace(args["url"].Value)
	if url == "" {
		fatalf("url is required")
	}
	title, _ := flags["title"].GetString()

	p, err := player.New(cfg.Playback, log.Named("mpv"))
	if err != nil {
		fatalf("%v", err)
	}
	defer p.Destroy()

	ctx, stop := signalContext()
	defer stop()

	overlay := osd.New(player.NewASSBackend(p, cfg.OSD.Width, cfg.OSD.Height), osd.WithLogger(log.Named("osd")))
	d := osd.NewDispatcher(overlay, cfg.OSD.QueueDepth, log.Named("dispatcher"))
	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		d.Run(ctx)
	}()

	pause := player.NewPauseOSD(p, d, log.Named("pause"))
	pause.Title = title
	pause.Attach(ctx, p)
	go pause.Run(ctx)

	if err := p.LoadFile(url); err != nil {
		fatalf("load %s: %v", url, err)
	}
	log.Infow("playing", "url", url)

	select {
	case <-ctx.Done():
	case <-p.Wait():
	}
	stop()
	<-dispatched

	select {
	case <-p.Wait():
	default:
		if err := p.Quit(); err != nil {
			log.Warnw("quit mpv", "error", err)
		}
		<-p.Wait()
	}
}
