package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thatisuday/commando"
	"go.uber.org/zap"

	"github.com/depeter/couchosd/internal/config"
)

func main() {
	commando.
		SetExecutableName("couchosd").
		SetVersion("v0.1.0").
		SetDescription("Playback on-screen display drawn on top of a video surface.")

	common(commando.
		Register("snapshot").
		SetShortDescription("render one OSD frame to PNG").
		SetDescription("Render the OSD for a playback position to a PNG file.").
		AddArgument("played", "elapsed seconds", "").
		AddArgument("duration", "total seconds, 0 when unknown", "").
		AddFlag("title,t", "title shown in the header", commando.String, "").
		AddFlag("output,o", "output PNG file", commando.String, "couchosd.png").
		AddFlag("width,W", "canvas width (0 uses config)", commando.Int, 0).
		AddFlag("height,H", "canvas height (0 uses config)", commando.Int, 0)).
		SetAction(runSnapshot)

	common(commando.
		Register("serve").
		SetShortDescription("draw OSD requests read from stdin").
		SetDescription("Read 'show <played> <duration> <title>' and 'hide' lines from stdin and draw them with the raster or window backend.").
		AddFlag("backend,b", "raster|window (empty uses config)", commando.String, "")).
		SetAction(runServe)

	common(commando.
		Register("play").
		SetShortDescription("play a file with mpv").
		SetDescription("Play a file or URL with mpv; the OSD is shown while playback is paused.").
		AddArgument("url", "file path or URL", "").
		AddFlag("title,t", "title shown in the header (defaults to mpv's media title)", commando.String, "")).
		SetAction(runPlay)

	commando.Parse(nil)
}

func common(c *commando.Command) *commando.Command {
	return c.
		AddFlag("config,c", "config file (default $XDG_CONFIG_HOME/couchosd/config.toml)", commando.String, "").
		AddFlag("verbose,V", "log debug output", commando.Bool, nil)
}

// setup loads the config and builds the logger for a command.
func setup(flags map[string]commando.FlagValue) (*config.Config, *zap.SugaredLogger) {
	var (
		cfg *config.Config
		err error
	)
	path, _ := flags["config"].GetString()
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fatalf("load config: %v", err)
	}
	if verbose, _ := flags["verbose"].GetBool(); verbose {
		cfg.Log.Level = "debug"
	}
	log, err := cfg.Log.Build()
	if err != nil {
		fatalf("init logging: %v", err)
	}
	return cfg, log
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "couchosd: "+format+"\n", args...)
	os.Exit(1)
}
