package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/depeter/couchosd/internal/logging"
)

// Backend names accepted in [osd] backend. The setting selects how
// `couchosd serve` draws; `couchosd play` always draws through mpv and the
// shared library always rasterizes.
const (
	BackendRaster = "raster"
	BackendWindow = "window"
)

type Config struct {
	OSD      OSDConfig      `toml:"osd"`
	Raster   RasterConfig   `toml:"raster"`
	Window   WindowConfig   `toml:"window"`
	Playback PlaybackConfig `toml:"playback"`
	Log      logging.Config `toml:"log"`
}

type OSDConfig struct {
	Backend string `toml:"backend"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	// QueueDepth is how many show/hide requests may wait for the drawing goroutine.
	QueueDepth int `toml:"queue_depth"`
}

type RasterConfig struct {
	Framebuffer string `toml:"framebuffer"`
	PNGOutput   string `toml:"png_output"`
}

type WindowConfig struct {
	Width       int  `toml:"width"`
	Height      int  `toml:"height"`
	Floating    bool `toml:"floating"`
	Passthrough bool `toml:"passthrough"`
}

type PlaybackConfig struct {
	HWAccel  string `toml:"hwdec"`
	Volume   int    `toml:"volume"`
	KeepOpen bool   `toml:"keep_open"`
}

func DefaultConfig() *Config {
	return &Config{
		OSD: OSDConfig{
			Backend:    BackendRaster,
			Width:      1920,
			Height:     1080,
			QueueDepth: 16,
		},
		Raster: RasterConfig{
			Framebuffer: "/dev/fb0",
		},
		Window: WindowConfig{
			Width:       1920,
			Height:      1080,
			Floating:    true,
			Passthrough: true,
		},
		Playback: PlaybackConfig{
			HWAccel:  "auto-safe",
			Volume:   100,
			KeepOpen: true,
		},
		Log: logging.DefaultConfig(),
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.OSD.Backend {
	case BackendRaster, BackendWindow:
	default:
		return fmt.Errorf("osd.backend: unknown backend %q", c.OSD.Backend)
	}
	if c.OSD.Width <= 0 || c.OSD.Height <= 0 {
		return fmt.Errorf("osd: size %dx%d must be positive", c.OSD.Width, c.OSD.Height)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "couchosd"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config from the default path, falling back to defaults
// when there is no config file.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path over the defaults. A missing file
// yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
