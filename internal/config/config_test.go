package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[osd]
backend = "window"
width = 1280
height = 720

[raster]
png_output = "/tmp/osd.png"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, BackendWindow, cfg.OSD.Backend)
	assert.Equal(t, 1280, cfg.OSD.Width)
	assert.Equal(t, 16, cfg.OSD.QueueDepth)
	assert.Equal(t, "/dev/fb0", cfg.Raster.Framebuffer)
	assert.Equal(t, "/tmp/osd.png", cfg.Raster.PNGOutput)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFileRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"backend": "[osd]\nbackend = \"opengl\"\n",
		"mpv":     "[osd]\nbackend = \"mpv\"\n",
		"size":    "[osd]\nwidth = 0\n",
		"level":   "[log]\nlevel = \"chatty\"\n",
		"syntax":  "[osd\n",
	} {
		path := filepath.Join(dir, name+".toml")
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
		_, err := LoadFile(path)
		assert.Error(t, err, name)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := DefaultConfig()
	cfg.OSD.Backend = BackendWindow
	cfg.OSD.Width = 1280
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendWindow, loaded.OSD.Backend)
	assert.Equal(t, 1280, loaded.OSD.Width)
}
