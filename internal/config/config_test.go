package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serial:\n  port: /dev/ttyUSB0\nmatrix:\n  rotate: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.Baud)
	assert.True(t, cfg.Matrix.Rotate)
	assert.True(t, cfg.Matrix.ReverseOrder)
	assert.Equal(t, uint16(0x27), cfg.Bus.LCDAddr)
	assert.Equal(t, ":8585", cfg.Web.Addr)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	want := Default()
	want.Serial.Port = "/dev/ttyACM0"
	want.Web.Enabled = false
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLayoutFlags(t *testing.T) {
	cfg := Default()
	l := cfg.Layout()
	assert.True(t, l.ReverseOrder)
	assert.True(t, l.MirrorRows)
	assert.False(t, l.Rotate)
}
