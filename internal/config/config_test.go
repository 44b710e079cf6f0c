package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Zuo-Peng/chat-wrapped/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	t.Setenv("VIEWER", "feh")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, stats.DefaultYear, cfg.Year)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.False(t, cfg.StrictYear)
	assert.Equal(t, "feh", cfg.Viewer)
}

func TestLoadFileOverlay(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := writeConfig(t, `
year = 2024
timezone = "Europe/Rome"
strict_year = true
stop_words = ["italy", "trip"]
viewer = "~/bin/imgcat"
`)
	cfg, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, 2024, cfg.Year)
	assert.Equal(t, "Europe/Rome", cfg.Timezone)
	assert.True(t, cfg.StrictYear)
	assert.Equal(t, []string{"italy", "trip"}, cfg.StopWords)
	assert.Equal(t, filepath.Join(home, "bin", "imgcat"), cfg.Viewer)
}

func TestLoadFileInvalid(t *testing.T) {
	p := writeConfig(t, "year = [")
	_, err := LoadFile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), p)
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantLoc string
		wantErr bool
	}{
		{name: "local", cfg: Config{Year: 2025, Timezone: "Local"}, wantLoc: time.Local.String()},
		{name: "empty zone", cfg: Config{Year: 2025}, wantLoc: time.Local.String()},
		{name: "utc", cfg: Config{Year: 2025, Timezone: "UTC"}, wantLoc: "UTC"},
		{name: "iana", cfg: Config{Year: 2025, Timezone: "Asia/Tokyo"}, wantLoc: "Asia/Tokyo"},
		{name: "bad zone", cfg: Config{Year: 2025, Timezone: "Mars/Olympus"}, wantErr: true},
		{name: "bad year", cfg: Config{Year: 12, Timezone: "UTC"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.cfg.Options()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Year, opts.Year)
			assert.Equal(t, tt.wantLoc, opts.Location.String())
		})
	}
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/h/x", expandHome("~/x", "/h"))
	assert.Equal(t, "~", expandHome("~", "/h"))
	assert.Equal(t, "/abs", expandHome("/abs", "/h"))
	assert.Equal(t, "xdg-open", expandHome("xdg-open", "/h"))
}
