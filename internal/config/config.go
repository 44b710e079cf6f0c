package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Zuo-Peng/chat-wrapped/internal/stats"
)

type Config struct {
	Year       int      `toml:"year"`
	Timezone   string   `toml:"timezone"`
	StrictYear bool     `toml:"strict_year"`
	StopWords  []string `toml:"stop_words"`
	Viewer     string   `toml:"viewer"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Year:     stats.DefaultYear,
		Timezone: "Local",
		Viewer:   defaultViewer(),
	}
}

// Path is where Load looks for the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wrapped", "config.toml"), nil
}

func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(p)
}

// LoadFile overlays the file at path onto the defaults. A missing file is
// not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		cfg.Viewer = expandHome(cfg.Viewer, home)
	}
	return cfg, nil
}

// Location resolves Timezone. "" and "Local" mean the machine zone.
func (c *Config) Location() (*time.Location, error) {
	switch strings.TrimSpace(c.Timezone) {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Options converts the config into engine options.
func (c *Config) Options() (stats.Options, error) {
	loc, err := c.Location()
	if err != nil {
		return stats.Options{}, err
	}
	if c.Year < 1970 {
		return stats.Options{}, fmt.Errorf("year %d out of range", c.Year)
	}
	return stats.Options{
		Year:       c.Year,
		Location:   loc,
		StrictYear: c.StrictYear,
		StopWords:  c.StopWords,
	}, nil
}

func defaultViewer() string {
	if v := os.Getenv("VIEWER"); v != "" {
		return v
	}
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
