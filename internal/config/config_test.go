package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.ServerURL != DefaultURL {
		t.Fatalf("expected default url, got %q", cfg.App.ServerURL)
	}
	if cfg.App.PixelsPerCell != DefaultPixelsPerCell {
		t.Fatalf("expected %d pixels per cell, got %d", DefaultPixelsPerCell, cfg.App.PixelsPerCell)
	}
	if cfg.App.SnapshotDir != "." {
		t.Fatalf("expected snapshot dir \".\", got %q", cfg.App.SnapshotDir)
	}
	if len(cfg.App.Files) != 0 {
		t.Fatalf("expected no files, got %v", cfg.App.Files)
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		envURL + "=ws://env:1/ws",
		envWidth + "=100",
		envVerbose + "=true",
		envPixelsPerCell + "=2",
	}
	cfg, err := LoadArgs([]string{"--url", "ws://flag:2/ws", "--height", "30", "a.wif", "b.dtx"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.ServerURL != "ws://flag:2/ws" {
		t.Fatalf("expected flag url, got %q", cfg.App.ServerURL)
	}
	if cfg.App.Width != 100 || cfg.App.Height != 30 {
		t.Fatalf("expected 100x30, got %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if !cfg.App.Verbose || !cfg.Features.Verbose {
		t.Fatalf("expected verbose from env")
	}
	if cfg.App.PixelsPerCell != 2 {
		t.Fatalf("expected 2 pixels per cell, got %d", cfg.App.PixelsPerCell)
	}
	if !reflect.DeepEqual(cfg.App.Files, []string{"a.wif", "b.dtx"}) {
		t.Fatalf("expected positional files, got %v", cfg.App.Files)
	}
	if cfg.Flags["url"] != "ws://flag:2/ws" {
		t.Fatalf("expected url recorded in flags, got %q", cfg.Flags["url"])
	}
}

func TestLoadArgsRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"negative width", []string{"--width", "-1"}, "width must be"},
		{"negative height", []string{"--height", "-2"}, "height must be"},
		{"zero pixels", []string{"--pixels-per-cell", "0"}, "pixels-per-cell"},
		{"too many pixels", []string{"--pixels-per-cell", "9"}, "pixels-per-cell"},
		{"unknown flag", []string{"--socket", "x"}, "flag provided but not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadArgs(tt.args, nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestEnvIgnoresGarbage(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"", "NOEQUALS", envWidth + "=abc", envTrace + "=maybe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 0 || cfg.Logging.Trace {
		t.Fatalf("expected fallbacks, got width %d trace %v", cfg.App.Width, cfg.Logging.Trace)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	base, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Validate(base); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"http scheme", func(c *Config) { c.App.ServerURL = "http://localhost:8000/ws" }, "ws or wss"},
		{"no host", func(c *Config) { c.App.ServerURL = "ws:///ws" }, "no host"},
		{"missing watch dir", func(c *Config) { c.App.WatchDir = filepath.Join(dir, "nope") }, "watch"},
		{"snapshot dir is file", func(c *Config) { c.App.SnapshotDir = file }, "not a directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.App.Files = nil
			tt.mutate(&cfg)
			err := Validate(cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	ok := base
	ok.App.WatchDir = dir
	ok.App.ServerURL = "wss://loom.example:443/ws"
	if err := Validate(ok); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
