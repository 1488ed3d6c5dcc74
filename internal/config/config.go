package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/r-owen/toika-loom-client/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envURL           = "TOIKA_LOOM_CLIENT_URL"
	envWidth         = "TOIKA_LOOM_CLIENT_WIDTH"
	envHeight        = "TOIKA_LOOM_CLIENT_HEIGHT"
	envShowFooter    = "TOIKA_LOOM_CLIENT_FOOTER"
	envVerbose       = "TOIKA_LOOM_CLIENT_VERBOSE"
	envTrace         = "TOIKA_LOOM_CLIENT_TRACE"
	envLogFile       = "TOIKA_LOOM_CLIENT_LOG_FILE"
	envWatch         = "TOIKA_LOOM_CLIENT_WATCH"
	envPixelsPerCell = "TOIKA_LOOM_CLIENT_PIXELS_PER_CELL"
	envSnapshotDir   = "TOIKA_LOOM_CLIENT_SNAPSHOT_DIR"
)

const (
	DefaultURL           = "ws://localhost:8000/ws"
	DefaultPixelsPerCell = 4
	MaxPixelsPerCell     = 8
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Positional
// arguments are pattern files to upload once connected.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("toika-loom-client", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	serverURL := fs.String("url", envOrDefault(env, envURL, DefaultURL), "websocket address of the loom server")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "always show the key help footer")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "show the last message read and the last command sent")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	watch := fs.String("watch", envOrDefault(env, envWatch, ""), "directory to watch for new pattern files")
	pixels := fs.Int("pixels-per-cell", envOrInt(env, envPixelsPerCell, DefaultPixelsPerCell), "canvas pixels per terminal cell (1-8)")
	snapshotDir := fs.String("snapshot-dir", envOrDefault(env, envSnapshotDir, "."), "directory for PNG snapshots")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *pixels < 1 || *pixels > MaxPixelsPerCell {
		return Config{}, fmt.Errorf("pixels-per-cell must be between 1 and %d (got %d)", MaxPixelsPerCell, *pixels)
	}

	files := append([]string(nil), fs.Args()...)
	cfg := Config{
		App: app.Config{
			ServerURL:     *serverURL,
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			Verbose:       *verbose,
			WatchDir:      *watch,
			PixelsPerCell: *pixels,
			SnapshotDir:   *snapshotDir,
			Files:         files,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"url":           *serverURL,
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"footer":        strconv.FormatBool(*footer),
			"trace":         strconv.FormatBool(*trace),
			"verbose":       strconv.FormatBool(*verbose),
			"logFile":       *logFile,
			"watch":         *watch,
			"pixelsPerCell": strconv.Itoa(*pixels),
			"snapshotDir":   *snapshotDir,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks the server address and any directories named on the
// command line.
func Validate(cfg Config) error {
	u, err := url.Parse(cfg.App.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", cfg.App.ServerURL, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("url must use ws or wss (got %q)", cfg.App.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("url has no host: %q", cfg.App.ServerURL)
	}
	for _, dir := range []struct{ flag, path string }{
		{"watch", cfg.App.WatchDir},
		{"snapshot-dir", cfg.App.SnapshotDir},
	} {
		if dir.path == "" {
			continue
		}
		info, err := os.Stat(dir.path)
		if err != nil {
			return fmt.Errorf("%s: %w", dir.flag, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s: %s is not a directory", dir.flag, dir.path)
		}
	}
	return nil
}
