package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-owen/toika-loom-client/internal/backend"
	"github.com/r-owen/toika-loom-client/internal/logging/events"
	"github.com/r-owen/toika-loom-client/internal/transport"
	"github.com/r-owen/toika-loom-client/internal/ui"
)

const (
	dialTimeout   = 10 * time.Second
	watchDebounce = 500 * time.Millisecond
	watchInterval = 1500 * time.Millisecond
)

// Config describes user-provided application options.
type Config struct {
	ServerURL     string
	Width         int
	Height        int
	ShowFooter    bool
	Verbose       bool
	WatchDir      string
	PixelsPerCell int
	SnapshotDir   string
	Files         []string
}

// Run connects to the loom server and executes the Bubble Tea program until
// the operator quits.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dialCtx, dialCancel := context.WithTimeout(ctx, dialTimeout)
	client, err := transport.Dial(dialCtx, cfg.ServerURL)
	dialCancel()
	if err != nil {
		return fmt.Errorf("connect to loom server: %w", err)
	}
	defer client.Close()

	var watcher *backend.Watcher
	if cfg.WatchDir != "" {
		watcher, err = backend.NewWatcher(cfg.WatchDir, watchDebounce, watchInterval)
		if err != nil {
			return fmt.Errorf("watch %s: %w", cfg.WatchDir, err)
		}
		defer watcher.Stop()
	}

	model := ui.NewModel(ui.Options{
		Context:       ctx,
		Sender:        client,
		Events:        client.Events(),
		Watcher:       watcher,
		Width:         cfg.Width,
		Height:        cfg.Height,
		ShowFooter:    cfg.ShowFooter,
		Verbose:       cfg.Verbose,
		PixelsPerCell: cfg.PixelsPerCell,
		SnapshotDir:   cfg.SnapshotDir,
		InitialFiles:  cfg.Files,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if err != nil {
		events.App.Stop(err.Error())
	} else {
		events.App.Stop("quit")
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
