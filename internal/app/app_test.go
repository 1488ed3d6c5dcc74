package app

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/r-owen/toika-loom-client/internal/testutil"
)

func TestRunFailsWithoutServer(t *testing.T) {
	err := Run(Config{ServerURL: "ws://127.0.0.1:1/ws"})
	if err == nil || !strings.Contains(err.Error(), "connect to loom server") {
		t.Fatalf("expected connect error, got %v", err)
	}
}

func TestRunFailsOnMissingWatchDir(t *testing.T) {
	server := testutil.StartLoomServer(t)
	missing := filepath.Join(t.TempDir(), "missing")
	err := Run(Config{ServerURL: server.URL(), WatchDir: missing})
	if err == nil || !strings.Contains(err.Error(), "watch "+missing) {
		t.Fatalf("expected watch error, got %v", err)
	}
}
