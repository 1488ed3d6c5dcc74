package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsPatternFile(t *testing.T) {
	for path, want := range map[string]bool{
		"a.wif":      true,
		"dir/B.WIF":  true,
		"c.dtx":      true,
		"notes.txt":  false,
		"wif":        false,
		"p1.wif.swp": false,
	} {
		if got := IsPatternFile(path); got != want {
			t.Fatalf("IsPatternFile(%q): expected %v, got %v", path, want, got)
		}
	}
}

func TestWatcherBatchesPatternFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, 50*time.Millisecond, 0)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	for _, name := range []string{"p2.wif", "p1.wif", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	seen := map[string]bool{}
	deadline := time.After(3 * time.Second)
	for len(seen) < 2 {
		select {
		case evt := <-w.Events():
			if evt.Kind == KindError {
				t.Fatalf("watch error: %v", evt.Err)
			}
			for _, f := range evt.Files {
				if !IsPatternFile(f) {
					t.Fatalf("unexpected file in batch: %s", f)
				}
				seen[filepath.Base(f)] = true
			}
		case <-deadline:
			t.Fatalf("timeout waiting for batch, saw %v", seen)
		}
	}
	if !seen["p1.wif"] || !seen["p2.wif"] {
		t.Fatalf("expected both pattern files, got %v", seen)
	}
}

func TestWatcherRejectsMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), time.Millisecond, 0); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
