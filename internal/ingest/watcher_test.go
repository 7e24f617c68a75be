package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// A burst of file events overlapping the debounce window must not
// corrupt the pending set; every written receipt is eventually emitted.
func TestWatcherDebounceBurst(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, errs, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{dir},
		Debounce: time.Millisecond,
	}, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err != nil {
		t.Fatalf("StartWatcher() error = %v", err)
	}

	const n = 120
	for i := 0; i < n; i++ {
		name := filepath.Join(dir, fmt.Sprintf("receipt-%03d.pdf", i))
		if err := os.WriteFile(name, []byte("pdf bytes"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	seen := map[string]struct{}{}
	for len(seen) < n {
		select {
		case p, ok := <-events:
			if !ok {
				t.Fatalf("event channel closed after %d of %d paths", len(seen), n)
			}
			seen[p] = struct{}{}
		case werr := <-errs:
			t.Fatalf("watcher error: %v", werr)
		case <-ctx.Done():
			t.Fatalf("timed out after %d of %d paths", len(seen), n)
		}
	}
}

func TestWatcherRejectsEmptyRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{}, nil)
	if err == nil {
		t.Fatal("expected error for empty roots")
	}
}
