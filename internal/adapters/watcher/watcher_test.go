package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/folio-site/folio/internal/adapters/watcher"
	"github.com/folio-site/folio/internal/core/ports"
	"github.com/folio-site/folio/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func startWatcher(t *testing.T, roots ...string) <-chan ports.WatchEvent {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	w := watcher.NewWatcher(log)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, roots))
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})

	out := make(chan ports.WatchEvent, 64)
	go func() {
		defer close(out)
		for ev := range w.Events() {
			out <- ev
		}
	}()
	return out
}

func nextEvent(t *testing.T, events <-chan ports.WatchEvent) ports.WatchEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "event stream closed")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for watch event")
		return ports.WatchEvent{}
	}
}

func TestWatcher_ReportsSourceImagesOnly(t *testing.T) {
	root := t.TempDir()
	events := startWatcher(t, root)

	// Generated output must not be reported.
	require.NoError(t, os.WriteFile(filepath.Join(root, "hasnur-400w.webp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "srcsets.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	src := filepath.Join(root, "hasnur.jpg")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	ev := nextEvent(t, events)
	assert.Equal(t, src, ev.Path)
}

func TestWatcher_NewDirectory(t *testing.T) {
	root := t.TempDir()
	events := startWatcher(t, root)

	staged := filepath.Join(t.TempDir(), "album")
	require.NoError(t, os.MkdirAll(staged, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staged, "a.png"), []byte("x"), 0o644))

	moved := filepath.Join(root, "album")
	require.NoError(t, os.Rename(staged, moved))

	ev := nextEvent(t, events)
	assert.Equal(t, filepath.Join(moved, "a.png"), ev.Path)
	assert.Equal(t, ports.OpCreate, ev.Operation)

	// Files added later inside the new directory are watched too.
	later := filepath.Join(moved, "b.jpg")
	require.NoError(t, os.WriteFile(later, []byte("x"), 0o644))
	for {
		ev = nextEvent(t, events)
		if ev.Path == later {
			break
		}
	}
}

func TestWatcher_MissingRootIgnored(t *testing.T) {
	w := watcher.NewWatcher(nil)

	require.NoError(t, w.Start(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}))
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	for range w.Events() {
		t.Fatal("no events expected")
	}
}

func TestWatcher_StopBeforeStart(t *testing.T) {
	w := watcher.NewWatcher(nil)
	require.NoError(t, w.Stop())

	for range w.Events() {
		t.Fatal("no events expected")
	}
}
