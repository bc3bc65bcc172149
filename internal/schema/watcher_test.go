package schema

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	watched := filepath.Join(dir, "doc.xml")
	ignored := filepath.Join(dir, "other.xml")
	require.NoError(t, os.WriteFile(watched, []byte("<a/>"), 0o644))
	require.NoError(t, os.WriteFile(ignored, []byte("<b/>"), 0o644))

	w, err := NewWatcher([]string{watched}, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(path string) {
			events <- path
		})
	}()

	select {
	case <-w.Ready:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}

	// A write to an unwatched sibling must not trigger a callback.
	require.NoError(t, os.WriteFile(ignored, []byte("<b>2</b>"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("<a>2</a>"), 0o644))

	select {
	case path := <-events:
		abs, err := filepath.Abs(watched)
		require.NoError(t, err)
		assert.Equal(t, abs, path)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a watch event for the watched file")
	}

	select {
	case path := <-events:
		t.Fatalf("unexpected extra event for %s", path)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "doc.xml")
	require.NoError(t, os.WriteFile(file, []byte("<a/>"), 0o644))

	w, err := NewWatcher([]string{file}, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = w.Watch(ctx, func(string) {})
	assert.ErrorIs(t, err, context.Canceled)
}
