package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, paths ...string) *Watcher {
	t.Helper()
	w, err := NewWatcher(Config{
		Paths:         paths,
		DebounceDelay: 50 * time.Millisecond,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return w
}

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev, ok := <-w.Events():
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
		return Event{}
	}
}

func TestNewWatcherRequiresPaths(t *testing.T) {
	_, err := NewWatcher(Config{})
	assert.Error(t, err)
}

func TestWatcherReportsModification(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "run.json")
	require.NoError(t, os.WriteFile(logFile, []byte(`{}`), 0o644))

	w := newTestWatcher(t, logFile)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(logFile, []byte(`{"agents":[]}`), 0o644))

	ev := nextEvent(t, w)
	assert.Equal(t, logFile, ev.Path)
	assert.Equal(t, OpModify, ev.Operation)
	assert.NotEmpty(t, ev.Hash)
	assert.NoError(t, ev.Error)
}

func TestWatcherReportsCreate(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "later.json")

	w := newTestWatcher(t, logFile)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(logFile, []byte(`{}`), 0o644))

	ev := nextEvent(t, w)
	assert.Equal(t, OpCreate, ev.Operation)
}

func TestWatcherSkipsUnchangedContent(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "run.json")
	require.NoError(t, os.WriteFile(logFile, []byte(`{}`), 0o644))

	w := newTestWatcher(t, logFile)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	// same bytes: no event
	require.NoError(t, os.WriteFile(logFile, []byte(`{}`), 0o644))
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(logFile, []byte(`{"jointPlan":null}`), 0o644))

	ev := nextEvent(t, w)
	assert.Equal(t, OpModify, ev.Operation)
	hash, err := hashFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, hash, ev.Hash)
}

func TestWatcherClosesEventsOnStop(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, filepath.Join(dir, "run.json"))
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-w.Events():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}
