package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cltest "github.com/teranos/consentlens/internal/testing"
)

func TestScheduleCoalescesBurst(t *testing.T) {
	calls := make(chan []string, 4)
	w, err := New(func(changed []string) { calls <- changed }, WithDebounce(30*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	w.schedule("/docs/b.txt")
	w.schedule("/docs/a.txt")
	w.schedule("/docs/b.txt")

	select {
	case changed := <-calls:
		assert.Equal(t, []string{"/docs/a.txt", "/docs/b.txt"}, changed)
	case <-time.After(2 * time.Second):
		t.Fatal("callback not called")
	}

	select {
	case extra := <-calls:
		t.Fatalf("unexpected second callback: %v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRelevant(t *testing.T) {
	assert.True(t, relevant(fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}))
	assert.True(t, relevant(fsnotify.Event{Name: "notes.txt", Op: fsnotify.Remove}))
	assert.False(t, relevant(fsnotify.Event{Name: "notes.txt", Op: fsnotify.Chmod}))
	assert.False(t, relevant(fsnotify.Event{Name: "consentlens.toml.back1", Op: fsnotify.Create}))
}

func TestRunReportsFileChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))

	calls := make(chan []string, 8)
	w, err := New(func(changed []string) { calls <- changed }, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	path := cltest.WriteFile(t, dir, "nested/email.txt", "Boston")

	select {
	case changed := <-calls:
		assert.Contains(t, changed, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestAddMissingPath(t *testing.T) {
	w, err := New(func([]string) {})
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Add(filepath.Join(t.TempDir(), "missing")))
}
