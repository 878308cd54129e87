package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcher(t *testing.T) {
	config := WatchConfig{
		Enabled:        true,
		DebounceDelay:  "100ms",
		FileExtensions: []string{"csv", ".YAML"},
		ExcludeDirs:    []string{".git"},
	}

	watcher, err := NewWatcher(config, t.TempDir(), nil)
	require.NoError(t, err)
	defer watcher.Stop()

	// Extensions are normalized to dotted lower case.
	assert.True(t, watcher.extensions[".csv"])
	assert.True(t, watcher.extensions[".yaml"])
	assert.True(t, watcher.excludes[".git"])
}

func TestWatchConfigGetDebounceDelay(t *testing.T) {
	tests := []struct {
		name   string
		delay  string
		expect time.Duration
	}{
		{name: "valid duration", delay: "100ms", expect: 100 * time.Millisecond},
		{name: "empty string uses default", delay: "", expect: 500 * time.Millisecond},
		{name: "invalid duration uses default", delay: "invalid", expect: 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := WatchConfig{DebounceDelay: tt.delay}
			assert.Equal(t, tt.expect, config.GetDebounceDelay())
		})
	}
}

func TestDefaultWatchConfig(t *testing.T) {
	config := DefaultWatchConfig()

	assert.False(t, config.Enabled)
	assert.Equal(t, "500ms", config.DebounceDelay)
	assert.Equal(t, []string{".csv", ".yaml", ".yml"}, config.FileExtensions)
}

func TestWatcherStartMissingDir(t *testing.T) {
	watcher, err := NewWatcher(DefaultWatchConfig(), filepath.Join(t.TempDir(), "absent"), nil)
	require.NoError(t, err)
	defer watcher.Stop()

	err = watcher.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data directory")
}

func TestWatcherFileCreation(t *testing.T) {
	dir := t.TempDir()

	config := WatchConfig{
		Enabled:        true,
		DebounceDelay:  "50ms",
		FileExtensions: []string{".csv"},
	}

	watcher, err := NewWatcher(config, dir, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, watcher.Start(ctx))
	defer watcher.Stop()

	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "activity.csv")
	require.NoError(t, os.WriteFile(path, []byte("uk_sic_2007,activity\n"), 0644))

	select {
	case event := <-watcher.Events():
		assert.Equal(t, WatchOpCreate, event.Operation)
		assert.Equal(t, "activity.csv", event.Path)
	case <-time.After(1 * time.Second):
		t.Error("timeout waiting for create event")
	}
}

func TestWatcherFileDeletion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "structure.csv")
	require.NoError(t, os.WriteFile(path, []byte("description,section\n"), 0644))

	config := WatchConfig{
		Enabled:        true,
		DebounceDelay:  "50ms",
		FileExtensions: []string{".csv"},
	}

	watcher, err := NewWatcher(config, dir, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, watcher.Start(ctx))
	defer watcher.Stop()

	watcher.SetHash("structure.csv", "some-hash")

	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.Remove(path))

	select {
	case event := <-watcher.Events():
		assert.Equal(t, WatchOpDelete, event.Operation)
		assert.Equal(t, "structure.csv", event.Path)
	case <-time.After(1 * time.Second):
		t.Error("timeout waiting for delete event")
	}
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()

	config := WatchConfig{
		Enabled:        true,
		DebounceDelay:  "50ms",
		FileExtensions: []string{".csv"},
	}

	watcher, err := NewWatcher(config, dir, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	require.NoError(t, watcher.Start(ctx))
	defer watcher.Stop()

	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0644))

	select {
	case event := <-watcher.Events():
		t.Errorf("unexpected event for unwatched extension: %+v", event)
	case <-time.After(300 * time.Millisecond):
		// No event expected
	}
}

func TestWatcherSetGetHash(t *testing.T) {
	watcher, err := NewWatcher(DefaultWatchConfig(), t.TempDir(), nil)
	require.NoError(t, err)
	defer watcher.Stop()

	watcher.SetHash("metadata.yaml", "abc123")

	hash, ok := watcher.GetHash("metadata.yaml")
	assert.True(t, ok)
	assert.Equal(t, "abc123", hash)

	_, ok = watcher.GetHash("absent.yaml")
	assert.False(t, ok)

	assert.Zero(t, watcher.DroppedEvents())
}
