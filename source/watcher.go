package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// eventChannelBuffer is the size of the watch event channel.
	eventChannelBuffer = 500
)

// WatchConfig configures data file watching.
type WatchConfig struct {
	// Enabled controls whether file watching is active.
	Enabled bool `yaml:"enabled"`

	// DebounceDelay is how long to wait for more changes before processing.
	DebounceDelay string `yaml:"debounce_delay"`

	// FileExtensions lists file extensions to watch (e.g., [".csv", ".yaml"]).
	FileExtensions []string `yaml:"file_extensions"`

	// ExcludeDirs lists directory names to skip (e.g., [".git"]).
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// DefaultWatchConfig returns default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Enabled:        false,
		DebounceDelay:  "500ms",
		FileExtensions: []string{".csv", ".yaml", ".yml"},
		ExcludeDirs:    []string{".git"},
	}
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c *WatchConfig) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return 500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// WatchEvent represents a data file change event.
type WatchEvent struct {
	// Path is the file path relative to the data directory.
	Path string

	// Operation is the type of change.
	Operation WatchOperation

	// AbsPath is the absolute file path.
	AbsPath string
}

// WatchOperation indicates the type of file operation.
type WatchOperation string

// WatchOpCreate, WatchOpModify, and WatchOpDelete enumerate the file watch operation types.
const (
	WatchOpCreate WatchOperation = "create"
	WatchOpModify WatchOperation = "modify"
	WatchOpDelete WatchOperation = "delete"
)

// Watcher watches the data directory for file changes and emits events.
// Events are debounced and filtered by content hash so a rewrite of a
// file with identical bytes produces no event.
type Watcher struct {
	config  WatchConfig
	dataDir string
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	extensions map[string]bool
	excludes   map[string]bool

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// Hash-based change detection
	hashMu sync.RWMutex
	hashes map[string]string

	// Output channel
	events chan WatchEvent

	// Metrics
	droppedEvents atomic.Int64
}

// NewWatcher creates a new data file watcher.
func NewWatcher(config WatchConfig, dataDir string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	// Build extension set
	extensions := make(map[string]bool)
	if len(config.FileExtensions) == 0 {
		extensions[".csv"] = true
		extensions[".yaml"] = true
		extensions[".yml"] = true
	} else {
		for _, ext := range config.FileExtensions {
			// Ensure extension starts with .
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			extensions[strings.ToLower(ext)] = true
		}
	}

	// Build exclude set
	excludes := make(map[string]bool)
	if len(config.ExcludeDirs) == 0 {
		excludes[".git"] = true
	} else {
		for _, dir := range config.ExcludeDirs {
			excludes[dir] = true
		}
	}

	return &Watcher{
		config:     config,
		dataDir:    dataDir,
		watcher:    fsw,
		logger:     logger,
		extensions: extensions,
		excludes:   excludes,
		pending:    make(map[string]fsnotify.Op),
		hashes:     make(map[string]string),
		events:     make(chan WatchEvent, eventChannelBuffer),
	}, nil
}

// Events returns the channel of watch events.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Start begins watching the data directory for changes.
func (w *Watcher) Start(ctx context.Context) error {
	// The data directory holds the published files and must already exist.
	info, err := os.Stat(w.dataDir)
	if err != nil {
		return fmt.Errorf("data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory is not a directory: %s", w.dataDir)
	}

	// Add watches recursively
	if err := w.addWatchesRecursive(w.dataDir); err != nil {
		return err
	}

	// Start the event processing goroutine
	go w.processEvents(ctx)

	w.logger.Info("Data watcher started",
		"data_dir", w.dataDir,
		"debounce", w.config.GetDebounceDelay(),
		"extensions", w.config.FileExtensions)

	return nil
}

// Stop stops the watcher.
// The events channel is closed by processEvents when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// SetHash records the hash for a file (used after an initial load).
func (w *Watcher) SetHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

// GetHash returns the recorded hash for a file.
func (w *Watcher) GetHash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

// addWatchesRecursive adds watches to all directories.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Only watch directories
		if !info.IsDir() {
			return nil
		}

		// Skip excluded and hidden directories
		base := filepath.Base(path)
		if w.excludes[base] || (strings.HasPrefix(base, ".") && base != ".") {
			return filepath.SkipDir
		}

		// Add watch
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				"path", path,
				"error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}

		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events) // Close events channel when goroutine exits
	ticker := time.NewTicker(w.config.GetDebounceDelay())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent processes a single fsnotify event.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	// Check if it's a watched file extension
	ext := strings.ToLower(filepath.Ext(path))
	if !w.extensions[ext] {
		// But handle directory creation (for new watches)
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return
	}

	// Skip files in excluded directories
	relPath, _ := filepath.Rel(w.dataDir, path)
	for excludeDir := range w.excludes {
		if strings.Contains(relPath, excludeDir+string(filepath.Separator)) {
			return
		}
	}

	// Accumulate pending changes
	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Data file change detected",
		"path", relPath,
		"op", event.Op.String())
}

// handleNewDirectory adds a watch to a newly created directory.
func (w *Watcher) handleNewDirectory(path string) {
	base := filepath.Base(path)
	if w.excludes[base] || strings.HasPrefix(base, ".") {
		return
	}

	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch new directory",
			"path", path,
			"error", err)
	} else {
		w.logger.Debug("Added watch for new directory", "path", path)
	}
}

// flushPending processes accumulated changes.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}

	// Copy and clear pending
	toProcess := make(map[string]fsnotify.Op)
	for k, v := range w.pending {
		toProcess[k] = v
	}
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	// Process each change
	for path, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		relPath, _ := filepath.Rel(w.dataDir, path)
		event := WatchEvent{
			Path:    relPath,
			AbsPath: path,
		}

		if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
			// File deleted or renamed
			event.Operation = WatchOpDelete

			// Remove from hash cache
			w.hashMu.Lock()
			delete(w.hashes, relPath)
			w.hashMu.Unlock()

			w.sendEvent(event)
			continue
		}

		// Check if file still exists
		if _, err := os.Stat(path); os.IsNotExist(err) {
			event.Operation = WatchOpDelete
			w.sendEvent(event)
			continue
		}

		// Read file and compute hash
		content, err := os.ReadFile(path)
		if err != nil {
			w.logger.Warn("Failed to read file for hash check",
				"path", relPath,
				"error", err)
			continue
		}

		newHash := contentHash(content)

		// Check if content actually changed
		oldHash, hadHash := w.GetHash(relPath)
		if hadHash && oldHash == newHash {
			// Content unchanged, skip
			continue
		}

		// Update hash cache
		w.SetHash(relPath, newHash)

		if op.Has(fsnotify.Create) || !hadHash {
			event.Operation = WatchOpCreate
		} else {
			event.Operation = WatchOpModify
		}

		w.sendEvent(event)
	}
}

// sendEvent sends an event to the output channel.
func (w *Watcher) sendEvent(event WatchEvent) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event",
			"path", event.Path,
			"op", event.Operation)
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}

// contentHash returns the hex SHA-256 of the file content.
func contentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
