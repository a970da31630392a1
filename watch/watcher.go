// Package watch reports changes to simulation log files so the graph can be
// rebuilt when a run is re-recorded.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config configures the file watcher
type Config struct {
	// Paths are the files to watch. Their directories are watched so that
	// editors replacing a file by rename are still seen.
	Paths []string

	// DebounceDelay is how long to wait for more changes before reporting
	DebounceDelay time.Duration

	// Logger for logging events
	Logger *slog.Logger
}

// Operation indicates the type of file operation
type Operation string

const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Event represents a settled change to one watched file
type Event struct {
	// Path is the watched file path as given in Config.Paths
	Path string

	// Operation is the type of change
	Operation Operation

	// Hash is the SHA-256 of the new content (empty for deletes)
	Hash string

	// Error if the file could not be read
	Error error
}

// Watcher watches log files and emits an event once their content settles
type Watcher struct {
	config  Config
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// absolute path → path as configured
	targets map[string]string

	// Debouncing: collect changes before processing
	pendingMu  sync.Mutex
	pending    map[string]fsnotify.Op
	lastChange time.Time

	// State tracking for change detection
	hashMu sync.RWMutex
	hashes map[string]string

	// Output channel
	events chan Event
}

// NewWatcher creates a new file watcher
func NewWatcher(config Config) (*Watcher, error) {
	if len(config.Paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = 100 * time.Millisecond
	}

	targets := make(map[string]string, len(config.Paths))
	for _, p := range config.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		targets[abs] = p
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		targets: targets,
		pending: make(map[string]fsnotify.Op),
		hashes:  make(map[string]string),
		events:  make(chan Event, 100),
	}, nil
}

// Events returns the channel of watch events. It is closed once the watcher
// stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching. The current content of each file is recorded so
// only later changes are reported.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := make(map[string]struct{})
	for abs := range w.targets {
		dirs[filepath.Dir(abs)] = struct{}{}
		if hash, err := hashFile(abs); err == nil {
			w.setHash(abs, hash)
		}
	}

	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Debug("Watching directory", "path", dir)
	}

	go w.processEvents(ctx)

	w.logger.Info("File watcher started",
		"files", len(w.targets),
		"debounce", w.config.DebounceDelay)

	return nil
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) setHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

func (w *Watcher) getHash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

func (w *Watcher) deleteHash(path string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	delete(w.hashes, path)
}

// processEvents handles fsnotify events with debouncing
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	ticker := time.NewTicker(w.config.DebounceDelay / 2)
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

// handleFSEvent records a change to a watched file
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if _, ok := w.targets[abs]; !ok {
		return
	}

	w.pendingMu.Lock()
	w.pending[abs] |= event.Op
	w.lastChange = time.Now()
	w.pendingMu.Unlock()

	w.logger.Debug("File change detected",
		"path", event.Name,
		"op", event.Op.String())
}

// flushPending processes accumulated changes once no new change has arrived
// for the debounce delay
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 || time.Since(w.lastChange) < w.config.DebounceDelay {
		w.pendingMu.Unlock()
		return
	}

	// Copy and clear pending
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for abs, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		event := Event{Path: w.targets[abs]}

		// Renames are followed by a create when an editor replaces the
		// file, so existence decides.
		if _, err := os.Stat(abs); os.IsNotExist(err) {
			if _, had := w.getHash(abs); !had {
				continue
			}
			w.deleteHash(abs)
			event.Operation = OpDelete
			w.sendEvent(event)
			continue
		}

		hash, err := hashFile(abs)
		if err != nil {
			event.Error = err
			w.sendEvent(event)
			continue
		}

		// Check if content actually changed
		oldHash, hadHash := w.getHash(abs)
		if hadHash && oldHash == hash {
			continue
		}
		w.setHash(abs, hash)

		if op.Has(fsnotify.Create) || !hadHash {
			event.Operation = OpCreate
		} else {
			event.Operation = OpModify
		}
		event.Hash = hash

		w.sendEvent(event)
	}
}

// sendEvent sends an event to the output channel
func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event",
			"path", event.Path,
			"op", event.Operation)
	default:
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path)
	}
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
