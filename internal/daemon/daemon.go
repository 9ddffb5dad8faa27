// Package daemon provides the auto-sync daemon that watches the local
// diary collection and keeps the remote store current.
//
// The daemon:
//  1. Performs an initial push and consent pull on startup
//  2. Watches the diary slot file for changes
//  3. Pushes debounced changes to the remote store
//  4. Periodically refreshes the local consent cache from the remote
//  5. Handles graceful shutdown
package daemon

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	gosync "sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jinjinsansan/kanjou/internal/sync"
)

// Config holds configuration for the daemon.
type Config struct {
	// PullInterval is how often to refresh the consent cache.
	PullInterval time.Duration

	// DebounceInterval is how long to wait after a file change before
	// pushing, so rapid edits batch into one push.
	DebounceInterval time.Duration

	// Logger for daemon activity.
	Logger *log.Logger

	// OnPush, when set, is called after each successful push with the
	// number of records pushed and how long the push took.
	OnPush func(pushed int, took time.Duration)

	// OnPull, when set, is called after each successful consent pull.
	OnPull func(pulled int)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PullInterval:     5 * time.Minute,
		DebounceInterval: 500 * time.Millisecond,
		Logger:           log.New(os.Stderr, "[daemon] ", log.LstdFlags),
	}
}

// Daemon watches the diary slot file and reconciles on change.
type Daemon struct {
	svc       sync.Service
	watchPath string
	config    *Config

	watcher *fsnotify.Watcher

	changedAt time.Time
	dirty     bool
	changedMu gosync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     gosync.WaitGroup
}

// New creates a Daemon that watches watchPath (the diary slot file) and
// reconciles through svc. Use Start() to begin watching.
func New(svc sync.Service, watchPath string, config *Config) (*Daemon, error) {
	if svc == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if watchPath == "" {
		return nil, fmt.Errorf("watchPath cannot be empty")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.Logger == nil {
		config.Logger = log.New(os.Stderr, "[daemon] ", log.LstdFlags)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		svc:       svc,
		watchPath: watchPath,
		config:    config,
		watcher:   watcher,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Start begins the daemon's operation.
//
// This blocks until ctx is cancelled or startup fails.
func (d *Daemon) Start(ctx context.Context) error {
	d.config.Logger.Println("Starting auto-sync daemon")

	// Initial reconciliation so a fresh daemon is immediately current.
	// Startup failures release the watcher; no goroutines run yet.
	if err := d.push(ctx); err != nil {
		d.cancel()
		_ = d.watcher.Close()
		return fmt.Errorf("initial push failed: %w", err)
	}
	d.pull(ctx)

	// The slot file is replaced by rename on every save, so the watch
	// must be on its directory rather than the file itself.
	watchDir := filepath.Dir(d.watchPath)
	if err := d.watcher.Add(watchDir); err != nil {
		d.cancel()
		_ = d.watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", watchDir, err)
	}

	d.config.Logger.Printf("Watching: %s", d.watchPath)

	d.wg.Add(3)
	go d.watchFileEvents()
	go d.processChanges()
	go d.pullLoop()

	select {
	case <-ctx.Done():
		d.config.Logger.Println("Shutdown signal received")
		return d.Stop()
	case <-d.ctx.Done():
		return nil
	}
}

// Stop gracefully shuts down the daemon.
func (d *Daemon) Stop() error {
	d.config.Logger.Println("Stopping daemon")

	d.cancel()

	if err := d.watcher.Close(); err != nil {
		d.config.Logger.Printf("Error closing watcher: %v", err)
	}

	d.wg.Wait()

	d.config.Logger.Println("Daemon stopped")
	return nil
}

// watchFileEvents monitors filesystem events and marks the collection dirty.
func (d *Daemon) watchFileEvents() {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return

		case event, ok := <-d.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(d.watchPath) {
				continue
			}

			d.config.Logger.Printf("File event: %s %s", event.Op, event.Name)
			d.markDirty()

		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.config.Logger.Printf("Watcher error: %v", err)
		}
	}
}

// markDirty records that the collection changed.
func (d *Daemon) markDirty() {
	d.changedMu.Lock()
	defer d.changedMu.Unlock()

	d.dirty = true
	d.changedAt = time.Now()
}

// processChanges pushes once the debounce window has passed with no
// further changes.
func (d *Daemon) processChanges() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.DebounceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			return

		case <-ticker.C:
			if !d.takeDirty() {
				continue
			}
			if err := d.push(d.ctx); err != nil {
				d.config.Logger.Printf("Error pushing changes: %v", err)
				// Leave the collection marked dirty so the next tick retries.
				d.markDirty()
			}
		}
	}
}

// takeDirty consumes the dirty flag if the debounce window has elapsed.
func (d *Daemon) takeDirty() bool {
	d.changedMu.Lock()
	defer d.changedMu.Unlock()

	if !d.dirty || time.Since(d.changedAt) < d.config.DebounceInterval {
		return false
	}
	d.dirty = false
	return true
}

// pullLoop periodically refreshes the local consent cache.
func (d *Daemon) pullLoop() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.PullInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			return

		case <-ticker.C:
			d.pull(d.ctx)
		}
	}
}

// push sends the local diary collection to the remote store.
func (d *Daemon) push(ctx context.Context) error {
	start := time.Now()
	pushed, err := d.svc.PushDiaries(ctx)
	if err != nil {
		return err
	}

	took := time.Since(start)
	d.config.Logger.Printf("Pushed %d diaries in %v", pushed, took.Round(time.Millisecond))
	if d.config.OnPush != nil {
		d.config.OnPush(pushed, took)
	}
	return nil
}

// pull refreshes the consent cache. Pull failures are logged, not fatal:
// the cache simply stays stale until the next interval.
func (d *Daemon) pull(ctx context.Context) {
	pulled, err := d.svc.PullConsentHistories(ctx)
	if err != nil {
		d.config.Logger.Printf("Error pulling consent histories: %v", err)
		return
	}

	if pulled > 0 {
		d.config.Logger.Printf("Pulled %d consent histories", pulled)
	}
	if d.config.OnPull != nil {
		d.config.OnPull(pulled)
	}
}
