package daemon

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"github.com/jinjinsansan/kanjou/internal/localstore"
	"github.com/jinjinsansan/kanjou/internal/remote"
	"github.com/jinjinsansan/kanjou/internal/schema"
	"github.com/jinjinsansan/kanjou/internal/sync"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func setupStores(t *testing.T) (*localstore.Store, *remote.Store) {
	t.Helper()

	local, err := localstore.Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("failed to open local store: %v", err)
	}

	rs, err := remote.Open(filepath.Join(t.TempDir(), "remote.db"))
	if err != nil {
		t.Fatalf("failed to open remote store: %v", err)
	}
	t.Cleanup(func() { rs.Close() })
	if err := rs.InitSchema(context.Background()); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return local, rs
}

func TestNew(t *testing.T) {
	local, rs := setupStores(t)
	svc := sync.New(local, rs, testLogger())

	tests := []struct {
		name      string
		svc       sync.Service
		watchPath string
		wantErr   bool
	}{
		{
			name:      "valid configuration",
			svc:       svc,
			watchPath: local.EntriesPath(),
			wantErr:   false,
		},
		{
			name:      "nil service",
			svc:       nil,
			watchPath: local.EntriesPath(),
			wantErr:   true,
		},
		{
			name:      "empty watch path",
			svc:       svc,
			watchPath: "",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.svc, tt.watchPath, DefaultConfig())
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if d != nil {
				_ = d.Stop()
			}
		})
	}
}

func TestStart_ReleasesWatcherOnStartupFailure(t *testing.T) {
	local, err := localstore.Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("failed to open local store: %v", err)
	}

	// An offline service fails the initial push immediately.
	svc := sync.New(local, nil, testLogger())

	cfg := &Config{
		PullInterval:     time.Hour,
		DebounceInterval: 20 * time.Millisecond,
		Logger:           testLogger(),
	}
	d, err := New(svc, local.EntriesPath(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := d.Start(context.Background()); err == nil {
		t.Fatal("Start should fail when the initial push fails")
	}

	// The failed startup must not leak the watcher or its context.
	if err := d.watcher.Add(t.TempDir()); err == nil {
		t.Error("watcher still open after failed Start")
	}
	select {
	case <-d.ctx.Done():
	default:
		t.Error("daemon context not cancelled after failed Start")
	}
}

func TestDaemon_PushesOnFileChange(t *testing.T) {
	local, rs := setupStores(t)
	if err := local.SetUsername("hana"); err != nil {
		t.Fatal(err)
	}
	svc := sync.New(local, rs, testLogger())

	pushed := make(chan int, 10)
	cfg := &Config{
		PullInterval:     time.Hour,
		DebounceInterval: 20 * time.Millisecond,
		Logger:           testLogger(),
		OnPush:           func(n int, _ time.Duration) { pushed <- n },
	}

	d, err := New(svc, local.EntriesPath(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	// Initial push on an empty collection.
	select {
	case n := <-pushed:
		if n != 0 {
			t.Errorf("initial push = %d, want 0", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for initial push")
	}

	entry := schema.RawRecord{
		"id": "d-1", "date": "2024-03-01", "emotion": "fear",
		"event": "x", "created_at": "2024-03-01T00:00:00Z",
	}
	if err := local.SaveEntries([]schema.RawRecord{entry}); err != nil {
		t.Fatal(err)
	}

	select {
	case n := <-pushed:
		if n != 1 {
			t.Errorf("change push = %d, want 1", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change push")
	}

	count, err := rs.DiaryCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("remote count = %d, want 1", count)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not shut down")
	}
}

func TestDaemon_PullsConsentsOnStartup(t *testing.T) {
	local, rs := setupStores(t)
	svc := sync.New(local, rs, testLogger())
	ctx := context.Background()

	histories := []schema.ConsentHistory{
		{ID: "c-1", LineUsername: "hana", ConsentGiven: true, ConsentDate: "2024-01-01"},
	}
	if err := rs.UpsertConsentHistories(ctx, histories); err != nil {
		t.Fatal(err)
	}

	pulled := make(chan int, 10)
	cfg := &Config{
		PullInterval:     time.Hour,
		DebounceInterval: 20 * time.Millisecond,
		Logger:           testLogger(),
		OnPull:           func(n int) { pulled <- n },
	}

	d, err := New(svc, local.EntriesPath(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- d.Start(runCtx) }()

	// The startup pull should already populate the cache.
	select {
	case n := <-pulled:
		if n != 1 {
			t.Errorf("startup pull = %d, want 1", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for startup pull")
	}

	got := local.LoadConsents()
	if len(got) != 1 || got[0].ID != "c-1" {
		t.Errorf("consent cache = %+v", got)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not shut down")
	}
}
