// Command kanjou is an emotion journal with a local-first store and an
// optional remote store kept consistent by a reconciliation service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jinjinsansan/kanjou/internal/config"
	"github.com/jinjinsansan/kanjou/internal/localstore"
	"github.com/jinjinsansan/kanjou/internal/remote"
	"github.com/jinjinsansan/kanjou/internal/sync"
	"github.com/jinjinsansan/kanjou/internal/ui"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "kanjou",
	Short: "Emotion journal with local-first storage and remote sync",
	Long: `Kanjou is an emotion journal. Entries always live in a local store
and optionally sync to a remote SQLite/libSQL database.

The local store is authoritative for diary entries; the remote store is
authoritative for consent histories. The app works fully offline: without
a remote configured, writes that need one report an error and reads
return empty results.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "directory containing kanjou.yaml")
}

// mustConfig loads configuration or exits.
func mustConfig() *config.Config {
	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// mustLocal opens the local store or exits.
func mustLocal(cfg *config.Config) *localstore.Store {
	local, err := localstore.Open(cfg.DataDir, cfg.Logger("[localstore] "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening local store: %v\n", err)
		os.Exit(1)
	}
	return local
}

// openRemote connects to the remote store, or returns nil when running
// local-only. A connection failure degrades to offline with a warning
// instead of aborting: every command still has its local behavior.
func openRemote(cfg *config.Config) *remote.Store {
	dsn := cfg.RemoteDSN()
	if dsn == "" {
		return nil
	}

	rs, err := remote.Open(dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s Remote unavailable: %v (continuing offline)\n", ui.RenderWarn("⚠"), err)
		return nil
	}
	if err := rs.InitSchema(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s Remote schema init failed: %v (continuing offline)\n", ui.RenderWarn("⚠"), err)
		_ = rs.Close()
		return nil
	}
	return rs
}

// newService wires the reconciliation service from config. The returned
// remote store may be nil (offline); callers that keep the service running
// must Close() it when non-nil.
func newService(cfg *config.Config) (sync.Service, *localstore.Store, *remote.Store) {
	local := mustLocal(cfg)
	rs := openRemote(cfg)
	return sync.New(local, rs, cfg.Logger("[sync] ")), local, rs
}
