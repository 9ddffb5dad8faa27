package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jinjinsansan/kanjou/internal/daemon"
	"github.com/jinjinsansan/kanjou/internal/ui"
)

var (
	watchPullInterval time.Duration
	watchDebounce     time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Start the auto-sync daemon (foreground)",
	Long: `Run the auto-sync daemon in the foreground.

The daemon pushes the diary collection whenever the local store changes
(debounced) and periodically refreshes the consent cache from the
remote store. Press Ctrl+C to stop.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		svc, local, rs := newService(cfg)
		if rs == nil {
			fmt.Fprintf(os.Stderr, "Error: the daemon needs a remote store. Set remote_url or KANJOU_REMOTE_URL.\n")
			os.Exit(1)
		}
		defer rs.Close()

		dcfg := daemon.DefaultConfig()
		dcfg.PullInterval = watchPullInterval
		dcfg.DebounceInterval = watchDebounce
		dcfg.Logger = cfg.Logger("[daemon] ")

		d, err := daemon.New(svc, local.EntriesPath(), dcfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating daemon: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Starting auto-sync daemon...\n", ui.RenderAccent("🚀"))
		fmt.Printf("   Watching: %s\n", local.EntriesPath())
		fmt.Printf("   Consent pull interval: %v\n", watchPullInterval)
		fmt.Printf("\nPress Ctrl+C to stop\n\n")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := d.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Daemon stopped with error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchPullInterval, "pull-interval", 5*time.Minute, "how often to refresh the consent cache")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "how long to batch local changes before pushing")
	rootCmd.AddCommand(watchCmd)
}
