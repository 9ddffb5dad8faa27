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
	"github.com/jinjinsansan/kanjou/internal/dashboard"
	"github.com/jinjinsansan/kanjou/internal/ui"
)

var dashboardPort int

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run the auto-sync daemon with a live WebSocket dashboard",
	Long: `Run the auto-sync daemon and serve a WebSocket feed of its
activity. Connected clients receive push, pull, and stats events as
they happen.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		svc, local, rs := newService(cfg)
		if rs == nil {
			fmt.Fprintf(os.Stderr, "Error: the dashboard needs a remote store. Set remote_url or KANJOU_REMOTE_URL.\n")
			os.Exit(1)
		}
		defer rs.Close()

		port := dashboardPort
		if port == 0 {
			port = cfg.DashboardPort
		}

		server := dashboard.NewServer(&dashboard.Config{
			Port:   port,
			Logger: cfg.Logger("[dashboard] "),
		})
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting dashboard: %v\n", err)
			os.Exit(1)
		}
		defer server.Stop()

		dcfg := daemon.DefaultConfig()
		dcfg.Logger = cfg.Logger("[daemon] ")
		dcfg.OnPush = func(pushed int, took time.Duration) {
			server.BroadcastSyncComplete(pushed, took)
		}
		dcfg.OnPull = func(pulled int) {
			server.BroadcastConsentPull(pulled)
		}

		d, err := daemon.New(svc, local.EntriesPath(), dcfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating daemon: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Dashboard running\n", ui.RenderAccent("📊"))
		fmt.Printf("   WebSocket: ws://%s/ws\n", server.GetAddr())
		fmt.Printf("   Health:    http://%s/health\n", server.GetAddr())
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
	dashboardCmd.Flags().IntVar(&dashboardPort, "port", 0, "dashboard port (default from config)")
	rootCmd.AddCommand(dashboardCmd)
}
