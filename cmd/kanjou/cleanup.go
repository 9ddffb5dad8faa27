package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jinjinsansan/kanjou/internal/clean"
	"github.com/jinjinsansan/kanjou/internal/sync"
	"github.com/jinjinsansan/kanjou/internal/ui"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove test data from both tiers",
	Long: `Remove synthetic entries from the local collection and the remote
store. An entry counts as test data when its event or realization
contains any of: ` + strings.Join(clean.TestDataMarkers, ", ") + `.

The local pass always runs. The remote pass runs when a remote is
configured; a remote failure is reported as zero rows removed.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		svc, _, rs := newService(cfg)
		if rs != nil {
			defer rs.Close()
		}

		result, err := svc.CleanupTestData(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error during cleanup: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Cleanup complete\n", ui.RenderPass("✓"))
		fmt.Printf("   Local entries removed: %d\n", result.LocalRemoved)
		fmt.Printf("   Remote entries removed: %d\n", result.RemoteRemoved)
	},
}

var dedupCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Remove duplicate entries from the local collection",
	Long: `Remove local duplicates, keeping the first occurrence of each
date + emotion + event-prefix combination. The remote store is not
touched: its primary key already prevents duplication there.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		// Local-only pass, no remote connection needed.
		svc := sync.New(mustLocal(cfg), nil, cfg.Logger("[sync] "))

		result, err := svc.RemoveDuplicates(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error during dedup: %v\n", err)
			os.Exit(1)
		}

		if result.LocalRemoved == 0 {
			fmt.Printf("%s No duplicates found\n", ui.RenderMuted("·"))
			return
		}
		fmt.Printf("%s Removed %d duplicate entries\n", ui.RenderPass("✓"), result.LocalRemoved)
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(dedupCmd)
}
