package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jinjinsansan/kanjou/internal/sync"
	"github.com/jinjinsansan/kanjou/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push local diaries and consent histories to the remote store",
	Long: `Push the full local diary collection to the remote store.

Every entry is normalized to its canonical shape and upserted in one
batch; on id conflict the incoming row wins. Locally cached consent
histories are pushed the same way afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		svc, _, rs := newService(cfg)
		if rs != nil {
			defer rs.Close()
		}

		ctx := context.Background()
		fmt.Printf("%s Syncing to remote...\n", ui.RenderAccent("🔄"))
		start := time.Now()

		pushed, err := svc.PushDiaries(ctx)
		if err != nil {
			if errors.Is(err, sync.ErrRemoteUnavailable) {
				fmt.Fprintf(os.Stderr, "%s No remote configured. Set remote_url or KANJOU_REMOTE_URL.\n", ui.RenderWarn("⚠"))
			} else {
				fmt.Fprintf(os.Stderr, "Error during sync: %v\n", err)
			}
			os.Exit(1)
		}

		consents, err := svc.PushConsentHistories(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error syncing consent histories: %v\n", err)
			os.Exit(1)
		}

		elapsed := time.Since(start)
		fmt.Printf("%s Sync complete in %v\n", ui.RenderPass("✓"), elapsed.Round(time.Millisecond))
		fmt.Printf("   Diaries: %d\n", pushed)
		fmt.Printf("   Consent histories: %d\n", consents)
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Refresh the local consent cache from the remote store",
	Long: `Fetch the remote consent histories and overwrite the local cache.

Consent histories are remote-authoritative. The cache is only replaced
when the fetch succeeds and returns data; a failure or empty result
leaves it untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		svc, _, rs := newService(cfg)
		if rs != nil {
			defer rs.Close()
		}

		pulled, err := svc.PullConsentHistories(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error pulling consent histories: %v\n", err)
			os.Exit(1)
		}

		if pulled == 0 {
			fmt.Printf("%s Nothing to pull\n", ui.RenderMuted("·"))
			return
		}
		fmt.Printf("%s Pulled %d consent histories\n", ui.RenderPass("✓"), pulled)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(pullCmd)
}
