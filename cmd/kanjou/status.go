package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jinjinsansan/kanjou/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show local and remote store status",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		local := mustLocal(cfg)

		fmt.Printf("\n%s Kanjou Status\n\n", ui.RenderAccent("📊"))
		fmt.Printf("Data dir: %s\n", local.Dir())

		username := local.Username()
		if username == "" {
			fmt.Printf("User: %s\n", ui.RenderWarn("not set (run 'kanjou login')"))
		} else {
			fmt.Printf("User: %s\n", username)
		}

		entries := local.LoadEntries()
		consents := local.LoadConsents()
		fmt.Printf("Local entries: %d\n", len(entries))
		fmt.Printf("Cached consent histories: %d\n", len(consents))

		rs := openRemote(cfg)
		if rs == nil {
			fmt.Printf("Remote: %s\n\n", ui.RenderMuted("offline"))
			return
		}
		defer rs.Close()

		count, err := rs.DiaryCount(context.Background())
		if err != nil {
			fmt.Printf("Remote: %s (%v)\n\n", ui.RenderErr("error"), err)
			return
		}
		fmt.Printf("Remote: %s\n", ui.RenderPass("connected"))
		fmt.Printf("Remote entries: %d\n\n", count)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
