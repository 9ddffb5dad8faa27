package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/jinjinsansan/kanjou/internal/ui"
)

var deleteAllForce bool

var deleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every diary entry, locally and remotely",
	Long: `Delete the entire local diary collection and, when a remote is
configured, the current user's remote diaries.

If the remote has no row for the local username the remote deletion is
skipped with a warning while the local deletion still proceeds.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !deleteAllForce {
			var confirmed bool
			form := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title("Delete ALL diary entries?").
					Description("This removes every local entry and your remote diaries. It cannot be undone.").
					Affirmative("Delete everything").
					Negative("Cancel").
					Value(&confirmed),
			))
			if err := form.Run(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if !confirmed {
				fmt.Printf("%s Cancelled\n", ui.RenderMuted("·"))
				return
			}
		}

		cfg := mustConfig()
		svc, _, rs := newService(cfg)
		if rs != nil {
			defer rs.Close()
		}

		result, err := svc.DeleteAllDiaries(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting diaries: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Deleted %d local entries, %d remote entries\n",
			ui.RenderPass("✓"), result.LocalRemoved, result.RemoteRemoved)
	},
}

func init() {
	deleteAllCmd.Flags().BoolVarP(&deleteAllForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteAllCmd)
}
