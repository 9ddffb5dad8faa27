package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jinjinsansan/kanjou/internal/ui"
)

var listEmotion string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List diary entries in the local store",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		local := mustLocal(cfg)

		entries := local.LoadEntries()
		if len(entries) == 0 {
			fmt.Printf("%s No entries yet. Add one with 'kanjou add'.\n", ui.RenderMuted("·"))
			return
		}

		shown := 0
		for _, entry := range entries {
			if listEmotion != "" && entry.Emotion() != listEmotion {
				continue
			}
			shown++

			fmt.Printf("%s  %s  %s\n",
				ui.RenderMuted(entry.Date()),
				ui.RenderEmotion(entry.Emotion()),
				entry.Event())
			if realization := entry.Realization(); realization != "" {
				fmt.Printf("    %s %s\n", ui.RenderMuted("→"), realization)
			}
		}

		fmt.Printf("\n%d entries", shown)
		if listEmotion != "" {
			fmt.Printf(" (filtered by %s)", listEmotion)
		}
		fmt.Println()
	},
}

func init() {
	listCmd.Flags().StringVar(&listEmotion, "emotion", "", "only show entries with this emotion")
	rootCmd.AddCommand(listCmd)
}
