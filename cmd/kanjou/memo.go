package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jinjinsansan/kanjou/internal/ai"
	"github.com/jinjinsansan/kanjou/internal/schema"
	"github.com/jinjinsansan/kanjou/internal/ui"
)

var memoSave bool

var memoCmd = &cobra.Command{
	Use:   "memo <entry-id>",
	Short: "Draft a counselor memo for an entry",
	Long: `Ask the configured Anthropic model for a counselor memo suggestion
for one diary entry. Requires anthropic_api_key (or
KANJOU_ANTHROPIC_API_KEY) to be set.

With --save the suggestion is written to the entry's counselor_memo
field in the local store.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()

		drafter, err := ai.NewDrafter(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if err != nil {
			if errors.Is(err, ai.ErrDisabled) {
				fmt.Fprintf(os.Stderr, "%s %v\n", ui.RenderWarn("⚠"), err)
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}

		local := mustLocal(cfg)
		entries := local.LoadEntries()

		idx := -1
		for i, entry := range entries {
			if entry.ID() == args[0] {
				idx = i
				break
			}
		}
		if idx == -1 {
			fmt.Fprintf(os.Stderr, "Error: no entry with id %s\n", args[0])
			os.Exit(1)
		}

		norm := schema.NewNormalizer(cfg.Logger("[normalize] "))
		rec := norm.Normalize(entries[idx], "")

		fmt.Printf("%s Drafting memo for %s (%s)...\n", ui.RenderAccent("✎"), rec.Date, rec.Emotion)
		memo, err := drafter.DraftMemo(context.Background(), rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error drafting memo: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\n%s\n\n", memo)

		if memoSave {
			entries[idx]["counselor_memo"] = memo
			if err := local.SaveEntries(entries); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving memo: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("%s Saved to entry %s\n", ui.RenderPass("✓"), ui.RenderMuted(args[0]))
		}
	},
}

func init() {
	memoCmd.Flags().BoolVar(&memoSave, "save", false, "write the suggestion to the entry's counselor_memo")
	rootCmd.AddCommand(memoCmd)
}
