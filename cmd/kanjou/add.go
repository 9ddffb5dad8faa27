package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/jinjinsansan/kanjou/internal/schema"
	"github.com/jinjinsansan/kanjou/internal/ui"
)

var (
	addDate          string
	addEvent         string
	addRealization   string
	addSelfEsteem    int
	addWorthlessness int
)

var addCmd = &cobra.Command{
	Use:   "add <emotion>",
	Short: "Add a diary entry to the local store",
	Long: `Add a diary entry to the local journal collection.

The emotion must be one of the fixed vocabulary:
  ` + strings.Join(schema.Emotions, ", ") + `

The --date flag accepts natural language ("yesterday", "last friday")
as well as YYYY-MM-DD. Scoring flags only apply to scored emotions
(worthlessness, joy, gratitude, accomplishment, happiness) and default
to 50.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		emotion := strings.ToLower(strings.TrimSpace(args[0]))
		if !slices.Contains(schema.Emotions, emotion) {
			fmt.Fprintf(os.Stderr, "Error: unknown emotion %q\nValid emotions: %s\n",
				emotion, strings.Join(schema.Emotions, ", "))
			os.Exit(1)
		}

		date, err := resolveDate(addDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		rec := schema.NewDiaryRecord(uuid.NewString(), date, emotion, addEvent, addRealization)
		if schema.IsScoredEmotion(emotion) {
			if cmd.Flags().Changed("self-esteem") {
				rec.SelfEsteemScore = &addSelfEsteem
			}
			if cmd.Flags().Changed("worthlessness") {
				rec.WorthlessnessScore = &addWorthlessness
			}
		} else if cmd.Flags().Changed("self-esteem") || cmd.Flags().Changed("worthlessness") {
			fmt.Fprintf(os.Stderr, "Error: emotion %q does not carry scores\n", emotion)
			os.Exit(1)
		}

		cfg := mustConfig()
		local := mustLocal(cfg)

		entries := local.LoadEntries()
		entries = append(entries, rec.Raw())
		if err := local.SaveEntries(entries); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving entry: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Added %s entry for %s (%s)\n",
			ui.RenderPass("✓"), ui.RenderEmotion(emotion), date, ui.RenderMuted(rec.ID))
	},
}

// resolveDate turns the --date flag into a YYYY-MM-DD string. Empty means
// today; otherwise the value is parsed as natural language with a strict
// date-layout fallback.
func resolveDate(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Now().Format("2006-01-02"), nil
	}

	if t, err := time.Parse("2006-01-02", input); err == nil {
		return t.Format("2006-01-02"), nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	result, err := w.Parse(input, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to parse date %q: %w", input, err)
	}
	if result == nil {
		return "", fmt.Errorf("could not understand date %q", input)
	}
	return result.Time.Format("2006-01-02"), nil
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "entry date (YYYY-MM-DD or natural language, default today)")
	addCmd.Flags().StringVarP(&addEvent, "event", "e", "", "what happened")
	addCmd.Flags().StringVarP(&addRealization, "realization", "r", "", "what you realized")
	addCmd.Flags().IntVar(&addSelfEsteem, "self-esteem", schema.DefaultScore, "self-esteem score (scored emotions only)")
	addCmd.Flags().IntVar(&addWorthlessness, "worthlessness", schema.DefaultScore, "worthlessness score (scored emotions only)")
	rootCmd.AddCommand(addCmd)
}
