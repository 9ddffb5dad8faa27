package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jinjinsansan/kanjou/internal/ui"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Set the local identity used for remote sync",
	Long: `Store the username that owns this journal. Pushed diaries are
attached to the matching remote users row, which is created on first
push if it doesn't exist.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := strings.TrimSpace(args[0])
		if username == "" {
			fmt.Fprintf(os.Stderr, "Error: username cannot be empty\n")
			os.Exit(1)
		}

		cfg := mustConfig()
		local := mustLocal(cfg)

		if err := local.SetUsername(username); err != nil {
			fmt.Fprintf(os.Stderr, "Error storing username: %v\n", err)
			os.Exit(1)
		}

		// Create the remote users row now when a remote is reachable, so
		// the first push doesn't have to.
		if rs := openRemote(cfg); rs != nil {
			defer rs.Close()
			if _, err := rs.EnsureUser(context.Background(), username); err != nil {
				fmt.Fprintf(os.Stderr, "%s Could not register remote user: %v\n", ui.RenderWarn("⚠"), err)
			}
		}

		fmt.Printf("%s Logged in as %s\n", ui.RenderPass("✓"), username)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
