package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jinjinsansan/kanjou/internal/export"
	"github.com/jinjinsansan/kanjou/internal/ui"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the local diary collection",
	Long:  `Export the local diary collection as json, yaml, or md.`,
	Run: func(cmd *cobra.Command, args []string) {
		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		cfg := mustConfig()
		local := mustLocal(cfg)
		entries := local.LoadEntries()

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			out = f
		}

		if err := exporter.Export(entries, out); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}

		if exportOutput != "" {
			fmt.Printf("%s Exported %d entries to %s\n", ui.RenderPass("✓"), len(entries), exportOutput)
		}
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "F", "json", "output format: json, yaml, md")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
