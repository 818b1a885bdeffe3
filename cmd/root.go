package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:   "hiiscan",
	Short: "Decode UEFI and Framework HII IFR form data from firmware blobs",
	Long: `hiiscan extracts human-readable IFR (Internal Forms Representation) text
from binary blobs containing UEFI HII or legacy Framework HII packages.

Supported operations:
  - Locate string and form packages in an arbitrary blob (scan)
  - Render a form package's opcode stream against its paired strings (extract)
  - Run extraction across every file in a directory (batch)`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
}
