package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchWorkers int

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Run extract's auto-pairing over every file in a directory",
	Long: `Batch walks a directory and runs the same auto-pairing extraction as
"extract" over every non-directory entry it contains, concurrently.

Examples:
  hiiscan batch ./firmware-images --dialect uefi
  hiiscan batch ./firmware-images --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 4, "number of concurrent workers")
	batchCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "prefix each line with its byte offset")
	batchCmd.Flags().StringVarP(&extractDialect, "dialect", "d", "uefi", "package dialect: uefi or framework")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var g errgroup.Group
	g.SetLimit(batchWorkers)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		g.Go(func() error {
			return batchFile(path)
		})
	}

	return g.Wait()
}

func batchFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read failed", "file", path, "error", err)
		return nil
	}

	var out string
	switch extractDialect {
	case "framework":
		out, err = extractFramework(data)
	default:
		out, err = extractUEFI(data)
	}
	if err != nil {
		logger.Warn("no extraction", "file", path, "error", err)
		return nil
	}

	fmt.Printf("=== %s ===\n%s\n", path, out)
	return nil
}
