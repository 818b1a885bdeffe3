package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/hiiscan/ifrscan/pkg/framework"
	"github.com/hiiscan/ifrscan/pkg/fvscan"
	"github.com/hiiscan/ifrscan/pkg/uefi"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	scanExpand bool
	scanStdin  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Locate HII packages in a binary blob",
	Long: `Scan runs both the Framework and UEFI locators over a file and prints a
summary table of every string and form package found.

Examples:
  hiiscan scan setup.rom
  hiiscan scan setup.rom --expand   # also decompress inline LZSS regions
  cat setup.rom | hiiscan scan --stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&scanExpand, "expand", "e", false, "also scan decompressed LZSS regions")
	scanCmd.Flags().BoolVar(&scanStdin, "stdin", false, "read the blob from standard input instead of a file")
}

func runScan(cmd *cobra.Command, args []string) error {
	path := "-"
	var data []byte
	var err error
	switch {
	case scanStdin:
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	case len(args) == 1:
		path = args[0]
		data, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	default:
		return fmt.Errorf("scan requires a file argument or --stdin")
	}

	buffers := [][]byte{data}
	if scanExpand {
		buffers = fvscan.ExpandBuffers(data)
		logger.Info("expanded scan buffers", "file", path, "count", len(buffers))
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Dialect", "Kind", "Offset", "Length", "Detail"})

	total := 0
	for _, buf := range buffers {
		fStrs, fForms := framework.FindPackages(buf)
		for _, s := range fStrs {
			t.AppendRow(table.Row{"Framework", "String", fmt.Sprintf("0x%X", s.Offset), s.Length, s.Language})
			total++
		}
		for _, f := range fForms {
			t.AppendRow(table.Row{"Framework", "Form", fmt.Sprintf("0x%X", f.Offset), f.Length,
				fmt.Sprintf("used=%d ids=[%d,%d]", f.UsedStrings, f.MinStringID, f.MaxStringID)})
			total++
		}

		uStrs, uForms := uefi.FindPackages(buf)
		for _, s := range uStrs {
			t.AppendRow(table.Row{"UEFI", "String", fmt.Sprintf("0x%X", s.Offset), s.Length, s.Language})
			total++
		}
		for _, f := range uForms {
			t.AppendRow(table.Row{"UEFI", "Form", fmt.Sprintf("0x%X", f.Offset), f.Length,
				fmt.Sprintf("used=%d ids=[%d,%d]", f.UsedStrings, f.MinStringID, f.MaxStringID)})
			total++
		}
	}

	t.Render()
	logger.Info("scan complete", "file", path, "packages", total)
	return nil
}
