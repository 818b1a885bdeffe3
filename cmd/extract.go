package cmd

import (
	"fmt"
	"os"

	"github.com/hiiscan/ifrscan/pkg/framework"
	"github.com/hiiscan/ifrscan/pkg/uefi"
	"github.com/spf13/cobra"
)

var (
	extractFormOffset    int64
	extractStringsOffset int64
	extractVerbose       bool
	extractDialect       string
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Render a form package's IFR opcode stream as text",
	Long: `Extract locates packages in a file and renders one form package's opcode
stream against a paired string package.

If --form is omitted, the first form package found is used. If --strings is
omitted, the first string package that covers the form's [min,max] string
id range is used; other form packages are not tried when none covers the
chosen one.

Examples:
  hiiscan extract setup.rom --dialect uefi
  hiiscan extract setup.rom --dialect framework --form 0x120 --strings 0x40 --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().Int64VarP(&extractFormOffset, "form", "f", -1, "offset of the form package to render")
	extractCmd.Flags().Int64VarP(&extractStringsOffset, "strings", "s", -1, "offset of the string package to pair it with")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "prefix each line with its byte offset")
	extractCmd.Flags().StringVarP(&extractDialect, "dialect", "d", "uefi", "package dialect: uefi or framework")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var out string
	switch extractDialect {
	case "uefi":
		out, err = extractUEFI(data)
	case "framework":
		out, err = extractFramework(data)
	default:
		return fmt.Errorf("unknown dialect %q: expected uefi or framework", extractDialect)
	}
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}

func covers(min, max uint16, idMap map[uint16]string) bool {
	for id := min; ; id++ {
		if _, ok := idMap[id]; !ok {
			return false
		}
		if id == max {
			return true
		}
	}
}

func extractUEFI(data []byte) (string, error) {
	strs, forms := uefi.FindPackages(data)
	form, ok := selectUEFIForm(forms)
	if !ok {
		return "", fmt.Errorf("no form package found at the requested offset")
	}
	sp, ok := selectUEFIStrings(strs)
	if !ok {
		for _, s := range strs {
			if covers(form.MinStringID, form.MaxStringID, s.StringIDMap) {
				sp, ok = s, true
				break
			}
		}
	}
	if !ok {
		return "", fmt.Errorf("no string package pairs with the form package at 0x%X", form.Offset)
	}
	logger.Info("extracting", "dialect", "uefi", "form", form.Offset, "strings", sp.Offset)
	return uefi.Extract(data, form, sp, extractVerbose), nil
}

func extractFramework(data []byte) (string, error) {
	strs, forms := framework.FindPackages(data)
	form, ok := selectFrameworkForm(forms)
	if !ok {
		return "", fmt.Errorf("no form package found at the requested offset")
	}
	sp, ok := selectFrameworkStrings(strs)
	if !ok {
		for _, s := range strs {
			if covers(form.MinStringID, form.MaxStringID, s.StringIDMap) {
				sp, ok = s, true
				break
			}
		}
	}
	if !ok {
		return "", fmt.Errorf("no string package pairs with the form package at 0x%X", form.Offset)
	}
	logger.Info("extracting", "dialect", "framework", "form", form.Offset, "strings", sp.Offset)
	return framework.Extract(data, form, sp, extractVerbose), nil
}

func selectUEFIForm(forms []uefi.FormPackage) (uefi.FormPackage, bool) {
	if extractFormOffset < 0 {
		if len(forms) == 0 {
			return uefi.FormPackage{}, false
		}
		return forms[0], true
	}
	for _, f := range forms {
		if f.Offset == uint64(extractFormOffset) {
			return f, true
		}
	}
	return uefi.FormPackage{}, false
}

func selectUEFIStrings(strs []uefi.StringPackage) (uefi.StringPackage, bool) {
	if extractStringsOffset < 0 {
		return uefi.StringPackage{}, false
	}
	for _, s := range strs {
		if s.Offset == uint64(extractStringsOffset) {
			return s, true
		}
	}
	return uefi.StringPackage{}, false
}

func selectFrameworkForm(forms []framework.FormPackage) (framework.FormPackage, bool) {
	if extractFormOffset < 0 {
		if len(forms) == 0 {
			return framework.FormPackage{}, false
		}
		return forms[0], true
	}
	for _, f := range forms {
		if f.Offset == uint64(extractFormOffset) {
			return f, true
		}
	}
	return framework.FormPackage{}, false
}

func selectFrameworkStrings(strs []framework.StringPackage) (framework.StringPackage, bool) {
	if extractStringsOffset < 0 {
		return framework.StringPackage{}, false
	}
	for _, s := range strs {
		if s.Offset == uint64(extractStringsOffset) {
			return s, true
		}
	}
	return framework.StringPackage{}, false
}
