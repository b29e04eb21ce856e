package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/mobile-locator/internal/analyzer"
	"github.com/mj1618/mobile-locator/internal/export"
	"github.com/mj1618/mobile-locator/internal/scan"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export locators as Robot Framework variables or a Python module",
	Long: `Analyze a UI tree and write its locators as test-framework source.
Scans the device unless --source is given.

Examples:
  mobile-locator export --as robot --source login.xml > login_page.robot
  mobile-locator export --as python --prefix login -o login_page.py`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addAnalysisFlags(exportCmd)
	exportCmd.Flags().String("as", "robot", "Export format: "+strings.Join(export.Formats, ", "))
	exportCmd.Flags().String("source", "", "UI tree file to analyze (\"-\" for stdin)")
	exportCmd.Flags().String("window", "", "Window size WIDTHxHEIGHT for --source")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("as")
	path, _ := cmd.Flags().GetString("source")

	var res *analyzer.Result
	if path != "" {
		source, err := readSource(cmd, path)
		if err != nil {
			return err
		}
		opts, err := offlineOptions(cmd)
		if err != nil {
			return err
		}
		if res, err = analyzer.Analyze(source, opts); err != nil {
			return err
		}
	} else {
		svc, err := newService()
		if err != nil {
			return err
		}
		prefix, verify := getAnalysisFlags(cmd)
		scanned, err := svc.Scan(cmd.Context(), scan.Request{Verify: verify, Prefix: prefix})
		if err != nil {
			return err
		}
		res = &scanned.Result
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		return export.Write(cmd.OutOrStdout(), format, res)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := export.Write(f, format, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
