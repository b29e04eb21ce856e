package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/mobile-locator/internal/output"
	"github.com/mj1618/mobile-locator/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the device screen and generate locators",
	Long: `Read the UI tree, screenshot and window size from the configured device
backend and generate locators for every meaningful element.

Examples:
  mobile-locator scan --fixture-dir testdata/login
  mobile-locator scan --backend appium --platform IOS --screenshot screen.jpg`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	addAnalysisFlags(scanCmd)
	scanCmd.Flags().String("screenshot", "", "Write the (optimized) screenshot to this file")
	scanCmd.Flags().String("annotate", "", "Write the screenshot with element boxes and names (PNG) to this file")
}

func runScan(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	prefix, verify := getAnalysisFlags(cmd)
	res, err := svc.Scan(cmd.Context(), scan.Request{Verify: verify, Prefix: prefix})
	if err != nil {
		return err
	}
	if err := writeScanImages(cmd, res); err != nil {
		return err
	}
	return output.Print(res)
}

func writeScanImages(cmd *cobra.Command, res *scan.Result) error {
	if path, _ := cmd.Flags().GetString("screenshot"); path != "" {
		if err := os.WriteFile(path, res.Image, 0644); err != nil {
			return fmt.Errorf("write screenshot: %w", err)
		}
	}
	if path, _ := cmd.Flags().GetString("annotate"); path != "" {
		data, err := res.Annotated()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write annotated screenshot: %w", err)
		}
	}
	return nil
}
