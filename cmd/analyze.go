package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/mobile-locator/internal/analyzer"
	"github.com/mj1618/mobile-locator/internal/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [source.xml]",
	Short: "Generate locators for a UI tree file",
	Long: `Generate a unique locator and variable name for every meaningful element of a
UI tree (Appium page source XML). Reads stdin when no file or "-" is given.

Examples:
  mobile-locator analyze login.xml
  adb exec-out uiautomator dump /dev/tty | mobile-locator analyze --prefix login
  mobile-locator analyze --platform IOS --window 390x844 screen.xml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addAnalysisFlags(analyzeCmd)
	analyzeCmd.Flags().String("window", "", "Window size WIDTHxHEIGHT (enables the full-screen filter and page title estimation)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	source, err := readSource(cmd, path)
	if err != nil {
		return err
	}
	opts, err := offlineOptions(cmd)
	if err != nil {
		return err
	}
	res, err := analyzer.Analyze(source, opts)
	if err != nil {
		return err
	}
	return output.Print(res)
}
