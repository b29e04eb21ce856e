package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mj1618/mobile-locator/internal/config"
	"github.com/mj1618/mobile-locator/internal/logger"
	"github.com/mj1618/mobile-locator/internal/output"
	"github.com/mj1618/mobile-locator/internal/version"

	// Device backends register themselves with the platform package.
	_ "github.com/mj1618/mobile-locator/internal/platform/appium"
	_ "github.com/mj1618/mobile-locator/internal/platform/fixture"
)

var (
	cfg *config.Config
	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "mobile-locator",
	Short: "Generate unique element locators for mobile app screens",
	Long: `Reads a mobile app's UI tree (Appium page source) and produces the strongest
unique locator and a readable variable name for every meaningful element.

Trees come from a file, stdin, or a device backend:
  fixture   a directory with source.xml, screenshot.png and window.yaml
  appium    a running Appium server`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("platform", "", "Platform: ANDROID, IOS (overrides config)")
	rootCmd.PersistentFlags().String("backend", "", "Device backend: fixture, appium (overrides config)")
	rootCmd.PersistentFlags().String("fixture-dir", "", "Fixture directory for the fixture backend")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentPreRunE = setup
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	path, _ := rootCmd.PersistentFlags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := rootCmd.PersistentFlags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("platform", &c.Platform)
	override("backend", &c.Backend)
	override("fixture-dir", &c.FixtureDir)
	override("log-level", &c.LogLevel)
	if err := c.Validate(); err != nil {
		return err
	}

	format, _ := flags.GetString("format")
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	output.OutputFormat = f
	output.PrettyOutput, _ = flags.GetBool("pretty")

	l, err := logger.New(c.LogLevel, c.LogFormat)
	if err != nil {
		return err
	}
	cfg, log = c, l
	return nil
}
