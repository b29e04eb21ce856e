package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/mobile-locator/internal/imaging"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture a device screenshot",
	Long:  "Capture a screenshot from the device backend, optionally re-encoded as JPEG.",
	Args:  cobra.NoArgs,
	RunE:  runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout as base64)")
	screenshotCmd.Flags().Bool("optimize", false, "Re-encode as JPEG")
	screenshotCmd.Flags().Int("quality", imaging.DefaultQuality, "JPEG quality 1-100")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	optimize, _ := cmd.Flags().GetBool("optimize")
	quality, _ := cmd.Flags().GetInt("quality")

	data, err := provider.Screenshotter.Capture(cmd.Context())
	if err != nil {
		return err
	}
	if optimize {
		if data, err = imaging.Optimize(data, quality); err != nil {
			return err
		}
	}

	if out != "" {
		return os.WriteFile(out, data, 0644)
	}

	// Default: write to stdout as base64 for easy agent consumption
	w := cmd.OutOrStdout()
	encoder := base64.NewEncoder(base64.StdEncoding, w)
	if _, err := encoder.Write(data); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}
