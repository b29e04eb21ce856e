package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/mobile-locator/internal/output"
	"github.com/mj1618/mobile-locator/internal/scan"
)

var tapCmd = &cobra.Command{
	Use:   "tap <x> <y>",
	Short: "Tap the element under a point",
	Long: `Scan the screen, resolve the element under (x, y) and tap its center. When
no element is hit the point itself is tapped. With --image the point is in
screenshot pixels and is scaled to device coordinates.

Examples:
  mobile-locator tap 150 525 --image 540x960
  mobile-locator tap 300 1050 --raw`,
	Args: cobra.ExactArgs(2),
	RunE: runTap,
}

func init() {
	rootCmd.AddCommand(tapCmd)
	tapCmd.Flags().String("image", "", "Screenshot size WIDTHxHEIGHT the point was taken on")
	tapCmd.Flags().Bool("raw", false, "Tap the point without scanning first")
}

func runTap(cmd *cobra.Command, args []string) error {
	x, y, err := parseXY(args)
	if err != nil {
		return err
	}
	image, err := imageSizeFlag(cmd)
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	if raw, _ := cmd.Flags().GetBool("raw"); !raw {
		if _, err := svc.Scan(cmd.Context(), scan.Request{}); err != nil {
			return err
		}
	}
	res, err := svc.SmartTap(cmd.Context(), x, y, image)
	if err != nil {
		return err
	}
	return output.Print(res)
}
