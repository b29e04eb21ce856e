package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/mobile-locator/internal/scan"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Draw element boxes and variable names on a screenshot",
	Long: `Scan the device and write the screenshot as PNG with every located element's
rectangle and variable name drawn on it.`,
	Args: cobra.NoArgs,
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	annotateCmd.Flags().String("prefix", "", "Page name for variable names")
	annotateCmd.Flags().StringP("output", "o", "annotated.png", "Output PNG file")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	prefix, _ := cmd.Flags().GetString("prefix")
	out, _ := cmd.Flags().GetString("output")

	svc, err := newService()
	if err != nil {
		return err
	}
	res, err := svc.Scan(cmd.Context(), scan.Request{Prefix: prefix})
	if err != nil {
		return err
	}
	data, err := res.Annotated()
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d elements\n", out, len(res.Elements))
	return nil
}
