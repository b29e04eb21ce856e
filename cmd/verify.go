package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/mobile-locator/internal/locator"
	"github.com/mj1618/mobile-locator/internal/model"
	"github.com/mj1618/mobile-locator/internal/output"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <locator>",
	Short: "Count the elements a locator selects",
	Long: `Count how many nodes a locator selects. A locator is valid when it selects
exactly one. Supported forms: id=..., accessibility_id=..., xpath=...

Checks against --source when given, otherwise against the device's current
UI tree.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().String("source", "", "UI tree file to verify against (\"-\" for stdin)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	loc := args[0]
	path, _ := cmd.Flags().GetString("source")
	if path == "" {
		svc, err := newService()
		if err != nil {
			return err
		}
		v, err := svc.Verify(cmd.Context(), loc)
		if err != nil {
			return err
		}
		return output.Print(v)
	}

	source, err := readSource(cmd, path)
	if err != nil {
		return err
	}
	tree, err := model.ParseTree(source)
	if err != nil {
		return err
	}
	v, err := locator.Verify(locator.NewOracle(tree, log), loc, cfg.PlatformValue())
	if err != nil {
		return err
	}
	return output.Print(v)
}
