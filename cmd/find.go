package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/mobile-locator/internal/analyzer"
	"github.com/mj1618/mobile-locator/internal/output"
)

var findCmd = &cobra.Command{
	Use:   "find <x> <y> [source.xml]",
	Short: "Find the element at a point in a UI tree file",
	Long: `Hit-test a device point against a UI tree and print the top-most element
containing it with its locator. Layout containers without any identifying
attribute are skipped. Reads stdin when no file or "-" is given.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().String("window", "", "Window size WIDTHxHEIGHT")
}

// findResult is the output of the find command.
type findResult struct {
	Found   bool              `yaml:"found"             json:"found"`
	X       int               `yaml:"x"                 json:"x"`
	Y       int               `yaml:"y"                 json:"y"`
	Element *analyzer.Element `yaml:"element,omitempty" json:"element,omitempty"`
}

func runFind(cmd *cobra.Command, args []string) error {
	x, y, err := parseXY(args)
	if err != nil {
		return err
	}
	path := ""
	if len(args) == 3 {
		path = args[2]
	}
	source, err := readSource(cmd, path)
	if err != nil {
		return err
	}
	opts, err := offlineOptions(cmd)
	if err != nil {
		return err
	}
	el, err := analyzer.FindElementAt(source, x, y, opts)
	if err != nil {
		return err
	}
	return output.Print(findResult{Found: el != nil, X: x, Y: y, Element: el})
}
