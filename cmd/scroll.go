package cmd

import (
	"github.com/spf13/cobra"
)

var scrollCmd = &cobra.Command{
	Use:       "scroll <up|down>",
	Short:     "Scroll the screen",
	Long:      "Scroll the device screen up or down. Android swipes through the middle of the screen; iOS uses the native scroll gesture.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE:      runScroll,
}

var backCmd = &cobra.Command{
	Use:   "back",
	Short: "Press the system back action",
	Args:  cobra.NoArgs,
	RunE:  runBack,
}

var hideKeyboardCmd = &cobra.Command{
	Use:   "hide-keyboard",
	Short: "Dismiss the on-screen keyboard",
	Args:  cobra.NoArgs,
	RunE:  runHideKeyboard,
}

func init() {
	rootCmd.AddCommand(scrollCmd, backCmd, hideKeyboardCmd)
}

// actionResult is the output of device-only commands.
type actionResult struct {
	OK     bool   `yaml:"ok"               json:"ok"`
	Action string `yaml:"action"           json:"action"`
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`
}

func runScroll(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	if err := svc.Scroll(cmd.Context(), args[0]); err != nil {
		return err
	}
	return printAction("scroll", args[0])
}

func runBack(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	if err := svc.Back(cmd.Context()); err != nil {
		return err
	}
	return printAction("back", "")
}

func runHideKeyboard(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	if err := svc.HideKeyboard(cmd.Context()); err != nil {
		return err
	}
	return printAction("hide_keyboard", "")
}
