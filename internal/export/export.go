// Package export renders an analysis as test-framework source.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mj1618/mobile-locator/internal/analyzer"
	"github.com/mj1618/mobile-locator/internal/locator"
)

// Formats lists the supported export formats.
var Formats = []string{"robot", "python"}

// Write renders res in the named format.
func Write(w io.Writer, format string, res *analyzer.Result) error {
	switch strings.ToLower(format) {
	case "robot":
		return Robot(w, res)
	case "python", "py":
		return Python(w, res)
	default:
		return fmt.Errorf("unknown export format %q: use %s", format, strings.Join(Formats, " or "))
	}
}

// Robot writes a Robot Framework variables table.
func Robot(w io.Writer, res *analyzer.Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "*** Settings ***\nDocumentation    Locators for page %s (%s)\n\n", res.PageName, res.Platform)
	fmt.Fprintln(bw, "*** Variables ***")
	for _, el := range res.Elements {
		if el.VariableName == "" || el.Locator == "" {
			continue
		}
		fmt.Fprintf(bw, "%-60s    %s\n", el.VariableName, robotEscape(el.Locator))
	}
	return bw.Flush()
}

// robotEscape keeps backslashes and runs of spaces literal in a Robot cell.
func robotEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "  ", ` \ `)
}

var appiumBy = map[string]string{
	locator.KeyID:              "AppiumBy.ID",
	locator.KeyAccessibilityID: "AppiumBy.ACCESSIBILITY_ID",
	locator.KeyXPath:           "AppiumBy.XPATH",
}

// Python writes a module of (By, value) locator tuples.
func Python(w io.Writer, res *analyzer.Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\"\"\"Locators for page %s (%s).\"\"\"\n", res.PageName, res.Platform)
	fmt.Fprintln(bw, "from appium.webdriver.common.appiumby import AppiumBy")
	fmt.Fprintln(bw)
	for _, el := range res.Elements {
		if el.VariableName == "" || el.Locator == "" {
			continue
		}
		key, value, err := locator.ParseLocator(el.Locator)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "%s = (%s, %s)\n", PythonName(el.VariableName), appiumBy[key], strconv.Quote(value))
	}
	return bw.Flush()
}

// PythonName turns "${selector_login_submit_button}" into
// "SELECTOR_LOGIN_SUBMIT_BUTTON".
func PythonName(variable string) string {
	name := strings.TrimSuffix(strings.TrimPrefix(variable, "${"), "}")
	return strings.ToUpper(name)
}
