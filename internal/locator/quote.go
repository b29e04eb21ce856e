package locator

import "strings"

// Quote renders v as an XPath string literal. Values containing a single
// quote are wrapped in double quotes; values containing both quote kinds are
// rendered as a concat() expression.
func Quote(v string) string {
	switch {
	case !strings.Contains(v, "'"):
		return "'" + v + "'"
	case !strings.Contains(v, `"`):
		return `"` + v + `"`
	}
	var args []string
	for i, part := range strings.Split(v, "'") {
		if i > 0 {
			args = append(args, `"'"`)
		}
		if part != "" {
			args = append(args, "'"+part+"'")
		}
	}
	return "concat(" + strings.Join(args, ", ") + ")"
}
