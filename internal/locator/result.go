package locator

import (
	"fmt"
	"strings"
)

// Strategy tags how a locator was produced. The declaration order is the
// priority of the cascade.
type Strategy int

const (
	StrategyID Strategy = iota
	StrategyAccessibilityID
	StrategyText
	StrategyAnchor
	StrategyRobustPath
	StrategyHierarchical
	StrategyFallback
)

var strategyNames = [...]string{
	StrategyID:              "ID",
	StrategyAccessibilityID: "ACCESSIBILITY_ID",
	StrategyText:            "TEXT",
	StrategyAnchor:          "ANCHOR",
	StrategyRobustPath:      "ROBUST_PATH",
	StrategyHierarchical:    "HIERARCHICAL",
	StrategyFallback:        "FALLBACK",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// MarshalText renders the strategy name in YAML and JSON output.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a strategy name.
func (s *Strategy) UnmarshalText(b []byte) error {
	for i, name := range strategyNames {
		if name == string(b) {
			*s = Strategy(i)
			return nil
		}
	}
	return fmt.Errorf("unknown strategy %q", string(b))
}

// Locator keys of the "<key>=<value>" wire format.
const (
	KeyID              = "id"
	KeyAccessibilityID = "accessibility_id"
	KeyXPath           = "xpath"
)

// Result is a synthesized locator. NameHint feeds variable naming and is not
// guaranteed to be unique.
type Result struct {
	Key      string
	Value    string
	Strategy Strategy
	NameHint string
}

// String renders the locator in its "<key>=<value>" wire format.
func (r Result) String() string {
	return r.Key + "=" + r.Value
}

func xpathResult(query string, s Strategy, hint string) *Result {
	return &Result{Key: KeyXPath, Value: query, Strategy: s, NameHint: hint}
}

// ParseLocator splits a "<key>=<value>" string.
func ParseLocator(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid locator %q: must be in format strategy=value", s)
	}
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case KeyID, KeyAccessibilityID, KeyXPath:
		return key, value, nil
	default:
		return "", "", fmt.Errorf("unsupported locator strategy %q: use id, accessibility_id or xpath", key)
	}
}
