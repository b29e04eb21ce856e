package locator

import (
	"fmt"

	"github.com/mj1618/mobile-locator/internal/model"
)

// Verification is the outcome of checking a locator against a snapshot.
type Verification struct {
	Locator string `yaml:"locator" json:"locator"`
	Query   string `yaml:"query" json:"query"`
	Count   int    `yaml:"count" json:"count"`
	Valid   bool   `yaml:"valid" json:"valid"`
}

// ToQuery translates a "<key>=<value>" locator into the query it resolves to.
func ToQuery(locator string, p model.Platform) (string, error) {
	key, value, err := ParseLocator(locator)
	if err != nil {
		return "", err
	}
	switch key {
	case KeyID:
		attr := p.IDAttr()
		if attr == "" {
			attr = p.AccessibilityAttr()
		}
		return fmt.Sprintf("//*[@%s=%s]", attr, Quote(value)), nil
	case KeyAccessibilityID:
		return fmt.Sprintf("//*[@%s=%s]", p.AccessibilityAttr(), Quote(value)), nil
	default:
		return value, nil
	}
}

// Verify counts the nodes locator selects in the oracle's snapshot. A
// locator is valid when it selects exactly one node.
func Verify(oracle *Oracle, locator string, p model.Platform) (Verification, error) {
	query, err := ToQuery(locator, p)
	if err != nil {
		return Verification{}, err
	}
	count, err := oracle.Count(query)
	if err != nil {
		return Verification{}, fmt.Errorf("evaluate locator %q: %w", locator, err)
	}
	return Verification{Locator: locator, Query: query, Count: count, Valid: count == 1}, nil
}
