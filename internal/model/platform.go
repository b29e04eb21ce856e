package model

import (
	"fmt"
	"strings"
)

// Platform identifies which UI-tree dialect a snapshot was captured from.
type Platform string

const (
	Android Platform = "ANDROID"
	IOS     Platform = "IOS"
)

// ParsePlatform converts a flag or request value to a Platform.
// Matching is case-insensitive; an empty value defaults to Android.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ANDROID":
		return Android, nil
	case "IOS":
		return IOS, nil
	default:
		return "", fmt.Errorf("invalid platform %q: must be ANDROID or IOS", s)
	}
}

// attrNames holds the platform-specific attribute names behind each
// ElementInfo field.
type attrNames struct {
	ID            string
	Accessibility string
	Text          []string
	Type          string
	Label         []string
}

var platformAttrs = map[Platform]attrNames{
	Android: {
		ID:            "resource-id",
		Accessibility: "content-desc",
		Text:          []string{"text"},
		Type:          "class",
		Label:         []string{"text", "content-desc"},
	},
	IOS: {
		Accessibility: "name",
		Text:          []string{"label", "value"},
		Type:          "type",
		Label:         []string{"label", "value", "name"},
	},
}

// IDAttr is the attribute carrying a resource id, or "" when the platform has none.
func (p Platform) IDAttr() string { return platformAttrs[p].ID }

// AccessibilityAttr is the attribute matched by accessibility_id locators.
func (p Platform) AccessibilityAttr() string { return platformAttrs[p].Accessibility }
