package model

import "strings"

// suffixRule maps a keyword found in a lowercased type name (or resource id)
// to the variable-name suffix for that element kind.
type suffixRule struct {
	typeKeywords []string
	idKeywords   []string
	suffix       string
}

// suffixRules are checked in order; the first match wins.
var suffixRules = []suffixRule{
	{typeKeywords: []string{"button"}, idKeywords: []string{"btn"}, suffix: "button"},
	{typeKeywords: []string{"edittext", "field"}, idKeywords: []string{"input"}, suffix: "input"},
	{typeKeywords: []string{"text", "label"}, suffix: "lbl"},
	{typeKeywords: []string{"image"}, idKeywords: []string{"icon"}, suffix: "icon"},
	{typeKeywords: []string{"check", "box"}, suffix: "cb"},
	{typeKeywords: []string{"switch", "toggle"}, suffix: "switch"},
}

// TypeSuffix derives the short element-kind suffix used in variable names.
// Password fields are always "input"; unmatched types fall back to "view".
func TypeSuffix(typeName, resourceID string, isPassword bool) string {
	if isPassword {
		return "input"
	}
	c := strings.ToLower(typeName)
	r := strings.ToLower(resourceID)
	for _, rule := range suffixRules {
		for _, k := range rule.typeKeywords {
			if strings.Contains(c, k) {
				return rule.suffix
			}
		}
		for _, k := range rule.idKeywords {
			if strings.Contains(r, k) {
				return rule.suffix
			}
		}
	}
	return "view"
}
