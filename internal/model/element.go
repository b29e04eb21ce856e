package model

import "strings"

// ElementInfo is the platform-neutral view of a node that every locator
// strategy works from.
type ElementInfo struct {
	ResourceID         string
	AccessibilityLabel string
	Text               string
	// TextAttr names the attribute Text was read from ("text", "label" or "value").
	TextAttr   string
	TypeName   string
	Tag        string
	IsPassword bool
}

// Normalize maps the platform attributes of n onto ElementInfo.
func Normalize(n *Node, p Platform) ElementInfo {
	names := platformAttrs[p]
	info := ElementInfo{
		ResourceID:         Attr(n, names.ID),
		AccessibilityLabel: Attr(n, names.Accessibility),
		TypeName:           Attr(n, names.Type),
		Tag:                Tag(n),
	}
	if info.TypeName == "" {
		info.TypeName = info.Tag
	}
	for _, name := range names.Text {
		if v := Attr(n, name); v != "" {
			info.Text = v
			info.TextAttr = name
			break
		}
	}
	if info.TextAttr == "" {
		info.TextAttr = names.Text[0]
	}
	if p == IOS {
		info.IsPassword = strings.Contains(info.TypeName, "Secure")
	} else {
		info.IsPassword = Attr(n, "password") == "true"
	}
	return info
}

// DisplayText is the label shown next to an element in listings.
func (e ElementInfo) DisplayText() string {
	if e.Text != "" {
		return e.Text
	}
	return e.AccessibilityLabel
}

// HasContent reports whether the element carries text or an accessibility label.
func (e ElementInfo) HasContent() bool {
	return e.Text != "" || e.AccessibilityLabel != ""
}

// IDSuffix returns the part of the resource id after the last "/".
func (e ElementInfo) IDSuffix() string {
	if i := strings.LastIndex(e.ResourceID, "/"); i >= 0 {
		return e.ResourceID[i+1:]
	}
	return e.ResourceID
}

// IsInput reports whether the element type is an edit, text or secure field.
func (e ElementInfo) IsInput() bool {
	return IsInputType(e.TypeName)
}

// IsInputType reports whether a type name denotes an input-like element.
func IsInputType(typeName string) bool {
	return strings.Contains(typeName, "EditText") ||
		strings.Contains(typeName, "TextField") ||
		strings.Contains(typeName, "Secure")
}

// LabelCandidate returns the first non-empty label-like attribute of n and
// the attribute it came from. It is used when n serves as an anchor, a
// preceding-sibling reference or a page-title candidate.
func LabelCandidate(n *Node, p Platform) (value, attr string) {
	for _, name := range platformAttrs[p].Label {
		if v := Attr(n, name); v != "" {
			return v, name
		}
	}
	return "", ""
}

// AnchorAttrs are the attributes a relative anchor query matches with
// contains(). They cover every attribute LabelCandidate reads.
func AnchorAttrs(p Platform) []string {
	if p == IOS {
		return []string{"name", "label", "value"}
	}
	return []string{"text", "content-desc"}
}
