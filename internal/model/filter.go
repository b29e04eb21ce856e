package model

import "strings"

// IgnoredTypes are generic containers that only matter when they carry text
// or an accessibility label of their own.
var IgnoredTypes = []string{
	"android.widget.FrameLayout",
	"android.widget.LinearLayout",
	"android.widget.RelativeLayout",
	"android.view.View",
	"XCUIElementTypeWindow",
	"XCUIElementTypeOther",
	"XCUIElementTypeApplication",
	"XCUIElementTypeScrollView",
	"XCUIElementTypeTable",
	"XCUIElementTypeImage",
	"XCUIElementTypeStatusBar",
	"XCUIElementTypeNavigationBar",
}

// BlacklistIDs are Android system chrome resource ids.
var BlacklistIDs = []string{
	"android:id/content",
	"android:id/statusBarBackground",
	"android:id/navigationBarBackground",
	"android:id/home",
}

// Thresholds controls which elements the pipeline keeps.
type Thresholds struct {
	MinWidth  int
	MinHeight int
	// MaxScreenRatio drops any element whose area covers at least this
	// fraction of the window.
	MaxScreenRatio float64
}

// DefaultThresholds returns the stock filtering limits.
func DefaultThresholds() Thresholds {
	return Thresholds{MinWidth: 10, MinHeight: 10, MaxScreenRatio: 0.95}
}

// IsIgnoredType reports whether typeName names a generic container.
func IsIgnoredType(typeName string) bool {
	for _, ignored := range IgnoredTypes {
		if strings.Contains(typeName, ignored) {
			return true
		}
	}
	return false
}

// IsBlacklistedID reports whether id exactly names a system chrome id.
func IsBlacklistedID(id string) bool {
	for _, b := range BlacklistIDs {
		if id == b {
			return true
		}
	}
	return false
}

// ContainsBlacklistedID reports whether id contains any system chrome id.
func ContainsBlacklistedID(id string) bool {
	if id == "" {
		return false
	}
	for _, b := range BlacklistIDs {
		if strings.Contains(id, b) {
			return true
		}
	}
	return false
}

// IsEmptyContainer reports whether the element is an ignorable container
// with no text or accessibility label.
func IsEmptyContainer(info ElementInfo) bool {
	return IsIgnoredType(info.TypeName) && !info.HasContent()
}

// IsAnonymousContainer is the hit-test variant of IsEmptyContainer: a
// resource id also counts as distinguishing identity.
func IsAnonymousContainer(info ElementInfo) bool {
	return IsIgnoredType(info.TypeName) && !info.HasContent() && info.ResourceID == ""
}

// CoversScreen reports whether b covers at least ratio of the window area.
func CoversScreen(b Bounds, windowArea int, ratio float64) bool {
	if windowArea <= 0 {
		return false
	}
	return float64(b.Area) >= float64(windowArea)*ratio
}

// Keep applies the per-element filters: valid bounds, minimum size, empty
// containers, and (Android only) blacklisted resource ids.
func (t Thresholds) Keep(b Bounds, ok bool, info ElementInfo, p Platform) bool {
	if !ok {
		return false
	}
	if b.Width < t.MinWidth || b.Height < t.MinHeight {
		return false
	}
	if IsEmptyContainer(info) {
		return false
	}
	if p == Android && ContainsBlacklistedID(info.ResourceID) {
		return false
	}
	return true
}
