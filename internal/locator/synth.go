package locator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mj1618/mobile-locator/internal/model"
)

const (
	// MaxTextLength is the exclusive upper bound on text used by the text strategy.
	MaxTextLength = 50
	// MaxTextWords bounds the number of words in text used by the text strategy.
	MaxTextWords = 10
	// MaxHierarchyDepth is the number of levels a relative hierarchical path starts with.
	MaxHierarchyDepth = 4
)

// Synthesizer produces locators for nodes of one snapshot. It shares the
// snapshot's Oracle and must not outlive it.
type Synthesizer struct {
	tree     *model.Tree
	platform model.Platform
	oracle   *Oracle
}

// NewSynthesizer creates a synthesizer for tree.
func NewSynthesizer(tree *model.Tree, p model.Platform, oracle *Oracle) *Synthesizer {
	return &Synthesizer{tree: tree, platform: p, oracle: oracle}
}

// Oracle returns the uniqueness oracle the synthesizer checks queries with.
func (s *Synthesizer) Oracle() *Oracle { return s.oracle }

type strategyFunc func(s *Synthesizer, n *model.Node, info model.ElementInfo) *Result

// cascade is tried in order; the first strategy returning a result wins.
var cascade = []struct {
	tag Strategy
	fn  strategyFunc
}{
	{StrategyID, (*Synthesizer).byID},
	{StrategyAccessibilityID, (*Synthesizer).byAccessibility},
	{StrategyText, (*Synthesizer).byText},
	{StrategyAnchor, (*Synthesizer).byAnchor},
	{StrategyRobustPath, (*Synthesizer).byRobustPath},
	{StrategyHierarchical, (*Synthesizer).byHierarchy},
}

// Synthesize returns the strongest locator for n, or nil if no strategy
// applies.
func (s *Synthesizer) Synthesize(n *model.Node, info model.ElementInfo) *Result {
	for _, st := range cascade {
		if r := st.fn(s, n, info); r != nil {
			return r
		}
	}
	return nil
}

// Try runs a single strategy of the cascade in isolation.
func (s *Synthesizer) Try(tag Strategy, n *model.Node, info model.ElementInfo) *Result {
	for _, st := range cascade {
		if st.tag == tag {
			return st.fn(s, n, info)
		}
	}
	return nil
}

func (s *Synthesizer) byID(_ *model.Node, info model.ElementInfo) *Result {
	if s.platform != model.Android || info.ResourceID == "" || model.IsBlacklistedID(info.ResourceID) {
		return nil
	}
	return &Result{Key: KeyID, Value: info.ResourceID, Strategy: StrategyID, NameHint: info.IDSuffix()}
}

func (s *Synthesizer) byAccessibility(_ *model.Node, info model.ElementInfo) *Result {
	if info.AccessibilityLabel == "" {
		return nil
	}
	return &Result{
		Key:      KeyAccessibilityID,
		Value:    info.AccessibilityLabel,
		Strategy: StrategyAccessibilityID,
		NameHint: info.AccessibilityLabel,
	}
}

func (s *Synthesizer) byText(_ *model.Node, info model.ElementInfo) *Result {
	text := info.Text
	if text == "" || utf8.RuneCountInString(text) >= MaxTextLength || model.IsNumeric(text) {
		return nil
	}
	if len(strings.Fields(text)) > MaxTextWords {
		return nil
	}
	q := Quote(text)
	var query string
	if s.platform == model.IOS {
		query = fmt.Sprintf("//%s[@label=%s or @value=%s]", info.Tag, q, q)
	} else {
		query = fmt.Sprintf("//%s[@%s=%s]", info.Tag, info.TextAttr, q)
	}
	if !s.oracle.IsUnique(query) {
		return nil
	}
	return xpathResult(query, StrategyText, text)
}

func (s *Synthesizer) byAnchor(n *model.Node, info model.ElementInfo) *Result {
	return FindAnchor(s.tree, n, info, s.platform)
}

func (s *Synthesizer) byRobustPath(n *model.Node, info model.ElementInfo) *Result {
	hint := pathHint(info)
	idAttr := s.platform.IDAttr()
	accAttr := s.platform.AccessibilityAttr()

	try := func(query string) *Result {
		if s.oracle.IsUnique(query) {
			return xpathResult(query, StrategyRobustPath, hint)
		}
		return nil
	}

	if idAttr != "" && info.ResourceID != "" {
		if r := try(fmt.Sprintf("//*[@%s=%s]", idAttr, Quote(info.ResourceID))); r != nil {
			return r
		}
	}
	if info.AccessibilityLabel != "" {
		if r := try(fmt.Sprintf("//*[@%s=%s]", accAttr, Quote(info.AccessibilityLabel))); r != nil {
			return r
		}
	}
	if info.Text != "" {
		if r := try(fmt.Sprintf("//*[@%s=%s]", info.TextAttr, Quote(info.Text))); r != nil {
			return r
		}
	}

	var cond string
	switch {
	case info.Text != "":
		cond = fmt.Sprintf("@%s=%s", info.TextAttr, Quote(info.Text))
	case info.AccessibilityLabel != "":
		cond = fmt.Sprintf("@%s=%s", accAttr, Quote(info.AccessibilityLabel))
	}
	if parent := model.ParentElement(n); parent != nil && idAttr != "" && cond != "" {
		if pid := model.Attr(parent, idAttr); pid != "" {
			if r := try(fmt.Sprintf("//*[@%s=%s]//%s[%s]", idAttr, Quote(pid), info.Tag, cond)); r != nil {
				return r
			}
		}
	}

	var conds []string
	if idAttr != "" && info.ResourceID != "" {
		conds = append(conds, fmt.Sprintf("contains(@%s, %s)", idAttr, Quote(info.IDSuffix())))
	}
	if info.Text != "" {
		conds = append(conds, fmt.Sprintf("@%s=%s", info.TextAttr, Quote(info.Text)))
	}
	if info.AccessibilityLabel != "" {
		conds = append(conds, fmt.Sprintf("@%s=%s", accAttr, Quote(info.AccessibilityLabel)))
	}
	if len(conds) >= 2 {
		if r := try(fmt.Sprintf("//%s[%s]", info.Tag, strings.Join(conds, " and "))); r != nil {
			return r
		}
	}

	if prev := model.PrevElementSibling(n); prev != nil {
		if label, attr := model.LabelCandidate(prev, s.platform); label != "" {
			if r := try(fmt.Sprintf("//*[@%s=%s]/following-sibling::%s[1]", attr, Quote(label), info.Tag)); r != nil {
				return r
			}
		}
	}
	return nil
}

func (s *Synthesizer) byHierarchy(n *model.Node, info model.ElementInfo) *Result {
	if model.ParentElement(n) == nil {
		return nil
	}
	return xpathResult(HierarchicalPath(n, s.oracle), StrategyHierarchical, pathHint(info))
}

// pathHint picks the variable-name hint for path-based locators.
func pathHint(info model.ElementInfo) string {
	switch {
	case info.Text != "":
		return info.Text
	case info.AccessibilityLabel != "":
		return info.AccessibilityLabel
	case info.ResourceID != "":
		return info.IDSuffix()
	default:
		return "element"
	}
}

// PositionalFallback locates n by its 1-based position among all nodes with
// the same tag in document order.
func PositionalFallback(tree *model.Tree, n *model.Node) *Result {
	tag := model.Tag(n)
	pos := 0
	for _, m := range tree.Nodes() {
		if model.Tag(m) == tag {
			pos++
		}
		if m == n {
			return xpathResult(fmt.Sprintf("(//%s)[%d]", tag, pos), StrategyFallback, "input")
		}
	}
	return nil
}
