package locator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mj1618/mobile-locator/internal/model"
)

const (
	// AnchorWindow is how many preceding nodes are searched for a label.
	AnchorWindow = 15
	// MaxAnchorLength bounds the length of an anchor label.
	MaxAnchorLength = 60
)

// FindAnchor builds a relative locator for an input-like node from the
// nearest preceding label in document order. The query is not checked for
// uniqueness.
func FindAnchor(tree *model.Tree, n *model.Node, info model.ElementInfo, p model.Platform) *Result {
	if !info.IsInput() {
		return nil
	}
	idx := tree.Index(n)
	if idx < 0 {
		return nil
	}
	nodes := tree.Nodes()
	for i := idx - 1; i >= 0 && i >= idx-AnchorWindow; i-- {
		label, _ := model.LabelCandidate(nodes[i], p)
		if label == "" || utf8.RuneCountInString(label) > MaxAnchorLength || model.IsNumeric(label) {
			continue
		}
		q := Quote(label)
		var conds []string
		for _, attr := range model.AnchorAttrs(p) {
			conds = append(conds, fmt.Sprintf("contains(@%s, %s)", attr, q))
		}
		query := fmt.Sprintf("(//*[%s]/following::%s)[1]", strings.Join(conds, " or "), info.Tag)
		return xpathResult(query, StrategyAnchor, label)
	}
	return nil
}
