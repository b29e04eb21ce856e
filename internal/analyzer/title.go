package analyzer

import (
	"strings"
	"unicode/utf8"

	"github.com/mj1618/mobile-locator/internal/model"
)

const (
	defaultPageName = "page"
	headerRatio     = 0.3
	centerRatio     = 0.15
	minTitleLength  = 2
	maxTitleLength  = 30
)

// ResolvePageName returns the cleaned prefix, or an estimate from the tree
// when prefix is empty or one of the generic placeholders.
func ResolvePageName(tree *model.Tree, p model.Platform, prefix string, window model.Size) string {
	prefix = strings.TrimSpace(prefix)
	switch strings.ToLower(prefix) {
	case "", "page", "login":
		return EstimatePageName(tree, p, window)
	}
	return model.CleanIdentifier(prefix)
}

// EstimatePageName scores labelled nodes in the top part of the window and
// returns the best one as an identifier, or "page" when nothing qualifies.
func EstimatePageName(tree *model.Tree, p model.Platform, window model.Size) string {
	headerLimit := int(float64(window.Height) * headerRatio)
	idAttr := p.IDAttr()
	if idAttr == "" {
		idAttr = p.AccessibilityAttr()
	}

	best, bestScore := "", 0.0
	for _, n := range tree.Nodes() {
		label, _ := model.LabelCandidate(n, p)
		label = strings.TrimSpace(label)
		if l := utf8.RuneCountInString(label); l < minTitleLength || l > maxTitleLength {
			continue
		}
		if model.IsNumeric(strings.NewReplacer(":", "", "%", "").Replace(label)) {
			continue
		}
		b, ok := model.NodeBounds(n, p)
		if !ok || b.Y > headerLimit {
			continue
		}

		score := float64(headerLimit-b.Y) / 20
		ident := strings.ToLower(model.Attr(n, idAttr))
		if strings.Contains(ident, "title") {
			score += 20
		}
		if strings.Contains(ident, "header") {
			score += 15
		}
		cx, _ := b.Center()
		if abs(cx-window.Width/2) < int(float64(window.Width)*centerRatio) {
			score += 15
		}
		if b.Height > 30 {
			score += 5
		}
		if best == "" || score > bestScore {
			best, bestScore = label, score
		}
	}
	if best == "" {
		return defaultPageName
	}
	return model.CleanIdentifier(best)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
