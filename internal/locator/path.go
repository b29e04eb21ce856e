package locator

import (
	"fmt"
	"strings"

	"github.com/mj1618/mobile-locator/internal/model"
)

// step renders one location step, adding a 1-based index when n has
// same-tag siblings.
func step(n *model.Node) string {
	tag := model.Tag(n)
	if pos, count := model.SiblingPosition(n); count > 1 {
		return fmt.Sprintf("%s[%d]", tag, pos)
	}
	return tag
}

// HierarchicalPath returns a query selecting exactly n. It starts with a
// relative path of MaxHierarchyDepth steps and extends it upward until the
// oracle reports it unique; once the root is reached the absolute path is
// used.
func HierarchicalPath(n *model.Node, oracle *Oracle) string {
	var steps []string
	cur := n
	for {
		parent := model.ParentElement(cur)
		if parent == nil {
			// cur is the root element.
			steps = append(steps, step(cur))
			return "/" + joinReversed(steps)
		}
		steps = append(steps, step(cur))
		cur = parent
		if len(steps) < MaxHierarchyDepth {
			continue
		}
		query := "//" + joinReversed(steps)
		if oracle.IsUnique(query) {
			return query
		}
	}
}

// DebugPath returns the absolute path of n from the root, indexed the same
// way as HierarchicalPath.
func DebugPath(n *model.Node) string {
	var steps []string
	for cur := n; cur != nil; cur = model.ParentElement(cur) {
		steps = append(steps, step(cur))
	}
	return "/" + joinReversed(steps)
}

func joinReversed(steps []string) string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[len(steps)-1-i] = s
	}
	return strings.Join(out, "/")
}
