package locator

import "github.com/mj1618/mobile-locator/internal/model"

// FindElementAt returns the topmost node whose bounds contain (x, y).
// Nodes later in document order paint on top. Anonymous containers are
// skipped so a tap resolves to something with identity.
func FindElementAt(tree *model.Tree, x, y int, p model.Platform) *model.Node {
	nodes := tree.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		b, ok := model.NodeBounds(n, p)
		if !ok || !b.Contains(x, y) {
			continue
		}
		if model.IsAnonymousContainer(model.Normalize(n, p)) {
			continue
		}
		return n
	}
	return nil
}
