package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// ErrParse is matched by every error returned from ParseTree.
var ErrParse = errors.New("parse tree source")

// ParseError reports malformed tree source.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return "XML parse error: invalid XML structure"
	}
	return fmt.Sprintf("XML parse error: invalid XML structure: %v", e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// Node is one element of a parsed snapshot. Parent pointers are walked for
// sibling indices and paths; the tree is never mutated after ParseTree.
type Node = xmlquery.Node

// Tree is an immutable, parsed UI-tree snapshot with its element nodes
// indexed in document order.
type Tree struct {
	doc   *Node
	root  *Node
	nodes []*Node
	index map[*Node]int
}

// ParseTree parses raw tree source. Whitespace-only or empty input and input
// without a root element are parse errors.
func ParseTree(source string) (*Tree, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &ParseError{Err: errors.New("empty source")}
	}
	doc, err := xmlquery.Parse(strings.NewReader(source))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	t := &Tree{doc: doc, index: make(map[*Node]int)}
	var walk func(n *Node)
	walk = func(n *Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			t.index[c] = len(t.nodes)
			t.nodes = append(t.nodes, c)
			walk(c)
		}
	}
	walk(doc)

	if len(t.nodes) == 0 {
		return nil, &ParseError{Err: errors.New("no root element")}
	}
	t.root = t.nodes[0]
	return t, nil
}

// Document returns the document node queries are evaluated from.
func (t *Tree) Document() *Node { return t.doc }

// Root returns the top-level element.
func (t *Tree) Root() *Node { return t.root }

// Nodes returns every element in document order. Callers must not modify
// the returned slice.
func (t *Tree) Nodes() []*Node { return t.nodes }

// Len returns the number of elements in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Index returns the document-order position of n, or -1 if n is not an
// element of this tree.
func (t *Tree) Index(n *Node) int {
	if i, ok := t.index[n]; ok {
		return i
	}
	return -1
}

// Attr returns the value of attribute name on n, or "".
func Attr(n *Node, name string) string {
	if n == nil || name == "" {
		return ""
	}
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether n carries attribute name at all.
func HasAttr(n *Node, name string) bool {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// Tag returns the element tag used in generated queries.
func Tag(n *Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

// ParentElement returns the enclosing element, or nil at the root.
func ParentElement(n *Node) *Node {
	p := n.Parent
	if p == nil || p.Type != xmlquery.ElementNode {
		return nil
	}
	return p
}

// ElementChildren returns the element children of n in order.
func ElementChildren(n *Node) []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// PrevElementSibling returns the closest preceding element sibling, or nil.
func PrevElementSibling(n *Node) *Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == xmlquery.ElementNode {
			return s
		}
	}
	return nil
}

// SiblingPosition returns the 1-based position of n among siblings sharing its
// tag and the number of such siblings. The root counts as its own only sibling.
func SiblingPosition(n *Node) (pos, count int) {
	parent := n.Parent
	if parent == nil {
		return 1, 1
	}
	tag := Tag(n)
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode || Tag(c) != tag {
			continue
		}
		count++
		if c == n {
			pos = count
		}
	}
	return pos, count
}
