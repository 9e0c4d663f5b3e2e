package comparer

import "github.com/ludo-technologies/eacdiff/internal/syntax"

// Comparer is the statement-level policy consumed by a tree matcher:
// labels, navigation restricted to labeled nodes, value equality and
// weighted distances. A Comparer never mutates the trees it reads and is
// safe for concurrent use.
type Comparer struct {
	oldRootChild *syntax.Node
	newRootChild *syntax.Node
	oldRoot      *syntax.Node
	newRoot      *syntax.Node
}

// Default is the comparer without root bounds, used for value comparisons
var Default = &Comparer{}

// New creates a comparer confined to oldRootChild and newRootChild. Their
// parents become the roots of the two trees; traversing from a root yields
// only its root child.
func New(oldRootChild, newRootChild *syntax.Node) *Comparer {
	if oldRootChild == nil || newRootChild == nil {
		invariantf("root children must not be nil")
	}
	return &Comparer{
		oldRootChild: oldRootChild,
		newRootChild: newRootChild,
		oldRoot:      oldRootChild.Parent,
		newRoot:      newRootChild.Parent,
	}
}

// OldRoot returns the root of the old tree, or nil for an unbounded comparer
func (c *Comparer) OldRoot() *syntax.Node { return c.oldRoot }

// NewRoot returns the root of the new tree, or nil for an unbounded comparer
func (c *Comparer) NewRoot() *syntax.Node { return c.newRoot }

// OldRootChild returns the compared subtree of the old tree
func (c *Comparer) OldRootChild() *syntax.Node { return c.oldRootChild }

// NewRootChild returns the compared subtree of the new tree
func (c *Comparer) NewRootChild() *syntax.Node { return c.newRootChild }

// LabelCount returns the number of labels
func (c *Comparer) LabelCount() int {
	return int(LabelCount)
}

// GetLabel returns the label of the node as an int
func (c *Comparer) GetLabel(node *syntax.Node) int {
	return int(GetLabelOf(node))
}

// TiedToAncestor returns the weld depth of the label
func (c *Comparer) TiedToAncestor(label int) int {
	return TiedToAncestor(Label(label))
}

func (c *Comparer) isRoot(node *syntax.Node) bool {
	return node != nil && (node == c.oldRoot || node == c.newRoot)
}

func (c *Comparer) rootChildOf(root *syntax.Node) *syntax.Node {
	if root == c.oldRoot {
		return c.oldRootChild
	}
	return c.newRootChild
}
