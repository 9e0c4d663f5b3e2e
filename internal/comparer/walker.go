package comparer

import "github.com/ludo-technologies/eacdiff/internal/syntax"

// TryGetParent returns the closest labeled ancestor of the node. The roots
// of a bounded comparer are returned as parents even when unlabeled.
func (c *Comparer) TryGetParent(node *syntax.Node) (*syntax.Node, bool) {
	if node == nil {
		return nil, false
	}
	parent := node.Parent
	for parent != nil && !c.isRoot(parent) && !HasLabel(parent) {
		parent = parent.Parent
	}
	return parent, parent != nil
}

// GetChildren returns the labeled children of the node in source order, or
// nil when the node is a leaf. Labeled nodes nested in ignored children are
// surfaced if they are declarators, await expressions or lambdas.
func (c *Comparer) GetChildren(node *syntax.Node) *ChildIterator {
	if node == nil {
		return nil
	}
	if c.isRoot(node) {
		return &ChildIterator{candidates: []*syntax.Node{c.rootChildOf(node)}}
	}
	if IsLeaf(node) {
		return nil
	}
	return &ChildIterator{candidates: node.ChildNodes()}
}

// GetDescendants returns every labeled node below the node, flattened in
// pre-order. It never descends below a leaf.
func (c *Comparer) GetDescendants(node *syntax.Node) []*syntax.Node {
	if node == nil {
		return nil
	}
	var result []*syntax.Node
	if c.isRoot(node) {
		child := c.rootChildOf(node)
		if HasLabel(child) {
			result = append(result, child)
		}
		node = child
	}
	it := node.DescendantNodes(hasChildren)
	for descendant, ok := it.Next(); ok; descendant, ok = it.Next() {
		if HasLabel(descendant) {
			result = append(result, descendant)
		}
	}
	return result
}

func hasChildren(node *syntax.Node) bool {
	return !IsLeaf(node)
}

// isLambda covers the lambda shapes and the query clauses compiled to lambdas
func isLambda(node *syntax.Node) bool {
	return IsLambdaLabel(GetLabelOf(node))
}

func isNotLambda(node *syntax.Node) bool {
	return !isLambda(node)
}

// isExpressionDescendant reports whether a node found inside an ignored
// expression must be shown to the matcher
func isExpressionDescendant(node *syntax.Node) bool {
	return node.Kind == syntax.KindVariableDeclarator ||
		node.Kind == syntax.KindAwaitExpression ||
		isLambda(node)
}

// ChildIterator lazily enumerates the children produced by GetChildren.
// It keeps a cursor over the direct children and, while inside an ignored
// child, a cursor over that child's descendants.
type ChildIterator struct {
	candidates []*syntax.Node
	index      int
	descent    *syntax.DescendantIterator
}

// Next returns the next labeled child, or false when exhausted
func (it *ChildIterator) Next() (*syntax.Node, bool) {
	if it == nil {
		return nil, false
	}
	for {
		if it.descent != nil {
			for descendant, ok := it.descent.Next(); ok; descendant, ok = it.descent.Next() {
				if isExpressionDescendant(descendant) {
					return descendant, true
				}
			}
			it.descent = nil
		}
		if it.index >= len(it.candidates) {
			return nil, false
		}
		child := it.candidates[it.index]
		it.index++
		if HasLabel(child) {
			return child, true
		}
		it.descent = child.DescendantNodes(isNotLambda)
	}
}

// Collect drains the iterator into a slice. A nil iterator yields nil.
func (it *ChildIterator) Collect() []*syntax.Node {
	var children []*syntax.Node
	for child, ok := it.Next(); ok; child, ok = it.Next() {
		children = append(children, child)
	}
	return children
}
