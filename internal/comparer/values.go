package comparer

import "github.com/ludo-technologies/eacdiff/internal/syntax"

// ValuesEqual reports whether two labeled nodes have the same content for
// the purposes of an Update edit. Labeled children are not part of the
// value of a non-leaf node; they are matched on their own.
func (c *Comparer) ValuesEqual(left, right *syntax.Node) bool {
	if !HasLabel(left) || !HasLabel(right) {
		invariantf("values compared for unlabeled nodes %s and %s", left.Describe(), right.Describe())
	}

	switch left.Kind {
	case syntax.KindSwitchSection:
		return syntax.AreListsEquivalent(left.Fields(syntax.RoleLabel), right.Fields(syntax.RoleLabel), nil) &&
			syntax.AreListsEquivalent(left.Fields(syntax.RoleStatement), right.Fields(syntax.RoleStatement), IgnoreLabeledChild)

	case syntax.KindForStatement:
		// the remaining children are labeled or punctuation
		return true
	}

	var ignoreChild func(syntax.Kind) bool
	if !IsLeaf(left) {
		ignoreChild = IgnoreLabeledChild
	}
	return syntax.AreEquivalent(left, right, ignoreChild)
}
