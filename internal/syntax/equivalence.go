package syntax

// AreEquivalent reports whether two subtrees are structurally equivalent.
// Kinds must match and tokens must agree on kind and text. Child nodes whose
// kind satisfies ignoreChild are removed from both sides before the
// remaining children are compared pairwise; a nil ignoreChild compares the
// entire subtree.
func AreEquivalent(a, b *Node, ignoreChild func(Kind) bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.IsToken() {
		return a.Text == b.Text
	}
	return AreListsEquivalent(a.Children, b.Children, ignoreChild)
}

// AreListsEquivalent compares two sibling sequences with the same rules as AreEquivalent
func AreListsEquivalent(as, bs []*Node, ignoreChild func(Kind) bool) bool {
	as = filterIgnored(as, ignoreChild)
	bs = filterIgnored(bs, ignoreChild)
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !AreEquivalent(as[i], bs[i], ignoreChild) {
			return false
		}
	}
	return true
}

func filterIgnored(nodes []*Node, ignoreChild func(Kind) bool) []*Node {
	if ignoreChild == nil {
		return nodes
	}
	var kept []*Node
	for _, node := range nodes {
		if !node.IsToken() && ignoreChild(node.Kind) {
			continue
		}
		kept = append(kept, node)
	}
	return kept
}

// AreTokensEquivalent reports whether two tokens have the same kind and text
func AreTokensEquivalent(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind == b.Kind && a.Text == b.Text
}
