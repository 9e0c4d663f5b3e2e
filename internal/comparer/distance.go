package comparer

import "github.com/ludo-technologies/eacdiff/internal/syntax"

const (
	// ExactMatchDistance is the distance of equivalent nodes
	ExactMatchDistance = 0.0

	// EpsilonDistance is the smallest distance of two nodes that are not
	// equivalent, so that only equivalent nodes ever score exactly zero
	EpsilonDistance = 0.00001
)

// GetDistance returns the distance of two nodes with the same label:
// the weighted distance where one is defined, the value distance
// otherwise.
func (c *Comparer) GetDistance(left, right *syntax.Node) float64 {
	if distance, ok := c.TryComputeWeightedDistance(left, right); ok {
		if distance == ExactMatchDistance && !syntax.AreEquivalent(left, right, nil) {
			distance = EpsilonDistance
		}
		return distance
	}
	return ComputeValueDistance(left, right)
}

// ComputeValueDistance returns 0 for equivalent subtrees and the token
// distance otherwise, never 0 for subtrees that differ
func ComputeValueDistance(left, right *syntax.Node) float64 {
	if syntax.AreEquivalent(left, right, nil) {
		return ExactMatchDistance
	}
	distance := ComputeDistance(left, right)
	if distance == ExactMatchDistance {
		return EpsilonDistance
	}
	return distance
}

// ComputeDistance returns the distance of the token sequences of two
// subtrees. A missing subtree is at distance 1 from a present one.
func ComputeDistance(left, right *syntax.Node) float64 {
	if left == nil || right == nil {
		if left == right {
			return 0
		}
		return 1
	}
	return ComputeTokensDistance(left.DescendantTokens(), right.DescendantTokens())
}

// ComputeTokensDistance returns 1 - lcs/max over two token sequences,
// tokens being equal when kind and text agree
func ComputeTokensDistance(left, right []*syntax.Node) float64 {
	longest := max(len(left), len(right))
	if longest == 0 {
		return 0
	}
	common := lcsLength(len(left), len(right), func(i, j int) bool {
		return syntax.AreTokensEquivalent(left[i], right[j])
	})
	return 1 - float64(common)/float64(longest)
}

// ComputeTokenDistance compares the text of two tokens character by character
func ComputeTokenDistance(left, right *syntax.Node) float64 {
	if left == nil || right == nil {
		if left == right {
			return 0
		}
		return 1
	}
	return ComputeStringDistance(left.Text, right.Text)
}

// ComputeStringDistance returns 1 - lcs/max over the runes of two strings
func ComputeStringDistance(left, right string) float64 {
	l, r := []rune(left), []rune(right)
	longest := max(len(l), len(r))
	if longest == 0 {
		return 0
	}
	common := lcsLength(len(l), len(r), func(i, j int) bool { return l[i] == r[j] })
	return 1 - float64(common)/float64(longest)
}

// lcsLength computes the length of the longest common subsequence with a
// rolling two-row table
func lcsLength(n, m int, equal func(i, j int) bool) int {
	if n == 0 || m == 0 {
		return 0
	}
	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			switch {
			case equal(i-1, j-1):
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[m]
}
