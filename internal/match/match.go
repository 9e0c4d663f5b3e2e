package match

import (
	"github.com/ludo-technologies/eacdiff/internal/comparer"
	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

// TreeComparer is the policy the matcher is driven by
type TreeComparer interface {
	LabelCount() int
	GetLabel(node *syntax.Node) int
	TiedToAncestor(label int) int
	TryGetParent(node *syntax.Node) (*syntax.Node, bool)
	GetChildren(node *syntax.Node) *comparer.ChildIterator
	GetDescendants(node *syntax.Node) []*syntax.Node
	ValuesEqual(left, right *syntax.Node) bool
	GetDistance(left, right *syntax.Node) float64
}

// DefaultLevels are the distance thresholds tried in order. Exact matches
// are found first, then close ones, then anything with the same label.
var DefaultLevels = []float64{comparer.EpsilonDistance, 0.5, 1.0}

// DefaultMaxLambdaDepth bounds how deep lambda bodies are matched
const DefaultMaxLambdaDepth = 16

// Options configure the matcher
type Options struct {
	// Levels are increasing distance thresholds in (0, 1]
	Levels []float64

	// MaxLambdaDepth bounds the nesting of lambda bodies compared by
	// CompareBodies. Zero selects DefaultMaxLambdaDepth.
	MaxLambdaDepth int
}

// Pair is a matched pair of nodes
type Pair struct {
	Old *syntax.Node
	New *syntax.Node
}

// Match is the correspondence between the nodes of two trees
type Match struct {
	Comparer TreeComparer
	OldRoot  *syntax.Node
	NewRoot  *syntax.Node

	oldNodes []*syntax.Node
	newNodes []*syntax.Node
	oldToNew map[*syntax.Node]*syntax.Node
	newToOld map[*syntax.Node]*syntax.Node
}

// Compute matches the labeled nodes below oldRoot and newRoot. The roots
// are matched to each other; the rest are paired greedily by label, level
// by level, honouring the tied-to-ancestor constraint. The result depends
// only on the trees and the comparer.
func Compute(cmp TreeComparer, oldRoot, newRoot *syntax.Node, opts Options) *Match {
	levels := opts.Levels
	if len(levels) == 0 {
		levels = DefaultLevels
	}

	m := &Match{
		Comparer: cmp,
		OldRoot:  oldRoot,
		NewRoot:  newRoot,
		oldNodes: cmp.GetDescendants(oldRoot),
		newNodes: cmp.GetDescendants(newRoot),
		oldToNew: make(map[*syntax.Node]*syntax.Node),
		newToOld: make(map[*syntax.Node]*syntax.Node),
	}
	m.add(oldRoot, newRoot)

	oldByLabel := m.bucket(m.oldNodes)
	newByLabel := m.bucket(m.newNodes)

	for _, level := range levels {
		for label := 0; label < cmp.LabelCount(); label++ {
			m.matchLabel(label, oldByLabel[label], newByLabel[label], level)
		}
	}
	return m
}

func (m *Match) bucket(nodes []*syntax.Node) [][]*syntax.Node {
	buckets := make([][]*syntax.Node, m.Comparer.LabelCount())
	for _, node := range nodes {
		label := m.Comparer.GetLabel(node)
		if label < 0 || label >= len(buckets) {
			continue
		}
		buckets[label] = append(buckets[label], node)
	}
	return buckets
}

func (m *Match) matchLabel(label int, oldNodes, newNodes []*syntax.Node, maxDistance float64) {
	depth := m.Comparer.TiedToAncestor(label)

	for _, oldNode := range oldNodes {
		if _, ok := m.oldToNew[oldNode]; ok {
			continue
		}

		var best *syntax.Node
		bestDistance := maxDistance
		for _, newNode := range newNodes {
			if _, ok := m.newToOld[newNode]; ok {
				continue
			}
			if depth > 0 && !m.ancestorsMatch(oldNode, newNode, depth) {
				continue
			}
			distance := m.Comparer.GetDistance(oldNode, newNode)
			if distance <= bestDistance && (best == nil || distance < bestDistance) {
				best = newNode
				bestDistance = distance
				if distance == comparer.ExactMatchDistance {
					break
				}
			}
		}

		if best != nil {
			m.add(oldNode, best)
		}
	}
}

// ancestorsMatch reports whether the labeled ancestors at the given depth
// above both nodes are partners
func (m *Match) ancestorsMatch(oldNode, newNode *syntax.Node, depth int) bool {
	oldAncestor := m.ancestor(oldNode, depth)
	newAncestor := m.ancestor(newNode, depth)
	if oldAncestor == nil || newAncestor == nil {
		return false
	}
	partner, ok := m.oldToNew[oldAncestor]
	return ok && partner == newAncestor
}

func (m *Match) ancestor(node *syntax.Node, depth int) *syntax.Node {
	for i := 0; i < depth; i++ {
		parent, ok := m.Comparer.TryGetParent(node)
		if !ok {
			return nil
		}
		node = parent
	}
	return node
}

func (m *Match) add(oldNode, newNode *syntax.Node) {
	m.oldToNew[oldNode] = newNode
	m.newToOld[newNode] = oldNode
}

// TryGetNewNode returns the partner of a node of the old tree
func (m *Match) TryGetNewNode(oldNode *syntax.Node) (*syntax.Node, bool) {
	n, ok := m.oldToNew[oldNode]
	return n, ok
}

// TryGetOldNode returns the partner of a node of the new tree
func (m *Match) TryGetOldNode(newNode *syntax.Node) (*syntax.Node, bool) {
	n, ok := m.newToOld[newNode]
	return n, ok
}

// Matches returns the matched pairs below the roots in old source order
func (m *Match) Matches() []Pair {
	var pairs []Pair
	for _, oldNode := range m.oldNodes {
		if newNode, ok := m.oldToNew[oldNode]; ok {
			pairs = append(pairs, Pair{Old: oldNode, New: newNode})
		}
	}
	return pairs
}

// OldNodes returns the labeled nodes of the old tree below the root
func (m *Match) OldNodes() []*syntax.Node { return m.oldNodes }

// NewNodes returns the labeled nodes of the new tree below the root
func (m *Match) NewNodes() []*syntax.Node { return m.newNodes }
