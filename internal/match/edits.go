package match

import (
	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

// EditKind is the kind of a syntax edit
type EditKind int

const (
	EditUpdate EditKind = iota
	EditMove
	EditReorder
	EditDelete
	EditInsert
)

func (k EditKind) String() string {
	switch k {
	case EditUpdate:
		return "update"
	case EditMove:
		return "move"
	case EditReorder:
		return "reorder"
	case EditDelete:
		return "delete"
	case EditInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Edit is a single step of an edit script. Old is nil for inserts and New
// is nil for deletes.
type Edit struct {
	Kind     EditKind
	Old      *syntax.Node
	New      *syntax.Node
	Distance float64
}

// EditScript derives the edits that turn the old tree into the new one.
// Updates, moves and reorders come first in old source order, then deletes,
// then inserts in new source order.
func EditScript(m *Match) []Edit {
	var edits []Edit
	reordered := m.reorderedNodes()

	for _, oldNode := range m.oldNodes {
		newNode, ok := m.oldToNew[oldNode]
		if !ok {
			continue
		}

		if !m.Comparer.ValuesEqual(oldNode, newNode) {
			edits = append(edits, Edit{
				Kind:     EditUpdate,
				Old:      oldNode,
				New:      newNode,
				Distance: m.Comparer.GetDistance(oldNode, newNode),
			})
		}

		if !m.parentsMatch(oldNode, newNode) {
			edits = append(edits, Edit{Kind: EditMove, Old: oldNode, New: newNode})
		} else if reordered[oldNode] {
			edits = append(edits, Edit{Kind: EditReorder, Old: oldNode, New: newNode})
		}
	}

	for _, oldNode := range m.oldNodes {
		if _, ok := m.oldToNew[oldNode]; !ok {
			edits = append(edits, Edit{Kind: EditDelete, Old: oldNode, Distance: 1})
		}
	}

	for _, newNode := range m.newNodes {
		if _, ok := m.newToOld[newNode]; !ok {
			edits = append(edits, Edit{Kind: EditInsert, New: newNode, Distance: 1})
		}
	}

	return edits
}

func (m *Match) parentsMatch(oldNode, newNode *syntax.Node) bool {
	oldParent, oldOK := m.Comparer.TryGetParent(oldNode)
	newParent, newOK := m.Comparer.TryGetParent(newNode)
	if !oldOK || !newOK {
		return oldOK == newOK
	}
	partner, ok := m.oldToNew[oldParent]
	return ok && partner == newParent
}

// reorderedNodes returns the old nodes that stay under their parent's
// partner but fall outside the longest common subsequence of the matched
// children of both parents
func (m *Match) reorderedNodes() map[*syntax.Node]bool {
	reordered := make(map[*syntax.Node]bool)

	visit := append([]*syntax.Node{m.OldRoot}, m.oldNodes...)
	for _, oldParent := range visit {
		newParent, ok := m.oldToNew[oldParent]
		if !ok {
			continue
		}

		var oldChildren []*syntax.Node
		for _, child := range m.Comparer.GetChildren(oldParent).Collect() {
			if partner, ok := m.oldToNew[child]; ok && m.isChildOf(partner, newParent) {
				oldChildren = append(oldChildren, child)
			}
		}
		if len(oldChildren) < 2 {
			continue
		}

		position := make(map[*syntax.Node]int)
		for i, child := range m.Comparer.GetChildren(newParent).Collect() {
			position[child] = i
		}

		// matched children in old order, expressed as their new positions
		sequence := make([]int, len(oldChildren))
		for i, child := range oldChildren {
			sequence[i] = position[m.oldToNew[child]]
		}

		kept := longestIncreasing(sequence)
		for i, child := range oldChildren {
			if !kept[i] {
				reordered[child] = true
			}
		}
	}
	return reordered
}

func (m *Match) isChildOf(node, parent *syntax.Node) bool {
	p, ok := m.Comparer.TryGetParent(node)
	return ok && p == parent
}

// longestIncreasing marks the members of the longest strictly increasing
// subsequence. New positions are distinct, so this is the LCS of the two
// child orders. The earliest such subsequence is kept.
func longestIncreasing(values []int) []bool {
	n := len(values)
	length := make([]int, n)
	prev := make([]int, n)

	best := -1
	for i := 0; i < n; i++ {
		length[i] = 1
		prev[i] = -1
		for j := 0; j < i; j++ {
			if values[j] < values[i] && length[j]+1 > length[i] {
				length[i] = length[j] + 1
				prev[i] = j
			}
		}
		if best < 0 || length[i] > length[best] {
			best = i
		}
	}

	kept := make([]bool, n)
	for i := best; i >= 0; i = prev[i] {
		kept[i] = true
	}
	return kept
}
