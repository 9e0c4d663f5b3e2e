package match

import (
	"fmt"
	"sort"

	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

// TreeNode is a node of the labeled tree the edit distance runs on
type TreeNode struct {
	ID    int
	Label int

	Children []*TreeNode
	Parent   *TreeNode

	// Zhang-Shasha bookkeeping
	PostOrderID  int
	LeftMostLeaf int
	KeyRoot      bool

	// Syntax node this tree node stands for
	Node *syntax.Node
}

// AddChild appends a child and links it back to this node
func (t *TreeNode) AddChild(child *TreeNode) {
	if child != nil {
		child.Parent = t
		t.Children = append(t.Children, child)
	}
}

// IsLeaf returns true if this node has no children
func (t *TreeNode) IsLeaf() bool {
	return len(t.Children) == 0
}

// Size returns the number of nodes in the subtree
func (t *TreeNode) Size() int {
	size := 1
	for _, child := range t.Children {
		size += child.Size()
	}
	return size
}

func (t *TreeNode) String() string {
	if t.Node == nil {
		return fmt.Sprintf("TreeNode{ID: %d, Label: %d}", t.ID, t.Label)
	}
	return fmt.Sprintf("TreeNode{ID: %d, Label: %d, Kind: %s}", t.ID, t.Label, t.Node.Kind)
}

// CostModel prices the edit operations of the tree edit distance
type CostModel interface {
	Insert(node *TreeNode) float64
	Delete(node *TreeNode) float64
	Rename(node1, node2 *TreeNode) float64
}

// UnitCostModel charges 1 per insert and delete, and a rename by the
// comparer's distance when labels agree. Differently labeled nodes cost a
// full rename. The two roots always correspond.
type UnitCostModel struct {
	cmp TreeComparer
}

// NewUnitCostModel creates a cost model backed by the comparer
func NewUnitCostModel(cmp TreeComparer) *UnitCostModel {
	return &UnitCostModel{cmp: cmp}
}

func (c *UnitCostModel) Insert(node *TreeNode) float64 { return 1.0 }

func (c *UnitCostModel) Delete(node *TreeNode) float64 { return 1.0 }

func (c *UnitCostModel) Rename(node1, node2 *TreeNode) float64 {
	if node1.Parent == nil && node2.Parent == nil {
		return 0.0
	}
	if node1.Label != node2.Label {
		return 1.0
	}
	return c.cmp.GetDistance(node1.Node, node2.Node)
}

// BuildTree converts the labeled tree under root, as seen through the
// comparer's children, into a TreeNode tree
func BuildTree(cmp TreeComparer, root *syntax.Node) *TreeNode {
	if root == nil {
		return nil
	}
	nextID := 0
	var build func(node *syntax.Node) *TreeNode
	build = func(node *syntax.Node) *TreeNode {
		tn := &TreeNode{ID: nextID, Label: cmp.GetLabel(node), Node: node}
		nextID++
		for _, child := range cmp.GetChildren(node).Collect() {
			tn.AddChild(build(child))
		}
		return tn
	}
	return build(root)
}

// prepareTree numbers the nodes in post-order, records left-most leaves and
// returns the post-order list together with the key roots in ascending order
func prepareTree(root *TreeNode) ([]*TreeNode, []int) {
	var nodes []*TreeNode
	var walk func(node *TreeNode)
	walk = func(node *TreeNode) {
		for _, child := range node.Children {
			walk(child)
		}
		node.PostOrderID = len(nodes)
		if node.IsLeaf() {
			node.LeftMostLeaf = node.PostOrderID
		} else {
			node.LeftMostLeaf = node.Children[0].LeftMostLeaf
		}
		nodes = append(nodes, node)
	}
	walk(root)

	// the highest node for each left-most leaf is a key root
	highest := make(map[int]int)
	for _, node := range nodes {
		highest[node.LeftMostLeaf] = node.PostOrderID
	}
	keyRoots := make([]int, 0, len(highest))
	for _, id := range highest {
		nodes[id].KeyRoot = true
		keyRoots = append(keyRoots, id)
	}
	sort.Ints(keyRoots)
	return nodes, keyRoots
}

// TreeEditDistance computes the Zhang-Shasha tree edit distance
type TreeEditDistance struct {
	costModel CostModel
}

// NewTreeEditDistance creates a tree edit distance with the given costs
func NewTreeEditDistance(costModel CostModel) *TreeEditDistance {
	return &TreeEditDistance{costModel: costModel}
}

// ComputeDistance returns the cost of the cheapest edit sequence turning
// tree1 into tree2
func (d *TreeEditDistance) ComputeDistance(tree1, tree2 *TreeNode) float64 {
	if tree1 == nil && tree2 == nil {
		return 0.0
	}
	if tree1 == nil {
		return d.subtreeCost(tree2, d.costModel.Insert)
	}
	if tree2 == nil {
		return d.subtreeCost(tree1, d.costModel.Delete)
	}

	nodes1, keyRoots1 := prepareTree(tree1)
	nodes2, keyRoots2 := prepareTree(tree2)

	td := make([][]float64, len(nodes1))
	for i := range td {
		td[i] = make([]float64, len(nodes2))
	}

	for _, i := range keyRoots1 {
		for _, j := range keyRoots2 {
			d.computeForestDistance(nodes1, nodes2, i, j, td)
		}
	}
	return td[len(nodes1)-1][len(nodes2)-1]
}

// computeForestDistance fills the tree distances of every pair of nodes on
// the left paths of key roots i and j
func (d *TreeEditDistance) computeForestDistance(nodes1, nodes2 []*TreeNode, i, j int, td [][]float64) {
	li := nodes1[i].LeftMostLeaf
	lj := nodes2[j].LeftMostLeaf
	rows := i - li + 2
	cols := j - lj + 2

	fd := make([][]float64, rows)
	for x := range fd {
		fd[x] = make([]float64, cols)
	}
	for x := 1; x < rows; x++ {
		fd[x][0] = fd[x-1][0] + d.costModel.Delete(nodes1[li+x-1])
	}
	for y := 1; y < cols; y++ {
		fd[0][y] = fd[0][y-1] + d.costModel.Insert(nodes2[lj+y-1])
	}

	for x := 1; x < rows; x++ {
		n1 := nodes1[li+x-1]
		for y := 1; y < cols; y++ {
			n2 := nodes2[lj+y-1]
			deleteCost := fd[x-1][y] + d.costModel.Delete(n1)
			insertCost := fd[x][y-1] + d.costModel.Insert(n2)

			if n1.LeftMostLeaf == li && n2.LeftMostLeaf == lj {
				renameCost := fd[x-1][y-1] + d.costModel.Rename(n1, n2)
				fd[x][y] = min(deleteCost, insertCost, renameCost)
				td[n1.PostOrderID][n2.PostOrderID] = fd[x][y]
				continue
			}

			p := n1.LeftMostLeaf - li
			q := n2.LeftMostLeaf - lj
			fd[x][y] = min(deleteCost, insertCost, fd[p][q]+td[n1.PostOrderID][n2.PostOrderID])
		}
	}
}

func (d *TreeEditDistance) subtreeCost(root *TreeNode, cost func(*TreeNode) float64) float64 {
	total := cost(root)
	for _, child := range root.Children {
		total += d.subtreeCost(child, cost)
	}
	return total
}

// TreeDistance is the edit distance between the labeled trees under the two
// roots, normalized to [0, 1] by the size of the larger tree
func TreeDistance(cmp TreeComparer, oldRoot, newRoot *syntax.Node) float64 {
	tree1 := BuildTree(cmp, oldRoot)
	tree2 := BuildTree(cmp, newRoot)
	if tree1 == nil && tree2 == nil {
		return 0.0
	}

	size := 0
	if tree1 != nil {
		size = tree1.Size()
	}
	if tree2 != nil {
		size = max(size, tree2.Size())
	}

	distance := NewTreeEditDistance(NewUnitCostModel(cmp)).ComputeDistance(tree1, tree2)
	return min(distance/float64(size), 1.0)
}
