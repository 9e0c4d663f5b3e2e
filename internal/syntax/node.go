package syntax

import (
	"fmt"
	"strings"
)

// Role names the slot a child occupies in its parent
type Role string

// Child roles
const (
	RoleNone          Role = ""
	RoleDeclaration   Role = "Declaration"
	RoleInitializer   Role = "Initializer"
	RoleCondition     Role = "Condition"
	RoleIncrementor   Role = "Incrementor"
	RoleStatement     Role = "Statement"
	RoleExpression    Role = "Expression"
	RoleIdentifier    Role = "Identifier"
	RoleType          Role = "Type"
	RoleElse          Role = "Else"
	RoleBlock         Role = "Block"
	RoleCatch         Role = "Catch"
	RoleFilter        Role = "Filter"
	RoleFinally       Role = "Finally"
	RoleLabel         Role = "Label"
	RoleParameter     Role = "Parameter"
	RoleParameterList Role = "ParameterList"
	RoleBody          Role = "Body"
	RoleAsync         Role = "Async"
	RoleVariable      Role = "Variable"
	RoleValue         Role = "Value"
	RoleClause        Role = "Clause"
	RoleSelectOrGroup Role = "SelectOrGroup"
	RoleContinuation  Role = "Continuation"
	RoleFrom          Role = "From"
	RoleArgument      Role = "Argument"
	RoleArgumentList  Role = "ArgumentList"
	RoleOperator      Role = "Operator"
	RoleLeft          Role = "Left"
	RoleRight         Role = "Right"
	RoleName          Role = "Name"
	RoleMember        Role = "Member"
	RoleKeyword       Role = "Keyword"
	RoleOrdering      Role = "Ordering"
	RoleBy            Role = "By"
	RoleInto          Role = "Into"
)

// Location represents the position of a node in the source code
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Node is a syntax node or a token.
// Tokens carry Text and have no children; nodes keep their node and token
// children together in source order.
type Node struct {
	Kind     Kind
	Role     Role
	Text     string
	Parent   *Node
	Children []*Node
	Location Location
}

// NewNode creates a node of the given kind and attaches the children
func NewNode(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind}
	for _, child := range children {
		n.AddChild(child)
	}
	return n
}

// NewToken creates a token of the given kind and text
func NewToken(kind Kind, text string) *Node {
	return &Node{Kind: kind, Text: text}
}

// AddChild appends a child and sets its parent. Nil children are dropped.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// WithRole sets the role of the node and returns it
func (n *Node) WithRole(role Role) *Node {
	if n != nil {
		n.Role = role
	}
	return n
}

// IsToken reports whether the node is a token
func (n *Node) IsToken() bool {
	return n != nil && n.Kind.IsToken()
}

// IsKind reports whether the node is non-nil and of the given kind
func (n *Node) IsKind(kind Kind) bool {
	return n != nil && n.Kind == kind
}

// ChildNodes returns the non-token children in source order
func (n *Node) ChildNodes() []*Node {
	if n == nil {
		return nil
	}
	var nodes []*Node
	for _, child := range n.Children {
		if !child.IsToken() {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// ChildTokens returns the token children in source order
func (n *Node) ChildTokens() []*Node {
	if n == nil {
		return nil
	}
	var tokens []*Node
	for _, child := range n.Children {
		if child.IsToken() {
			tokens = append(tokens, child)
		}
	}
	return tokens
}

// Field returns the first child with the given role, or nil
func (n *Node) Field(role Role) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		if child.Role == role {
			return child
		}
	}
	return nil
}

// Fields returns all children with the given role in source order
func (n *Node) Fields(role Role) []*Node {
	if n == nil {
		return nil
	}
	var fields []*Node
	for _, child := range n.Children {
		if child.Role == role {
			fields = append(fields, child)
		}
	}
	return fields
}

// HasToken reports whether the node has a direct token child with the given text
func (n *Node) HasToken(text string) bool {
	for _, tok := range n.ChildTokens() {
		if tok.Text == text {
			return true
		}
	}
	return false
}

// DescendantNodes returns a lazy pre-order iterator over the non-token
// descendants of n. The children of a node (n included) are visited only
// when descendInto reports true for it; a nil predicate descends everywhere.
func (n *Node) DescendantNodes(descendInto func(*Node) bool) *DescendantIterator {
	it := &DescendantIterator{descendInto: descendInto}
	if n != nil && (descendInto == nil || descendInto(n)) {
		it.push(n)
	}
	return it
}

// DescendantTokens returns all tokens under n in source order
func (n *Node) DescendantTokens() []*Node {
	var tokens []*Node
	var walk func(*Node)
	walk = func(node *Node) {
		if node == nil {
			return
		}
		if node.IsToken() {
			tokens = append(tokens, node)
			return
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(n)
	return tokens
}

// FirstAncestorOrSelf returns the closest node, starting at n, that satisfies pred
func (n *Node) FirstAncestorOrSelf(pred func(*Node) bool) *Node {
	for node := n; node != nil; node = node.Parent {
		if pred(node) {
			return node
		}
	}
	return nil
}

// String returns the token text of the subtree separated by single spaces
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	tokens := n.DescendantTokens()
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Text
	}
	return strings.Join(parts, " ")
}

// Describe returns a short description of the node for diagnostics
func (n *Node) Describe() string {
	if n == nil {
		return "<nil>"
	}
	if n.IsToken() {
		return fmt.Sprintf("%s(%q)", n.Kind, n.Text)
	}
	return fmt.Sprintf("%s@%d:%d", n.Kind, n.Location.StartLine, n.Location.StartCol)
}

// DescendantIterator walks descendants lazily with an explicit stack
type DescendantIterator struct {
	descendInto func(*Node) bool
	stack       []frame
}

type frame struct {
	node  *Node
	index int
}

func (it *DescendantIterator) push(n *Node) {
	it.stack = append(it.stack, frame{node: n})
}

// Next returns the next descendant node, or false when exhausted
func (it *DescendantIterator) Next() (*Node, bool) {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.index >= len(top.node.Children) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		child := top.node.Children[top.index]
		top.index++
		if child.IsToken() {
			continue
		}
		if it.descendInto == nil || it.descendInto(child) {
			it.push(child)
		}
		return child, true
	}
	return nil, false
}

// Collect drains the iterator into a slice
func (it *DescendantIterator) Collect() []*Node {
	var nodes []*Node
	for node, ok := it.Next(); ok; node, ok = it.Next() {
		nodes = append(nodes, node)
	}
	return nodes
}
