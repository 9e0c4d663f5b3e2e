package parser

import (
	"strings"

	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

// Member is a declaration that owns a comparable body
type Member struct {
	// Name is the dotted path of the member, such as "App.Program.Main"
	Name string
	// Signature is Name followed by the parameter types, and identifies
	// the member across two versions of a file
	Signature string
	Kind      syntax.Kind
	Node      *syntax.Node
	Body      *syntax.Node
}

// Members returns the members with a body under root in source order.
// Accessors are named after their property ("Count.get"), and local
// functions after their enclosing member ("Main.Helper").
func Members(root *syntax.Node) []Member {
	var members []Member
	collectMembers(root, nil, &members)
	return members
}

func collectMembers(n *syntax.Node, path []string, members *[]Member) {
	if n == nil || n.IsToken() {
		return
	}

	switch {
	case n.Kind == syntax.KindNamespaceDeclaration || n.Kind == syntax.KindFileScopedNamespaceDecl:
		path = append(path, compactText(n.Field(syntax.RoleName)))

	case isTypeDeclaration(n.Kind):
		path = append(path, compactText(n.Field(syntax.RoleIdentifier)))

	case n.Kind == syntax.KindPropertyDeclaration || n.Kind == syntax.KindIndexerDeclaration:
		collectProperty(n, path, members)
		return

	case n.Kind.IsMemberWithBody():
		name := memberName(n)
		if body := n.Field(syntax.RoleBody); body != nil {
			qualified := append(append([]string{}, path...), name)
			*members = append(*members, newMember(qualified, parameterTypes(n), n, body))
		}
		path = append(path, name)
	}

	scope := path
	for _, child := range n.ChildNodes() {
		collectMembers(child, scope, members)
		// some grammars make the declarations after a file scoped namespace
		// its siblings
		if child.Kind == syntax.KindFileScopedNamespaceDecl {
			scope = append(append([]string{}, path...), compactText(child.Field(syntax.RoleName)))
		}
	}
}

func collectProperty(n *syntax.Node, path []string, members *[]Member) {
	name := memberName(n)
	params := parameterTypes(n)
	body := n.Field(syntax.RoleBody)
	if body == nil {
		return
	}

	if body.Kind == syntax.KindArrowExpressionClause {
		qualified := append(append([]string{}, path...), name+".get")
		*members = append(*members, newMember(qualified, params, n, body))
		return
	}

	for _, accessor := range body.Fields(syntax.RoleMember) {
		accessorBody := accessor.Field(syntax.RoleBody)
		keyword := accessor.Field(syntax.RoleKeyword)
		if accessorBody == nil || keyword == nil {
			continue
		}
		qualified := append(append([]string{}, path...), name+"."+keyword.Text)
		*members = append(*members, newMember(qualified, params, accessor, accessorBody))

		for _, child := range accessorBody.ChildNodes() {
			collectMembers(child, qualified, members)
		}
	}
}

func newMember(path []string, params []string, node, body *syntax.Node) Member {
	name := strings.Join(path, ".")
	return Member{
		Name:      name,
		Signature: name + "(" + strings.Join(params, ",") + ")",
		Kind:      node.Kind,
		Node:      node,
		Body:      body,
	}
}

func isTypeDeclaration(kind syntax.Kind) bool {
	switch kind {
	case syntax.KindClassDeclaration, syntax.KindStructDeclaration, syntax.KindInterfaceDeclaration,
		syntax.KindRecordDeclaration, syntax.KindEnumDeclaration:
		return true
	}
	return false
}

// memberName returns the declared name of a member. Constructors are named
// ".ctor" and destructors "Finalize"; operators use their token text.
func memberName(n *syntax.Node) string {
	switch n.Kind {
	case syntax.KindConstructorDeclaration:
		if n.HasToken("static") || hasModifier(n, "static") {
			return ".cctor"
		}
		return ".ctor"
	case syntax.KindDestructorDeclaration:
		return "Finalize"
	case syntax.KindOperatorDeclaration:
		return "operator" + compactText(n.Field(syntax.RoleIdentifier))
	case syntax.KindConversionOperator:
		direction := "implicit"
		if n.HasToken("explicit") {
			direction = "explicit"
		}
		return direction + " operator " + compactText(n.Field(syntax.RoleType))
	case syntax.KindIndexerDeclaration:
		return "this[]"
	case syntax.KindAccessorDeclaration:
		return compactText(n.Field(syntax.RoleKeyword))
	}
	if id := n.Field(syntax.RoleIdentifier); id != nil {
		return id.Text
	}
	return string(n.Kind)
}

func hasModifier(n *syntax.Node, text string) bool {
	for _, child := range n.Children {
		if child.Kind == syntax.KindModifier && child.String() == text {
			return true
		}
	}
	return false
}

// parameterTypes returns the compact type text of each parameter
func parameterTypes(n *syntax.Node) []string {
	list := n.Field(syntax.RoleParameterList)
	if list == nil {
		return nil
	}
	params := list.Fields(syntax.RoleParameter)
	types := make([]string, 0, len(params))
	for _, param := range params {
		types = append(types, compactText(param.Field(syntax.RoleType)))
	}
	return types
}

// compactText joins the tokens of n without separators
func compactText(n *syntax.Node) string {
	if n == nil {
		return ""
	}
	if n.IsToken() {
		return n.Text
	}
	var sb strings.Builder
	for _, tok := range n.DescendantTokens() {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}
