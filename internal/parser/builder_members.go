package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

// buildNamespace converts block and file scoped namespaces. Members of the
// declaration list are lifted into the namespace.
func (b *Builder) buildNamespace(ts *sitter.Node) *syntax.Node {
	kind := syntax.KindNamespaceDeclaration
	if ts.Type() == "file_scoped_namespace_declaration" {
		kind = syntax.KindFileScopedNamespaceDecl
	}

	n := b.newNode(kind, ts)
	named := false
	for _, child := range b.children(ts) {
		switch {
		case child.Type() == "declaration_list":
			b.addMembers(n, child)
		case !child.IsNamed():
			n.AddChild(b.token(child))
		case !named:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleName))
			named = true
		default:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleMember))
		}
	}
	return n
}

// addMembers converts the children of a declaration list into members of n
func (b *Builder) addMembers(n *syntax.Node, list *sitter.Node) {
	for _, child := range b.children(list) {
		converted := b.buildNode(child)
		if child.IsNamed() {
			converted.WithRole(syntax.RoleMember)
		}
		n.AddChild(converted)
	}
}

// buildTypeDeclaration converts classes, structs, interfaces, records and
// enums
func (b *Builder) buildTypeDeclaration(kind syntax.Kind, ts *sitter.Node) *syntax.Node {
	n := b.newNode(kind, ts)
	named := false
	for _, child := range b.children(ts) {
		switch {
		case child.Type() == "declaration_list" || child.Type() == "enum_member_declaration_list":
			b.addMembers(n, child)
		case child.Type() == "identifier" && !named:
			n.AddChild(b.identifierToken(child, syntax.RoleIdentifier))
			named = true
		case child.Type() == "parameter_list":
			// positional record parameters
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleParameterList))
		default:
			n.AddChild(b.buildNode(child))
		}
	}
	return n
}

// memberLayout locates the name and the return type of a member: the name
// is the last identifier before the parameter list, or the operator after
// the operator keyword, and the type is the first named child before it
// that is not a modifier or attribute.
func (b *Builder) memberLayout(kind syntax.Kind, children []*sitter.Node) (name, returnType int) {
	name, returnType = -1, -1

	for i, child := range children {
		if child.Type() == "parameter_list" {
			break
		}
		switch kind {
		case syntax.KindOperatorDeclaration:
			if i > 0 && b.isToken(children[i-1], "operator") {
				name = i
			}
		case syntax.KindConversionOperator:
			if i > 0 && b.isToken(children[i-1], "operator") && child.IsNamed() {
				returnType = i
			}
		default:
			if child.Type() == "identifier" {
				name = i
			}
		}
	}

	if kind == syntax.KindConversionOperator {
		return name, returnType
	}

	limit := name
	if limit < 0 {
		limit = len(children)
	}
	for i := 0; i < limit; i++ {
		if child := children[i]; child.IsNamed() && !isMemberPrefix(child.Type()) && child.Type() != "parameter_list" {
			returnType = i
			break
		}
	}
	return name, returnType
}

func isMemberPrefix(nodeType string) bool {
	switch nodeType {
	case "modifier", "attribute_list", "explicit_interface_specifier", "type_parameter_list":
		return true
	}
	return false
}

// buildMember converts members with a parameter list and a body: methods,
// constructors, destructors, operators and local functions
func (b *Builder) buildMember(kind syntax.Kind, ts *sitter.Node) *syntax.Node {
	n := b.newNode(kind, ts)
	children := b.children(ts)
	name, returnType := b.memberLayout(kind, children)

	for i, child := range children {
		switch {
		case i == name:
			n.AddChild(b.token(child).WithRole(syntax.RoleIdentifier))
		case i == returnType:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleType))
		case child.Type() == "parameter_list":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleParameterList))
		case child.Type() == "block" || child.Type() == "arrow_expression_clause":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleBody))
		default:
			n.AddChild(b.buildNode(child))
		}
	}
	return n
}

// buildProperty converts properties and indexers. An expression bodied
// property keeps its arrow clause as body.
func (b *Builder) buildProperty(kind syntax.Kind, ts *sitter.Node) *syntax.Node {
	n := b.newNode(kind, ts)
	children := b.children(ts)

	name := -1
	for i, child := range children {
		if child.Type() == "accessor_list" || child.Type() == "arrow_expression_clause" ||
			child.Type() == "bracketed_parameter_list" {
			break
		}
		if child.Type() == "identifier" || b.isToken(child, "this") {
			name = i
		}
	}

	typed := false
	for i, child := range children {
		switch {
		case i == name && child.Type() == "identifier":
			n.AddChild(b.identifierToken(child, syntax.RoleIdentifier))
		case i == name:
			n.AddChild(b.token(child).WithRole(syntax.RoleIdentifier))
		case child.Type() == "accessor_list":
			list := b.newNode(syntax.KindAccessorList, child)
			b.addMembers(list, child)
			n.AddChild(list.WithRole(syntax.RoleBody))
		case child.Type() == "arrow_expression_clause":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleBody))
		case child.Type() == "bracketed_parameter_list":
			n.AddChild(b.buildParameterList(child).WithRole(syntax.RoleParameterList))
		case child.Type() == "equals_value_clause":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleInitializer))
		case child.IsNamed() && !typed && i < name && !isMemberPrefix(child.Type()):
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleType))
			typed = true
		default:
			n.AddChild(b.buildNode(child))
		}
	}
	return n
}

// buildAccessor converts "[modifiers] get|set|init|add|remove body"
func (b *Builder) buildAccessor(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindAccessorDeclaration, ts)
	keyed := false
	for _, child := range b.children(ts) {
		switch {
		case child.Type() == "block" || child.Type() == "arrow_expression_clause":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleBody))
		case !keyed && isAccessorKeyword(b.text(child)) && child.Type() != "modifier":
			n.AddChild(b.token(child).WithRole(syntax.RoleKeyword))
			keyed = true
		default:
			n.AddChild(b.buildNode(child))
		}
	}
	return n
}

func isAccessorKeyword(text string) bool {
	switch text {
	case "get", "set", "init", "add", "remove":
		return true
	}
	return false
}

// buildArrowExpressionClause converts "=> expression"
func (b *Builder) buildArrowExpressionClause(ts *sitter.Node) *syntax.Node {
	return b.buildWithRoles(syntax.KindArrowExpressionClause, ts, syntax.RoleExpression)
}

func (b *Builder) buildParameterList(ts *sitter.Node) *syntax.Node {
	kind := syntax.KindParameterList
	if ts.Type() == "bracketed_parameter_list" {
		kind = syntax.KindBracketedParameterList
	}

	n := b.newNode(kind, ts)
	for _, child := range b.children(ts) {
		if !child.IsNamed() {
			n.AddChild(b.token(child))
			continue
		}
		converted := b.buildNode(child)
		if converted.Kind != syntax.KindParameter {
			converted = b.buildSimpleParameter(child)
		}
		n.AddChild(converted.WithRole(syntax.RoleParameter))
	}
	return n
}

// buildParameter converts "[attributes] [modifiers] [type] identifier
// [= default]"
func (b *Builder) buildParameter(ts *sitter.Node) *syntax.Node {
	if ts.ChildCount() == 0 {
		return b.buildSimpleParameter(ts)
	}

	n := b.newNode(syntax.KindParameter, ts)
	children := b.children(ts)

	name := -1
	for i, child := range children {
		if b.isToken(child, "=") || child.Type() == "equals_value_clause" {
			break
		}
		if child.Type() == "identifier" {
			name = i
		}
	}

	for i, child := range children {
		switch {
		case i == name:
			n.AddChild(b.identifierToken(child, syntax.RoleIdentifier))
		case child.Type() == "equals_value_clause":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleInitializer))
		case child.IsNamed() && i < name && !isParameterPrefix(child.Type()) && n.Field(syntax.RoleType) == nil:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleType))
		default:
			n.AddChild(b.buildNode(child))
		}
	}
	return n
}

func isParameterPrefix(nodeType string) bool {
	switch nodeType {
	case "attribute_list", "modifier", "parameter_modifier":
		return true
	}
	return false
}
