package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

// buildLambda converts "[async] parameters => body". The parameters are the
// last named child before the arrow: a parameter list makes a parenthesized
// lambda, a bare identifier a simple one.
func (b *Builder) buildLambda(ts *sitter.Node) *syntax.Node {
	children := b.children(ts)

	arrow := -1
	params := -1
	for i, child := range children {
		if b.isToken(child, "=>") {
			arrow = i
			break
		}
		if child.IsNamed() && child.Type() != "attribute_list" && !b.isAsync(child) && child.Type() != "modifier" {
			params = i
		}
	}

	kind := syntax.KindParenthesizedLambdaExpression
	if params >= 0 && children[params].Type() != "parameter_list" && children[params].Type() != "implicit_parameter_list" {
		kind = syntax.KindSimpleLambdaExpression
	}

	n := b.newNode(kind, ts)
	for i, child := range children {
		switch {
		case i < arrow && b.isAsync(child):
			tok := syntax.NewToken(syntax.KindKeywordToken, "async")
			tok.Location = b.location(child)
			n.AddChild(tok.WithRole(syntax.RoleAsync))
		case i == params && kind == syntax.KindSimpleLambdaExpression:
			n.AddChild(b.buildSimpleParameter(children[params]).WithRole(syntax.RoleParameter))
		case i == params:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleParameterList))
		case arrow >= 0 && i > arrow && child.IsNamed():
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleBody))
		default:
			n.AddChild(b.buildNode(child))
		}
	}
	return n
}

// buildSimpleParameter wraps the single identifier of a simple lambda
func (b *Builder) buildSimpleParameter(ts *sitter.Node) *syntax.Node {
	if ts.Type() == "parameter" && ts.ChildCount() > 0 {
		return b.buildParameter(ts)
	}
	n := b.newNode(syntax.KindParameter, ts)
	n.AddChild(b.identifierToken(ts, syntax.RoleIdentifier))
	return n
}

// buildAnonymousMethod converts "[async] delegate [(parameters)] block"
func (b *Builder) buildAnonymousMethod(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindAnonymousMethodExpression, ts)
	for _, child := range b.children(ts) {
		switch {
		case b.isAsync(child):
			tok := syntax.NewToken(syntax.KindKeywordToken, "async")
			tok.Location = b.location(child)
			n.AddChild(tok.WithRole(syntax.RoleAsync))
		case child.Type() == "parameter_list":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleParameterList))
		case child.Type() == "block":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleBody))
		default:
			n.AddChild(b.buildNode(child))
		}
	}
	return n
}

// buildQuery converts "from_clause body". Grammars either wrap the body in
// a query_body node or inline its clauses; inlined clauses are collected
// into a body of their own.
func (b *Builder) buildQuery(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindQueryExpression, ts)
	children := b.children(ts)

	fromSeen := false
	var rest []*sitter.Node
	for _, child := range children {
		switch {
		case child.Type() == "from_clause" && !fromSeen:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleFrom))
			fromSeen = true
		case child.Type() == "query_body":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleBody))
		default:
			rest = append(rest, child)
		}
	}
	if len(rest) > 0 {
		n.AddChild(b.buildQueryBody(nil, rest).WithRole(syntax.RoleBody))
	}
	return n
}

// buildQueryBody converts "clauses select_or_group [continuation]". A nil
// ts takes the location from the children.
func (b *Builder) buildQueryBody(ts *sitter.Node, children []*sitter.Node) *syntax.Node {
	n := syntax.NewNode(syntax.KindQueryBody)
	switch {
	case ts != nil:
		n.Location = b.location(ts)
	case len(children) > 0:
		n.Location = b.span(children[0], children[len(children)-1])
	}

	for i := 0; i < len(children); i++ {
		child := children[i]
		switch child.Type() {
		case "select_clause", "group_clause":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleSelectOrGroup))
		case "query_continuation":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleContinuation))
		case "from_clause", "let_clause", "where_clause", "join_clause", "order_by_clause":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleClause))
		default:
			if b.isToken(child, "into") {
				// inlined continuation: "into identifier body"
				n.AddChild(b.buildContinuation(nil, children[i:]).WithRole(syntax.RoleContinuation))
				return n
			}
			n.AddChild(b.buildNode(child))
		}
	}
	return n
}

func (b *Builder) buildQueryContinuation(ts *sitter.Node) *syntax.Node {
	return b.buildContinuation(ts, b.children(ts))
}

// buildContinuation converts "into identifier body"
func (b *Builder) buildContinuation(ts *sitter.Node, children []*sitter.Node) *syntax.Node {
	n := syntax.NewNode(syntax.KindQueryContinuation)
	if ts != nil {
		n.Location = b.location(ts)
	} else {
		n.Location = b.span(children[0], children[len(children)-1])
	}

	named := false
	var rest []*sitter.Node
	for _, child := range children {
		switch {
		case b.isToken(child, "into"):
			n.AddChild(b.token(child))
		case child.Type() == "identifier" && !named:
			n.AddChild(b.identifierToken(child, syntax.RoleIdentifier))
			named = true
		case child.Type() == "query_body":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleBody))
		default:
			rest = append(rest, child)
		}
	}
	if len(rest) > 0 {
		n.AddChild(b.buildQueryBody(nil, rest).WithRole(syntax.RoleBody))
	}
	return n
}

// rangeVariable assigns the type and identifier roles of the named children
// before "in", as in "from [type] identifier in expression"
func (b *Builder) rangeVariable(n *syntax.Node, header []*sitter.Node) {
	for i, child := range header {
		switch {
		case i == len(header)-1 && child.Type() == "identifier":
			n.AddChild(b.identifierToken(child, syntax.RoleIdentifier))
		case child.IsNamed() && i == len(header)-2:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleType))
		default:
			n.AddChild(b.buildNode(child))
		}
	}
}

// namedBefore returns the named children before the first token with the
// given text
func (b *Builder) namedBefore(children []*sitter.Node, text string) []*sitter.Node {
	var named []*sitter.Node
	for _, child := range children {
		if b.isToken(child, text) {
			break
		}
		if child.IsNamed() {
			named = append(named, child)
		}
	}
	return named
}

// buildFromClause converts "from [type] identifier in expression"
func (b *Builder) buildFromClause(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindFromClause, ts)
	children := b.children(ts)
	header := b.namedBefore(children, "in")

	seenIn := false
	for _, child := range children {
		switch {
		case b.isToken(child, "from"):
			n.AddChild(b.token(child))
			b.rangeVariable(n, header)
		case b.isToken(child, "in"):
			seenIn = true
			n.AddChild(b.token(child))
		case seenIn && child.IsNamed():
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleExpression))
		case seenIn:
			n.AddChild(b.token(child))
		}
	}
	return n
}

// buildLetClause converts "let identifier = expression"
func (b *Builder) buildLetClause(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindLetClause, ts)
	named := false
	for _, child := range b.children(ts) {
		switch {
		case child.Type() == "identifier" && !named:
			n.AddChild(b.identifierToken(child, syntax.RoleIdentifier))
			named = true
		case child.IsNamed():
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleExpression))
		default:
			n.AddChild(b.token(child))
		}
	}
	return n
}

// buildJoinClause converts "join [type] identifier in expression on left
// equals right [into identifier]"
func (b *Builder) buildJoinClause(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindJoinClause, ts)
	children := b.children(ts)
	header := b.namedBefore(children, "in")

	role := syntax.RoleNone
	for _, child := range children {
		if !child.IsNamed() {
			switch b.text(child) {
			case "in":
				role = syntax.RoleExpression
			case "on":
				role = syntax.RoleLeft
			case "equals":
				role = syntax.RoleRight
			case "join":
				n.AddChild(b.token(child))
				b.rangeVariable(n, header)
				continue
			}
			n.AddChild(b.token(child))
			continue
		}

		switch {
		case child.Type() == "join_into_clause":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleInto))
		case role != syntax.RoleNone:
			n.AddChild(b.buildNode(child).WithRole(role))
		}
	}
	return n
}

// buildOrderBy converts "orderby orderings". Orderings are nodes of their
// own or inline "expression [ascending|descending]" runs between commas.
func (b *Builder) buildOrderBy(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindOrderByClause, ts)

	var run []*sitter.Node
	flush := func() {
		if len(run) > 0 {
			n.AddChild(b.buildOrdering(nil, run).WithRole(syntax.RoleOrdering))
			run = nil
		}
	}

	for _, child := range b.children(ts) {
		switch {
		case b.isToken(child, "orderby"):
			n.AddChild(b.token(child))
		case b.isToken(child, ","):
			flush()
			n.AddChild(b.token(child))
		case child.Type() == "ordering":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleOrdering))
		default:
			run = append(run, child)
		}
	}
	flush()
	return n
}

// buildOrdering converts "expression [ascending|descending]". A nil ts
// takes the location from the children.
func (b *Builder) buildOrdering(ts *sitter.Node, children []*sitter.Node) *syntax.Node {
	kind := syntax.KindAscendingOrdering
	for _, child := range children {
		if b.isToken(child, "descending") {
			kind = syntax.KindDescendingOrdering
		}
	}

	n := syntax.NewNode(kind)
	if ts != nil {
		n.Location = b.location(ts)
	} else if len(children) > 0 {
		n.Location = b.span(children[0], children[len(children)-1])
	}

	valued := false
	for _, child := range children {
		converted := b.buildNode(child)
		if child.IsNamed() && !valued {
			converted.WithRole(syntax.RoleExpression)
			valued = true
		}
		n.AddChild(converted)
	}
	return n
}

// buildGroupClause converts "group expression by key"
func (b *Builder) buildGroupClause(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindGroupClause, ts)
	role := syntax.RoleExpression
	for _, child := range b.children(ts) {
		if !child.IsNamed() {
			if b.text(child) == "by" {
				role = syntax.RoleBy
			}
			n.AddChild(b.token(child))
			continue
		}
		n.AddChild(b.buildNode(child).WithRole(role))
	}
	return n
}

func (b *Builder) buildInvocation(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindInvocationExpression, ts)
	targeted := false
	for _, child := range b.children(ts) {
		converted := b.buildNode(child)
		switch {
		case child.Type() == "argument_list":
			converted.WithRole(syntax.RoleArgumentList)
		case child.IsNamed() && !targeted:
			converted.WithRole(syntax.RoleExpression)
			targeted = true
		}
		n.AddChild(converted)
	}
	return n
}

func (b *Builder) buildArgumentList(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindArgumentList, ts)
	for _, child := range b.children(ts) {
		converted := b.buildNode(child)
		if child.IsNamed() {
			converted.WithRole(syntax.RoleArgument)
		}
		n.AddChild(converted)
	}
	return n
}

// buildArgument converts "[name:] [ref|out|in] expression"
func (b *Builder) buildArgument(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindArgument, ts)
	for _, child := range b.children(ts) {
		converted := b.buildNode(child)
		if child.IsNamed() && child.Type() != "name_colon" && n.Field(syntax.RoleExpression) == nil {
			converted.WithRole(syntax.RoleExpression)
		}
		n.AddChild(converted)
	}
	return n
}

// buildMemberAccess converts "expression.name" and "expression->name"
func (b *Builder) buildMemberAccess(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindSimpleMemberAccessExpression, ts)
	children := b.children(ts)

	last := -1
	for i, child := range children {
		if child.IsNamed() {
			last = i
		}
	}

	targeted := false
	for i, child := range children {
		converted := b.buildNode(child)
		switch {
		case i == last && targeted:
			converted.WithRole(syntax.RoleName)
		case child.IsNamed() && !targeted:
			converted.WithRole(syntax.RoleExpression)
			targeted = true
		}
		n.AddChild(converted)
	}
	return n
}

// buildDeclaration converts "type designation" in declaration expressions
// and patterns, and "var designation" in var patterns. Designated names
// become variable declarators, so out variables and pattern variables are
// matched like declared locals.
func (b *Builder) buildDeclaration(kind syntax.Kind, ts *sitter.Node) *syntax.Node {
	n := b.newNode(kind, ts)
	children := b.children(ts)

	designation := -1
	for i, child := range children {
		if child.IsNamed() {
			designation = i
		}
	}

	typed := kind == syntax.KindVarPattern
	for i, child := range children {
		switch {
		case i == designation:
			n.AddChild(b.buildDesignation(child).WithRole(syntax.RoleVariable))
		case child.IsNamed() && !typed:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleType))
			typed = true
		default:
			n.AddChild(b.buildNode(child))
		}
	}
	return n
}

// buildDesignation converts a name, a discard or a parenthesized list of
// designations
func (b *Builder) buildDesignation(ts *sitter.Node) *syntax.Node {
	switch ts.Type() {
	case "identifier":
		n := b.newNode(syntax.KindVariableDeclarator, ts)
		n.AddChild(b.identifierToken(ts, syntax.RoleIdentifier))
		return n
	case "parenthesized_variable_designation":
		n := b.newNode(syntax.KindParenthesizedVariableDesignation, ts)
		for _, child := range b.children(ts) {
			if child.IsNamed() {
				n.AddChild(b.buildDesignation(child).WithRole(syntax.RoleVariable))
				continue
			}
			n.AddChild(b.token(child))
		}
		return n
	}
	return b.buildNode(ts)
}
