package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

func (b *Builder) buildBlock(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindBlock, ts)
	for _, child := range b.children(ts) {
		converted := b.buildNode(child)
		if child.IsNamed() {
			converted.WithRole(syntax.RoleStatement)
		}
		n.AddChild(converted)
	}
	return n
}

func (b *Builder) buildLocalDeclaration(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindLocalDeclarationStatement, ts)
	for _, child := range b.children(ts) {
		converted := b.buildNode(child)
		if child.Type() == "variable_declaration" {
			converted.WithRole(syntax.RoleDeclaration)
		}
		n.AddChild(converted)
	}
	return n
}

// buildVariableDeclaration converts "type declarator, declarator"
func (b *Builder) buildVariableDeclaration(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindVariableDeclaration, ts)
	typed := false
	for _, child := range b.children(ts) {
		converted := b.buildNode(child)
		switch {
		case child.Type() == "variable_declarator":
			converted.WithRole(syntax.RoleVariable)
		case child.IsNamed() && !typed:
			converted.WithRole(syntax.RoleType)
			typed = true
		}
		n.AddChild(converted)
	}
	return n
}

// buildVariableDeclarator converts "name [= value]". Older grammars wrap
// the value in an equals_value_clause, newer ones inline it.
func (b *Builder) buildVariableDeclarator(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindVariableDeclarator, ts)
	children := b.children(ts)
	named := false
	for i := 0; i < len(children); i++ {
		child := children[i]
		switch {
		case child.Type() == "identifier" && !named:
			n.AddChild(b.identifierToken(child, syntax.RoleIdentifier))
			named = true
		case child.Type() == "equals_value_clause":
			n.AddChild(b.buildEqualsValueClause(child).WithRole(syntax.RoleInitializer))
		case b.isToken(child, "=") && i+1 < len(children):
			clause := syntax.NewNode(syntax.KindEqualsValueClause)
			clause.Location = b.span(child, children[i+1])
			clause.AddChild(b.token(child))
			clause.AddChild(b.buildNode(children[i+1]).WithRole(syntax.RoleValue))
			n.AddChild(clause.WithRole(syntax.RoleInitializer))
			i++
		default:
			n.AddChild(b.buildNode(child))
		}
	}
	return n
}

func (b *Builder) buildEqualsValueClause(ts *sitter.Node) *syntax.Node {
	return b.buildWithRoles(syntax.KindEqualsValueClause, ts, syntax.RoleValue)
}

func (b *Builder) buildYield(ts *sitter.Node) *syntax.Node {
	for _, child := range b.children(ts) {
		if b.isToken(child, "break") {
			return b.buildGeneric(syntax.KindYieldBreakStatement, ts)
		}
	}
	return b.buildWithRoles(syntax.KindYieldReturnStatement, ts, syntax.RoleExpression)
}

func (b *Builder) buildGoto(ts *sitter.Node) *syntax.Node {
	kind := syntax.KindGotoStatement
	for _, child := range b.children(ts) {
		switch {
		case b.isToken(child, "case"):
			kind = syntax.KindGotoCaseStatement
		case b.isToken(child, "default"):
			kind = syntax.KindGotoDefaultStatement
		}
	}
	return b.buildWithRoles(kind, ts, syntax.RoleExpression)
}

// buildLabeled converts "label: statement"
func (b *Builder) buildLabeled(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindLabeledStatement, ts)
	labeled := false
	for _, child := range b.children(ts) {
		switch {
		case child.Type() == "identifier" && !labeled:
			n.AddChild(b.identifierToken(child, syntax.RoleIdentifier))
			labeled = true
		case child.IsNamed():
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleStatement))
		default:
			n.AddChild(b.token(child))
		}
	}
	return n
}

// buildIf converts "if (cond) statement [else statement]". The grammar has
// no else clause node, so one is made from the else keyword and the
// statement after it.
func (b *Builder) buildIf(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindIfStatement, ts)
	children := b.children(ts)
	closed := false
	for i := 0; i < len(children); i++ {
		child := children[i]
		switch {
		case b.isToken(child, "else"):
			clause := syntax.NewNode(syntax.KindElseClause)
			clause.AddChild(b.token(child))
			if i+1 < len(children) {
				clause.Location = b.span(child, children[i+1])
				clause.AddChild(b.buildNode(children[i+1]).WithRole(syntax.RoleStatement))
				i++
			} else {
				clause.Location = b.location(child)
			}
			n.AddChild(clause.WithRole(syntax.RoleElse))
		case child.Type() == "else_clause":
			n.AddChild(b.buildWithRoles(syntax.KindElseClause, child, syntax.RoleStatement).WithRole(syntax.RoleElse))
		case !child.IsNamed():
			if b.text(child) == ")" {
				closed = true
			}
			n.AddChild(b.token(child))
		case closed:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleStatement))
		default:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleCondition))
		}
	}
	return n
}

// buildHeaderStatement converts "keyword (header) statement"
func (b *Builder) buildHeaderStatement(kind syntax.Kind, ts *sitter.Node, headerRole syntax.Role) *syntax.Node {
	n := b.newNode(kind, ts)
	closed := false
	for _, child := range b.children(ts) {
		if !child.IsNamed() {
			if b.text(child) == ")" {
				closed = true
			}
			n.AddChild(b.token(child))
			continue
		}
		role := headerRole
		if closed {
			role = syntax.RoleStatement
		}
		n.AddChild(b.buildNode(child).WithRole(role))
	}
	return n
}

// buildUsing converts "using (declaration | expression) statement"
func (b *Builder) buildUsing(ts *sitter.Node) *syntax.Node {
	n := b.buildHeaderStatement(syntax.KindUsingStatement, ts, syntax.RoleExpression)
	for _, child := range n.ChildNodes() {
		if child.Role == syntax.RoleExpression && child.Kind == syntax.KindVariableDeclaration {
			child.WithRole(syntax.RoleDeclaration)
		}
	}
	return n
}

// buildDo converts "do statement while (cond);"
func (b *Builder) buildDo(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindDoStatement, ts)
	seenWhile := false
	for _, child := range b.children(ts) {
		if !child.IsNamed() {
			if b.text(child) == "while" {
				seenWhile = true
			}
			n.AddChild(b.token(child))
			continue
		}
		role := syntax.RoleStatement
		if seenWhile {
			role = syntax.RoleCondition
		}
		n.AddChild(b.buildNode(child).WithRole(role))
	}
	return n
}

// buildFor converts "for (declaration | initializers; condition;
// incrementors) statement", where every part may be missing
func (b *Builder) buildFor(ts *sitter.Node) *syntax.Node {
	const (
		beforeHeader = iota
		initializer
		condition
		incrementor
		body
	)

	n := b.newNode(syntax.KindForStatement, ts)
	stage := beforeHeader
	for _, child := range b.children(ts) {
		if !child.IsNamed() {
			switch text := b.text(child); {
			case text == "(" && stage == beforeHeader:
				stage = initializer
			case text == ";" && (stage == initializer || stage == condition):
				stage++
			case text == ")" && stage == incrementor:
				stage = body
			}
			n.AddChild(b.token(child))
			continue
		}

		converted := b.buildNode(child)
		switch stage {
		case initializer:
			if converted.Kind == syntax.KindVariableDeclaration {
				converted.WithRole(syntax.RoleDeclaration)
			} else {
				converted.WithRole(syntax.RoleInitializer)
			}
		case condition:
			converted.WithRole(syntax.RoleCondition)
		case incrementor:
			converted.WithRole(syntax.RoleIncrementor)
		case body:
			converted.WithRole(syntax.RoleStatement)
		}
		n.AddChild(converted)
	}
	return n
}

// buildForEach converts "foreach (type identifier in expression) statement"
func (b *Builder) buildForEach(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindForEachStatement, ts)
	children := b.children(ts)

	var header []*sitter.Node
	for _, child := range children {
		if b.isToken(child, "in") {
			break
		}
		if child.IsNamed() {
			header = append(header, child)
		}
	}

	seenIn, closed := false, false
	for _, child := range children {
		if !child.IsNamed() {
			switch b.text(child) {
			case "in":
				seenIn = true
			case ")":
				if seenIn {
					closed = true
				}
			}
			n.AddChild(b.token(child))
			continue
		}

		switch {
		case closed:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleStatement))
		case seenIn:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleExpression))
		case len(header) >= 2 && child == header[len(header)-1] && child.Type() == "identifier":
			n.AddChild(b.identifierToken(child, syntax.RoleIdentifier))
		case len(header) >= 2 && child == header[len(header)-2]:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleType))
		case len(header) == 1:
			// deconstructing foreach: the declaration holds the variables
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleDeclaration))
		default:
			n.AddChild(b.buildNode(child))
		}
	}
	return n
}

func (b *Builder) buildChecked(ts *sitter.Node) *syntax.Node {
	kind := syntax.KindCheckedStatement
	for _, child := range b.children(ts) {
		if b.isToken(child, "unchecked") {
			kind = syntax.KindUncheckedStatement
		}
	}
	return b.buildWithRoles(kind, ts, syntax.RoleBlock)
}

func (b *Builder) buildTry(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindTryStatement, ts)
	for _, child := range b.children(ts) {
		converted := b.buildNode(child)
		switch child.Type() {
		case "block":
			converted.WithRole(syntax.RoleBlock)
		case "catch_clause":
			converted.WithRole(syntax.RoleCatch)
		case "finally_clause":
			converted.WithRole(syntax.RoleFinally)
		}
		n.AddChild(converted)
	}
	return n
}

func (b *Builder) buildCatch(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindCatchClause, ts)
	for _, child := range b.children(ts) {
		converted := b.buildNode(child)
		switch child.Type() {
		case "catch_declaration":
			converted.WithRole(syntax.RoleDeclaration)
		case "catch_filter_clause":
			converted.WithRole(syntax.RoleFilter)
		case "block":
			converted.WithRole(syntax.RoleBlock)
		}
		n.AddChild(converted)
	}
	return n
}

// buildCatchDeclaration converts "(type [identifier])"
func (b *Builder) buildCatchDeclaration(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindCatchDeclaration, ts)
	typed := false
	for _, child := range b.children(ts) {
		switch {
		case !child.IsNamed():
			n.AddChild(b.token(child))
		case !typed:
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleType))
			typed = true
		case child.Type() == "identifier":
			n.AddChild(b.identifierToken(child, syntax.RoleIdentifier))
		default:
			n.AddChild(b.buildNode(child))
		}
	}
	return n
}

func (b *Builder) buildCatchFilter(ts *sitter.Node) *syntax.Node {
	return b.buildWithRoles(syntax.KindCatchFilterClause, ts, syntax.RoleCondition)
}

// buildSwitch converts "switch (expression) { sections }". The sections are
// lifted out of the grammar's switch body into the statement.
func (b *Builder) buildSwitch(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindSwitchStatement, ts)
	for _, child := range b.children(ts) {
		switch {
		case child.Type() == "switch_body":
			for _, part := range b.children(child) {
				converted := b.buildNode(part)
				if part.Type() == "switch_section" {
					converted.WithRole(syntax.RoleStatement)
				}
				n.AddChild(converted)
			}
		case child.IsNamed():
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleExpression))
		default:
			n.AddChild(b.token(child))
		}
	}
	return n
}

// buildSwitchSection converts "labels statements". Labels are either nodes
// of their own or, in newer grammars, inline "case value:" sequences.
func (b *Builder) buildSwitchSection(ts *sitter.Node) *syntax.Node {
	n := b.newNode(syntax.KindSwitchSection, ts)
	children := b.children(ts)

	for i := 0; i < len(children); i++ {
		child := children[i]
		switch {
		case child.Type() == "case_switch_label" || child.Type() == "case_pattern_switch_label" ||
			child.Type() == "default_switch_label":
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleLabel))

		case b.isToken(child, "case") || b.isToken(child, "default"):
			end := i
			for end < len(children) && !b.isToken(children[end], ":") {
				end++
			}
			if end == len(children) {
				end--
			}
			n.AddChild(b.buildInlineLabel(children[i : end+1]).WithRole(syntax.RoleLabel))
			i = end

		case child.IsNamed():
			n.AddChild(b.buildNode(child).WithRole(syntax.RoleStatement))

		default:
			n.AddChild(b.token(child))
		}
	}
	return n
}

func (b *Builder) buildInlineLabel(parts []*sitter.Node) *syntax.Node {
	kind := syntax.KindDefaultSwitchLabel
	if b.isToken(parts[0], "case") {
		kind = syntax.KindCaseSwitchLabel
		for _, part := range parts[1:] {
			if part.Type() == "when_clause" || (part.IsNamed() && isPattern(part.Type())) {
				kind = syntax.KindCasePatternSwitchLabel
			}
		}
	}

	label := syntax.NewNode(kind)
	label.Location = b.span(parts[0], parts[len(parts)-1])
	valued := false
	for _, part := range parts {
		converted := b.buildNode(part)
		if part.IsNamed() && !valued {
			converted.WithRole(syntax.RoleValue)
			valued = true
		}
		label.AddChild(converted)
	}
	return label
}

func isPattern(nodeType string) bool {
	switch nodeType {
	case "declaration_pattern", "recursive_pattern", "var_pattern", "discard",
		"relational_pattern", "and_pattern", "or_pattern", "negated_pattern",
		"type_pattern", "list_pattern", "parenthesized_pattern":
		return true
	}
	return false
}
