package syntax

// Factory functions build trees with the same shapes the parser produces.
// A node must be attached to at most one parent.

// Keyword creates a keyword token
func Keyword(text string) *Node { return NewToken(KindKeywordToken, text) }

// Punct creates a punctuation or operator token
func Punct(text string) *Node { return NewToken(KindPunctuationToken, text) }

// Identifier creates an identifier token
func Identifier(text string) *Node { return NewToken(KindIdentifierToken, text) }

func build(kind Kind, children ...*Node) *Node {
	return NewNode(kind, children...)
}

func separated(role Role, sep string, items []*Node) []*Node {
	var out []*Node
	for i, item := range items {
		if i > 0 {
			out = append(out, Punct(sep))
		}
		out = append(out, item.WithRole(role))
	}
	return out
}

func optional(role Role, n *Node) *Node {
	if n == nil {
		return nil
	}
	return n.WithRole(role)
}

// ---- names, types and literals ----

// IdentifierName creates a simple name expression
func IdentifierName(name string) *Node {
	return build(KindIdentifierName, Identifier(name).WithRole(RoleIdentifier))
}

// QualifiedName creates left.right
func QualifiedName(left *Node, right string) *Node {
	return build(KindQualifiedName, left.WithRole(RoleLeft), Punct("."), IdentifierName(right).WithRole(RoleRight))
}

// GenericName creates name<args>
func GenericName(name string, args ...*Node) *Node {
	list := build(KindTypeArgumentList, append(append([]*Node{Punct("<")}, separated(RoleArgument, ",", args)...), Punct(">"))...)
	return build(KindGenericName, Identifier(name).WithRole(RoleIdentifier), list)
}

// PredefinedType creates a keyword type such as int or string
func PredefinedType(keyword string) *Node {
	return build(KindPredefinedType, Keyword(keyword))
}

// ArrayType creates elem[]
func ArrayType(elem *Node) *Node {
	rank := build(KindArrayRankSpecifier, Punct("["), build(KindOmittedArraySizeExpression), Punct("]"))
	return build(KindArrayType, elem.WithRole(RoleType), rank)
}

// PointerType creates elem*
func PointerType(elem *Node) *Node {
	return build(KindPointerType, elem.WithRole(RoleType), Punct("*"))
}

// NullableType creates elem?
func NullableType(elem *Node) *Node {
	return build(KindNullableType, elem.WithRole(RoleType), Punct("?"))
}

// NumericLiteral creates a numeric literal expression
func NumericLiteral(text string) *Node {
	return build(KindNumericLiteralExpression, NewToken(KindNumericLiteralToken, text))
}

// StringLiteral creates a string literal expression; text includes the quotes
func StringLiteral(text string) *Node {
	return build(KindStringLiteralExpression, NewToken(KindStringLiteralToken, text))
}

// CharacterLiteral creates a character literal expression; text includes the quotes
func CharacterLiteral(text string) *Node {
	return build(KindCharacterLiteralExpression, NewToken(KindCharacterLiteralToken, text))
}

// True creates the true literal
func True() *Node { return build(KindTrueLiteralExpression, Keyword("true")) }

// False creates the false literal
func False() *Node { return build(KindFalseLiteralExpression, Keyword("false")) }

// Null creates the null literal
func Null() *Node { return build(KindNullLiteralExpression, Keyword("null")) }

// This creates the this expression
func This() *Node { return build(KindThisExpression, Keyword("this")) }

// Base creates the base expression
func Base() *Node { return build(KindBaseExpression, Keyword("base")) }

// TypeOf creates typeof(t)
func TypeOf(t *Node) *Node {
	return build(KindTypeOfExpression, Keyword("typeof"), Punct("("), t.WithRole(RoleType), Punct(")"))
}

// SizeOf creates sizeof(t)
func SizeOf(t *Node) *Node {
	return build(KindSizeOfExpression, Keyword("sizeof"), Punct("("), t.WithRole(RoleType), Punct(")"))
}

// Default creates default(t)
func Default(t *Node) *Node {
	return build(KindDefaultExpression, Keyword("default"), Punct("("), t.WithRole(RoleType), Punct(")"))
}

// ---- expressions ----

// Binary creates left op right
func Binary(op string, left, right *Node) *Node {
	return build(KindBinaryExpression, left.WithRole(RoleLeft), Punct(op).WithRole(RoleOperator), right.WithRole(RoleRight))
}

// Assign creates left op right for an assignment operator
func Assign(op string, left, right *Node) *Node {
	return build(KindAssignmentExpression, left.WithRole(RoleLeft), Punct(op).WithRole(RoleOperator), right.WithRole(RoleRight))
}

// Prefix creates op operand
func Prefix(op string, operand *Node) *Node {
	return build(KindPrefixUnaryExpression, Punct(op).WithRole(RoleOperator), operand.WithRole(RoleExpression))
}

// Postfix creates operand op
func Postfix(op string, operand *Node) *Node {
	return build(KindPostfixUnaryExpression, operand.WithRole(RoleExpression), Punct(op).WithRole(RoleOperator))
}

// Paren creates (e)
func Paren(e *Node) *Node {
	return build(KindParenthesizedExpression, Punct("("), e.WithRole(RoleExpression), Punct(")"))
}

// Conditional creates cond ? whenTrue : whenFalse
func Conditional(cond, whenTrue, whenFalse *Node) *Node {
	return build(KindConditionalExpression, cond.WithRole(RoleCondition), Punct("?"),
		whenTrue.WithRole(RoleLeft), Punct(":"), whenFalse.WithRole(RoleRight))
}

// Argument wraps an expression as an argument
func Argument(e *Node) *Node {
	return build(KindArgument, e.WithRole(RoleExpression))
}

// OutArgument creates out e
func OutArgument(e *Node) *Node {
	return build(KindArgument, Keyword("out"), e.WithRole(RoleExpression))
}

// ArgumentList creates (args)
func ArgumentList(args ...*Node) *Node {
	wrapped := make([]*Node, len(args))
	for i, arg := range args {
		if arg.Kind != KindArgument {
			arg = Argument(arg)
		}
		wrapped[i] = arg
	}
	children := append([]*Node{Punct("(")}, separated(RoleArgument, ",", wrapped)...)
	return build(KindArgumentList, append(children, Punct(")"))...)
}

// Invocation creates target(args)
func Invocation(target *Node, args ...*Node) *Node {
	return build(KindInvocationExpression, target.WithRole(RoleExpression), ArgumentList(args...).WithRole(RoleArgumentList))
}

// MemberAccess creates target.name
func MemberAccess(target *Node, name string) *Node {
	return build(KindSimpleMemberAccessExpression, target.WithRole(RoleExpression), Punct("."), IdentifierName(name).WithRole(RoleName))
}

// ElementAccess creates target[args]
func ElementAccess(target *Node, args ...*Node) *Node {
	wrapped := make([]*Node, len(args))
	for i, arg := range args {
		wrapped[i] = Argument(arg)
	}
	children := append([]*Node{Punct("[")}, separated(RoleArgument, ",", wrapped)...)
	list := build(KindBracketedArgumentList, append(children, Punct("]"))...)
	return build(KindElementAccessExpression, target.WithRole(RoleExpression), list.WithRole(RoleArgumentList))
}

// ObjectCreation creates new t(args)
func ObjectCreation(t *Node, args ...*Node) *Node {
	return build(KindObjectCreationExpression, Keyword("new"), t.WithRole(RoleType), ArgumentList(args...).WithRole(RoleArgumentList))
}

// Cast creates (t)e
func Cast(t, e *Node) *Node {
	return build(KindCastExpression, Punct("("), t.WithRole(RoleType), Punct(")"), e.WithRole(RoleExpression))
}

// DeclarationExpression creates "t name", as in out var x. The name is a
// variable declarator, as the parser builds it.
func DeclarationExpression(t *Node, name string) *Node {
	return build(KindDeclarationExpression, t.WithRole(RoleType), VariableDeclarator(name, nil).WithRole(RoleVariable))
}

// DeclarationPattern creates the pattern "t name", as in o is int k
func DeclarationPattern(t *Node, name string) *Node {
	return build(KindDeclarationPattern, t.WithRole(RoleType), VariableDeclarator(name, nil).WithRole(RoleVariable))
}

// IsPattern creates e is pattern
func IsPattern(e, pattern *Node) *Node {
	return build(KindIsPatternExpression, e.WithRole(RoleExpression), Keyword("is"), pattern.WithRole(RoleValue))
}

// Await creates await e
func Await(e *Node) *Node {
	return build(KindAwaitExpression, Keyword("await"), e.WithRole(RoleExpression))
}

// StackAlloc creates stackalloc t[size]
func StackAlloc(t, size *Node) *Node {
	return build(KindStackAllocArrayCreationExpression, Keyword("stackalloc"), t.WithRole(RoleType),
		Punct("["), size.WithRole(RoleExpression), Punct("]"))
}

// ---- lambdas ----

// Parameter creates a parameter; t may be nil for implicitly typed parameters
func Parameter(t *Node, name string) *Node {
	return build(KindParameter, optional(RoleType, t), Identifier(name).WithRole(RoleIdentifier))
}

// ParameterList creates (params)
func ParameterList(params ...*Node) *Node {
	children := append([]*Node{Punct("(")}, separated(RoleParameter, ",", params)...)
	return build(KindParameterList, append(children, Punct(")"))...)
}

func asyncToken(async bool) *Node {
	if !async {
		return nil
	}
	return Keyword("async").WithRole(RoleAsync)
}

// SimpleLambda creates [async] p => body
func SimpleLambda(async bool, param string, body *Node) *Node {
	return build(KindSimpleLambdaExpression, asyncToken(async), Parameter(nil, param).WithRole(RoleParameter),
		Punct("=>"), body.WithRole(RoleBody))
}

// ParenthesizedLambda creates [async] (params) => body
func ParenthesizedLambda(async bool, params []*Node, body *Node) *Node {
	return build(KindParenthesizedLambdaExpression, asyncToken(async), ParameterList(params...).WithRole(RoleParameterList),
		Punct("=>"), body.WithRole(RoleBody))
}

// AnonymousMethod creates [async] delegate [(params)] block; a nil params
// slice omits the parameter list
func AnonymousMethod(async bool, params []*Node, block *Node) *Node {
	var list *Node
	if params != nil {
		list = ParameterList(params...).WithRole(RoleParameterList)
	}
	return build(KindAnonymousMethodExpression, asyncToken(async), Keyword("delegate"), list, block.WithRole(RoleBody))
}

// ---- queries ----

// Query creates a query expression from its first from clause and body
func Query(from, body *Node) *Node {
	return build(KindQueryExpression, from.WithRole(RoleFrom), body.WithRole(RoleBody))
}

// QueryBody creates the body of a query; continuation may be nil
func QueryBody(clauses []*Node, selectOrGroup, continuation *Node) *Node {
	body := build(KindQueryBody)
	for _, clause := range clauses {
		body.AddChild(clause.WithRole(RoleClause))
	}
	body.AddChild(selectOrGroup.WithRole(RoleSelectOrGroup))
	body.AddChild(optional(RoleContinuation, continuation))
	return body
}

// From creates from [t] id in e
func From(t *Node, id string, e *Node) *Node {
	return build(KindFromClause, Keyword("from"), optional(RoleType, t), Identifier(id).WithRole(RoleIdentifier),
		Keyword("in"), e.WithRole(RoleExpression))
}

// Let creates let id = e
func Let(id string, e *Node) *Node {
	return build(KindLetClause, Keyword("let"), Identifier(id).WithRole(RoleIdentifier), Punct("="), e.WithRole(RoleExpression))
}

// Where creates where cond
func Where(cond *Node) *Node {
	return build(KindWhereClause, Keyword("where"), cond.WithRole(RoleCondition))
}

// Join creates join id in e on left equals right
func Join(id string, e, left, right *Node) *Node {
	return build(KindJoinClause, Keyword("join"), Identifier(id).WithRole(RoleIdentifier), Keyword("in"),
		e.WithRole(RoleExpression), Keyword("on"), left.WithRole(RoleLeft), Keyword("equals"), right.WithRole(RoleRight))
}

// OrderBy creates orderby orderings
func OrderBy(orderings ...*Node) *Node {
	return build(KindOrderByClause, append([]*Node{Keyword("orderby")}, separated(RoleOrdering, ",", orderings)...)...)
}

// Ascending creates an ascending ordering
func Ascending(e *Node) *Node {
	return build(KindAscendingOrdering, e.WithRole(RoleExpression))
}

// Descending creates e descending
func Descending(e *Node) *Node {
	return build(KindDescendingOrdering, e.WithRole(RoleExpression), Keyword("descending"))
}

// Select creates select e
func Select(e *Node) *Node {
	return build(KindSelectClause, Keyword("select"), e.WithRole(RoleExpression))
}

// Group creates group e by key
func Group(e, key *Node) *Node {
	return build(KindGroupClause, Keyword("group"), e.WithRole(RoleExpression), Keyword("by"), key.WithRole(RoleBy))
}

// QueryContinuation creates into id body
func QueryContinuation(id string, body *Node) *Node {
	return build(KindQueryContinuation, Keyword("into"), Identifier(id).WithRole(RoleIdentifier), body.WithRole(RoleBody))
}

// ---- statements ----

// Block creates { statements }
func Block(statements ...*Node) *Node {
	b := build(KindBlock, Punct("{"))
	for _, s := range statements {
		b.AddChild(s.WithRole(RoleStatement))
	}
	b.AddChild(Punct("}"))
	return b
}

// VariableDeclarator creates name [= init]
func VariableDeclarator(name string, init *Node) *Node {
	d := build(KindVariableDeclarator, Identifier(name).WithRole(RoleIdentifier))
	if init != nil {
		d.AddChild(build(KindEqualsValueClause, Punct("="), init.WithRole(RoleValue)).WithRole(RoleInitializer))
	}
	return d
}

// VariableDeclaration creates t declarators
func VariableDeclaration(t *Node, declarators ...*Node) *Node {
	return build(KindVariableDeclaration, append([]*Node{t.WithRole(RoleType)}, separated(RoleVariable, ",", declarators)...)...)
}

// LocalDeclaration creates decl;
func LocalDeclaration(decl *Node) *Node {
	return build(KindLocalDeclarationStatement, decl.WithRole(RoleDeclaration), Punct(";"))
}

// Local is a shorthand for a single-variable local declaration statement
func Local(t *Node, name string, init *Node) *Node {
	return LocalDeclaration(VariableDeclaration(t, VariableDeclarator(name, init)))
}

// ExpressionStatement creates e;
func ExpressionStatement(e *Node) *Node {
	return build(KindExpressionStatement, e.WithRole(RoleExpression), Punct(";"))
}

// Call is a shorthand for the statement name(args);
func Call(name string, args ...*Node) *Node {
	return ExpressionStatement(Invocation(IdentifierName(name), args...))
}

// Return creates return [e];
func Return(e *Node) *Node {
	return build(KindReturnStatement, Keyword("return"), optional(RoleExpression, e), Punct(";"))
}

// Throw creates throw [e];
func Throw(e *Node) *Node {
	return build(KindThrowStatement, Keyword("throw"), optional(RoleExpression, e), Punct(";"))
}

// YieldReturn creates yield return e;
func YieldReturn(e *Node) *Node {
	return build(KindYieldReturnStatement, Keyword("yield"), Keyword("return"), e.WithRole(RoleExpression), Punct(";"))
}

// YieldBreak creates yield break;
func YieldBreak() *Node {
	return build(KindYieldBreakStatement, Keyword("yield"), Keyword("break"), Punct(";"))
}

// Break creates break;
func Break() *Node { return build(KindBreakStatement, Keyword("break"), Punct(";")) }

// Continue creates continue;
func Continue() *Node { return build(KindContinueStatement, Keyword("continue"), Punct(";")) }

// Empty creates ;
func Empty() *Node { return build(KindEmptyStatement, Punct(";")) }

// Goto creates goto label;
func Goto(label string) *Node {
	return build(KindGotoStatement, Keyword("goto"), IdentifierName(label).WithRole(RoleExpression), Punct(";"))
}

// GotoCase creates goto case e;
func GotoCase(e *Node) *Node {
	return build(KindGotoCaseStatement, Keyword("goto"), Keyword("case"), e.WithRole(RoleExpression), Punct(";"))
}

// GotoDefault creates goto default;
func GotoDefault() *Node {
	return build(KindGotoDefaultStatement, Keyword("goto"), Keyword("default"), Punct(";"))
}

// Labeled creates name: statement
func Labeled(name string, statement *Node) *Node {
	return build(KindLabeledStatement, Identifier(name).WithRole(RoleIdentifier), Punct(":"), statement.WithRole(RoleStatement))
}

// If creates if (cond) statement [else]; elseClause may be nil
func If(cond, statement, elseClause *Node) *Node {
	return build(KindIfStatement, Keyword("if"), Punct("("), cond.WithRole(RoleCondition), Punct(")"),
		statement.WithRole(RoleStatement), optional(RoleElse, elseClause))
}

// Else creates else statement
func Else(statement *Node) *Node {
	return build(KindElseClause, Keyword("else"), statement.WithRole(RoleStatement))
}

// While creates while (cond) statement
func While(cond, statement *Node) *Node {
	return build(KindWhileStatement, Keyword("while"), Punct("("), cond.WithRole(RoleCondition), Punct(")"),
		statement.WithRole(RoleStatement))
}

// Do creates do statement while (cond);
func Do(statement, cond *Node) *Node {
	return build(KindDoStatement, Keyword("do"), statement.WithRole(RoleStatement), Keyword("while"),
		Punct("("), cond.WithRole(RoleCondition), Punct(")"), Punct(";"))
}

// For creates for (decl | inits; cond; incs) statement. Any part may be nil or empty.
func For(decl *Node, inits []*Node, cond *Node, incs []*Node, statement *Node) *Node {
	f := build(KindForStatement, Keyword("for"), Punct("("))
	if decl != nil {
		f.AddChild(decl.WithRole(RoleDeclaration))
	} else {
		for _, n := range separated(RoleInitializer, ",", inits) {
			f.AddChild(n)
		}
	}
	f.AddChild(Punct(";"))
	f.AddChild(optional(RoleCondition, cond))
	f.AddChild(Punct(";"))
	for _, n := range separated(RoleIncrementor, ",", incs) {
		f.AddChild(n)
	}
	f.AddChild(Punct(")"))
	f.AddChild(statement.WithRole(RoleStatement))
	return f
}

// ForEach creates foreach (t id in e) statement
func ForEach(t *Node, id string, e, statement *Node) *Node {
	return build(KindForEachStatement, Keyword("foreach"), Punct("("), t.WithRole(RoleType),
		Identifier(id).WithRole(RoleIdentifier), Keyword("in"), e.WithRole(RoleExpression), Punct(")"),
		statement.WithRole(RoleStatement))
}

// Using creates using (decl | expr) statement; exactly one of decl and expr is expected
func Using(decl, expr, statement *Node) *Node {
	return build(KindUsingStatement, Keyword("using"), Punct("("), optional(RoleDeclaration, decl),
		optional(RoleExpression, expr), Punct(")"), statement.WithRole(RoleStatement))
}

// Fixed creates fixed (decl) statement
func Fixed(decl, statement *Node) *Node {
	return build(KindFixedStatement, Keyword("fixed"), Punct("("), decl.WithRole(RoleDeclaration), Punct(")"),
		statement.WithRole(RoleStatement))
}

// Lock creates lock (expr) statement
func Lock(expr, statement *Node) *Node {
	return build(KindLockStatement, Keyword("lock"), Punct("("), expr.WithRole(RoleExpression), Punct(")"),
		statement.WithRole(RoleStatement))
}

// Checked creates checked block
func Checked(block *Node) *Node {
	return build(KindCheckedStatement, Keyword("checked"), block.WithRole(RoleBlock))
}

// Unchecked creates unchecked block
func Unchecked(block *Node) *Node {
	return build(KindUncheckedStatement, Keyword("unchecked"), block.WithRole(RoleBlock))
}

// Unsafe creates unsafe block
func Unsafe(block *Node) *Node {
	return build(KindUnsafeStatement, Keyword("unsafe"), block.WithRole(RoleBlock))
}

// Try creates try block catches [finally]
func Try(block *Node, catches []*Node, finally *Node) *Node {
	t := build(KindTryStatement, Keyword("try"), block.WithRole(RoleBlock))
	for _, c := range catches {
		t.AddChild(c.WithRole(RoleCatch))
	}
	t.AddChild(optional(RoleFinally, finally))
	return t
}

// Catch creates catch [decl] [filter] block
func Catch(decl, filter, block *Node) *Node {
	return build(KindCatchClause, Keyword("catch"), optional(RoleDeclaration, decl), optional(RoleFilter, filter),
		block.WithRole(RoleBlock))
}

// CatchDeclaration creates (t [id]); id may be empty
func CatchDeclaration(t *Node, id string) *Node {
	d := build(KindCatchDeclaration, Punct("("), t.WithRole(RoleType))
	if id != "" {
		d.AddChild(Identifier(id).WithRole(RoleIdentifier))
	}
	d.AddChild(Punct(")"))
	return d
}

// CatchFilter creates when (cond)
func CatchFilter(cond *Node) *Node {
	return build(KindCatchFilterClause, Keyword("when"), Punct("("), cond.WithRole(RoleCondition), Punct(")"))
}

// Finally creates finally block
func Finally(block *Node) *Node {
	return build(KindFinallyClause, Keyword("finally"), block.WithRole(RoleBlock))
}

// Switch creates switch (e) { sections }
func Switch(e *Node, sections ...*Node) *Node {
	s := build(KindSwitchStatement, Keyword("switch"), Punct("("), e.WithRole(RoleExpression), Punct(")"), Punct("{"))
	for _, section := range sections {
		s.AddChild(section.WithRole(RoleStatement))
	}
	s.AddChild(Punct("}"))
	return s
}

// SwitchSection creates labels followed by statements
func SwitchSection(labels []*Node, statements ...*Node) *Node {
	s := build(KindSwitchSection)
	for _, l := range labels {
		s.AddChild(l.WithRole(RoleLabel))
	}
	for _, st := range statements {
		s.AddChild(st.WithRole(RoleStatement))
	}
	return s
}

// CaseLabel creates case e:
func CaseLabel(e *Node) *Node {
	return build(KindCaseSwitchLabel, Keyword("case"), e.WithRole(RoleValue), Punct(":"))
}

// DefaultLabel creates default:
func DefaultLabel() *Node {
	return build(KindDefaultSwitchLabel, Keyword("default"), Punct(":"))
}

// ---- members ----

// Method creates a method declaration "t name(params) body"
func Method(returnType *Node, name string, params []*Node, body *Node) *Node {
	return build(KindMethodDeclaration, returnType.WithRole(RoleType), Identifier(name).WithRole(RoleIdentifier),
		ParameterList(params...).WithRole(RoleParameterList), body.WithRole(RoleBody))
}

// Class creates class name { members }
func Class(name string, members ...*Node) *Node {
	c := build(KindClassDeclaration, Keyword("class"), Identifier(name).WithRole(RoleIdentifier), Punct("{"))
	for _, m := range members {
		c.AddChild(m.WithRole(RoleMember))
	}
	c.AddChild(Punct("}"))
	return c
}

// CompilationUnit creates the root of a file
func CompilationUnit(members ...*Node) *Node {
	u := build(KindCompilationUnit)
	for _, m := range members {
		u.AddChild(m.WithRole(RoleMember))
	}
	return u
}
