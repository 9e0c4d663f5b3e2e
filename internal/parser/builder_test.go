package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/eacdiff/internal/comparer"
	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

func parseSyntax(t *testing.T, source string) *syntax.Node {
	t.Helper()
	root, err := New().ParseSyntax(context.Background(), []byte(source), "Test.cs")
	require.NoError(t, err)
	require.NotNil(t, root)
	return root
}

// methodBody parses statements wrapped in a method of a class
func methodBody(t *testing.T, statements string) *syntax.Node {
	t.Helper()
	root := parseSyntax(t, "class C { void M() { "+statements+" } }")
	members := Members(root)
	require.Len(t, members, 1)
	return members[0].Body
}

func first(root *syntax.Node, kind syntax.Kind) *syntax.Node {
	it := root.DescendantNodes(nil)
	for node, ok := it.Next(); ok; node, ok = it.Next() {
		if node.Kind == kind {
			return node
		}
	}
	return nil
}

func all(root *syntax.Node, pred func(*syntax.Node) bool) []*syntax.Node {
	var nodes []*syntax.Node
	it := root.DescendantNodes(nil)
	for node, ok := it.Next(); ok; node, ok = it.Next() {
		if pred(node) {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func TestBuilder_CompilationUnit(t *testing.T) {
	root := parseSyntax(t, programSource)
	assert.Equal(t, syntax.KindCompilationUnit, root.Kind)
	assert.Nil(t, root.Parent)

	namespace := first(root, syntax.KindNamespaceDeclaration)
	require.NotNil(t, namespace)
	assert.Equal(t, "App", namespace.Field(syntax.RoleName).String())

	class := first(namespace, syntax.KindClassDeclaration)
	require.NotNil(t, class)
	assert.Equal(t, "Program", class.Field(syntax.RoleIdentifier).Text)

	method := first(class, syntax.KindMethodDeclaration)
	require.NotNil(t, method)
	assert.Equal(t, syntax.RoleMember, method.Role)
	assert.Equal(t, "Sum", method.Field(syntax.RoleIdentifier).Text)
	assert.Equal(t, "int", method.Field(syntax.RoleType).String())
	assert.Equal(t, syntax.KindBlock, method.Field(syntax.RoleBody).Kind)
	assert.Equal(t, "Test.cs", method.Location.File)
	assert.Equal(t, 7, method.Location.StartLine)
}

func TestBuilder_Block(t *testing.T) {
	body := methodBody(t, "int total = 0; total++; return total;")

	statements := body.Fields(syntax.RoleStatement)
	require.Len(t, statements, 3)
	assert.Equal(t, syntax.KindLocalDeclarationStatement, statements[0].Kind)
	assert.Equal(t, syntax.KindExpressionStatement, statements[1].Kind)
	assert.Equal(t, syntax.KindReturnStatement, statements[2].Kind)

	assert.Equal(t, "{", body.Children[0].Text)
	assert.Equal(t, "}", body.Children[len(body.Children)-1].Text)
}

func TestBuilder_VariableDeclarator(t *testing.T) {
	body := methodBody(t, "int total = 0, count;")

	decl := body.Fields(syntax.RoleStatement)[0].Field(syntax.RoleDeclaration)
	require.NotNil(t, decl)
	assert.Equal(t, syntax.KindVariableDeclaration, decl.Kind)
	assert.Equal(t, "int", decl.Field(syntax.RoleType).String())

	variables := decl.Fields(syntax.RoleVariable)
	require.Len(t, variables, 2)
	assert.Equal(t, "total", variables[0].Field(syntax.RoleIdentifier).Text)

	init := variables[0].Field(syntax.RoleInitializer)
	require.NotNil(t, init)
	assert.Equal(t, syntax.KindEqualsValueClause, init.Kind)
	assert.Equal(t, syntax.KindNumericLiteralExpression, init.Field(syntax.RoleValue).Kind)
	assert.Nil(t, variables[1].Field(syntax.RoleInitializer))
}

func TestBuilder_ForStatement(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		declared   bool
		inits      int
		condition  bool
		increments int
	}{
		{"declaration", "for (int i = 0; i < n; i++) { }", true, 0, true, 1},
		{"initializers", "for (i = 0, j = 1; ; i++, j++) { }", false, 2, false, 2},
		{"empty header", "for (;;) { }", false, 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := methodBody(t, tt.source)
			loop := body.Fields(syntax.RoleStatement)[0]
			require.Equal(t, syntax.KindForStatement, loop.Kind)

			assert.Equal(t, tt.declared, loop.Field(syntax.RoleDeclaration) != nil)
			assert.Len(t, loop.Fields(syntax.RoleInitializer), tt.inits)
			assert.Equal(t, tt.condition, loop.Field(syntax.RoleCondition) != nil)
			assert.Len(t, loop.Fields(syntax.RoleIncrementor), tt.increments)
			assert.Equal(t, syntax.KindBlock, loop.Field(syntax.RoleStatement).Kind)
		})
	}
}

func TestBuilder_ForEachStatement(t *testing.T) {
	body := methodBody(t, "foreach (var item in items) Use(item);")
	loop := body.Fields(syntax.RoleStatement)[0]
	require.Equal(t, syntax.KindForEachStatement, loop.Kind)

	assert.Equal(t, "var", loop.Field(syntax.RoleType).String())
	assert.Equal(t, "item", loop.Field(syntax.RoleIdentifier).Text)
	assert.Equal(t, "items", loop.Field(syntax.RoleExpression).String())
	assert.Equal(t, syntax.KindExpressionStatement, loop.Field(syntax.RoleStatement).Kind)
}

func TestBuilder_IfElse(t *testing.T) {
	body := methodBody(t, "if (a) { A(); } else if (b) B(); else C();")
	outer := body.Fields(syntax.RoleStatement)[0]
	require.Equal(t, syntax.KindIfStatement, outer.Kind)
	assert.Equal(t, "a", outer.Field(syntax.RoleCondition).String())
	assert.Equal(t, syntax.KindBlock, outer.Field(syntax.RoleStatement).Kind)

	elseClause := outer.Field(syntax.RoleElse)
	require.NotNil(t, elseClause)
	assert.Equal(t, syntax.KindElseClause, elseClause.Kind)

	inner := elseClause.Field(syntax.RoleStatement)
	require.Equal(t, syntax.KindIfStatement, inner.Kind)
	require.NotNil(t, inner.Field(syntax.RoleElse))
	assert.Equal(t, "C ( ) ;", inner.Field(syntax.RoleElse).Field(syntax.RoleStatement).String())
}

func TestBuilder_WhileAndDo(t *testing.T) {
	body := methodBody(t, "while (x) x = F(); do { G(); } while (y);")
	statements := body.Fields(syntax.RoleStatement)
	require.Len(t, statements, 2)

	assert.Equal(t, syntax.KindWhileStatement, statements[0].Kind)
	assert.Equal(t, "x", statements[0].Field(syntax.RoleCondition).String())
	assert.Equal(t, syntax.KindExpressionStatement, statements[0].Field(syntax.RoleStatement).Kind)

	assert.Equal(t, syntax.KindDoStatement, statements[1].Kind)
	assert.Equal(t, syntax.KindBlock, statements[1].Field(syntax.RoleStatement).Kind)
	assert.Equal(t, "y", statements[1].Field(syntax.RoleCondition).String())
}

func TestBuilder_Switch(t *testing.T) {
	body := methodBody(t, "switch (x) { case 1: case 2: A(); break; default: return; }")
	statement := body.Fields(syntax.RoleStatement)[0]
	require.Equal(t, syntax.KindSwitchStatement, statement.Kind)
	assert.Contains(t, statement.Field(syntax.RoleExpression).String(), "x")

	sections := statement.Fields(syntax.RoleStatement)
	require.Len(t, sections, 2)
	for _, section := range sections {
		assert.Equal(t, syntax.KindSwitchSection, section.Kind)
	}

	labels := sections[0].Fields(syntax.RoleLabel)
	require.Len(t, labels, 2)
	assert.Contains(t, []syntax.Kind{syntax.KindCaseSwitchLabel, syntax.KindCasePatternSwitchLabel}, labels[0].Kind)
	assert.Equal(t, "1", labels[0].Field(syntax.RoleValue).String())
	assert.Len(t, sections[0].Fields(syntax.RoleStatement), 2)

	require.Len(t, sections[1].Fields(syntax.RoleLabel), 1)
	assert.Equal(t, syntax.KindDefaultSwitchLabel, sections[1].Field(syntax.RoleLabel).Kind)
}

func TestBuilder_TryCatchFinally(t *testing.T) {
	body := methodBody(t, "try { A(); } catch (IOException e) when (e.Retry) { B(); } catch { } finally { C(); }")
	statement := body.Fields(syntax.RoleStatement)[0]
	require.Equal(t, syntax.KindTryStatement, statement.Kind)
	assert.Equal(t, syntax.KindBlock, statement.Field(syntax.RoleBlock).Kind)

	catches := statement.Fields(syntax.RoleCatch)
	require.Len(t, catches, 2)

	decl := catches[0].Field(syntax.RoleDeclaration)
	require.NotNil(t, decl)
	assert.Equal(t, syntax.KindCatchDeclaration, decl.Kind)
	assert.Equal(t, "IOException", decl.Field(syntax.RoleType).String())
	assert.Equal(t, "e", decl.Field(syntax.RoleIdentifier).Text)
	assert.Equal(t, syntax.KindCatchFilterClause, catches[0].Field(syntax.RoleFilter).Kind)
	assert.Nil(t, catches[1].Field(syntax.RoleDeclaration))

	finally := statement.Field(syntax.RoleFinally)
	require.NotNil(t, finally)
	assert.Equal(t, syntax.KindBlock, finally.Field(syntax.RoleBlock).Kind)
}

func TestBuilder_UsingAndLock(t *testing.T) {
	body := methodBody(t, "using (var r = Open()) { } using (r) { } lock (gate) { }")
	statements := body.Fields(syntax.RoleStatement)
	require.Len(t, statements, 3)

	assert.Equal(t, syntax.KindUsingStatement, statements[0].Kind)
	assert.NotNil(t, statements[0].Field(syntax.RoleDeclaration))
	assert.Nil(t, statements[0].Field(syntax.RoleExpression))

	assert.Equal(t, syntax.KindUsingStatement, statements[1].Kind)
	assert.Equal(t, "r", statements[1].Field(syntax.RoleExpression).String())

	assert.Equal(t, syntax.KindLockStatement, statements[2].Kind)
	assert.Equal(t, "gate", statements[2].Field(syntax.RoleExpression).String())
}

func TestBuilder_Lambdas(t *testing.T) {
	body := methodBody(t, "F(x => x + 1); G((a, b) => { return a; }); H(async () => await T()); K(delegate { });")

	lambdas := all(body, func(n *syntax.Node) bool { return n.Kind.IsLambda() })
	require.Len(t, lambdas, 4)

	simple := lambdas[0]
	assert.Equal(t, syntax.KindSimpleLambdaExpression, simple.Kind)
	assert.Equal(t, "x", simple.Field(syntax.RoleParameter).String())
	assert.Equal(t, syntax.KindBinaryExpression, simple.Field(syntax.RoleBody).Kind)
	assert.Nil(t, simple.Field(syntax.RoleAsync))

	parenthesized := lambdas[1]
	assert.Equal(t, syntax.KindParenthesizedLambdaExpression, parenthesized.Kind)
	assert.Len(t, parenthesized.Field(syntax.RoleParameterList).Fields(syntax.RoleParameter), 2)
	assert.Equal(t, syntax.KindBlock, parenthesized.Field(syntax.RoleBody).Kind)

	async := lambdas[2]
	assert.Equal(t, syntax.KindParenthesizedLambdaExpression, async.Kind)
	assert.NotNil(t, async.Field(syntax.RoleAsync))
	assert.Equal(t, syntax.KindAwaitExpression, async.Field(syntax.RoleBody).Kind)

	anonymous := lambdas[3]
	assert.Equal(t, syntax.KindAnonymousMethodExpression, anonymous.Kind)
	assert.Nil(t, anonymous.Field(syntax.RoleParameterList))
	assert.Equal(t, syntax.KindBlock, anonymous.Field(syntax.RoleBody).Kind)
}

func TestBuilder_Query(t *testing.T) {
	body := methodBody(t, "var q = from a in xs where a > 1 orderby a descending select a;")

	query := first(body, syntax.KindQueryExpression)
	require.NotNil(t, query)

	from := query.Field(syntax.RoleFrom)
	require.NotNil(t, from)
	assert.Equal(t, syntax.KindFromClause, from.Kind)
	assert.Equal(t, "a", from.Field(syntax.RoleIdentifier).Text)
	assert.Equal(t, "xs", from.Field(syntax.RoleExpression).String())

	queryBody := query.Field(syntax.RoleBody)
	require.NotNil(t, queryBody)
	assert.Equal(t, syntax.KindQueryBody, queryBody.Kind)

	clauses := queryBody.Fields(syntax.RoleClause)
	require.Len(t, clauses, 2)
	assert.Equal(t, syntax.KindWhereClause, clauses[0].Kind)
	assert.Equal(t, syntax.KindOrderByClause, clauses[1].Kind)

	orderings := clauses[1].Fields(syntax.RoleOrdering)
	require.Len(t, orderings, 1)
	assert.Equal(t, syntax.KindDescendingOrdering, orderings[0].Kind)

	assert.Equal(t, syntax.KindSelectClause, queryBody.Field(syntax.RoleSelectOrGroup).Kind)
}

func TestBuilder_Invocation(t *testing.T) {
	body := methodBody(t, "a.B(1, c);")

	call := first(body, syntax.KindInvocationExpression)
	require.NotNil(t, call)

	target := call.Field(syntax.RoleExpression)
	require.Equal(t, syntax.KindSimpleMemberAccessExpression, target.Kind)
	assert.Equal(t, "a", target.Field(syntax.RoleExpression).String())
	assert.Equal(t, "B", target.Field(syntax.RoleName).String())

	args := call.Field(syntax.RoleArgumentList)
	require.NotNil(t, args)
	assert.Len(t, args.Fields(syntax.RoleArgument), 2)
}

func TestBuilder_Designations(t *testing.T) {
	body := methodBody(t, "F(out int z, x => x); if (o is int k) { }")
	statements := body.Fields(syntax.RoleStatement)
	require.Len(t, statements, 2)

	decl := first(statements[0], syntax.KindDeclarationExpression)
	require.NotNil(t, decl)
	assert.Equal(t, "int", decl.Field(syntax.RoleType).String())
	declarator := decl.Field(syntax.RoleVariable)
	require.NotNil(t, declarator)
	assert.Equal(t, syntax.KindVariableDeclarator, declarator.Kind)
	assert.Equal(t, "z", declarator.Field(syntax.RoleIdentifier).Text)

	children := comparer.Default.GetChildren(statements[0]).Collect()
	require.Len(t, children, 2)
	assert.Same(t, declarator, children[0])
	assert.Equal(t, syntax.KindSimpleLambdaExpression, children[1].Kind)

	children = comparer.Default.GetChildren(statements[1]).Collect()
	require.Len(t, children, 2)
	assert.Equal(t, comparer.LabelLocalVariableDeclarator, comparer.GetLabelOf(children[0]))
	assert.Equal(t, "k", children[0].Field(syntax.RoleIdentifier).Text)
	assert.Equal(t, syntax.KindBlock, children[1].Kind)
}

func TestBuilder_ForPartExpressionKinds(t *testing.T) {
	tests := []struct {
		condition string
		kind      syntax.Kind
	}{
		{"new { A = 1 }", syntax.KindAnonymousObjectCreationExpression},
		{"p with { A = 1 }", syntax.KindWithExpression},
		{"1..2", syntax.KindRangeExpression},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			body := methodBody(t, "for (; "+tt.condition+"; ) { }")
			loop := body.Fields(syntax.RoleStatement)[0]
			require.Equal(t, syntax.KindForStatement, loop.Kind)

			condition := loop.Field(syntax.RoleCondition)
			require.NotNil(t, condition)
			assert.Equal(t, tt.kind, condition.Kind)
			assert.True(t, condition.Kind.IsExpression())
			assert.Equal(t, comparer.LabelForStatementPart, comparer.GetLabelOf(condition))
		})
	}
}

func TestBuilder_LabeledAndGoto(t *testing.T) {
	body := methodBody(t, "start: x++; goto start;")
	statements := body.Fields(syntax.RoleStatement)
	require.Len(t, statements, 2)

	assert.Equal(t, syntax.KindLabeledStatement, statements[0].Kind)
	assert.Equal(t, "start", statements[0].Field(syntax.RoleIdentifier).Text)
	assert.Equal(t, syntax.KindExpressionStatement, statements[0].Field(syntax.RoleStatement).Kind)
	assert.Equal(t, syntax.KindGotoStatement, statements[1].Kind)
}

func TestBuilder_ParentsAreConsistent(t *testing.T) {
	root := parseSyntax(t, programSource)

	it := root.DescendantNodes(nil)
	for node, ok := it.Next(); ok; node, ok = it.Next() {
		for _, child := range node.Children {
			assert.Same(t, node, child.Parent, "parent of %s", child.Describe())
		}
	}
}
