package comparer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	s "github.com/ludo-technologies/eacdiff/internal/syntax"
)

func TestClassify_ByKind(t *testing.T) {
	tests := []struct {
		kind  s.Kind
		label Label
		leaf  bool
	}{
		{s.KindBlock, LabelBlock, false},
		{s.KindLocalDeclarationStatement, LabelLocalDeclarationStatement, false},
		{s.KindVariableDeclaration, LabelLocalVariableDeclaration, false},
		{s.KindVariableDeclarator, LabelLocalVariableDeclarator, false},
		{s.KindLabeledStatement, LabelLabeledStatement, false},
		{s.KindEmptyStatement, LabelIgnored, true},
		{s.KindGotoStatement, LabelGotoStatement, true},
		{s.KindGotoCaseStatement, LabelGotoCaseStatement, true},
		{s.KindGotoDefaultStatement, LabelGotoCaseStatement, true},
		{s.KindBreakStatement, LabelBreakContinueStatement, true},
		{s.KindContinueStatement, LabelBreakContinueStatement, true},
		{s.KindReturnStatement, LabelReturnThrowStatement, false},
		{s.KindThrowStatement, LabelReturnThrowStatement, false},
		{s.KindExpressionStatement, LabelExpressionStatement, false},
		{s.KindYieldBreakStatement, LabelYieldStatement, false},
		{s.KindYieldReturnStatement, LabelYieldStatement, false},
		{s.KindDoStatement, LabelDoStatement, false},
		{s.KindWhileStatement, LabelWhileStatement, false},
		{s.KindForStatement, LabelForStatement, false},
		{s.KindForEachStatement, LabelForEachStatement, false},
		{s.KindUsingStatement, LabelUsingStatement, false},
		{s.KindFixedStatement, LabelFixedStatement, false},
		{s.KindCheckedStatement, LabelCheckedStatement, false},
		{s.KindUncheckedStatement, LabelCheckedStatement, false},
		{s.KindUnsafeStatement, LabelUnsafeStatement, false},
		{s.KindLockStatement, LabelLockStatement, false},
		{s.KindIfStatement, LabelIfStatement, false},
		{s.KindElseClause, LabelElseClause, false},
		{s.KindSwitchStatement, LabelSwitchStatement, false},
		{s.KindSwitchSection, LabelSwitchSection, false},
		{s.KindCaseSwitchLabel, LabelIgnored, true},
		{s.KindDefaultSwitchLabel, LabelIgnored, true},
		{s.KindTryStatement, LabelTryStatement, false},
		{s.KindCatchClause, LabelCatchClause, false},
		{s.KindCatchFilterClause, LabelCatchFilterClause, false},
		{s.KindFinallyClause, LabelFinallyClause, false},
		{s.KindParenthesizedLambdaExpression, LabelLambda, true},
		{s.KindSimpleLambdaExpression, LabelLambda, true},
		{s.KindAnonymousMethodExpression, LabelLambda, true},
		{s.KindLetClause, LabelLetClauseLambda, true},
		{s.KindWhereClause, LabelWhereClauseLambda, true},
		{s.KindAscendingOrdering, LabelOrderingLambda, true},
		{s.KindDescendingOrdering, LabelOrderingLambda, true},
		{s.KindSelectClause, LabelSelectClauseLambda, true},
		{s.KindJoinClause, LabelJoinClauseLambda, true},
		{s.KindGroupClause, LabelGroupClauseLambda, true},
		{s.KindIdentifierName, LabelIgnored, true},
		{s.KindPredefinedType, LabelIgnored, true},
		{s.KindNumericLiteralExpression, LabelIgnored, true},
		{s.KindTypeOfExpression, LabelIgnored, true},
		{s.KindStackAllocArrayCreationExpression, LabelIgnored, true},
		{s.KindAwaitExpression, LabelAwaitExpression, false},
		{s.KindInvocationExpression, LabelIgnored, false},
		{s.KindQueryExpression, LabelIgnored, false},
		{s.Kind("tuple_pattern_from_a_newer_grammar"), LabelIgnored, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			label, leaf := Classify(tt.kind, nil)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, tt.leaf, leaf)
		})
	}
}

func TestClassify_ForStatementParts(t *testing.T) {
	initializer := s.Assign("=", s.IdentifierName("i"), s.NumericLiteral("0"))
	cond := s.Binary("<", s.IdentifierName("i"), s.IdentifierName("n"))
	inc := s.Postfix("++", s.IdentifierName("i"))
	body := s.Block()
	s.For(nil, []*s.Node{initializer}, cond, []*s.Node{inc}, body)

	for _, part := range []*s.Node{initializer, cond, inc} {
		label, leaf := Classify(part.Kind, part)
		assert.Equal(t, LabelForStatementPart, label, part.Describe())
		assert.False(t, leaf)
	}

	assert.Equal(t, LabelBlock, GetLabelOf(body))

	// leaf expressions become parts too when they sit directly in the header
	literalCond := s.True()
	s.For(nil, nil, literalCond, nil, s.Block())
	assert.Equal(t, LabelForStatementPart, GetLabelOf(literalCond))

	// without context the same kinds are ignored
	label, _ := Classify(s.KindAssignmentExpression, nil)
	assert.Equal(t, LabelIgnored, label)
}

func TestClassify_ForDeclarationIsNotAPart(t *testing.T) {
	decl := s.VariableDeclaration(s.PredefinedType("int"), s.VariableDeclarator("i", s.NumericLiteral("0")))
	s.For(decl, nil, nil, nil, s.Block())

	assert.Equal(t, LabelLocalVariableDeclaration, GetLabelOf(decl))
}

func TestClassify_FromClauses(t *testing.T) {
	first := s.From(nil, "a", s.IdentifierName("xs"))
	second := s.From(nil, "b", s.IdentifierName("ys"))
	s.Query(first, s.QueryBody([]*s.Node{second}, s.Select(s.IdentifierName("b")), nil))

	label, leaf := Classify(first.Kind, first)
	assert.Equal(t, LabelIgnored, label)
	assert.False(t, leaf, "the first from clause may contain lambdas")

	label, leaf = Classify(second.Kind, second)
	assert.Equal(t, LabelFromClauseLambda, label)
	assert.True(t, leaf)

	label, _ = Classify(s.KindFromClause, nil)
	assert.Equal(t, LabelIgnored, label)
}

func TestHasLabelAndIsLeaf(t *testing.T) {
	assert.True(t, HasLabel(s.Break()))
	assert.True(t, IsLeaf(s.Break()))
	assert.False(t, HasLabel(s.Empty()))
	assert.True(t, HasLabel(s.Block()))
	assert.False(t, IsLeaf(s.Block()))
}

func TestIgnoreLabeledChild(t *testing.T) {
	assert.True(t, IgnoreLabeledChild(s.KindBlock))
	assert.True(t, IgnoreLabeledChild(s.KindSimpleLambdaExpression))
	assert.True(t, IgnoreLabeledChild(s.KindAwaitExpression))
	assert.False(t, IgnoreLabeledChild(s.KindInvocationExpression))
	assert.False(t, IgnoreLabeledChild(s.KindFromClause))
	assert.False(t, IgnoreLabeledChild(s.KindCaseSwitchLabel))
}

func TestTiedToAncestor(t *testing.T) {
	tied := map[Label]bool{
		LabelLocalDeclarationStatement: true,
		LabelLocalVariableDeclaration:  true,
		LabelLocalVariableDeclarator:   true,
		LabelGotoCaseStatement:         true,
		LabelBreakContinueStatement:    true,
		LabelElseClause:                true,
		LabelCatchClause:               true,
		LabelCatchFilterClause:         true,
		LabelFinallyClause:             true,
		LabelForStatementPart:          true,
		LabelYieldStatement:            true,
	}

	for label := LabelBlock; label < LabelCount; label++ {
		expected := 0
		if tied[label] {
			expected = 1
		}
		assert.Equal(t, expected, TiedToAncestor(label), label.String())
	}
	assert.Equal(t, 0, TiedToAncestor(LabelIgnored))
}

func TestLabel_String(t *testing.T) {
	tests := []struct {
		label    Label
		expected string
	}{
		{LabelBlock, "Block"},
		{LabelForStatementPart, "ForStatementPart"},
		{LabelGroupClauseLambda, "GroupClauseLambda"},
		{LabelCount, "Count"},
		{LabelIgnored, "Ignored"},
		{Label(99), "Label(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.label.String())
		})
	}
}

func TestIsLambdaLabel(t *testing.T) {
	assert.True(t, IsLambdaLabel(LabelLambda))
	assert.True(t, IsLambdaLabel(LabelGroupClauseLambda))
	assert.False(t, IsLambdaLabel(LabelAwaitExpression))
	assert.False(t, IsLambdaLabel(LabelCount))
	assert.False(t, IsLambdaLabel(LabelIgnored))
}
