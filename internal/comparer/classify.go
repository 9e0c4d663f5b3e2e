package comparer

import "github.com/ludo-technologies/eacdiff/internal/syntax"

// Classify returns the label of a node of the given kind and whether the
// node is a leaf, i.e. its subtree holds nothing else the matcher should see.
//
// node is nil only when comparing values, where the parent context is not
// available. Expressions are labeled Ignored but may contain lambdas,
// declarators or await expressions; walking down to those is the job of
// GetChildren.
func Classify(kind syntax.Kind, node *syntax.Node) (Label, bool) {
	// Initializer, condition and incrementor expressions of a for loop can
	// be active statements and have to be mapped.
	if node != nil && node.Parent.IsKind(syntax.KindForStatement) && kind.IsExpression() {
		return LabelForStatementPart, false
	}

	switch kind {
	case syntax.KindBlock:
		return LabelBlock, false

	case syntax.KindLocalDeclarationStatement:
		return LabelLocalDeclarationStatement, false

	case syntax.KindVariableDeclaration:
		return LabelLocalVariableDeclaration, false

	case syntax.KindVariableDeclarator:
		return LabelLocalVariableDeclarator, false

	case syntax.KindLabeledStatement:
		return LabelLabeledStatement, false

	case syntax.KindEmptyStatement:
		return LabelIgnored, true

	case syntax.KindGotoStatement:
		return LabelGotoStatement, true

	case syntax.KindGotoCaseStatement, syntax.KindGotoDefaultStatement:
		return LabelGotoCaseStatement, true

	case syntax.KindBreakStatement, syntax.KindContinueStatement:
		return LabelBreakContinueStatement, true

	case syntax.KindReturnStatement, syntax.KindThrowStatement:
		return LabelReturnThrowStatement, false

	case syntax.KindExpressionStatement:
		return LabelExpressionStatement, false

	case syntax.KindYieldBreakStatement, syntax.KindYieldReturnStatement:
		return LabelYieldStatement, false

	case syntax.KindDoStatement:
		return LabelDoStatement, false

	case syntax.KindWhileStatement:
		return LabelWhileStatement, false

	case syntax.KindForStatement:
		return LabelForStatement, false

	case syntax.KindForEachStatement:
		return LabelForEachStatement, false

	case syntax.KindUsingStatement:
		return LabelUsingStatement, false

	case syntax.KindFixedStatement:
		return LabelFixedStatement, false

	case syntax.KindCheckedStatement, syntax.KindUncheckedStatement:
		return LabelCheckedStatement, false

	case syntax.KindUnsafeStatement:
		return LabelUnsafeStatement, false

	case syntax.KindLockStatement:
		return LabelLockStatement, false

	case syntax.KindIfStatement:
		return LabelIfStatement, false

	case syntax.KindElseClause:
		return LabelElseClause, false

	case syntax.KindSwitchStatement:
		return LabelSwitchStatement, false

	case syntax.KindSwitchSection:
		return LabelSwitchSection, false

	case syntax.KindCaseSwitchLabel, syntax.KindDefaultSwitchLabel:
		// part of the value of the enclosing section
		return LabelIgnored, true

	case syntax.KindTryStatement:
		return LabelTryStatement, false

	case syntax.KindCatchClause:
		return LabelCatchClause, false

	case syntax.KindCatchFilterClause:
		return LabelCatchFilterClause, false

	case syntax.KindFinallyClause:
		return LabelFinallyClause, false

	case syntax.KindParenthesizedLambdaExpression,
		syntax.KindSimpleLambdaExpression,
		syntax.KindAnonymousMethodExpression:
		return LabelLambda, true

	case syntax.KindFromClause:
		// The first from clause of a query is a plain expression, not a
		// lambda, and must not match a lambda-from. Without a parent every
		// from clause is treated as the first one.
		if node == nil || node.Parent.IsKind(syntax.KindQueryExpression) {
			return LabelIgnored, false
		}
		return LabelFromClauseLambda, true

	case syntax.KindLetClause:
		return LabelLetClauseLambda, true

	case syntax.KindWhereClause:
		return LabelWhereClauseLambda, true

	case syntax.KindAscendingOrdering, syntax.KindDescendingOrdering:
		return LabelOrderingLambda, true

	case syntax.KindSelectClause:
		return LabelSelectClauseLambda, true

	case syntax.KindJoinClause:
		return LabelJoinClauseLambda, true

	case syntax.KindGroupClause:
		return LabelGroupClauseLambda, true

	case syntax.KindIdentifierName,
		syntax.KindQualifiedName,
		syntax.KindGenericName,
		syntax.KindTypeArgumentList,
		syntax.KindAliasQualifiedName,
		syntax.KindPredefinedType,
		syntax.KindArrayType,
		syntax.KindArrayRankSpecifier,
		syntax.KindPointerType,
		syntax.KindNullableType,
		syntax.KindOmittedTypeArgument,
		syntax.KindNameColon,
		syntax.KindStackAllocArrayCreationExpression,
		syntax.KindJoinIntoClause,
		syntax.KindOmittedArraySizeExpression,
		syntax.KindThisExpression,
		syntax.KindBaseExpression,
		syntax.KindArgListExpression,
		syntax.KindNumericLiteralExpression,
		syntax.KindStringLiteralExpression,
		syntax.KindCharacterLiteralExpression,
		syntax.KindTrueLiteralExpression,
		syntax.KindFalseLiteralExpression,
		syntax.KindNullLiteralExpression,
		syntax.KindTypeOfExpression,
		syntax.KindSizeOfExpression,
		syntax.KindDefaultExpression:
		// cannot contain a lambda
		return LabelIgnored, true

	case syntax.KindAwaitExpression:
		return LabelAwaitExpression, false

	default:
		// anything else may contain a lambda
		return LabelIgnored, false
	}
}

// GetLabelOf returns the label of a node in its tree context
func GetLabelOf(node *syntax.Node) Label {
	label, _ := Classify(node.Kind, node)
	return label
}

// HasLabel reports whether the node is visible to the matcher
func HasLabel(node *syntax.Node) bool {
	return GetLabelOf(node) != LabelIgnored
}

// IsLeaf reports whether the matcher must not descend below the node
func IsLeaf(node *syntax.Node) bool {
	_, leaf := Classify(node.Kind, node)
	return leaf
}

// IgnoreLabeledChild reports whether a child of the given kind is labeled
// when classified without context. Value comparison stops at such children.
func IgnoreLabeledChild(kind syntax.Kind) bool {
	label, _ := Classify(kind, nil)
	return label != LabelIgnored
}
