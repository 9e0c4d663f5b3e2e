package comparer

//go:generate stringer -type=Label -trimprefix=Label

// Label groups syntax kinds into classes the matcher may pair.
// Nodes with the same label may produce Update edits; nodes with different
// labels never do. A label tied to its parent must be declared after every
// label its parent can carry.
type Label int

// LabelIgnored marks nodes the matcher skips but may descend through
const LabelIgnored Label = -1

const (
	LabelBlock Label = iota
	LabelCheckedStatement
	LabelUnsafeStatement

	LabelTryStatement
	LabelCatchClause       // tied to parent
	LabelCatchFilterClause // tied to parent
	LabelFinallyClause     // tied to parent
	LabelForStatement
	LabelForStatementPart // tied to parent
	LabelForEachStatement
	LabelUsingStatement
	LabelFixedStatement
	LabelLockStatement
	LabelWhileStatement
	LabelDoStatement
	LabelIfStatement
	LabelElseClause // tied to parent

	LabelSwitchStatement
	LabelSwitchSection

	LabelYieldStatement // tied to parent
	LabelGotoStatement
	LabelGotoCaseStatement
	LabelBreakContinueStatement
	LabelReturnThrowStatement
	LabelExpressionStatement

	LabelLabeledStatement

	LabelLocalDeclarationStatement // tied to parent
	LabelLocalVariableDeclaration  // tied to parent
	LabelLocalVariableDeclarator   // tied to parent

	LabelAwaitExpression

	LabelLambda
	LabelFromClauseLambda
	LabelLetClauseLambda
	LabelWhereClauseLambda
	LabelOrderingLambda
	LabelSelectClauseLambda
	LabelJoinClauseLambda
	LabelGroupClauseLambda

	// LabelCount is the number of real labels
	LabelCount
)

// TiedToAncestor returns how many labeled ancestors a node with the label
// is welded to. A welded node can only be matched if its ancestors at that
// depth are matched to each other.
//
// TODO: declarators could be tied to the first enclosing node that defines
// a local scope, and local declarations could be treated as a bag of
// declarators so that declarators of one can match declarators of another.
func TiedToAncestor(label Label) int {
	switch label {
	case LabelLocalDeclarationStatement,
		LabelLocalVariableDeclaration,
		LabelLocalVariableDeclarator,
		LabelGotoCaseStatement,
		LabelBreakContinueStatement,
		LabelElseClause,
		LabelCatchClause,
		LabelCatchFilterClause,
		LabelFinallyClause,
		LabelForStatementPart,
		LabelYieldStatement:
		return 1
	default:
		return 0
	}
}

// IsLambdaLabel reports whether the label stands for a lambda or a query
// clause that compiles to a lambda
func IsLambdaLabel(label Label) bool {
	return label >= LabelLambda && label < LabelCount
}
