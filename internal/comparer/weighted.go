package comparer

import "github.com/ludo-technologies/eacdiff/internal/syntax"

// TryComputeWeightedDistance returns a distance in [0, 1] for the kinds
// where parts of a node matter more than others. Both nodes must have the
// same label. The second result is false when the default value distance
// should be used instead.
func (c *Comparer) TryComputeWeightedDistance(left, right *syntax.Node) (float64, bool) {
	switch left.Kind {
	case syntax.KindVariableDeclarator:
		return ComputeTokenDistance(left.Field(syntax.RoleIdentifier), right.Field(syntax.RoleIdentifier)), true

	case syntax.KindForStatement:
		return forDistance(left, right), true

	case syntax.KindForEachStatement:
		return forEachDistance(left, right), true

	case syntax.KindUsingStatement:
		leftDecl, rightDecl := left.Field(syntax.RoleDeclaration), right.Field(syntax.RoleDeclaration)
		if leftDecl != nil && rightDecl != nil {
			return declarationHeaderDistance(leftDecl, statementOf(left), rightDecl, statementOf(right)), true
		}
		return headerDistance(usingHeader(left), statementOf(left), usingHeader(right), statementOf(right)), true

	case syntax.KindFixedStatement:
		// the header of a fixed statement is always a declaration
		return declarationHeaderDistance(
			left.Field(syntax.RoleDeclaration), statementOf(left),
			right.Field(syntax.RoleDeclaration), statementOf(right)), true

	case syntax.KindLockStatement:
		return headerDistance(
			left.Field(syntax.RoleExpression), statementOf(left),
			right.Field(syntax.RoleExpression), statementOf(right)), true

	case syntax.KindWhileStatement, syntax.KindDoStatement, syntax.KindIfStatement:
		return headerDistance(
			left.Field(syntax.RoleCondition), statementOf(left),
			right.Field(syntax.RoleCondition), statementOf(right)), true

	case syntax.KindBlock:
		return c.blockDistance(left, right), true

	case syntax.KindCatchClause:
		return catchDistance(left, right), true

	case syntax.KindParenthesizedLambdaExpression,
		syntax.KindSimpleLambdaExpression,
		syntax.KindAnonymousMethodExpression:
		return lambdaDistance(left, right), true

	case syntax.KindYieldBreakStatement, syntax.KindYieldReturnStatement:
		// the shape of the state machine matters, the yielded value does not
		if left.Kind == right.Kind {
			return 0, true
		}
		return 0.1, true
	}
	return 0, false
}

func statementOf(node *syntax.Node) *syntax.Node {
	return node.Field(syntax.RoleStatement)
}

func usingHeader(using *syntax.Node) *syntax.Node {
	if expr := using.Field(syntax.RoleExpression); expr != nil {
		return expr
	}
	return using.Field(syntax.RoleDeclaration)
}

func lambdaDistance(left, right *syntax.Node) float64 {
	leftParams, leftAsync, leftBody := lambdaParts(left)
	rightParams, rightAsync, rightBody := lambdaParts(right)

	if leftAsync != rightAsync {
		return 1.0
	}

	parameterDistance := ComputeTokensDistance(leftParams, rightParams)
	bodyDistance := ComputeDistance(leftBody, rightBody)
	return parameterDistance*0.6 + bodyDistance*0.4
}

func lambdaParts(lambda *syntax.Node) (parameters []*syntax.Node, async bool, body *syntax.Node) {
	async = lambda.Field(syntax.RoleAsync) != nil
	body = lambda.Field(syntax.RoleBody)

	switch lambda.Kind {
	case syntax.KindSimpleLambdaExpression:
		parameters = lambda.Field(syntax.RoleParameter).DescendantTokens()
	case syntax.KindParenthesizedLambdaExpression, syntax.KindAnonymousMethodExpression:
		// an anonymous method without a parameter list has no parameters
		if list := lambda.Field(syntax.RoleParameterList); list != nil {
			parameters = tokensIgnoringSeparators(list.Fields(syntax.RoleParameter))
		}
	default:
		invariantf("unexpected lambda kind %s", lambda.Kind)
	}
	return parameters, async, body
}

// tokensIgnoringSeparators returns the tokens of the nodes of a separated
// list, leaving out the separators between them
func tokensIgnoringSeparators(nodes []*syntax.Node) []*syntax.Node {
	var tokens []*syntax.Node
	for _, node := range nodes {
		tokens = append(tokens, node.DescendantTokens()...)
	}
	return tokens
}

func (c *Comparer) blockDistance(left, right *syntax.Node) float64 {
	// no block can be matched with the root block: a block without a
	// labeled parent, such as a member body
	if !c.hasLabeledParent(left) || !c.hasLabeledParent(right) {
		return 0.0
	}

	leftParent, rightParent := left.Parent, right.Parent

	if leftParent.Kind != rightParent.Kind {
		return 0.2 + 0.8*weightedBlockDistance(left, right)
	}

	switch leftParent.Kind {
	case syntax.KindIfStatement,
		syntax.KindForEachStatement,
		syntax.KindForStatement,
		syntax.KindWhileStatement,
		syntax.KindDoStatement,
		syntax.KindFixedStatement,
		syntax.KindLockStatement,
		syntax.KindUsingStatement,
		syntax.KindSwitchSection,
		syntax.KindParenthesizedLambdaExpression,
		syntax.KindSimpleLambdaExpression,
		syntax.KindAnonymousMethodExpression:
		// the value of the block is part of the parent's distance
		return c.GetDistance(leftParent, rightParent)

	case syntax.KindCatchClause:
		if isBareCatch(leftParent) && isBareCatch(rightParent) {
			leftTry := leftParent.Parent.Field(syntax.RoleBlock)
			rightTry := rightParent.Parent.Field(syntax.RoleBlock)
			return 0.5*ComputeValueDistance(leftTry, rightTry) + 0.5*ComputeValueDistance(left, right)
		}
		return c.GetDistance(leftParent, rightParent)

	case syntax.KindUnsafeStatement,
		syntax.KindCheckedStatement,
		syntax.KindUncheckedStatement,
		syntax.KindElseClause,
		syntax.KindFinallyClause,
		syntax.KindTryStatement:
		return 0.2 * ComputeValueDistance(left, right)
	}

	// nested blocks, labeled statements and member bodies
	return weightedBlockDistance(left, right)
}

func (c *Comparer) hasLabeledParent(block *syntax.Node) bool {
	parent, ok := c.TryGetParent(block)
	return ok && HasLabel(parent)
}

func isBareCatch(catch *syntax.Node) bool {
	return catch.Field(syntax.RoleDeclaration) == nil && catch.Field(syntax.RoleFilter) == nil
}

func weightedBlockDistance(left, right *syntax.Node) float64 {
	if distance, ok := blockLocalsDistance(left, right); ok {
		return distance
	}
	return ComputeValueDistance(left, right)
}

func catchDistance(left, right *syntax.Node) float64 {
	leftBlock, rightBlock := left.Field(syntax.RoleBlock), right.Field(syntax.RoleBlock)
	blockDistance := ComputeDistance(leftBlock, rightBlock)
	distance := combineOptional(blockDistance,
		left.Field(syntax.RoleDeclaration), right.Field(syntax.RoleDeclaration),
		left.Field(syntax.RoleFilter), right.Field(syntax.RoleFilter),
		0.8, 0.5)
	return adjustForLocalsInBlock(distance, leftBlock, rightBlock, 0.3)
}

func forEachDistance(left, right *syntax.Node) float64 {
	statementDistance := ComputeDistance(statementOf(left), statementOf(right))
	expressionDistance := ComputeDistance(left.Field(syntax.RoleExpression), right.Field(syntax.RoleExpression))
	identifierDistance := ComputeTokenDistance(left.Field(syntax.RoleIdentifier), right.Field(syntax.RoleIdentifier))

	distance := identifierDistance*0.7 + expressionDistance*0.2 + statementDistance*0.1
	return adjustForLocalsInBlock(distance, statementOf(left), statementOf(right), 0.6)
}

func forDistance(left, right *syntax.Node) float64 {
	statementDistance := ComputeDistance(statementOf(left), statementOf(right))
	conditionDistance := ComputeDistance(left.Field(syntax.RoleCondition), right.Field(syntax.RoleCondition))
	incrementorDistance := ComputeTokensDistance(
		tokensIgnoringSeparators(left.Fields(syntax.RoleIncrementor)),
		tokensIgnoringSeparators(right.Fields(syntax.RoleIncrementor)))

	distance := conditionDistance*0.3 + incrementorDistance*0.3 + statementDistance*0.4

	if localsDistance, ok := declarationLocalsDistance(left.Field(syntax.RoleDeclaration), right.Field(syntax.RoleDeclaration)); ok {
		distance = distance*0.4 + localsDistance*0.6
	}
	return distance
}

// declarationHeaderDistance weighs statements whose header declares
// variables, putting most of the weight on the declared names
func declarationHeaderDistance(leftDecl, leftStatement, rightDecl, rightStatement *syntax.Node) float64 {
	distance := ComputeDistance(leftStatement, rightStatement)

	if localsDistance, ok := declarationLocalsDistance(leftDecl, rightDecl); ok {
		distance = distance*0.4 + localsDistance*0.6
	}
	return adjustForLocalsInBlock(distance, leftStatement, rightStatement, 0.2)
}

func headerDistance(leftHeader, leftStatement, rightHeader, rightStatement *syntax.Node) float64 {
	if leftStatement == nil || rightStatement == nil {
		invariantf("header statement without a body")
	}
	headerDist := ComputeDistance(leftHeader, rightHeader)
	statementDistance := ComputeDistance(leftStatement, rightStatement)
	distance := headerDist*0.6 + statementDistance*0.4

	return adjustForLocalsInBlock(distance, leftStatement, rightStatement, 0.5)
}

// adjustForLocalsInBlock gives the locals declared by two block bodies the
// weight localsWeight in the distance
func adjustForLocalsInBlock(distance float64, leftStatement, rightStatement *syntax.Node, localsWeight float64) float64 {
	if leftStatement.IsKind(syntax.KindBlock) && rightStatement.IsKind(syntax.KindBlock) {
		if localsDistance, ok := blockLocalsDistance(leftStatement, rightStatement); ok {
			return localsDistance*localsWeight + distance*(1-localsWeight)
		}
	}
	return distance
}

func declarationLocalsDistance(left, right *syntax.Node) (float64, bool) {
	var leftLocals, rightLocals []*syntax.Node
	if left != nil {
		leftLocals = appendDeclarationLocals(leftLocals, left)
	}
	if right != nil {
		rightLocals = appendDeclarationLocals(rightLocals, right)
	}
	if leftLocals == nil || rightLocals == nil {
		return 0, false
	}
	return ComputeTokensDistance(leftLocals, rightLocals), true
}

func blockLocalsDistance(left, right *syntax.Node) (float64, bool) {
	leftLocals := blockLocals(left)
	rightLocals := blockLocals(right)
	if leftLocals == nil || rightLocals == nil {
		return 0, false
	}
	return ComputeTokensDistance(leftLocals, rightLocals), true
}

// blockLocals returns the names declared by the local declaration
// statements directly in the block. Variables introduced by declaration
// expressions are not included.
func blockLocals(block *syntax.Node) []*syntax.Node {
	var locals []*syntax.Node
	for _, child := range block.ChildNodes() {
		if child.Kind == syntax.KindLocalDeclarationStatement {
			if decl := child.Field(syntax.RoleDeclaration); decl != nil {
				locals = appendDeclarationLocals(locals, decl)
			}
		}
	}
	return locals
}

func appendDeclarationLocals(locals []*syntax.Node, declaration *syntax.Node) []*syntax.Node {
	for _, variable := range declaration.Fields(syntax.RoleVariable) {
		if id := variable.Field(syntax.RoleIdentifier); id != nil {
			locals = append(locals, id)
		}
	}
	return locals
}

// combineOptional blends distance0 with the distances of two optional
// parts. weight0 is the share of distance0, weight1 the share of the first
// optional part when both are present.
func combineOptional(distance0 float64, leftOpt1, rightOpt1, leftOpt2, rightOpt2 *syntax.Node, weight0, weight1 float64) float64 {
	one := leftOpt1 != nil || rightOpt1 != nil
	two := leftOpt2 != nil || rightOpt2 != nil

	if !one && !two {
		return distance0
	}

	distance1 := ComputeDistance(leftOpt1, rightOpt1)
	distance2 := ComputeDistance(leftOpt2, rightOpt2)

	var d float64
	switch {
	case one && two:
		d = distance1*weight1 + distance2*(1-weight1)
	case one:
		d = distance1
	default:
		d = distance2
	}
	return distance0*weight0 + d*(1-weight0)
}
