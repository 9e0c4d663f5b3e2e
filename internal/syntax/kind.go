package syntax

// Kind represents the syntactic kind of a node or token
type Kind string

// Member and type declarations
const (
	KindCompilationUnit         Kind = "CompilationUnit"
	KindNamespaceDeclaration    Kind = "NamespaceDeclaration"
	KindClassDeclaration        Kind = "ClassDeclaration"
	KindStructDeclaration       Kind = "StructDeclaration"
	KindInterfaceDeclaration    Kind = "InterfaceDeclaration"
	KindRecordDeclaration       Kind = "RecordDeclaration"
	KindMethodDeclaration       Kind = "MethodDeclaration"
	KindConstructorDeclaration  Kind = "ConstructorDeclaration"
	KindDestructorDeclaration   Kind = "DestructorDeclaration"
	KindOperatorDeclaration     Kind = "OperatorDeclaration"
	KindConversionOperator      Kind = "ConversionOperatorDeclaration"
	KindPropertyDeclaration     Kind = "PropertyDeclaration"
	KindAccessorList            Kind = "AccessorList"
	KindAccessorDeclaration     Kind = "AccessorDeclaration"
	KindArrowExpressionClause   Kind = "ArrowExpressionClause"
	KindLocalFunctionStatement  Kind = "LocalFunctionStatement"
	KindParameterList           Kind = "ParameterList"
	KindParameter               Kind = "Parameter"
	KindBracketedParameterList  Kind = "BracketedParameterList"
	KindTypeParameterList       Kind = "TypeParameterList"
	KindAttributeList           Kind = "AttributeList"
	KindModifier                Kind = "Modifier"
	KindUsingDirective          Kind = "UsingDirective"
	KindFieldDeclaration        Kind = "FieldDeclaration"
	KindDeclarationList         Kind = "DeclarationList"
	KindIndexerDeclaration      Kind = "IndexerDeclaration"
	KindEventDeclaration        Kind = "EventDeclaration"
	KindEnumDeclaration         Kind = "EnumDeclaration"
	KindDelegateDeclaration     Kind = "DelegateDeclaration"
	KindImplicitParameter       Kind = "ImplicitParameter"
	KindFileScopedNamespaceDecl Kind = "FileScopedNamespaceDeclaration"
)

// Statements and clauses
const (
	KindBlock                      Kind = "Block"
	KindLocalDeclarationStatement  Kind = "LocalDeclarationStatement"
	KindVariableDeclaration        Kind = "VariableDeclaration"
	KindVariableDeclarator         Kind = "VariableDeclarator"
	KindEqualsValueClause          Kind = "EqualsValueClause"
	KindLabeledStatement           Kind = "LabeledStatement"
	KindEmptyStatement             Kind = "EmptyStatement"
	KindGotoStatement              Kind = "GotoStatement"
	KindGotoCaseStatement          Kind = "GotoCaseStatement"
	KindGotoDefaultStatement       Kind = "GotoDefaultStatement"
	KindBreakStatement             Kind = "BreakStatement"
	KindContinueStatement          Kind = "ContinueStatement"
	KindReturnStatement            Kind = "ReturnStatement"
	KindThrowStatement             Kind = "ThrowStatement"
	KindExpressionStatement        Kind = "ExpressionStatement"
	KindYieldBreakStatement        Kind = "YieldBreakStatement"
	KindYieldReturnStatement       Kind = "YieldReturnStatement"
	KindDoStatement                Kind = "DoStatement"
	KindWhileStatement             Kind = "WhileStatement"
	KindForStatement               Kind = "ForStatement"
	KindForEachStatement           Kind = "ForEachStatement"
	KindUsingStatement             Kind = "UsingStatement"
	KindFixedStatement             Kind = "FixedStatement"
	KindCheckedStatement           Kind = "CheckedStatement"
	KindUncheckedStatement         Kind = "UncheckedStatement"
	KindUnsafeStatement            Kind = "UnsafeStatement"
	KindLockStatement              Kind = "LockStatement"
	KindIfStatement                Kind = "IfStatement"
	KindElseClause                 Kind = "ElseClause"
	KindSwitchStatement            Kind = "SwitchStatement"
	KindSwitchSection              Kind = "SwitchSection"
	KindCaseSwitchLabel            Kind = "CaseSwitchLabel"
	KindDefaultSwitchLabel         Kind = "DefaultSwitchLabel"
	KindTryStatement               Kind = "TryStatement"
	KindCatchClause                Kind = "CatchClause"
	KindCatchDeclaration           Kind = "CatchDeclaration"
	KindCatchFilterClause          Kind = "CatchFilterClause"
	KindFinallyClause              Kind = "FinallyClause"
	KindGlobalStatement            Kind = "GlobalStatement"
	KindCasePatternSwitchLabel     Kind = "CasePatternSwitchLabel"
	KindWhenClause                 Kind = "WhenClause"
	KindSwitchExpression           Kind = "SwitchExpression"
	KindSwitchExpressionArm        Kind = "SwitchExpressionArm"
)

// Lambdas and queries
const (
	KindParenthesizedLambdaExpression Kind = "ParenthesizedLambdaExpression"
	KindSimpleLambdaExpression        Kind = "SimpleLambdaExpression"
	KindAnonymousMethodExpression     Kind = "AnonymousMethodExpression"
	KindQueryExpression               Kind = "QueryExpression"
	KindQueryBody                     Kind = "QueryBody"
	KindQueryContinuation             Kind = "QueryContinuation"
	KindFromClause                    Kind = "FromClause"
	KindLetClause                     Kind = "LetClause"
	KindWhereClause                   Kind = "WhereClause"
	KindJoinClause                    Kind = "JoinClause"
	KindJoinIntoClause                Kind = "JoinIntoClause"
	KindOrderByClause                 Kind = "OrderByClause"
	KindAscendingOrdering             Kind = "AscendingOrdering"
	KindDescendingOrdering            Kind = "DescendingOrdering"
	KindSelectClause                  Kind = "SelectClause"
	KindGroupClause                   Kind = "GroupClause"
)

// Names and types
const (
	KindIdentifierName      Kind = "IdentifierName"
	KindQualifiedName       Kind = "QualifiedName"
	KindGenericName         Kind = "GenericName"
	KindTypeArgumentList    Kind = "TypeArgumentList"
	KindAliasQualifiedName  Kind = "AliasQualifiedName"
	KindPredefinedType      Kind = "PredefinedType"
	KindArrayType           Kind = "ArrayType"
	KindArrayRankSpecifier  Kind = "ArrayRankSpecifier"
	KindPointerType         Kind = "PointerType"
	KindNullableType        Kind = "NullableType"
	KindTupleType           Kind = "TupleType"
	KindOmittedTypeArgument Kind = "OmittedTypeArgument"
	KindNameColon           Kind = "NameColon"
)

// Expressions
const (
	KindStackAllocArrayCreationExpression Kind = "StackAllocArrayCreationExpression"
	KindOmittedArraySizeExpression        Kind = "OmittedArraySizeExpression"
	KindThisExpression                    Kind = "ThisExpression"
	KindBaseExpression                    Kind = "BaseExpression"
	KindArgListExpression                 Kind = "ArgListExpression"
	KindNumericLiteralExpression          Kind = "NumericLiteralExpression"
	KindStringLiteralExpression           Kind = "StringLiteralExpression"
	KindCharacterLiteralExpression        Kind = "CharacterLiteralExpression"
	KindTrueLiteralExpression             Kind = "TrueLiteralExpression"
	KindFalseLiteralExpression            Kind = "FalseLiteralExpression"
	KindNullLiteralExpression             Kind = "NullLiteralExpression"
	KindTypeOfExpression                  Kind = "TypeOfExpression"
	KindSizeOfExpression                  Kind = "SizeOfExpression"
	KindDefaultExpression                 Kind = "DefaultExpression"
	KindAwaitExpression                   Kind = "AwaitExpression"
	KindInvocationExpression              Kind = "InvocationExpression"
	KindArgumentList                      Kind = "ArgumentList"
	KindBracketedArgumentList             Kind = "BracketedArgumentList"
	KindArgument                          Kind = "Argument"
	KindSimpleMemberAccessExpression      Kind = "SimpleMemberAccessExpression"
	KindConditionalAccessExpression       Kind = "ConditionalAccessExpression"
	KindElementAccessExpression           Kind = "ElementAccessExpression"
	KindBinaryExpression                  Kind = "BinaryExpression"
	KindAssignmentExpression              Kind = "AssignmentExpression"
	KindPrefixUnaryExpression             Kind = "PrefixUnaryExpression"
	KindPostfixUnaryExpression            Kind = "PostfixUnaryExpression"
	KindConditionalExpression             Kind = "ConditionalExpression"
	KindParenthesizedExpression           Kind = "ParenthesizedExpression"
	KindCastExpression                    Kind = "CastExpression"
	KindAsExpression                      Kind = "AsExpression"
	KindIsExpression                      Kind = "IsExpression"
	KindIsPatternExpression               Kind = "IsPatternExpression"
	KindObjectCreationExpression          Kind = "ObjectCreationExpression"
	KindArrayCreationExpression           Kind = "ArrayCreationExpression"
	KindImplicitArrayCreationExpression   Kind = "ImplicitArrayCreationExpression"
	KindInitializerExpression             Kind = "InitializerExpression"
	KindDeclarationExpression             Kind = "DeclarationExpression"
	KindDeclarationPattern                Kind = "DeclarationPattern"
	KindVarPattern                        Kind = "VarPattern"
	KindParenthesizedVariableDesignation  Kind = "ParenthesizedVariableDesignation"
	KindInterpolatedStringExpression      Kind = "InterpolatedStringExpression"
	KindTupleExpression                   Kind = "TupleExpression"
	KindCheckedExpression                 Kind = "CheckedExpression"
	KindThrowExpression                   Kind = "ThrowExpression"
	KindRefExpression                     Kind = "RefExpression"
	KindAnonymousObjectCreationExpression Kind = "AnonymousObjectCreationExpression"
	KindWithExpression                    Kind = "WithExpression"
	KindRangeExpression                   Kind = "RangeExpression"
	KindMemberBindingExpression           Kind = "MemberBindingExpression"
	KindCollectionExpression              Kind = "CollectionExpression"
	KindMakeRefExpression                 Kind = "MakeRefExpression"
	KindRefTypeExpression                 Kind = "RefTypeExpression"
	KindRefValueExpression                Kind = "RefValueExpression"
)

// Tokens
const (
	KindIdentifierToken       Kind = "IdentifierToken"
	KindKeywordToken          Kind = "KeywordToken"
	KindPunctuationToken      Kind = "PunctuationToken"
	KindNumericLiteralToken   Kind = "NumericLiteralToken"
	KindStringLiteralToken    Kind = "StringLiteralToken"
	KindCharacterLiteralToken Kind = "CharacterLiteralToken"
)

// IsToken reports whether k is a token kind
func (k Kind) IsToken() bool {
	switch k {
	case KindIdentifierToken, KindKeywordToken, KindPunctuationToken,
		KindNumericLiteralToken, KindStringLiteralToken, KindCharacterLiteralToken:
		return true
	}
	return false
}

// IsExpression reports whether k is an expression kind.
// Names and types count as expressions, as they do in the host grammar.
func (k Kind) IsExpression() bool {
	switch k {
	case KindParenthesizedLambdaExpression, KindSimpleLambdaExpression, KindAnonymousMethodExpression,
		KindQueryExpression,
		KindIdentifierName, KindQualifiedName, KindGenericName, KindAliasQualifiedName,
		KindPredefinedType, KindArrayType, KindPointerType, KindNullableType, KindTupleType,
		KindOmittedTypeArgument,
		KindStackAllocArrayCreationExpression, KindOmittedArraySizeExpression,
		KindThisExpression, KindBaseExpression, KindArgListExpression,
		KindNumericLiteralExpression, KindStringLiteralExpression, KindCharacterLiteralExpression,
		KindTrueLiteralExpression, KindFalseLiteralExpression, KindNullLiteralExpression,
		KindTypeOfExpression, KindSizeOfExpression, KindDefaultExpression,
		KindAwaitExpression, KindInvocationExpression,
		KindSimpleMemberAccessExpression, KindConditionalAccessExpression, KindElementAccessExpression,
		KindBinaryExpression, KindAssignmentExpression,
		KindPrefixUnaryExpression, KindPostfixUnaryExpression,
		KindConditionalExpression, KindParenthesizedExpression,
		KindCastExpression, KindAsExpression, KindIsExpression, KindIsPatternExpression,
		KindObjectCreationExpression, KindArrayCreationExpression, KindImplicitArrayCreationExpression,
		KindInitializerExpression, KindDeclarationExpression, KindInterpolatedStringExpression,
		KindTupleExpression, KindCheckedExpression, KindThrowExpression, KindRefExpression,
		KindSwitchExpression, KindAnonymousObjectCreationExpression, KindWithExpression,
		KindRangeExpression, KindMemberBindingExpression, KindCollectionExpression,
		KindMakeRefExpression, KindRefTypeExpression, KindRefValueExpression:
		return true
	}
	return false
}

// IsStatement reports whether k is a statement kind
func (k Kind) IsStatement() bool {
	switch k {
	case KindBlock, KindLocalDeclarationStatement, KindLabeledStatement, KindEmptyStatement,
		KindGotoStatement, KindGotoCaseStatement, KindGotoDefaultStatement,
		KindBreakStatement, KindContinueStatement, KindReturnStatement, KindThrowStatement,
		KindExpressionStatement, KindYieldBreakStatement, KindYieldReturnStatement,
		KindDoStatement, KindWhileStatement, KindForStatement, KindForEachStatement,
		KindUsingStatement, KindFixedStatement, KindCheckedStatement, KindUncheckedStatement,
		KindUnsafeStatement, KindLockStatement, KindIfStatement, KindSwitchStatement,
		KindTryStatement, KindLocalFunctionStatement:
		return true
	}
	return false
}

// IsLambda reports whether k is one of the three lambda shapes
func (k Kind) IsLambda() bool {
	switch k {
	case KindParenthesizedLambdaExpression, KindSimpleLambdaExpression, KindAnonymousMethodExpression:
		return true
	}
	return false
}

// IsMemberWithBody reports whether nodes of kind k own a statement body
// that can be compared on its own
func (k Kind) IsMemberWithBody() bool {
	switch k {
	case KindMethodDeclaration, KindConstructorDeclaration, KindDestructorDeclaration,
		KindOperatorDeclaration, KindConversionOperator, KindAccessorDeclaration,
		KindLocalFunctionStatement:
		return true
	}
	return false
}
