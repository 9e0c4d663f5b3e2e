package parser

import (
	"fmt"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

// Builder converts tree-sitter C# trees into syntax trees.
//
// Conversion is positional: children are recognised by their node type and
// the tokens around them rather than by grammar field names, which differ
// between grammar releases. Node types without a dedicated conversion keep
// their tree-sitter type as kind and have their children converted, so
// labeled statements nested in unknown constructs are still found.
type Builder struct {
	source []byte
	file   string
}

// NewBuilder creates a new syntax tree builder
func NewBuilder(source []byte) *Builder {
	return &Builder{source: source}
}

// NewBuilderForFile creates a builder whose locations refer to file
func NewBuilderForFile(source []byte, file string) *Builder {
	return &Builder{source: source, file: file}
}

// Build converts a tree-sitter tree to a syntax tree
func (b *Builder) Build(tree *sitter.Tree) (*syntax.Node, error) {
	if tree == nil {
		return nil, fmt.Errorf("tree is nil")
	}

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("root node is nil")
	}

	return b.buildNode(rootNode), nil
}

// genericKinds maps tree-sitter types whose children need no roles
var genericKinds = map[string]syntax.Kind{
	"compilation_unit":                      syntax.KindCompilationUnit,
	"declaration_list":                      syntax.KindDeclarationList,
	"using_directive":                       syntax.KindUsingDirective,
	"field_declaration":                     syntax.KindFieldDeclaration,
	"event_field_declaration":               syntax.KindEventDeclaration,
	"event_declaration":                     syntax.KindEventDeclaration,
	"delegate_declaration":                  syntax.KindDelegateDeclaration,
	"attribute_list":                        syntax.KindAttributeList,
	"type_parameter_list":                   syntax.KindTypeParameterList,
	"bracketed_parameter_list":              syntax.KindBracketedParameterList,
	"accessor_list":                         syntax.KindAccessorList,
	"binary_expression":                     syntax.KindBinaryExpression,
	"assignment_expression":                 syntax.KindAssignmentExpression,
	"prefix_unary_expression":               syntax.KindPrefixUnaryExpression,
	"postfix_unary_expression":              syntax.KindPostfixUnaryExpression,
	"parenthesized_expression":              syntax.KindParenthesizedExpression,
	"conditional_expression":                syntax.KindConditionalExpression,
	"element_access_expression":             syntax.KindElementAccessExpression,
	"element_binding_expression":            syntax.KindElementAccessExpression,
	"bracketed_argument_list":               syntax.KindBracketedArgumentList,
	"object_creation_expression":            syntax.KindObjectCreationExpression,
	"implicit_object_creation_expression":   syntax.KindObjectCreationExpression,
	"array_creation_expression":             syntax.KindArrayCreationExpression,
	"implicit_array_creation_expression":    syntax.KindImplicitArrayCreationExpression,
	"initializer_expression":                syntax.KindInitializerExpression,
	"cast_expression":                       syntax.KindCastExpression,
	"as_expression":                         syntax.KindAsExpression,
	"is_expression":                         syntax.KindIsExpression,
	"is_pattern_expression":                 syntax.KindIsPatternExpression,
	"interpolated_string_expression":        syntax.KindInterpolatedStringExpression,
	"tuple_expression":                      syntax.KindTupleExpression,
	"checked_expression":                    syntax.KindCheckedExpression,
	"throw_expression":                      syntax.KindThrowExpression,
	"ref_expression":                        syntax.KindRefExpression,
	"conditional_access_expression":         syntax.KindConditionalAccessExpression,
	"stackalloc_array_creation_expression":  syntax.KindStackAllocArrayCreationExpression,
	"stack_alloc_array_creation_expression": syntax.KindStackAllocArrayCreationExpression,
	"switch_expression":                     syntax.KindSwitchExpression,
	"switch_expression_arm":                 syntax.KindSwitchExpressionArm,
	"typeof_expression":                     syntax.KindTypeOfExpression,
	"sizeof_expression":                     syntax.KindSizeOfExpression,
	"default_expression":                    syntax.KindDefaultExpression,
	"anonymous_object_creation_expression":  syntax.KindAnonymousObjectCreationExpression,
	"with_expression":                       syntax.KindWithExpression,
	"range_expression":                      syntax.KindRangeExpression,
	"member_binding_expression":             syntax.KindMemberBindingExpression,
	"collection_expression":                 syntax.KindCollectionExpression,
	"makeref_expression":                    syntax.KindMakeRefExpression,
	"make_ref_expression":                   syntax.KindMakeRefExpression,
	"reftype_expression":                    syntax.KindRefTypeExpression,
	"ref_type_expression":                   syntax.KindRefTypeExpression,
	"refvalue_expression":                   syntax.KindRefValueExpression,
	"ref_value_expression":                  syntax.KindRefValueExpression,
	"implicit_stackalloc_expression":        syntax.KindStackAllocArrayCreationExpression,
	"qualified_name":                        syntax.KindQualifiedName,
	"generic_name":                          syntax.KindGenericName,
	"type_argument_list":                    syntax.KindTypeArgumentList,
	"alias_qualified_name":                  syntax.KindAliasQualifiedName,
	"array_type":                            syntax.KindArrayType,
	"array_rank_specifier":                  syntax.KindArrayRankSpecifier,
	"nullable_type":                         syntax.KindNullableType,
	"pointer_type":                          syntax.KindPointerType,
	"tuple_type":                            syntax.KindTupleType,
	"name_colon":                            syntax.KindNameColon,
	"when_clause":                           syntax.KindWhenClause,
	"join_into_clause":                      syntax.KindJoinIntoClause,
	"break_statement":                       syntax.KindBreakStatement,
	"continue_statement":                    syntax.KindContinueStatement,
	"empty_statement":                       syntax.KindEmptyStatement,
	"global_statement":                      syntax.KindGlobalStatement,
}

// buildNode converts a node found in any position
func (b *Builder) buildNode(ts *sitter.Node) *syntax.Node {
	if ts == nil {
		return nil
	}
	if !ts.IsNamed() {
		return b.token(ts)
	}

	nodeType := ts.Type()
	switch nodeType {
	// Declarations
	case "namespace_declaration", "file_scoped_namespace_declaration":
		return b.buildNamespace(ts)
	case "class_declaration":
		return b.buildTypeDeclaration(syntax.KindClassDeclaration, ts)
	case "struct_declaration", "record_struct_declaration":
		return b.buildTypeDeclaration(syntax.KindStructDeclaration, ts)
	case "interface_declaration":
		return b.buildTypeDeclaration(syntax.KindInterfaceDeclaration, ts)
	case "record_declaration":
		return b.buildTypeDeclaration(syntax.KindRecordDeclaration, ts)
	case "enum_declaration":
		return b.buildTypeDeclaration(syntax.KindEnumDeclaration, ts)
	case "method_declaration":
		return b.buildMember(syntax.KindMethodDeclaration, ts)
	case "constructor_declaration":
		return b.buildMember(syntax.KindConstructorDeclaration, ts)
	case "destructor_declaration":
		return b.buildMember(syntax.KindDestructorDeclaration, ts)
	case "operator_declaration":
		return b.buildMember(syntax.KindOperatorDeclaration, ts)
	case "conversion_operator_declaration":
		return b.buildMember(syntax.KindConversionOperator, ts)
	case "local_function_statement":
		return b.buildMember(syntax.KindLocalFunctionStatement, ts)
	case "property_declaration":
		return b.buildProperty(syntax.KindPropertyDeclaration, ts)
	case "indexer_declaration":
		return b.buildProperty(syntax.KindIndexerDeclaration, ts)
	case "accessor_declaration":
		return b.buildAccessor(ts)
	case "arrow_expression_clause":
		return b.buildArrowExpressionClause(ts)
	case "parameter_list", "implicit_parameter_list":
		return b.buildParameterList(ts)
	case "parameter", "implicit_parameter":
		return b.buildParameter(ts)
	case "modifier":
		return b.buildModifier(ts)

	// Statements
	case "block":
		return b.buildBlock(ts)
	case "local_declaration_statement":
		return b.buildLocalDeclaration(ts)
	case "variable_declaration":
		return b.buildVariableDeclaration(ts)
	case "variable_declarator":
		return b.buildVariableDeclarator(ts)
	case "equals_value_clause":
		return b.buildEqualsValueClause(ts)
	case "expression_statement":
		return b.buildWithRoles(syntax.KindExpressionStatement, ts, syntax.RoleExpression)
	case "return_statement":
		return b.buildWithRoles(syntax.KindReturnStatement, ts, syntax.RoleExpression)
	case "throw_statement":
		return b.buildWithRoles(syntax.KindThrowStatement, ts, syntax.RoleExpression)
	case "yield_statement":
		return b.buildYield(ts)
	case "goto_statement":
		return b.buildGoto(ts)
	case "labeled_statement":
		return b.buildLabeled(ts)
	case "if_statement":
		return b.buildIf(ts)
	case "while_statement":
		return b.buildHeaderStatement(syntax.KindWhileStatement, ts, syntax.RoleCondition)
	case "do_statement":
		return b.buildDo(ts)
	case "for_statement":
		return b.buildFor(ts)
	case "for_each_statement", "foreach_statement":
		return b.buildForEach(ts)
	case "using_statement":
		return b.buildUsing(ts)
	case "fixed_statement":
		return b.buildHeaderStatement(syntax.KindFixedStatement, ts, syntax.RoleDeclaration)
	case "lock_statement":
		return b.buildHeaderStatement(syntax.KindLockStatement, ts, syntax.RoleExpression)
	case "checked_statement":
		return b.buildChecked(ts)
	case "unsafe_statement":
		return b.buildWithRoles(syntax.KindUnsafeStatement, ts, syntax.RoleBlock)
	case "try_statement":
		return b.buildTry(ts)
	case "catch_clause":
		return b.buildCatch(ts)
	case "catch_declaration":
		return b.buildCatchDeclaration(ts)
	case "catch_filter_clause":
		return b.buildCatchFilter(ts)
	case "finally_clause":
		return b.buildWithRoles(syntax.KindFinallyClause, ts, syntax.RoleBlock)
	case "switch_statement":
		return b.buildSwitch(ts)
	case "switch_section":
		return b.buildSwitchSection(ts)
	case "case_switch_label":
		return b.buildWithRoles(syntax.KindCaseSwitchLabel, ts, syntax.RoleValue)
	case "case_pattern_switch_label":
		return b.buildWithRoles(syntax.KindCasePatternSwitchLabel, ts, syntax.RoleValue)
	case "default_switch_label":
		return b.buildGeneric(syntax.KindDefaultSwitchLabel, ts)

	// Lambdas and queries
	case "lambda_expression":
		return b.buildLambda(ts)
	case "anonymous_method_expression":
		return b.buildAnonymousMethod(ts)
	case "query_expression":
		return b.buildQuery(ts)
	case "query_body":
		return b.buildQueryBody(ts, b.children(ts))
	case "query_continuation":
		return b.buildQueryContinuation(ts)
	case "from_clause":
		return b.buildFromClause(ts)
	case "let_clause":
		return b.buildLetClause(ts)
	case "where_clause":
		return b.buildWithRoles(syntax.KindWhereClause, ts, syntax.RoleCondition)
	case "join_clause":
		return b.buildJoinClause(ts)
	case "order_by_clause":
		return b.buildOrderBy(ts)
	case "ordering":
		return b.buildOrdering(ts, b.children(ts))
	case "select_clause":
		return b.buildWithRoles(syntax.KindSelectClause, ts, syntax.RoleExpression)
	case "group_clause":
		return b.buildGroupClause(ts)

	// Expressions
	case "identifier":
		return b.buildIdentifierName(ts)
	case "implicit_type":
		return b.buildIdentifierName(ts)
	case "predefined_type":
		return b.wrapText(syntax.KindPredefinedType, syntax.KindKeywordToken, ts)
	case "integer_literal", "real_literal":
		return b.wrapText(syntax.KindNumericLiteralExpression, syntax.KindNumericLiteralToken, ts)
	case "string_literal", "verbatim_string_literal", "raw_string_literal":
		return b.wrapText(syntax.KindStringLiteralExpression, syntax.KindStringLiteralToken, ts)
	case "character_literal":
		return b.wrapText(syntax.KindCharacterLiteralExpression, syntax.KindCharacterLiteralToken, ts)
	case "boolean_literal":
		if b.text(ts) == "true" {
			return b.wrapText(syntax.KindTrueLiteralExpression, syntax.KindKeywordToken, ts)
		}
		return b.wrapText(syntax.KindFalseLiteralExpression, syntax.KindKeywordToken, ts)
	case "null_literal":
		return b.wrapText(syntax.KindNullLiteralExpression, syntax.KindKeywordToken, ts)
	case "this_expression", "this":
		return b.wrapText(syntax.KindThisExpression, syntax.KindKeywordToken, ts)
	case "base_expression", "base":
		return b.wrapText(syntax.KindBaseExpression, syntax.KindKeywordToken, ts)
	case "await_expression":
		return b.buildWithRoles(syntax.KindAwaitExpression, ts, syntax.RoleExpression)
	case "invocation_expression":
		return b.buildInvocation(ts)
	case "argument_list":
		return b.buildArgumentList(ts)
	case "argument":
		return b.buildArgument(ts)
	case "member_access_expression":
		return b.buildMemberAccess(ts)
	case "assignment_operator":
		return b.token(ts)
	case "declaration_expression":
		return b.buildDeclaration(syntax.KindDeclarationExpression, ts)
	case "declaration_pattern":
		return b.buildDeclaration(syntax.KindDeclarationPattern, ts)
	case "var_pattern":
		return b.buildDeclaration(syntax.KindVarPattern, ts)
	}

	if kind, ok := genericKinds[nodeType]; ok {
		return b.buildGeneric(kind, ts)
	}

	if ts.ChildCount() == 0 {
		return b.token(ts)
	}
	return b.buildGeneric(syntax.Kind(nodeType), ts)
}

// ---- helpers ----

func (b *Builder) text(ts *sitter.Node) string {
	return ts.Content(b.source)
}

func (b *Builder) location(ts *sitter.Node) syntax.Location {
	start, end := ts.StartPoint(), ts.EndPoint()
	return syntax.Location{
		File:      b.file,
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column) + 1,
	}
}

// span covers the source from the start of first to the end of last
func (b *Builder) span(first, last *sitter.Node) syntax.Location {
	loc := b.location(first)
	end := b.location(last)
	loc.EndLine, loc.EndCol = end.EndLine, end.EndCol
	return loc
}

func (b *Builder) newNode(kind syntax.Kind, ts *sitter.Node) *syntax.Node {
	n := syntax.NewNode(kind)
	n.Location = b.location(ts)
	return n
}

// children returns the children of a node without comments and
// preprocessor directives
func (b *Builder) children(ts *sitter.Node) []*sitter.Node {
	count := int(ts.ChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := ts.Child(i)
		if child == nil || isExtra(child) {
			continue
		}
		children = append(children, child)
	}
	return children
}

func isExtra(ts *sitter.Node) bool {
	nodeType := ts.Type()
	return nodeType == "comment" || strings.HasPrefix(nodeType, "preproc_")
}

// isToken reports whether a child is an anonymous token with the given text
func (b *Builder) isToken(ts *sitter.Node, text string) bool {
	return !ts.IsNamed() && b.text(ts) == text
}

// token converts a leaf into a token
func (b *Builder) token(ts *sitter.Node) *syntax.Node {
	text := b.text(ts)
	kind := syntax.KindPunctuationToken
	switch ts.Type() {
	case "identifier":
		kind = syntax.KindIdentifierToken
	case "integer_literal", "real_literal":
		kind = syntax.KindNumericLiteralToken
	case "string_literal", "verbatim_string_literal", "raw_string_literal":
		kind = syntax.KindStringLiteralToken
	case "character_literal":
		kind = syntax.KindCharacterLiteralToken
	default:
		if isWord(text) {
			kind = syntax.KindKeywordToken
		}
	}
	tok := syntax.NewToken(kind, text)
	tok.Location = b.location(ts)
	return tok
}

func isWord(text string) bool {
	if text == "" {
		return false
	}
	for i, r := range text {
		if !unicode.IsLetter(r) && r != '_' && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

// wrapText creates a node holding the whole text of ts as one token
func (b *Builder) wrapText(kind, tokenKind syntax.Kind, ts *sitter.Node) *syntax.Node {
	tok := syntax.NewToken(tokenKind, b.text(ts))
	tok.Location = b.location(ts)
	n := b.newNode(kind, ts)
	n.AddChild(tok)
	return n
}

func (b *Builder) buildIdentifierName(ts *sitter.Node) *syntax.Node {
	tok := syntax.NewToken(syntax.KindIdentifierToken, b.text(ts))
	tok.Location = b.location(ts)
	n := b.newNode(syntax.KindIdentifierName, ts)
	n.AddChild(tok)
	return n
}

// identifierToken converts an identifier leaf into a token with a role
func (b *Builder) identifierToken(ts *sitter.Node, role syntax.Role) *syntax.Node {
	tok := syntax.NewToken(syntax.KindIdentifierToken, b.text(ts))
	tok.Location = b.location(ts)
	return tok.WithRole(role)
}

// buildGeneric converts every child without assigning roles
func (b *Builder) buildGeneric(kind syntax.Kind, ts *sitter.Node) *syntax.Node {
	n := b.newNode(kind, ts)
	for _, child := range b.children(ts) {
		n.AddChild(b.buildNode(child))
	}
	return n
}

// buildWithRoles gives the named children the roles in order. Children
// beyond the roles get no role.
func (b *Builder) buildWithRoles(kind syntax.Kind, ts *sitter.Node, roles ...syntax.Role) *syntax.Node {
	n := b.newNode(kind, ts)
	next := 0
	for _, child := range b.children(ts) {
		converted := b.buildNode(child)
		if child.IsNamed() && child.Type() != "attribute_list" && next < len(roles) {
			converted.WithRole(roles[next])
			next++
		}
		n.AddChild(converted)
	}
	return n
}

func (b *Builder) buildModifier(ts *sitter.Node) *syntax.Node {
	return b.wrapText(syntax.KindModifier, syntax.KindKeywordToken, ts)
}

// isAsync reports whether a lambda child is the async modifier
func (b *Builder) isAsync(ts *sitter.Node) bool {
	return b.text(ts) == "async" && (!ts.IsNamed() || ts.Type() == "modifier")
}
