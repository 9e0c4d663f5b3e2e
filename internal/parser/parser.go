package parser

import (
	"context"
	"fmt"
	"io"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

// Parser provides C# parsing using tree-sitter. A Parser is not safe for
// concurrent use.
type Parser struct {
	parser *sitter.Parser
}

// New creates a new Parser instance with the C# grammar
func New() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(csharp.GetLanguage())
	return &Parser{
		parser: parser,
	}
}

// ParseResult represents the result of parsing C# code
type ParseResult struct {
	Tree       *sitter.Tree
	RootNode   *sitter.Node
	SourceCode []byte
}

// SyntaxError describes the first erroneous node of a parse
type SyntaxError struct {
	Line   int
	Column int
	Text   string
}

func (e *SyntaxError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("syntax error at %d:%d", e.Line, e.Column)
	}
	return fmt.Sprintf("syntax error at %d:%d near %q", e.Line, e.Column, e.Text)
}

// Parse parses C# source code and returns the concrete syntax tree
func (p *Parser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		errNode := p.FirstError(rootNode)
		if errNode == nil {
			errNode = rootNode
		}
		start := errNode.StartPoint()
		return nil, fmt.Errorf("syntax errors found in source code: %w", &SyntaxError{
			Line:   int(start.Row) + 1,
			Column: int(start.Column) + 1,
			Text:   snippet(errNode.Content(source)),
		})
	}

	return &ParseResult{
		Tree:       tree,
		RootNode:   rootNode,
		SourceCode: source,
	}, nil
}

// ParseFile parses C# code from a reader
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*ParseResult, error) {
	source, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	return p.Parse(ctx, source)
}

// ParseSyntax parses the source and converts it into a syntax tree whose
// locations refer to file
func (p *Parser) ParseSyntax(ctx context.Context, source []byte, file string) (*syntax.Node, error) {
	result, err := p.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	return NewBuilderForFile(source, file).Build(result.Tree)
}

// WalkTree traverses the tree and calls the visitor function for each node
func (p *Parser) WalkTree(node *sitter.Node, visitor func(*sitter.Node) error) error {
	if err := visitor(node); err != nil {
		return err
	}

	childCount := int(node.ChildCount())
	for i := 0; i < childCount; i++ {
		child := node.Child(i)
		if err := p.WalkTree(child, visitor); err != nil {
			return err
		}
	}

	return nil
}

// FirstError returns the first error or missing node in source order
func (p *Parser) FirstError(node *sitter.Node) *sitter.Node {
	var found *sitter.Node
	errStop := fmt.Errorf("stop")

	_ = p.WalkTree(node, func(n *sitter.Node) error {
		if n.IsError() || n.IsMissing() {
			found = n
			return errStop
		}
		return nil
	})

	return found
}

// HasSyntaxErrors checks if the parsed tree contains any syntax errors
func (p *Parser) HasSyntaxErrors(node *sitter.Node) bool {
	return p.FirstError(node) != nil
}

func snippet(text string) string {
	const limit = 40
	runes := []rune(text)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return string(runes)
}
