// Package parser provides C# code parsing capabilities using tree-sitter.
//
// This package wraps the tree-sitter Go bindings to parse C# source code and
// converts the concrete syntax tree into the syntax trees compared by the
// comparer package. It also enumerates the members of a file whose bodies
// can be compared on their own.
//
// Key features:
//   - Parsing with the tree-sitter C# grammar
//   - Syntax error detection with the position of the first error
//   - Positional conversion that tolerates differences between grammar
//     releases
//   - Member enumeration keyed by a signature that is stable across edits
//
// Basic usage:
//
//	p := parser.New()
//	root, err := p.ParseSyntax(ctx, []byte("class C { void M() { } }"), "C.cs")
//	if err != nil {
//	    // Handle parsing error
//	}
//	for _, member := range parser.Members(root) {
//	    // member.Body is the block or expression body of the member
//	}
package parser
