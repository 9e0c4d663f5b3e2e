package parser

import (
	"context"
	"errors"
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

const programSource = `using System;

namespace App
{
    class Program
    {
        static int Sum(int[] values)
        {
            int total = 0;
            for (int i = 0; i < values.Length; i++)
            {
                total += values[i];
            }
            return total;
        }
    }
}`

func TestNew(t *testing.T) {
	parser := New()
	if parser == nil {
		t.Fatal("New() returned nil")
	}
	if parser.parser == nil {
		t.Fatal("parser field is nil")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{
			name:    "class with method",
			source:  `class C { void M() { Console.WriteLine("Hello"); } }`,
			wantErr: false,
		},
		{
			name:    "complex code",
			source:  programSource,
			wantErr: false,
		},
		{
			name:    "empty source",
			source:  "",
			wantErr: false,
		},
		{
			name:    "syntax error",
			source:  `class C { void M( { } }`,
			wantErr: true,
		},
		{
			name:    "incomplete code",
			source:  `class C { void M() {`,
			wantErr: true,
		},
	}

	parser := New()
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parser.Parse(ctx, []byte(tt.source))

			if tt.wantErr {
				if err == nil {
					t.Errorf("Parse() expected error but got nil")
				}
				var syntaxErr *SyntaxError
				if !errors.As(err, &syntaxErr) {
					t.Errorf("Parse() error %v is not a *SyntaxError", err)
				} else if syntaxErr.Line < 1 {
					t.Errorf("SyntaxError.Line = %d, want a 1-based line", syntaxErr.Line)
				}
				return
			}

			if err != nil {
				t.Errorf("Parse() unexpected error: %v", err)
				return
			}

			if result == nil {
				t.Fatal("Parse() returned nil result")
			}
			if result.Tree == nil {
				t.Fatal("ParseResult.Tree is nil")
			}
			if result.RootNode == nil {
				t.Fatal("ParseResult.RootNode is nil")
			}
			if string(result.SourceCode) != tt.source {
				t.Errorf("ParseResult.SourceCode mismatch: got %q, want %q",
					string(result.SourceCode), tt.source)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "valid C# code",
			content: "class C { }",
			wantErr: false,
		},
		{
			name:    "invalid syntax",
			content: "class C {",
			wantErr: true,
		},
	}

	parser := New()
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.content)
			result, err := parser.ParseFile(ctx, reader)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFile() expected error but got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("ParseFile() unexpected error: %v", err)
				return
			}

			if result == nil {
				t.Fatal("ParseFile() returned nil result")
			}
		})
	}
}

func TestWalkTree(t *testing.T) {
	parser := New()
	ctx := context.Background()

	result, err := parser.Parse(ctx, []byte(programSource))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	nodeCount := 0
	methods := 0
	err = parser.WalkTree(result.RootNode, func(node *sitter.Node) error {
		nodeCount++
		if node.Type() == "method_declaration" {
			methods++
		}
		return nil
	})

	if err != nil {
		t.Errorf("WalkTree() error: %v", err)
	}
	if nodeCount == 0 {
		t.Error("WalkTree() visited 0 nodes")
	}
	if methods != 1 {
		t.Errorf("WalkTree() found %d methods, want 1", methods)
	}
}

func TestHasSyntaxErrors(t *testing.T) {
	parser := New()
	ctx := context.Background()

	tests := []struct {
		name      string
		source    string
		hasErrors bool
	}{
		{
			name:      "valid code",
			source:    "class C { void M() { } }",
			hasErrors: false,
		},
		{
			name:      "syntax error",
			source:    "class C { void M( { } }",
			hasErrors: true,
		},
		{
			name:      "incomplete code",
			source:    "class C { void M() { if (x) }",
			hasErrors: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _ := parser.parser.ParseCtx(ctx, nil, []byte(tt.source))
			rootNode := tree.RootNode()

			hasErrors := parser.HasSyntaxErrors(rootNode)
			if hasErrors != tt.hasErrors {
				t.Errorf("HasSyntaxErrors() = %v, want %v", hasErrors, tt.hasErrors)
			}
		})
	}
}

func TestSnippet(t *testing.T) {
	if got := snippet("short"); got != "short" {
		t.Errorf("snippet() = %q, want %q", got, "short")
	}
	long := strings.Repeat("x", 50)
	if got := snippet(long); got != strings.Repeat("x", 40)+"..." {
		t.Errorf("snippet() = %q, want 40 runes and an ellipsis", got)
	}
}

func BenchmarkParse(b *testing.B) {
	parser := New()
	ctx := context.Background()
	source := []byte(programSource)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = parser.Parse(ctx, source)
	}
}

func BenchmarkParseSyntax(b *testing.B) {
	parser := New()
	ctx := context.Background()
	source := []byte(programSource)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = parser.ParseSyntax(ctx, source, "Program.cs")
	}
}
