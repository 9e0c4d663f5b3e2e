package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/internal/comparer"
	"github.com/ludo-technologies/eacdiff/internal/match"
	"github.com/ludo-technologies/eacdiff/internal/parser"
	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

const oldCalculator = `namespace App
{
    class Calculator
    {
        int Add(int a, int b)
        {
            return a + b;
        }

        int Twice(int x)
        {
            return x * 2;
        }

        void Removed()
        {
            Log();
        }
    }
}`

const newCalculator = `namespace App
{
    class Calculator
    {
        int Add(int a, int b)
        {
            return a + b;
        }

        int Twice(int x)
        {
            var y = x * 2;
            return y;
        }

        void Added()
        {
            Log();
        }
    }
}`

func newTestCompareService() *CompareServiceImpl {
	s := NewCompareService()
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func compareSources(t *testing.T, oldSource, newSource string, showUnchanged bool) *domain.CompareResponse {
	t.Helper()
	response, err := newTestCompareService().Compare(context.Background(), domain.CompareRequest{
		OldPath:       "old/Calculator.cs",
		NewPath:       "new/Calculator.cs",
		OldSource:     []byte(oldSource),
		NewSource:     []byte(newSource),
		ShowUnchanged: showUnchanged,
	})
	require.NoError(t, err)
	return response
}

func memberBySignature(t *testing.T, response *domain.CompareResponse, signature string) domain.MemberDiff {
	t.Helper()
	for _, member := range response.Members {
		if member.Signature == signature {
			return member
		}
	}
	require.Failf(t, "member not found", "%s in %v", signature, response.Members)
	return domain.MemberDiff{}
}

func TestCompareService_Summary(t *testing.T) {
	response := compareSources(t, oldCalculator, newCalculator, false)

	s := response.Summary
	assert.Equal(t, 4, s.TotalMembers)
	assert.Equal(t, 1, s.ModifiedMembers)
	assert.Equal(t, 1, s.UnchangedMembers)
	assert.Equal(t, 1, s.InsertedMembers)
	assert.Equal(t, 1, s.DeletedMembers)
	assert.Equal(t, 0, s.FailedMembers)
	assert.Positive(t, s.TotalEdits)
	assert.True(t, response.Changed())

	assert.Equal(t, "2026-01-02T03:04:05Z", response.GeneratedAt)
	assert.Equal(t, "old/Calculator.cs", response.OldPath)
	assert.Empty(t, response.Errors)
}

func TestCompareService_MemberOrder(t *testing.T) {
	response := compareSources(t, oldCalculator, newCalculator, false)

	var got []string
	for _, member := range response.Members {
		got = append(got, string(member.Status)+" "+member.Signature)
	}
	assert.Equal(t, []string{
		"modified App.Calculator.Twice(int)",
		"deleted App.Calculator.Removed()",
		"inserted App.Calculator.Added()",
	}, got)

	withUnchanged := compareSources(t, oldCalculator, newCalculator, true)
	require.Len(t, withUnchanged.Members, 4)
	assert.Equal(t, domain.MemberStatusUnchanged, withUnchanged.Members[0].Status)
	assert.Equal(t, "App.Calculator.Add(int,int)", withUnchanged.Members[0].Signature)
	assert.Zero(t, withUnchanged.Members[0].StructuralDistance)
	assert.Empty(t, withUnchanged.Members[0].Edits)
}

func TestCompareService_ModifiedMember(t *testing.T) {
	response := compareSources(t, oldCalculator, newCalculator, false)
	twice := memberBySignature(t, response, "App.Calculator.Twice(int)")

	assert.Equal(t, "App.Calculator.Twice", twice.Name)
	assert.Equal(t, string(syntax.KindMethodDeclaration), twice.Kind)
	assert.Positive(t, twice.StructuralDistance)
	require.NotEmpty(t, twice.Edits)

	inserts := 0
	for _, edit := range twice.Edits {
		switch edit.Kind {
		case domain.EditKindInsert:
			inserts++
			assert.Nil(t, edit.Old)
			require.NotNil(t, edit.New)
			assert.NotEmpty(t, edit.New.Label)
			assert.Positive(t, edit.New.StartLine)
		case domain.EditKindDelete:
			assert.Nil(t, edit.New)
		}
	}
	assert.Positive(t, inserts, "the new local declaration is inserted")
	assert.Equal(t, inserts, response.Summary.EditCounts[domain.EditKindInsert])

	require.NotNil(t, twice.Old)
	require.NotNil(t, twice.New)
	assert.Equal(t, 10, twice.Old.StartLine)
}

func TestCompareService_InsertedAndDeleted(t *testing.T) {
	response := compareSources(t, oldCalculator, newCalculator, false)

	removed := memberBySignature(t, response, "App.Calculator.Removed()")
	assert.Equal(t, domain.MemberStatusDeleted, removed.Status)
	require.NotNil(t, removed.Old)
	assert.Nil(t, removed.New)
	assert.Equal(t, 15, removed.Old.StartLine)

	added := memberBySignature(t, response, "App.Calculator.Added()")
	assert.Equal(t, domain.MemberStatusInserted, added.Status)
	assert.Nil(t, added.Old)
	require.NotNil(t, added.New)
	assert.Contains(t, added.New.Snippet, "Added")
}

func TestCompareService_Lambdas(t *testing.T) {
	oldSource := `class C
{
    void M()
    {
        Action a = () => { First(); };
        Run(a);
    }
}`
	newSource := `class C
{
    void M()
    {
        Action a = () => { Second(); };
        Run(a);
    }
}`
	response := compareSources(t, oldSource, newSource, false)
	member := memberBySignature(t, response, "C.M()")

	assert.Equal(t, domain.MemberStatusModified, member.Status)
	require.Len(t, member.Lambdas, 1)
	lambda := member.Lambdas[0]
	require.NotNil(t, lambda.Old)
	require.NotNil(t, lambda.New)
	assert.Equal(t, string(syntax.KindParenthesizedLambdaExpression), lambda.New.Kind)
	assert.NotEmpty(t, lambda.Edits)
}

func TestCompareService_Unchanged(t *testing.T) {
	response := compareSources(t, oldCalculator, oldCalculator, false)

	assert.False(t, response.Changed())
	assert.Empty(t, response.Members)
	assert.Equal(t, 3, response.Summary.UnchangedMembers)
	assert.Zero(t, response.Summary.TotalEdits)
}

func TestCompareService_DuplicateSignatures(t *testing.T) {
	source := `partial class C { void M() { A(); } }
partial class C { void M() { B(); } }`
	response := compareSources(t, source, source, true)

	require.Len(t, response.Members, 2)
	assert.Equal(t, domain.MemberStatusUnchanged, response.Members[0].Status)
	assert.Equal(t, domain.MemberStatusUnchanged, response.Members[1].Status)
	require.Len(t, response.Warnings, 2)
	assert.Contains(t, response.Warnings[0], "C.M() 2 times")
}

func TestCompareService_NoMembers(t *testing.T) {
	response := compareSources(t, "class C { int x; }", "class C { int y; }", false)
	assert.Equal(t, 0, response.Summary.TotalMembers)
	assert.Contains(t, response.Warnings, "no members with a body found")
}

func TestCompareService_Errors(t *testing.T) {
	s := newTestCompareService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  domain.CompareRequest
		code string
	}{
		{
			name: "no input",
			req:  domain.CompareRequest{NewSource: []byte("class C { }")},
			code: domain.ErrCodeInvalidInput,
		},
		{
			name: "missing file",
			req:  domain.CompareRequest{OldPath: filepath.Join(t.TempDir(), "missing.cs"), NewSource: []byte("class C { }")},
			code: domain.ErrCodeFileNotFound,
		},
		{
			name: "syntax error",
			req:  domain.CompareRequest{OldSource: []byte("class C {"), NewSource: []byte("class C { }")},
			code: domain.ErrCodeParseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Compare(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, domain.ErrorCode(err))
		})
	}
}

func TestCompareService_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestCompareService().Compare(ctx, domain.CompareRequest{
		OldSource: []byte(oldCalculator),
		NewSource: []byte(newCalculator),
	})
	require.Error(t, err)
}

func TestCompareService_ReadsFiles(t *testing.T) {
	oldDir := t.TempDir()
	newDir := t.TempDir()
	oldPath := createTestFile(t, oldDir, "Calculator.cs", oldCalculator)
	newPath := createTestFile(t, newDir, "Calculator.cs", newCalculator)

	response, err := newTestCompareService().Compare(context.Background(), domain.CompareRequest{
		OldPath: oldPath,
		NewPath: newPath,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, response.Summary.ModifiedMembers)
}

func TestCompareService_ParseCache(t *testing.T) {
	dir := t.TempDir()
	oldPath := createTestFile(t, dir, "Old.cs", oldCalculator)
	newPath := createTestFile(t, dir, "New.cs", newCalculator)
	brokenPath := createTestFile(t, dir, "Broken.cs", "class C {")

	cache := PopulateParseCache(context.Background(), NewFileReader(), []string{oldPath, newPath, brokenPath}, 2)
	assert.Equal(t, 3, cache.Len())

	s := newTestCompareService()
	s.SetParseCache(cache)

	response, err := s.Compare(context.Background(), domain.CompareRequest{OldPath: oldPath, NewPath: newPath})
	require.NoError(t, err)
	assert.Equal(t, 1, response.Summary.DeletedMembers)

	_, err = s.Compare(context.Background(), domain.CompareRequest{OldPath: brokenPath, NewPath: newPath})
	assert.Equal(t, domain.ErrCodeParseError, domain.ErrorCode(err))
}

func TestCompareService_CachedFailuresKeepDomainCodes(t *testing.T) {
	dir := t.TempDir()
	newPath := createTestFile(t, dir, "New.cs", newCalculator)
	cancelledPath := filepath.Join(dir, "Cancelled.cs")
	missingPath := filepath.Join(dir, "Missing.cs")

	cache := NewParseCache()
	cache.Put(cancelledPath, &FileParseResult{ParseErr: context.Canceled})
	cache.Put(missingPath, &FileParseResult{ParseErr: domain.NewFileNotFoundError(missingPath, os.ErrNotExist)})
	cache.Seal()

	s := newTestCompareService()
	s.SetParseCache(cache)

	_, err := s.Compare(context.Background(), domain.CompareRequest{OldPath: cancelledPath, NewPath: newPath})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeParseError, domain.ErrorCode(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), cancelledPath)

	_, err = s.Compare(context.Background(), domain.CompareRequest{OldPath: missingPath, NewPath: newPath})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
}

func TestCompareService_InvariantFailure(t *testing.T) {
	s := newTestCompareService()

	diff, err := s.compareMember(
		parser.Member{Name: "C.M", Signature: "C.M()"},
		parser.Member{Name: "C.M", Signature: "C.M()"},
		match.Options{},
	)
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeInvariantBroken, domain.ErrorCode(err))
	assert.True(t, errors.Is(err, comparer.ErrInvariantBroken))
	assert.Equal(t, domain.MemberStatusFailed, diff.Status)
	assert.NotEmpty(t, diff.Error)
}

func TestMemberKeys(t *testing.T) {
	members := []parser.Member{
		{Signature: "C.M()"},
		{Signature: "C.N()"},
		{Signature: "C.M()"},
	}
	assert.Equal(t, []string{"C.M()", "C.N()", "C.M()#1"}, memberKeys(members))
}

func TestSnippet(t *testing.T) {
	root, err := parser.New().ParseSyntax(context.Background(), []byte(`class C { void M() { Console.WriteLine(items[0], i++); } }`), "C.cs")
	require.NoError(t, err)
	members := parser.Members(root)
	require.Len(t, members, 1)

	body := members[0].Body
	statements := body.Fields(syntax.RoleStatement)
	require.Len(t, statements, 1)

	assert.Equal(t, "Console.WriteLine(items[0], i++);", Snippet(statements[0], 0))
	assert.Equal(t, "Console.Wr...", Snippet(statements[0], 10))
}
