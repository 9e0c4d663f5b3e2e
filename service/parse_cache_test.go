package service

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

func TestParseCache_PutAfterSeal(t *testing.T) {
	cache := NewParseCache()
	cache.Put("a.cs", &FileParseResult{Content: []byte("a")})
	cache.Seal()
	cache.Put("b.cs", &FileParseResult{Content: []byte("b")})

	assert.Equal(t, 1, cache.Len())
	_, ok := cache.Get("b.cs")
	assert.False(t, ok)

	result, ok := cache.Get("a.cs")
	require.True(t, ok)
	assert.Equal(t, []byte("a"), result.Content)
}

func TestParseCache_NilReceiver(t *testing.T) {
	var cache *ParseCache
	result, ok := cache.Get("a.cs")
	assert.False(t, ok)
	assert.Nil(t, result)
}

func TestPopulateParseCache(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		createTestFile(t, dir, "A.cs", "class A { void M() { } }"),
		createTestFile(t, dir, "B.cs", "class B { void N() { Run(); } }"),
		createTestFile(t, dir, "Broken.cs", "class C { void M( }"),
		filepath.Join(dir, "Missing.cs"),
	}

	cache := PopulateParseCache(context.Background(), NewFileReader(), files, 0)
	require.Equal(t, len(files), cache.Len())

	for _, name := range []string{"A.cs", "B.cs"} {
		result, ok := cache.Get(filepath.Join(dir, name))
		require.True(t, ok, name)
		assert.NoError(t, result.ParseErr)
		require.NotNil(t, result.Root)
		assert.Equal(t, syntax.KindCompilationUnit, result.Root.Kind)
		assert.NotEmpty(t, result.Content)
	}

	broken, _ := cache.Get(files[2])
	assert.Nil(t, broken.Root)
	assert.Equal(t, domain.ErrCodeParseError, domain.ErrorCode(broken.ParseErr))

	missing, _ := cache.Get(files[3])
	assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(missing.ParseErr))
}

func TestPopulateParseCache_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := createTestFile(t, dir, "A.cs", "class A { }")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cache := PopulateParseCache(ctx, NewFileReader(), []string{path}, 1)
	result, ok := cache.Get(path)
	require.True(t, ok)
	assert.ErrorIs(t, result.ParseErr, context.Canceled)
}

func TestProgressManager_NonInteractive(t *testing.T) {
	pm := NewProgressManager()
	var buf bytes.Buffer
	pm.SetWriter(&buf)

	assert.False(t, pm.IsInteractive())
	pm.Initialize(3)
	pm.Start()
	pm.Update(1, 3)
	pm.Complete(true)
	pm.Close()
	assert.Empty(t, buf.String())
}

func TestNoOpProgressManager(t *testing.T) {
	pm := NewNoOpProgressManager()
	pm.Initialize(10)
	pm.Start()
	pm.Update(5, 10)
	pm.Complete(false)
	pm.Close()
	assert.False(t, pm.IsInteractive())
}
