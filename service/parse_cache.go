package service

import (
	"context"
	"runtime"
	"sync"

	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/internal/parser"
	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

// FileParseResult holds the cached parse result for a single file.
type FileParseResult struct {
	Content  []byte
	Root     *syntax.Node
	ParseErr error
}

// ParseCache stores pre-parsed syntax trees for the compare service.
// After Seal() is called the cache is read-only and safe for concurrent access
// without locks.
type ParseCache struct {
	results map[string]*FileParseResult
	sealed  bool
}

// NewParseCache creates a new empty ParseCache.
func NewParseCache() *ParseCache {
	return &ParseCache{
		results: make(map[string]*FileParseResult),
	}
}

// Put stores a parse result. Must be called before Seal().
func (c *ParseCache) Put(filePath string, result *FileParseResult) {
	if c.sealed {
		return
	}
	c.results[filePath] = result
}

// Seal marks the cache as read-only.
func (c *ParseCache) Seal() {
	c.sealed = true
}

// Get retrieves a cached parse result. Returns (result, true) on hit.
func (c *ParseCache) Get(filePath string) (*FileParseResult, bool) {
	if c == nil {
		return nil, false
	}
	r, ok := c.results[filePath]
	return r, ok
}

// Len returns the number of entries in the cache.
func (c *ParseCache) Len() int {
	return len(c.results)
}

// ParseCacheAware is implemented by services that can accept a pre-populated
// parse cache to avoid redundant file parsing.
type ParseCacheAware interface {
	SetParseCache(cache *ParseCache)
}

// PopulateParseCache reads and parses all files in parallel and returns a
// sealed cache. Concurrency 0 means runtime.GOMAXPROCS(0). Each goroutine
// creates its own parser.Parser because tree-sitter is not thread-safe.
func PopulateParseCache(ctx context.Context, reader domain.FileReader, files []string, concurrency int) *ParseCache {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]*FileParseResult, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for i, filePath := range files {
		wg.Add(1)
		go func(idx int, fp string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			r := &FileParseResult{}
			results[idx] = r

			if err := ctx.Err(); err != nil {
				r.ParseErr = err
				return
			}

			content, err := reader.ReadFile(fp)
			if err != nil {
				r.ParseErr = err
				return
			}
			r.Content = content

			root, err := parser.New().ParseSyntax(ctx, content, fp)
			if err != nil {
				r.ParseErr = domain.NewParseError(fp, err)
				return
			}
			r.Root = root
		}(i, filePath)
	}

	wg.Wait()

	cache := NewParseCache()
	for i, fp := range files {
		cache.Put(fp, results[i])
	}
	cache.Seal()

	return cache
}
