package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/eacdiff/domain"
)

// FileReaderImpl implements the FileReader interface
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectCSharpFiles finds the C# files in the given paths. Patterns are
// matched against paths relative to the directory being walked.
func (f *FileReaderImpl) CollectCSharpFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if !info.IsDir() {
			if f.IsValidCSharpFile(path) && f.shouldIncludeFile(filepath.Base(path), includePatterns, excludePatterns) {
				files = append(files, path)
			}
			continue
		}

		relative, err := f.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
		if err != nil {
			return nil, err
		}
		for _, rel := range relative {
			files = append(files, filepath.Join(path, filepath.FromSlash(rel)))
		}
	}

	return files, nil
}

// PairFiles pairs the C# files of two trees by relative path. Files found
// in only one tree are returned as added or removed, all sorted.
func (f *FileReaderImpl) PairFiles(oldDir, newDir string, recursive bool, includePatterns, excludePatterns []string) ([]domain.FilePair, []string, []string, error) {
	for _, dir := range []string{oldDir, newDir} {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, nil, nil, domain.NewFileNotFoundError(dir, err)
		}
		if !info.IsDir() {
			return nil, nil, nil, domain.NewInvalidInputError(fmt.Sprintf("not a directory: %s", dir), nil)
		}
	}

	oldFiles, err := f.collectFromDirectory(oldDir, recursive, includePatterns, excludePatterns)
	if err != nil {
		return nil, nil, nil, err
	}
	newFiles, err := f.collectFromDirectory(newDir, recursive, includePatterns, excludePatterns)
	if err != nil {
		return nil, nil, nil, err
	}

	inNew := make(map[string]bool, len(newFiles))
	for _, rel := range newFiles {
		inNew[rel] = true
	}

	var pairs []domain.FilePair
	var removed []string
	inOld := make(map[string]bool, len(oldFiles))
	for _, rel := range oldFiles {
		inOld[rel] = true
		if !inNew[rel] {
			removed = append(removed, rel)
			continue
		}
		pairs = append(pairs, domain.FilePair{
			RelativePath: rel,
			OldPath:      filepath.Join(oldDir, filepath.FromSlash(rel)),
			NewPath:      filepath.Join(newDir, filepath.FromSlash(rel)),
		})
	}

	var added []string
	for _, rel := range newFiles {
		if !inOld[rel] {
			added = append(added, rel)
		}
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].RelativePath < pairs[j].RelativePath })
	sort.Strings(added)
	sort.Strings(removed)
	return pairs, added, removed, nil
}

// ReadFile reads the content of a file
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// IsValidCSharpFile checks if a file is a C# source file
func (f *FileReaderImpl) IsValidCSharpFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".cs"
}

// FileExists checks if a file exists
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// collectFromDirectory returns the slash separated paths, relative to
// dirPath, of the C# files under it
func (f *FileReaderImpl) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are skipped
			return nil
		}
		if path == "." {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if !recursive || strings.HasPrefix(name, ".") || f.shouldSkipDirectory(name) {
				return fs.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || !f.IsValidCSharpFile(name) {
			return nil
		}
		if f.shouldIncludeFile(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	}

	if err := fs.WalkDir(os.DirFS(dirPath), ".", walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	sort.Strings(files)
	return files, nil
}

// shouldIncludeFile matches a slash separated relative path against the
// patterns. Exclusion wins over inclusion, and no include patterns
// include everything.
func (f *FileReaderImpl) shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	path = filepath.ToSlash(path)
	base := filepath.Base(path)

	for _, pattern := range excludePatterns {
		if matchPattern(pattern, path) || matchPattern(pattern, base) {
			return false
		}
	}

	if len(includePatterns) == 0 {
		return true
	}
	for _, pattern := range includePatterns {
		if matchPattern(pattern, path) || matchPattern(pattern, base) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, path string) bool {
	matched, err := doublestar.Match(pattern, path)
	return err == nil && matched
}

// shouldSkipDirectory checks if a directory should be skipped entirely
func (f *FileReaderImpl) shouldSkipDirectory(dirName string) bool {
	switch strings.ToLower(dirName) {
	case "bin", "obj", "node_modules", "packages", "testresults":
		return true
	}
	return false
}
