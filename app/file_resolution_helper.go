package app

import (
	"fmt"

	"github.com/ludo-technologies/eacdiff/domain"
)

// InputMode tells whether a comparison is between two files or two
// directory trees
type InputMode int

const (
	// InputModeFiles compares two versions of a single file
	InputModeFiles InputMode = iota
	// InputModeDirectories compares two trees file by file
	InputModeDirectories
)

// String returns the name of the mode
func (m InputMode) String() string {
	if m == InputModeDirectories {
		return "directories"
	}
	return "files"
}

// ResolveInputMode decides how two input paths are compared.
// Two existing files are compared directly; when neither is a file both are
// treated as directories and validated later when the trees are paired.
// Mixing a file with a directory is rejected.
//
// When validateCSharpFile is true existing files must also carry the .cs
// extension.
func ResolveInputMode(
	fileReader domain.FileReader,
	oldPath string,
	newPath string,
	validateCSharpFile bool,
) (InputMode, error) {
	if oldPath == "" || newPath == "" {
		return InputModeFiles, domain.NewInvalidInputError("both an old and a new path are required", nil)
	}

	oldIsFile, err := fileReader.FileExists(oldPath)
	if err != nil {
		return InputModeFiles, domain.NewFileNotFoundError(oldPath, err)
	}
	newIsFile, err := fileReader.FileExists(newPath)
	if err != nil {
		return InputModeFiles, domain.NewFileNotFoundError(newPath, err)
	}

	switch {
	case oldIsFile && newIsFile:
		if validateCSharpFile {
			for _, path := range []string{oldPath, newPath} {
				if !fileReader.IsValidCSharpFile(path) {
					return InputModeFiles, domain.NewInvalidInputError(fmt.Sprintf("not a C# file: %s", path), nil)
				}
			}
		}
		return InputModeFiles, nil
	case !oldIsFile && !newIsFile:
		return InputModeDirectories, nil
	default:
		return InputModeFiles, domain.NewInvalidInputError(
			fmt.Sprintf("cannot compare a file with a directory: %s and %s", oldPath, newPath), nil)
	}
}
