package domain

import (
	"context"
	"io"
)

// EditKind is the kind of a statement-level edit
type EditKind string

const (
	EditKindUpdate  EditKind = "update"
	EditKindMove    EditKind = "move"
	EditKindReorder EditKind = "reorder"
	EditKindDelete  EditKind = "delete"
	EditKindInsert  EditKind = "insert"
)

// MemberStatus describes how a member changed between two versions
type MemberStatus string

const (
	MemberStatusModified  MemberStatus = "modified"
	MemberStatusUnchanged MemberStatus = "unchanged"
	MemberStatusInserted  MemberStatus = "inserted"
	MemberStatusDeleted   MemberStatus = "deleted"
	MemberStatusFailed    MemberStatus = "failed"
)

// CompareRequest represents a request to compare two versions of a C# file.
// Sources take precedence over paths; a path without a source is read from
// disk.
type CompareRequest struct {
	// Inputs
	OldPath   string
	NewPath   string
	OldSource []byte
	NewSource []byte

	// Output configuration
	OutputFormat  OutputFormat
	OutputWriter  io.Writer
	ShowUnchanged bool

	// Matching options
	DistanceLevels []float64
	MaxLambdaDepth int

	// Configuration
	ConfigPath string
}

// BatchRequest represents a request to compare two directory trees. Files
// are paired by their path relative to the tree roots.
type BatchRequest struct {
	OldDir string
	NewDir string

	// File selection
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Output configuration
	OutputFormat  OutputFormat
	OutputWriter  io.Writer
	ShowUnchanged bool
	ShowProgress  bool

	// Matching options
	DistanceLevels []float64
	MaxLambdaDepth int

	// Configuration
	ConfigPath string
}

// CompareOptions returns the compare request used for one pair of a batch
func (r BatchRequest) CompareOptions(oldPath, newPath string) CompareRequest {
	return CompareRequest{
		OldPath:        oldPath,
		NewPath:        newPath,
		OutputFormat:   r.OutputFormat,
		ShowUnchanged:  r.ShowUnchanged,
		DistanceLevels: r.DistanceLevels,
		MaxLambdaDepth: r.MaxLambdaDepth,
		ConfigPath:     r.ConfigPath,
	}
}

// NodeRef identifies a syntax node in one version of a file
type NodeRef struct {
	Kind      string `json:"kind" yaml:"kind"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	StartCol  int    `json:"start_column" yaml:"start_column"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
	EndCol    int    `json:"end_column" yaml:"end_column"`
	Snippet   string `json:"snippet" yaml:"snippet"`
}

// SyntaxEdit is one edit of an edit script
type SyntaxEdit struct {
	Kind     EditKind `json:"kind" yaml:"kind"`
	Old      *NodeRef `json:"old,omitempty" yaml:"old,omitempty"`
	New      *NodeRef `json:"new,omitempty" yaml:"new,omitempty"`
	Distance float64  `json:"distance" yaml:"distance"`
}

// LambdaDiff is the comparison of the bodies of a matched lambda pair
type LambdaDiff struct {
	Old                *NodeRef     `json:"old" yaml:"old"`
	New                *NodeRef     `json:"new" yaml:"new"`
	StructuralDistance float64      `json:"structural_distance" yaml:"structural_distance"`
	Edits              []SyntaxEdit `json:"edits,omitempty" yaml:"edits,omitempty"`
	Lambdas            []LambdaDiff `json:"lambdas,omitempty" yaml:"lambdas,omitempty"`
}

// MemberDiff is the comparison of one member present in either version
type MemberDiff struct {
	Name               string       `json:"name" yaml:"name"`
	Signature          string       `json:"signature" yaml:"signature"`
	Kind               string       `json:"kind" yaml:"kind"`
	Status             MemberStatus `json:"status" yaml:"status"`
	StructuralDistance float64      `json:"structural_distance" yaml:"structural_distance"`
	Old                *NodeRef     `json:"old,omitempty" yaml:"old,omitempty"`
	New                *NodeRef     `json:"new,omitempty" yaml:"new,omitempty"`
	Edits              []SyntaxEdit `json:"edits,omitempty" yaml:"edits,omitempty"`
	Lambdas            []LambdaDiff `json:"lambdas,omitempty" yaml:"lambdas,omitempty"`
	Error              string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// CompareSummary represents aggregate statistics of a file comparison
type CompareSummary struct {
	TotalMembers     int              `json:"total_members" yaml:"total_members"`
	ModifiedMembers  int              `json:"modified_members" yaml:"modified_members"`
	UnchangedMembers int              `json:"unchanged_members" yaml:"unchanged_members"`
	InsertedMembers  int              `json:"inserted_members" yaml:"inserted_members"`
	DeletedMembers   int              `json:"deleted_members" yaml:"deleted_members"`
	FailedMembers    int              `json:"failed_members" yaml:"failed_members"`
	TotalEdits       int              `json:"total_edits" yaml:"total_edits"`
	EditCounts       map[EditKind]int `json:"edit_counts" yaml:"edit_counts"`
}

// CompareResponse represents the complete result of a file comparison
type CompareResponse struct {
	OldPath string         `json:"old_path" yaml:"old_path"`
	NewPath string         `json:"new_path" yaml:"new_path"`
	Members []MemberDiff   `json:"members" yaml:"members"`
	Summary CompareSummary `json:"summary" yaml:"summary"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// Changed reports whether any member was modified, inserted, deleted or
// could not be compared
func (r *CompareResponse) Changed() bool {
	s := r.Summary
	return s.ModifiedMembers+s.InsertedMembers+s.DeletedMembers+s.FailedMembers > 0
}

// BatchSummary represents aggregate statistics of a batch comparison
type BatchSummary struct {
	FilesCompared  int              `json:"files_compared" yaml:"files_compared"`
	FilesChanged   int              `json:"files_changed" yaml:"files_changed"`
	FilesUnchanged int              `json:"files_unchanged" yaml:"files_unchanged"`
	FilesAdded     int              `json:"files_added" yaml:"files_added"`
	FilesRemoved   int              `json:"files_removed" yaml:"files_removed"`
	FilesFailed    int              `json:"files_failed" yaml:"files_failed"`
	TotalEdits     int              `json:"total_edits" yaml:"total_edits"`
	EditCounts     map[EditKind]int `json:"edit_counts" yaml:"edit_counts"`
}

// BatchResponse represents the complete result of a batch comparison
type BatchResponse struct {
	OldDir       string            `json:"old_dir" yaml:"old_dir"`
	NewDir       string            `json:"new_dir" yaml:"new_dir"`
	Files        []CompareResponse `json:"files" yaml:"files"`
	AddedFiles   []string          `json:"added_files,omitempty" yaml:"added_files,omitempty"`
	RemovedFiles []string          `json:"removed_files,omitempty" yaml:"removed_files,omitempty"`
	Summary      BatchSummary      `json:"summary" yaml:"summary"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// FilePair is an old and a new file sharing a relative path
type FilePair struct {
	RelativePath string
	OldPath      string
	NewPath      string
}

// CompareService defines the core business logic for syntax comparison
type CompareService interface {
	// Compare compares the old and new versions of a file
	Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error)
}

// FileReader defines the interface for reading and collecting C# files
type FileReader interface {
	// CollectCSharpFiles finds all C# files in the given paths
	CollectCSharpFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// PairFiles pairs the C# files of two trees by relative path and
	// returns the pairs plus the relative paths present in only one tree
	PairFiles(oldDir, newDir string, recursive bool, includePatterns, excludePatterns []string) (pairs []FilePair, added, removed []string, err error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidCSharpFile checks if a file is a C# source file
	IsValidCSharpFile(path string) bool

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}

// OutputFormatter defines the interface for formatting comparison results
type OutputFormatter interface {
	// Format formats a file comparison according to the specified format
	Format(response *CompareResponse, format OutputFormat) (string, error)

	// Write writes a formatted file comparison to the writer
	Write(response *CompareResponse, format OutputFormat, writer io.Writer) error

	// FormatBatch formats a batch comparison according to the specified format
	FormatBatch(response *BatchResponse, format OutputFormat) (string, error)

	// WriteBatch writes a formatted batch comparison to the writer
	WriteBatch(response *BatchResponse, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*CompareRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *CompareRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *CompareRequest, override *CompareRequest) *CompareRequest
}

// BatchConfigurationLoader defines the interface for loading the
// configuration of a batch comparison
type BatchConfigurationLoader interface {
	// LoadBatchConfig loads configuration from the specified path. An empty
	// path searches for a configuration file.
	LoadBatchConfig(path string) (*BatchRequest, error)

	// MergeBatchConfig merges CLI flags with configuration file
	MergeBatchConfig(base *BatchRequest, override *BatchRequest) *BatchRequest
}
