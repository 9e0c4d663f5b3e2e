package domain

// Matching defaults. The levels are the distance ceilings of the matching
// passes; the first admits only near-identical pairs.
var DefaultDistanceLevels = []float64{0.00001, 0.5, 1.0}

const (
	// DefaultMaxLambdaDepth bounds how deep lambda bodies nested in lambda
	// bodies are compared
	DefaultMaxLambdaDepth = 16

	// DefaultSnippetLength is the number of characters of node text kept
	// in reports
	DefaultSnippetLength = 60
)

// DefaultIncludePatterns selects C# sources in batch comparisons
var DefaultIncludePatterns = []string{"**/*.cs"}

// DefaultExcludePatterns skips build output and generated sources
var DefaultExcludePatterns = []string{"**/bin/**", "**/obj/**", "**/*.g.cs", "**/*.Designer.cs"}
