package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/ludo-technologies/eacdiff/domain"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template.
// All values are sourced from the domain package to ensure a single source of truth.
type DefaultConfigValues struct {
	// Matching
	DistanceLevels string
	MaxLambdaDepth int

	// Output
	OutputFormat  string
	ShowUnchanged bool

	// Input
	Recursive       bool
	IncludePatterns string
	ExcludePatterns string
}

// newDefaultConfigValues creates a DefaultConfigValues populated from domain constants.
func newDefaultConfigValues() DefaultConfigValues {
	defaults := DefaultConfig()
	return DefaultConfigValues{
		DistanceLevels:  tomlFloats(defaults.Matching.DistanceLevels),
		MaxLambdaDepth:  defaults.Matching.MaxLambdaDepth,
		OutputFormat:    defaults.Output.Format,
		ShowUnchanged:   defaults.Output.ShowUnchanged,
		Recursive:       defaults.Input.Recursive,
		IncludePatterns: tomlStrings(domain.DefaultIncludePatterns),
		ExcludePatterns: tomlStrings(domain.DefaultExcludePatterns),
	}
}

func tomlFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(parts[i], ".") {
			parts[i] += ".0"
		}
	}
	return strings.Join(parts, ", ")
}

func tomlStrings(values []string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Quote(v)
	}
	return strings.Join(parts, ", ")
}

// GenerateDefaultConfigTOML renders the default config template with domain values
// and returns the resulting TOML string.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered default config and returns
// the resulting Config
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}
	return ParseTOML([]byte(configTOML))
}
