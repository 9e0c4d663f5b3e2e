package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/eacdiff/domain"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// EncodeYAML returns a YAML string for the given value.
func EncodeYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", domain.NewOutputError("failed to marshal YAML", err)
	}
	return string(data), nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

// Standard formatting constants
const (
	HeaderWidth    = 40
	LabelWidth     = 25
	SectionPadding = 2
	ItemPadding    = 4
)

// ANSI color codes for consistent color usage
const (
	ColorReset  = "\x1b[0m"
	ColorRed    = "\x1b[31m"
	ColorYellow = "\x1b[33m"
	ColorGreen  = "\x1b[32m"
	ColorCyan   = "\x1b[36m"
	ColorBold   = "\x1b[1m"
)

// Stat is one labelled value of a summary section
type Stat struct {
	Label string
	Value interface{}
}

// FormatUtils provides shared formatting utilities
type FormatUtils struct {
	color bool
}

// NewFormatUtils creates a new format utilities instance. Colors are
// emitted only when color is true.
func NewFormatUtils(color bool) *FormatUtils {
	return &FormatUtils{color: color}
}

// FormatMainHeader creates a standardized main header
func (f *FormatUtils) FormatMainHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(title + "\n")
	builder.WriteString(strings.Repeat("=", HeaderWidth) + "\n\n")
	return builder.String()
}

// FormatSectionHeader creates a standardized section header
func (f *FormatUtils) FormatSectionHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(strings.ToUpper(title) + "\n")
	builder.WriteString(strings.Repeat("-", len(title)) + "\n")
	return builder.String()
}

// FormatSectionSeparator creates a section separator
func (f *FormatUtils) FormatSectionSeparator() string {
	return "\n"
}

// FormatLabelWithIndent creates a formatted label with specific indentation
func (f *FormatUtils) FormatLabelWithIndent(indent int, label string, value interface{}) string {
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", indent), label, value)
}

// FormatDistance formats a structural distance consistently
func (f *FormatUtils) FormatDistance(distance float64) string {
	return fmt.Sprintf("%.3f", distance)
}

// FormatSummaryStats creates a standardized summary statistics section
// keeping the order of stats
func (f *FormatUtils) FormatSummaryStats(stats []Stat) string {
	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("SUMMARY"))

	for _, stat := range stats {
		builder.WriteString(f.FormatLabelWithIndent(SectionPadding, stat.Label, stat.Value))
	}

	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// FormatWarningsSection creates a standardized warnings section
func (f *FormatUtils) FormatWarningsSection(warnings []string) string {
	return f.formatListSection("WARNINGS", "!", warnings)
}

// FormatErrorsSection creates a standardized errors section
func (f *FormatUtils) FormatErrorsSection(errs []string) string {
	return f.formatListSection("ERRORS", "x", errs)
}

func (f *FormatUtils) formatListSection(title, marker string, items []string) string {
	if len(items) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader(title))
	for _, item := range items {
		builder.WriteString(fmt.Sprintf("%s%s %s\n", strings.Repeat(" ", SectionPadding), marker, item))
	}
	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// GetStatusColor returns the color of a member status
func (f *FormatUtils) GetStatusColor(status domain.MemberStatus) string {
	switch status {
	case domain.MemberStatusInserted:
		return ColorGreen
	case domain.MemberStatusDeleted, domain.MemberStatusFailed:
		return ColorRed
	case domain.MemberStatusModified:
		return ColorYellow
	default:
		return ColorReset
	}
}

// GetEditColor returns the color of an edit kind
func (f *FormatUtils) GetEditColor(kind domain.EditKind) string {
	switch kind {
	case domain.EditKindInsert:
		return ColorGreen
	case domain.EditKindDelete:
		return ColorRed
	case domain.EditKindUpdate:
		return ColorYellow
	default:
		return ColorCyan
	}
}

// Colorize wraps text in color when colors are enabled
func (f *FormatUtils) Colorize(color, text string) string {
	if !f.color || color == "" || color == ColorReset {
		return text
	}
	return color + text + ColorReset
}
