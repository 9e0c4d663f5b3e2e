package service

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ludo-technologies/eacdiff/domain"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct {
	color bool
}

// NewOutputFormatter creates a new output formatter service writing plain
// text
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// NewColorOutputFormatter creates an output formatter whose text output
// uses ANSI colors
func NewColorOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{color: true}
}

// Format formats a file comparison according to the specified format
func (f *OutputFormatterImpl) Format(response *domain.CompareResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText, "":
		return f.formatText(response), nil
	case domain.OutputFormatJSON:
		return EncodeJSON(response)
	case domain.OutputFormatYAML:
		return EncodeYAML(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *OutputFormatterImpl) Write(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(response, format)
	if err != nil {
		return err
	}
	return writeOutput(writer, output, format)
}

// FormatBatch formats a batch comparison according to the specified format
func (f *OutputFormatterImpl) FormatBatch(response *domain.BatchResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText, "":
		return f.formatBatchText(response), nil
	case domain.OutputFormatJSON:
		return EncodeJSON(response)
	case domain.OutputFormatYAML:
		return EncodeYAML(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteBatch writes a formatted batch comparison to the writer
func (f *OutputFormatterImpl) WriteBatch(response *domain.BatchResponse, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.FormatBatch(response, format)
	if err != nil {
		return err
	}
	return writeOutput(writer, output, format)
}

func writeOutput(writer io.Writer, output string, format domain.OutputFormat) error {
	// EncodeJSON omits the trailing newline
	if format == domain.OutputFormatJSON {
		output += "\n"
	}
	if _, err := io.WriteString(writer, output); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// formatText formats a file comparison as human-readable text
func (f *OutputFormatterImpl) formatText(response *domain.CompareResponse) string {
	var builder strings.Builder
	utils := NewFormatUtils(f.color)

	builder.WriteString(utils.FormatMainHeader("Syntax Comparison Report"))
	builder.WriteString(utils.FormatLabelWithIndent(0, "Old", response.OldPath))
	builder.WriteString(utils.FormatLabelWithIndent(0, "New", response.NewPath))
	builder.WriteString(utils.FormatSectionSeparator())

	if len(response.Members) > 0 {
		builder.WriteString(utils.FormatSectionHeader("MEMBERS"))
		for _, member := range response.Members {
			f.writeMember(&builder, utils, member)
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	builder.WriteString(utils.FormatSummaryStats(compareStats(response.Summary)))
	builder.WriteString(utils.FormatWarningsSection(response.Warnings))
	builder.WriteString(utils.FormatErrorsSection(response.Errors))
	f.writeMetadata(&builder, utils, response.GeneratedAt)

	return builder.String()
}

func (f *OutputFormatterImpl) writeMember(builder *strings.Builder, utils *FormatUtils, member domain.MemberDiff) {
	status := utils.Colorize(utils.GetStatusColor(member.Status), fmt.Sprintf("%-9s", member.Status))
	line := fmt.Sprintf("%s%s %s", strings.Repeat(" ", SectionPadding), status, member.Signature)
	if member.Status == domain.MemberStatusModified || member.Status == domain.MemberStatusUnchanged {
		line += fmt.Sprintf("  (distance %s)", utils.FormatDistance(member.StructuralDistance))
	}
	builder.WriteString(line + "\n")

	if member.Error != "" {
		builder.WriteString(fmt.Sprintf("%s%s\n", strings.Repeat(" ", ItemPadding), member.Error))
	}
	f.writeEdits(builder, utils, member.Edits, ItemPadding)
	f.writeLambdas(builder, utils, member.Lambdas, ItemPadding)
}

func (f *OutputFormatterImpl) writeEdits(builder *strings.Builder, utils *FormatUtils, edits []domain.SyntaxEdit, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, edit := range edits {
		kind := utils.Colorize(utils.GetEditColor(edit.Kind), fmt.Sprintf("%-7s", edit.Kind))
		switch {
		case edit.Old != nil && edit.New != nil:
			builder.WriteString(fmt.Sprintf("%s%s %s -> %s\n", pad, kind, describeRef(edit.Old), describeRef(edit.New)))
		case edit.Old != nil:
			builder.WriteString(fmt.Sprintf("%s%s %s\n", pad, kind, describeRef(edit.Old)))
		case edit.New != nil:
			builder.WriteString(fmt.Sprintf("%s%s %s\n", pad, kind, describeRef(edit.New)))
		}
	}
}

func (f *OutputFormatterImpl) writeLambdas(builder *strings.Builder, utils *FormatUtils, lambdas []domain.LambdaDiff, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, lambda := range lambdas {
		if len(lambda.Edits) == 0 && len(lambda.Lambdas) == 0 {
			continue
		}
		builder.WriteString(fmt.Sprintf("%slambda %s  (distance %s)\n", pad, describeRef(lambda.New), utils.FormatDistance(lambda.StructuralDistance)))
		f.writeEdits(builder, utils, lambda.Edits, indent+2)
		f.writeLambdas(builder, utils, lambda.Lambdas, indent+2)
	}
}

func (f *OutputFormatterImpl) writeMetadata(builder *strings.Builder, utils *FormatUtils, generatedAt string) {
	if parsed, err := time.Parse(time.RFC3339, generatedAt); err == nil {
		builder.WriteString(utils.FormatSectionHeader("METADATA"))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Generated at", parsed.Format(time.RFC3339)))
	}
}

func describeRef(ref *domain.NodeRef) string {
	if ref == nil {
		return ""
	}
	name := ref.Label
	if name == "" {
		name = ref.Kind
	}
	return fmt.Sprintf("%s %d:%d %q", name, ref.StartLine, ref.StartCol, ref.Snippet)
}

func compareStats(summary domain.CompareSummary) []Stat {
	stats := []Stat{
		{"Members", summary.TotalMembers},
		{"Modified", summary.ModifiedMembers},
		{"Unchanged", summary.UnchangedMembers},
		{"Inserted", summary.InsertedMembers},
		{"Deleted", summary.DeletedMembers},
	}
	if summary.FailedMembers > 0 {
		stats = append(stats, Stat{"Failed", summary.FailedMembers})
	}
	stats = append(stats, Stat{"Edits", summary.TotalEdits})
	return append(stats, editStats(summary.EditCounts)...)
}

func editStats(counts map[domain.EditKind]int) []Stat {
	kinds := make([]string, 0, len(counts))
	for kind, n := range counts {
		if n > 0 {
			kinds = append(kinds, string(kind))
		}
	}
	sort.Strings(kinds)

	stats := make([]Stat, len(kinds))
	for i, kind := range kinds {
		stats[i] = Stat{"  " + kind, counts[domain.EditKind(kind)]}
	}
	return stats
}

// formatBatchText formats a batch comparison as human-readable text
func (f *OutputFormatterImpl) formatBatchText(response *domain.BatchResponse) string {
	var builder strings.Builder
	utils := NewFormatUtils(f.color)

	builder.WriteString(utils.FormatMainHeader("Batch Syntax Comparison Report"))
	builder.WriteString(utils.FormatLabelWithIndent(0, "Old", response.OldDir))
	builder.WriteString(utils.FormatLabelWithIndent(0, "New", response.NewDir))
	builder.WriteString(utils.FormatSectionSeparator())

	var changed []domain.CompareResponse
	for _, file := range response.Files {
		if file.Changed() {
			changed = append(changed, file)
		}
	}

	if len(changed) > 0 {
		builder.WriteString(utils.FormatSectionHeader("CHANGED FILES"))
		for _, file := range changed {
			builder.WriteString(fmt.Sprintf("%s%s\n", strings.Repeat(" ", SectionPadding), file.NewPath))
			for _, member := range file.Members {
				if member.Status == domain.MemberStatusUnchanged {
					continue
				}
				status := utils.Colorize(utils.GetStatusColor(member.Status), fmt.Sprintf("%-9s", member.Status))
				builder.WriteString(fmt.Sprintf("%s%s %s  (%d edits)\n", strings.Repeat(" ", ItemPadding), status, member.Signature, len(member.Edits)))
			}
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	f.writeFileList(&builder, utils, "ADDED FILES", response.AddedFiles)
	f.writeFileList(&builder, utils, "REMOVED FILES", response.RemovedFiles)

	s := response.Summary
	stats := []Stat{
		{"Files Compared", s.FilesCompared},
		{"Changed", s.FilesChanged},
		{"Unchanged", s.FilesUnchanged},
		{"Added", s.FilesAdded},
		{"Removed", s.FilesRemoved},
	}
	if s.FilesFailed > 0 {
		stats = append(stats, Stat{"Failed", s.FilesFailed})
	}
	stats = append(stats, Stat{"Edits", s.TotalEdits})
	stats = append(stats, editStats(s.EditCounts)...)
	builder.WriteString(utils.FormatSummaryStats(stats))

	builder.WriteString(utils.FormatWarningsSection(response.Warnings))
	builder.WriteString(utils.FormatErrorsSection(response.Errors))
	f.writeMetadata(&builder, utils, response.GeneratedAt)

	return builder.String()
}

func (f *OutputFormatterImpl) writeFileList(builder *strings.Builder, utils *FormatUtils, title string, files []string) {
	if len(files) == 0 {
		return
	}
	builder.WriteString(utils.FormatSectionHeader(title))
	for _, file := range files {
		builder.WriteString(fmt.Sprintf("%s%s\n", strings.Repeat(" ", SectionPadding), file))
	}
	builder.WriteString(utils.FormatSectionSeparator())
}
