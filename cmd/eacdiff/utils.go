package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/service"
)

// Exit codes
const (
	exitChanges = 1 // --exit-code was given and the versions differ
	exitFailure = 2 // the comparison could not be performed
)

// changesFoundError reports that --exit-code found differences. The report
// itself has already been written.
type changesFoundError struct {
	files int
}

func (e *changesFoundError) Error() string {
	return fmt.Sprintf("changes found in %d file(s)", e.files)
}

// outputOptions holds the flags shared by every comparing command
type outputOptions struct {
	json           bool
	yaml           bool
	format         string
	output         string
	configFile     string
	showUnchanged  bool
	noColor        bool
	exitCode       bool
	levels         []float64
	maxLambdaDepth int
}

func (o *outputOptions) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&o.json, service.FlagJSON, false, "Write the report as JSON")
	flags.BoolVar(&o.yaml, service.FlagYAML, false, "Write the report as YAML")
	flags.StringVarP(&o.format, service.FlagFormat, "f", string(domain.OutputFormatText), "Output format: text, json or yaml")
	flags.StringVarP(&o.output, "output", "o", "", "Write the report to a file instead of stdout")
	flags.StringVarP(&o.configFile, "config", "c", "", "Configuration file path (.eacdiff.toml or .eacdiff.yaml)")
	flags.BoolVar(&o.showUnchanged, service.FlagShowUnchanged, false, "Include unchanged members in the report")
	flags.BoolVar(&o.noColor, "no-color", false, "Disable colored text output")
	flags.BoolVar(&o.exitCode, "exit-code", false, "Exit with status 1 when the versions differ")
	flags.Float64SliceVar(&o.levels, service.FlagLevels, append([]float64(nil), domain.DefaultDistanceLevels...),
		"Distance thresholds of the matching passes, strictly increasing within (0, 1]")
	flags.IntVar(&o.maxLambdaDepth, service.FlagMaxLambdaDepth, domain.DefaultMaxLambdaDepth,
		"Maximum nesting depth of lambda bodies matched recursively")
}

// outputFormat resolves the format flags. --json and --yaml are shorthands
// for --format.
func (o *outputOptions) outputFormat() (domain.OutputFormat, error) {
	if o.json && o.yaml {
		return "", fmt.Errorf("only one of --json and --yaml can be specified")
	}
	switch {
	case o.json:
		return domain.OutputFormatJSON, nil
	case o.yaml:
		return domain.OutputFormatYAML, nil
	}
	return domain.ParseOutputFormat(o.format)
}

// openOutput returns the report writer and a function closing it
func (o *outputOptions) openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if o.output == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	dir := filepath.Dir(o.output)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	file, err := os.Create(o.output)
	if err != nil {
		return nil, nil, domain.NewOutputError("failed to create output file", err)
	}
	return file, file.Close, nil
}

// newFormatter picks a colored formatter when text goes to a terminal
func (o *outputOptions) newFormatter(writer io.Writer) domain.OutputFormatter {
	if !o.noColor && os.Getenv("NO_COLOR") == "" && isTerminal(writer) {
		return service.NewColorOutputFormatter()
	}
	return service.NewOutputFormatter()
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// isVerbose reads the persistent --verbose flag
func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

// changeTracker records whether the written reports contain changes
type changeTracker struct {
	domain.OutputFormatter
	changedFiles int
}

func (t *changeTracker) Write(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	if response.Changed() {
		t.changedFiles++
	}
	return t.OutputFormatter.Write(response, format, writer)
}

func (t *changeTracker) WriteBatch(response *domain.BatchResponse, format domain.OutputFormat, writer io.Writer) error {
	s := response.Summary
	t.changedFiles += s.FilesChanged + s.FilesAdded + s.FilesRemoved + s.FilesFailed
	return t.OutputFormatter.WriteBatch(response, format, writer)
}

// result turns the tracked changes into the command error
func (t *changeTracker) result(exitCode bool) error {
	if exitCode && t.changedFiles > 0 {
		return &changesFoundError{files: t.changedFiles}
	}
	return nil
}
