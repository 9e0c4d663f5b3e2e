package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/eacdiff/app"
	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/internal/config"
	"github.com/ludo-technologies/eacdiff/service"
)

// CompareCommand represents the compare command
type CompareCommand struct {
	outputOptions
}

// NewCompareCommand creates a new compare command
func NewCompareCommand() *CompareCommand {
	return &CompareCommand{}
}

// CreateCobraCommand creates the cobra command for comparing two versions
func (c *CompareCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <old> <new>",
		Short: "Compare two versions of a C# file",
		Long: `Compare the members of two versions of a C# file and print the
statement-level edit script of every changed member.

Members are paired by their signature. Bodies are matched in passes of
growing distance thresholds (--levels) and lambdas nested in a body are
matched recursively up to --max-lambda-depth levels.

When both arguments are directories the trees are compared file by file,
as with the batch command.

Exit codes:
  0: Comparison succeeded (or no changes with --exit-code)
  1: Changes found and --exit-code was given
  2: The comparison failed

Examples:
  # Compare two versions of a file
  eacdiff compare old/Program.cs new/Program.cs

  # JSON report including unchanged members
  eacdiff compare --json --show-unchanged old/Program.cs new/Program.cs

  # Use only a strict and a loose matching pass
  eacdiff compare --levels 0.1,0.9 old/Program.cs new/Program.cs`,
		Args: cobra.ExactArgs(2),
		RunE: c.run,
	}

	c.addFlags(cmd)
	return cmd
}

func (c *CompareCommand) run(cmd *cobra.Command, args []string) error {
	format, err := c.outputFormat()
	if err != nil {
		return err
	}

	reader := service.NewFileReader()
	mode, err := app.ResolveInputMode(reader, args[0], args[1], true)
	if err != nil {
		return err
	}
	if isVerbose(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Comparing %s: %s -> %s\n", mode, args[0], args[1])
	}

	if mode == app.InputModeDirectories {
		batch := &BatchCommand{outputOptions: c.outputOptions, recursive: true}
		return batch.execute(cmd, args[0], args[1], format)
	}

	writer, closeOutput, err := c.openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOutput()

	tracker := &changeTracker{OutputFormatter: c.newFormatter(writer)}
	useCase, err := app.NewCompareUseCaseBuilder().
		WithService(service.NewCompareServiceWithReader(reader)).
		WithFileReader(reader).
		WithFormatter(tracker).
		WithConfigLoader(service.NewConfigurationLoaderWithFlags(config.NewFlagTrackerFromFlagSet(cmd.Flags()))).
		Build()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	err = useCase.Execute(ctx, domain.CompareRequest{
		OldPath:        args[0],
		NewPath:        args[1],
		OutputFormat:   format,
		OutputWriter:   writer,
		ShowUnchanged:  c.showUnchanged,
		DistanceLevels: c.levels,
		MaxLambdaDepth: c.maxLambdaDepth,
		ConfigPath:     c.configFile,
	})
	if err != nil {
		return err
	}
	return tracker.result(c.exitCode)
}

// NewCompareCmd creates and returns the compare cobra command
func NewCompareCmd() *cobra.Command {
	return NewCompareCommand().CreateCobraCommand()
}
