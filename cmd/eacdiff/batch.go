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

// BatchCommand represents the batch command
type BatchCommand struct {
	outputOptions

	recursive       bool
	includePatterns []string
	excludePatterns []string
	noProgress      bool
	jobs            int
}

// NewBatchCommand creates a new batch command
func NewBatchCommand() *BatchCommand {
	return &BatchCommand{
		recursive: true,
	}
}

// CreateCobraCommand creates the cobra command for comparing two trees
func (c *BatchCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <old-dir> <new-dir>",
		Short: "Compare two versions of a C# source tree",
		Long: `Compare two directory trees file by file. Files are paired by their path
relative to the tree roots; files present in only one tree are listed as
added or removed.

Every paired file is parsed up front on all CPUs, then compared member by
member. A file that fails to parse is reported and the batch continues.

Examples:
  # Compare two checkouts
  eacdiff batch v1/src v2/src

  # Only the Services folder, as YAML
  eacdiff batch --include "Services/**/*.cs" --yaml v1/src v2/src`,
		Args: cobra.ExactArgs(2),
		RunE: c.run,
	}

	c.addFlags(cmd)
	flags := cmd.Flags()
	flags.BoolVarP(&c.recursive, service.FlagRecursive, "r", true, "Descend into subdirectories")
	flags.StringSliceVar(&c.includePatterns, service.FlagInclude, append([]string(nil), domain.DefaultIncludePatterns...), "Glob patterns of files to compare")
	flags.StringSliceVar(&c.excludePatterns, service.FlagExclude, append([]string(nil), domain.DefaultExcludePatterns...), "Glob patterns of files to skip")
	flags.BoolVar(&c.noProgress, service.FlagNoProgress, false, "Disable the progress bar")
	flags.IntVarP(&c.jobs, "jobs", "j", 0, "Number of files parsed concurrently (0 = all CPUs)")

	return cmd
}

func (c *BatchCommand) run(cmd *cobra.Command, args []string) error {
	format, err := c.outputFormat()
	if err != nil {
		return err
	}
	return c.execute(cmd, args[0], args[1], format)
}

// execute compares the trees rooted at oldDir and newDir
func (c *BatchCommand) execute(cmd *cobra.Command, oldDir, newDir string, format domain.OutputFormat) error {
	writer, closeOutput, err := c.openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOutput()

	progress := service.NewProgressManager()
	progress.SetWriter(cmd.ErrOrStderr())

	reader := service.NewFileReader()
	tracker := &changeTracker{OutputFormatter: c.newFormatter(writer)}
	useCase, err := app.NewBatchUseCaseBuilder().
		WithService(service.NewCompareServiceWithReader(reader)).
		WithFileReader(reader).
		WithFormatter(tracker).
		WithConfigLoader(service.NewConfigurationLoaderWithFlags(config.NewFlagTrackerFromFlagSet(cmd.Flags()))).
		WithProgressManager(progress).
		WithConcurrency(c.jobs).
		Build()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if isVerbose(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Include: %v\nExclude: %v\n", c.includePatterns, c.excludePatterns)
	}

	err = useCase.Execute(ctx, domain.BatchRequest{
		OldDir:          oldDir,
		NewDir:          newDir,
		Recursive:       c.recursive,
		IncludePatterns: c.includePatterns,
		ExcludePatterns: c.excludePatterns,
		OutputFormat:    format,
		OutputWriter:    writer,
		ShowUnchanged:   c.showUnchanged,
		ShowProgress:    !c.noProgress,
		DistanceLevels:  c.levels,
		MaxLambdaDepth:  c.maxLambdaDepth,
		ConfigPath:      c.configFile,
	})
	if err != nil {
		return err
	}
	return tracker.result(c.exitCode)
}

// NewBatchCmd creates and returns the batch cobra command
func NewBatchCmd() *cobra.Command {
	return NewBatchCommand().CreateCobraCommand()
}
