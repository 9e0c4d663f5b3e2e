package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/eacdiff/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "eacdiff",
	Short: "A statement-level syntax comparer for C# edit and continue",
	Long: `eacdiff compares two versions of C# source code member by member and
reports how the statements of each body map onto each other.

Statements are matched with distance-tiered tree matching, and the
resulting edit script lists updates, moves, reorders, inserts and deletes.
Lambda bodies nested in a member are matched on their own.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewCompareCmd())
	rootCmd.AddCommand(NewBatchCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	os.Exit(run(rootCmd))
}

// run executes the command tree and maps its error to an exit code
func run(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var changed *changesFoundError
	if errors.As(err, &changed) {
		return exitChanges
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return exitFailure
}
