package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version, GitCommit and BuildDate are overridden at build time via
// -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "jsi",
	Short:         "jsi is a tree-walking interpreter for a small JavaScript-like language",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, printing any error to stderr and
// exiting non-zero.
func Execute() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("jsi %s (commit %s, built %s)\n", Version, GitCommit, BuildDate))
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func init() {
	rootCmd.AddCommand(runCmd)
}
