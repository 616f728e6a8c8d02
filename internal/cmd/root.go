package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for dirindex
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirindex",
		Short: "Write an index file describing a directory tree",
		Long: `dirindex scans a directory tree and writes an index of its directories
and files, with sizes and counts, as XML, plain text, a text tree or HTML.

It is meant to run as a build step: the index is written atomically under the
build output directory so it can be packaged with the rest of the build.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the error
		SilenceErrors: true,
	}

	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
