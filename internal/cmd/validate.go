package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/dirindex/internal/config"
	"github.com/harrison/dirindex/internal/display"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [source-directory]",
		Short: "Check the configuration without scanning",
		Long: `Load the configuration and flags exactly as generate would and check:
  - the source directory exists, is a directory and is readable
  - the output format is supported
  - the name filters are valid regular expressions
  - the target directory is relative and the target filename is a plain name

Prints the resolved index path. Exit code: 0 if valid, 1 otherwise`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return validateWithOutput(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	addIndexFlags(cmd.Flags())

	return cmd
}

// validateWithOutput checks cfg against the filesystem and reports the result.
func validateWithOutput(cfg *config.Config, out, errOut io.Writer) error {
	opts := indexOptions(cfg)
	if err := opts.Validate(); err != nil {
		return err
	}

	for _, w := range display.CheckOptions(opts) {
		w.Display(errOut)
	}

	format, _ := cfg.Format()
	fmt.Fprintln(out, "Configuration is valid")
	fmt.Fprintf(out, "  Source:    %s\n", cfg.SourceDirectory)
	fmt.Fprintf(out, "  Recursive: %t (children only: %t)\n", cfg.Recursive, cfg.SourceChildrenOnly)
	fmt.Fprintf(out, "  Format:    %s\n", format)
	fmt.Fprintf(out, "  Index:     %s\n", opts.TargetPath())
	return nil
}
