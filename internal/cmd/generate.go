package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harrison/dirindex/internal/config"
	"github.com/harrison/dirindex/internal/display"
	"github.com/harrison/dirindex/internal/history"
	"github.com/harrison/dirindex/internal/indexer"
	"github.com/harrison/dirindex/internal/logger"
	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [source-directory]",
		Short: "Scan a directory and write its index file",
		Long: `Scan a directory tree and write an index of its directories and files.

The source directory comes from the argument or from source_directory in the
config file. Configuration is loaded from .dirindex/config.yaml under the base
directory if present. CLI flags override configuration file settings.

The index is written to <temp-dir>/<target-dir>/<target-filename> through a
temporary file, so a failed run never leaves a partial index behind.

Examples:
  # XML index of src/main/resources into build/dirindex/dirindex.xml
  dirindex generate src/main/resources

  # Plain list of property files, without the source directory's own line
  dirindex generate conf --children-only --filename-regex '\.properties$' -f text-name-only

  # Only the top level, into a custom location
  dirindex generate assets --no-recursive --temp-dir out --target-dir META-INF`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}

	addIndexFlags(cmd.Flags())
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	runID := uuid.NewString()

	loggers := []logger.Logger{logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)}
	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel, runID)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLog.Close()
		loggers = append(loggers, fileLog)
	}
	log := logger.NewMultiLogger(loggers...)

	opts := indexOptions(cfg)
	warnings := display.CheckOptions(opts)
	if cfg.History.Enabled {
		if dbPath, err := cfg.HistoryDBPath(); err == nil {
			warnings = append(warnings, display.CheckHistoryPath(opts.SourceDir, dbPath)...)
		}
	}
	for _, w := range warnings {
		w.Display(cmd.ErrOrStderr())
	}

	result, err := indexer.Generate(opts, log)
	if err != nil {
		log.LogError(err.Error())
		return err
	}
	log.LogSummary(result)

	if cfg.History.Enabled {
		recordHistory(cmd.Context(), cfg, result, runID, log)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Index written to %s (%s)\n",
		result.TargetPath, indexer.FoundTotalMessage(result.TotalDirs, result.TotalFiles))
	return nil
}

// recordHistory stores the run and logs how it compares to the previous run
// of the same directory. The index is already written, so failures here are
// only warnings.
func recordHistory(ctx context.Context, cfg *config.Config, result *indexer.Result, runID string, log logger.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}

	dbPath, err := cfg.HistoryDBPath()
	if err != nil {
		log.LogWarn(fmt.Sprintf("Run history unavailable: %v", err))
		return
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		log.LogWarn(fmt.Sprintf("Run history unavailable: %v", err))
		return
	}
	defer store.Close()

	previous, err := store.LastRunFor(ctx, result.SourceDir)
	if err != nil {
		log.LogWarn(fmt.Sprintf("Failed to read run history: %v", err))
	} else if previous != nil {
		log.LogDebug(fmt.Sprintf("Previous run %s: %d directories, %d files (now %+d, %+d)",
			previous.ID, previous.TotalDirs, previous.TotalFiles,
			result.TotalDirs-previous.TotalDirs, result.TotalFiles-previous.TotalFiles))
	}

	run := &history.Run{
		ID:           runID,
		SourceDir:    result.SourceDir,
		TargetPath:   result.TargetPath,
		Format:       string(result.Format),
		Recursive:    cfg.Recursive,
		ChildrenOnly: cfg.SourceChildrenOnly,
		TotalDirs:    result.TotalDirs,
		TotalFiles:   result.TotalFiles,
		Bytes:        result.Bytes,
		Duration:     result.Duration,
	}
	if err := store.RecordRun(ctx, run); err != nil {
		log.LogWarn(fmt.Sprintf("Failed to record run history: %v", err))
		return
	}
	log.LogDebug(fmt.Sprintf("Recorded run %s in %s", runID, dbPath))
}
