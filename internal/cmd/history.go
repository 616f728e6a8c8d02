package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/harrison/dirindex/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded generate runs",
		Long: `List generate runs recorded in the history database, newest first.

The database is history.db_path from the config file, or
$DIRINDEX_HOME/history.db (default: .dirindex/history.db).`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	addConfigFlags(cmd.Flags())
	cmd.Flags().Int("limit", 10, "Maximum number of runs to show (0 = all)")
	cmd.Flags().String("db", "", "Path to the history database (overrides config)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, base, err := loadConfigFile(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db") {
		cfg.History.DBPath, _ = cmd.Flags().GetString("db")
	}
	cfg.ResolvePaths(base)

	dbPath, err := cfg.HistoryDBPath()
	if err != nil {
		return fmt.Errorf("failed to resolve history database: %w", err)
	}
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runs, err := store.RecentRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	printRuns(cmd.OutOrStdout(), runs)
	return nil
}

func printRuns(out io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tWHEN\tSOURCE\tFORMAT\tDIRS\tFILES\tSIZE")
	for _, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			id,
			humanize.Time(r.CreatedAt),
			r.SourceDir,
			r.Format,
			r.TotalDirs,
			r.TotalFiles,
			humanize.Bytes(uint64(r.Bytes)),
		)
	}
	w.Flush()
}
