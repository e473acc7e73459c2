package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/0xjam3z/webscanner/internal/config"
	"github.com/0xjam3z/webscanner/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past scan runs",
		Long: `History lists the scan runs recorded in the local database, newest
first. Use --run to print the full title report of one stored run.

Examples:
  # List the last 20 runs
  webscanner history

  # List the last 5 runs
  webscanner history --limit 5

  # Show the title records of run 3
  webscanner history --run 3`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().Int64P("run", "r", 0, "Show the title records of one run by ID")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	runID, err := cmd.Flags().GetInt64("run")
	if err != nil {
		return err
	}

	// History is read-only: never create an empty database just to
	// report that it is empty.
	db, err := database.Open(config.XDGDataDir(), database.Options{EnableWAL: true})
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No scan history found.")
		return nil
	}
	defer db.Close()

	if runID > 0 {
		return showRun(cmd.Context(), cmd, db, runID)
	}

	return listRuns(cmd.Context(), cmd, db, limit)
}

// listRuns prints a table of stored runs.
func listRuns(ctx context.Context, cmd *cobra.Command, db *database.ScanDB, limit int) error {
	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No scan history found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tINPUT\tKIND\tOPEN 80\tOPEN 443\tTITLES\tSTATUS")
	for _, r := range runs {
		status := "ok"
		if r.Error != "" {
			status = "error"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID,
			r.StartedAt.Format("2006-01-02 15:04"),
			r.Input,
			r.TargetKind,
			r.Open80,
			r.Open443,
			r.TitleCount,
			status,
		)
	}
	return w.Flush()
}

// showRun prints the stored title report of one run.
func showRun(ctx context.Context, cmd *cobra.Command, db *database.ScanDB, runID int64) error {
	run, err := db.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %d not found", runID)
	}

	titles, err := db.RunTitles(ctx, runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %d: %s (%s)\n", runID, run.Input, run.StartedAt.Format("2006-01-02 15:04:05"))
	for _, t := range titles {
		fmt.Fprintln(out, t.ReportLine())
	}
	return nil
}
