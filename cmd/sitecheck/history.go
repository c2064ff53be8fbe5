package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/sitecheck/internal/config"
	"github.com/nao1215/sitecheck/internal/history"
	"github.com/nao1215/sitecheck/internal/model"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Compare stored validation runs",
		Long: `History compares the two latest runs stored with 'sitecheck check --history'.

It shows:
- New findings that appeared since the previous run
- Resolved findings that are no longer present
- The change in error and warning counts

Examples:
  # Compare the latest two runs of the current directory
  sitecheck history

  # List stored runs of a site
  sitecheck history --dir ./public --list

  # Output the comparison as JSON
  sitecheck history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("dir", "d", ".",
		"Site directory whose runs are compared")
	cmd.Flags().BoolP("list", "l", false,
		"List stored runs instead of comparing")
	cmd.Flags().BoolP("json", "j", false,
		"Output the comparison in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve site directory: %w", err)
	}

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	store, err := history.Open(config.XDGDataDir())
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if list {
		return listRuns(ctx, cmd.OutOrStdout(), store, root, time.Now())
	}
	return compareRuns(ctx, cmd.OutOrStdout(), store, root, jsonOutput)
}

// listRuns prints every stored run of root, newest first.
func listRuns(ctx context.Context, w io.Writer, store *history.Store, root string, now time.Time) error {
	runs, err := store.List(ctx, root, 0)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintf(w, "No stored runs for %s\n", root)
		fmt.Fprintln(w, "\nUse 'sitecheck check --history' to store a run.")
		return nil
	}

	fmt.Fprintf(w, "Runs for %s (%d):\n\n", root, len(runs))
	fmt.Fprintf(w, "  %-6s  %-20s  %-16s  %6s  %6s  %8s\n", "ID", "Date", "When", "Files", "Errors", "Warnings")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 72))

	for _, run := range runs {
		fmt.Fprintf(w, "  %-6d  %-20s  %-16s  %6d  %6d  %8d\n",
			run.ID,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			humanize.RelTime(run.Timestamp, now, "ago", "from now"),
			run.FilesChecked,
			run.Errors,
			run.Warnings,
		)
	}
	return nil
}

// compareRuns compares the two latest runs of root.
func compareRuns(ctx context.Context, w io.Writer, store *history.Store, root string, jsonOutput bool) error {
	runs, err := store.Latest(ctx, root, 2)
	if err != nil {
		if errors.Is(err, history.ErrNotEnoughRuns) {
			return fmt.Errorf("at least 2 stored runs are required for %s: %w", root, err)
		}
		return err
	}

	comparison := history.Compare(runs[1], runs[0])

	if jsonOutput {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(comparison)
	}
	writeComparison(w, comparison)
	return nil
}

// writeComparison prints a comparison in human-readable form.
func writeComparison(w io.Writer, c *history.Comparison) {
	fmt.Fprintf(w, "Comparison for %s\n\n", c.Root)
	fmt.Fprintf(w, "  %-10s  %-20s  %-20s  %s\n", "", "Previous", "Current", "Change")
	fmt.Fprintf(w, "  %-10s  %-20s  %-20s  %s\n", "Run",
		fmt.Sprintf("#%d", c.Previous.ID), fmt.Sprintf("#%d", c.Current.ID), "-")
	fmt.Fprintf(w, "  %-10s  %-20s  %-20s  %s\n", "Date",
		c.Previous.Timestamp.Local().Format("2006-01-02 15:04"),
		c.Current.Timestamp.Local().Format("2006-01-02 15:04"), "-")
	fmt.Fprintf(w, "  %-10s  %-20d  %-20d  %s\n", "Errors", c.Previous.Errors, c.Current.Errors, formatDelta(c.ErrorDelta))
	fmt.Fprintf(w, "  %-10s  %-20d  %-20d  %s\n", "Warnings", c.Previous.Warnings, c.Current.Warnings, formatDelta(c.WarningDelta))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Status: %s\n\n", formatDirection(c.Direction))

	writeFindingList(w, "New findings", "+", c.New)
	writeFindingList(w, "Resolved findings", "-", c.Resolved)
	fmt.Fprintf(w, "Unchanged findings: %d\n", c.Unchanged)
}

func writeFindingList(w io.Writer, title, marker string, findings []model.Finding) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(findings))
	for _, f := range findings {
		fmt.Fprintf(w, "  %s [%s] %s: %s\n", marker, f.Check, f.File, f.Message)
	}
	fmt.Fprintln(w)
}

// formatDelta formats a count change with an explicit sign.
func formatDelta(delta int) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("+%d", delta)
	case delta < 0:
		return fmt.Sprintf("%d", delta)
	default:
		return "0"
	}
}

// formatDirection formats a comparison direction for display.
func formatDirection(direction string) string {
	switch direction {
	case history.DirectionImproved:
		return "✓ Improved"
	case history.DirectionWorsened:
		return "✗ Worsened"
	default:
		return "= Unchanged"
	}
}
