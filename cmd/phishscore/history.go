package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/phishscore/internal/model"
)

// defaultHistoryLimit is the number of rows shown when --limit is not set.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [url]",
		Short: "Show past scans and reports",
		Long: `History lists scan results and user reports stored in the database.

Without a URL, the most recent scans across all URLs are shown. With a URL,
only that URL's scans are shown, newest first.

Examples:
  # Recent scans
  phishscore history

  # All scans of one URL
  phishscore history https://example.com --limit 0

  # User reports
  phishscore history --reports

  # JSON output
  phishscore history --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("reports", "r", false,
		"List user reports instead of scans")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of rows (0 for all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	var url string
	if len(args) > 0 {
		url = args[0]
	}

	showReports, err := cmd.Flags().GetBool("reports")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := setupLogger(cmd, cfg, slog.LevelWarn)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	db, err := openDB(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()

	if showReports {
		reports, err := db.Reports(ctx, url, limit)
		if err != nil {
			return fmt.Errorf("failed to list reports: %w", err)
		}
		if jsonOutput {
			return writeHistoryJSON(out, map[string]any{"reports": nonNil(reports)})
		}
		listReports(out, url, reports)
		return nil
	}

	var scans []model.ScanRecord
	if url != "" {
		scans, err = db.ScanHistory(ctx, url, limit)
	} else {
		scans, err = db.RecentScans(ctx, limit)
	}
	if err != nil {
		return fmt.Errorf("failed to list scans: %w", err)
	}
	if jsonOutput {
		return writeHistoryJSON(out, map[string]any{"scans": nonNil(scans)})
	}
	listScans(out, url, scans)
	return nil
}

// nonNil turns a nil slice into an empty one so JSON shows [] not null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// writeHistoryJSON writes v as indented JSON.
func writeHistoryJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// listScans prints scan records as a table.
func listScans(w io.Writer, url string, scans []model.ScanRecord) {
	if len(scans) == 0 {
		if url != "" {
			fmt.Fprintf(w, "No scan history found for %s\n", url)
		} else {
			fmt.Fprintln(w, "No scans found in the database.")
		}
		fmt.Fprintln(w, "\nUse 'phishscore scan <url>' to scan a URL.")
		return
	}

	if url != "" {
		fmt.Fprintf(w, "Scan history for %s (%d scans):\n\n", url, len(scans))
	} else {
		fmt.Fprintf(w, "Recent scans (%d):\n\n", len(scans))
	}

	fmt.Fprintf(w, "  %-6s  %-20s  %-5s  %-10s  %s\n", "ID", "Date", "Score", "Status", "URL")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 76))
	for _, s := range scans {
		fmt.Fprintf(w, "  %-6d  %-20s  %-5d  %-10s  %s\n",
			s.ID,
			formatDate(s),
			s.Confidence,
			s.Status,
			truncate(s.URL, 60),
		)
	}
}

// listReports prints user reports as a table.
func listReports(w io.Writer, url string, reports []model.UserReport) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No reports found.")
		fmt.Fprintln(w, "\nUse 'phishscore report <url>' to report a URL.")
		return
	}

	if url != "" {
		fmt.Fprintf(w, "Reports for %s (%d):\n\n", url, len(reports))
	} else {
		fmt.Fprintf(w, "Reports (%d):\n\n", len(reports))
	}

	fmt.Fprintf(w, "  %-6s  %-20s  %-40s  %s\n", "ID", "Date", "URL", "Note")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 76))
	for _, r := range reports {
		date := "-"
		if !r.CreatedAt.IsZero() {
			date = r.CreatedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "  %-6d  %-20s  %-40s  %s\n", r.ID, date, truncate(r.URL, 40), r.Note)
	}
}

// formatDate renders a record's timestamp; legacy rows may lack one.
func formatDate(s model.ScanRecord) string {
	if s.CreatedAt.IsZero() {
		return "-"
	}
	return s.CreatedAt.Format("2006-01-02 15:04:05")
}

// truncate shortens s to maxLen runes, marking the cut with "...".
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
