package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/phishscore/internal/model"
)

// errEmptyReportURL is returned when report is called with a blank URL.
var errEmptyReportURL = errors.New("URL must not be empty")

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <url>",
		Short: "Report a URL as suspicious",
		Long: `Report appends a user report about a URL to the database.

Reports are kept next to scan history so that URLs flagged by people can be
reviewed with 'phishscore history --reports'.

Examples:
  # Report a URL
  phishscore report https://paypa1-login.example/verify

  # Report with a note
  phishscore report https://paypa1-login.example/verify --note "came in a fake invoice mail"`,
		Args: cobra.ExactArgs(1),
		RunE: runReportCmd,
	}

	cmd.Flags().StringP("note", "n", "",
		"Free-form note stored with the report")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, args []string) error {
	url := strings.TrimSpace(args[0])
	if url == "" {
		return errEmptyReportURL
	}

	note, err := cmd.Flags().GetString("note")
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

	rep := model.NewUserReport(url, note, time.Now())
	if err := db.RecordReport(ctx, rep); err != nil {
		return fmt.Errorf("failed to record report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Reported %s (report #%d)\n", url, rep.ID)
	return nil
}
