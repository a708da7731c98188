package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/phishscore/internal/config"
	"github.com/nao1215/phishscore/internal/database"
	"github.com/nao1215/phishscore/internal/engine"
	"github.com/nao1215/phishscore/internal/extract"
	"github.com/nao1215/phishscore/internal/model"
	"github.com/nao1215/phishscore/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [url...]",
		Short: "Score URLs for phishing risk",
		Long: `Scan assigns a confidence score to each URL and explains the signals behind it.

Confidence starts at 100 and is reduced by heuristic findings:
- Suspicious keywords in the path or query (login, verify, account, ...)
- A numeric IP address as host
- Non-ASCII or punycode host names (homoglyph attacks)
- Long, high-entropy URLs
- Credential-bearing query parameters (token, session, password, ...)

When model.json and vectorizer.json are present in the model directory,
a local classifier contributes 40% of the final score.

Status thresholds: Safe >= 80, Suspicious >= 50, otherwise Dangerous.

Examples:
  # Score a single URL
  phishscore scan https://www.google.com

  # Score every URL in a file (one per line, # starts a comment)
  phishscore scan --list urls.txt

  # Score the links of a saved e-mail or web page
  phishscore scan --html message.html --base-url https://mail.example.com

  # Output a Markdown report to a file
  phishscore scan --markdown -o report.md --list urls.txt

  # Score without recording to the database
  phishscore scan --no-save https://example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Input flags
	cmd.Flags().StringP("list", "l", "",
		"Read URLs from file, one per line")
	cmd.Flags().String("html", "",
		"Extract and score the links of an HTML file")
	cmd.Flags().String("base-url", "",
		"Base URL used to resolve relative links with --html")

	// Batch scanning flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent scans")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Storage and model flags
	cmd.Flags().Bool("no-save", false,
		"Do not record scan results in the database")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")
	cmd.Flags().String("model-dir", config.DefaultModelDir,
		"Directory containing model.json and vectorizer.json")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScanConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := setupLogger(cmd, cfg, slog.LevelWarn)
	if err != nil {
		return err
	}

	targets, err := collectTargets(cmd, args, logger)
	if err != nil {
		return err
	}
	cfg.Targets = targets

	if err := cfg.ValidateScan(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	var db *database.ScanDB
	if cfg.SaveToDB {
		db, err = openDB(cfg, logger)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	e := newEngine(cfg, logger, db)
	bp := engine.NewBatchProcessor(e,
		engine.WithConcurrency(cfg.BatchSize),
		engine.WithBatchLogger(logger),
		engine.WithRecording(cfg.SaveToDB),
	)

	results, err := bp.ProcessBatch(ctx, cfg.Targets)
	if err != nil {
		return fmt.Errorf("scan interrupted: %w", err)
	}

	return outputResults(cmd, cfg, results)
}

// buildScanConfig applies the scan flags on top of the loaded configuration.
func buildScanConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if flagChanged(cmd, "batch") {
		cfg.BatchSize, err = cmd.Flags().GetInt("batch")
		if err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	if noSave {
		cfg.SaveToDB = false
	}

	return cfg, nil
}

// collectTargets gathers URLs from arguments, --list and --html, in that
// order.
func collectTargets(cmd *cobra.Command, args []string, logger *slog.Logger) ([]string, error) {
	targets := append([]string(nil), args...)

	if listFile := getStringFlag(cmd, "list"); listFile != "" {
		urls, err := readURLList(listFile)
		if err != nil {
			return nil, err
		}
		targets = append(targets, urls...)
	}

	if htmlFile := getStringFlag(cmd, "html"); htmlFile != "" {
		urls, err := extractHTMLLinks(htmlFile, getStringFlag(cmd, "base-url"), logger)
		if err != nil {
			return nil, err
		}
		targets = append(targets, urls...)
	}

	return targets, nil
}

// readURLList reads one URL per line. Blank lines and lines starting with
// # are skipped.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open URL list: %w", err)
	}
	defer f.Close()

	return parseURLList(f)
}

// parseURLList parses the URL list format read by readURLList.
func parseURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}
	return urls, nil
}

// extractHTMLLinks returns the links of an HTML document. Anchors whose
// visible text names a different host are logged as warnings.
func extractHTMLLinks(path, baseURL string, logger *slog.Logger) ([]string, error) {
	extractor, err := extract.NewExtractor(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	f, err := os.Open(path) //nolint:gosec // User-provided HTML path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer f.Close()

	result, err := extractor.Extract(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML file: %w", err)
	}

	for _, l := range result.DeceptiveLinks() {
		logger.Warn("link text does not match its target",
			"text", l.Text,
			"url", l.URL,
		)
	}

	logger.Info("extracted links from HTML",
		"file", path,
		"title", result.Title,
		"links", len(result.Links),
	)

	return result.URLs(), nil
}

// outputResults writes the results in the requested format. A single
// result is written on its own; several are written as a summary.
func outputResults(cmd *cobra.Command, cfg *config.Config, results []model.ScoreResult) error {
	output := cmd.OutOrStdout()
	if cfg.ReportFile != "" {
		f, err := createOutputFile(cfg.ReportFile)
		if err != nil {
			return err
		}
		defer f.Close()
		output = f
	}

	w := newReportWriter(output, cfg)

	var err error
	if len(results) == 1 {
		_, err = w.Write(&results[0])
	} else {
		_, err = w.WriteSummary(model.NewSummary(results, time.Now().UTC()))
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// newReportWriter selects the report writer for cfg.
func newReportWriter(output io.Writer, cfg *config.Config) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
