package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/phishscore/internal/model"
)

// bannerWidth is the width of section separators in text output.
const bannerWidth = 70

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether status sections with no results are shown.
	showEmpty bool

	// verbose adds finding guidance to the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs a single result in human-readable format.
func (w *SimpleWriter) Write(result *model.ScoreResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb)
	w.writeResult(&sb, result)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs a batch of results grouped by status, most
// dangerous first.
func (w *SimpleWriter) WriteSummary(summary *model.Summary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb)
	w.writeSummary(&sb, summary)

	for _, status := range model.AllStatuses() {
		results := summary.ResultsByStatus(status)
		if len(results) == 0 && !w.showEmpty {
			continue
		}

		writeSection(&sb, strings.ToUpper(status.String()))
		if len(results) == 0 {
			sb.WriteString("  No results\n\n")
			continue
		}
		for i := range results {
			w.writeResult(&sb, &results[i])
		}
	}

	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report banner.
func (w *SimpleWriter) writeHeader(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")
	sb.WriteString("                       PHISHING SCORE REPORT\n")
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n\n")
}

// writeSummary writes the status counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, summary *model.Summary) {
	writeSection(sb, "SUMMARY")

	fmt.Fprintf(sb, "  DANGEROUS:  %d\n", summary.DangerousCount)
	fmt.Fprintf(sb, "  SUSPICIOUS: %d\n", summary.SuspiciousCount)
	fmt.Fprintf(sb, "  SAFE:       %d\n", summary.SafeCount)
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  TOTAL:      %d URLs\n", summary.Total())
	if summary.MLAvailable {
		sb.WriteString("  Classifier: configured\n")
	}
	sb.WriteString("\n")
}

// writeResult writes one result with its findings.
func (w *SimpleWriter) writeResult(sb *strings.Builder, result *model.ScoreResult) {
	fmt.Fprintf(sb, "URL:        %s\n", result.URL)
	if result.RegisteredDomain != "" {
		fmt.Fprintf(sb, "Domain:     %s\n", result.RegisteredDomain)
	}
	fmt.Fprintf(sb, "Confidence: %.1f\n", result.Confidence)
	fmt.Fprintf(sb, "Status:     [%s] %s\n", statusIndicator(result.Status), result.Status)

	if len(result.Findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, f := range result.Findings {
		if f.Penalty > 0 {
			fmt.Fprintf(sb, "  * %s (-%.1f)\n", f.Title, f.Penalty)
		} else {
			fmt.Fprintf(sb, "  * %s\n", f.Title)
		}
		if f.Detail != "" {
			fmt.Fprintf(sb, "    %s\n", f.Detail)
		}
		if w.verbose {
			info := model.GetFindingInfo(f.Type)
			fmt.Fprintf(sb, "    Impact: %s\n", info.Impact)
			fmt.Fprintf(sb, "    Recommendation: %s\n", info.Recommendation)
		}
	}
	fmt.Fprintf(sb, "  Total penalty: %.1f\n", result.TotalPenalty())
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by phishscore\n")
	sb.WriteString("https://github.com/nao1215/phishscore\n")
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")
}

// writeSection writes a titled separator.
func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", bannerWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", bannerWidth))
	sb.WriteString("\n\n")
}

// statusIndicator returns a visual indicator for the status.
func statusIndicator(s model.Status) string {
	switch s {
	case model.StatusDangerous:
		return "!!"
	case model.StatusSuspicious:
		return "!"
	case model.StatusSafe:
		return "ok"
	default:
		return "?"
	}
}
