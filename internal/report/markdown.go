package report

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/phishscore/internal/model"
)

// MarkdownWriter outputs results in Markdown format.
// This format is designed for pasting into tickets and chat when a
// suspicious link is being triaged.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs a single result in Markdown format.
func (w *MarkdownWriter) Write(result *model.ScoreResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Phishing Score Report")
	md.PlainText("")
	w.writeResult(md, result, true)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSummary outputs a batch of results in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Phishing Score Report")
	md.PlainText("")
	w.writeSummary(md, summary)

	if summary.Total() > 0 {
		md.H2("Results")
		md.PlainText("")
		for _, status := range model.AllStatuses() {
			for _, r := range summary.ResultsByStatus(status) {
				w.writeResult(md, &r, false)
			}
		}
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeSummary writes the status counts, the chart and the overall alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Count"},
		Rows: [][]string{
			{"🔴 Dangerous", strconv.Itoa(summary.DangerousCount)},
			{"🟡 Suspicious", strconv.Itoa(summary.SuspiciousCount)},
			{"🟢 Safe", strconv.Itoa(summary.SafeCount)},
			{"**Total**", "**" + strconv.Itoa(summary.Total()) + "**"},
		},
	})
	md.PlainText("")

	if summary.Total() > 0 {
		w.writePieChart(md, summary)
	}

	switch {
	case summary.DangerousCount > 0:
		md.Cautionf("%d URL(s) look dangerous. Do not open them.", summary.DangerousCount)
	case summary.SuspiciousCount > 0:
		md.Warningf("%d URL(s) look suspicious. Verify them before visiting.", summary.SuspiciousCount)
	case summary.Total() > 0:
		md.Tip("No phishing traits above the warning threshold were found.")
	default:
		md.Note("No URLs were scanned.")
	}
	md.PlainText("")

	if types := summary.FindingTypes(); len(types) > 0 {
		rows := make([][]string, len(types))
		for i, t := range types {
			rows[i] = []string{"`" + t + "`", strconv.Itoa(summary.FindingCounts[t])}
		}
		md.H3("Signals")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Finding", "URLs"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writePieChart writes a mermaid pie chart for the status distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Status Distribution"),
		piechart.WithShowData(true),
	)

	if summary.DangerousCount > 0 {
		chart.LabelAndIntValue("Dangerous", uint64(summary.DangerousCount))
	}
	if summary.SuspiciousCount > 0 {
		chart.LabelAndIntValue("Suspicious", uint64(summary.SuspiciousCount))
	}
	if summary.SafeCount > 0 {
		chart.LabelAndIntValue("Safe", uint64(summary.SafeCount))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeResult writes one result: a property table, an alert for single
// results, and the findings table.
func (w *MarkdownWriter) writeResult(md *markdown.Markdown, result *model.ScoreResult, alert bool) {
	if !alert {
		md.H3(statusEmoji(result.Status) + " " + truncateString(result.URL, 80))
		md.PlainText("")
	}

	// A configured classifier can still fail for one URL.
	classifier := "not configured"
	switch {
	case result.HasFindingType(model.FindingTypeML):
		classifier = "included in score"
	case result.MLAvailable:
		classifier = "configured, not applied"
	}

	rows := [][]string{{"URL", "`" + result.URL + "`"}}
	if result.RegisteredDomain != "" {
		rows = append(rows, []string{"Registered domain", "`" + result.RegisteredDomain + "`"})
	}
	rows = append(rows,
		[]string{"Confidence", fmt.Sprintf("%.1f", result.Confidence)},
		[]string{"Status", statusEmoji(result.Status) + " " + result.Status.String()},
		[]string{"Heuristic penalty", fmt.Sprintf("%.1f", result.TotalPenalty())},
		[]string{"Classifier", classifier},
	)
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if alert {
		switch result.Status {
		case model.StatusDangerous:
			md.Caution("This URL shows several phishing traits. Do not open it.")
		case model.StatusSuspicious:
			md.Warning("This URL shows some phishing traits. Verify it before visiting.")
		default:
			md.Tip("No phishing traits above the warning threshold were found.")
		}
		md.PlainText("")
	}

	if len(result.Findings) == 0 {
		md.PlainText("No findings.")
		md.PlainText("")
		return
	}

	rows = make([][]string, len(result.Findings))
	for i, f := range result.Findings {
		rows[i] = []string{
			f.Title,
			truncateString(f.Detail, 60),
			fmt.Sprintf("%.1f", f.Penalty),
			truncateString(model.GetFindingInfo(f.Type).Recommendation, 60),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Finding", "Detail", "Penalty", "Recommendation"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, f := range result.Findings {
		if f.Penalty > 0 {
			md.Details(f.Title, model.GetFindingInfo(f.Type).Impact)
		}
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [phishscore](https://github.com/nao1215/phishscore)*")
}

// statusEmoji returns the colored marker for a status.
func statusEmoji(s model.Status) string {
	switch s {
	case model.StatusDangerous:
		return "🔴"
	case model.StatusSuspicious:
		return "🟡"
	default:
		return "🟢"
	}
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
