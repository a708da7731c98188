package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/phishscore/internal/model"
)

// JSONWriter outputs results in JSON format.
// The field names match the HTTP API response so that CLI output can be
// consumed by the same tooling.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because the result types already carry their JSON tags and
// text marshalers, and no library in our stack adds anything for them.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs a single result in JSON format.
func (w *JSONWriter) Write(result *model.ScoreResult) (int, error) {
	return w.writeJSON(result)
}

// WriteSummary outputs the summary, including every result, in JSON format.
func (w *JSONWriter) WriteSummary(summary *model.Summary) (int, error) {
	return w.writeJSON(summary)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport wraps a summary with the version of the tool that produced it.
type JSONReport struct {
	// Version is the phishscore version that generated this report.
	Version string `json:"version"`

	// Summary holds the counts and the results.
	Summary *model.Summary `json:"summary"`
}

// FullJSONWriter outputs summaries with a version wrapper.
// Single results are written unwrapped.
type FullJSONWriter struct {
	*JSONWriter

	version string
}

// NewFullJSONWriter creates a writer for summaries with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// WriteSummary outputs the summary wrapped with metadata.
func (w *FullJSONWriter) WriteSummary(summary *model.Summary) (int, error) {
	return w.writeJSON(&JSONReport{Version: w.version, Summary: summary})
}
