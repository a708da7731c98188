// Package report renders scan results for people and tools.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown with tables and alerts for sharing
//
// Every writer accepts a single ScoreResult or a Summary built over a
// batch of results. Writers implement the Writer interface, allowing them
// to be used interchangeably and composed for multi-format output.
package report
