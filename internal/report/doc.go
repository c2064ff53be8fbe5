// Package report renders a finished validation report.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown output for CI summaries and pull requests
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed with MultiWriter. No writer adds
// timestamps, so an unchanged site renders byte-identical output.
package report
