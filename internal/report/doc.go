// Package report renders finished scans.
//
// This package contains writers for different output formats:
//   - SimpleWriter: a boxed verdict card for terminal display
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: GitHub flavoured Markdown with alerts and charts
//
// Design decision: Display wording is resolved once in NewScanReport so
// that every writer prints the same headline, title and action label.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
