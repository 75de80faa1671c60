// Package report provides output formatting for corpus evaluation
// results.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown output for documentation and sharing
//
// Design decision: We separate report writing from the data structures
// (which are in the model package) so new output formats can be added
// without touching the evaluation logic. Writers implement the Writer
// interface, allowing them to be used interchangeably and composed for
// multi-format output.
package report
