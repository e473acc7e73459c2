// Package report renders run summaries in text, JSON, and Markdown.
// The summary is separate from the title report file the pipeline
// writes; these writers describe one run to a terminal or a tool.
package report
