package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/0xjam3z/webscanner/internal/model"
)

// MarkdownWriter outputs run summaries in Markdown format.
// This format is designed for documentation and sharing.
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

// Write outputs the run summary in Markdown format.
func (w *MarkdownWriter) Write(run *model.ScanRun) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeResults(md, run)
	w.writeTitles(md, run)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.ScanRun) {
	md.H1("Web Scan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Input", "`" + run.Input + "`"},
			{"Target Kind", run.Target.Kind.String()},
			{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", run.Elapsed.Round(timeRounding).String()},
			{"Status", w.statusText(run)},
		},
	})
	md.PlainText("")
}

// statusText returns the status cell based on run state.
func (w *MarkdownWriter) statusText(run *model.ScanRun) string {
	if run.ErrorMessage != "" {
		return "❌ Error - " + run.ErrorMessage
	}
	return "✅ Complete"
}

// writeResults writes the per-phase count summary.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, run *model.ScanRun) {
	md.H2("Results")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Target list entries", strconv.Itoa(run.ListEntries)},
			{"Open port 80 IPs", strconv.Itoa(run.Open80)},
			{"Open port 443 IPs", strconv.Itoa(run.Open443)},
			{"Title records", strconv.Itoa(run.TitleCount())},
		},
	})
	md.PlainText("")
}

// writeTitles writes the extracted titles table.
func (w *MarkdownWriter) writeTitles(md *markdown.Markdown, run *model.ScanRun) {
	md.H2("Titles")
	md.PlainText("")

	if run.TitleCount() == 0 {
		md.PlainText("No responses collected.")
		md.PlainText("")
		return
	}

	enriched := false
	for _, t := range run.Titles {
		if t.Country != "" {
			enriched = true
			break
		}
	}

	headers := []string{"IP", "Port", "Title"}
	if enriched {
		headers = append(headers, "Country")
	}

	rows := make([][]string, 0, run.TitleCount())
	for _, t := range run.Titles {
		title := t.Title
		if !t.HasBody {
			title = "(no response body)"
		}

		row := []string{t.IP, t.Port, truncateString(title, 60)}
		if enriched {
			country := t.Country
			if country == "" {
				country = "-"
			}
			row = append(row, country)
		}
		rows = append(rows, row)
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
