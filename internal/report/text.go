package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/0xjam3z/webscanner/internal/model"
)

// timeRounding keeps elapsed durations readable in summaries.
const timeRounding = 10 * time.Millisecond

// TextWriter outputs run summaries as plain text for terminal display.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run summary as plain text.
func (w *TextWriter) Write(run *model.ScanRun) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Scan input: %s (%s)\n", run.Input, run.Target.Kind)
	fmt.Fprintf(&sb, "Target list entries: %d\n", run.ListEntries)
	fmt.Fprintf(&sb, "Open port 80 IPs: %d\n", run.Open80)
	fmt.Fprintf(&sb, "Open port 443 IPs: %d\n", run.Open443)
	fmt.Fprintf(&sb, "Title records: %d\n", run.TitleCount())
	fmt.Fprintf(&sb, "Elapsed: %s\n", run.Elapsed.Round(timeRounding))

	if run.ErrorMessage != "" {
		fmt.Fprintf(&sb, "Error: %s\n", run.ErrorMessage)
	}

	return io.WriteString(w.output, sb.String())
}
