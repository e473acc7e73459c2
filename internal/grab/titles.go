package grab

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/0xjam3z/webscanner/internal/model"
)

// Title extracts the contents of the first <title> element in html.
// Tag matching is case-insensitive; the extracted content keeps its
// original casing and is trimmed of surrounding whitespace. When no
// usable title exists the literal model.NoTitle is returned.
//
// The lookup is positional rather than a DOM parse: find the first
// "<title" open (attributes allowed), the next ">", then the next
// "</title>". Grabber bodies are routinely truncated mid-document,
// which a structural parser would reject outright.
func Title(html string) string {
	lower := strings.ToLower(html)

	start := strings.Index(lower, "<title")
	if start < 0 {
		return model.NoTitle
	}

	gt := strings.IndexByte(lower[start:], '>')
	if gt < 0 {
		return model.NoTitle
	}
	contentStart := start + gt + 1

	end := strings.Index(lower[contentStart:], "</title>")
	if end < 0 {
		return model.NoTitle
	}

	title := strings.TrimSpace(html[contentStart : contentStart+end])
	if title == "" {
		return model.NoTitle
	}
	return title
}

// Extractor parses grabber output into title records.
type Extractor struct {
	// logger for structured logging.
	logger *slog.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithExtractorLogger sets a custom logger.
func WithExtractorLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an Extractor with the given options.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Extract reads the grabber's JSON-lines output at grabPath and
// appends one report line per host record to sink, returning the
// records in arrival order. port is recorded on each record for
// downstream consumers; it does not affect parsing.
//
// Lines without an extractable ip field are skipped entirely: grabber
// output may contain metadata lines that are not host results. A
// record with an ip but no body yields a degraded "no response body"
// line rather than an error.
func (e *Extractor) Extract(grabPath, port string, sink io.Writer) ([]model.TitleRecord, error) {
	in, err := os.Open(grabPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read grabber output %s: %w", grabPath, err)
	}
	defer in.Close()

	records := make([]model.TitleRecord, 0)

	sc := bufio.NewScanner(in)
	// Grabber lines embed whole response bodies; the default 64KB
	// token limit is far too small.
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for sc.Scan() {
		line := sc.Text()

		ip, ok := stringField(line, ipFieldRe)
		if !ok {
			continue
		}

		rec := model.TitleRecord{IP: ip, Port: port}
		if body, ok := stringField(line, bodyFieldRe); ok {
			rec.HasBody = true
			rec.Title = Title(body)
		}

		if _, err := io.WriteString(sink, rec.ReportLine()+"\n"); err != nil {
			return records, fmt.Errorf("failed to write report line: %w", err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return records, fmt.Errorf("failed to read grabber output %s: %w", grabPath, err)
	}

	e.logger.Info("extracted titles", "path", grabPath, "port", port, "records", len(records))
	return records, nil
}
