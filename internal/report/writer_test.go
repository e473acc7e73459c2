package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/0xjam3z/webscanner/internal/model"
)

// sampleRun builds a completed run for writer tests.
func sampleRun() *model.ScanRun {
	run := model.NewScanRun("13335.json", model.TargetSpec{
		Kind:          model.TargetASNJSON,
		Value:         "13335.json",
		CountryFilter: "Norway",
	})
	run.ListEntries = 3
	run.Open80 = 2
	run.Open443 = 1
	run.Elapsed = 42 * time.Second
	run.Titles = []model.TitleRecord{
		{IP: "1.1.1.1", Port: "80", Title: "Example Domain", HasBody: true},
		{IP: "2.2.2.2", Port: "80", HasBody: false},
		{IP: "1.1.1.1", Port: "443", Title: model.NoTitle, HasBody: true},
	}
	return run
}

// TestTextWriter tests the plain-text summary.
func TestTextWriter(t *testing.T) {
	t.Parallel()

	t.Run("summary contains phase counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewTextWriter(&buf).Write(sampleRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		out := buf.String()
		for _, want := range []string{
			"Open port 80 IPs: 2",
			"Open port 443 IPs: 1",
			"Title records: 3",
			"Target list entries: 3",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("summary missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("errors appear in the summary", func(t *testing.T) {
		t.Parallel()

		run := sampleRun()
		run.ErrorMessage = "masscan exited with status 1"

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "Error: masscan exited with status 1") {
			t.Errorf("summary missing error line:\n%s", buf.String())
		}
	})
}

// TestJSONWriter tests the JSON summary.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("output round-trips", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(sampleRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.ScanRun
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Open80 != 2 || decoded.TitleCount() != 3 {
			t.Errorf("unexpected decoded run: %+v", decoded)
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(sampleRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})
}

// TestMarkdownWriter tests the Markdown summary.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("contains header and titles table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(sampleRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Web Scan Report",
			"## Results",
			"## Titles",
			"1.1.1.1",
			"Example Domain",
			"(no response body)",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("markdown missing %q", want)
			}
		}
	})

	t.Run("empty run renders without a titles table", func(t *testing.T) {
		t.Parallel()

		run := model.NewScanRun("10.0.0.1", model.TargetSpec{Kind: model.TargetSingleHost, Value: "10.0.0.1"})

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No responses collected.") {
			t.Error("expected empty-run placeholder")
		}
	})
}

// TestMultiWriter tests fan-out across writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewTextWriter(&a), NewTextWriter(&b))

	if _, err := mw.Write(sampleRun()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.String() != b.String() {
		t.Error("writers received different output")
	}
	if a.Len() == 0 {
		t.Error("no output written")
	}
}

// TestTruncateString tests the table cell truncation helper.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	if got := truncateString("short", 10); got != "short" {
		t.Errorf("got %q, want %q", got, "short")
	}
	if got := truncateString("abcdefghij", 8); got != "abcde..." {
		t.Errorf("got %q, want %q", got, "abcde...")
	}
}
