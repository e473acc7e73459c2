package grab

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xjam3z/webscanner/internal/model"
)

// TestTitle tests positional title extraction from HTML bodies.
func TestTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "mixed-case tags with surrounding whitespace",
			html: "<HTML><Title> Hello </Title></html>",
			want: "Hello",
		},
		{
			name: "lowercase title",
			html: "<html><head><title>Example Domain</title></head></html>",
			want: "Example Domain",
		},
		{
			name: "title tag with attributes",
			html: `<title data-page="home">Home</title>`,
			want: "Home",
		},
		{
			name: "content casing preserved",
			html: "<TITLE>MiXeD CaSe</TITLE>",
			want: "MiXeD CaSe",
		},
		{
			name: "no title tag",
			html: "<html><body>nothing here</body></html>",
			want: model.NoTitle,
		},
		{
			name: "unclosed open tag",
			html: "<title",
			want: model.NoTitle,
		},
		{
			name: "missing closing tag",
			html: "<title>half a page",
			want: model.NoTitle,
		},
		{
			name: "empty title",
			html: "<title></title>",
			want: model.NoTitle,
		},
		{
			name: "whitespace-only title",
			html: "<title>   \t  </title>",
			want: model.NoTitle,
		},
		{
			name: "only first title is used",
			html: "<title>First</title><title>Second</title>",
			want: "First",
		},
		{
			name: "empty body",
			html: "",
			want: model.NoTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Title(tt.html); got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.html, got, tt.want)
			}
		})
	}
}

// grabFixture writes grabber JSON-lines output and returns its path.
func grabFixture(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "zgrab_results_80.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestExtract tests grabber output parsing into title records.
func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("emits title and no-body lines", func(t *testing.T) {
		t.Parallel()

		path := grabFixture(t,
			`{"ip": "1.1.1.1", "data": {"http": {"response": {"body": "<html><title>One</title></html>"}}}}`+"\n"+
				`{"ip": "2.2.2.2", "data": {"http": {"error": "connection refused"}}}`+"\n"+
				`{"level": "info", "msg": "scan complete"}`+"\n")

		var sink bytes.Buffer
		records, err := NewExtractor().Extract(path, "80", &sink)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(records) != 2 {
			t.Fatalf("got %d records, want 2", len(records))
		}
		if records[0].IP != "1.1.1.1" || records[0].Title != "One" || !records[0].HasBody {
			t.Errorf("unexpected first record: %+v", records[0])
		}
		if records[1].IP != "2.2.2.2" || records[1].HasBody {
			t.Errorf("unexpected second record: %+v", records[1])
		}

		want := "IP: 1.1.1.1 - Title: One\n" +
			"IP: 2.2.2.2 - No response body found\n"
		if sink.String() != want {
			t.Errorf("got %q, want %q", sink.String(), want)
		}
	})

	t.Run("escaped quotes inside body do not truncate the match", func(t *testing.T) {
		t.Parallel()

		path := grabFixture(t,
			`{"ip": "3.3.3.3", "body": "<html lang=\"en\"><title>Quoted \"Site\"</title></html>"}`+"\n")

		var sink bytes.Buffer
		records, err := NewExtractor().Extract(path, "80", &sink)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("got %d records, want 1", len(records))
		}
		if records[0].Title != `Quoted "Site"` {
			t.Errorf("got title %q, want %q", records[0].Title, `Quoted "Site"`)
		}
	})

	t.Run("body without a title yields the fallback", func(t *testing.T) {
		t.Parallel()

		path := grabFixture(t, `{"ip": "4.4.4.4", "body": "<html><body>plain</body></html>"}`+"\n")

		var sink bytes.Buffer
		records, err := NewExtractor().Extract(path, "443", &sink)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if records[0].Title != model.NoTitle {
			t.Errorf("got title %q, want %q", records[0].Title, model.NoTitle)
		}
		if sink.String() != "IP: 4.4.4.4 - Title: No title found\n" {
			t.Errorf("got %q", sink.String())
		}
	})

	t.Run("extraction is idempotent over the same input", func(t *testing.T) {
		t.Parallel()

		path := grabFixture(t,
			`{"ip": "1.1.1.1", "body": "<title>A</title>"}`+"\n"+
				`{"ip": "2.2.2.2"}`+"\n"+
				`{"ip": "3.3.3.3", "body": "no tags"}`+"\n")

		var first, second bytes.Buffer
		e := NewExtractor()
		if _, err := e.Extract(path, "80", &first); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := e.Extract(path, "80", &second); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !bytes.Equal(first.Bytes(), second.Bytes()) {
			t.Errorf("outputs differ:\nfirst:  %q\nsecond: %q", first.String(), second.String())
		}
	})

	t.Run("record order follows input order", func(t *testing.T) {
		t.Parallel()

		path := grabFixture(t,
			`{"ip": "9.9.9.9", "body": "<title>Z</title>"}`+"\n"+
				`{"ip": "1.1.1.1", "body": "<title>A</title>"}`+"\n")

		var sink bytes.Buffer
		records, err := NewExtractor().Extract(path, "80", &sink)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if records[0].IP != "9.9.9.9" || records[1].IP != "1.1.1.1" {
			t.Errorf("records out of order: %+v", records)
		}
	})

	t.Run("missing grabber output fails", func(t *testing.T) {
		t.Parallel()

		var sink bytes.Buffer
		_, err := NewExtractor().Extract(filepath.Join(t.TempDir(), "missing"), "80", &sink)
		if err == nil {
			t.Error("expected error for missing grabber output")
		}
	})
}
