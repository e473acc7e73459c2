package target

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// asnDoc is a well-formed three-record ASN JSON document.
const asnDoc = `[
  {"start_ip": "1.0.0.0", "end_ip": "1.0.0.255", "country_name": "Australia"},
  {"start_ip": "31.45.0.0", "end_ip": "31.45.127.255", "country_name": "Norway"},
  {"start_ip": "2001:db8::", "end_ip": "2001:db8::ffff", "country_name": "Norway"}
]`

// writeDoc writes an ASN document fixture and returns its path plus a
// list output path in the same directory.
func writeDoc(t *testing.T, doc string) (jsonPath, listPath string) {
	t.Helper()

	dir := t.TempDir()
	jsonPath = filepath.Join(dir, "country_asn.json")
	listPath = filepath.Join(dir, "list")
	if err := os.WriteFile(jsonPath, []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}
	return jsonPath, listPath
}

// TestExtractRanges tests tolerant range extraction from ASN documents.
func TestExtractRanges(t *testing.T) {
	t.Parallel()

	t.Run("extracts all IPv4 ranges without filter", func(t *testing.T) {
		t.Parallel()

		jsonPath, listPath := writeDoc(t, asnDoc)
		b := NewBuilder()

		count, err := b.ExtractRanges(jsonPath, listPath, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// The IPv6 record is skipped silently.
		if count != 2 {
			t.Errorf("got count %d, want 2", count)
		}

		data, err := os.ReadFile(listPath)
		if err != nil {
			t.Fatal(err)
		}
		want := "1.0.0.0-1.0.0.255\n31.45.0.0-31.45.127.255\n"
		if string(data) != want {
			t.Errorf("got %q, want %q", string(data), want)
		}
	})

	t.Run("country filter is case-insensitive", func(t *testing.T) {
		t.Parallel()

		jsonPath, listPath := writeDoc(t, asnDoc)
		b := NewBuilder()

		count, err := b.ExtractRanges(jsonPath, listPath, "nOrWaY")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Only one Norwegian record has IPv4 endpoints.
		if count != 1 {
			t.Errorf("got count %d, want 1", count)
		}

		data, err := os.ReadFile(listPath)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "31.45.0.0-31.45.127.255\n" {
			t.Errorf("got %q", string(data))
		}
	})

	t.Run("mismatched sequences fail", func(t *testing.T) {
		t.Parallel()

		doc := `{"start_ip": "1.0.0.0", "end_ip": "1.0.0.255"}
{"start_ip": "2.0.0.0"}`
		jsonPath, listPath := writeDoc(t, doc)
		b := NewBuilder()

		_, err := b.ExtractRanges(jsonPath, listPath, "")
		if !errors.Is(err, ErrRangeSequenceMismatch) {
			t.Errorf("got %v, want ErrRangeSequenceMismatch", err)
		}
	})

	t.Run("document with no start_ip fails", func(t *testing.T) {
		t.Parallel()

		jsonPath, listPath := writeDoc(t, `{"unrelated": "fields"}`)
		b := NewBuilder()

		_, err := b.ExtractRanges(jsonPath, listPath, "")
		if !errors.Is(err, ErrRangeSequenceMismatch) {
			t.Errorf("got %v, want ErrRangeSequenceMismatch", err)
		}
	})

	t.Run("filter matching nothing yields ErrNoRanges", func(t *testing.T) {
		t.Parallel()

		jsonPath, listPath := writeDoc(t, asnDoc)
		b := NewBuilder()

		count, err := b.ExtractRanges(jsonPath, listPath, "Atlantis")
		if !errors.Is(err, ErrNoRanges) {
			t.Errorf("got %v, want ErrNoRanges", err)
		}
		if count != 0 {
			t.Errorf("got count %d, want 0", count)
		}
	})

	t.Run("record beyond country sequence is skipped under filter", func(t *testing.T) {
		t.Parallel()

		// Third record has no country_name; with a filter active it
		// must be skipped rather than matched or crashed on.
		doc := `[
  {"start_ip": "1.0.0.0", "end_ip": "1.0.0.255", "country_name": "Norway"},
  {"start_ip": "2.0.0.0", "end_ip": "2.0.0.255", "country_name": "Norway"},
  {"start_ip": "3.0.0.0", "end_ip": "3.0.0.255"}
]`
		jsonPath, listPath := writeDoc(t, doc)
		b := NewBuilder()

		count, err := b.ExtractRanges(jsonPath, listPath, "norway")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 2 {
			t.Errorf("got count %d, want 2", count)
		}
	})

	t.Run("extraction truncates prior list content", func(t *testing.T) {
		t.Parallel()

		jsonPath, listPath := writeDoc(t, asnDoc)
		if err := os.WriteFile(listPath, []byte("stale-content\n"), 0600); err != nil {
			t.Fatal(err)
		}
		b := NewBuilder()

		if _, err := b.ExtractRanges(jsonPath, listPath, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(listPath)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) == "stale-content\n" {
			t.Error("prior content was not truncated")
		}
	})

	t.Run("missing document fails", func(t *testing.T) {
		t.Parallel()

		b := NewBuilder()
		_, err := b.ExtractRanges(filepath.Join(t.TempDir(), "missing.json"),
			filepath.Join(t.TempDir(), "list"), "")
		if err == nil {
			t.Error("expected error for missing document")
		}
	})
}
