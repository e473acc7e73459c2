package target

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xjam3z/webscanner/internal/model"
)

// TestBuilderSingleHost tests single-host list building.
func TestBuilderSingleHost(t *testing.T) {
	t.Parallel()

	t.Run("writes exactly one verbatim line", func(t *testing.T) {
		t.Parallel()

		listPath := filepath.Join(t.TempDir(), "list")
		b := NewBuilder()

		count, err := b.Build(model.TargetSpec{
			Kind:  model.TargetSingleHost,
			Value: "10.0.0.1",
		}, listPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 1 {
			t.Errorf("got count %d, want 1", count)
		}

		data, err := os.ReadFile(listPath)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "10.0.0.1\n" {
			t.Errorf("got %q, want %q", string(data), "10.0.0.1\n")
		}
	})

	t.Run("cidr and range strings pass through opaquely", func(t *testing.T) {
		t.Parallel()

		listPath := filepath.Join(t.TempDir(), "list")
		b := NewBuilder()

		_, err := b.Build(model.TargetSpec{
			Kind:  model.TargetSingleHost,
			Value: "192.168.0.0-192.168.0.255",
		}, listPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(listPath)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "192.168.0.0-192.168.0.255\n" {
			t.Errorf("got %q", string(data))
		}
	})

	t.Run("unwritable destination fails", func(t *testing.T) {
		t.Parallel()

		b := NewBuilder()
		_, err := b.Build(model.TargetSpec{
			Kind:  model.TargetSingleHost,
			Value: "10.0.0.1",
		}, filepath.Join(t.TempDir(), "missing-dir", "list"))
		if err == nil {
			t.Error("expected error for unwritable destination")
		}
	})
}

// TestBuilderListFile tests pre-built list copying.
func TestBuilderListFile(t *testing.T) {
	t.Parallel()

	t.Run("copies source to canonical path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "mylist")
		dst := filepath.Join(dir, "list")
		if err := os.WriteFile(src, []byte("1.1.1.1\n2.2.2.2\n"), 0600); err != nil {
			t.Fatal(err)
		}

		b := NewBuilder()
		count, err := b.Build(model.TargetSpec{Kind: model.TargetListFile, Value: src}, dst)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 2 {
			t.Errorf("got count %d, want 2", count)
		}

		data, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "1.1.1.1\n2.2.2.2\n" {
			t.Errorf("got %q", string(data))
		}
	})

	t.Run("copy overwrites prior canonical list", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "mylist")
		dst := filepath.Join(dir, "list")
		if err := os.WriteFile(src, []byte("3.3.3.3\n"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(dst, []byte("stale\nstale\nstale\n"), 0600); err != nil {
			t.Fatal(err)
		}

		b := NewBuilder()
		if _, err := b.Build(model.TargetSpec{Kind: model.TargetListFile, Value: src}, dst); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "3.3.3.3\n" {
			t.Errorf("got %q", string(data))
		}
	})

	t.Run("source equal to canonical path is a no-op", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		dst := filepath.Join(dir, "list")
		if err := os.WriteFile(dst, []byte("1.1.1.1\n2.2.2.2\n"), 0600); err != nil {
			t.Fatal(err)
		}

		b := NewBuilder()
		count, err := b.Build(model.TargetSpec{Kind: model.TargetListFile, Value: dst}, dst)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 2 {
			t.Errorf("got count %d, want 2", count)
		}

		data, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "1.1.1.1\n2.2.2.2\n" {
			t.Errorf("content changed: got %q", string(data))
		}
	})

	t.Run("missing source fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		b := NewBuilder()
		_, err := b.Build(model.TargetSpec{
			Kind:  model.TargetListFile,
			Value: filepath.Join(dir, "missing"),
		}, filepath.Join(dir, "list"))
		if err == nil {
			t.Error("expected error for missing source file")
		}
	})
}

// TestBuilderCountryFilterPairing tests the cross-cutting filter rule.
func TestBuilderCountryFilterPairing(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	_, err := b.Build(model.TargetSpec{
		Kind:          model.TargetSingleHost,
		Value:         "10.0.0.1",
		CountryFilter: "Norway",
	}, filepath.Join(t.TempDir(), "list"))
	if !errors.Is(err, ErrCountryFilterWithoutJSON) {
		t.Errorf("got %v, want ErrCountryFilterWithoutJSON", err)
	}
}
