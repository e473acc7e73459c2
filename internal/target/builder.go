package target

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/0xjam3z/webscanner/internal/model"
)

// Builder produces the canonical target list file from a TargetSpec.
type Builder struct {
	// logger is used for structured logging during list building.
	logger *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets a custom logger for the builder.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a Builder with the given options.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Build writes the canonical target list to listPath and returns the
// number of entries written. The behavior depends on the target kind:
//
//   - TargetSingleHost writes the raw host/CIDR/range string verbatim
//     as a single line.
//   - TargetListFile copies the supplied file to listPath, or is a
//     no-op when the supplied path already denotes listPath.
//   - TargetASNJSON extracts IPv4 ranges from the JSON table,
//     optionally filtered by country.
//
// A country filter on a non-JSON spec is rejected here as well, even
// though Detect normally catches it first, so a hand-built spec
// cannot bypass the pairing rule.
func (b *Builder) Build(spec model.TargetSpec, listPath string) (int, error) {
	if spec.CountryFilter != "" && spec.Kind != model.TargetASNJSON {
		return 0, ErrCountryFilterWithoutJSON
	}

	switch spec.Kind {
	case model.TargetSingleHost:
		return b.buildSingleHost(spec.Value, listPath)
	case model.TargetListFile:
		return b.buildFromListFile(spec.Value, listPath)
	case model.TargetASNJSON:
		return b.ExtractRanges(spec.Value, listPath, spec.CountryFilter)
	default:
		return 0, fmt.Errorf("unsupported target kind: %s", spec.Kind)
	}
}

// buildSingleHost writes a one-line list containing the raw input.
func (b *Builder) buildSingleHost(host, listPath string) (int, error) {
	f, err := os.Create(listPath)
	if err != nil {
		return 0, fmt.Errorf("failed to write target list %s: %w", listPath, err)
	}
	defer f.Close()

	if _, err := f.WriteString(host + "\n"); err != nil {
		return 0, fmt.Errorf("failed to write target list %s: %w", listPath, err)
	}

	b.logger.Debug("wrote single-host target list", "host", host, "path", listPath)
	return 1, nil
}

// buildFromListFile copies a pre-built list to the canonical path.
// If src already denotes the canonical path, the copy is skipped and
// the existing file is counted as-is.
func (b *Builder) buildFromListFile(src, listPath string) (int, error) {
	same, err := sameFile(src, listPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open list file %s: %w", src, err)
	}
	if same {
		b.logger.Debug("input already is the canonical list", "path", listPath)
		return countLines(listPath)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open list file %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(listPath)
	if err != nil {
		return 0, fmt.Errorf("failed to write target list %s: %w", listPath, err)
	}
	defer out.Close()

	count := 0
	w := bufio.NewWriter(out)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if _, err := w.WriteString(sc.Text() + "\n"); err != nil {
			return count, fmt.Errorf("failed to write target list %s: %w", listPath, err)
		}
		count++
	}
	if err := sc.Err(); err != nil {
		return count, fmt.Errorf("failed to read list file %s: %w", src, err)
	}
	if err := w.Flush(); err != nil {
		return count, fmt.Errorf("failed to write target list %s: %w", listPath, err)
	}

	b.logger.Debug("copied list file", "src", src, "dst", listPath, "entries", count)
	return count, nil
}

// sameFile reports whether a and b denote the same existing file.
// A missing destination means the files are distinct.
func sameFile(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return os.SameFile(ai, bi), nil
}

// countLines counts newline-delimited entries in a file.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		count++
	}
	return count, sc.Err()
}
