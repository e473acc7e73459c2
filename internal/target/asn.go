package target

import (
	"bufio"
	"fmt"
	"os"
	"regexp"

	"golang.org/x/text/cases"

	"github.com/0xjam3z/webscanner/internal/model"
)

// Field extraction patterns for ASN JSON documents.
//
// Design decision: We deliberately use tolerant pattern extraction
// rather than a structural JSON parse. Real-world ASN-to-country
// exports are frequently concatenated, truncated, or wrapped in
// non-JSON envelopes; a strict parser would reject documents the
// original tooling accepts. The patterns collect each field's
// occurrences in document order and correlate them positionally,
// assuming the three fields repeat in a consistent relative order
// once per record.
var (
	startIPRe = regexp.MustCompile(`"start_ip"\s*:\s*"([^"]+)"`)
	endIPRe   = regexp.MustCompile(`"end_ip"\s*:\s*"([^"]+)"`)
	countryRe = regexp.MustCompile(`"country_name"\s*:\s*"([^"]+)"`)
)

// caseFolder performs Unicode case folding for country comparison.
// Folding handles names beyond ASCII ("Curaçao", "Côte d'Ivoire")
// that a plain ToLower comparison could miss.
var caseFolder = cases.Fold()

// ExtractRanges reads the ASN JSON table at jsonPath and writes one
// "start-end" line per usable IPv4 range to listPath, truncating any
// prior content. When countryFilter is non-empty, only records whose
// country_name matches case-insensitively are considered.
//
// Records with an IPv6 endpoint are skipped silently: the downstream
// scanner list format is IPv4-only. A record with no country entry at
// its index is skipped when a filter is active.
//
// The extraction fails with ErrRangeSequenceMismatch when the
// document yields no start_ip occurrences or unequal start/end
// counts, and with ErrNoRanges when filtering leaves nothing to scan.
func (b *Builder) ExtractRanges(jsonPath, listPath, countryFilter string) (int, error) {
	content, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", jsonPath, err)
	}

	starts := submatches(startIPRe, content)
	ends := submatches(endIPRe, content)
	countries := submatches(countryRe, content)

	if len(starts) == 0 || len(starts) != len(ends) {
		return 0, fmt.Errorf("%w: %s (%d start_ip, %d end_ip)",
			ErrRangeSequenceMismatch, jsonPath, len(starts), len(ends))
	}

	out, err := os.Create(listPath)
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", listPath, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	count := 0
	for i := range starts {
		if countryFilter != "" {
			if i >= len(countries) {
				continue
			}
			if caseFolder.String(countries[i]) != caseFolder.String(countryFilter) {
				continue
			}
		}

		r := model.IPRange{Start: starts[i], End: ends[i]}
		if !r.Valid() {
			b.logger.Debug("skipping non-IPv4 range", "start", r.Start, "end", r.End)
			continue
		}

		if _, err := w.WriteString(r.String() + "\n"); err != nil {
			return count, fmt.Errorf("failed to write %s: %w", listPath, err)
		}
		count++
	}

	if err := w.Flush(); err != nil {
		return count, fmt.Errorf("failed to write %s: %w", listPath, err)
	}

	b.logger.Info("extracted IPv4 ranges", "count", count, "path", listPath,
		"countryFilter", countryFilter)

	if count == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoRanges, jsonPath)
	}
	return count, nil
}

// submatches returns the first capture group of every match in order.
func submatches(re *regexp.Regexp, content []byte) []string {
	matches := re.FindAllSubmatch(content, -1)
	values := make([]string, 0, len(matches))
	for _, m := range matches {
		values = append(values, string(m[1]))
	}
	return values
}
