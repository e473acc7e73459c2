package target

import "errors"

// Target detection and extraction errors.
// These are sentinel errors so callers can distinguish configuration
// mistakes (reported before any file I/O) from parse failures.
var (
	// ErrListFileNotFound is returned when list mode is requested but
	// the supplied file does not exist.
	ErrListFileNotFound = errors.New("list file not found")

	// ErrCountryFilterWithoutJSON is returned when a country filter is
	// combined with anything other than an ASN JSON input. The filter
	// only makes sense when extracting ranges from a country table.
	ErrCountryFilterWithoutJSON = errors.New("country filter requires an ASN JSON input")

	// ErrRangeSequenceMismatch is returned when the ASN document's
	// start_ip and end_ip occurrences cannot be paired up. This
	// indicates a malformed or truncated document.
	ErrRangeSequenceMismatch = errors.New("mismatched start_ip/end_ip sequences in ASN document")

	// ErrNoRanges is returned when extraction completes without a
	// single usable IPv4 range. The extractor itself treats this as a
	// soft zero-count result; the pipeline cannot proceed with an
	// empty target list, so list building fails.
	ErrNoRanges = errors.New("no IPv4 ranges extracted from ASN document")
)
