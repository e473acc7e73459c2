package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() before any pipeline
// work begins, so invalid flag combinations never touch the
// filesystem or the network.
var (
	// ErrNoInput is returned when no scan input argument is given.
	ErrNoInput = errors.New("no input specified: provide an IP, CIDR, range, list file, or ASN JSON path")

	// ErrCountryFilterWithListMode is returned when --country is
	// combined with --list. A country filter only applies when
	// extracting ranges from an ASN JSON table.
	ErrCountryFilterWithListMode = errors.New("--country cannot be combined with --list (it requires an ASN JSON input)")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidRate is returned when the scan rate is not a positive
	// integer. The value is passed to masscan verbatim, so it must be
	// checked here rather than discovered mid-scan.
	ErrInvalidRate = errors.New("invalid rate: must be a positive integer")

	// ErrEmptyPorts is returned when the port list is empty.
	ErrEmptyPorts = errors.New("invalid ports: list must not be empty")
)
