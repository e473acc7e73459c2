package config

import (
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
)

// Default configuration values. These mirror the defaults the
// external tools are commonly run with.
const (
	// DefaultPorts is the port list passed to the scanner. The result
	// splitter and the grab phase only handle 80 and 443; scanning
	// additional ports produces hits that are dropped downstream.
	DefaultPorts = "80,443"

	// DefaultRate is the masscan packet rate. 10k packets per second
	// finishes mid-sized ranges quickly without saturating a typical
	// uplink.
	DefaultRate = "10000"

	// DefaultReportFile is the final report filename, relative to the
	// workspace directory.
	DefaultReportFile = "opendomains"

	// AppName is the application name used for XDG directory paths.
	AppName = "webscanner"
)

// Config holds all configuration options for webscanner.
// It is populated from CLI flags plus the optional .webscanner file
// and passed through the application via dependency injection rather
// than global state.
type Config struct {
	// Input is the raw scan input argument: a single IP, CIDR, range
	// string, pre-built list file, or ASN JSON path.
	Input string

	// Ports is the comma-separated port list passed to the scanner.
	Ports string

	// Rate is the masscan packet rate, passed verbatim as --rate.
	Rate string

	// ListMode treats Input as a pre-built scan list file.
	ListMode bool

	// CountryFilter restricts ASN JSON extraction to one country.
	// Only valid when Input is an ASN JSON table.
	CountryFilter string

	// WorkDir is the workspace directory holding the canonical list
	// and all intermediate files. Defaults to the current directory.
	WorkDir string

	// ReportFile is the final report path. A relative path is
	// resolved against WorkDir.
	ReportFile string

	// ConfigFilePath is the path of the .webscanner defaults file.
	// Empty means search the current directory, then the home
	// directory.
	ConfigFilePath string

	// JSONReport prints a JSON run summary to stdout instead of the
	// plain-text one. Mutually exclusive with MarkdownReport. The
	// report file itself always uses the line format.
	JSONReport bool

	// MarkdownReport prints a Markdown run summary to stdout.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// GeoIPPath is an optional GeoLite2 mmdb path. When set, title
	// records are annotated with the country of each IP.
	GeoIPPath string

	// SkipScan reprocesses an existing scanner output file in the
	// workspace without invoking the external tools. Useful for
	// offline reruns over previously captured results.
	SkipScan bool

	// SaveToDB indicates whether to record the run in the history
	// database.
	SaveToDB bool

	// DBDir is the directory of the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string

	// Verbose enables debug-level logging.
	Verbose bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Ports:      DefaultPorts,
		Rate:       DefaultRate,
		WorkDir:    ".",
		ReportFile: DefaultReportFile,
		SaveToDB:   true,
		DBDir:      XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for webscanner.
// On Linux: ~/.local/share/webscanner
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks flag combinations before any work begins.
// It returns the first error found; fixing one error often makes
// the rest irrelevant.
func (c *Config) Validate() error {
	if c.Input == "" {
		return ErrNoInput
	}

	if c.CountryFilter != "" && c.ListMode {
		return ErrCountryFilterWithListMode
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.Ports == "" {
		return ErrEmptyPorts
	}

	if rate, err := strconv.Atoi(c.Rate); err != nil || rate <= 0 {
		return ErrInvalidRate
	}

	return nil
}
