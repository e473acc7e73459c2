package config

import "path/filepath"

// Workspace filenames for intermediate pipeline files. These are the
// file-format contract points between the pipeline and the external
// tools; they are fixed names inside the workspace directory.
const (
	listFileName        = "list"
	scanResultsFileName = "masscan_results.txt"
	open80FileName      = "open_ips80.txt"
	open443FileName     = "open_ips443.txt"
	grab80FileName      = "zgrab_results_80.json"
	grab443FileName     = "zgrab_results_443.json"
)

// Paths is the complete set of filesystem paths one pipeline run
// touches. All paths are constructed once, up front, and passed into
// the steps as parameters; no step derives paths on its own.
type Paths struct {
	// WorkDir is the workspace directory.
	WorkDir string

	// List is the canonical target list consumed by the scanner.
	List string

	// ScanResults is the scanner's line-oriented output.
	ScanResults string

	// Open80 and Open443 are the per-port IP files fed to the grabber.
	Open80  string
	Open443 string

	// Grab80 and Grab443 are the grabber's JSON-lines outputs.
	Grab80  string
	Grab443 string

	// Report is the final title report.
	Report string
}

// NewPaths builds the path set for a workspace directory. A relative
// reportFile is placed inside the workspace; an absolute one is used
// as-is.
func NewPaths(workDir, reportFile string) Paths {
	if !filepath.IsAbs(reportFile) {
		reportFile = filepath.Join(workDir, reportFile)
	}

	return Paths{
		WorkDir:     workDir,
		List:        filepath.Join(workDir, listFileName),
		ScanResults: filepath.Join(workDir, scanResultsFileName),
		Open80:      filepath.Join(workDir, open80FileName),
		Open443:     filepath.Join(workDir, open443FileName),
		Grab80:      filepath.Join(workDir, grab80FileName),
		Grab443:     filepath.Join(workDir, grab443FileName),
		Report:      reportFile,
	}
}

// OpenIPs returns the per-port IP file for the given port.
func (p Paths) OpenIPs(port string) string {
	if port == "443" {
		return p.Open443
	}
	return p.Open80
}

// GrabResults returns the grabber output file for the given port.
func (p Paths) GrabResults(port string) string {
	if port == "443" {
		return p.Grab443
	}
	return p.Grab80
}
