package model

import "time"

// ScanRun accumulates the results of one pipeline run. Steps mutate
// the run as they execute; report writers and the history database
// consume the finished value.
type ScanRun struct {
	// Input is the raw scan input argument as given on the command line.
	Input string `json:"input"`

	// Target is the detected target specification.
	Target TargetSpec `json:"target"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"startedAt"`

	// Elapsed is the total run duration, set by the driver when the
	// pipeline finishes.
	Elapsed time.Duration `json:"elapsed"`

	// ListEntries is the number of entries written to the canonical
	// target list (ranges for ASN input, lines otherwise).
	ListEntries int `json:"listEntries"`

	// Open80 and Open443 count the IPs discovered with the
	// corresponding TCP port open. Zero is a valid result.
	Open80  int `json:"open80"`
	Open443 int `json:"open443"`

	// Titles holds the extracted title records in report order:
	// all port 80 records first, then port 443.
	Titles []TitleRecord `json:"titles"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performedSteps,omitempty"`

	// ErrorMessage records a fatal step failure, if any.
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// NewScanRun creates a run for the given input and target spec.
func NewScanRun(input string, target TargetSpec) *ScanRun {
	return &ScanRun{
		Input:     input,
		Target:    target,
		StartedAt: time.Now(),
		Titles:    make([]TitleRecord, 0),
	}
}

// TitleCount returns the number of title records collected.
func (r *ScanRun) TitleCount() int {
	return len(r.Titles)
}
