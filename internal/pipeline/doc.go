// Package pipeline orchestrates the scan workflow as a sequence of
// steps: build the target list, port-scan it, split the hits by port,
// grab HTTP responses, and extract page titles. Each step mutates the
// shared ScanRun; the driver assembles the step list from the
// configuration and executes it once.
package pipeline
