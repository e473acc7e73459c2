// Package model defines the core data structures shared across the
// scanning pipeline: target specifications, IP ranges, scan hits,
// grab records, title records, and the per-run accumulator.
package model
