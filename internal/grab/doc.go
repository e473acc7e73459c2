// Package grab drives the web-grabbing phase: it wraps zgrab2
// invocation and parses the grabber's JSON-lines output into title
// records for the final report. Field extraction is deliberately
// tolerant: records are matched with escape-aware patterns rather
// than a strict JSON parse, so a single malformed line never aborts
// a run.
package grab
