// Package scan drives the port-scanning phase: it wraps masscan
// invocation and parses the scanner's line-oriented output,
// partitioning discovered IPs by port into the per-port files the
// grab phase consumes.
package scan
