// Package ipinfo resolves IP addresses to country names using a local
// GeoLite2 database. Enrichment is optional; the rest of the pipeline
// works without it.
package ipinfo
