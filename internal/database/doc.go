// Package database provides SQLite-backed storage for scan run
// history. Each completed run is stored with its title records so
// past results can be listed and inspected without re-scanning.
package database
