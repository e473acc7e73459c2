package ipinfo

import (
	"errors"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// ErrInvalidIP is returned when a lookup address does not parse.
var ErrInvalidIP = errors.New("invalid IP address")

// Resolver looks up country names in a GeoLite2 mmdb file.
// A Resolver is safe for concurrent use; the underlying reader is.
type Resolver struct {
	db *geoip2.Reader
}

// NewResolver opens the GeoLite2 database at path.
// The caller must Close the resolver when done.
func NewResolver(path string) (*Resolver, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	return &Resolver{db: db}, nil
}

// Country returns the English country name for the given address.
// Addresses absent from the database return an empty string with no
// error; only malformed addresses and reader failures are errors.
func (r *Resolver) Country(ip string) (string, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidIP, ip)
	}

	record, err := r.db.Country(parsed)
	if err != nil {
		return "", fmt.Errorf("geoip lookup: %w", err)
	}

	return record.Country.Names["en"], nil
}

// Close releases the underlying database reader.
func (r *Resolver) Close() error {
	return r.db.Close()
}
