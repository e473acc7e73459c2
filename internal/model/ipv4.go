package model

import "strings"

// IsIPv4 reports whether s is a syntactically valid dotted-quad IPv4
// address. Any string containing a colon is rejected immediately as a
// possible IPv6 address.
//
// Design decision: We do not use net.ParseIP because its acceptance
// rules differ from what the scan list format needs. ParseIP rejects
// leading zeros ("1.02.3.4") and accepts IPv4-mapped IPv6 forms; this
// validator accepts the former and rejects the latter, matching the
// range entries found in ASN JSON exports.
func IsIPv4(s string) bool {
	if strings.ContainsRune(s, ':') {
		return false
	}

	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}

	for _, part := range parts {
		if len(part) == 0 || len(part) > 3 {
			return false
		}
		value := 0
		for _, c := range part {
			if c < '0' || c > '9' {
				return false
			}
			value = value*10 + int(c-'0')
		}
		if value > 255 {
			return false
		}
	}

	return true
}
