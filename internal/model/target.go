package model

// TargetKind identifies how the scan input should be turned into a
// canonical target list.
type TargetKind int

// Target kinds, determined by inspecting the input argument.
const (
	// TargetSingleHost is a single host, CIDR, or "a.b.c.d-w.x.y.z"
	// range string written to the target list verbatim. The pipeline
	// treats the string as opaque; the port scanner interprets it.
	TargetSingleHost TargetKind = iota

	// TargetListFile is a pre-built scan list file that is copied to
	// the canonical list path.
	TargetListFile

	// TargetASNJSON is an ASN-to-country JSON table from which IPv4
	// ranges are extracted, optionally filtered by country name.
	TargetASNJSON
)

// String returns a human-readable name for the target kind.
func (k TargetKind) String() string {
	switch k {
	case TargetSingleHost:
		return "single-host"
	case TargetListFile:
		return "list-file"
	case TargetASNJSON:
		return "asn-json"
	default:
		return "unknown"
	}
}

// TargetSpec describes one scan input. It is immutable once
// constructed; build it with target.Detect rather than directly.
type TargetSpec struct {
	// Kind selects how Value is interpreted.
	Kind TargetKind `json:"kind"`

	// Value is the raw input argument: a host/CIDR/range string for
	// TargetSingleHost, or a file path for the file-backed kinds.
	Value string `json:"value"`

	// CountryFilter restricts ASN JSON extraction to records whose
	// country_name matches case-insensitively. Only valid together
	// with TargetASNJSON.
	CountryFilter string `json:"countryFilter,omitempty"`
}

// IPRange is an IPv4 range as it appears in the canonical target
// list: "start-end". Both endpoints must pass IsIPv4; no ordering
// between them is enforced because the source format is textual.
type IPRange struct {
	// Start is the first address of the range.
	Start string `json:"start"`

	// End is the last address of the range.
	End string `json:"end"`
}

// Valid reports whether both endpoints are valid IPv4 addresses.
func (r IPRange) Valid() bool {
	return IsIPv4(r.Start) && IsIPv4(r.End)
}

// String renders the range in the target list format.
func (r IPRange) String() string {
	return r.Start + "-" + r.End
}
