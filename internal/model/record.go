package model

// ScanHit is one "open port" line from the port scanner's output.
// Hits are consumed line-by-line during result splitting and never
// buffered as a collection.
type ScanHit struct {
	// Protocol is the transport protocol token ("tcp", "udp").
	// Only TCP hits are retained by the splitter.
	Protocol string

	// Port is the port number as it appeared in the output.
	Port string

	// IP is the responding address.
	IP string
}

// GrabRecord is one JSON-lines record from the web grabber.
type GrabRecord struct {
	// IP is the address the grabber connected to.
	IP string

	// Body is the raw HTTP response body, if any.
	Body string

	// HasBody distinguishes an empty body from an absent body field.
	// An absent body produces a degraded report line rather than a
	// title lookup.
	HasBody bool
}

// NoTitle is the title reported when a response body contains no
// usable <title> element.
const NoTitle = "No title found"

// TitleRecord is the final output unit: one per grab record, in
// arrival order. Records are not deduplicated across ports; a host
// open on both 80 and 443 yields two records.
type TitleRecord struct {
	// IP is the scanned address.
	IP string `json:"ip"`

	// Port is the port the grab was performed on ("80" or "443").
	Port string `json:"port,omitempty"`

	// Title is the extracted page title, or NoTitle.
	Title string `json:"title,omitempty"`

	// HasBody is false when the grab record carried no body field.
	HasBody bool `json:"hasBody"`

	// Country is the GeoIP country name, set only when enrichment
	// is enabled.
	Country string `json:"country,omitempty"`
}

// ReportLine renders the record in the final report format.
func (t TitleRecord) ReportLine() string {
	if !t.HasBody {
		return "IP: " + t.IP + " - No response body found"
	}
	return "IP: " + t.IP + " - Title: " + t.Title
}
