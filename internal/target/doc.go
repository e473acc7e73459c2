// Package target converts heterogeneous scan inputs into the
// canonical newline-delimited target list consumed by the port
// scanner. It detects the input kind (single host, pre-built list
// file, or ASN-to-country JSON table) and builds the list
// accordingly, including country-filtered IPv4 range extraction from
// ASN JSON documents.
package target
