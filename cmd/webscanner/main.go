// Package main provides the entry point for the webscanner CLI.
//
// webscanner discovers web hosts in a target range and reports the
// page title each one serves. It drives masscan for port discovery
// and zgrab2 for HTTP response grabbing.
//
// Usage:
//
//	webscanner scan <target>
//	webscanner scan --list <file>
//
// See --help for all available options.
package main

// main is the entry point for webscanner.
func main() {
	Execute()
}
