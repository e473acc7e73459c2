// Package tools locates and runs the external binaries the pipeline
// orchestrates: the masscan port scanner and the zgrab2 web grabber.
// Binaries are resolved from PATH first, then from the workspace's
// bin directory. Acquisition (download, compile) is out of scope; a
// missing tool produces an actionable error instead.
package tools
