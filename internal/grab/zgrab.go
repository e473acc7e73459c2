package grab

import (
	"context"
	"log/slog"

	"github.com/0xjam3z/webscanner/internal/tools"
)

// Zgrab wraps invocation of the zgrab2 web grabber.
type Zgrab struct {
	// path is the resolved zgrab2 binary path.
	path string

	// logger for structured logging.
	logger *slog.Logger
}

// ZgrabOption configures a Zgrab wrapper.
type ZgrabOption func(*Zgrab)

// WithZgrabLogger sets a custom logger.
func WithZgrabLogger(logger *slog.Logger) ZgrabOption {
	return func(z *Zgrab) {
		z.logger = logger
	}
}

// NewZgrab creates a wrapper around the zgrab2 binary at path.
func NewZgrab(path string, opts ...ZgrabOption) *Zgrab {
	z := &Zgrab{path: path}

	for _, opt := range opts {
		opt(z)
	}

	if z.logger == nil {
		z.logger = slog.Default()
	}

	return z
}

// Run fetches HTTP responses for every IP in inputFile on the given
// port and writes JSON-lines results to outputFile. Redirects are not
// followed: the report maps each IP to the page it serves directly,
// and following redirects would attribute another host's title to it.
func (z *Zgrab) Run(ctx context.Context, port, inputFile, outputFile string) error {
	args := []string{
		"http",
		"--port", port,
		"--input-file", inputFile,
		"--max-redirects", "0",
		"--output-file", outputFile,
	}
	return tools.Run(ctx, z.logger, z.path, args...)
}
