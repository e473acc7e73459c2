package scan

import (
	"context"
	"log/slog"

	"github.com/0xjam3z/webscanner/internal/tools"
)

// Masscan wraps invocation of the masscan port scanner.
type Masscan struct {
	// path is the resolved masscan binary path.
	path string

	// ports is the comma-separated port list passed to -p.
	ports string

	// rate is the packet rate passed to --rate.
	rate string

	// logger for structured logging.
	logger *slog.Logger
}

// MasscanOption configures a Masscan wrapper.
type MasscanOption func(*Masscan)

// WithMasscanLogger sets a custom logger.
func WithMasscanLogger(logger *slog.Logger) MasscanOption {
	return func(m *Masscan) {
		m.logger = logger
	}
}

// NewMasscan creates a wrapper around the masscan binary at path.
func NewMasscan(path, ports, rate string, opts ...MasscanOption) *Masscan {
	m := &Masscan{
		path:  path,
		ports: ports,
		rate:  rate,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.Default()
	}

	return m
}

// Run scans the targets in listPath and writes line-oriented results
// to outPath. The broadcast address is always excluded; masscan
// refuses to include it without an explicit opt-in, and scanning it
// is never useful here.
//
// masscan usually needs elevated privileges for raw packet access;
// the returned error surfaces its exit status unchanged so the caller
// can hint at that.
func (m *Masscan) Run(ctx context.Context, listPath, outPath string) error {
	args := []string{
		"-p" + m.ports,
		"-iL", listPath,
		"--rate=" + m.rate,
		"--exclude", "255.255.255.255",
		"--wait", "0",
		"-oL", outPath,
	}
	return tools.Run(ctx, m.logger, m.path, args...)
}
