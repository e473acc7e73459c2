package tools

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

// Run executes an external tool, streaming its output to the current
// process's stdout/stderr. The command is cancelled when ctx is done.
//
// Design decision: Output is passed through rather than captured
// because masscan and zgrab2 report progress on stderr; hiding it
// would make long scans look hung. Results are exchanged through
// files, not pipes, so nothing needs to be parsed from the streams.
func Run(ctx context.Context, logger *slog.Logger, bin string, args ...string) error {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("running external tool", "bin", bin, "args", args)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", bin, err)
	}

	logger.Debug("external tool finished", "bin", bin,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
