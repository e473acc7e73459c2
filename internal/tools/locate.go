package tools

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrToolNotFound is returned when an external binary cannot be
// resolved from PATH or the workspace bin directory.
var ErrToolNotFound = errors.New("external tool not found")

// Locate resolves the named external binary. Resolution order:
//
//  1. PATH lookup via exec.LookPath.
//  2. <workDir>/bin/<name>, for locally installed copies.
//
// On Windows the ".exe" suffix is appended for the workspace lookup;
// exec.LookPath already handles PATHEXT.
func Locate(name, workDir string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	binName := name
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	local := filepath.Join(workDir, "bin", binName)
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		return local, nil
	}

	return "", fmt.Errorf("%w: %s (install it on PATH or place the binary in %s)",
		ErrToolNotFound, name, filepath.Join(workDir, "bin"))
}
