package scan

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/0xjam3z/webscanner/internal/model"
)

// SplitResult reports how many IPs were routed to each per-port file.
type SplitResult struct {
	// Open80 is the number of IPs with TCP port 80 open.
	Open80 int

	// Open443 is the number of IPs with TCP port 443 open.
	Open443 int
}

// parseHit parses one scanner output line into a ScanHit.
// The recognized shape is "open tcp <port> <ip> ..." with trailing
// tokens ignored. Lines with another status, another protocol, or too
// few tokens return false and are skipped by the caller.
func parseHit(line string) (model.ScanHit, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 4 || tokens[0] != "open" || tokens[1] != "tcp" {
		return model.ScanHit{}, false
	}
	return model.ScanHit{Protocol: tokens[1], Port: tokens[2], IP: tokens[3]}, true
}

// SplitByPort reads the scanner output at scanPath line by line and
// writes each open-TCP hit's IP to the destination matching its port:
// port 80 to out80Path, port 443 to out443Path. Hits on any other
// port are dropped because the grab phase only covers these two.
// Both destinations are truncated before writing.
//
// Malformed or short lines are skipped silently; zero hits is a valid
// result. The only failures are the three file-open operations.
func SplitByPort(logger *slog.Logger, scanPath, out80Path, out443Path string) (SplitResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var result SplitResult

	in, err := os.Open(scanPath)
	if err != nil {
		return result, fmt.Errorf("failed to read scanner output %s: %w", scanPath, err)
	}
	defer in.Close()

	out80, err := os.Create(out80Path)
	if err != nil {
		return result, fmt.Errorf("failed to open %s: %w", out80Path, err)
	}
	defer out80.Close()

	out443, err := os.Create(out443Path)
	if err != nil {
		return result, fmt.Errorf("failed to open %s: %w", out443Path, err)
	}
	defer out443.Close()

	w80 := bufio.NewWriter(out80)
	w443 := bufio.NewWriter(out443)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		hit, ok := parseHit(sc.Text())
		if !ok {
			continue
		}

		switch hit.Port {
		case "80":
			if _, err := w80.WriteString(hit.IP + "\n"); err != nil {
				return result, fmt.Errorf("failed to write %s: %w", out80Path, err)
			}
			result.Open80++
		case "443":
			if _, err := w443.WriteString(hit.IP + "\n"); err != nil {
				return result, fmt.Errorf("failed to write %s: %w", out443Path, err)
			}
			result.Open443++
		}
	}
	if err := sc.Err(); err != nil {
		return result, fmt.Errorf("failed to read scanner output %s: %w", scanPath, err)
	}

	if err := w80.Flush(); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", out80Path, err)
	}
	if err := w443.Flush(); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", out443Path, err)
	}

	logger.Info("split scan results", "open80", result.Open80, "open443", result.Open443)
	return result, nil
}
