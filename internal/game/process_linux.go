//go:build linux

package game

import (
	"os"
	"path/filepath"
	"strings"
)

// runningProcess scans /proc for matching process names. The game itself
// is Windows-only, but it shows up here under Wine/Proton with its
// original executable name.
func runningProcess(names []string) (string, bool) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return "", false
	}

	for _, e := range entries {
		if !e.IsDir() || !isNumeric(e.Name()) {
			continue
		}
		comm, err := os.ReadFile(filepath.Join("/proc", e.Name(), "comm"))
		if err != nil {
			continue
		}
		proc := strings.TrimSpace(string(comm))
		for _, name := range names {
			// comm is truncated to 15 characters by the kernel.
			short := name
			if len(short) > 15 {
				short = short[:15]
			}
			if strings.EqualFold(proc, name) || strings.EqualFold(proc, short) {
				return proc, true
			}
		}
	}
	return "", false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
