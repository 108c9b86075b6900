package clusterlist

import (
	"fmt"
	"os"
	"strings"
)

// Load reads a cluster list file and returns the cluster identifiers in
// file order. Everything from the first '#' on a line is discarded,
// remaining whitespace is trimmed, and lines that end up empty are
// skipped. Duplicate identifiers are preserved: a cluster listed twice
// is scanned twice.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cluster list %q: %w", path, err)
	}

	var clusters []string
	for _, line := range strings.Split(string(data), "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		clusters = append(clusters, line)
	}
	return clusters, nil
}
