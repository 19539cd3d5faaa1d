package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Gather reads the input path into one text blob. A file is read whole; a
// directory contributes every regular file directly inside it, joined with
// newline separators. Unreadable files inside a directory are skipped
// silently, but a missing or unreadable input path itself is fatal: there
// is nothing to scan.
func Gather(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("read input %s: %w", path, err)
	}

	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read input %s: %w", path, err)
		}
		return string(data), nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("read input directory %s: %w", path, err)
	}

	var texts []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(path, entry.Name()))
		if err != nil {
			continue
		}
		texts = append(texts, string(data))
	}
	return strings.Join(texts, "\n"), nil
}
