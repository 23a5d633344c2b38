package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandPaths resolves each pattern as a doublestar glob relative to dir.
// Patterns that match nothing pass through literally, since plain directory
// names are valid targets that the tools resolve themselves. Duplicates are
// removed, first occurrence wins.
func ExpandPaths(dir string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	if dir == "" {
		dir = "."
	}
	fsys := os.DirFS(dir)
	seen := make(map[string]bool)

	var result []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			matches = []string{pattern}
		}
		slices.Sort(matches)

		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			result = append(result, m)
		}
	}

	return result, nil
}
