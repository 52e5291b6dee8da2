package storage

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob expands data file patterns, including ** segments, into a sorted list
// of unique existing paths.
func Glob(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}
