package sheet

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// lockFilePrefix marks the owner files spreadsheet editors leave next to open workbooks.
const lockFilePrefix = "~$"

// ExpandInputs expands file paths and glob patterns into a sorted,
// deduplicated list of input files. Patterns that match nothing are kept
// as literal paths so the caller reports a useful file-not-found error.
// Editor lock files matched by a glob are left out.
func ExpandInputs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			add(pattern)
			continue
		}

		for _, match := range matches {
			if strings.HasPrefix(filepath.Base(match), lockFilePrefix) {
				continue
			}
			add(match)
		}
	}

	sort.Strings(result)
	return result, nil
}
