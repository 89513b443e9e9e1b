// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selftest

import (
	"fmt"
	"path/filepath"
)

// rootMarkers identify the top of a daily-arXiv checkout.
var rootMarkers = []string{"update_readme.py", "to_md", ".git"}

// FindRoot walks up from start to the nearest directory holding one of the
// root markers. When no ancestor has a marker it returns start itself, so a
// bare directory still gets checked (and reported) rather than rejected.
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for dir := abs; ; {
		for _, m := range rootMarkers {
			if exists(filepath.Join(dir, m)) {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}
