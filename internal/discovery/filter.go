package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters suite files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps suites whose file name matches pattern.
// Supports patterns like "*login.cy.js" or "*checkout*"; a pattern without
// wildcards is a substring match.
func (f *Filter) FilterByName(suites []string, pattern string) []string {
	if pattern == "" {
		return suites
	}

	var filtered []string
	for _, suite := range suites {
		name := filepath.Base(suite)

		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			filtered = append(filtered, suite)
			continue
		}

		if strings.Contains(pattern, "*") {
			if containsAllParts(name, strings.Split(pattern, "*")) {
				filtered = append(filtered, suite)
			}
			continue
		}

		if !strings.Contains(pattern, "?") && strings.Contains(name, pattern) {
			filtered = append(filtered, suite)
		}
	}

	return filtered
}

// containsAllParts reports whether name contains every non-empty part and
// at least one part is non-empty
func containsAllParts(name string, parts []string) bool {
	nonEmpty := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		nonEmpty = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return nonEmpty
}
