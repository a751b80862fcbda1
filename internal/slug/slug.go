// Package slug turns human-readable names into URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	separators = regexp.MustCompile(`[\s-]+`)
)

// Make lowercases s, drops everything except letters, digits, whitespace and
// hyphens, collapses runs of separators into one hyphen and trims hyphens from
// both ends. Make(Make(s)) == Make(s).
func Make(s string) string {
	out := strings.TrimSpace(strings.ToLower(s))
	out = disallowed.ReplaceAllString(out, "")
	out = separators.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
