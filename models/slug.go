package models

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe identifier from a title or name: lowercase,
// runs of anything outside [a-z0-9] collapse to a single hyphen, leading
// and trailing hyphens trimmed. Applying it twice yields the same result.
func Slugify(s string) string {
	s = nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
