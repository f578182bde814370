// Package slug derives keyword slugs from page URLs for the link weaver.
package slug

import (
	"net/url"
	"strings"
)

// FromURL extracts the final non-empty path segment of a URL and returns it
// both raw and normalized. The normalized form lowercases the segment and
// turns hyphens and underscores into spaces so it can be matched against
// prose.
func FromURL(rawURL string) (raw, normalized string) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", ""
	}
	path := strings.TrimRight(parsed.Path, "/")
	if path == "" {
		return "", ""
	}
	segments := strings.Split(path, "/")
	raw = segments[len(segments)-1]
	normalized = Normalize(raw)
	return raw, normalized
}

// Normalize lowercases a slug and replaces hyphens and underscores with
// spaces.
func Normalize(raw string) string {
	normalized := strings.ReplaceAll(raw, "-", " ")
	normalized = strings.ReplaceAll(normalized, "_", " ")
	return strings.ToLower(normalized)
}
