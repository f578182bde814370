// Package common holds helpers shared by the CLI commands.
package common

import (
	"net/url"
	"regexp"
	"strings"
)

var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// SanitizeURL cleans up common copy-paste damage: surrounding whitespace,
// trailing punctuation, markdown link syntax and stray brackets.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// "[click here](https://example.com)" -> "https://example.com"
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	cleaned = strings.TrimRight(cleaned, `,.)}]"'>;`)
	cleaned = strings.TrimLeft(cleaned, `([<"'`)

	return strings.TrimSpace(cleaned)
}

// SanitizeAndValidateURLs sanitizes every URL and splits them into valid and
// invalid sets. Invalid URLs are those that still fail validation after
// cleanup.
func SanitizeAndValidateURLs(urls []string) (valid []string, invalid []string) {
	for _, rawURL := range urls {
		cleaned := SanitizeURL(rawURL)
		if !isValidURL(cleaned) {
			invalid = append(invalid, rawURL)
			continue
		}
		valid = append(valid, cleaned)
	}
	return valid, invalid
}

func isValidURL(cleaned string) bool {
	if cleaned == "" || strings.Contains(cleaned, " ") {
		return false
	}
	parsed, err := url.Parse(cleaned)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	// Brackets and quotes in the host mean the URL was mangled upstream.
	return !strings.ContainsAny(parsed.Host, `{}[]<>"'`)
}
