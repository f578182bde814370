// Package models defines the normalized page representation consumed by the
// linking engine and the suggestion types it produces.
package models

import "strings"

// Page is a normalized snapshot of a web document. Pages are value objects:
// ingestion constructs them, the engine reads them, nothing mutates them.
type Page struct {
	URL         string   `json:"url" yaml:"url"`
	Title       string   `json:"title" yaml:"title"`
	HTML        string   `json:"html,omitempty" yaml:"html,omitempty"`
	Text        string   `json:"text" yaml:"text"`
	Lang        string   `json:"lang,omitempty" yaml:"lang,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	PublishedAt string   `json:"published_at,omitempty" yaml:"published_at,omitempty"`
	Canonical   string   `json:"canonical,omitempty" yaml:"canonical,omitempty"`
	Noindex     bool     `json:"noindex,omitempty" yaml:"noindex,omitempty"`
	Nofollow    bool     `json:"nofollow,omitempty" yaml:"nofollow,omitempty"`
	Metadata    Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// WordCount returns the whitespace-separated word count of the page text.
func (p Page) WordCount() int {
	return len(strings.Fields(p.Text))
}

// TagSet returns the page tags lower-cased as a set.
func (p Page) TagSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Tags))
	for _, tag := range p.Tags {
		set[strings.ToLower(tag)] = struct{}{}
	}
	return set
}

// SharesTag reports whether the two pages have at least one tag in common,
// compared case-insensitively.
func (p Page) SharesTag(other Page) bool {
	set := p.TagSet()
	for _, tag := range other.Tags {
		if _, ok := set[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return false
}

// Entity is a named-entity-like phrase attached to a page, either supplied by
// ingestion metadata or inferred heuristically.
type Entity struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}
