// Package manifest writes a per-run summary of an ingest pass next to the
// corpus snapshots, so a crawl can be audited without opening each page file.
package manifest

import "github.com/MutabPato/interlinker-tool/pkg/mapreduce"

// IngestManifest is the top-level structure of the run summary file.
type IngestManifest struct {
	GeneratedAt   string              `yaml:"generated_at" json:"generated_at"`
	SourceSitemap string              `yaml:"source_sitemap,omitempty" json:"source_sitemap,omitempty"`
	TotalURLs     int                 `yaml:"total_urls" json:"total_urls"`
	Successful    int                 `yaml:"successful" json:"successful"`
	Failed        int                 `yaml:"failed" json:"failed"`
	TopKeywords   []mapreduce.Keyword `yaml:"top_keywords,omitempty" json:"top_keywords,omitempty"`
	Pages         []PageSummary       `yaml:"pages" json:"pages"`
}

// PageSummary is the per-URL entry in the manifest.
type PageSummary struct {
	URL          string              `yaml:"url" json:"url"`
	Status       string              `yaml:"status" json:"status"`
	ErrorType    string              `yaml:"error_type,omitempty" json:"error_type,omitempty"`
	ErrorMessage string              `yaml:"error_message,omitempty" json:"error_message,omitempty"`
	Title        string              `yaml:"title,omitempty" json:"title,omitempty"`
	Lang         string              `yaml:"lang,omitempty" json:"lang,omitempty"`
	WordCount    int                 `yaml:"word_count,omitempty" json:"word_count,omitempty"`
	TopKeywords  []mapreduce.Keyword `yaml:"top_keywords,omitempty" json:"top_keywords,omitempty"`
}
