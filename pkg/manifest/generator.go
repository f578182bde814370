package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MutabPato/interlinker-tool/models"
	"github.com/MutabPato/interlinker-tool/pkg/mapreduce"
	"gopkg.in/yaml.v3"
)

// PageResult is the outcome of ingesting a single URL, handed over by the
// ingest workers.
type PageResult struct {
	URL        string
	Page       *models.Page
	Error      error
	ErrorType  string
	WordCounts map[string]int
}

// WriteSummary builds the run manifest from all page results plus the
// aggregated corpus keywords and writes it into dir as YAML. Returns the path
// of the written file.
func WriteSummary(dir, sitemapURL string, results []PageResult, aggregate map[string]int) (string, error) {
	m := IngestManifest{
		GeneratedAt:   time.Now().Format(time.RFC3339),
		SourceSitemap: sitemapURL,
		TotalURLs:     len(results),
		TopKeywords:   mapreduce.TopKeywords(aggregate, 25),
	}

	for _, result := range results {
		summary := PageSummary{URL: result.URL}
		if result.Error != nil {
			m.Failed++
			summary.Status = "error"
			summary.ErrorType = result.ErrorType
			summary.ErrorMessage = result.Error.Error()
		} else {
			m.Successful++
			summary.Status = "success"
			if result.Page != nil {
				summary.Title = result.Page.Title
				summary.Lang = result.Page.Lang
				summary.WordCount = result.Page.WordCount()
			}
			if len(result.WordCounts) > 0 {
				summary.TopKeywords = mapreduce.TopKeywords(result.WordCounts, 10)
			}
		}
		m.Pages = append(m.Pages, summary)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("manifest-%s.yaml", time.Now().Format("2006-01-02")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}
	return path, nil
}
