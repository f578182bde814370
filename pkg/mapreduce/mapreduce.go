// Package mapreduce aggregates per-page term frequencies into corpus-level
// keyword counts.
package mapreduce

import "github.com/MutabPato/interlinker-tool/pkg/analytics"

// Map generates the term frequency map for a single page's text.
func Map(content string, a *analytics.Analytics) map[string]int {
	return a.WordFrequency(content)
}

// Reduce merges per-page frequency maps into one corpus-wide map.
func Reduce(intermediate []map[string]int) map[string]int {
	final := make(map[string]int)
	for _, counts := range intermediate {
		for term, count := range counts {
			final[term] += count
		}
	}
	return final
}
