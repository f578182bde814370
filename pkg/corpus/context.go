// Package corpus precomputes token statistics over a corpus snapshot so the
// engine can score every (source, target) pair in a batch without
// re-tokenizing target pages.
package corpus

import (
	"github.com/MutabPato/interlinker-tool/models"
	"github.com/MutabPato/interlinker-tool/pkg/textstat"
)

// Context holds derived, read-only statistics for one corpus snapshot. It is
// built once per pipeline invocation and must be rebuilt wholesale whenever
// the corpus set changes; there is no incremental update. Safe for concurrent
// reads.
type Context struct {
	TitleTF     map[string]map[string]int
	BodyTF      map[string]map[string]int
	TitleDF     map[string]int
	BodyDF      map[string]int
	AvgTitleLen float64
	AvgBodyLen  float64
	Pages       map[string]models.Page
}

// BuildContext tokenizes every page's title and body and accumulates the
// per-page and corpus-wide frequency statistics. Pure and deterministic.
func BuildContext(pages []models.Page) *Context {
	ctx := &Context{
		TitleTF: make(map[string]map[string]int, len(pages)),
		BodyTF:  make(map[string]map[string]int, len(pages)),
		Pages:   make(map[string]models.Page, len(pages)),
	}

	titleCounters := make([]map[string]int, 0, len(pages))
	bodyCounters := make([]map[string]int, 0, len(pages))
	totalTitleTokens := 0
	totalBodyTokens := 0

	for _, page := range pages {
		ctx.Pages[page.URL] = page
		titleTokens := textstat.Tokenize(page.Title)
		bodyTokens := textstat.Tokenize(page.Text)
		titleTF := textstat.TermFrequencies(titleTokens)
		bodyTF := textstat.TermFrequencies(bodyTokens)
		ctx.TitleTF[page.URL] = titleTF
		ctx.BodyTF[page.URL] = bodyTF
		titleCounters = append(titleCounters, titleTF)
		bodyCounters = append(bodyCounters, bodyTF)
		totalTitleTokens += len(titleTokens)
		totalBodyTokens += len(bodyTokens)
	}

	ctx.TitleDF = textstat.DocumentFrequencies(titleCounters)
	ctx.BodyDF = textstat.DocumentFrequencies(bodyCounters)

	// Empty corpora fall back to 1.0 so downstream ratios stay defined.
	ctx.AvgTitleLen = 1.0
	ctx.AvgBodyLen = 1.0
	if len(pages) > 0 {
		ctx.AvgTitleLen = float64(totalTitleTokens) / float64(len(pages))
		ctx.AvgBodyLen = float64(totalBodyTokens) / float64(len(pages))
	}

	return ctx
}

// Length returns the token count recorded in a term-frequency map, with a
// floor of 1 to keep BM25 denominators defined.
func Length(tf map[string]int) int {
	total := 0
	for _, count := range tf {
		total += count
	}
	if total == 0 {
		return 1
	}
	return total
}
