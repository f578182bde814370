package engine

import (
	"math"
	"sync"

	"github.com/MutabPato/interlinker-tool/models"
	"github.com/MutabPato/interlinker-tool/pkg/corpus"
)

const dryRunWorkers = 4

// Metrics aggregates diagnostic signals over a batch of source pages. The
// values describe the suggestion set as a whole rather than any single page.
type Metrics struct {
	Coverage             float64        `yaml:"coverage" json:"coverage"`
	OrphanRate           float64        `yaml:"orphan_rate" json:"orphan_rate"`
	AvgClickDepthAfter   float64        `yaml:"avg_click_depth_after" json:"avg_click_depth_after"`
	AnchorDiversityIndex float64        `yaml:"anchor_diversity_index" json:"anchor_diversity_index"`
	DupTargetRate        float64        `yaml:"dup_target_rate" json:"dup_target_rate"`
	MeanScoreSelected    float64        `yaml:"mean_score_selected" json:"mean_score_selected"`
	MeanScoreRejected    float64        `yaml:"mean_score_rejected" json:"mean_score_rejected"`
	LanguageMismatchRate float64        `yaml:"language_mismatch_rate" json:"language_mismatch_rate"`
	AnchorVariantCounts  map[string]int `yaml:"anchor_variant_counts" json:"anchor_variant_counts"`
}

type dryRunResult struct {
	suggestions []models.Suggestion
	evaluated   []evaluated
}

// DryRun evaluates every page against the corpus without emitting links and
// returns batch-level diagnostics. Pages are processed by a small worker pool
// and results are aggregated in input order.
func (e *Engine) DryRun(pages, fullCorpus []models.Page) Metrics {
	ctx := corpus.BuildContext(fullCorpus)

	results := make([]dryRunResult, len(pages))
	jobs := make(chan int, len(pages))
	var wg sync.WaitGroup

	workers := dryRunWorkers
	if len(pages) < workers {
		workers = len(pages)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				page := pages[idx]
				candidates := e.GenerateCandidates(page, fullCorpus, ctx)
				suggestions, items := e.evaluateCandidates(page, candidates, ctx)
				results[idx] = dryRunResult{suggestions: suggestions, evaluated: items}
			}
		}()
	}
	for idx := range pages {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	totalPages := len(pages)
	if totalPages == 0 {
		totalPages = 1
	}

	pagesWithSuggestions := 0
	inboundCounts := make(map[string]int, len(fullCorpus))
	for _, page := range fullCorpus {
		inboundCounts[page.URL] = 0
	}
	anchorVariants := make(map[string]int)
	var selectedScores, rejectedScores []float64
	duplicateTargets := 0
	langMismatchSuggestions := 0
	totalSuggestions := 0

	for _, result := range results {
		if len(result.suggestions) > 0 {
			pagesWithSuggestions++
		}

		seenTargets := make(map[string]struct{})
		selectedURLs := make(map[string]struct{}, len(result.suggestions))
		for _, suggestion := range result.suggestions {
			selectedURLs[suggestion.TargetURL] = struct{}{}
		}

		for _, suggestion := range result.suggestions {
			totalSuggestions++
			selectedScores = append(selectedScores, suggestion.Score)
			inboundCounts[suggestion.TargetURL]++
			for _, anchor := range suggestion.Anchors {
				anchorVariants[anchor.Variant]++
			}
			for _, flag := range suggestion.RiskFlags {
				if flag == FlagLangMismatch {
					langMismatchSuggestions++
					break
				}
			}
			if _, seen := seenTargets[suggestion.TargetURL]; seen {
				duplicateTargets++
			}
			seenTargets[suggestion.TargetURL] = struct{}{}
		}

		for _, item := range result.evaluated {
			if _, selected := selectedURLs[item.target.URL]; !selected {
				rejectedScores = append(rejectedScores, item.score)
			}
		}
	}

	return Metrics{
		Coverage:             float64(pagesWithSuggestions) / float64(totalPages),
		OrphanRate:           orphanRate(inboundCounts),
		AvgClickDepthAfter:   simulateClickDepth(fullCorpus, inboundCounts),
		AnchorDiversityIndex: normalizedEntropy(anchorVariants),
		DupTargetRate:        float64(duplicateTargets) / float64(totalPages),
		MeanScoreSelected:    mean(selectedScores),
		MeanScoreRejected:    mean(rejectedScores),
		LanguageMismatchRate: safeRate(langMismatchSuggestions, totalSuggestions),
		AnchorVariantCounts:  anchorVariants,
	}
}

func orphanRate(inboundCounts map[string]int) float64 {
	total := len(inboundCounts)
	if total == 0 {
		total = 1
	}
	orphans := 0
	for _, count := range inboundCounts {
		if count == 0 {
			orphans++
		}
	}
	return float64(orphans) / float64(total)
}

// simulateClickDepth estimates the corpus average click depth after the
// suggested links land, crediting half a level per new inbound link.
func simulateClickDepth(pages []models.Page, inboundCounts map[string]int) float64 {
	if len(pages) == 0 {
		return 0
	}
	totalDepth := 0.0
	for _, page := range pages {
		depth, ok := page.Metadata.ClickDepth()
		if !ok {
			depth = 3
		}
		if inbound := inboundCounts[page.URL]; inbound > 0 {
			depth -= 0.5 * float64(inbound)
			if depth < 1 {
				depth = 1
			}
		}
		totalDepth += depth
	}
	return totalDepth / float64(len(pages))
}

// normalizedEntropy is the Shannon entropy of the variant distribution
// scaled to [0, 1]. A single variant yields 0.
func normalizedEntropy(counts map[string]int) float64 {
	total := 0
	for _, count := range counts {
		total += count
	}
	if total == 0 || len(counts) <= 1 {
		return 0
	}
	entropy := 0.0
	for _, count := range counts {
		p := float64(count) / float64(total)
		entropy -= p * math.Log(p)
	}
	return entropy / math.Log(float64(len(counts)))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values))
}

func safeRate(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
