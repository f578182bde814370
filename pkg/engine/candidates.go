package engine

import (
	"net/url"
	"sort"
	"strings"

	"github.com/MutabPato/interlinker-tool/models"
	"github.com/MutabPato/interlinker-tool/pkg/corpus"
	"github.com/MutabPato/interlinker-tool/pkg/entities"
	"github.com/MutabPato/interlinker-tool/pkg/textstat"
)

// Recall blend weights and the BM25 saturation points for the cheap
// pre-filter score. These are recall-oriented and intentionally looser than
// the precision-oriented feature weights.
const (
	recallTitleWeight    = 0.35
	recallBodyWeight     = 0.35
	recallSemanticWeight = 0.2
	recallEntityWeight   = 0.25
	recallTagWeight      = 0.15
	recallTitleBM25Cap   = 8.0
	recallBodyBM25Cap    = 12.0
	recallFloor          = 0.05
)

// GenerateCandidates returns a recall-oriented list of candidate target
// pages for the source, cheapest filters first, truncated to the configured
// cap. It is a pre-filter: precision is the ranker's job.
func (e *Engine) GenerateCandidates(source models.Page, pages []models.Page, ctx *corpus.Context) []models.Page {
	type scoredPage struct {
		score float64
		page  models.Page
	}

	queryTitleTokens := textstat.Tokenize(source.Title)
	queryBodyTokens := textstat.Tokenize(source.Text)
	queryBodyTF := textstat.TermFrequencies(queryBodyTokens)

	totalDocs := len(pages)
	if totalDocs == 0 {
		totalDocs = 1
	}

	var scored []scoredPage
	for _, candidate := range pages {
		if !businessFilter(source, candidate) {
			continue
		}

		titleTF := ctx.TitleTF[candidate.URL]
		bodyTF := ctx.BodyTF[candidate.URL]

		titleScore := textstat.BM25(queryTitleTokens, titleTF, corpus.Length(titleTF), ctx.AvgTitleLen, ctx.TitleDF, totalDocs)
		bodyScore := textstat.BM25(queryBodyTokens, bodyTF, corpus.Length(bodyTF), ctx.AvgBodyLen, ctx.BodyDF, totalDocs)

		semantic := textstat.CosineSimilarity(queryBodyTF, bodyTF)
		entityScore := entities.Overlap(e.entities, source, candidate)
		tagOverlap := candidateTagOverlap(source, candidate)

		recallScore := recallTitleWeight*min(titleScore/recallTitleBM25Cap, 1.0) +
			recallBodyWeight*min(bodyScore/recallBodyBM25Cap, 1.0) +
			recallSemanticWeight*semantic +
			recallEntityWeight*entityScore +
			recallTagWeight*tagOverlap
		recallScore *= e.languageFactor(source, candidate) * e.reviewPreference(source, candidate)

		if recallScore <= recallFloor {
			continue
		}
		scored = append(scored, scoredPage{score: recallScore, page: candidate})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	limit := e.cfg.MaxCandidates
	if limit > len(scored) {
		limit = len(scored)
	}
	out := make([]models.Page, 0, limit)
	for _, item := range scored[:limit] {
		out = append(out, item.page)
	}
	return out
}

// businessFilter applies the cheap hard exclusions that need no scoring:
// self links, robots-excluded targets, canonical duplicates, utility pages,
// error statuses, and tracking-only query URLs.
func businessFilter(source, target models.Page) bool {
	if target.URL == source.URL {
		return false
	}
	if target.Noindex || target.Nofollow {
		return false
	}
	if target.Canonical != "" && source.Canonical != "" && target.Canonical == source.Canonical {
		return false
	}
	if target.Metadata.Bool(models.MetaIsLogin) || target.Metadata.Bool(models.MetaIsCart) {
		return false
	}
	if target.Metadata.StatusCode() >= 300 {
		return false
	}
	if strings.Contains(target.URL, "?") && trackingOnlyQuery(target.URL) {
		return false
	}
	return true
}

// trackingOnlyQuery reports whether every query parameter is a tracking
// parameter (utm*/ref* prefixes, or replytocom). Bare keys without a value
// are ignored, so a query with no key=value pairs counts as tracking-only.
func trackingOnlyQuery(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	for _, param := range strings.Split(parsed.RawQuery, "&") {
		name, _, found := strings.Cut(param, "=")
		if !found {
			continue
		}
		lowered := strings.ToLower(name)
		if strings.HasPrefix(lowered, "utm") || strings.HasPrefix(lowered, "ref") || lowered == "replytocom" {
			continue
		}
		return false
	}
	return true
}

func (e *Engine) languageFactor(source, target models.Page) float64 {
	if source.Lang == "" || target.Lang == "" {
		return e.cfg.LangFactorUnknown
	}
	if source.Lang == target.Lang {
		return e.cfg.LangFactorSame
	}
	if source.SharesTag(target) {
		return e.cfg.LangFactorSharedTag
	}
	return e.cfg.LangFactorDistinct
}

// reviewPreference nudges review sources toward roundup hubs and product
// pages.
func (e *Engine) reviewPreference(source, target models.Page) float64 {
	if source.Type != "review" {
		return 1.0
	}
	titleLower := strings.ToLower(target.Title)
	if target.Type == "category" || target.Type == "review" {
		for _, keyword := range []string{"best", "top", "guide"} {
			if strings.Contains(titleLower, keyword) {
				return e.cfg.ReviewHubBoost
			}
		}
	}
	if target.Type == "product" {
		return e.cfg.ReviewProductBoost
	}
	return 1.0
}

func candidateTagOverlap(source, target models.Page) float64 {
	sourceTags := source.TagSet()
	targetTags := target.TagSet()
	if len(sourceTags) == 0 || len(targetTags) == 0 {
		return 0.0
	}
	intersection := 0
	for tag := range sourceTags {
		if _, ok := targetTags[tag]; ok {
			intersection++
		}
	}
	union := len(sourceTags) + len(targetTags) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
