package engine

import (
	"math"
	"time"

	"github.com/MutabPato/interlinker-tool/models"
	"github.com/MutabPato/interlinker-tool/pkg/corpus"
	"github.com/MutabPato/interlinker-tool/pkg/entities"
	"github.com/MutabPato/interlinker-tool/pkg/textstat"
)

// now is swappable for freshness tests.
var now = time.Now

// Features computes the normalized feature vector for a (source, target)
// pair. Every value lies in [0, 1]; missing metadata degrades to the
// documented neutral defaults rather than failing.
func (e *Engine) Features(source, target models.Page, ctx *corpus.Context) map[string]float64 {
	totalDocs := len(ctx.BodyTF)
	if totalDocs == 0 {
		totalDocs = 1
	}
	titleTF := ctx.TitleTF[target.URL]
	bodyTF := ctx.BodyTF[target.URL]
	queryTitleTokens := textstat.Tokenize(source.Title)
	queryBodyTokens := textstat.Tokenize(source.Text)

	titleScore := textstat.BM25(queryTitleTokens, titleTF, corpus.Length(titleTF), ctx.AvgTitleLen, ctx.TitleDF, totalDocs)
	bodyScore := textstat.BM25(queryBodyTokens, bodyTF, corpus.Length(bodyTF), ctx.AvgBodyLen, ctx.BodyDF, totalDocs)
	semantic := textstat.CosineSimilarity(textstat.TermFrequencies(queryBodyTokens), bodyTF)

	features := make(map[string]float64, 14)
	features[FeatTitleBM25] = normalize(titleScore, e.cfg.TitleBM25Norm)
	features[FeatBodyBM25] = normalize(bodyScore, e.cfg.BodyBM25Norm)
	features[FeatSemantic] = clamp01(semantic)
	features[FeatEntityOverlap] = clamp01(entities.Overlap(e.entities, source, target))
	features[FeatTagOverlap] = textstat.Jaccard(lowerTags(source), lowerTags(target))
	features[FeatTaxonomyDistance] = taxonomyDistance(source, target)
	features[FeatAuthority] = e.authority(target)
	features[FeatClickDepth] = e.clickDepth(target)
	features[FeatConversionIntent] = conversionIntent(target)
	features[FeatDuplicateRisk] = duplicateRisk(source, target)
	features[FeatLangMatch] = languageMatch(source, target)
	features[FeatLangMismatch] = 1 - features[FeatLangMatch]
	features[FeatQuality] = e.quality(target)
	features[FeatFreshness] = e.freshness(source, target)
	return features
}

func normalize(value, scale float64) float64 {
	if scale == 0 {
		return 0.0
	}
	return clamp01(value / scale)
}

// taxonomyDistance is the shared prefix mass of the two taxonomy paths:
// intersection size over the longer path length, 0 when either is empty.
func taxonomyDistance(source, target models.Page) float64 {
	sourcePath := source.Metadata.Taxonomy()
	targetPath := target.Metadata.Taxonomy()
	if len(sourcePath) == 0 || len(targetPath) == 0 {
		return 0.0
	}
	sourceSet := make(map[string]struct{}, len(sourcePath))
	for _, node := range sourcePath {
		sourceSet[node] = struct{}{}
	}
	seen := make(map[string]struct{}, len(targetPath))
	overlap := 0
	for _, node := range targetPath {
		if _, dup := seen[node]; dup {
			continue
		}
		seen[node] = struct{}{}
		if _, ok := sourceSet[node]; ok {
			overlap++
		}
	}
	maxDepth := len(sourcePath)
	if len(targetPath) > maxDepth {
		maxDepth = len(targetPath)
	}
	return float64(overlap) / float64(maxDepth)
}

func (e *Engine) authority(target models.Page) float64 {
	authority := target.Metadata.Float(models.MetaAuthorityScore, 0.0)
	if authority == 0 {
		maxInlinks := e.cfg.MaxInlinks
		if maxInlinks == 0 {
			maxInlinks = 50.0
		}
		authority = target.Metadata.Float(models.MetaInlinks, 0.0) / maxInlinks
	}
	return clamp01(authority)
}

func (e *Engine) clickDepth(target models.Page) float64 {
	depth, ok := target.Metadata.ClickDepth()
	if !ok {
		depth = 3
	}
	maxDepth := e.cfg.MaxClickDepth
	if maxDepth <= 0 {
		maxDepth = 6
	}
	return clamp01(1 - (depth-1)/maxDepth)
}

func conversionIntent(target models.Page) float64 {
	switch target.Type {
	case "review", "category", "product":
		return 1.0
	default:
		return 0.3
	}
}

func duplicateRisk(source, target models.Page) float64 {
	for _, outbound := range source.Metadata.OutboundLinks() {
		if outbound == target.URL {
			return 1.0
		}
	}
	return 0.0
}

func languageMatch(source, target models.Page) float64 {
	if source.Lang == "" || target.Lang == "" {
		return 0.7
	}
	if source.Lang == target.Lang {
		return 1.0
	}
	return 0.3
}

func (e *Engine) quality(target models.Page) float64 {
	norm := e.cfg.QualityWordcountNorm
	if norm == 0 {
		norm = 800
	}
	wordCount := float64(len(textstat.Tokenize(target.Text)))
	normalizedWC := math.Min(wordCount/norm, 1.0)

	contentScore := target.Metadata.Float(models.MetaContentScore, 0.0)
	if target.Metadata.Bool(models.MetaHasSchema) && contentScore < 0.6 {
		contentScore = 0.6
	}
	return clamp01(normalizedWC*0.6 + contentScore*0.4)
}

// freshness decays with the gap between the publish dates, floored at 0.1
// inside the window. Targets without a timestamp land on a neutral 0.4; an
// undated source is treated as published now.
func (e *Engine) freshness(source, target models.Page) float64 {
	targetTS, ok := parseTimestamp(target.PublishedAt)
	if !ok {
		return 0.4
	}
	sourceTS, ok := parseTimestamp(source.PublishedAt)
	if !ok {
		sourceTS = now().UTC()
	}
	deltaDays := math.Abs(math.Floor(sourceTS.Sub(targetTS).Hours() / 24))
	halfLife := e.cfg.FreshnessHalfLifeDays
	if halfLife == 0 {
		halfLife = 90
	}
	return clamp01(math.Max(0.1, 1-deltaDays/(halfLife*2)))
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
