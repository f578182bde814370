package engine

import (
	"regexp"
	"sort"
	"strings"

	"github.com/MutabPato/interlinker-tool/models"
	"github.com/MutabPato/interlinker-tool/pkg/entities"
)

// Anchor phrase stop words. Single-word anchors must not be one of these and
// multi-word anchors must not consist entirely of them.
var anchorStopwords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "to": {}, "of": {}, "a": {}, "in": {},
	"for": {}, "on": {}, "with": {}, "at": {}, "by": {}, "an": {}, "be": {},
	"is": {},
}

// variantPriority orders anchor variants for selection scoring. Unknown
// variants fall back to 0.5.
var variantPriority = map[string]float64{
	models.VariantEntity:  1.0,
	models.VariantExact:   0.95,
	models.VariantPartial: 0.8,
	models.VariantBrand:   0.75,
	models.VariantTag:     0.7,
	models.VariantGeneric: 0.6,
}

const defaultVariantPriority = 0.5

type anchorPhrase struct {
	phrase  string
	variant string
}

// ExtractCandidateAnchors collects candidate anchor phrases from the
// target's perspective (title, title fragments, shared entity, head terms,
// brand, tags) and locates every literal occurrence in the source text.
// Returned anchors carry the exact-cased matched text and its byte span.
func (e *Engine) ExtractCandidateAnchors(source, target models.Page) []models.Anchor {
	seen := make(map[anchorPhrase]struct{})
	add := func(phrase, variant string) {
		cleaned := strings.TrimSpace(phrase)
		if cleaned == "" || !validPhrase(cleaned, variant) {
			return
		}
		seen[anchorPhrase{phrase: cleaned, variant: variant}] = struct{}{}
	}

	title := strings.TrimSpace(target.Title)
	if title != "" {
		add(title, models.VariantExact)
		if len(strings.Fields(title)) > 4 {
			add(headTerms(title), models.VariantPartial)
			add(tailTerms(title), models.VariantPartial)
		}
	}

	if entity, targetType, ok := entities.FirstMatch(e.entities, source, target); ok {
		variant := models.VariantEntity
		if _, known := variantPriority[targetType]; known {
			variant = targetType
		}
		add(entity.Name, variant)
	}

	for _, term := range target.Metadata.Strings(models.MetaHeadTerms) {
		add(term, models.VariantPartial)
	}
	if brand := target.Metadata.String(models.MetaBrand); brand != "" {
		add(brand, models.VariantBrand)
	}

	sourceTitleLower := strings.ToLower(source.Title)
	sourceBodyLower := strings.ToLower(source.Text)
	for _, tag := range target.Tags {
		candidate := strings.TrimSpace(tag)
		if candidate == "" {
			continue
		}
		lowered := strings.ToLower(candidate)
		if !strings.Contains(sourceTitleLower, lowered) && !strings.Contains(sourceBodyLower, lowered) {
			continue
		}
		add(strings.ReplaceAll(candidate, "-", " "), models.VariantTag)
	}

	if len(seen) == 0 {
		return nil
	}

	// Deterministic match order regardless of set iteration.
	phrases := make([]anchorPhrase, 0, len(seen))
	for item := range seen {
		phrases = append(phrases, item)
	}
	sort.Slice(phrases, func(i, j int) bool {
		if phrases[i].phrase != phrases[j].phrase {
			return phrases[i].phrase < phrases[j].phrase
		}
		return phrases[i].variant < phrases[j].variant
	})

	var anchors []models.Anchor
	for _, item := range phrases {
		pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(item.phrase))
		if err != nil {
			continue
		}
		for _, span := range pattern.FindAllStringIndex(source.Text, -1) {
			start, end := span[0], span[1]
			actual := source.Text[start:end]
			// Case-only matches can still have the wrong word shape.
			if !validAnchorText(actual, item.variant) {
				continue
			}
			anchors = append(anchors, models.Anchor{
				Text:    actual,
				Start:   start,
				End:     end,
				Variant: item.variant,
			})
		}
	}
	return anchors
}

// SelectAnchors scores, deduplicates, and diversifies the candidate anchors
// for one target, returning at most the configured limit sorted by position.
func (e *Engine) SelectAnchors(source models.Page, anchors []models.Anchor) []models.Anchor {
	if len(anchors) == 0 {
		return nil
	}

	limit := e.cfg.MaxAnchorsPerTarget
	textLength := len(source.Text)
	if textLength == 0 {
		textLength = 1
	}

	type scoredAnchor struct {
		score  float64
		anchor models.Anchor
	}

	// Keep only the best-scoring variant per (start, end) position.
	byPosition := make(map[[2]int]scoredAnchor)
	for _, anchor := range anchors {
		score := anchorScore(anchor, textLength)
		key := [2]int{anchor.Start, anchor.End}
		if best, ok := byPosition[key]; !ok || score > best.score {
			byPosition[key] = scoredAnchor{score: score, anchor: anchor}
		}
	}

	ranked := make([]scoredAnchor, 0, len(byPosition))
	for _, item := range byPosition {
		ranked = append(ranked, item)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if ranked[i].anchor.Start != ranked[j].anchor.Start {
			return ranked[i].anchor.Start < ranked[j].anchor.Start
		}
		return ranked[i].anchor.End < ranked[j].anchor.End
	})

	exactAllowed := limit * 4 / 10
	if exactAllowed < 1 {
		exactAllowed = 1
	}
	exactCount := 0
	usedTexts := make(map[string]struct{})
	selectedKeys := make(map[[2]int]struct{})
	var selected []models.Anchor

	for _, item := range ranked {
		if len(selected) >= limit {
			break
		}
		normalized := strings.ToLower(strings.TrimSpace(item.anchor.Text))
		if _, used := usedTexts[normalized]; used {
			continue
		}
		if item.anchor.Variant == models.VariantExact && exactCount >= exactAllowed {
			continue
		}
		selected = append(selected, item.anchor)
		selectedKeys[[2]int{item.anchor.Start, item.anchor.End}] = struct{}{}
		usedTexts[normalized] = struct{}{}
		if item.anchor.Variant == models.VariantExact {
			exactCount++
		}
	}

	// Variant diversity backfill: when room remains, admit one anchor per
	// not-yet-represented variant.
	if len(selected) < limit {
		selectedVariants := make(map[string]struct{})
		for _, anchor := range selected {
			selectedVariants[anchor.Variant] = struct{}{}
		}
		for _, item := range ranked {
			if len(selected) >= limit {
				break
			}
			if _, taken := selectedKeys[[2]int{item.anchor.Start, item.anchor.End}]; taken {
				continue
			}
			if _, present := selectedVariants[item.anchor.Variant]; present {
				continue
			}
			normalized := strings.ToLower(strings.TrimSpace(item.anchor.Text))
			if _, used := usedTexts[normalized]; used {
				continue
			}
			selected = append(selected, item.anchor)
			selectedKeys[[2]int{item.anchor.Start, item.anchor.End}] = struct{}{}
			usedTexts[normalized] = struct{}{}
			selectedVariants[item.anchor.Variant] = struct{}{}
		}
	}

	sort.Slice(selected, func(i, j int) bool {
		if selected[i].Start != selected[j].Start {
			return selected[i].Start < selected[j].Start
		}
		return selected[i].End < selected[j].End
	})
	return selected
}

func validPhrase(phrase, variant string) bool {
	words := len(strings.Fields(phrase))
	switch variant {
	case models.VariantEntity, models.VariantBrand, models.VariantTag:
		return words >= 1 && words <= 5
	default:
		return words >= 2 && words <= 7
	}
}

func validAnchorText(text, variant string) bool {
	words := strings.Fields(strings.TrimSpace(text))
	switch variant {
	case models.VariantEntity, models.VariantBrand, models.VariantTag:
		if len(words) != 1 {
			return false
		}
		_, stop := anchorStopwords[strings.ToLower(words[0])]
		return !stop
	default:
		if len(words) < 2 || len(words) > 7 {
			return false
		}
		for _, word := range words {
			if _, stop := anchorStopwords[strings.ToLower(word)]; !stop {
				return true
			}
		}
		return false
	}
}

func headTerms(title string) string {
	words := strings.Fields(title)
	if len(words) <= 4 {
		return title
	}
	return strings.Join(words[:4], " ")
}

func tailTerms(title string) string {
	words := strings.Fields(title)
	if len(words) <= 4 {
		return title
	}
	return strings.Join(words[len(words)-3:], " ")
}

// anchorScore prefers high-priority variants, early positions, and phrases
// near four words long.
func anchorScore(anchor models.Anchor, textLength int) float64 {
	variantWeight, ok := variantPriority[anchor.Variant]
	if !ok {
		variantWeight = defaultVariantPriority
	}
	positionFactor := 1 - float64(anchor.Start)/float64(textLength)
	wordCount := len(strings.Fields(anchor.Text))
	lengthFactor := 1 - abs(wordCount-4)/10.0
	if lengthFactor < 0 {
		lengthFactor = 0
	}
	return variantWeight * (0.7 + 0.2*positionFactor + 0.1*lengthFactor)
}

func abs(n int) float64 {
	if n < 0 {
		return float64(-n)
	}
	return float64(n)
}
