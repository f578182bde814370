package engine

import (
	"github.com/MutabPato/interlinker-tool/models"
)

// ChoosePlacement picks the section of the source where a link to the
// target reads most naturally. Pillar and category targets fit introductions,
// conversion targets the body, reference material the conclusion.
func ChoosePlacement(target models.Page) string {
	if target.Metadata.Bool(models.MetaIsPillar) || target.Type == "category" || target.Type == "pillar" {
		return models.PlacementIntro
	}
	if target.Metadata.Bool(models.MetaIsConversionPage) {
		return models.PlacementBody
	}
	if target.Metadata.Bool(models.MetaIsReference) {
		return models.PlacementConclusion
	}
	return models.PlacementBody
}

// LinkBudget returns how many internal links a source page may carry, scaled
// by its word count and bounded by the configured ceiling.
func (e *Engine) LinkBudget(source models.Page) int {
	words := source.WordCount()
	if words < 1 {
		words = 1
	}
	budget := e.cfg.BaseLinksPerPage + words/500
	if budget > e.cfg.MaxLinksPerPage {
		budget = e.cfg.MaxLinksPerPage
	}
	return budget
}
