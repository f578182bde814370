// Package entities extracts named-entity-like phrases from pages and scores
// entity overlap between a source and a candidate target.
//
// Extraction is a pluggable strategy: the default chain prefers structured
// entities supplied by ingestion metadata and falls back to a capitalization
// heuristic. A real NER model can be substituted by implementing Extractor
// without touching any scoring code.
package entities

import (
	"regexp"
	"strings"

	"github.com/MutabPato/interlinker-tool/models"
)

// Extractor produces the entity list for a page.
type Extractor interface {
	Entities(page models.Page) []models.Entity
}

// Entity type weights used by Overlap. Unknown types score as generic.
var typeWeights = map[string]float64{
	"product":  1.0,
	"brand":    0.8,
	"category": 0.6,
	"generic":  0.3,
}

const genericWeight = 0.3

// Heuristic infers entities from sequences of capitalized words (1-6 words)
// in the page text, all typed "generic".
type Heuristic struct{}

var capitalizedRe = regexp.MustCompile(`\b[A-Z][a-zA-Z0-9\-']+(?:\s+[A-Z][a-zA-Z0-9\-']+)*\b`)

// Entities implements Extractor.
func (Heuristic) Entities(page models.Page) []models.Entity {
	var out []models.Entity
	for _, match := range capitalizedRe.FindAllString(page.Text, -1) {
		clean := strings.TrimSpace(match)
		if len(strings.Fields(clean)) > 6 {
			continue
		}
		out = append(out, models.Entity{Name: clean, Type: "generic"})
	}
	return out
}

// MetadataFirst prefers entities supplied in page metadata and delegates to
// Fallback when the metadata carries none.
type MetadataFirst struct {
	Fallback Extractor
}

// Entities implements Extractor.
func (m MetadataFirst) Entities(page models.Page) []models.Entity {
	if ents := page.Metadata.Entities(); len(ents) > 0 {
		return ents
	}
	fallback := m.Fallback
	if fallback == nil {
		fallback = Heuristic{}
	}
	return fallback.Entities(page)
}

// Default returns the standard extraction chain.
func Default() Extractor {
	return MetadataFirst{Fallback: Heuristic{}}
}

func weightFor(entityType string) float64 {
	if w, ok := typeWeights[entityType]; ok {
		return w
	}
	return genericWeight
}

// Overlap returns the weighted entity overlap between source and target in
// [0, 1]. Each source entity contributes its type weight to the total; when
// the target carries an entity with the same case-insensitive name, the
// larger of the two weights is credited as matched. Returns 0 when either
// side has no entities.
func Overlap(ex Extractor, source, target models.Page) float64 {
	sourceEntities := ex.Entities(source)
	targetEntities := ex.Entities(target)
	if len(sourceEntities) == 0 || len(targetEntities) == 0 {
		return 0.0
	}

	targetWeights := make(map[string]float64, len(targetEntities))
	for _, entity := range targetEntities {
		targetWeights[strings.ToLower(entity.Name)] = weightFor(entity.Type)
	}

	totalWeight := 0.0
	matchedWeight := 0.0
	for _, entity := range sourceEntities {
		weight := weightFor(entity.Type)
		totalWeight += weight
		if targetWeight, ok := targetWeights[strings.ToLower(entity.Name)]; ok {
			matchedWeight += max(weight, targetWeight)
		}
	}

	if totalWeight == 0 {
		return 0.0
	}
	return min(matchedWeight/totalWeight, 1.0)
}

// FirstMatch returns the first source entity (in extraction order) whose
// normalized name also appears among the target's entities, along with the
// target-side entity type.
func FirstMatch(ex Extractor, source, target models.Page) (models.Entity, string, bool) {
	targetTypes := make(map[string]string)
	for _, entity := range ex.Entities(target) {
		targetTypes[strings.ToLower(entity.Name)] = entity.Type
	}
	for _, entity := range ex.Entities(source) {
		if targetType, ok := targetTypes[strings.ToLower(entity.Name)]; ok {
			return entity, targetType, true
		}
	}
	return models.Entity{}, "", false
}
