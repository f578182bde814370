package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MutabPato/interlinker-tool/models"
)

func TestHeuristicExtractsCapitalizedPhrases(t *testing.T) {
	page := models.Page{
		Text: "We compared the Acme Mega Camera against the SteamPress Lite over one weekend.",
	}

	got := Heuristic{}.Entities(page)

	names := make([]string, 0, len(got))
	for _, entity := range got {
		names = append(names, entity.Name)
		assert.Equal(t, "generic", entity.Type)
	}
	assert.Contains(t, names, "Acme Mega Camera")
	assert.Contains(t, names, "SteamPress Lite")
}

func TestHeuristicIgnoresMidWordCapitals(t *testing.T) {
	page := models.Page{
		Text: "the iPhone and JavaScript ecosystems keep growing",
	}

	names := make([]string, 0)
	for _, entity := range (Heuristic{}).Entities(page) {
		names = append(names, entity.Name)
	}
	assert.Contains(t, names, "JavaScript")
	assert.NotContains(t, names, "Phone")
	assert.NotContains(t, names, "Script")
}

func TestHeuristicSkipsLongPhrases(t *testing.T) {
	page := models.Page{
		Text: "The One Two Three Four Five Six Seven Campaign launched today.",
	}

	for _, entity := range (Heuristic{}).Entities(page) {
		assert.LessOrEqual(t, len(strings.Fields(entity.Name)), 6)
	}
}

func TestMetadataFirstPrefersStructuredEntities(t *testing.T) {
	page := models.Page{
		Text: "Capitalized Words everywhere.",
		Metadata: models.Metadata{
			"entities": []any{
				map[string]any{"name": "Acme Prime Lens", "type": "product"},
				map[string]any{"name": "Acme"},
			},
		},
	}

	got := Default().Entities(page)

	assert.Len(t, got, 2)
	assert.Equal(t, models.Entity{Name: "Acme Prime Lens", Type: "product"}, got[0])
	assert.Equal(t, models.Entity{Name: "Acme", Type: "generic"}, got[1])
}

func TestOverlapWeighting(t *testing.T) {
	source := models.Page{
		Metadata: models.Metadata{
			"entities": []any{
				map[string]any{"name": "Acme Prime Lens", "type": "product"},
				map[string]any{"name": "Tripod", "type": "generic"},
			},
		},
	}
	target := models.Page{
		Metadata: models.Metadata{
			"entities": []any{
				map[string]any{"name": "acme prime lens", "type": "category"},
			},
		},
	}

	// Source total weight 1.0 + 0.3 = 1.3; matched weight max(1.0, 0.6) = 1.0.
	got := Overlap(Default(), source, target)
	assert.InDelta(t, 1.0/1.3, got, 1e-9)
}

func TestOverlapZeroWhenEitherSideEmpty(t *testing.T) {
	source := models.Page{
		Metadata: models.Metadata{
			"entities": []any{map[string]any{"name": "Acme", "type": "brand"}},
		},
	}
	empty := models.Page{Text: "no capitalized words here."}

	assert.Zero(t, Overlap(Default(), source, empty))
	assert.Zero(t, Overlap(Default(), empty, source))
}

func TestFirstMatchReturnsTargetSideType(t *testing.T) {
	source := models.Page{
		Metadata: models.Metadata{
			"entities": []any{
				map[string]any{"name": "Widget", "type": "generic"},
				map[string]any{"name": "Acme", "type": "generic"},
			},
		},
	}
	target := models.Page{
		Metadata: models.Metadata{
			"entities": []any{map[string]any{"name": "acme", "type": "brand"}},
		},
	}

	entity, targetType, ok := FirstMatch(Default(), source, target)
	assert.True(t, ok)
	assert.Equal(t, "Acme", entity.Name)
	assert.Equal(t, "brand", targetType)
}

func TestFirstMatchNone(t *testing.T) {
	source := models.Page{Text: "Acme Widget ships today."}
	target := models.Page{Text: "Completely unrelated prose."}

	_, _, ok := FirstMatch(Default(), source, target)
	assert.False(t, ok)
}
