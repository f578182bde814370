package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MutabPato/interlinker-tool/models"
)

func TestDryRunReturnsExpectedMetrics(t *testing.T) {
	source := makePage(
		"https://example.com/blog/source",
		"Source Page",
		"Linking to Acme Gadget Review Hub for more info.",
		withTags("acme"),
		withMeta(models.Metadata{models.MetaOutboundLinks: []string{}}),
	)

	target := makePage(
		"https://example.com/reviews/acme-gadget",
		"Acme Gadget Review Hub",
		"Extensive Acme gadget review content.",
		withTags("acme"),
		withMeta(models.Metadata{models.MetaIsPillar: true, models.MetaAuthorityScore: 0.8}),
	)

	eng := New(DefaultConfig())
	metrics := eng.DryRun([]models.Page{source}, []models.Page{source, target})

	assert.GreaterOrEqual(t, metrics.Coverage, 0.0)
	assert.LessOrEqual(t, metrics.Coverage, 1.0)
	assert.GreaterOrEqual(t, metrics.OrphanRate, 0.0)
	assert.LessOrEqual(t, metrics.OrphanRate, 1.0)
	assert.GreaterOrEqual(t, metrics.AnchorDiversityIndex, 0.0)
	assert.LessOrEqual(t, metrics.AnchorDiversityIndex, 1.0)
	assert.GreaterOrEqual(t, metrics.AvgClickDepthAfter, 0.0)
	assert.NotNil(t, metrics.AnchorVariantCounts)
}

func TestDryRunCoverageAndOrphans(t *testing.T) {
	source := makePage(
		"https://example.com/blog/roundup",
		"Widget Roundup",
		"Our tour of the Widget Review Hub covers models and prices.",
		withTags("widgets"),
		withMeta(models.Metadata{models.MetaOutboundLinks: []string{}}),
	)
	hub := makePage(
		"https://example.com/hub/widgets",
		"Widget Review Hub",
		"All widget reviews in one place.",
		withTags("widgets"),
		withMeta(models.Metadata{models.MetaIsPillar: true, models.MetaClickDepth: 4}),
	)
	orphan := makePage(
		"https://example.com/blog/unrelated",
		"Gardening Notes",
		"Completely unrelated gardening content.",
		withTags("garden"),
	)

	eng := New(DefaultConfig())
	metrics := eng.DryRun([]models.Page{source}, []models.Page{source, hub, orphan})

	require.Equal(t, 1.0, metrics.Coverage, "the only source page should receive suggestions")
	// hub gains an inbound link; source and orphan gain none.
	assert.InDelta(t, 2.0/3.0, metrics.OrphanRate, 1e-9)
	assert.Equal(t, 0.0, metrics.DupTargetRate)
}

func TestDryRunEmptyBatch(t *testing.T) {
	eng := New(DefaultConfig())
	metrics := eng.DryRun(nil, nil)

	assert.Equal(t, 0.0, metrics.Coverage)
	assert.Equal(t, 0.0, metrics.MeanScoreSelected)
	assert.Equal(t, 0.0, metrics.LanguageMismatchRate)
	assert.Equal(t, 0.0, metrics.AvgClickDepthAfter)
	assert.Empty(t, metrics.AnchorVariantCounts)
}

func TestNormalizedEntropy(t *testing.T) {
	if got := normalizedEntropy(nil); got != 0 {
		t.Errorf("entropy of empty counts = %v, want 0", got)
	}
	if got := normalizedEntropy(map[string]int{"exact": 5}); got != 0 {
		t.Errorf("entropy of single variant = %v, want 0", got)
	}
	got := normalizedEntropy(map[string]int{"exact": 5, "partial": 5})
	if got < 0.999 || got > 1.0 {
		t.Errorf("entropy of uniform two-variant split = %v, want 1", got)
	}
}

func TestSimulateClickDepth(t *testing.T) {
	pages := []models.Page{
		makePage("https://example.com/a", "A", "text", withMeta(models.Metadata{models.MetaClickDepth: 4})),
		makePage("https://example.com/b", "B", "text", withMeta(models.Metadata{models.MetaClickDepth: 2})),
	}
	inbound := map[string]int{
		"https://example.com/a": 2, // 4 - 0.5*2 = 3
		"https://example.com/b": 4, // floors at 1
	}
	got := simulateClickDepth(pages, inbound)
	want := (3.0 + 1.0) / 2
	if got != want {
		t.Errorf("simulateClickDepth = %v, want %v", got, want)
	}
}
