package engine

import (
	"testing"
	"time"

	"github.com/MutabPato/interlinker-tool/models"
	"github.com/MutabPato/interlinker-tool/pkg/corpus"
)

func TestFeaturesAreNormalized(t *testing.T) {
	source := makePage(
		"https://example.com/blog/acme-tips",
		"Acme Camera Tips",
		"Tips for getting the most from the Acme Camera lineup.",
		withTags("camera", "acme"),
		withMeta(models.Metadata{models.MetaTaxonomy: []string{"electronics", "camera"}}),
	)
	target := makePage(
		"https://example.com/reviews/acme-camera",
		"Acme Camera Review",
		"In-depth Acme Camera review with samples.",
		withTags("camera"),
		withType("review"),
		withMeta(models.Metadata{
			models.MetaAuthorityScore: 0.9,
			models.MetaClickDepth:     2,
			models.MetaTaxonomy:       []string{"electronics", "camera"},
		}),
	)

	ctx := corpus.BuildContext([]models.Page{source, target})
	features := New(DefaultConfig()).Features(source, target, ctx)

	wantKeys := []string{
		FeatTitleBM25, FeatBodyBM25, FeatSemantic, FeatEntityOverlap,
		FeatTagOverlap, FeatTaxonomyDistance, FeatAuthority, FeatClickDepth,
		FeatConversionIntent, FeatDuplicateRisk, FeatLangMatch,
		FeatLangMismatch, FeatQuality, FeatFreshness,
	}
	for _, key := range wantKeys {
		value, ok := features[key]
		if !ok {
			t.Errorf("missing feature %s", key)
			continue
		}
		if value < 0 || value > 1 {
			t.Errorf("feature %s = %v, want value in [0, 1]", key, value)
		}
	}

	if features[FeatLangMatch] != 1.0 {
		t.Errorf("same-language match = %v, want 1.0", features[FeatLangMatch])
	}
	if features[FeatLangMismatch] != 0.0 {
		t.Errorf("same-language mismatch = %v, want 0.0", features[FeatLangMismatch])
	}
	if features[FeatTaxonomyDistance] != 1.0 {
		t.Errorf("identical taxonomy distance = %v, want 1.0", features[FeatTaxonomyDistance])
	}
	if features[FeatConversionIntent] != 1.0 {
		t.Errorf("review conversion intent = %v, want 1.0", features[FeatConversionIntent])
	}
	if features[FeatTitleBM25] <= 0 {
		t.Error("overlapping titles should yield a positive title score")
	}
}

func TestAuthorityFallsBackToInlinks(t *testing.T) {
	eng := New(DefaultConfig())

	scored := makePage("https://example.com/a", "A", "text",
		withMeta(models.Metadata{models.MetaAuthorityScore: 0.45}))
	if got := eng.authority(scored); got != 0.45 {
		t.Errorf("authority = %v, want 0.45", got)
	}

	linked := makePage("https://example.com/b", "B", "text",
		withMeta(models.Metadata{models.MetaInlinks: 25}))
	if got := eng.authority(linked); got != 0.5 {
		t.Errorf("inlink authority = %v, want 0.5", got)
	}

	saturated := makePage("https://example.com/c", "C", "text",
		withMeta(models.Metadata{models.MetaInlinks: 500}))
	if got := eng.authority(saturated); got != 1.0 {
		t.Errorf("saturated authority = %v, want 1.0", got)
	}
}

func TestClickDepthFeature(t *testing.T) {
	eng := New(DefaultConfig())

	shallow := makePage("https://example.com/a", "A", "text",
		withMeta(models.Metadata{models.MetaClickDepth: 1}))
	if got := eng.clickDepth(shallow); got != 1.0 {
		t.Errorf("depth-1 feature = %v, want 1.0", got)
	}

	deep := makePage("https://example.com/b", "B", "text",
		withMeta(models.Metadata{models.MetaClickDepth: 10}))
	if got := eng.clickDepth(deep); got != 0.0 {
		t.Errorf("depth-10 feature = %v, want 0.0", got)
	}

	unknown := makePage("https://example.com/c", "C", "text")
	want := 1 - (3.0-1)/6.0
	if got := eng.clickDepth(unknown); got != want {
		t.Errorf("default-depth feature = %v, want %v", got, want)
	}
}

func TestQualityUsesSchemaFloor(t *testing.T) {
	eng := New(DefaultConfig())

	plain := makePage("https://example.com/a", "A", "short text here")
	withSchema := makePage("https://example.com/b", "B", "short text here",
		withMeta(models.Metadata{models.MetaHasSchema: true}))

	if eng.quality(withSchema) <= eng.quality(plain) {
		t.Error("schema markup should raise quality for thin content")
	}
}

func TestFreshness(t *testing.T) {
	eng := New(DefaultConfig())
	restore := now
	now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	defer func() { now = restore }()

	samePage := makePage("https://example.com/a", "A", "text")
	recent := makePage("https://example.com/b", "B", "text")
	undated := makePage("https://example.com/c", "C", "text")
	undated.PublishedAt = ""
	stale := makePage("https://example.com/d", "D", "text")
	stale.PublishedAt = "2014-01-01"

	if got := eng.freshness(samePage, recent); got != 1.0 {
		t.Errorf("same-day freshness = %v, want 1.0", got)
	}
	if got := eng.freshness(samePage, undated); got != 0.4 {
		t.Errorf("undated target freshness = %v, want 0.4", got)
	}
	if got := eng.freshness(samePage, stale); got != 0.1 {
		t.Errorf("stale target freshness = %v, want floor 0.1", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"2024-01-01T00:00:00+00:00", true},
		{"2024-01-01T12:30:00", true},
		{"2024-01-01", true},
		{"", false},
		{"last tuesday", false},
	}
	for _, tc := range cases {
		if _, ok := parseTimestamp(tc.value); ok != tc.ok {
			t.Errorf("parseTimestamp(%q) ok = %v, want %v", tc.value, ok, tc.ok)
		}
	}
}

func TestTaxonomyDistance(t *testing.T) {
	page := func(path ...string) models.Page {
		return makePage("https://example.com/"+path[0], "T", "text",
			withMeta(models.Metadata{models.MetaTaxonomy: path}))
	}

	if got := taxonomyDistance(page("a", "b"), page("a", "b")); got != 1.0 {
		t.Errorf("identical paths = %v, want 1.0", got)
	}
	if got := taxonomyDistance(page("a", "b", "c"), page("a", "b")); got != 2.0/3.0 {
		t.Errorf("partial overlap = %v, want 2/3", got)
	}
	if got := taxonomyDistance(page("a"), makePage("https://example.com/x", "X", "text")); got != 0.0 {
		t.Errorf("missing target taxonomy = %v, want 0.0", got)
	}
}
