package engine

import (
	"strings"
	"testing"

	"github.com/MutabPato/interlinker-tool/models"
)

func TestChoosePlacement(t *testing.T) {
	cases := []struct {
		name   string
		target models.Page
		want   string
	}{
		{"pillar flag", makePage("https://example.com/a", "A", "text",
			withMeta(models.Metadata{models.MetaIsPillar: true})), models.PlacementIntro},
		{"category type", makePage("https://example.com/a", "A", "text",
			withType("category")), models.PlacementIntro},
		{"conversion page", makePage("https://example.com/a", "A", "text",
			withMeta(models.Metadata{models.MetaIsConversionPage: true})), models.PlacementBody},
		{"reference page", makePage("https://example.com/a", "A", "text",
			withMeta(models.Metadata{models.MetaIsReference: true})), models.PlacementConclusion},
		{"default", makePage("https://example.com/a", "A", "text"), models.PlacementBody},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ChoosePlacement(tc.target); got != tc.want {
				t.Errorf("ChoosePlacement = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestLinkBudget(t *testing.T) {
	eng := New(DefaultConfig())

	short := makePage("https://example.com/a", "A", "just a few words here")
	if got := eng.LinkBudget(short); got != 3 {
		t.Errorf("short page budget = %d, want base 3", got)
	}

	long := makePage("https://example.com/b", "B", strings.Repeat("word ", 1100))
	if got := eng.LinkBudget(long); got != 5 {
		t.Errorf("1100-word page budget = %d, want 5", got)
	}

	huge := makePage("https://example.com/c", "C", strings.Repeat("word ", 20000))
	if got := eng.LinkBudget(huge); got != 12 {
		t.Errorf("huge page budget = %d, want cap 12", got)
	}

	empty := makePage("https://example.com/d", "D", "")
	if got := eng.LinkBudget(empty); got != 3 {
		t.Errorf("empty page budget = %d, want base 3", got)
	}
}
