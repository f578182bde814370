package corpus

import (
	"math"
	"testing"

	"github.com/MutabPato/interlinker-tool/models"
)

func TestBuildContextEmptyCorpus(t *testing.T) {
	ctx := BuildContext(nil)

	if ctx.AvgTitleLen != 1.0 {
		t.Errorf("AvgTitleLen = %v, want 1.0 for empty corpus", ctx.AvgTitleLen)
	}
	if ctx.AvgBodyLen != 1.0 {
		t.Errorf("AvgBodyLen = %v, want 1.0 for empty corpus", ctx.AvgBodyLen)
	}
	if len(ctx.Pages) != 0 {
		t.Errorf("Pages has %d entries, want 0", len(ctx.Pages))
	}
}

func TestBuildContextStatistics(t *testing.T) {
	pages := []models.Page{
		{URL: "https://example.com/a", Title: "Acme Camera", Text: "The Acme camera is great."},
		{URL: "https://example.com/b", Title: "Travel Tips", Text: "Pack light for travel. Travel far."},
	}

	ctx := BuildContext(pages)

	if len(ctx.Pages) != 2 {
		t.Fatalf("Pages has %d entries, want 2", len(ctx.Pages))
	}
	if ctx.TitleTF["https://example.com/a"]["acme"] != 1 {
		t.Errorf("title tf acme = %d, want 1", ctx.TitleTF["https://example.com/a"]["acme"])
	}
	if ctx.BodyTF["https://example.com/b"]["travel"] != 2 {
		t.Errorf("body tf travel = %d, want 2", ctx.BodyTF["https://example.com/b"]["travel"])
	}
	if ctx.TitleDF["camera"] != 1 {
		t.Errorf("title df camera = %d, want 1", ctx.TitleDF["camera"])
	}
	if ctx.BodyDF["the"] != 1 {
		t.Errorf("body df the = %d, want 1", ctx.BodyDF["the"])
	}

	// Titles have 2 tokens each.
	if math.Abs(ctx.AvgTitleLen-2.0) > 1e-9 {
		t.Errorf("AvgTitleLen = %v, want 2.0", ctx.AvgTitleLen)
	}
}

func TestLengthFloor(t *testing.T) {
	if got := Length(map[string]int{}); got != 1 {
		t.Errorf("Length(empty) = %d, want 1", got)
	}
	if got := Length(map[string]int{"a": 2, "b": 3}); got != 5 {
		t.Errorf("Length() = %d, want 5", got)
	}
}
