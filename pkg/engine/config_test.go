package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxCandidates != 120 {
		t.Errorf("MaxCandidates = %d, want 120", cfg.MaxCandidates)
	}
	if cfg.ScoreFloor != 0.4 {
		t.Errorf("ScoreFloor = %v, want 0.4", cfg.ScoreFloor)
	}
	if cfg.AllowCrossLanguage {
		t.Error("AllowCrossLanguage should default to false")
	}
	if got := cfg.Weight(FeatEntityOverlap); got != 1.5 {
		t.Errorf("entity overlap weight = %v, want 1.5", got)
	}
	if got := cfg.Penalty(FeatDuplicateRisk); got != 2.5 {
		t.Errorf("duplicate risk penalty = %v, want 2.5", got)
	}
	if got := cfg.Weight("f_unknown"); got != 0 {
		t.Errorf("unknown feature weight = %v, want 0", got)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	floor := 0.55
	links := 5
	cross := true
	merged := base.Merge(Overrides{
		ScoreFloor:         &floor,
		MaxLinksPerPage:    &links,
		AllowCrossLanguage: &cross,
		Weights:            map[string]float64{FeatTitleBM25: 2.0},
	})

	if merged.ScoreFloor != 0.55 {
		t.Errorf("merged ScoreFloor = %v, want 0.55", merged.ScoreFloor)
	}
	if merged.MaxLinksPerPage != 5 {
		t.Errorf("merged MaxLinksPerPage = %d, want 5", merged.MaxLinksPerPage)
	}
	if !merged.AllowCrossLanguage {
		t.Error("merged AllowCrossLanguage should be true")
	}
	if got := merged.Weight(FeatTitleBM25); got != 2.0 {
		t.Errorf("merged title weight = %v, want 2.0", got)
	}
	// Untouched keys survive a partial weights override.
	if got := merged.Weight(FeatEntityOverlap); got != 1.5 {
		t.Errorf("merged entity weight = %v, want 1.5", got)
	}

	// The base config must not be mutated.
	if base.ScoreFloor != 0.4 || base.Weight(FeatTitleBM25) != 1.4 {
		t.Error("Merge mutated the receiver")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig(\"\") returned error: %v", err)
		}
		if cfg.MaxCandidates != 120 {
			t.Errorf("MaxCandidates = %d, want default 120", cfg.MaxCandidates)
		}
	})

	t.Run("yaml overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "engine.yaml")
		data := "score_floor: 0.5\nmax_links_per_page: 8\nweights:\n  f_title_bm25: 1.8\n"
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg.ScoreFloor != 0.5 {
			t.Errorf("ScoreFloor = %v, want 0.5", cfg.ScoreFloor)
		}
		if cfg.MaxLinksPerPage != 8 {
			t.Errorf("MaxLinksPerPage = %d, want 8", cfg.MaxLinksPerPage)
		}
		if got := cfg.Weight(FeatTitleBM25); got != 1.8 {
			t.Errorf("title weight = %v, want 1.8", got)
		}
		if got := cfg.Weight(FeatBodyBM25); got != 1.1 {
			t.Errorf("body weight = %v, want untouched 1.1", got)
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("expected an error for a missing config file")
		}
	})
}
