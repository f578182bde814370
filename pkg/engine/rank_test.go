package engine

import (
	"math"
	"strings"
	"testing"
)

func TestLogistic(t *testing.T) {
	if got := Logistic(0); got != 0.5 {
		t.Errorf("Logistic(0) = %v, want 0.5", got)
	}
	if got := Logistic(1000); math.IsInf(got, 0) || math.IsNaN(got) || got > 1 {
		t.Errorf("Logistic(1000) = %v, want finite value <= 1", got)
	}
	if got := Logistic(-1000); got < 0 || got > 1e-20 {
		t.Errorf("Logistic(-1000) = %v, want near-zero", got)
	}
	if Logistic(2) <= Logistic(1) {
		t.Error("Logistic should be monotonically increasing")
	}
}

func TestScoreCandidate(t *testing.T) {
	cfg := DefaultConfig()

	strong := map[string]float64{
		FeatTitleBM25:     0.9,
		FeatEntityOverlap: 0.8,
		FeatSemantic:      0.7,
	}
	weak := map[string]float64{
		FeatTitleBM25: 0.1,
	}
	penalized := map[string]float64{
		FeatTitleBM25:     0.9,
		FeatEntityOverlap: 0.8,
		FeatSemantic:      0.7,
		FeatDuplicateRisk: 1.0,
	}

	strongScore := ScoreCandidate(strong, cfg)
	weakScore := ScoreCandidate(weak, cfg)
	penalizedScore := ScoreCandidate(penalized, cfg)

	if strongScore <= weakScore {
		t.Errorf("strong features scored %v, weak %v; want strong > weak", strongScore, weakScore)
	}
	if penalizedScore >= strongScore {
		t.Errorf("penalized score %v should drop below unpenalized %v", penalizedScore, strongScore)
	}
	for _, score := range []float64{strongScore, weakScore, penalizedScore} {
		if score <= 0 || score >= 1 {
			t.Errorf("score %v out of (0, 1)", score)
		}
	}
}

func TestScoreCandidateEmptyFeatures(t *testing.T) {
	if got := ScoreCandidate(map[string]float64{}, DefaultConfig()); got != 0.5 {
		t.Errorf("empty feature vector scored %v, want 0.5", got)
	}
}

func TestScoreReason(t *testing.T) {
	cfg := DefaultConfig()

	features := map[string]float64{
		FeatEntityOverlap: 0.9,
		FeatTitleBM25:     0.7,
		FeatBodyBM25:      0.1,
	}
	reason := ScoreReason(features, cfg)
	if reason == "" {
		t.Fatal("expected a non-empty reason")
	}
	if !strings.Contains(reason, "shared entities") {
		t.Errorf("reason %q should mention the top contribution", reason)
	}
	if parts := strings.Split(reason, "; "); len(parts) > reasonTopK {
		t.Errorf("reason %q has %d fragments, want at most %d", reason, len(parts), reasonTopK)
	}
}

func TestScoreReasonQualifiers(t *testing.T) {
	if got := reasonFragment(FeatTitleBM25, 0.9); got != "excellent strong title match" {
		t.Errorf("reasonFragment high = %q", got)
	}
	if got := reasonFragment(FeatTitleBM25, 0.7); got != "strong strong title match" {
		t.Errorf("reasonFragment mid = %q", got)
	}
	if got := reasonFragment(FeatTitleBM25, 0.2); got != "good strong title match" {
		t.Errorf("reasonFragment low = %q", got)
	}
	if got := reasonFragment(FeatDuplicateRisk, 0.9); got != "" {
		t.Errorf("penalty features should have no fragment, got %q", got)
	}
}

func TestScoreReasonEmpty(t *testing.T) {
	if got := ScoreReason(map[string]float64{FeatDuplicateRisk: 1.0}, DefaultConfig()); got != "" {
		t.Errorf("ScoreReason with only penalty features = %q, want empty", got)
	}
}
