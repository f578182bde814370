package engine

import (
	"math"
	"sort"
	"strings"
)

// Logistic computes the standard logistic function, clamping the input to
// [-60, 60] so the exponentiation can never overflow.
func Logistic(x float64) float64 {
	if x > 60 {
		x = 60
	} else if x < -60 {
		x = -60
	}
	return 1.0 / (1.0 + math.Exp(-x))
}

// ScoreCandidate combines the weighted features minus the weighted penalties
// through the logistic function, yielding a bounded score in (0, 1).
func ScoreCandidate(features map[string]float64, cfg Config) float64 {
	linear := 0.0
	for name, value := range features {
		linear += cfg.Weight(name) * value
	}
	penalty := 0.0
	for name, value := range features {
		penalty += cfg.Penalty(name) * value
	}
	return Logistic(linear - penalty)
}

// reasonDescriptors maps features to the human-readable fragment used in
// suggestion reasons. Features without a descriptor never appear in reasons.
var reasonDescriptors = map[string]string{
	FeatTitleBM25:        "strong title match",
	FeatBodyBM25:         "content overlap",
	FeatSemantic:         "semantic similarity",
	FeatEntityOverlap:    "shared entities",
	FeatTagOverlap:       "tag overlap",
	FeatAuthority:        "authoritative target",
	FeatClickDepth:       "shallow depth",
	FeatConversionIntent: "conversion intent",
	FeatFreshness:        "recent update",
	FeatLangMatch:        "language match",
	FeatQuality:          "high-quality target",
}

const reasonTopK = 2

// ScoreReason summarizes the top weighted contributions as a short
// human-readable string, e.g. "excellent shared entities; strong title match".
func ScoreReason(features map[string]float64, cfg Config) string {
	type contribution struct {
		weighted float64
		name     string
		value    float64
	}

	var contributions []contribution
	for name, value := range features {
		weight := cfg.Weight(name)
		if weight > 0 && value > 0 {
			contributions = append(contributions, contribution{weighted: weight * value, name: name, value: value})
		}
	}
	sort.Slice(contributions, func(i, j int) bool {
		if contributions[i].weighted != contributions[j].weighted {
			return contributions[i].weighted > contributions[j].weighted
		}
		return contributions[i].name > contributions[j].name
	})

	if len(contributions) > reasonTopK {
		contributions = contributions[:reasonTopK]
	}
	var fragments []string
	for _, item := range contributions {
		if fragment := reasonFragment(item.name, item.value); fragment != "" {
			fragments = append(fragments, fragment)
		}
	}
	return strings.Join(fragments, "; ")
}

func reasonFragment(name string, value float64) string {
	descriptor, ok := reasonDescriptors[name]
	if !ok {
		return ""
	}
	qualifier := "good"
	switch {
	case value >= 0.85:
		qualifier = "excellent"
	case value >= 0.6:
		qualifier = "strong"
	}
	return qualifier + " " + descriptor
}
