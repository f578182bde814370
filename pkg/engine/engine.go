// Package engine implements the internal-link recommendation pipeline:
// candidate generation, feature extraction, guardrail filtering, logistic
// scoring, anchor selection, placement, and the budgeted, role-diverse final
// selection per source page. The engine is a pure computation over immutable
// pages; it performs no I/O and never mutates its inputs.
package engine

import (
	"strings"

	"github.com/MutabPato/interlinker-tool/models"
	"github.com/MutabPato/interlinker-tool/pkg/entities"
)

// Engine evaluates link suggestions for source pages against a corpus.
type Engine struct {
	cfg      Config
	entities entities.Extractor
}

// Option customizes an Engine.
type Option func(*Engine)

// WithEntityExtractor swaps the entity extraction strategy, e.g. for a real
// NER model in place of the capitalization heuristic.
func WithEntityExtractor(ex entities.Extractor) Option {
	return func(e *Engine) {
		if ex != nil {
			e.entities = ex
		}
	}
}

// New returns an engine bound to the given configuration.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, entities: entities.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's frozen configuration.
func (e *Engine) Config() Config { return e.cfg }

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

func lowerTags(page models.Page) []string {
	out := make([]string, len(page.Tags))
	for i, tag := range page.Tags {
		out[i] = strings.ToLower(tag)
	}
	return out
}
