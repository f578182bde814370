package engine

import (
	"sort"
	"strings"

	"github.com/MutabPato/interlinker-tool/models"
	"github.com/MutabPato/interlinker-tool/pkg/corpus"
)

// Coarse source/target relationships used to force diversity in the final
// selection.
const (
	roleParent  = "parent"
	roleSibling = "sibling"
	roleMoney   = "money"
	roleOther   = "other"
)

// Candidates flagged lang_mismatch survive only on strong topical overlap.
const semanticRescueFloor = 0.18

type evaluated struct {
	target    models.Page
	features  map[string]float64
	score     float64
	anchors   []models.Anchor
	riskFlags []string
	placement string
	reason    string
	role      string
}

// SuggestLinks returns ordered link suggestions for one source page against
// the corpus. The corpus context is rebuilt on every call; batch callers
// should build it once and use SuggestWithContext.
func (e *Engine) SuggestLinks(source models.Page, pages []models.Page) []models.Suggestion {
	ctx := corpus.BuildContext(pages)
	return e.SuggestWithContext(source, pages, ctx)
}

// SuggestWithContext runs the full pipeline for one source page using a
// previously built corpus context.
func (e *Engine) SuggestWithContext(source models.Page, pages []models.Page, ctx *corpus.Context) []models.Suggestion {
	candidates := e.GenerateCandidates(source, pages, ctx)
	suggestions, _ := e.evaluateCandidates(source, candidates, ctx)
	return suggestions
}

// evaluateCandidates scores and filters the candidate set, then runs the
// two-phase selection: a greedy fill up to the link budget followed by a
// bounded backfill that guarantees one parent and one sibling when available.
func (e *Engine) evaluateCandidates(source models.Page, candidates []models.Page, ctx *corpus.Context) ([]models.Suggestion, []evaluated) {
	var items []evaluated
	for _, target := range candidates {
		if !e.AllowCandidate(source, target) {
			continue
		}

		features := e.Features(source, target, ctx)
		score := ScoreCandidate(features, e.cfg)
		if score < e.cfg.ScoreFloor {
			continue
		}
		anchors := e.SelectAnchors(source, e.ExtractCandidateAnchors(source, target))
		if len(anchors) == 0 {
			continue
		}
		flags := e.RiskFlags(source, target)
		if flags[FlagLangMismatch] && features[FeatSemantic] < semanticRescueFloor {
			continue
		}

		items = append(items, evaluated{
			target:    target,
			features:  features,
			score:     score,
			anchors:   anchors,
			riskFlags: activeFlags(flags),
			placement: ChoosePlacement(target),
			reason:    ScoreReason(features, e.cfg),
			role:      candidateRole(source, target),
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].score > items[j].score })

	budget := e.LinkBudget(source)
	state := selectionState{
		usedTargets: make(map[string]struct{}),
		usedAnchors: make(map[string]struct{}),
		roles:       make(map[string]struct{}),
	}

	var parents, siblings []evaluated
	for _, item := range items {
		switch item.role {
		case roleParent:
			parents = append(parents, item)
		case roleSibling:
			siblings = append(siblings, item)
		}
	}

	// Phase 1: greedy fill by score.
	var selected []models.Suggestion
	for _, item := range items {
		if len(selected) >= budget {
			break
		}
		if !state.admissible(item) {
			continue
		}
		selected = append(selected, item.suggestion())
		state.record(item)
	}

	// Phase 2: role backfill, parent before sibling.
	if _, ok := state.roles[roleParent]; !ok {
		selected = backfillRole(selected, parents, roleParent, budget, &state)
	}
	if _, ok := state.roles[roleSibling]; !ok {
		selected = backfillRole(selected, siblings, roleSibling, budget, &state)
	}
	if len(selected) > budget {
		selected = selected[:budget]
	}

	sort.SliceStable(selected, func(i, j int) bool { return selected[i].Score > selected[j].Score })
	return selected, items
}

type selectionState struct {
	usedTargets map[string]struct{}
	usedAnchors map[string]struct{}
	roles       map[string]struct{}
}

func (s *selectionState) admissible(item evaluated) bool {
	if _, used := s.usedTargets[item.target.URL]; used {
		return false
	}
	for _, anchor := range item.anchors {
		if _, used := s.usedAnchors[strings.ToLower(anchor.Text)]; used {
			return false
		}
	}
	return true
}

func (s *selectionState) record(item evaluated) {
	s.usedTargets[item.target.URL] = struct{}{}
	for _, anchor := range item.anchors {
		s.usedAnchors[strings.ToLower(anchor.Text)] = struct{}{}
	}
	s.roles[item.role] = struct{}{}
}

func (item evaluated) suggestion() models.Suggestion {
	return models.Suggestion{
		TargetURL:     item.target.URL,
		Reason:        item.reason,
		Score:         item.score,
		Anchors:       item.anchors,
		PlacementHint: item.placement,
		Rel:           "follow",
		RiskFlags:     item.riskFlags,
	}
}

// backfillRole admits the best still-admissible candidate of the given role,
// replacing the lowest-scored incumbent when the budget is already full.
func backfillRole(selected []models.Suggestion, candidates []evaluated, role string, budget int, state *selectionState) []models.Suggestion {
	for _, item := range candidates {
		if !state.admissible(item) {
			continue
		}
		selected = insertOrReplace(selected, item.suggestion(), budget)
		state.record(item)
		state.roles[role] = struct{}{}
		break
	}
	return selected
}

// insertOrReplace appends when room remains; otherwise it replaces the
// first minimum-scored incumbent if the newcomer outscores it.
func insertOrReplace(selected []models.Suggestion, candidate models.Suggestion, budget int) []models.Suggestion {
	if len(selected) < budget {
		return append(selected, candidate)
	}
	lowest := 0
	for i := 1; i < len(selected); i++ {
		if selected[i].Score < selected[lowest].Score {
			lowest = i
		}
	}
	if selected[lowest].Score < candidate.Score {
		selected[lowest] = candidate
	}
	return selected
}

func candidateRole(source, target models.Page) string {
	if isParent(source, target) {
		return roleParent
	}
	if isSibling(source, target) {
		return roleSibling
	}
	if target.Metadata.Bool(models.MetaIsMoneyPage) {
		return roleMoney
	}
	return roleOther
}

func isParent(source, target models.Page) bool {
	if target.Metadata.Bool(models.MetaIsPillar) || target.Metadata.Bool(models.MetaIsHub) {
		return true
	}
	targetTax := target.Metadata.Taxonomy()
	if len(targetTax) == 0 {
		return false
	}
	sourceTax := source.Metadata.Taxonomy()
	if len(sourceTax) < len(targetTax) {
		return false
	}
	for i, segment := range targetTax {
		if sourceTax[i] != segment {
			return false
		}
	}
	return true
}

func isSibling(source, target models.Page) bool {
	if source.URL == target.URL {
		return false
	}
	sourceParent := source.Metadata.String(models.MetaParentID)
	targetParent := target.Metadata.String(models.MetaParentID)
	if sourceParent != "" && sourceParent == targetParent {
		return true
	}
	if source.Type != target.Type {
		return false
	}
	targetTags := make(map[string]struct{}, len(target.Tags))
	for _, tag := range target.Tags {
		targetTags[tag] = struct{}{}
	}
	for _, tag := range source.Tags {
		if _, ok := targetTags[tag]; ok {
			return true
		}
	}
	return false
}
