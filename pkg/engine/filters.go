package engine

import (
	"strings"

	"github.com/MutabPato/interlinker-tool/models"
	"github.com/MutabPato/interlinker-tool/pkg/textstat"
)

// Risk flag names. Flags are soft signals: downstream logic may still reject
// or demote a candidate on them, unlike the hard guardrails in AllowCandidate.
const (
	FlagLangMismatch = "lang_mismatch"
	FlagThinTarget   = "thin_target"
	FlagDupAnchor    = "dup_anchor"
)

// flagOrder fixes the order risk flags appear in suggestion output.
var flagOrder = []string{FlagLangMismatch, FlagThinTarget, FlagDupAnchor}

// AllowCandidate applies the hard guardrails: a false return excludes the
// target outright, regardless of its score.
func (e *Engine) AllowCandidate(source, target models.Page) bool {
	if target.URL == source.URL {
		return false
	}
	if target.Noindex || target.Nofollow {
		return false
	}
	if target.Canonical != "" && target.Canonical != target.URL {
		return false
	}
	if target.Metadata.Bool(models.MetaIsRedirect) {
		return false
	}
	if target.Metadata.StatusCode() >= 300 {
		return false
	}
	if target.Metadata.Bool(models.MetaIsPaginatedDuplicate) {
		return false
	}
	if strings.Contains(target.URL, "login") || strings.Contains(target.URL, "cart") {
		return false
	}
	if target.Metadata.Bool(models.MetaBlocked) {
		return false
	}

	// Hard language mismatch with no shared tag is blocked unless the
	// configuration explicitly allows cross-language suggestions.
	if source.Lang != "" && target.Lang != "" && source.Lang != target.Lang && !source.SharesTag(target) {
		return e.cfg.AllowCrossLanguage
	}
	return true
}

// RiskFlags computes the soft risk signals for the pair. A key may be present
// with a false value; only true flags surface in suggestions.
func (e *Engine) RiskFlags(source, target models.Page) map[string]bool {
	flags := make(map[string]bool, 3)

	if source.Lang != "" && target.Lang != "" && source.Lang != target.Lang {
		flags[FlagLangMismatch] = true
	}

	if target.Type == "product" {
		wordCount := len(textstat.Tokenize(target.Text))
		flags[FlagThinTarget] = wordCount < e.cfg.ProductWordcountMin
	}

	for _, outbound := range source.Metadata.OutboundLinks() {
		if outbound == target.URL {
			flags[FlagDupAnchor] = true
			break
		}
	}

	return flags
}

func activeFlags(flags map[string]bool) []string {
	var out []string
	for _, name := range flagOrder {
		if flags[name] {
			out = append(out, name)
		}
	}
	return out
}
