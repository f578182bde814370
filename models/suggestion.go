package models

// Anchor variant tags, in descending selection priority.
const (
	VariantEntity  = "entity"
	VariantExact   = "exact"
	VariantPartial = "partial"
	VariantBrand   = "brand"
	VariantTag     = "tag"
	VariantGeneric = "generic"
)

// Placement hints for rendered links.
const (
	PlacementIntro      = "intro"
	PlacementBody       = "body"
	PlacementConclusion = "conclusion"
)

// Anchor is a literal text span inside a source page's plain text. Start and
// End are byte offsets satisfying 0 <= Start < End <= len(source.Text), and
// source.Text[Start:End] == Text.
type Anchor struct {
	Text    string `json:"text" yaml:"text"`
	Start   int    `json:"start" yaml:"start"`
	End     int    `json:"end" yaml:"end"`
	Variant string `json:"variant" yaml:"variant"`
}

// Suggestion is one recommended internal link for a source page.
type Suggestion struct {
	TargetURL     string   `json:"target_url" yaml:"target_url"`
	Reason        string   `json:"reason" yaml:"reason"`
	Score         float64  `json:"score" yaml:"score"`
	Anchors       []Anchor `json:"anchors" yaml:"anchors"`
	PlacementHint string   `json:"placement_hint" yaml:"placement_hint"`
	Rel           string   `json:"rel" yaml:"rel"`
	RiskFlags     []string `json:"risk_flags,omitempty" yaml:"risk_flags,omitempty"`
}
