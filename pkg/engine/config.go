package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Feature names produced by the feature extractor. Features with no
// configured weight or penalty contribute nothing to the score.
const (
	FeatTitleBM25        = "f_title_bm25"
	FeatBodyBM25         = "f_body_bm25"
	FeatSemantic         = "f_semantic"
	FeatEntityOverlap    = "f_entity_overlap"
	FeatTagOverlap       = "f_tag_overlap"
	FeatTaxonomyDistance = "f_taxonomy_distance"
	FeatAuthority        = "f_authority"
	FeatClickDepth       = "f_click_depth"
	FeatConversionIntent = "f_conversion_intent"
	FeatDuplicateRisk    = "f_duplicate_risk"
	FeatLangMatch        = "f_lang_match"
	FeatLangMismatch     = "f_lang_mismatch"
	FeatQuality          = "f_quality"
	FeatFreshness        = "f_freshness"
)

// Config is the frozen engine configuration for one pipeline run. Construct
// it with DefaultConfig or LoadConfig and treat the value as immutable.
type Config struct {
	MaxCandidates         int
	BaseLinksPerPage      int
	MaxLinksPerPage       int
	MaxAnchorsPerTarget   int
	ScoreFloor            float64
	AllowCrossLanguage    bool
	ProductWordcountMin   int
	QualityWordcountNorm  float64
	TitleBM25Norm         float64
	BodyBM25Norm          float64
	MaxInlinks            float64
	MaxClickDepth         float64
	FreshnessHalfLifeDays float64

	// Candidate-generation multipliers. Hand-tuned constants kept
	// overridable rather than hard coded.
	LangFactorSame      float64
	LangFactorSharedTag float64
	LangFactorDistinct  float64
	LangFactorUnknown   float64
	ReviewHubBoost      float64
	ReviewProductBoost  float64

	Weights   map[string]float64
	Penalties map[string]float64
}

// DefaultConfig returns the hand-tuned default configuration.
func DefaultConfig() Config {
	return Config{
		MaxCandidates:         120,
		BaseLinksPerPage:      3,
		MaxLinksPerPage:       12,
		MaxAnchorsPerTarget:   2,
		ScoreFloor:            0.4,
		AllowCrossLanguage:    false,
		ProductWordcountMin:   250,
		QualityWordcountNorm:  800,
		TitleBM25Norm:         8.0,
		BodyBM25Norm:          12.0,
		MaxInlinks:            50,
		MaxClickDepth:         6,
		FreshnessHalfLifeDays: 90,
		LangFactorSame:        1.0,
		LangFactorSharedTag:   0.6,
		LangFactorDistinct:    0.1,
		LangFactorUnknown:     0.7,
		ReviewHubBoost:        1.2,
		ReviewProductBoost:    1.1,
		Weights: map[string]float64{
			FeatTitleBM25:        1.4,
			FeatBodyBM25:         1.1,
			FeatSemantic:         1.2,
			FeatEntityOverlap:    1.5,
			FeatTagOverlap:       0.9,
			FeatTaxonomyDistance: 0.7,
			FeatAuthority:        0.8,
			FeatClickDepth:       0.7,
			FeatConversionIntent: 0.6,
			FeatFreshness:        0.4,
			FeatLangMatch:        0.5,
			FeatQuality:          0.8,
		},
		Penalties: map[string]float64{
			FeatDuplicateRisk: 2.5,
			FeatLangMismatch:  1.0,
		},
	}
}

// Weight returns the linear coefficient for a feature, 0 when unset.
func (c Config) Weight(feature string) float64 { return c.Weights[feature] }

// Penalty returns the penalty coefficient for a feature, 0 when unset.
func (c Config) Penalty(feature string) float64 { return c.Penalties[feature] }

// Overrides is a partial configuration decoded from YAML. Nil scalar fields
// keep their defaults; the weights and penalties maps merge key-wise, so a
// partial override updates only the named features.
type Overrides struct {
	MaxCandidates         *int     `yaml:"max_candidates"`
	BaseLinksPerPage      *int     `yaml:"base_links_per_page"`
	MaxLinksPerPage       *int     `yaml:"max_links_per_page"`
	MaxAnchorsPerTarget   *int     `yaml:"max_anchors_per_target"`
	ScoreFloor            *float64 `yaml:"score_floor"`
	AllowCrossLanguage    *bool    `yaml:"allow_cross_language"`
	ProductWordcountMin   *int     `yaml:"product_wordcount_min"`
	QualityWordcountNorm  *float64 `yaml:"quality_wordcount_norm"`
	TitleBM25Norm         *float64 `yaml:"title_bm25_norm"`
	BodyBM25Norm          *float64 `yaml:"body_bm25_norm"`
	MaxInlinks            *float64 `yaml:"max_inlinks"`
	MaxClickDepth         *float64 `yaml:"max_click_depth"`
	FreshnessHalfLifeDays *float64 `yaml:"freshness_half_life_days"`
	LangFactorSame        *float64 `yaml:"lang_factor_same"`
	LangFactorSharedTag   *float64 `yaml:"lang_factor_shared_tag"`
	LangFactorDistinct    *float64 `yaml:"lang_factor_distinct"`
	LangFactorUnknown     *float64 `yaml:"lang_factor_unknown"`
	ReviewHubBoost        *float64 `yaml:"review_hub_boost"`
	ReviewProductBoost    *float64 `yaml:"review_product_boost"`

	Weights   map[string]float64 `yaml:"weights"`
	Penalties map[string]float64 `yaml:"penalties"`
}

// Merge returns a copy of c with the overrides applied. The receiver is not
// modified and the returned config owns fresh weight/penalty maps.
func (c Config) Merge(o Overrides) Config {
	merged := c
	merged.Weights = cloneMap(c.Weights)
	merged.Penalties = cloneMap(c.Penalties)

	setInt(&merged.MaxCandidates, o.MaxCandidates)
	setInt(&merged.BaseLinksPerPage, o.BaseLinksPerPage)
	setInt(&merged.MaxLinksPerPage, o.MaxLinksPerPage)
	setInt(&merged.MaxAnchorsPerTarget, o.MaxAnchorsPerTarget)
	setFloat(&merged.ScoreFloor, o.ScoreFloor)
	if o.AllowCrossLanguage != nil {
		merged.AllowCrossLanguage = *o.AllowCrossLanguage
	}
	setInt(&merged.ProductWordcountMin, o.ProductWordcountMin)
	setFloat(&merged.QualityWordcountNorm, o.QualityWordcountNorm)
	setFloat(&merged.TitleBM25Norm, o.TitleBM25Norm)
	setFloat(&merged.BodyBM25Norm, o.BodyBM25Norm)
	setFloat(&merged.MaxInlinks, o.MaxInlinks)
	setFloat(&merged.MaxClickDepth, o.MaxClickDepth)
	setFloat(&merged.FreshnessHalfLifeDays, o.FreshnessHalfLifeDays)
	setFloat(&merged.LangFactorSame, o.LangFactorSame)
	setFloat(&merged.LangFactorSharedTag, o.LangFactorSharedTag)
	setFloat(&merged.LangFactorDistinct, o.LangFactorDistinct)
	setFloat(&merged.LangFactorUnknown, o.LangFactorUnknown)
	setFloat(&merged.ReviewHubBoost, o.ReviewHubBoost)
	setFloat(&merged.ReviewProductBoost, o.ReviewProductBoost)

	for feature, weight := range o.Weights {
		merged.Weights[feature] = weight
	}
	for feature, penalty := range o.Penalties {
		merged.Penalties[feature] = penalty
	}
	return merged
}

// LoadConfig reads a YAML overrides file and merges it over the defaults. An
// empty path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read engine config: %w", err)
	}
	var overrides Overrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Config{}, fmt.Errorf("failed to parse engine config: %w", err)
	}
	return cfg.Merge(overrides), nil
}

func cloneMap(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
