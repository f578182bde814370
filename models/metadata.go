package models

// Metadata is the open metadata bag carried by every page. Ingestion fills it
// best-effort; the engine reads it exclusively through the typed accessors
// below, which return a defined default for every absent or malformed field.
type Metadata map[string]any

// Metadata keys read by the engine.
const (
	MetaAuthorityScore       = "authority_score"
	MetaInlinks              = "inlinks"
	MetaClickDepth           = "click_depth"
	MetaTaxonomy             = "taxonomy"
	MetaEntities             = "entities"
	MetaBrand                = "brand"
	MetaHeadTerms            = "head_terms"
	MetaContentScore         = "content_score"
	MetaHasSchema            = "has_schema"
	MetaStatusCode           = "status_code"
	MetaOutboundLinks        = "outbound_links"
	MetaParentID             = "parent_id"
	MetaIsPillar             = "is_pillar"
	MetaIsHub                = "is_hub"
	MetaIsMoneyPage          = "is_money_page"
	MetaIsRedirect           = "is_redirect"
	MetaIsPaginatedDuplicate = "is_paginated_duplicate"
	MetaIsLogin              = "is_login"
	MetaIsCart               = "is_cart"
	MetaIsConversionPage     = "is_conversion_page"
	MetaIsReference          = "is_reference"
	MetaBlocked              = "blocked"
)

// Bool returns the named flag, false when absent or not boolean-like.
func (m Metadata) Bool(key string) bool {
	if m == nil {
		return false
	}
	switch v := m[key].(type) {
	case bool:
		return v
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

// Float returns the named value as a float64, or def when absent or malformed.
func (m Metadata) Float(key string, def float64) float64 {
	if m == nil {
		return def
	}
	if f, ok := asFloat(m[key]); ok {
		return f
	}
	return def
}

// Int returns the named value as an int, or def when absent or malformed.
func (m Metadata) Int(key string, def int) int {
	if f, ok := asFloat(m[key]); ok {
		return int(f)
	}
	return def
}

// String returns the named value as a string, or "" when absent.
func (m Metadata) String(key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// Strings returns the named value as a string slice, nil when absent. Both
// []string and YAML/JSON-decoded []any forms are accepted.
func (m Metadata) Strings(key string) []string {
	if m == nil {
		return nil
	}
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Entities returns structured entities supplied by ingestion. Entries without
// a name are dropped; a missing type defaults to "generic".
func (m Metadata) Entities() []Entity {
	if m == nil {
		return nil
	}
	var out []Entity
	switch v := m[MetaEntities].(type) {
	case []Entity:
		out = append(out, v...)
	case []any:
		for _, item := range v {
			entry, ok := asStringMap(item)
			if !ok {
				continue
			}
			name, _ := entry["name"].(string)
			if name == "" {
				continue
			}
			etype, _ := entry["type"].(string)
			if etype == "" {
				etype = "generic"
			}
			out = append(out, Entity{Name: name, Type: etype})
		}
	}
	for i := range out {
		if out[i].Type == "" {
			out[i].Type = "generic"
		}
	}
	return out
}

// Taxonomy returns the ordered taxonomy path, nil when absent.
func (m Metadata) Taxonomy() []string { return m.Strings(MetaTaxonomy) }

// OutboundLinks returns the recorded outbound link URLs, nil when absent.
func (m Metadata) OutboundLinks() []string { return m.Strings(MetaOutboundLinks) }

// StatusCode returns the recorded HTTP status, defaulting to 200.
func (m Metadata) StatusCode() int { return m.Int(MetaStatusCode, 200) }

// ClickDepth returns the recorded click depth and whether it was present.
func (m Metadata) ClickDepth() (float64, bool) {
	if m == nil {
		return 0, false
	}
	f, ok := asFloat(m[MetaClickDepth])
	return f, ok
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if s, ok := k.(string); ok {
				out[s] = val
			}
		}
		return out, true
	default:
		return nil, false
	}
}
