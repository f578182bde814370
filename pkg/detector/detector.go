// Package detector infers page roles from URL structure and content signals.
// Crawled pages rarely declare whether they are a product page, a checkout
// step or reference material, so the parser uses these heuristics to fill
// metadata that ingestion could not read directly.
package detector

import (
	"net/url"
	"regexp"
	"strings"
)

// Signals holds the inferred role flags for one page.
type Signals struct {
	// Type is the inferred page type when URL or content signals are
	// decisive, empty otherwise.
	Type string

	IsLogin      bool
	IsCart       bool
	IsConversion bool
	IsReference  bool
	IsMoneyPage  bool

	// Confidence is a 0-10 estimate of how strong the combined signals are.
	Confidence float64
}

var pricePattern = regexp.MustCompile(`[$€£]\s?\d`)

// Path segments that identify a page role regardless of content.
var (
	loginSegments     = []string{"login", "signin", "sign-in", "register", "signup", "sign-up", "account", "auth"}
	cartSegments      = []string{"cart", "basket", "checkout"}
	productSegments   = []string{"product", "products", "shop", "store", "item"}
	categorySegments  = []string{"category", "categories", "collections", "collection", "tag", "tags"}
	referenceSegments = []string{"docs", "documentation", "reference", "glossary", "wiki", "manual", "api"}
	blogSegments      = []string{"blog", "posts", "articles", "news", "guide", "guides"}
	reviewSegments    = []string{"review", "reviews", "comparison", "vs"}
)

// Analyze classifies the page at rawURL from its path and body text. The
// returned signals only describe what the heuristics could see; callers merge
// them with whatever metadata the page declared itself.
func Analyze(rawURL, text string) Signals {
	var s Signals

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return s
	}
	segments := pathSegments(parsed)
	lower := strings.ToLower(text)

	switch {
	case hasSegment(segments, loginSegments):
		s.IsLogin = true
		s.Confidence = 8
	case hasSegment(segments, cartSegments):
		s.IsCart = true
		s.IsConversion = true
		s.Confidence = 8
	case hasSegment(segments, productSegments):
		s.Type = "product"
		s.IsMoneyPage = true
		s.Confidence = 7
	case hasSegment(segments, categorySegments):
		s.Type = "category"
		s.Confidence = 7
	case hasSegment(segments, referenceSegments):
		s.Type = "docs"
		s.IsReference = true
		s.Confidence = 7
	case hasSegment(segments, reviewSegments):
		s.Type = "review"
		s.Confidence = 6
	case hasSegment(segments, blogSegments):
		s.Type = "blog"
		s.Confidence = 6
	}

	// Content signals, weaker than path ones.
	if strings.Contains(lower, "add to cart") || strings.Contains(lower, "buy now") {
		s.IsConversion = true
		s.IsMoneyPage = true
		s.Confidence += 2
	}
	if len(pricePattern.FindAllString(text, 3)) >= 2 && s.Type == "" {
		s.Type = "product"
		s.IsMoneyPage = true
		s.Confidence += 1
	}
	if strings.Contains(lower, "table of contents") || strings.Contains(lower, "api reference") {
		s.IsReference = true
		s.Confidence += 1
	}

	if s.Confidence > 10 {
		s.Confidence = 10
	}
	return s
}

func pathSegments(u *url.URL) []string {
	raw := strings.Split(strings.Trim(strings.ToLower(u.Path), "/"), "/")
	segments := make([]string, 0, len(raw))
	for _, seg := range raw {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func hasSegment(segments, wanted []string) bool {
	for _, seg := range segments {
		for _, w := range wanted {
			if seg == w {
				return true
			}
		}
	}
	return false
}
