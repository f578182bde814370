// Package parser turns raw HTML into the normalized page representation the
// linking engine consumes.
package parser

import (
	"bufio"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"

	"github.com/MutabPato/interlinker-tool/models"
	"github.com/MutabPato/interlinker-tool/pkg/detector"
)

// Parser extracts page content and metadata. The zero value is not usable;
// construct with New so the language detector is initialized once.
type Parser struct {
	detector lingua.LanguageDetector
}

func New() *Parser {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.French,
			lingua.Spanish,
			lingua.German,
			lingua.Italian,
			lingua.Portuguese,
		).
		Build()
	return &Parser{detector: detector}
}

// Request describes one document to parse.
type Request struct {
	URL        string
	HTML       string
	StatusCode int
}

// Parse extracts the readable content and link-safety metadata of a
// document. The main article text comes from go-readability; robots
// directives, canonical URL, publish date, and tags come from the full
// document head.
func (p *Parser) Parse(req Request) (models.Page, error) {
	parsedURL, err := url.Parse(req.URL)
	if err != nil {
		return models.Page{}, fmt.Errorf("failed to parse URL: %w", err)
	}

	rp := readability.NewParser()
	article, err := rp.Parse(strings.NewReader(req.HTML), parsedURL)
	if err != nil {
		return models.Page{}, fmt.Errorf("failed to extract content: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(req.HTML))
	if err != nil {
		return models.Page{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	text := blockText(article.Content)
	if text == "" {
		text = normalizeText(article.TextContent)
	}

	signals := detector.Analyze(req.URL, text)

	page := models.Page{
		URL:         req.URL,
		Title:       normalizeText(article.Title),
		HTML:        req.HTML,
		Text:        text,
		Tags:        pageTags(doc),
		Type:        pageType(doc, signals),
		PublishedAt: publishedAt(doc),
		Canonical:   canonicalURL(doc, req.URL),
		Metadata:    models.Metadata{},
	}

	page.Noindex, page.Nofollow = robotsDirectives(doc)
	page.Lang = p.pageLang(doc, text)

	if req.StatusCode != 0 {
		page.Metadata[models.MetaStatusCode] = req.StatusCode
	}
	if hasSchemaMarkup(doc) {
		page.Metadata[models.MetaHasSchema] = true
	}
	if outbound := outboundLinks(doc, parsedURL); len(outbound) > 0 {
		page.Metadata[models.MetaOutboundLinks] = outbound
	}
	applySignals(page.Metadata, signals)

	return page, nil
}

// applySignals records the inferred role flags. Signals only ever set flags,
// so metadata declared by the page itself is never cleared.
func applySignals(meta models.Metadata, signals detector.Signals) {
	if signals.IsLogin {
		meta[models.MetaIsLogin] = true
	}
	if signals.IsCart {
		meta[models.MetaIsCart] = true
	}
	if signals.IsConversion {
		meta[models.MetaIsConversionPage] = true
	}
	if signals.IsReference {
		meta[models.MetaIsReference] = true
	}
	if signals.IsMoneyPage {
		meta[models.MetaIsMoneyPage] = true
	}
}

// blockText walks the content-bearing tags of the distilled article and
// joins their normalized text.
func blockText(contentHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return ""
	}
	var blocks []string
	doc.Find("h1,h2,h3,h4,p,li").Each(func(i int, s *goquery.Selection) {
		if text := normalizeText(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	return strings.Join(blocks, " ")
}

// normalizeText cleans up a string by trimming space and removing excess
// newlines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

func robotsDirectives(doc *goquery.Document) (noindex, nofollow bool) {
	doc.Find(`meta[name="robots"]`).Each(func(i int, s *goquery.Selection) {
		content := strings.ToLower(s.AttrOr("content", ""))
		if strings.Contains(content, "noindex") {
			noindex = true
		}
		if strings.Contains(content, "nofollow") {
			nofollow = true
		}
	})
	return noindex, nofollow
}

// canonicalURL returns the rel=canonical href, falling back to the page's
// own URL when no tag is present.
func canonicalURL(doc *goquery.Document, pageURL string) string {
	href := strings.TrimSpace(doc.Find(`link[rel="canonical"]`).First().AttrOr("href", ""))
	if href == "" {
		return pageURL
	}
	return href
}

func publishedAt(doc *goquery.Document) string {
	if content := doc.Find(`meta[property="article:published_time"]`).First().AttrOr("content", ""); content != "" {
		return strings.TrimSpace(content)
	}
	if datetime := doc.Find("time[datetime]").First().AttrOr("datetime", ""); datetime != "" {
		return strings.TrimSpace(datetime)
	}
	return ""
}

func pageTags(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var tags []string
	add := func(raw string) {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag == "" {
			return
		}
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	doc.Find(`meta[property="article:tag"]`).Each(func(i int, s *goquery.Selection) {
		add(s.AttrOr("content", ""))
	})
	if keywords := doc.Find(`meta[name="keywords"]`).First().AttrOr("content", ""); keywords != "" {
		for _, keyword := range strings.Split(keywords, ",") {
			add(keyword)
		}
	}
	return tags
}

// pageType prefers the declared og:type and falls back to URL and content
// signals, then to "blog".
func pageType(doc *goquery.Document, signals detector.Signals) string {
	ogType := strings.ToLower(doc.Find(`meta[property="og:type"]`).First().AttrOr("content", ""))
	switch {
	case strings.Contains(ogType, "product"):
		return "product"
	case strings.Contains(ogType, "article"):
		return "blog"
	case ogType != "":
		return ogType
	case signals.Type != "":
		return signals.Type
	default:
		return "blog"
	}
}

func hasSchemaMarkup(doc *goquery.Document) bool {
	return doc.Find(`script[type="application/ld+json"]`).Length() > 0
}

// outboundLinks collects the same-host absolute URLs the document links to.
func outboundLinks(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if resolved.Host != base.Host {
			return
		}
		resolved.Fragment = ""
		link := resolved.String()
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})
	return links
}

// pageLang prefers the declared html lang attribute and falls back to
// statistical detection over the extracted text.
func (p *Parser) pageLang(doc *goquery.Document, text string) string {
	if lang := doc.Find("html").First().AttrOr("lang", ""); lang != "" {
		if idx := strings.IndexAny(lang, "-_"); idx > 0 {
			lang = lang[:idx]
		}
		return strings.ToLower(lang)
	}
	if text == "" {
		return ""
	}
	if language, ok := p.detector.DetectLanguageOf(text); ok {
		return strings.ToLower(language.IsoCode639_1().String())
	}
	return ""
}
