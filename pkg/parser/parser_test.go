package parser

import (
	"testing"
)

const sampleHTML = `<!DOCTYPE html>
<html lang="en-US">
<head>
  <title>Acme Mega Camera Review</title>
  <meta name="robots" content="noindex, nofollow">
  <meta name="keywords" content="camera, acme">
  <meta property="article:tag" content="Reviews">
  <meta property="article:published_time" content="2024-03-15T10:00:00+00:00">
  <meta property="og:type" content="article">
  <link rel="canonical" href="https://example.com/reviews/acme-mega-camera">
  <script type="application/ld+json">{"@type": "Review"}</script>
</head>
<body>
  <article>
    <h1>Acme Mega Camera Review</h1>
    <p>The Acme Mega Camera is a versatile mirrorless body aimed at enthusiasts.
       It pairs well with the full range of Acme lenses and accessories, and the
       in-body stabilization makes handheld shooting far more forgiving.</p>
    <p>Compared to its predecessor the autofocus is faster, the buffer is deeper,
       and the menus are easier to navigate. See our <a href="/guides/lens-guide">lens guide</a>
       and the <a href="https://other-site.com/external">manufacturer page</a> for details.</p>
  </article>
</body>
</html>`

func TestParse(t *testing.T) {
	page, err := New().Parse(Request{
		URL:        "https://example.com/reviews/acme-mega-camera?ref=home",
		HTML:       sampleHTML,
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if page.Title != "Acme Mega Camera Review" {
		t.Errorf("Title = %q", page.Title)
	}
	if page.Text == "" {
		t.Fatal("expected extracted text")
	}
	if !page.Noindex || !page.Nofollow {
		t.Errorf("robots directives = (%v, %v), want (true, true)", page.Noindex, page.Nofollow)
	}
	if page.Canonical != "https://example.com/reviews/acme-mega-camera" {
		t.Errorf("Canonical = %q", page.Canonical)
	}
	if page.PublishedAt != "2024-03-15T10:00:00+00:00" {
		t.Errorf("PublishedAt = %q", page.PublishedAt)
	}
	if page.Lang != "en" {
		t.Errorf("Lang = %q, want en", page.Lang)
	}
	if page.Type != "blog" {
		t.Errorf("Type = %q, want blog", page.Type)
	}

	wantTags := map[string]bool{"reviews": false, "camera": false, "acme": false}
	for _, tag := range page.Tags {
		if _, ok := wantTags[tag]; ok {
			wantTags[tag] = true
		}
	}
	for tag, found := range wantTags {
		if !found {
			t.Errorf("missing tag %q in %v", tag, page.Tags)
		}
	}

	if !page.Metadata.Bool("has_schema") {
		t.Error("expected has_schema metadata")
	}
	if got := page.Metadata.StatusCode(); got != 200 {
		t.Errorf("status_code = %d, want 200", got)
	}

	outbound := page.Metadata.OutboundLinks()
	if len(outbound) != 1 {
		t.Fatalf("outbound links = %v, want one same-host link", outbound)
	}
	if outbound[0] != "https://example.com/guides/lens-guide" {
		t.Errorf("outbound[0] = %q", outbound[0])
	}
}

func TestParseDetectsLanguageWithoutLangAttr(t *testing.T) {
	html := `<html><head><title>Guide</title></head><body><article>
<p>Ce guide couvre l'appareil photo Acme et explique comment choisir les objectifs,
les accessoires et les réglages adaptés à chaque situation de prise de vue.</p>
<p>Nous comparons également les modèles récents pour vous aider à décider.</p>
</article></body></html>`

	page, err := New().Parse(Request{URL: "https://example.com/fr/guide", HTML: html})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if page.Lang != "fr" {
		t.Errorf("Lang = %q, want fr", page.Lang)
	}
}

func TestParseInvalidURL(t *testing.T) {
	if _, err := New().Parse(Request{URL: "://bad", HTML: "<html></html>"}); err == nil {
		t.Error("expected an error for an invalid URL")
	}
}

func TestNormalizeText(t *testing.T) {
	input := "  first line \n\n   second line\n"
	if got := normalizeText(input); got != "first line second line" {
		t.Errorf("normalizeText = %q", got)
	}
}
