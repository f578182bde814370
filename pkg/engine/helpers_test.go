package engine

import (
	"github.com/MutabPato/interlinker-tool/models"
)

type pageOpts struct {
	lang        string
	tags        []string
	pageType    string
	metadata    models.Metadata
	publishedAt string
	noindex     bool
	nofollow    bool
}

type pageOpt func(*pageOpts)

func withLang(lang string) pageOpt       { return func(o *pageOpts) { o.lang = lang } }
func withTags(tags ...string) pageOpt    { return func(o *pageOpts) { o.tags = tags } }
func withType(pageType string) pageOpt   { return func(o *pageOpts) { o.pageType = pageType } }
func withMeta(m models.Metadata) pageOpt { return func(o *pageOpts) { o.metadata = m } }
func withNoindex() pageOpt               { return func(o *pageOpts) { o.noindex = true } }

func makePage(url, title, text string, opts ...pageOpt) models.Page {
	options := pageOpts{
		lang:        "en",
		pageType:    "blog",
		metadata:    models.Metadata{},
		publishedAt: "2024-01-01T00:00:00+00:00",
	}
	for _, opt := range opts {
		opt(&options)
	}
	return models.Page{
		URL:         url,
		Title:       title,
		HTML:        text,
		Text:        text,
		Lang:        options.lang,
		Tags:        options.tags,
		Type:        options.pageType,
		PublishedAt: options.publishedAt,
		Canonical:   url,
		Noindex:     options.noindex,
		Nofollow:    options.nofollow,
		Metadata:    options.metadata,
	}
}
