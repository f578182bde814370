// Package sitemap fetches and parses XML sitemaps, including sitemap
// indexes and gzip-compressed files.
package sitemap

import (
	"compress/gzip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

type urlEntry struct {
	Loc string `xml:"loc"`
}

type urlset struct {
	URLs []urlEntry `xml:"url"`
}

type sitemapIndex struct {
	Sitemaps []urlEntry `xml:"sitemap"`
}

// Client fetches sitemaps over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a sitemap client with the default timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Fetch downloads a sitemap and returns its decoded text, transparently
// decompressing gzip payloads detected by extension or content type.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build sitemap request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch sitemap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch sitemap, status code: %d", resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	contentType := resp.Header.Get("Content-Type")
	if strings.HasSuffix(strings.ToLower(rawURL), ".gz") || strings.Contains(contentType, "application/x-gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("failed to decompress sitemap: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read sitemap body: %w", err)
	}
	return string(data), nil
}

// URLs fetches the sitemap at the given URL and returns every page URL it
// lists. Sitemap indexes are followed one level deep.
func (c *Client) URLs(ctx context.Context, rawURL string) ([]string, error) {
	text, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return c.parse(ctx, text, true), nil
}

// Parse extracts page URLs from sitemap XML without following nested
// sitemaps. Invalid documents yield an empty list.
func Parse(xmlText string) []string {
	return (&Client{}).parse(context.Background(), xmlText, false)
}

func (c *Client) parse(ctx context.Context, xmlText string, fetchNested bool) []string {
	if entries, ok := decode[sitemapIndex](xmlText, "sitemapindex"); ok {
		if !fetchNested {
			return locValues(entries.Sitemaps)
		}
		var urls []string
		for _, loc := range locValues(entries.Sitemaps) {
			nested, err := c.Fetch(ctx, loc)
			if err != nil {
				continue
			}
			// One level of recursion only.
			urls = append(urls, c.parse(ctx, nested, false)...)
		}
		return urls
	}
	if entries, ok := decode[urlset](xmlText, "urlset"); ok {
		return locValues(entries.URLs)
	}
	return nil
}

func decode[T any](xmlText, rootName string) (T, bool) {
	var out T
	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	for {
		token, err := decoder.Token()
		if err != nil {
			return out, false
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if !strings.EqualFold(start.Name.Local, rootName) {
			return out, false
		}
		if err := decoder.DecodeElement(&out, &start); err != nil {
			return out, false
		}
		return out, true
	}
}

func locValues(entries []urlEntry) []string {
	var urls []string
	for _, entry := range entries {
		loc := strings.TrimSpace(entry.Loc)
		if loc != "" {
			urls = append(urls, loc)
		}
	}
	return urls
}
