package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Result carries the response details ingestion needs to build a page.
type Result struct {
	Body        []byte
	StatusCode  int
	FinalURL    string
	ContentType string
}

type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Get fetches a URL and returns the body together with the status code and
// the final URL after redirects. Non-2xx responses still return a Result so
// the caller can record the status.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Result{
		Body:        body,
		StatusCode:  resp.StatusCode,
		FinalURL:    resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// GetHTML fetches a URL and returns its body, failing on any non-200
// status.
func (f *Fetcher) GetHTML(ctx context.Context, rawURL string) ([]byte, error) {
	result, err := f.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if result.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch HTML, status code: %d", result.StatusCode)
	}
	return result.Body, nil
}
