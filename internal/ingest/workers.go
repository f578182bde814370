package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/MutabPato/interlinker-tool/pkg/analytics"
	"github.com/MutabPato/interlinker-tool/pkg/caching"
	"github.com/MutabPato/interlinker-tool/pkg/db"
	"github.com/MutabPato/interlinker-tool/pkg/fetcher"
	"github.com/MutabPato/interlinker-tool/pkg/manifest"
	"github.com/MutabPato/interlinker-tool/pkg/mapreduce"
	"github.com/MutabPato/interlinker-tool/pkg/parser"
	"github.com/MutabPato/interlinker-tool/pkg/slug"
	"github.com/MutabPato/interlinker-tool/pkg/storage"
)

// run fetches, parses and stores every URL with a pool of workers and
// returns the per-URL results plus the aggregated corpus keyword counts.
func run(ctx context.Context, logger *slog.Logger, urls []string, workerCount int, cache *caching.Cache, store *storage.Store, database *db.DB, domainID int64) ([]manifest.PageResult, map[string]int, error) {
	f := fetcher.NewFetcher()
	p := parser.New()
	a := &analytics.Analytics{}

	if workerCount <= 0 {
		workerCount = 4
	}
	if workerCount > len(urls) {
		workerCount = len(urls)
	}

	logger.Info("Starting concurrent ingest phase", "url_count", len(urls), "workers", workerCount)
	var wg sync.WaitGroup
	jobs := make(chan Job, len(urls))
	results := make(chan manifest.PageResult, len(urls))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, f, p, a, cache, store, database, domainID, &wg, jobs, results)
	}

	for _, rawURL := range urls {
		jobs <- Job{URL: rawURL}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All ingest workers finished")

	allResults := make([]manifest.PageResult, 0, len(urls))
	var runErr error
	intermediate := make([]map[string]int, 0, len(urls))
	for result := range results {
		allResults = append(allResults, result)
		if result.Error != nil {
			runErr = fmt.Errorf("one or more pages failed to ingest")
		}
		if result.WordCounts != nil {
			intermediate = append(intermediate, result.WordCounts)
		}
	}

	return allResults, mapreduce.Reduce(intermediate), runErr
}

func worker(ctx context.Context, id int, logger *slog.Logger, f *fetcher.Fetcher, p *parser.Parser, a *analytics.Analytics, cache *caching.Cache, store *storage.Store, database *db.DB, domainID int64, wg *sync.WaitGroup, jobs <-chan Job, results chan<- manifest.PageResult) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("Worker started job", "worker_id", id, "url", job.URL)
		result := manifest.PageResult{URL: job.URL}

		rawHTML, cached := cache.Get(job.URL)
		statusCode := http.StatusOK
		if cached {
			logger.Info("Raw HTML found in cache", "worker_id", id, "url", job.URL)
		} else {
			fetched, err := f.Get(ctx, job.URL)
			if err != nil {
				logger.Error("Error fetching HTML", "worker_id", id, "url", job.URL, "error", err)
				result.Error = err
				result.ErrorType = "fetch_error"
				results <- result
				continue
			}
			if fetched.StatusCode != http.StatusOK {
				logger.Error("Unexpected HTTP status", "worker_id", id, "url", job.URL, "status", fetched.StatusCode)
				result.Error = fmt.Errorf("unexpected status code %d", fetched.StatusCode)
				result.ErrorType = "http_error"
				results <- result
				continue
			}
			rawHTML = fetched.Body
			statusCode = fetched.StatusCode
			if err := cache.Set(job.URL, rawHTML); err != nil {
				logger.Warn("Failed to cache HTML", "url", job.URL, "error", err)
			}
		}

		page, err := p.Parse(parser.Request{URL: job.URL, HTML: string(rawHTML), StatusCode: statusCode})
		if err != nil {
			logger.Error("Error parsing HTML", "worker_id", id, "url", job.URL, "error", err)
			result.Error = err
			result.ErrorType = "parse_error"
			results <- result
			continue
		}

		if err := store.SavePage(page); err != nil {
			logger.Error("Error saving page snapshot", "worker_id", id, "url", job.URL, "error", err)
			result.Error = err
			result.ErrorType = "save_error"
			results <- result
			continue
		}

		if database != nil && domainID > 0 {
			rawSlug, normalized := slug.FromURL(page.URL)
			if err := database.UpsertLink(domainID, page.URL, normalized, rawSlug, page.Title); err != nil {
				logger.Warn("Failed to record link in DB", "url", job.URL, "error", err)
			}
		}

		result.Page = &page
		result.WordCounts = mapreduce.Map(page.Text, a)
		results <- result
		logger.Info("Worker finished job", "worker_id", id, "url", job.URL)
	}
}
