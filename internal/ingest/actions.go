package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/MutabPato/interlinker-tool/internal/common"
	"github.com/MutabPato/interlinker-tool/pkg/caching"
	"github.com/MutabPato/interlinker-tool/pkg/db"
	"github.com/MutabPato/interlinker-tool/pkg/manifest"
	"github.com/MutabPato/interlinker-tool/pkg/mapreduce"
	"github.com/MutabPato/interlinker-tool/pkg/sitemap"
	"github.com/MutabPato/interlinker-tool/pkg/storage"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// IngestAction crawls a site into a local corpus: discover URLs, fetch and
// parse each page, persist snapshots and slugs, and write a run manifest.
func IngestAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()
	ctx := context.Background()

	var maxAge time.Duration
	var err error
	if c.Bool("force-fetch") {
		maxAge = 0
	} else {
		maxAge, err = time.ParseDuration(c.String("max-age"))
		if err != nil {
			logger.Error("invalid max-age duration", "error", err)
			os.Exit(2)
		}
	}

	urls, sitemapURL, err := collectURLs(ctx, c, logger)
	if err != nil {
		return err
	}

	sanitized, invalid := common.SanitizeAndValidateURLs(urls)
	if len(invalid) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d URL(s) are malformed (even after cleanup):\n", len(invalid))
		for _, badURL := range invalid {
			fmt.Fprintf(os.Stderr, "  - %s\n", badURL)
		}
		os.Exit(1)
	}
	if len(sanitized) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No URLs to ingest")
		os.Exit(1)
	}

	baseURL, err := siteBaseURL(sanitized[0])
	if err != nil {
		logger.Error("failed to derive site base URL", "error", err)
		os.Exit(2)
	}

	cache, err := caching.New(c.String("cache-dir"), maxAge)
	if err != nil {
		logger.Error("failed to initialize cache", "error", err)
		os.Exit(2)
	}

	store, err := storage.NewStore(c.String("corpus-dir"))
	if err != nil {
		logger.Error("failed to initialize corpus store", "error", err)
		os.Exit(2)
	}

	database, err := db.OpenAt(c.String("db"))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	domainID, err := database.UpsertDomain(baseURL)
	if err != nil {
		logger.Error("failed to register domain", "error", err, "base_url", baseURL)
		os.Exit(2)
	}

	allResults, aggregate, runErr := run(ctx, logger, sanitized, c.Int("workers"), cache, store, database, domainID)

	manifestPath, err := manifest.WriteSummary(store.Dir(), sitemapURL, allResults, aggregate)
	if err != nil {
		logger.Warn("Failed to write run manifest", "error", err)
	}

	output := FinalOutput{
		CorpusDir:    store.Dir(),
		ManifestPath: manifestPath,
	}
	output.Stats = Stats{
		TotalURLs:        len(sanitized),
		TotalTimeSeconds: time.Since(startTime).Seconds(),
		TopKeywords:      mapreduce.TopKeywords(aggregate, 25),
	}
	for _, r := range allResults {
		entry := ResultOutput{URL: r.URL}
		if r.Error != nil {
			output.Stats.Failed++
			entry.Status = "failed"
			entry.Error = r.Error.Error()
			entry.ErrorType = r.ErrorType
		} else {
			output.Stats.Successful++
			entry.Status = "success"
		}
		output.Results = append(output.Results, entry)
	}
	if runErr != nil {
		output.Status = "partial_failure"
	} else {
		output.Status = "success"
	}

	runID, err := database.RecordRun(domainID, "ingest", sitemapURL, 0, output.Stats.Successful)
	if err != nil {
		logger.Warn("Failed to record run", "error", err)
	}
	output.RunID = runID

	var outputData []byte
	var marshalErr error
	if strings.ToLower(c.String("format")) == "json" {
		outputData, marshalErr = json.MarshalIndent(output, "", "  ")
	} else {
		outputData, marshalErr = yaml.Marshal(output)
	}
	if marshalErr != nil {
		logger.Error("failed to marshal final output", "error", marshalErr)
		os.Exit(2)
	}
	fmt.Println(string(outputData))

	if output.Stats.Failed == output.Stats.TotalURLs {
		os.Exit(2)
	}
	if output.Stats.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

// collectURLs resolves the page set to ingest from either a sitemap or an
// explicit URL list.
func collectURLs(ctx context.Context, c *cli.Context, logger *slog.Logger) ([]string, string, error) {
	hasSitemap := c.IsSet("sitemap")
	hasURLs := c.IsSet("urls")

	if hasSitemap && hasURLs {
		fmt.Fprintln(os.Stderr, "Error: Cannot use both --sitemap and --urls flags")
		os.Exit(1)
	}
	if !hasSitemap && !hasURLs {
		fmt.Fprintln(os.Stderr, "Error: No URLs provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  interlinker ingest --sitemap "https://example.com/sitemap.xml"`)
		fmt.Fprintln(os.Stderr, `  interlinker ingest --urls "https://example.com/a,https://example.com/b"`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: interlinker ingest --help")
		os.Exit(1)
	}

	if hasURLs {
		return strings.Split(c.String("urls"), ","), "", nil
	}

	sitemapURL := c.String("sitemap")
	urls, err := sitemap.NewClient().URLs(ctx, sitemapURL)
	if err != nil {
		logger.Error("failed to read sitemap", "error", err, "sitemap", sitemapURL)
		os.Exit(2)
	}
	if len(urls) == 0 {
		fmt.Fprintf(os.Stderr, "Sitemap %s contains no URLs\n", sitemapURL)
		os.Exit(0)
	}
	logger.Info("Sitemap resolved", "sitemap", sitemapURL, "url_count", len(urls))
	return urls, sitemapURL, nil
}

func siteBaseURL(pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host), nil
}
