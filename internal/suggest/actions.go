// Package suggest implements the CLI commands that run the linking engine
// over an ingested corpus.
package suggest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/MutabPato/interlinker-tool/models"
	"github.com/MutabPato/interlinker-tool/pkg/db"
	"github.com/MutabPato/interlinker-tool/pkg/engine"
	"github.com/MutabPato/interlinker-tool/pkg/storage"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// SuggestOutput is the suggest command's stdout payload.
type SuggestOutput struct {
	Source      string              `yaml:"source" json:"source"`
	RunID       string              `yaml:"run_id,omitempty" json:"run_id,omitempty"`
	Suggestions []models.Suggestion `yaml:"suggestions" json:"suggestions"`
}

// SuggestAction loads the corpus, runs the linking pipeline for one source
// page and prints the chosen links.
func SuggestAction(c *cli.Context) error {
	logger := newLogger(c)

	sourceURL := strings.TrimSpace(c.String("source"))
	if sourceURL == "" {
		fmt.Fprintln(os.Stderr, "Error: No source page provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  interlinker suggest --source "https://example.com/blog/post" --corpus-dir corpus`)
		os.Exit(1)
	}

	eng, pages, err := loadEngineAndCorpus(c, logger)
	if err != nil {
		return err
	}

	source, found := findSource(pages, sourceURL)
	if !found {
		fmt.Fprintf(os.Stderr, "Error: source page %s is not in the corpus\n", sourceURL)
		fmt.Fprintln(os.Stderr, "Run 'interlinker ingest' first, or check the URL")
		os.Exit(1)
	}

	suggestions := eng.SuggestLinks(source, pages)
	logger.Info("Pipeline finished", "source", sourceURL, "suggestions", len(suggestions))

	output := SuggestOutput{Source: sourceURL, Suggestions: suggestions}
	if c.IsSet("db") {
		output.RunID = recordRun(c, logger, sourceURL, len(suggestions))
	}

	return printOutput(c, output)
}

// DryRunAction evaluates the whole corpus pairwise and prints aggregate
// linking metrics without emitting suggestions.
func DryRunAction(c *cli.Context) error {
	logger := newLogger(c)

	eng, pages, err := loadEngineAndCorpus(c, logger)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		fmt.Fprintln(os.Stderr, "Error: corpus is empty, run 'interlinker ingest' first")
		os.Exit(1)
	}

	metrics := eng.DryRun(pages, pages)
	logger.Info("Dry run finished", "pages", len(pages), "coverage", metrics.Coverage)

	return printOutput(c, metrics)
}

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func loadEngineAndCorpus(c *cli.Context, logger *slog.Logger) (*engine.Engine, []models.Page, error) {
	cfg, err := engine.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load engine config", "error", err, "path", c.String("config"))
		os.Exit(2)
	}

	store, err := storage.NewStore(c.String("corpus-dir"))
	if err != nil {
		logger.Error("failed to open corpus store", "error", err)
		os.Exit(2)
	}
	pages, err := store.LoadPages()
	if err != nil {
		logger.Error("failed to load corpus", "error", err)
		os.Exit(2)
	}
	logger.Info("Corpus loaded", "pages", len(pages), "dir", store.Dir())

	return engine.New(cfg), pages, nil
}

// findSource matches the requested URL against page URLs and canonicals.
func findSource(pages []models.Page, sourceURL string) (models.Page, bool) {
	for _, page := range pages {
		if page.URL == sourceURL || page.Canonical == sourceURL {
			return page, true
		}
	}
	return models.Page{}, false
}

func recordRun(c *cli.Context, logger *slog.Logger, sourceURL string, suggestionCount int) string {
	database, err := db.OpenAt(c.String("db"))
	if err != nil {
		logger.Warn("Failed to open database, run not recorded", "error", err)
		return ""
	}
	defer database.Close()

	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	domainID, err := database.UpsertDomain(fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host))
	if err != nil {
		logger.Warn("Failed to register domain, run not recorded", "error", err)
		return ""
	}
	runID, err := database.RecordRun(domainID, "suggest", sourceURL, suggestionCount, 0)
	if err != nil {
		logger.Warn("Failed to record run", "error", err)
		return ""
	}
	return runID
}

func printOutput(c *cli.Context, payload any) error {
	var data []byte
	var err error
	if strings.ToLower(c.String("format")) == "json" {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = yaml.Marshal(payload)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
