// Package weave implements the CLI command that injects internal links into
// an HTML document using the slugs recorded for a domain.
package weave

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/MutabPato/interlinker-tool/pkg/db"
	"github.com/MutabPato/interlinker-tool/pkg/weaver"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Report is the weave command's stdout payload when the woven HTML goes to a
// file.
type Report struct {
	Input      string             `yaml:"input" json:"input"`
	Output     string             `yaml:"output" json:"output"`
	RunID      string             `yaml:"run_id,omitempty" json:"run_id,omitempty"`
	LinksKnown int                `yaml:"links_known" json:"links_known"`
	Inserted   []weaver.Insertion `yaml:"inserted" json:"inserted"`
}

// WeaveAction reads an HTML file, links the first mention of every known slug
// for the domain and writes the rewritten document.
func WeaveAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	inputPath := c.String("input")
	baseURL := strings.TrimSpace(c.String("base-url"))
	if inputPath == "" || baseURL == "" {
		fmt.Fprintln(os.Stderr, "Error: --input and --base-url are required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  interlinker weave --input draft.html --base-url "https://example.com" --output woven.html`)
		os.Exit(1)
	}

	htmlData, err := os.ReadFile(inputPath)
	if err != nil {
		logger.Error("failed to read input file", "error", err, "path", inputPath)
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
		logger.Error("failed to resolve domain", "error", err, "base_url", baseURL)
		os.Exit(2)
	}

	linkMap, err := database.LinkMap(domainID)
	if err != nil {
		logger.Error("failed to load link map", "error", err)
		os.Exit(2)
	}
	if len(linkMap) == 0 {
		fmt.Fprintf(os.Stderr, "No links recorded for %s\n", baseURL)
		fmt.Fprintln(os.Stderr, "Run 'interlinker ingest' first to build the link map")
		os.Exit(1)
	}
	logger.Info("Link map loaded", "base_url", baseURL, "terms", len(linkMap))

	priority, err := parsePriorityTerms(c.String("priority"))
	if err != nil {
		logger.Error("invalid --priority value", "error", err)
		os.Exit(2)
	}

	woven, inserted, err := weaver.InterlinkWithPriority(string(htmlData), linkMap, priority, c.Int("max-links"))
	if err != nil {
		logger.Error("failed to weave links", "error", err)
		os.Exit(2)
	}

	runID, err := database.RecordRun(domainID, "weave", inputPath, 0, len(inserted))
	if err != nil {
		logger.Warn("Failed to record run", "error", err)
	}

	outputPath := c.String("output")
	if outputPath == "" {
		// Woven HTML goes to stdout, report stays on stderr.
		fmt.Println(woven)
		logger.Info("Weave finished", "inserted", len(inserted), "run_id", runID)
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(woven), 0644); err != nil {
		logger.Error("failed to write output file", "error", err, "path", outputPath)
		os.Exit(2)
	}

	report := Report{
		Input:      inputPath,
		Output:     outputPath,
		RunID:      runID,
		LinksKnown: len(linkMap),
		Inserted:   inserted,
	}

	var data []byte
	if strings.ToLower(c.String("format")) == "json" {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = yaml.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// parsePriorityTerms parses "term=url,term=url" pairs from the CLI flag.
func parsePriorityTerms(raw string) ([]weaver.PriorityTerm, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var terms []weaver.PriorityTerm
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("malformed priority pair %q, want term=url", pair)
		}
		terms = append(terms, weaver.PriorityTerm{
			Term: strings.TrimSpace(parts[0]),
			URL:  strings.TrimSpace(parts[1]),
		})
	}
	return terms, nil
}
