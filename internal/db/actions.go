// Package db implements the CLI commands for inspecting the link database.
package db

import (
	"encoding/json"
	"fmt"
	"strings"

	dbpkg "github.com/MutabPato/interlinker-tool/pkg/db"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// DomainOutput is the per-domain entry printed by `db domains`.
type DomainOutput struct {
	ID       int64  `yaml:"id" json:"id"`
	BaseURL  string `yaml:"base_url" json:"base_url"`
	Hostname string `yaml:"hostname" json:"hostname"`
}

// LinkOutput is the per-link entry printed by `db links`.
type LinkOutput struct {
	ID    int64  `yaml:"id" json:"id"`
	URL   string `yaml:"url" json:"url"`
	Slug  string `yaml:"slug" json:"slug"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
}

// RunOutput is the per-run entry printed by `db runs`.
type RunOutput struct {
	ID              string `yaml:"id" json:"id"`
	Kind            string `yaml:"kind" json:"kind"`
	SourceURL       string `yaml:"source_url,omitempty" json:"source_url,omitempty"`
	SuggestionCount int    `yaml:"suggestion_count" json:"suggestion_count"`
	InsertedCount   int    `yaml:"inserted_count" json:"inserted_count"`
	CreatedAt       string `yaml:"created_at" json:"created_at"`
}

// DomainsAction lists every registered domain.
func DomainsAction(c *cli.Context) error {
	database, err := open(c)
	if err != nil {
		return err
	}
	defer database.Close()

	domains, err := database.Domains()
	if err != nil {
		return fmt.Errorf("failed to list domains: %w", err)
	}
	if len(domains) == 0 {
		fmt.Println("No domains recorded. Run 'interlinker ingest' first.")
		return nil
	}

	output := make([]DomainOutput, len(domains))
	for i, d := range domains {
		output[i] = DomainOutput{ID: d.ID, BaseURL: d.BaseURL, Hostname: d.Hostname}
	}
	return printOutput(c, output)
}

// LinksAction lists the stored links for one domain.
func LinksAction(c *cli.Context) error {
	database, err := open(c)
	if err != nil {
		return err
	}
	defer database.Close()

	domainID, err := resolveDomain(c, database)
	if err != nil {
		return err
	}

	links, err := database.Links(domainID)
	if err != nil {
		return fmt.Errorf("failed to list links: %w", err)
	}

	output := make([]LinkOutput, len(links))
	for i, l := range links {
		output[i] = LinkOutput{ID: l.ID, URL: l.URL, Slug: l.Slug, Title: l.Title}
	}
	return printOutput(c, output)
}

// RunsAction lists the run history for one domain, newest first.
func RunsAction(c *cli.Context) error {
	database, err := open(c)
	if err != nil {
		return err
	}
	defer database.Close()

	domainID, err := resolveDomain(c, database)
	if err != nil {
		return err
	}

	runs, err := database.Runs(domainID)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	output := make([]RunOutput, len(runs))
	for i, r := range runs {
		output[i] = RunOutput{
			ID:              r.ID,
			Kind:            r.Kind,
			SourceURL:       r.SourceURL,
			SuggestionCount: r.SuggestionCount,
			InsertedCount:   r.InsertedCount,
			CreatedAt:       r.CreatedAt,
		}
	}
	return printOutput(c, output)
}

func open(c *cli.Context) (*dbpkg.DB, error) {
	database, err := dbpkg.OpenAt(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
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
