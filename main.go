package main

import (
	"fmt"
	"os"

	internaldb "github.com/MutabPato/interlinker-tool/internal/db"
	"github.com/MutabPato/interlinker-tool/internal/ingest"
	"github.com/MutabPato/interlinker-tool/internal/suggest"
	"github.com/MutabPato/interlinker-tool/internal/weave"
	"github.com/MutabPato/interlinker-tool/pkg/db"
	"github.com/MutabPato/interlinker-tool/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	dbFlag := &cli.StringFlag{
		Name:  "db",
		Value: db.DefaultDBName,
		Usage: "path to the SQLite link database",
	}
	formatFlag := &cli.StringFlag{
		Name:  "format",
		Value: "yaml",
		Usage: "output format: yaml or json",
	}
	corpusFlag := &cli.StringFlag{
		Name:  "corpus-dir",
		Value: "corpus",
		Usage: "directory holding the parsed page snapshots",
	}
	configFlag := &cli.StringFlag{
		Name:  "config",
		Usage: "engine config YAML overriding weights, penalties and budgets",
	}
	quietFlag := &cli.BoolFlag{
		Name:  "quiet",
		Usage: "only log errors",
	}

	return &cli.App{
		Name:  "interlinker",
		Usage: "internal link recommendations for a single site",
		Action: func(c *cli.Context) error {
			fmt.Print(help.ColdstartYAML)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "crawl a site into a local corpus and link database",
				Action: ingest.IngestAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "sitemap", Usage: "sitemap URL to discover pages from"},
					&cli.StringFlag{Name: "urls", Usage: "comma-separated page URLs to ingest"},
					&cli.StringFlag{Name: "cache-dir", Value: ".interlinker-cache", Usage: "directory for cached raw HTML"},
					&cli.StringFlag{Name: "max-age", Value: "24h", Usage: "how long cached HTML stays fresh"},
					&cli.BoolFlag{Name: "force-fetch", Usage: "ignore cached HTML and refetch everything"},
					&cli.IntFlag{Name: "workers", Value: 4, Usage: "number of concurrent fetch workers"},
					corpusFlag, dbFlag, formatFlag, quietFlag,
				},
			},
			{
				Name:   "suggest",
				Usage:  "rank internal link targets for one source page",
				Action: suggest.SuggestAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "source", Usage: "URL of the page to suggest links for"},
					corpusFlag, configFlag, dbFlag, formatFlag, quietFlag,
				},
			},
			{
				Name:   "dryrun",
				Usage:  "score the whole corpus and report linking health metrics",
				Action: suggest.DryRunAction,
				Flags:  []cli.Flag{corpusFlag, configFlag, formatFlag, quietFlag},
			},
			{
				Name:   "weave",
				Usage:  "inject internal links into an HTML document",
				Action: weave.WeaveAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Usage: "HTML file to rewrite"},
					&cli.StringFlag{Name: "output", Usage: "destination file, stdout when omitted"},
					&cli.StringFlag{Name: "base-url", Usage: "site whose link map to use, e.g. https://example.com"},
					&cli.StringFlag{Name: "priority", Usage: "comma-separated term=url pairs linked before the slug map"},
					&cli.IntFlag{Name: "max-links", Value: 10, Usage: "maximum anchors to insert"},
					dbFlag, formatFlag, quietFlag,
				},
			},
			{
				Name:  "db",
				Usage: "inspect the link database",
				Subcommands: []*cli.Command{
					{
						Name:   "domains",
						Usage:  "list registered domains",
						Action: internaldb.DomainsAction,
						Flags:  []cli.Flag{dbFlag, formatFlag},
					},
					{
						Name:      "links",
						Usage:     "list stored links for a domain",
						ArgsUsage: "[domain-id]",
						Action:    internaldb.LinksAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "base-url", Usage: "select the domain by base URL"},
							dbFlag, formatFlag,
						},
					},
					{
						Name:      "runs",
						Usage:     "list run history for a domain",
						ArgsUsage: "[domain-id]",
						Action:    internaldb.RunsAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "base-url", Usage: "select the domain by base URL"},
							dbFlag, formatFlag,
						},
					},
				},
			},
		},
	}
}
