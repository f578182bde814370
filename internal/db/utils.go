package db

import (
	"fmt"

	dbpkg "github.com/MutabPato/interlinker-tool/pkg/db"
	"github.com/urfave/cli/v2"
)

// resolveDomain picks the domain to operate on: an explicit numeric argument,
// the --base-url flag, or the only registered domain when there is exactly
// one.
func resolveDomain(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() > 0 {
		var domainID int64
		if _, err := fmt.Sscanf(c.Args().First(), "%d", &domainID); err != nil {
			return 0, fmt.Errorf("invalid domain ID: %s", c.Args().First())
		}
		return domainID, nil
	}

	if baseURL := c.String("base-url"); baseURL != "" {
		domains, err := database.Domains()
		if err != nil {
			return 0, fmt.Errorf("failed to list domains: %w", err)
		}
		for _, d := range domains {
			if d.BaseURL == baseURL {
				return d.ID, nil
			}
		}
		return 0, fmt.Errorf("domain %s is not recorded, run 'interlinker ingest' first", baseURL)
	}

	domains, err := database.Domains()
	if err != nil {
		return 0, fmt.Errorf("failed to list domains: %w", err)
	}
	switch len(domains) {
	case 0:
		return 0, fmt.Errorf("no domains recorded, run 'interlinker ingest' first")
	case 1:
		return domains[0].ID, nil
	default:
		return 0, fmt.Errorf("multiple domains recorded, pass a domain ID or --base-url")
	}
}
