package db

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// Domain is one registered site.
type Domain struct {
	ID       int64
	BaseURL  string
	Hostname string
}

// Link is one stored sitemap entry for a domain.
type Link struct {
	ID      int64
	URL     string
	Slug    string
	RawSlug string
	Title   string
}

// Run is one recorded suggestion or weave invocation.
type Run struct {
	ID              string
	DomainID        int64
	Kind            string
	SourceURL       string
	SuggestionCount int
	InsertedCount   int
	CreatedAt       string
}

// UpsertDomain inserts a domain by base URL, returning the existing row's ID
// when it is already known.
func (db *DB) UpsertDomain(baseURL string) (int64, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse base URL: %w", err)
	}

	result, err := db.Exec(
		"INSERT INTO domains (base_url, hostname) VALUES (?, ?) ON CONFLICT(base_url) DO NOTHING",
		baseURL, parsed.Hostname(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert domain: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil && id > 0 {
		if affected, err := result.RowsAffected(); err == nil && affected > 0 {
			return id, nil
		}
	}

	var id int64
	if err := db.QueryRow("SELECT domain_id FROM domains WHERE base_url = ?", baseURL).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to look up domain: %w", err)
	}
	return id, nil
}

// Domains returns every registered domain in insertion order.
func (db *DB) Domains() ([]Domain, error) {
	rows, err := db.Query("SELECT domain_id, base_url, hostname FROM domains ORDER BY domain_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query domains: %w", err)
	}
	defer rows.Close()

	var domains []Domain
	for rows.Next() {
		var domain Domain
		if err := rows.Scan(&domain.ID, &domain.BaseURL, &domain.Hostname); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, domain)
	}
	return domains, rows.Err()
}

// UpsertLink stores one link for a domain, refreshing the slug and title
// when the URL is already present.
func (db *DB) UpsertLink(domainID int64, linkURL, slug, rawSlug, title string) error {
	_, err := db.Exec(`
INSERT INTO links (domain_id, url, slug, raw_slug, title) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(domain_id, url) DO UPDATE SET slug = excluded.slug, raw_slug = excluded.raw_slug, title = excluded.title`,
		domainID, linkURL, slug, rawSlug, title,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert link: %w", err)
	}
	return nil
}

// Links returns every stored link for a domain in insertion order.
func (db *DB) Links(domainID int64) ([]Link, error) {
	rows, err := db.Query(
		"SELECT link_id, url, slug, raw_slug, title FROM links WHERE domain_id = ? ORDER BY link_id",
		domainID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		var link Link
		if err := rows.Scan(&link.ID, &link.URL, &link.Slug, &link.RawSlug, &link.Title); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// LinkMap returns the normalized-slug → URL mapping for a domain. When two
// links normalize to the same slug the latest row wins.
func (db *DB) LinkMap(domainID int64) (map[string]string, error) {
	links, err := db.Links(domainID)
	if err != nil {
		return nil, err
	}
	slugToURL := make(map[string]string, len(links))
	for _, link := range links {
		if link.Slug == "" {
			continue
		}
		slugToURL[link.Slug] = link.URL
	}
	return slugToURL, nil
}

// RecordRun stores a run history row and returns its generated ID.
func (db *DB) RecordRun(domainID int64, kind, sourceURL string, suggestionCount, insertedCount int) (string, error) {
	runID := uuid.NewString()
	_, err := db.Exec(
		"INSERT INTO runs (run_id, domain_id, kind, source_url, suggestion_count, inserted_count) VALUES (?, ?, ?, ?, ?, ?)",
		runID, domainID, kind, sourceURL, suggestionCount, insertedCount,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return runID, nil
}

// Runs returns the run history for a domain, newest first.
func (db *DB) Runs(domainID int64) ([]Run, error) {
	rows, err := db.Query(`
SELECT run_id, domain_id, kind, source_url, suggestion_count, inserted_count, created_at
FROM runs WHERE domain_id = ? ORDER BY created_at DESC, run_id`,
		domainID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.DomainID, &run.Kind, &run.SourceURL,
			&run.SuggestionCount, &run.InsertedCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
