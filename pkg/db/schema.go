package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Domains: one row per site whose sitemap has been ingested
CREATE TABLE IF NOT EXISTS domains (
    domain_id INTEGER PRIMARY KEY AUTOINCREMENT,
    base_url TEXT NOT NULL UNIQUE,
    hostname TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_domains_hostname ON domains(hostname);

-- Links: internal pages extracted from a domain's sitemap. The slug column
-- holds the normalized (lowercase, space-separated) form used for keyword
-- matching; raw_slug preserves the original path segment.
CREATE TABLE IF NOT EXISTS links (
    link_id INTEGER PRIMARY KEY AUTOINCREMENT,
    domain_id INTEGER NOT NULL,
    url TEXT NOT NULL,
    slug TEXT NOT NULL,
    raw_slug TEXT NOT NULL,
    title TEXT DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (domain_id) REFERENCES domains(domain_id) ON DELETE CASCADE,
    UNIQUE(domain_id, url)
);

CREATE INDEX IF NOT EXISTS idx_links_domain ON links(domain_id);
CREATE INDEX IF NOT EXISTS idx_links_slug ON links(slug);

-- Runs: one row per suggestion or weave run, for history and diffing
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    domain_id INTEGER,
    kind TEXT NOT NULL,
    source_url TEXT DEFAULT '',
    suggestion_count INTEGER DEFAULT 0,
    inserted_count INTEGER DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (domain_id) REFERENCES domains(domain_id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_domain ON runs(domain_id);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
