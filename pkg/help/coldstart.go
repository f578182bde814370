// Package help carries the quick-start text printed when the CLI is run
// without a command.
package help

const ColdstartYAML = `# interlinker Quick Start

workflow:
  - "ingest: crawl a site into a local corpus plus a link database"
  - "suggest: rank internal link targets for one source page"
  - "dryrun: score the whole corpus and report linking health metrics"
  - "weave: inject internal links into an HTML draft"

commands:
  ingest_sitemap: |
    interlinker ingest --sitemap "https://example.com/sitemap.xml"

  ingest_urls: |
    interlinker ingest --urls "https://example.com/a,https://example.com/b"

  suggest: |
    interlinker suggest --source "https://example.com/blog/post"

  dryrun: |
    interlinker dryrun --corpus-dir corpus

  weave: |
    interlinker weave --input draft.html --base-url "https://example.com" --output woven.html

  weave_priority: |
    interlinker weave --input draft.html --base-url "https://example.com" \
      --priority "espresso guide=https://example.com/guides/espresso"

  db_inspection: |
    interlinker db domains
    interlinker db links
    interlinker db runs

key_files:
  - "corpus/*.yaml (one parsed page snapshot per URL)"
  - "corpus/manifest-YYYY-MM-DD.yaml (per-run crawl report)"
  - "interlinker.db (domains, links, run history in SQLite)"

tuning:
  - "Pass --config engine.yaml to suggest/dryrun to override weights and budgets"
  - "--max-age controls how long cached HTML is reused (default 24h)"
  - "--force-fetch bypasses the HTML cache entirely"

error_behavior:
  - "Malformed URLs: fail fast before fetching"
  - "Exit codes: 0=success, 1=partial failure, 2=complete failure"
`
