// Package ingest drives the periodic scrape-dedupe-notify pipeline.
package ingest

import (
	"context"

	"newswire/internal/domain/entity"
)

// RawArticle is one listing entry as scraped from a source, before the
// store assigns identity. PublishedAtRaw stays verbatim; normalization
// happens at render time.
type RawArticle struct {
	Title          string
	PhotoURL       string
	Link           string
	Tag            string
	PublishedAtRaw string
}

// SourceAdapter produces a source's fresh listing and fetches full
// content per article. Implementations live in internal/infra/scraper.
type SourceAdapter interface {
	// Source identifies the site this adapter scrapes.
	Source() entity.Source

	// ListRecent fetches the current listing, newest first or in the
	// site's natural order. The sequence is finite and freshly fetched
	// on every call.
	ListRecent(ctx context.Context) ([]RawArticle, error)

	// FetchContent retrieves and extracts the article body for a link.
	FetchContent(ctx context.Context, link string) (string, error)
}
