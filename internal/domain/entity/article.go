// Package entity defines the core domain entities for the news bot:
// articles, their sources, and notification subscribers, along with
// domain-specific errors.
package entity

import "time"

// ContentMaxLen is the rune cutoff applied to scraped article content.
// Content longer than this is truncated and suffixed with ContentMarker.
const ContentMaxLen = 600

// ContentMarker is appended to truncated article content.
const ContentMarker = "..."

// TagNone is the sentinel tag stored when a source does not categorize
// an article.
const TagNone = "#uncategorized"

// Article represents one ingested news item.
//
// Articles are append-only: they are created exactly once during an
// ingestion cycle, never updated and never deleted. Uniqueness of
// (Source, Title) is the dedupe invariant and is enforced by the store,
// not only by the database schema.
type Article struct {
	ID       int64
	Source   Source
	Title    string
	PhotoURL string
	Link     string

	// Tag is the site-reported category or hashtag, TagNone when absent.
	Tag string

	// PublishedAtRaw is the publish timestamp exactly as reported by the
	// source, possibly carrying a timezone offset. It is normalized to a
	// display format at render time, never at storage time.
	PublishedAtRaw string

	// Content is the truncated full text of the article, empty when the
	// content fetch failed during ingestion.
	Content string

	CreatedAt time.Time
}

// HasContent reports whether the article body was fetched successfully.
func (a *Article) HasContent() bool {
	return a.Content != ""
}

// TruncateContent applies the fixed content cutoff with the truncation
// marker. Input shorter than the cutoff is returned unchanged.
func TruncateContent(s string) string {
	runes := []rune(s)
	if len(runes) <= ContentMaxLen {
		return s
	}
	return string(runes[:ContentMaxLen]) + ContentMarker
}
