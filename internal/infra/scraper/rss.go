package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"newswire/internal/domain/entity"
	"newswire/internal/usecase/ingest"
)

// RSS is an alternative listing mode for a source that publishes a feed.
// It replaces the HTML listing scrape with gofeed parsing while keeping
// the same content extraction as the site's scraper; configure it via
// <SOURCE>_FEED_URL when a site's listing markup breaks but its feed
// still works.
type RSS struct {
	site
	source  entity.Source
	feedURL string
	parser  *gofeed.Parser
	content ContentFetcher
}

// ContentFetcher is the content half of ingest.SourceAdapter. The RSS
// adapter delegates body extraction to the site's scraper.
type ContentFetcher interface {
	FetchContent(ctx context.Context, link string) (string, error)
}

// NewRSS creates a feed-based adapter for a source.
func NewRSS(source entity.Source, feedURL string, client *http.Client, content ContentFetcher) *RSS {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	if client != nil {
		parser.Client = client
	}
	return &RSS{
		site:    newSite(source.String()+"-rss", client),
		source:  source,
		feedURL: feedURL,
		parser:  parser,
		content: content,
	}
}

// Source implements ingest.SourceAdapter.
func (s *RSS) Source() entity.Source { return s.source }

// ListRecent fetches and parses the feed.
func (s *RSS) ListRecent(ctx context.Context) ([]ingest.RawArticle, error) {
	var feed *gofeed.Feed

	err := s.withResilience(ctx, func() error {
		parsed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
		if err != nil {
			return err
		}
		feed = parsed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w: %s: %v", ingest.ErrFetch, s.feedURL, err)
	}

	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("ListRecent: %w: feed has no items", ingest.ErrParse)
	}

	raws := make([]ingest.RawArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		tag := entity.TagNone
		if len(item.Categories) > 0 {
			tag = strings.TrimSpace(item.Categories[0])
		}

		photo := ""
		if item.Image != nil {
			photo = item.Image.URL
		}

		raws = append(raws, ingest.RawArticle{
			Title:          title,
			PhotoURL:       photo,
			Link:           link,
			Tag:            tag,
			PublishedAtRaw: strings.TrimSpace(item.Published),
		})
	}

	return raws, nil
}

// FetchContent delegates to the site's scraper.
func (s *RSS) FetchContent(ctx context.Context, link string) (string, error) {
	return s.content.FetchContent(ctx, link)
}
