package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newswire/internal/domain/entity"
	"newswire/internal/usecase/ingest"
)

const nurListingURL = "https://www.nur.kz/latest/"

// Nur scrapes nur.kz.
type Nur struct {
	site
	listingURL string
	logger     *slog.Logger
}

// NewNur creates the nur.kz adapter.
func NewNur(client *http.Client, logger *slog.Logger) *Nur {
	return &Nur{
		site:       newSite(entity.SourceNur.String(), client),
		listingURL: nurListingURL,
		logger:     logger,
	}
}

// Source implements ingest.SourceAdapter.
func (s *Nur) Source() entity.Source { return entity.SourceNur }

// ListRecent fetches the latest-news listing. The listing markup carries
// no usable image, so the photo comes from each article page; a failed
// photo fetch degrades to an empty PhotoURL rather than dropping the
// article.
func (s *Nur) ListRecent(ctx context.Context) ([]ingest.RawArticle, error) {
	doc, err := s.document(ctx, s.listingURL, s.listingRetry)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}

	var raws []ingest.RawArticle
	doc.Find("a.article-preview-category__content").Each(func(_ int, block *goquery.Selection) {
		title := strings.TrimSpace(block.Find("h2.article-preview-category__subhead").Text())
		link, _ := block.Attr("href")
		if title == "" || link == "" {
			return
		}

		tag := strings.TrimSpace(block.Find("span.article-preview-category__text").Text())
		if tag == "" {
			tag = entity.TagNone
		}

		published, _ := block.Find("time").Attr("datetime")

		raws = append(raws, ingest.RawArticle{
			Title:          title,
			Link:           strings.TrimSpace(link),
			Tag:            tag,
			PublishedAtRaw: strings.TrimSpace(published),
		})
	})

	if len(raws) == 0 {
		return nil, fmt.Errorf("ListRecent: %w: no listing blocks matched", ingest.ErrParse)
	}

	for i := range raws {
		photo, err := s.fetchPhoto(ctx, raws[i].Link)
		if err != nil {
			s.logger.Debug("article photo fetch failed",
				slog.String("link", raws[i].Link),
				slog.String("error", err.Error()))
			continue
		}
		raws[i].PhotoURL = photo
	}

	return raws, nil
}

// FetchContent extracts the article body from the formatted-body block.
// Falls back to readability extraction when the selector matches
// nothing, and truncates either way.
func (s *Nur) FetchContent(ctx context.Context, link string) (string, error) {
	doc, err := s.document(ctx, link, s.contentRetry)
	if err != nil {
		return "", fmt.Errorf("FetchContent: %w", err)
	}

	content := joinParagraphs(doc.Find("div.formatted-body__content--wrapper p.formatted-body__paragraph"))
	if content == "" {
		content, err = extractReadable(doc, link)
		if err != nil {
			return "", fmt.Errorf("FetchContent: %w: %v", ingest.ErrParse, err)
		}
	}

	return entity.TruncateContent(content), nil
}

func (s *Nur) fetchPhoto(ctx context.Context, link string) (string, error) {
	doc, err := s.document(ctx, link, s.contentRetry)
	if err != nil {
		return "", err
	}

	src, ok := doc.Find("picture img").First().Attr("src")
	if !ok {
		return "", fmt.Errorf("no picture element on %s", link)
	}
	return strings.TrimSpace(src), nil
}
