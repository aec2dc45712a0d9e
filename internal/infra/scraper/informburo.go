package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"newswire/internal/domain/entity"
	"newswire/internal/usecase/ingest"
)

const (
	informburoBaseURL    = "https://informburo.kz"
	informburoListingURL = informburoBaseURL + "/novosti"
)

// Informburo scrapes informburo.kz.
type Informburo struct {
	site
	listingURL string
}

// NewInformburo creates the informburo.kz adapter.
func NewInformburo(client *http.Client) *Informburo {
	return &Informburo{
		site:       newSite(entity.SourceInformburo.String(), client),
		listingURL: informburoListingURL,
	}
}

// Source implements ingest.SourceAdapter.
func (s *Informburo) Source() entity.Source { return entity.SourceInformburo }

// ListRecent fetches the news listing page and extracts one RawArticle
// per listing block.
func (s *Informburo) ListRecent(ctx context.Context) ([]ingest.RawArticle, error) {
	doc, err := s.document(ctx, s.listingURL, s.listingRetry)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}

	var raws []ingest.RawArticle
	doc.Find("li.uk-grid.uk-grid-small.uk-margin-remove-top").Each(func(_ int, block *goquery.Selection) {
		body := block.Find("div.uk-width-expand")

		title := strings.TrimSpace(firstText(body.Find("a")))
		link, _ := body.Find("a").Attr("href")
		if title == "" || link == "" {
			return
		}

		photo := ""
		if src, ok := block.Find("div.uk-width-auto img").Attr("data-src"); ok {
			photo = absoluteURL(strings.TrimSpace(src), informburoBaseURL)
		}

		tag := strings.TrimSpace(block.Find("span.article-mark").Text())
		if tag == "" {
			tag = entity.TagNone
		}

		raws = append(raws, ingest.RawArticle{
			Title:          title,
			PhotoURL:       photo,
			Link:           absoluteURL(strings.TrimSpace(link), informburoBaseURL),
			Tag:            tag,
			PublishedAtRaw: strings.TrimSpace(block.Find("time.article-time").Text()),
		})
	})

	if len(raws) == 0 {
		return nil, fmt.Errorf("ListRecent: %w: no listing blocks matched", ingest.ErrParse)
	}

	return raws, nil
}

// FetchContent extracts the article body: the site renders it as
// paragraphs inside div.article. Falls back to readability extraction
// when the selector matches nothing, and truncates either way.
func (s *Informburo) FetchContent(ctx context.Context, link string) (string, error) {
	doc, err := s.document(ctx, link, s.contentRetry)
	if err != nil {
		return "", fmt.Errorf("FetchContent: %w", err)
	}

	content := joinParagraphs(doc.Find("div.article p"))
	if content == "" {
		content, err = extractReadable(doc, link)
		if err != nil {
			return "", fmt.Errorf("FetchContent: %w: %v", ingest.ErrParse, err)
		}
	}

	return entity.TruncateContent(content), nil
}

// firstText returns the selection's first direct text node, skipping
// nested elements. Listing anchors carry the title as a bare text node
// followed by markup.
func firstText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	for node := sel.First().Nodes[0].FirstChild; node != nil; node = node.NextSibling {
		if node.Type == html.TextNode && strings.TrimSpace(node.Data) != "" {
			return node.Data
		}
	}
	return sel.First().Text()
}
