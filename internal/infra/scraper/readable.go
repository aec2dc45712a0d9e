package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// extractReadable runs the Readability algorithm over an already parsed
// document. The adapters fall back to it when a site's body selector
// stops matching, which buys time until the selector is updated.
func extractReadable(doc *goquery.Document, link string) (string, error) {
	raw, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return "", fmt.Errorf("serialize document: %w", err)
	}

	pageURL, err := url.Parse(link)
	if err != nil {
		pageURL = nil
	}

	article, err := readability.FromReader(strings.NewReader(raw), pageURL)
	if err != nil {
		return "", fmt.Errorf("readability extraction: %w", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return "", fmt.Errorf("readability extracted empty content")
	}

	return strings.TrimSpace(article.TextContent), nil
}
