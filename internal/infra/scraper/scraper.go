// Package scraper implements the per-site source adapters. Each adapter
// fetches a site's listing page with goquery selectors and extracts
// article bodies, with retry and a per-site circuit breaker around every
// network call.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newswire/internal/resilience/circuitbreaker"
	"newswire/internal/resilience/retry"
	"newswire/internal/usecase/ingest"
)

const (
	maxBodySize = 10 * 1024 * 1024 // 10MB
	userAgent   = "NewswireBot/1.0"
)

// site carries the plumbing shared by all adapters: HTTP client, per-site
// circuit breaker and the two retry budgets.
type site struct {
	client       *http.Client
	breaker      *circuitbreaker.CircuitBreaker
	listingRetry retry.Config
	contentRetry retry.Config
	allowPrivate bool
}

func newSite(name string, client *http.Client) site {
	if client == nil {
		client = http.DefaultClient
	}
	return site{
		client:       client,
		breaker:      circuitbreaker.New(circuitbreaker.ScraperConfig(name)),
		listingRetry: retry.ListingConfig(),
		contentRetry: retry.ContentConfig(),
	}
}

// document fetches a URL and parses it, going through retry and the
// circuit breaker. All adapter network traffic funnels through here.
func (s *site) document(ctx context.Context, urlStr string, cfg retry.Config) (*goquery.Document, error) {
	var doc *goquery.Document

	retryErr := retry.WithBackoff(ctx, cfg, func() error {
		result, err := s.breaker.Execute(func() (interface{}, error) {
			return s.doFetch(ctx, urlStr)
		})
		if err != nil {
			return err
		}
		doc = result.(*goquery.Document)
		return nil
	})
	if retryErr != nil {
		return nil, fmt.Errorf("%w: %s: %v", ingest.ErrFetch, urlStr, retryErr)
	}

	return doc, nil
}

// withResilience runs fn through the circuit breaker and the listing
// retry budget, for fetches that do not go through document (feed
// parsing does its own HTTP).
func (s *site) withResilience(ctx context.Context, fn func() error) error {
	return retry.WithBackoff(ctx, s.listingRetry, func() error {
		_, err := s.breaker.Execute(func() (interface{}, error) {
			return nil, fn()
		})
		return err
	})
}

func (s *site) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	if err := s.validateURL(urlStr); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	return doc, nil
}

// validateURL blocks non-HTTP schemes and, unless allowPrivate is set,
// hostnames resolving to private ranges (SSRF prevention).
func (s *site) validateURL(urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q (only http/https allowed)", u.Scheme)
	}
	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("empty hostname in %q", urlStr)
	}
	if s.allowPrivate {
		return nil
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("DNS lookup failed for %s: %w", hostname, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("hostname %q resolves to private IP %s", hostname, ip)
		}
	}
	return nil
}

// isPrivateIP reports loopback, private and link-local ranges, for both
// IPv4 and IPv6.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}

// absoluteURL prefixes site-relative hrefs with the site's base URL.
func absoluteURL(href, base string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(href, "/")
}

// joinParagraphs concatenates the text of matched paragraph nodes, the
// way the sites' article bodies are assembled.
func joinParagraphs(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Each(func(_ int, p *goquery.Selection) {
		b.WriteString(p.Text())
	})
	return strings.TrimSpace(b.String())
}
