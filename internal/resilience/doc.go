// Package resilience groups the fault tolerance building blocks used by
// the scraping pipeline: retry with exponential backoff and jitter, and
// circuit breakers around each news site.
//
// Usage:
//
//	cb := circuitbreaker.New(circuitbreaker.ScraperConfig("informburo"))
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchListing()
//	})
//
//	err := retry.WithBackoff(ctx, retry.ListingConfig(), func() error {
//	    return fetchListing()
//	})
package resilience
