package ingest

import "errors"

// Error taxonomy for the ingestion pipeline. Scraper implementations
// wrap their failures with ErrFetch or ErrParse; store failures are
// wrapped with ErrStore by the service itself.
var (
	ErrFetch = errors.New("fetch failed")
	ErrParse = errors.New("parse failed")
	ErrStore = errors.New("store failed")
)
