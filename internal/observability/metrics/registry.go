// Package metrics provides centralized Prometheus metrics for the bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion metrics track scraping cycles and the dedupe gate
var (
	// IngestCyclesTotal counts ingestion cycles by outcome
	IngestCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_cycles_total",
			Help: "Total number of ingestion cycles",
		},
		[]string{"status"}, // status: ok, partial
	)

	// IngestCycleDuration measures full-cycle duration in seconds
	IngestCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_cycle_duration_seconds",
			Help:    "Time taken by one full ingestion cycle",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// ArticlesIngestedTotal counts dedupe-gate outcomes per source
	ArticlesIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_ingested_total",
			Help: "Total number of articles passed through the dedupe gate",
		},
		[]string{"source", "result"}, // result: inserted, duplicate
	)

	// FetchErrorsTotal counts fetch failures by source and stage
	FetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_errors_total",
			Help: "Total number of fetch failures",
		},
		[]string{"source", "stage"}, // stage: listing, content, store
	)

	// ContentFetchDuration measures per-article content fetch time
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time taken to fetch one article's content",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)
)

// Notification metrics track the fan-out path
var (
	// NotificationsTotal counts notification sends by source and status
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of notification sends",
		},
		[]string{"source", "status"}, // status: sent, failed
	)

	// SubscribersNotified tracks the size of the last fan-out audience
	SubscribersNotified = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "subscribers_notified",
			Help: "Number of subscribers in the most recent fan-out",
		},
	)
)

// Interaction metrics track the read path
var (
	// PagesServed counts page renders per source
	PagesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pages_served_total",
			Help: "Total number of article pages served",
		},
		[]string{"source"},
	)

	// TogglesServed counts expand/collapse renders per source
	TogglesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toggles_served_total",
			Help: "Total number of content toggle renders",
		},
		[]string{"source", "direction"}, // direction: expand, collapse
	)

	// UnknownTokensTotal counts callback tokens that matched no grammar
	UnknownTokensTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unknown_tokens_total",
			Help: "Total number of unrecognized callback tokens",
		},
	)
)
