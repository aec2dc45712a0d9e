package metrics

import "time"

// RecordCycle records the outcome and duration of one ingestion cycle.
// A cycle with any per-source failure counts as "partial".
func RecordCycle(failedSources int, duration time.Duration) {
	status := "ok"
	if failedSources > 0 {
		status = "partial"
	}
	IngestCyclesTotal.WithLabelValues(status).Inc()
	IngestCycleDuration.Observe(duration.Seconds())
}

// RecordIngested records dedupe-gate outcomes for one source.
func RecordIngested(source string, inserted, duplicated int) {
	if inserted > 0 {
		ArticlesIngestedTotal.WithLabelValues(source, "inserted").Add(float64(inserted))
	}
	if duplicated > 0 {
		ArticlesIngestedTotal.WithLabelValues(source, "duplicate").Add(float64(duplicated))
	}
}

// RecordFetchError records a fetch failure at a given pipeline stage.
func RecordFetchError(source, stage string) {
	FetchErrorsTotal.WithLabelValues(source, stage).Inc()
}

// RecordContentFetch records the duration of one content fetch attempt.
func RecordContentFetch(duration time.Duration) {
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordNotification records one notification send attempt.
func RecordNotification(source string, sent bool) {
	status := "sent"
	if !sent {
		status = "failed"
	}
	NotificationsTotal.WithLabelValues(source, status).Inc()
}
