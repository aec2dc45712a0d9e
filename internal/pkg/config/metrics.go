package config

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConfigMetrics tracks configuration health for one component: when the
// config was last loaded, which fields failed validation, and whether any
// fallback is currently in effect. Metric names are prefixed with the
// component name, so each component must use a unique prefix.
type ConfigMetrics struct {
	LoadTimestamp         prometheus.Gauge
	ValidationErrorsTotal *prometheus.CounterVec
	FallbacksTotal        *prometheus.CounterVec
	FallbackActive        prometheus.Gauge
}

// NewConfigMetrics creates and registers the config metric set for a
// component. Registration goes through promauto, so a duplicate
// component name panics.
func NewConfigMetrics(componentName string) *ConfigMetrics {
	return &ConfigMetrics{
		LoadTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_load_timestamp", componentName),
			Help: fmt.Sprintf("Unix timestamp of last %s configuration load", componentName),
		}),
		ValidationErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_validation_errors_total", componentName),
			Help: fmt.Sprintf("Total number of %s configuration validation errors", componentName),
		}, []string{"field"}),
		FallbacksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_fallbacks_total", componentName),
			Help: fmt.Sprintf("Total number of %s configuration fallback operations", componentName),
		}, []string{"field"}),
		FallbackActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_fallback_active", componentName),
			Help: fmt.Sprintf("1 if any %s configuration fallback is active, 0 otherwise", componentName),
		}),
	}
}

// RecordLoadTimestamp marks the current time as the last load.
func (m *ConfigMetrics) RecordLoadTimestamp() {
	m.LoadTimestamp.SetToCurrentTime()
}

// RecordValidationError counts a validation failure for a field.
func (m *ConfigMetrics) RecordValidationError(field string) {
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
}

// RecordFallback counts a fallback applied for a field.
func (m *ConfigMetrics) RecordFallback(field string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
}

// SetFallbackActive flags whether any field is running on a fallback.
func (m *ConfigMetrics) SetFallbackActive(active bool) {
	if active {
		m.FallbackActive.Set(1)
	} else {
		m.FallbackActive.Set(0)
	}
}
