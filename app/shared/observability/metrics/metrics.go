// Package metrics defines the operation metrics recorded by every controller
// through the telemetry wrapper.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// ControllerMetrics is implemented by metric backends. Controllers call these
// through their telemetry wrapper; they never record metrics directly.
type ControllerMetrics interface {
	RecordOperationAttempt(ctx context.Context, controller, operation string, guildID sharedtypes.GuildID)
	RecordOperationSuccess(ctx context.Context, controller, operation string, guildID sharedtypes.GuildID)
	RecordOperationFailure(ctx context.Context, controller, operation string, guildID sharedtypes.GuildID)
	RecordOperationDuration(ctx context.Context, controller, operation string, guildID sharedtypes.GuildID, d time.Duration)
}

// NoOpMetrics discards all measurements. Used in tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string, sharedtypes.GuildID) {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string, sharedtypes.GuildID) {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string, sharedtypes.GuildID) {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, sharedtypes.GuildID, time.Duration) {
}

// PrometheusMetrics records controller operation counters and latency.
// Guild ID is intentionally not a label: tenant count is unbounded.
type PrometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewPrometheusMetrics builds the metric set and registers it on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	labels := []string{"controller", "operation"}
	m := &PrometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datalayer_operation_attempts_total",
			Help: "Controller operations started.",
		}, labels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datalayer_operation_successes_total",
			Help: "Controller operations completed without error.",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datalayer_operation_failures_total",
			Help: "Controller operations that returned an error.",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datalayer_operation_duration_seconds",
			Help:    "Controller operation latency.",
			Buckets: prometheus.DefBuckets,
		}, labels),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.duration)
	return m
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, controller, operation string, _ sharedtypes.GuildID) {
	m.attempts.WithLabelValues(controller, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, controller, operation string, _ sharedtypes.GuildID) {
	m.successes.WithLabelValues(controller, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, controller, operation string, _ sharedtypes.GuildID) {
	m.failures.WithLabelValues(controller, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, controller, operation string, _ sharedtypes.GuildID, d time.Duration) {
	m.duration.WithLabelValues(controller, operation).Observe(d.Seconds())
}
