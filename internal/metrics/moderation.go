// Package metrics provides Prometheus metrics for the moderation pipeline.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type ModerationMetrics struct {
	ScreeningsTotal    *prometheus.CounterVec   // Screenings by result (flagged, clean)
	FlagsCreatedTotal  *prometheus.CounterVec   // Flags by content type
	FlagsResolvedTotal *prometheus.CounterVec   // Resolutions by target status
	NotificationsTotal prometheus.Counter       // Admin notifications written
	EvaluationDuration *prometheus.HistogramVec // Evaluation latency by content type
	SeededRulesTotal   prometheus.Counter       // Default rules inserted at startup
}

// NewModerationMetrics creates the metrics and registers them on registry.
func NewModerationMetrics(registry prometheus.Registerer) (*ModerationMetrics, error) {
	m := &ModerationMetrics{
		ScreeningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moderation_screenings_total",
				Help: "Total number of text screenings by result",
			},
			[]string{"result"},
		),
		FlagsCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moderation_flags_created_total",
				Help: "Total number of content flags created by content type",
			},
			[]string{"content_type"},
		),
		FlagsResolvedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moderation_flags_resolved_total",
				Help: "Total number of content flags resolved by status",
			},
			[]string{"status"},
		),
		NotificationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "moderation_notifications_created_total",
				Help: "Total number of administrator notifications created for new flags",
			},
		),
		EvaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moderation_evaluation_duration_seconds",
				Help:    "Time taken to evaluate a content item",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"content_type"},
		),
		SeededRulesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "moderation_seeded_rules_total",
				Help: "Total number of default keyword rules inserted by seeding",
			},
		),
	}

	collectors := []prometheus.Collector{
		m.ScreeningsTotal, m.FlagsCreatedTotal, m.FlagsResolvedTotal,
		m.NotificationsTotal, m.EvaluationDuration, m.SeededRulesTotal,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register moderation metrics: %w", err)
		}
	}
	return m, nil
}

// NewNop returns metrics that are not registered anywhere.
func NewNop() *ModerationMetrics {
	m, _ := NewModerationMetrics(prometheus.NewRegistry())
	return m
}

func (m *ModerationMetrics) RecordScreening(flagged bool) {
	result := "clean"
	if flagged {
		result = "flagged"
	}
	m.ScreeningsTotal.WithLabelValues(result).Inc()
}

func (m *ModerationMetrics) RecordFlag(contentType string, notifications int) {
	m.FlagsCreatedTotal.WithLabelValues(contentType).Inc()
	m.NotificationsTotal.Add(float64(notifications))
}

func (m *ModerationMetrics) RecordResolution(status string) {
	m.FlagsResolvedTotal.WithLabelValues(status).Inc()
}

func (m *ModerationMetrics) ObserveEvaluation(contentType string, started time.Time) {
	m.EvaluationDuration.WithLabelValues(contentType).Observe(time.Since(started).Seconds())
}
