package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements repository.Metrics using Prometheus.
type Recorder struct {
	upstreamCalls *prometheus.CounterVec
	explanations  *prometheus.CounterVec
	backups       *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder registered on reg
// (the default registry when reg is nil).
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		upstreamCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockadvisor",
				Name:      "upstream_calls_total",
				Help:      "Market data calls by function and outcome (hit, ok, error kind)",
			},
			[]string{"function", "outcome"},
		),
		explanations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockadvisor",
				Name:      "explanations_total",
				Help:      "Explanations served by source and cache state",
			},
			[]string{"source", "cached"},
		),
		backups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockadvisor",
				Name:      "watchlist_backups_total",
				Help:      "Watchlist backup attempts by sink and outcome",
			},
			[]string{"sink", "outcome"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stockadvisor",
				Name:      "operation_duration_seconds",
				Help:      "Duration of operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordUpstreamCall(function, outcome string) {
	r.upstreamCalls.WithLabelValues(function, outcome).Inc()
}

func (r *Recorder) RecordExplanation(source string, cached bool) {
	r.explanations.WithLabelValues(source, strconv.FormatBool(cached)).Inc()
}

func (r *Recorder) RecordBackup(sink, outcome string) {
	r.backups.WithLabelValues(sink, outcome).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards all measurements.
type Nop struct{}

func (Nop) RecordUpstreamCall(string, string) {}
func (Nop) RecordExplanation(string, bool)    {}
func (Nop) RecordBackup(string, string)       {}
func (Nop) RecordLatency(string, float64)     {}
