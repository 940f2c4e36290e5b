// Package metrics exposes Prometheus counters for PIN validations.
package metrics

import (
	"net/http"

	"github.com/5w1tchy/pinguard/internal/pin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	validationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pinguard_validations_total",
			Help: "PIN validations by resulting strength",
		},
		[]string{"strength"},
	)
	reasonsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pinguard_weakness_reasons_total",
			Help: "Weakness reasons reported",
		},
		[]string{"reason"},
	)
	patternsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pinguard_detected_patterns_total",
			Help: "Detected pattern labels reported",
		},
		[]string{"pattern"},
	)
	scoreHist = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pinguard_security_score",
			Help:    "Distribution of security scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
	rateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pinguard_rate_limited_total",
			Help: "Requests rejected by a rate limiter",
		},
		[]string{"policy"},
	)
)

func init() {
	Registry.MustRegister(
		validationsTotal,
		reasonsTotal,
		patternsTotal,
		scoreHist,
		rateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Observe records a single validation result.
func Observe(res pin.Result) {
	validationsTotal.WithLabelValues(string(res.Strength)).Inc()
	for _, r := range res.WeaknessReasons {
		reasonsTotal.WithLabelValues(r).Inc()
	}
	for _, p := range res.DetectedPatterns {
		patternsTotal.WithLabelValues(p).Inc()
	}
	scoreHist.Observe(float64(res.SecurityScore))
}

// RateLimited counts a rejection by the named limiter policy.
func RateLimited(policy string) {
	rateLimited.WithLabelValues(policy).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
