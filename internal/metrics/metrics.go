// Package metrics exposes Prometheus instrumentation for reconciliation
// runs. Counters are registered on the default registry; the watch command
// serves them over promhttp.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ppiankov/tuscaler/internal/models"
)

var (
	runsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tuscaler_runs_total",
		Help: "Completed reconciliation passes.",
	})
	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tuscaler_run_duration_seconds",
		Help:    "Wall-clock duration of a reconciliation pass.",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	})
	subscriptionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tuscaler_subscriptions_scanned_total",
		Help: "Subscriptions processed across all passes.",
	})
	subscriptionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tuscaler_subscription_failures_total",
		Help: "Subscriptions whose namespace listing failed.",
	})
	outcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tuscaler_namespace_outcomes_total",
		Help: "Namespace outcomes by action.",
	}, []string{"action"})
)

// ObserveRun records one completed pass.
func ObserveRun(report *models.RunReport, elapsed time.Duration) {
	runsTotal.Inc()
	runDuration.Observe(elapsed.Seconds())

	for _, res := range report.Results {
		subscriptionsTotal.Inc()
		if res.Failed() {
			subscriptionFailures.Inc()
			continue
		}
		for _, o := range res.Outcomes {
			outcomesTotal.WithLabelValues(string(o.Action)).Inc()
		}
	}
}

// Serve exposes /metrics on the given port. It blocks, so callers run it
// in a goroutine alongside the watch loop.
func Serve(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
