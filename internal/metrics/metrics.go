// Package metrics defines the Prometheus instrumentation for the backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts handled HTTP requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "colocmate_http_requests_total",
		Help: "Number of HTTP requests handled.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "colocmate_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// ReminderSweeps counts executed reminder sweeps, scheduled or manual.
	ReminderSweeps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "colocmate_reminder_sweeps_total",
		Help: "Number of reminder sweeps executed.",
	})

	// RemindersSent counts users successfully notified by a sweep.
	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "colocmate_reminders_sent_total",
		Help: "Number of users notified about upcoming due dates.",
	})

	// ReminderFailures counts per-user notification failures.
	ReminderFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "colocmate_reminder_failures_total",
		Help: "Number of failed reminder notifications.",
	})
)

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
