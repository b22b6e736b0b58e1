// Package metrics exposes Prometheus instrumentation for calls to the
// Satellite Situation Center services.
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Call outcomes
const (
	OutcomeSuccess        = "success"
	OutcomeHTTPError      = "http_error"
	OutcomeTransportError = "transport_error"
)

var (
	serviceRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sscweb_service_requests_total",
			Help: "Total number of requests sent to the SSC web services.",
		},
		[]string{"endpoint", "outcome"},
	)

	serviceDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sscweb_service_request_duration_seconds",
			Help:    "SSC web service request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	submissionsRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sscweb_submissions_rejected_total",
			Help: "Submissions refused because another request was outstanding.",
		},
	)
)

func init() {
	prometheus.MustRegister(serviceRequestsTotal)
	prometheus.MustRegister(serviceDurationSeconds)
	prometheus.MustRegister(submissionsRejectedTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

var knownEndpoints = map[string]bool{
	"/observatories":  true,
	"/groundStations": true,
	"/locations":      true,
	"/graphs":         true,
}

// Endpoint maps a request path to a bounded label value. Anything that is
// not a service endpoint (plot downloads, mostly) collapses to "download".
func Endpoint(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	for known := range knownEndpoints {
		if strings.HasSuffix(path, known) {
			return known
		}
	}
	return "download"
}

// ObserveServiceCall records one completed call
func ObserveServiceCall(endpoint, outcome string, d time.Duration) {
	serviceRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	serviceDurationSeconds.WithLabelValues(endpoint).Observe(d.Seconds())
}

// IncBusyRejection counts a submission refused while another was in flight
func IncBusyRejection() {
	submissionsRejectedTotal.Inc()
}
