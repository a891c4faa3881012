// Package metrics defines the Prometheus metrics for the Docue HTTP
// gateway. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "docue"

// RequestsTotal counts outbound API requests.
// Labels:
//   - method: HTTP method (GET, POST, PUT, DELETE)
//   - class: status class ("2xx", "4xx", "5xx") or "network" on transport failure
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_requests_total",
		Help:      "Total number of outbound API requests, by method and status class.",
	},
	[]string{"method", "class"},
)

// RequestDuration measures the wall time of one outbound request.
// Label:
//   - method: HTTP method
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "client_request_duration_seconds",
		Help:      "Duration of outbound API requests from dispatch to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// StatusClass renders a status code as its metric label.
func StatusClass(status int) string {
	switch {
	case status == 0:
		return "network"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
