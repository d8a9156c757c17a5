package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	CommentsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "comments_rejected_total",
			Help: "Comment submissions rejected by validation",
		},
	)

	NotesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notes_created_total",
			Help: "Notes created successfully",
		},
	)
)

// Init registers the collectors. Call once from the serve command; the
// counters work unregistered, so tests can skip this.
func Init() {
	prometheus.MustRegister(RequestsTotal, CommentsRejected, NotesCreated)
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
