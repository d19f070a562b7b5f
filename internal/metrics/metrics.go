package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefinder_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"route", "status"})
	RequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefinder_request_duration_seconds",
		Help:    "Request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2},
	}, []string{"route"})
	EmptyResultsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefinder_empty_results_total",
		Help: "Total searches that returned no stores",
	})
	ProductCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefinder_product_cache_hits_total",
		Help: "Total product lookup cache hits",
	})
	ProductCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefinder_product_cache_misses_total",
		Help: "Total product lookup cache misses",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationSeconds)
	prometheus.MustRegister(EmptyResultsTotal)
	prometheus.MustRegister(ProductCacheHitsTotal)
	prometheus.MustRegister(ProductCacheMissesTotal)
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
