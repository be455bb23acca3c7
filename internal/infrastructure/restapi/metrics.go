package restapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "console",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "REST backend calls by collection, method and status code.",
	}, []string{"collection", "method", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "console",
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "REST backend call latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"collection", "method"})
)

func observe(collection, method, code string, start time.Time) {
	requestsTotal.WithLabelValues(collection, method, code).Inc()
	requestDuration.WithLabelValues(collection, method).Observe(time.Since(start).Seconds())
}
