package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "articles_store_requests_total",
		Help: "Article store operations by serving tier.",
	}, []string{"tier", "operation"})

	fallbackActivations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "articles_store_fallback_total",
		Help: "Operations that degraded to the in-memory fallback tier.",
	})
)
